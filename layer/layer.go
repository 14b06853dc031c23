// Package layer defines the combiner and layer interfaces joining hashtron outputs
package layer

// Layer is the layer which can be used for instantiating a combiner
type Layer interface {

	// Lay creates a combiner
	Lay() Combiner
}
