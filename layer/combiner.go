package layer

// Combiner combines input booleans, stores them internally, and combines them to form output features.
type Combiner interface {

	// Put inserts a boolean at position n.
	Put(n int, v bool)

	// Feature returns the n-th feature from the combiner.
	Feature(n int) (o uint32)

	// Disregard tells whether putting value false at position n would not affect
	// the feature output (as opposed to putting value true at position n).
	Disregard(n int) bool
}
