// Package majpool implements a majority pooling layer and combiner
package majpool

import "errors"

import "github.com/neurlang/castanet/layer"

type MajPoolLayer struct {
	groups, width int
}

type MajPool struct {
	vec           []bool
	groups, width int
}

// New creates a new majority pooling layer of groups groups, each voting over width inputs
func New(groups, width int) (o *MajPoolLayer, err error) {
	if groups <= 0 || width <= 0 {
		return nil, errors.New("majpool: groups and width must be positive")
	}
	o = new(MajPoolLayer)
	o.groups = groups
	o.width = width
	return
}

// MustNew creates a new majority pooling layer or panics
func MustNew(groups, width int) *MajPoolLayer {
	o, err := New(groups, width)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// Size is the number of inputs the combiner accepts
func (i *MajPoolLayer) Size() int {
	return i.groups * i.width
}

// Lay turns the majority pooling layer into a combiner
func (i *MajPoolLayer) Lay() layer.Combiner {
	var o MajPool
	o.vec = make([]bool, i.groups*i.width)
	o.groups = i.groups
	o.width = i.width
	return &o
}
