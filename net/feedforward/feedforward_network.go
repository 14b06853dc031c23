// Package feedforward implements a feedforward network type
package feedforward

import "errors"
import "sync"

import "github.com/neurlang/castanet/datasets"
import "github.com/neurlang/castanet/hash"
import "github.com/neurlang/castanet/hashtron"
import "github.com/neurlang/castanet/layer"
import "github.com/neurlang/castanet/layer/majpool"

// FeedforwardNetworkInput is one individual input to the feedforward network
type FeedforwardNetworkInput interface {
	Feature(n int) uint32
}

// FeedforwardNetworkInOutput is one individual sample with the expected network output
type FeedforwardNetworkInOutput interface {
	Feature(n int) uint32
	Output() uint16
}

// FeedforwardNetwork is a layer of hashtrons, each voting for every output
// bit, followed by a majority pooling combiner per bit
type FeedforwardNetwork struct {
	layers    [][]hashtron.Hashtron
	mapping   []byte
	combiners []layer.Layer
}

// New creates a network of features hashtrons predicting bits output bits
func New(features int, bits byte) (*FeedforwardNetwork, error) {
	if features <= 0 {
		return nil, errors.New("feedforward: at least one feature is required")
	}
	if bits == 0 || bits > 16 {
		return nil, errors.New("feedforward: bits must be between 1 and 16")
	}
	f := new(FeedforwardNetwork)
	f.NewLayer(features, bits)
	f.NewCombiner(majpool.MustNew(int(bits), features))
	return f, nil
}

// Len returns the number of hashtrons which need to be trained inside the network.
func (f FeedforwardNetwork) Len() (o int) {
	for _, v := range f.layers {
		o += len(v)
	}
	return
}

// GetHashtron gets n-th hashtron pointer in the network.
func (f FeedforwardNetwork) GetHashtron(n int) *hashtron.Hashtron {
	for _, v := range f.layers {
		if n < len(v) {
			return &v[n]
		}
		n -= len(v)
	}
	return nil
}

// NewLayer adds a hashtron layer to the end of network with n hashtrons, each recognizing bits bits.
func (f *FeedforwardNetwork) NewLayer(n int, bits byte) {
	var layer = make([]hashtron.Hashtron, n)
	for i := range layer {
		h, _ := hashtron.New(nil, bits)
		layer[i] = *h
	}
	if bits == 0 {
		bits = 1
	}
	f.layers = append(f.layers, layer)
	f.mapping = append(f.mapping, bits)
	f.combiners = append(f.combiners, nil)
}

// NewCombiner adds a combiner layer to the end of network
func (f *FeedforwardNetwork) NewCombiner(layer layer.Layer) {
	f.layers = append(f.layers, nil)
	f.mapping = append(f.mapping, 0)
	f.combiners = append(f.combiners, layer)
}

// GetBits reports the number of bits predicted by this network
func (f FeedforwardNetwork) GetBits() byte {
	if len(f.mapping) == 0 || f.mapping[0] == 0 {
		return 1
	}
	return f.mapping[0]
}

// GetClasses reports the number of classes predicted by this network
func (f FeedforwardNetwork) GetClasses() uint32 {
	return 1 << f.GetBits()
}

// Command reduces the n-th input feature to the 16bit command of hashtron n.
func Command(in FeedforwardNetworkInput, n int) uint32 {
	return hash.Hash(in.Feature(n), uint32(n), 1<<16)
}

// Infer infers the class of the input by majority vote of all hashtrons
func (f FeedforwardNetwork) Infer(in FeedforwardNetworkInput) (val uint16) {
	if len(f.layers) < 2 || f.combiners[1] == nil {
		return 0
	}
	var cells = f.layers[0]
	var bits = f.GetBits()
	var combiner = f.combiners[1].Lay()
	wg := sync.WaitGroup{}
	for i := range cells {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var out = cells[i].Forward(Command(in, i))
			for b := byte(0); b < bits; b++ {
				combiner.Put(int(b)*len(cells)+i, (out>>b)&1 != 0)
			}
		}(i)
	}
	wg.Wait()
	for b := byte(0); b < bits; b++ {
		val |= uint16(combiner.Feature(int(b))) << b
	}
	return
}

// Tally votes the expected output bits of the sample into the dataset of hashtron worst.
func (f FeedforwardNetwork) Tally(io FeedforwardNetworkInOutput, worst int, tally *datasets.Tally) {
	if f.GetHashtron(worst) == nil {
		return
	}
	var command = Command(io, worst)
	var out = io.Output()
	for b := byte(0); b < f.GetBits(); b++ {
		tally.Vote(hashtron.Command(command, b), (out>>b)&1 != 0)
	}
}
