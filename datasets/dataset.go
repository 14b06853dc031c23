// Package datasets implements the castanet dataset types
package datasets

import "sort"

// Dataset maps hashtron commands to the desired output bit
type Dataset map[uint32]bool

// Init empties the dataset
func (d *Dataset) Init() {
	*d = make(map[uint32]bool)
}

// Split splits the dataset into a false set and a true set
func (d Dataset) Split() SplittedDataset {
	return SplitDataset(d)
}

// SplittedDataset holds the false set at index 0 and the true set at index 1
type SplittedDataset [2]map[uint32]struct{}

// SplitDataset splits dataset into a true set and a false set
func SplitDataset(d Dataset) (o SplittedDataset) {
	o[0] = make(map[uint32]struct{})
	o[1] = make(map[uint32]struct{})
	for k, v := range d {
		if v {
			o[1][k] = struct{}{}
		} else {
			o[0][k] = struct{}{}
		}
	}
	return
}

// Len is the total number of commands in both sets
func (s SplittedDataset) Len() int {
	return len(s[0]) + len(s[1])
}

// Alphabet returns both sets as sorted slices, the solver's input format
func (s SplittedDataset) Alphabet() (o [2][]uint32) {
	for i := range s {
		o[i] = make([]uint32, 0, len(s[i]))
		for v := range s[i] {
			o[i] = append(o[i], v)
		}
		sort.Slice(o[i], func(a, b int) bool { return o[i][a] < o[i][b] })
	}
	return
}
