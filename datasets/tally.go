package datasets

import "sync"

// Tally counts votes on hashtron commands and returns the majority votes
type Tally struct {
	// true value is added as +1, false value is voted as -1
	// if the tally is positive we map the command to true, false if negative
	correct map[uint32]int64

	mut sync.Mutex
}

// Init initializes the tally dataset structure
func (t *Tally) Init() {
	t.mut.Lock()
	t.correct = make(map[uint32]int64)
	t.mut.Unlock()
}

// NewTally returns an initialized tally
func NewTally() *Tally {
	t := new(Tally)
	t.Init()
	return t
}

// Free frees the memory occupied by tally dataset structure
func (t *Tally) Free() {
	t.mut.Lock()
	t.correct = nil
	t.mut.Unlock()
}

// Len is the number of commands with a nonzero vote
func (t *Tally) Len() (o int) {
	t.mut.Lock()
	o = len(t.correct)
	t.mut.Unlock()
	return
}

// AddToCorrect votes for the output bit the command should map to
func (t *Tally) AddToCorrect(command uint32, vote int8) {
	if vote == 0 {
		return
	}
	t.mut.Lock()
	t.correct[command] += int64(vote)
	if t.correct[command] == 0 {
		delete(t.correct, command)
	}
	t.mut.Unlock()
}

// Vote adds +1 for a true bit and -1 for a false one
func (t *Tally) Vote(command uint32, bit bool) {
	if bit {
		t.AddToCorrect(command, 1)
	} else {
		t.AddToCorrect(command, -1)
	}
}

// Dataset resolves the votes, ties are left out
func (t *Tally) Dataset() Dataset {
	var sett Dataset
	sett.Init()
	t.mut.Lock()
	for value, rating := range t.correct {
		if rating != 0 {
			sett[value] = rating > 0
		}
	}
	t.mut.Unlock()
	return sett
}

// Split splits the tally structure into a splitted dataset
func (t *Tally) Split() SplittedDataset {
	return t.Dataset().Split()
}
