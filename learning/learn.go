// Package learning implements the learning stage of the castanet hashtrons
package learning

import (
	crypto_rand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/neurlang/castanet/datasets"
	"github.com/neurlang/castanet/hash"
	"github.com/neurlang/castanet/hashtron"
	"github.com/neurlang/castanet/parallel"
)

var (
	// ErrConflict is returned when a value is both in the false and in the true set
	ErrConflict = errors.New("learning: value present in both sets")

	// ErrNoSolution is returned when the solver runs out of steps
	ErrNoSolution = errors.New("learning: no solution within the step budget")
)

// Training learns a hashtron with bits output bits separating the dataset
func (h *HyperParameters) Training(d datasets.SplittedDataset, bits byte) (*hashtron.Hashtron, error) {
	program, err := h.Reducing(d.Alphabet())
	if err != nil {
		return nil, err
	}
	return hashtron.New(program, bits)
}

// Reducing finds a program of salted modular hashes mapping every value of
// alphabet[0] to an even number and every value of alphabet[1] to an odd one.
// The alphabet is not mutated.
func (h *HyperParameters) Reducing(alphabet [2][]uint32) ([][2]uint32, error) {
	if len(alphabet[0])+len(alphabet[1]) == 0 {
		// garbage in, garbage out
		return nil, nil
	}
	rng := h.rand()
	sets, err := distinct(alphabet)
	if err != nil {
		return nil, err
	}
	pad(&sets, rng)
	if h.Shuffle {
		for i := range sets {
			rng.Shuffle(len(sets[i]), func(a, b int) { sets[i][a], sets[i][b] = sets[i][b], sets[i][a] })
		}
	}

	var maxl = longest(sets)
	var initial = maxl
	var factor = h.Factor
	if factor == 0 {
		factor = 1
	}
	var maxx uint32 = 1 << 31
	if sq := uint64(maxl) * uint64(maxl) / uint64(factor); sq < 1<<31 {
		maxx = uint32(sq)
	}
	if maxx < 2 {
		maxx = 2
	}
	var program [][2]uint32

	for step := 0; step < h.MaxSteps; step++ {
		h.progress(initial, maxl, maxx)

		salt, ok := h.search(sets, rng.Uint32(), maxx)
		if !ok {
			h.Logger().WithField("modulo", maxx).Debug("solver stuck, growing modulo")
			if maxx >= 1<<31 {
				break
			}
			maxx += maxx/4 + 1
			continue
		}

		program = append(program, [2]uint32{salt, maxx})
		for i := range sets {
			sets[i] = apply(sets[i], salt, maxx)
		}

		if separated(sets) {
			h.done(len(program))
			return program, nil
		}

		maxl = longest(sets)
		if maxl == 1 {
			maxx = 2
			continue
		}
		var sub = h.Subtractor
		if sub >= maxl {
			sub = maxl - 1
		}
		maxx = uint32(uint64(maxx) * (uint64(maxl-sub) * uint64(maxl-sub)) / (uint64(maxl) * uint64(maxl)))
		if maxx < maxl {
			maxx = maxl
		}
		if maxx < 2 {
			maxx = 2
		}
	}
	if !h.DisableProgressBar {
		fmt.Fprintln(os.Stderr)
	}
	h.Logger().WithFields(log.Fields{
		"steps": h.MaxSteps,
		"size":  len(alphabet[0]) + len(alphabet[1]),
	}).Warn("solver gave up")
	return nil, ErrNoSolution
}

// search tries salts around center in parallel, returning the first one which
// hashes both sets into [0, max) without a collision between them. At modulo 2
// the salt must also send the false set to 0 and the true set to 1.
func (h *HyperParameters) search(sets [2][]uint32, center, max uint32) (win uint32, found bool) {
	var threads = h.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	var attempts = h.Attempts
	if attempts == 0 {
		attempts = 1
	}
	var mut sync.Mutex
	parallel.Loop(threads).LoopUntil(func(nonce uint32, ender parallel.LoopStopper) bool {
		if nonce >= attempts {
			return true
		}
		var salt = center ^ (nonce * 2654435761)
		if !collides(sets, salt, max, ender) {
			mut.Lock()
			if !found {
				win, found = salt, true
			}
			mut.Unlock()
			return true
		}
		return false
	})
	return
}

// collides reports whether some value of set 0 and some value of set 1 land in the
// same bucket. At modulo 2 a value landing on the wrong parity also counts.
func collides(sets [2][]uint32, salt, max uint32, ender parallel.LoopStopper) bool {
	var seen = make(map[uint32]struct{}, len(sets[0]))
	var lanes = hash.HashVectorizedParallelism()
	var salts = make([]uint32, lanes)
	var outs = make([]uint32, lanes)
	for i := range salts {
		salts[i] = salt
	}
	for j := 0; j < 2; j++ {
		for i := 0; i < len(sets[j]); i += lanes {
			if ender.Load() {
				return true
			}
			var n = sets[j][i:]
			if len(n) > lanes {
				n = n[:lanes]
			}
			hash.HashVectorized(outs[:len(n)], n, salts[:len(n)], max)
			for _, v := range outs[:len(n)] {
				if max == 2 && v != uint32(j) {
					return true
				}
				if j == 0 {
					seen[v] = struct{}{}
				} else if _, ok := seen[v]; ok {
					return true
				}
			}
		}
	}
	return false
}

// apply hashes the set, merging equal results
func apply(set []uint32, salt, max uint32) []uint32 {
	var m = make(map[uint32]struct{}, len(set))
	for _, v := range set {
		m[hash.Hash(v, salt, max)] = struct{}{}
	}
	var o = make([]uint32, 0, len(m))
	for v := range m {
		o = append(o, v)
	}
	sort.Slice(o, func(a, b int) bool { return o[a] < o[b] })
	return o
}

// separated reports whether set 0 is all even and set 1 all odd
func separated(sets [2][]uint32) bool {
	for j := range sets {
		for _, v := range sets[j] {
			if v&1 != uint32(j) {
				return false
			}
		}
	}
	return true
}

// distinct copies and deduplicates both sets, they must not overlap
func distinct(alphabet [2][]uint32) (o [2][]uint32, err error) {
	var m [2]map[uint32]struct{}
	for j := range alphabet {
		m[j] = make(map[uint32]struct{}, len(alphabet[j]))
		for _, v := range alphabet[j] {
			if _, dup := m[j][v]; dup {
				continue
			}
			m[j][v] = struct{}{}
			o[j] = append(o[j], v)
		}
	}
	for v := range m[0] {
		if _, ok := m[1][v]; ok {
			return o, fmt.Errorf("%w: %d", ErrConflict, v)
		}
	}
	return o, nil
}

// pad adds a random value to an empty set, not present in the other set
func pad(sets *[2][]uint32, rng *rand.Rand) {
	for i := 0; i < 2; i++ {
		if len(sets[i]) != 0 {
			continue
		}
	roll:
		for {
			var v = rng.Uint32()
			for _, w := range sets[1-i] {
				if v == w {
					continue roll
				}
			}
			sets[i] = append(sets[i], v)
			break
		}
	}
}

func longest(sets [2][]uint32) uint32 {
	if len(sets[1]) > len(sets[0]) {
		return uint32(len(sets[1]))
	}
	return uint32(len(sets[0]))
}

func (h *HyperParameters) rand() *rand.Rand {
	var seed int64 = 1
	if h.Seed {
		var b [8]byte
		if _, err := crypto_rand.Read(b[:]); err == nil {
			seed = int64(binary.LittleEndian.Uint64(b[:]))
		}
	}
	return rand.New(rand.NewSource(seed))
}

const progressBarWidth = 40

func (h *HyperParameters) progress(initial, maxl, maxx uint32) {
	if h.DisableProgressBar || initial == 0 {
		return
	}
	progress := progressBarWidth - int(maxl*progressBarWidth/initial)
	percent := 100 - int(maxl*100/initial)
	fmt.Fprintf(os.Stderr, "\r[%s%s] %d%% PROBLEM SIZE = %d ",
		strings.Repeat("=", progress), strings.Repeat(" ", progressBarWidth-progress), percent, maxx)
}

func (h *HyperParameters) done(size int) {
	if h.DisableProgressBar {
		return
	}
	fmt.Fprintf(os.Stderr, "\r[%s] 100%% SOLUTION SIZE = %d \n", strings.Repeat("=", progressBarWidth), size)
}
