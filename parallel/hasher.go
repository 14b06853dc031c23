package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"
)

// Hasher fingerprints a fixed length sequence of uint16 values which may be
// put concurrently and in any order. The sum only depends on the values.
type Hasher struct {
	mut  sync.Mutex
	data []byte
	seen []bool
}

// NewUint16Hasher creates a hasher for n values
func NewUint16Hasher(n int) *Hasher {
	return &Hasher{
		data: make([]byte, 2*n),
		seen: make([]bool, n),
	}
}

// MustPutUint16 stores value at position n. Putting a position twice panics.
func (h *Hasher) MustPutUint16(n int, value uint16) {
	h.mut.Lock()
	defer h.mut.Unlock()
	if h.seen[n] {
		panic("duplicate write")
	}
	h.seen[n] = true
	binary.LittleEndian.PutUint16(h.data[2*n:], value)
}

// Sum returns the sha256 of all the values in position order
func (h *Hasher) Sum() [32]byte {
	h.mut.Lock()
	defer h.mut.Unlock()
	return sha256.Sum256(h.data)
}
