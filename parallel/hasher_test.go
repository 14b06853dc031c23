package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasherOrderIndependent(t *testing.T) {
	a := NewUint16Hasher(100)
	for n := 0; n < 100; n++ {
		a.MustPutUint16(n, uint16(n*7))
	}
	b := NewUint16Hasher(100)
	ForEach(100, 8, func(n int) {
		b.MustPutUint16(n, uint16(n*7))
	})
	require.Equal(t, a.Sum(), b.Sum())

	c := NewUint16Hasher(100)
	for n := 0; n < 100; n++ {
		c.MustPutUint16(n, uint16(n*7+1))
	}
	require.NotEqual(t, a.Sum(), c.Sum())
}

func TestHasherDuplicate(t *testing.T) {
	h := NewUint16Hasher(2)
	h.MustPutUint16(1, 5)
	require.Panics(t, func() { h.MustPutUint16(1, 5) })
}

func TestForEachVisitsAll(t *testing.T) {
	var seen [1000]atomic.Bool
	ForEach(len(seen), 16, func(i int) {
		require.False(t, seen[i].Swap(true))
	})
	for i := range seen {
		require.True(t, seen[i].Load(), "index %d", i)
	}
	ForEach(0, 4, func(int) { t.Fatal("called for empty loop") })
}

func TestForEachErrStops(t *testing.T) {
	boom := errors.New("boom")
	var calls atomic.Int64
	err := ForEachErr(context.Background(), 10000, 1, func(i int) error {
		calls.Add(1)
		if i == 3 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Less(t, calls.Load(), int64(10000))
}

func TestForEachErrCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ForEachErr(ctx, 10, 2, func(int) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoopUntil(t *testing.T) {
	var found atomic.Uint32
	Loop(4).LoopUntil(func(i uint32, ender LoopStopper) bool {
		if i == 500 {
			found.Store(i)
			return true
		}
		return false
	})
	require.Equal(t, uint32(500), found.Load())
}
