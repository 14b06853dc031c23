package hashtron

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzHashtronSerialize(f *testing.F) {
	f.Add([]byte{1, 2, 3, 4}, byte(3))
	f.Add([]byte{}, byte(0))
	f.Fuzz(func(t *testing.T, buffer []byte, bits byte) {
		bits %= 17
		var dualBuffer [][2]uint32
		for i, v := range buffer {
			if i%8 == 0 {
				dualBuffer = append(dualBuffer, [2]uint32{0, 0})
			}
			dualBuffer[len(dualBuffer)-1][(i/4)%2] <<= 8
			dualBuffer[len(dualBuffer)-1][(i/4)%2] |= uint32(v)
		}
		tron, err := New(dualBuffer, bits)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, tron.WriteJson(&buf))

		var back Hashtron
		require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
		require.Equal(t, tron.Len(), back.Len())
		require.Equal(t, tron.Bits(), back.Bits())
		for i := 0; i < tron.Len(); i++ {
			s0, m0 := tron.Get(i)
			s1, m1 := back.Get(i)
			require.Equal(t, s0, s1)
			require.Equal(t, m0, m1)
		}
	})
}

func TestNewBits(t *testing.T) {
	h, err := New(nil, 0)
	require.NoError(t, err)
	require.Equal(t, byte(1), h.Bits())

	_, err = New(nil, 17)
	require.ErrorIs(t, err, ErrTooManyBits)
}

func TestForwardEmptyProgram(t *testing.T) {
	h, err := New(nil, 4)
	require.NoError(t, err)
	require.Zero(t, h.Forward(12345))
}

func TestForwardParity(t *testing.T) {
	// one bit output is the parity of the program
	h, err := New(nil, 1)
	require.NoError(t, err)
	h.Push([2]uint32{0, 2})
	for c := uint32(0); c < 64; c++ {
		require.Equal(t, h.Bit(c), h.Forward(c) == 1)
	}
}

func TestCommand(t *testing.T) {
	require.Equal(t, uint32(0x3ABCD), Command(0x7ABCD, 3))
	require.Equal(t, uint32(0xFFFF), Command(0xFFFFFFFF, 0))
}
