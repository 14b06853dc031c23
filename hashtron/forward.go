package hashtron

import "github.com/neurlang/castanet/hash"

// Command joins a 16bit input feature with the output bit index being asked for.
func Command(feature uint32, bit byte) uint32 {
	return (feature & 0xFFFF) | uint32(bit)<<16
}

// Forward returns Bits() output bits for the 16bit command. Bit j is the parity
// of the program applied to Command(command, j).
func (h Hashtron) Forward(command uint32) (out uint16) {
	if h.Len() == 0 {
		return
	}
	for j := byte(0); j < h.Bits(); j++ {
		if h.Bit(Command(command, j)) {
			out |= 1 << j
		}
	}
	return
}

// Bit runs the whole program on an already joined command and reports the parity.
func (h Hashtron) Bit(command uint32) bool {
	for i := 0; i < h.Len(); i++ {
		var s, max = h.Get(i)
		command = hash.Hash(command, s, max)
	}
	return command&1 != 0
}
