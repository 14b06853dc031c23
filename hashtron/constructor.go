package hashtron

import "errors"

// ErrTooManyBits is returned when a hashtron is asked for more output bits than the command space allows.
var ErrTooManyBits = errors.New("hashtron: at most 16 output bits are supported")

// New creates a hashtron running program and returning bits output bits. Zero bits means one.
func New(program [][2]uint32, bits byte) (h *Hashtron, err error) {
	if bits > 16 {
		return nil, ErrTooManyBits
	}
	if bits == 0 {
		bits = 1
	}
	h = new(Hashtron)
	h.program = program
	h.bits = bits
	return
}
