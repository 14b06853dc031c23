package hashtron

import "encoding/json"
import "io"

type jsonHashtron struct {
	Bits    byte        `json:"bits"`
	Program [][2]uint32 `json:"program"`
}

// WriteJson serializes the hashtron as a single json object
func (h Hashtron) WriteJson(w io.Writer) error {
	program := h.program
	if program == nil {
		program = [][2]uint32{}
	}
	return json.NewEncoder(w).Encode(jsonHashtron{Bits: h.bits, Program: program})
}

// MarshalJSON implements json.Marshaler
func (h Hashtron) MarshalJSON() ([]byte, error) {
	program := h.program
	if program == nil {
		program = [][2]uint32{}
	}
	return json.Marshal(jsonHashtron{Bits: h.bits, Program: program})
}

// UnmarshalJSON implements json.Unmarshaler
func (h *Hashtron) UnmarshalJSON(data []byte) error {
	var j jsonHashtron
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	tron, err := New(j.Program, j.Bits)
	if err != nil {
		return err
	}
	*h = *tron
	return nil
}
