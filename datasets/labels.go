package datasets

import "errors"

// ErrTooManyClasses is returned when the labels don't fit the 16bit class index
var ErrTooManyClasses = errors.New("datasets: more than 65536 distinct labels")

// Labels assigns dense class indices to label strings in first seen order
type Labels struct {
	names []string
	index map[string]uint16
}

// NewLabels creates labels from names keeping their order, duplicates are ignored
func NewLabels(names ...string) (*Labels, error) {
	l := &Labels{index: make(map[string]uint16)}
	for _, n := range names {
		if _, err := l.Class(n); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Class returns the class index of name, assigning the next one when unseen
func (l *Labels) Class(name string) (uint16, error) {
	if c, ok := l.index[name]; ok {
		return c, nil
	}
	if len(l.names) > 0xFFFF {
		return 0, ErrTooManyClasses
	}
	c := uint16(len(l.names))
	l.index[name] = c
	l.names = append(l.names, name)
	return c, nil
}

// Lookup returns the class of a known name
func (l *Labels) Lookup(name string) (uint16, bool) {
	c, ok := l.index[name]
	return c, ok
}

// Name maps a class index back to the label, unknown indices give ""
func (l *Labels) Name(class uint16) string {
	if int(class) >= len(l.names) {
		return ""
	}
	return l.names[class]
}

// Names returns a copy of the label list in class order
func (l *Labels) Names() []string {
	return append([]string(nil), l.names...)
}

// Len is the number of classes
func (l *Labels) Len() int {
	return len(l.names)
}

// Bits is the number of output bits needed to encode every class, at least one
func (l *Labels) Bits() byte {
	var b byte = 1
	for (1 << b) < len(l.names) {
		b++
	}
	return b
}
