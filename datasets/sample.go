package datasets

import "strings"

import "github.com/neurlang/castanet/hash"

// Sample is one row of input text together with its label
type Sample struct {
	Text  string
	Label string

	words []string
}

// NewSample splits the text into lowercase words once
func NewSample(text, label string) Sample {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		words = []string{""}
	}
	return Sample{Text: text, Label: label, words: words}
}

// Feature returns the n-th input feature, the salted hash of word n modulo the word count
func (s Sample) Feature(n int) uint32 {
	words := s.words
	if len(words) == 0 {
		words = NewSample(s.Text, s.Label).words
	}
	return hash.StringHash(uint32(n), words[n%len(words)])
}

// ClassSample is a sample whose label has been resolved to a class index
type ClassSample struct {
	Sample
	Class uint16
}

// Output is the expected class
func (s ClassSample) Output() uint16 {
	return s.Class
}
