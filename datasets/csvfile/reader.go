package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/neurlang/castanet/datasets"
)

// ErrNoLabel is returned when a labelled file lacks the label column
var ErrNoLabel = errors.New("csvfile: label column missing")

// Options selects the columns and the charset of the input files
type Options struct {
	TextField  string
	LabelField string
	Encoding   string

	// NeedLabel makes a missing label column an error
	NeedLabel bool
}

// Read reads all samples of the named file
func Read(name string, o Options) ([]datasets.Sample, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	samples, err := ReadFrom(file, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return samples, nil
}

// ReadFrom reads all samples from r, which starts with the header row
func ReadFrom(r io.Reader, o Options) (samples []datasets.Sample, err error) {
	if o.TextField == "" {
		o.TextField = "text"
	}
	if o.LabelField == "" {
		o.LabelField = "label"
	}
	dec, err := Decoder(r, o.Encoding)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(dec)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("csvfile: empty file, header row expected")
	}
	if err != nil {
		return nil, err
	}

	var textCol, labelCol = -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case o.TextField:
			textCol = i
		case o.LabelField:
			labelCol = i
		}
	}
	if textCol < 0 {
		return nil, fmt.Errorf("csvfile: text column %q missing", o.TextField)
	}
	if labelCol < 0 && o.NeedLabel {
		return nil, fmt.Errorf("%w: %q", ErrNoLabel, o.LabelField)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
		var text, label string
		if textCol < len(record) {
			text = record[textCol]
		}
		if labelCol >= 0 && labelCol < len(record) {
			label = strings.TrimSpace(record[labelCol])
		}
		samples = append(samples, datasets.NewSample(text, label))
	}
}

// HasLabels reports whether every sample carries a label
func HasLabels(samples []datasets.Sample) bool {
	for _, s := range samples {
		if s.Label == "" {
			return false
		}
	}
	return len(samples) > 0
}
