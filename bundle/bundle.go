// Package bundle saves and loads a trained model: the compressed hashtron
// weights plus a YAML metadata sidecar describing labels and network shape.
package bundle

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"github.com/neurlang/castanet/datasets"
	"github.com/neurlang/castanet/net/feedforward"
)

// ErrNoModel is returned when the model files don't exist
var ErrNoModel = errors.New("bundle: model not found")

// Metadata describes a trained model
type Metadata struct {
	ID          string    `yaml:"id"`
	CreatedAt   time.Time `yaml:"created_at"`
	Labels      []string  `yaml:"labels"`
	Features    int       `yaml:"features"`
	Bits        byte      `yaml:"bits"`
	Samples     int       `yaml:"samples"`
	Success     int       `yaml:"success_rate"`
	Fingerprint string    `yaml:"fingerprint,omitempty"`
	FilterBytes int       `yaml:"filter_bytes,omitempty"`
	InputFiles  []string  `yaml:"input_files"`
}

// Bundle is a trained network with its metadata
type Bundle struct {
	Metadata
	Network *feedforward.FeedforwardNetwork
	Classes *datasets.Labels
}

// New creates a bundle for a freshly trained network
func New(net *feedforward.FeedforwardNetwork, features int, classes *datasets.Labels) *Bundle {
	return &Bundle{
		Metadata: Metadata{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Labels:    classes.Names(),
			Features:  features,
			Bits:      net.GetBits(),
		},
		Network: net,
		Classes: classes,
	}
}

// MetadataPath is the sidecar path of the model at path
func MetadataPath(path string) string {
	return path + ".yaml"
}

// Save writes the weights to path and the metadata next to it
func (b *Bundle) Save(path string) error {
	if err := b.Network.WriteCompressedWeightsToFile(path); err != nil {
		return fmt.Errorf("bundle: weights: %w", err)
	}
	data, err := yaml.Marshal(&b.Metadata)
	if err != nil {
		return fmt.Errorf("bundle: metadata: %w", err)
	}
	if err := os.WriteFile(MetadataPath(path), data, 0o644); err != nil {
		return fmt.Errorf("bundle: metadata: %w", err)
	}
	return nil
}

// Load reads a model written by Save
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(MetadataPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoModel, path)
	}
	if err != nil {
		return nil, fmt.Errorf("bundle: metadata: %w", err)
	}
	var b Bundle
	if err := yaml.Unmarshal(data, &b.Metadata); err != nil {
		return nil, fmt.Errorf("bundle: metadata %s: %w", MetadataPath(path), err)
	}
	if b.Classes, err = datasets.NewLabels(b.Labels...); err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	if b.Network, err = feedforward.New(b.Features, b.Bits); err != nil {
		return nil, fmt.Errorf("bundle: %w", err)
	}
	err = b.Network.ReadCompressedWeightsFromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoModel, path)
	}
	if err != nil {
		return nil, fmt.Errorf("bundle: weights %s: %w", path, err)
	}
	return &b, nil
}
