package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const (
	// PathEnv names the variable holding the config file path
	PathEnv = "CASTANET_CONFIG"

	// DefaultPath is used when PathEnv is unset
	DefaultPath = "castanet.yaml"

	envPrefix = "CASTANET_"
)

// ErrNoConfig is returned when the config file does not exist
var ErrNoConfig = errors.New("config: file not found")

// Config is the process configuration
type Config struct {
	RunMode       string   `yaml:"run_mode"`
	InputList     []string `yaml:"input_files"`
	InputDir      string   `yaml:"input_dir"`
	InputPattern  string   `yaml:"input_pattern"`
	InputEncoding string   `yaml:"input_encoding"`
	TextField     string   `yaml:"text_field"`
	LabelField    string   `yaml:"label_field"`

	ModelPath  string `yaml:"model_path"`
	OutputPath string `yaml:"output_path"`

	Features     int  `yaml:"features"`
	Threads      int  `yaml:"threads"`
	Attempts     int  `yaml:"attempts"`
	MaxSteps     int  `yaml:"max_steps"`
	Significance byte `yaml:"significance"`

	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsFile string `yaml:"metrics_file"`

	path string
	raw  map[string]interface{}
}

// Path returns the configuration file path, CASTANET_CONFIG or castanet.yaml
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Initialize reads the configuration file at path and applies defaults and environment overrides
func Initialize(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(path, data)
}

// Parse builds the configuration from YAML data read from path
func Parse(path string, data []byte) (*Config, error) {
	c := &Config{path: path, raw: make(map[string]interface{})}
	if err := yaml.Unmarshal(data, &c.raw); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if c.raw == nil {
		c.raw = make(map[string]interface{})
	}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(k, envPrefix) || k == PathEnv {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(k, envPrefix))
		c.raw[key] = override(key, v)
	}
	merged, err := yaml.Marshal(c.raw)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(merged, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	c.defaults()
	return c, nil
}

// override turns an environment value into a YAML value, so lists and numbers keep their type.
// input_files also accepts a comma separated list.
func override(key, v string) interface{} {
	var out interface{}
	if err := yaml.Unmarshal([]byte(v), &out); err != nil || out == nil {
		out = v
	}
	switch o := out.(type) {
	case map[string]interface{}:
		return v
	case []interface{}:
		return o
	}
	if key == "input_files" {
		var list []interface{}
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				list = append(list, f)
			}
		}
		return list
	}
	return out
}

func (c *Config) defaults() {
	if c.InputPattern == "" {
		c.InputPattern = "*.csv"
	}
	if c.InputEncoding == "" {
		c.InputEncoding = "utf-8"
	}
	if c.TextField == "" {
		c.TextField = "text"
	}
	if c.LabelField == "" {
		c.LabelField = "label"
	}
	if c.ModelPath == "" {
		c.ModelPath = "castanet.model"
	}
	if c.Features <= 0 {
		c.Features = 24
	}
	if c.Attempts <= 0 {
		c.Attempts = 4096
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = 4096
	}
	if c.Significance == 0 || c.Significance > 99 {
		c.Significance = 95
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Get returns the value of a top-level key formatted as a string, unknown keys give ""
func (c *Config) Get(key string) string {
	v, ok := c.raw[key]
	if !ok || v == nil {
		return ""
	}
	switch v := v.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case []interface{}:
		var parts = make([]string, len(v))
		for i := range v {
			parts[i] = fmt.Sprint(v[i])
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

// InputFiles returns the explicit input_files in order, followed by the
// files in input_dir matching input_pattern sorted by name
func (c *Config) InputFiles() ([]string, error) {
	var files = make([]string, 0, len(c.InputList))
	files = append(files, c.InputList...)
	if c.InputDir == "" {
		return files, nil
	}
	matches, err := filepath.Glob(filepath.Join(c.InputDir, c.InputPattern))
	if err != nil {
		return nil, fmt.Errorf("config: input_pattern %q: %w", c.InputPattern, err)
	}
	sort.Strings(matches)
	return append(files, matches...), nil
}

// File returns the path the configuration was read from
func (c *Config) File() string {
	return c.path
}
