// SPDX-License-Identifier: EPL-2.0

package onda

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	ilogging "github.com/ik5/onda/internal/logging"
	"github.com/ik5/onda/lpcm"
)

// ErrConfig indicates an invalid configuration value.
var ErrConfig = errors.New("invalid configuration")

// Config holds the settings of a SampleStore.
type Config struct {
	// Validation enables descriptor and shape checks on loaded and stored
	// samples.
	Validation bool `yaml:"validate"`
	// DefaultFormat is the file format tag used when none is given.
	DefaultFormat    string `yaml:"default_format"`
	CompressionLevel int    `yaml:"compression_level"`
	// Dither adds triangular noise when quantizing decoded samples on store.
	Dither     bool   `yaml:"dither"`
	DitherSeed uint64 `yaml:"dither_seed"`
	LogLevel   string `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Validation:       true,
		DefaultFormat:    lpcm.TagPlain,
		CompressionLevel: lpcm.DefaultLevel,
		LogLevel:         "warn",
	}
}

// Validate checks the values that do not depend on a format registry.
func (c Config) Validate() error {
	if c.DefaultFormat == "" {
		return fmt.Errorf("%w: empty default_format", ErrConfig)
	}
	if c.CompressionLevel < 0 {
		return fmt.Errorf("%w: negative compression_level %d", ErrConfig, c.CompressionLevel)
	}
	if _, err := ilogging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return nil
}

// LoadConfig decodes YAML from r over DefaultConfig. Unknown keys are
// rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w", err)
	}
	defer f.Close() //nolint:errcheck

	return LoadConfig(f)
}
