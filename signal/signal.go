// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ik5/onda/timespan"
)

// Signal places a channel set of one recording in storage.
type Signal struct {
	SamplesInfo `yaml:",inline"`

	Recording  uuid.UUID         `json:"recording" yaml:"recording"`
	FilePath   string            `json:"file_path" yaml:"file_path"`
	FileFormat string            `json:"file_format" yaml:"file_format"`
	Span       timespan.TimeSpan `json:"span" yaml:"span"`
}

// NewSignal returns sig after validating it.
func NewSignal(sig Signal, opts ...Option) (Signal, error) {
	if newOptions(opts).validate {
		if err := sig.Validate(); err != nil {
			return Signal{}, err
		}
	}

	return sig, nil
}

// Validate checks the descriptor and placement invariants.
func (s Signal) Validate() error {
	if err := s.SamplesInfo.Validate(); err != nil {
		return err
	}
	if s.FilePath == "" {
		return fmt.Errorf("%w: empty file path", ErrValidation)
	}
	if s.FileFormat == "" {
		return fmt.Errorf("%w: empty file format", ErrValidation)
	}
	if s.Span.Start < 0 || s.Span.Stop <= s.Span.Start {
		return fmt.Errorf("%w: malformed span %s", ErrValidation, s.Span)
	}

	return nil
}

// Info returns the descriptor part of s.
func (s Signal) Info() SamplesInfo { return s.SamplesInfo }

// Duration returns the length of the signal's span.
func (s Signal) Duration() time.Duration { return s.Span.Duration() }

// SampleCount returns the number of samples per channel covered by the span.
func (s Signal) SampleCount() (int64, error) {
	return s.SamplesInfo.SampleCount(s.Duration())
}

// SizeOfSamples returns the encoded byte size of the whole signal.
func (s Signal) SizeOfSamples() (int64, error) {
	return s.SamplesInfo.SizeOfSamples(s.Duration())
}

// ValidateSignals validates every signal and checks that no two signals
// target the same file path.
func ValidateSignals(signals []Signal) error {
	paths := make(map[string]uuid.UUID, len(signals))
	for idx, s := range signals {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("signal %d: %w", idx, err)
		}
		if rec, dup := paths[s.FilePath]; dup {
			return fmt.Errorf("%w: file path %q used by recordings %s and %s",
				ErrDuplicateKey, s.FilePath, rec, s.Recording)
		}
		paths[s.FilePath] = s.Recording
	}

	return nil
}

// Equal reports whether s and o describe the same stored signal.
func (s Signal) Equal(o Signal) bool {
	return s.SamplesInfo.Equal(o.SamplesInfo) &&
		s.Recording == o.Recording &&
		s.FilePath == o.FilePath &&
		s.FileFormat == o.FileFormat &&
		s.Span == o.Span
}
