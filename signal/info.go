// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"time"

	"github.com/ik5/onda/timespan"
)

// SamplesInfo describes how the samples of a channel set are encoded.
//
// A stored integer code v maps to the physical value
// SampleResolutionInUnit*v + SampleOffsetInUnit, measured in SampleUnit.
type SamplesInfo struct {
	Kind                   string     `json:"kind" yaml:"kind"`
	Channels               []string   `json:"channels" yaml:"channels"`
	SampleUnit             string     `json:"sample_unit" yaml:"sample_unit"`
	SampleResolutionInUnit float64    `json:"sample_resolution_in_unit" yaml:"sample_resolution_in_unit"`
	SampleOffsetInUnit     float64    `json:"sample_offset_in_unit" yaml:"sample_offset_in_unit"`
	SampleType             SampleType `json:"sample_type" yaml:"sample_type"`
	SampleRate             float64    `json:"sample_rate" yaml:"sample_rate"`

	// Custom holds caller-defined fields carried alongside the record.
	Custom map[string]any `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// Option configures descriptor construction.
type Option func(*options)

type options struct {
	validate bool
}

func newOptions(opts []Option) options {
	o := options{validate: true}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithValidation enables or disables construction-time validation.
// Validation is on by default.
func WithValidation(enabled bool) Option {
	return func(o *options) { o.validate = enabled }
}

// WithoutValidation disables construction-time validation, e.g. to load
// legacy data. Numeric operations on malformed descriptors are undefined.
func WithoutValidation() Option { return WithValidation(false) }

// ValidationEnabled reports whether opts leave construction-time validation
// on.
func ValidationEnabled(opts ...Option) bool { return newOptions(opts).validate }

// NewSamplesInfo returns info after validating it.
func NewSamplesInfo(info SamplesInfo, opts ...Option) (SamplesInfo, error) {
	if newOptions(opts).validate {
		if err := info.Validate(); err != nil {
			return SamplesInfo{}, err
		}
	}

	return info, nil
}

// Validate checks the descriptor invariants.
func (i SamplesInfo) Validate() error {
	if len(i.Channels) == 0 {
		return fmt.Errorf("%w: empty channel set", ErrValidation)
	}

	seen := make(map[string]struct{}, len(i.Channels))
	for _, c := range i.Channels {
		if !IsLowerSnakeCaseAlphanumeric(c) {
			return fmt.Errorf("%w: channel name %q must be lowercase snake case alphanumeric", ErrValidation, c)
		}
		if _, dup := seen[c]; dup {
			return fmt.Errorf("%w: %w: channel %q", ErrValidation, ErrDuplicateKey, c)
		}
		seen[c] = struct{}{}
	}

	if !IsLowerSnakeCaseAlphanumeric(i.SampleUnit) {
		return fmt.Errorf("%w: sample unit %q must be lowercase snake case alphanumeric", ErrValidation, i.SampleUnit)
	}
	if !i.SampleType.Valid() {
		return fmt.Errorf("%w: unsupported sample type %s", ErrValidation, i.SampleType)
	}
	if !(i.SampleRate > 0) || math.IsInf(i.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v must be positive and finite", ErrValidation, i.SampleRate)
	}
	if i.SampleResolutionInUnit == 0 || !isFinite(i.SampleResolutionInUnit) {
		return fmt.Errorf("%w: sample resolution %v must be non-zero and finite", ErrValidation, i.SampleResolutionInUnit)
	}
	if !isFinite(i.SampleOffsetInUnit) {
		return fmt.Errorf("%w: sample offset %v must be finite", ErrValidation, i.SampleOffsetInUnit)
	}

	return nil
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// IsLowerSnakeCaseAlphanumeric reports whether s is non-empty and made of
// lowercase ASCII letters, digits and underscores.
func IsLowerSnakeCaseAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}

	return true
}

// ChannelCount returns the number of channels.
func (i SamplesInfo) ChannelCount() int { return len(i.Channels) }

// Channel returns the 0-based row of the named channel.
func (i SamplesInfo) Channel(name string) (int, bool) {
	idx := slices.Index(i.Channels, name)
	return idx, idx >= 0
}

// ChannelName returns the name of the channel at 0-based row idx.
func (i SamplesInfo) ChannelName(idx int) (string, bool) {
	if idx < 0 || idx >= len(i.Channels) {
		return "", false
	}

	return i.Channels[idx], true
}

// SampleCount returns the number of samples per channel in d.
func (i SamplesInfo) SampleCount(d time.Duration) (int64, error) {
	return timespan.SampleCount(i.SampleRate, d)
}

// SizeOfSamples returns the number of bytes needed to store d worth of
// encoded samples across every channel.
func (i SamplesInfo) SizeOfSamples(d time.Duration) (int64, error) {
	n, err := i.SampleCount(d)
	if err != nil {
		return 0, err
	}
	size := int64(i.ChannelCount() * i.SampleType.Size())
	if size != 0 && n > math.MaxInt64/size {
		return 0, fmt.Errorf("%w: %d samples overflow", timespan.ErrDomain, n)
	}

	return n * size, nil
}

// Equal reports whether i and o describe the same encoding. Custom fields
// are compared deeply.
func (i SamplesInfo) Equal(o SamplesInfo) bool {
	return i.Kind == o.Kind &&
		slices.Equal(i.Channels, o.Channels) &&
		i.SampleUnit == o.SampleUnit &&
		i.SampleResolutionInUnit == o.SampleResolutionInUnit &&
		i.SampleOffsetInUnit == o.SampleOffsetInUnit &&
		i.SampleType == o.SampleType &&
		i.SampleRate == o.SampleRate &&
		customEqual(i.Custom, o.Custom)
}

func customEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}

	return reflect.DeepEqual(a, b)
}

// Clone returns a copy of i whose slices and maps are not shared.
func (i SamplesInfo) Clone() SamplesInfo {
	i.Channels = slices.Clone(i.Channels)
	i.Custom = maps.Clone(i.Custom)

	return i
}
