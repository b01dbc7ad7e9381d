// SPDX-License-Identifier: EPL-2.0

package samples

import (
	"fmt"
	"time"

	"github.com/ik5/onda/quantize"
	"github.com/ik5/onda/signal"
	"github.com/ik5/onda/timespan"
)

// Samples is a channels x samples matrix tagged with its descriptor and
// with whether it holds encoded integer codes or decoded physical values.
// Data is nil only when validation was disabled; counts are then 0 and
// operations that need data fail with ErrShapeMismatch.
type Samples struct {
	Data    Data
	Info    signal.SamplesInfo
	Encoded bool
}

// New wraps data. Unless validation is disabled with
// signal.WithoutValidation, the row count must equal the channel count and
// encoded data must have the element type declared by info.
func New(data Data, info signal.SamplesInfo, encoded bool, opts ...signal.Option) (Samples, error) {
	s := Samples{Data: data, Info: info, Encoded: encoded}

	if signal.ValidationEnabled(opts...) {
		if err := s.Validate(); err != nil {
			return Samples{}, err
		}
	}

	return s, nil
}

// Validate checks that Data agrees with Info.
func (s Samples) Validate() error {
	if s.Data == nil {
		return errNilData()
	}
	if got, want := s.Data.ChannelCount(), s.Info.ChannelCount(); got != want {
		return fmt.Errorf("%w: data has %d rows, descriptor has %d channels", ErrShapeMismatch, got, want)
	}
	if s.Encoded {
		t, ok := s.Data.ElementType()
		if !ok || t != s.Info.SampleType {
			return fmt.Errorf("%w: encoded data of %v, descriptor declares %s", ErrShapeMismatch, s.Data, s.Info.SampleType)
		}
	}

	return nil
}

// Equal reports whether s and o have equal encoded state, descriptors and
// data contents.
func (s Samples) Equal(o Samples) bool {
	if s.Encoded != o.Encoded || !s.Info.Equal(o.Info) {
		return false
	}
	if s.Data == nil || o.Data == nil {
		return s.Data == nil && o.Data == nil
	}

	return s.Data.Equal(o.Data)
}

// ChannelCount returns the number of rows, 0 for nil data.
func (s Samples) ChannelCount() int {
	if s.Data == nil {
		return 0
	}

	return s.Data.ChannelCount()
}

// SampleCount returns the number of samples per channel, 0 for nil data.
func (s Samples) SampleCount() int {
	if s.Data == nil {
		return 0
	}

	return s.Data.SampleCount()
}

func errNilData() error { return fmt.Errorf("%w: nil data", ErrShapeMismatch) }

// Channel returns the row of the named channel.
func (s Samples) Channel(name string) (int, bool) { return s.Info.Channel(name) }

// ChannelName returns the name of row idx.
func (s Samples) ChannelName(idx int) (string, bool) { return s.Info.ChannelName(idx) }

// Duration returns the time covered by the samples at the descriptor's rate.
func (s Samples) Duration() (time.Duration, error) {
	return timespan.TimeFromIndex(s.Info.SampleRate, int64(s.SampleCount())+1)
}

// Encode returns s with its data quantized to Info.SampleType. Already
// encoded samples are returned as is. A nil d disables dithering.
func (s Samples) Encode(d *quantize.Dither) (Samples, error) {
	if s.Encoded {
		return s, nil
	}
	if s.Data == nil {
		return Samples{}, errNilData()
	}

	data, err := s.Data.encodeAs(s.Info.SampleType, s.Info.SampleResolutionInUnit, s.Info.SampleOffsetInUnit, d)
	if err != nil {
		return Samples{}, err
	}

	return Samples{Data: data, Info: s.Info, Encoded: true}, nil
}

// EncodeInto writes the encoded data of s into dst, which must match the
// shape of s and have Info.SampleType elements. Already encoded data is
// copied.
func (s Samples) EncodeInto(dst Data, d *quantize.Dither) (Samples, error) {
	if s.Data == nil || dst == nil {
		return Samples{}, errNilData()
	}
	if t, ok := dst.ElementType(); !ok || t != s.Info.SampleType {
		return Samples{}, fmt.Errorf("%w: destination %v, descriptor declares %s", ErrShapeMismatch, dst, s.Info.SampleType)
	}

	var err error
	if s.Encoded {
		err = s.Data.copyInto(dst)
	} else {
		err = s.Data.encodeInto(dst, s.Info.SampleResolutionInUnit, s.Info.SampleOffsetInUnit, d)
	}
	if err != nil {
		return Samples{}, err
	}

	return Samples{Data: dst, Info: s.Info, Encoded: true}, nil
}

// Decode returns s with its data mapped to physical values. Decoded
// samples are returned as is.
func (s Samples) Decode() Samples {
	if !s.Encoded || s.Data == nil {
		return s
	}

	data := s.Data.decode(s.Info.SampleResolutionInUnit, s.Info.SampleOffsetInUnit)

	return Samples{Data: data, Info: s.Info, Encoded: false}
}

// DecodeInto writes the decoded data of s into dst. Already decoded data is
// copied.
func (s Samples) DecodeInto(dst *Matrix[float64]) (Samples, error) {
	if s.Data == nil || dst == nil {
		return Samples{}, errNilData()
	}
	resolution, offset := s.Info.SampleResolutionInUnit, s.Info.SampleOffsetInUnit
	if !s.Encoded {
		resolution, offset = 1, 0
	}
	if err := s.Data.decodeInto(dst, resolution, offset); err != nil {
		return Samples{}, err
	}

	return Samples{Data: dst, Info: s.Info, Encoded: false}, nil
}

// Slice returns up to n samples starting at the 0-based offset. The result
// shares storage with s.
func (s Samples) Slice(offset, n int) Samples {
	if s.Data == nil {
		return s
	}

	return Samples{Data: s.Data.Slice(offset, n), Info: s.Info, Encoded: s.Encoded}
}

// Span returns the samples active during span, sharing storage with s. A
// span running past the end is truncated; one starting past the end is an
// error.
func (s Samples) Span(span timespan.TimeSpan) (Samples, error) {
	r, err := timespan.IndexRangeFromSpan(s.Info.SampleRate, span)
	if err != nil {
		return Samples{}, err
	}
	if r.First > int64(s.SampleCount()) {
		return Samples{}, fmt.Errorf("%w: span %s starts after the last of %d samples", timespan.ErrDomain, span, s.SampleCount())
	}

	return s.Slice(int(r.First-1), int(r.Len())), nil
}

// Channels returns a copy of s restricted to the named channels, in the
// order given.
func (s Samples) Channels(names ...string) (Samples, error) {
	if s.Data == nil {
		return Samples{}, errNilData()
	}
	idx := make([]int, len(names))
	seen := make(map[string]struct{}, len(names))
	for k, name := range names {
		c, ok := s.Info.Channel(name)
		if !ok {
			return Samples{}, fmt.Errorf("%w: unknown channel %q", timespan.ErrDomain, name)
		}
		if _, dup := seen[name]; dup {
			return Samples{}, fmt.Errorf("%w: channel %q", signal.ErrDuplicateKey, name)
		}
		seen[name] = struct{}{}
		idx[k] = c
	}

	info := s.Info.Clone()
	info.Channels = append([]string(nil), names...)

	return Samples{Data: s.Data.Rows(idx), Info: info, Encoded: s.Encoded}, nil
}
