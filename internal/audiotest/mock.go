// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrInjected is returned by sources built with FailAfter.
var ErrInjected = errors.New("injected read failure")

// Source generates frames from a waveform. It satisfies ingest.Source.
type Source struct {
	rate     int
	channels int
	frames   int
	read     int
	waveform func(frame, channel int) float32

	// MaxValues caps the values returned per ReadSamples call when > 0.
	MaxValues int
	// FailAt makes ReadSamples fail once this many frames were read, when
	// > 0.
	FailAt int
	// StallAt makes ReadSamples return no values and no error once this
	// many frames were read, when > 0.
	StallAt int
	Closed  bool
}

// New returns a source of frames frames produced by waveform.
func New(rate, channels, frames int, waveform func(frame, channel int) float32) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, waveform: waveform}
}

func NewSilentSource(rate, channels, frames int) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return 0 })
}

// NewSineSource returns a sine wave of the given frequency on every channel.
func NewSineSource(rate, channels, frames int, frequency float64) *Source {
	return New(rate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

func NewConstantSource(rate, channels, frames int, value float32) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return value })
}

// NewRampSource returns frame*step + channel*offset on each channel.
func NewRampSource(rate, channels, frames int, step, offset float32) *Source {
	return New(rate, channels, frames, func(frame, channel int) float32 {
		return float32(frame)*step + float32(channel)*offset
	})
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }

func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// Reset rewinds the source to its first frame.
func (s *Source) Reset() { s.read = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.FailAt > 0 && s.read >= s.FailAt {
		return 0, ErrInjected
	}
	if s.StallAt > 0 && s.read >= s.StallAt {
		return 0, nil
	}
	if s.read >= s.frames {
		return 0, io.EOF
	}

	limit := len(dst)
	if s.MaxValues > 0 {
		limit = min(limit, s.MaxValues)
	}
	n := min(limit/s.channels, s.frames-s.read)
	if s.FailAt > 0 {
		n = min(n, s.FailAt-s.read)
	}

	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.waveform(s.read+f, c)
		}
	}
	s.read += n

	if s.read >= s.frames {
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}
