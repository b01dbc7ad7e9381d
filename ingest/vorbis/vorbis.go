// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files into ingest sources using
// github.com/jfreymuth/oggvorbis.
package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/onda/ingest"
)

// Reader is the float side of an oggvorbis reader. Read returns the number
// of values written, always whole frames.
type Reader interface {
	SampleRate() int
	Channels() int
	Read(p []float32) (int, error)
}

type Source struct {
	dec Reader
}

func NewSource(dec Reader) *Source { return &Source{dec: dec} }

func (s *Source) SampleRate() int { return s.dec.SampleRate() }
func (s *Source) Channels() int   { return s.dec.Channels() }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.dec.Channels() != 0 {
		return 0, ingest.ErrInvalidDstSize
	}

	n, err := s.dec.Read(dst)
	switch {
	case errors.Is(err, io.EOF):
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("%w", err)
	case n == 0 && len(dst) > 0:
		return 0, io.EOF
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (ingest.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}
	if dec.Channels() <= 0 {
		return nil, ingest.ErrNoChannels
	}

	return NewSource(dec), nil
}
