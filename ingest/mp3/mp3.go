// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files into ingest sources using
// github.com/hajimehoshi/go-mp3.
package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/onda/ingest"
)

// channels is fixed: go-mp3 always produces interleaved stereo.
const channels = 2

// Reader is the PCM side of a go-mp3 decoder: 16 bit little-endian stereo.
type Reader interface {
	Read(p []byte) (int, error)
	SampleRate() int
}

// Source adapts a Reader to ingest.Source.
type Source struct {
	dec  Reader
	buf  []byte
	tail int
}

// NewSource wraps an already opened decoder.
func NewSource(dec Reader) *Source {
	return &Source{dec: dec}
}

func (s *Source) SampleRate() int { return s.dec.SampleRate() }
func (s *Source) Channels() int   { return channels }
func (s *Source) Close() error    { return nil }

// ReadSamples fills dst with whole stereo frames. Odd bytes left over by a
// short read are kept for the next call.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%channels != 0 {
		return 0, ingest.ErrInvalidDstSize
	}

	need := 2 * len(dst)
	if cap(s.buf) < need {
		buf := make([]byte, need)
		copy(buf, s.buf[:s.tail])
		s.buf = buf
	}
	s.buf = s.buf[:need]

	n, err := io.ReadAtLeast(s.dec, s.buf[s.tail:], min(4, need-s.tail))
	n += s.tail

	frames := n / 4
	for i := range frames * channels {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}
	s.tail = copy(s.buf, s.buf[frames*4:n])

	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return frames * channels, io.EOF
	case err != nil:
		return frames * channels, fmt.Errorf("%w", err)
	}

	return frames * channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (ingest.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return NewSource(dec), nil
}
