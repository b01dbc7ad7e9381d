// SPDX-License-Identifier: EPL-2.0

package ingest

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// PCMReader is the buffer-filling side of the go-audio decoders.
type PCMReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// PCMSource adapts a go-audio decoder to Source.
type PCMSource struct {
	dec        PCMReader
	sampleRate int
	channels   int
	scale      float32
	// bias is subtracted before scaling; 8 bit WAV samples are unsigned.
	bias   int
	intBuf *goaudio.IntBuffer
	eof    bool
}

// NewPCMSource returns a Source over dec producing integer samples of the
// given bit depth. Unsigned samples are centered before normalizing.
func NewPCMSource(dec PCMReader, sampleRate, channels, bitDepth int, unsigned bool) (*PCMSource, error) {
	if channels <= 0 {
		return nil, ErrNoChannels
	}
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bit samples", ErrUnsupported, bitDepth)
	}

	s := &PCMSource{
		dec:        dec,
		sampleRate: sampleRate,
		channels:   channels,
		scale:      1 / float32(int64(1)<<(bitDepth-1)),
		intBuf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		},
	}
	if unsigned {
		s.bias = 1 << (bitDepth - 1)
	}

	return s, nil
}

func (s *PCMSource) SampleRate() int { return s.sampleRate }
func (s *PCMSource) Channels() int   { return s.channels }
func (s *PCMSource) Close() error    { return nil }

func (s *PCMSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	n -= n % s.channels
	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.bias) * s.scale
	}

	switch {
	case err != nil && err != io.EOF: //nolint:errorlint
		return n, fmt.Errorf("%w", err)
	case err == io.EOF || n < len(dst): //nolint:errorlint
		s.eof = true
		return n, io.EOF
	}

	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering audio: %w", err)
	}

	return bytes.NewReader(data), nil
}
