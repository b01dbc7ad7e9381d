// SPDX-License-Identifier: EPL-2.0

package ingest_test

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/onda/ingest"
	"github.com/ik5/onda/internal/audiotest"
)

func drain(t *testing.T, src ingest.Source, size int) []float32 {
	t.Helper()

	buf := make([]float32, size)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := ingest.NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)
	assert.Equal(t, 8000, r.SampleRate())
	assert.Equal(t, 2, r.Channels())
}

func TestResampler_SameRateIsIdentity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 300, 0.001, 0.5)
	src.MaxValues = 64
	out := drain(t, ingest.NewResampler(src, 8000), 100)

	require.Len(t, out, 600)
	for f := range 300 {
		assert.InDelta(t, float32(f)*0.001, out[2*f], 1e-6)
		assert.InDelta(t, float32(f)*0.001+0.5, out[2*f+1], 1e-6)
	}
}

func TestResampler_OutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to int
		frames   int
		want     int
	}{
		{"down 44100 to 8000", 44100, 8000, 44100, 8000},
		{"up 8000 to 16000", 8000, 16000, 800, 1600},
		{"up 3x", 1000, 3000, 10, 30},
		{"down 3x", 3000, 1000, 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.from, 1, tt.frames, 50)
			out := drain(t, ingest.NewResampler(src, tt.to), 512)
			assert.Len(t, out, tt.want)
		})
	}
}

func TestResampler_UpsampleLinearRamp(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(100, 1, 50, 0.01, 0)
	out := drain(t, ingest.NewResampler(src, 200), 64)

	require.Len(t, out, 100)
	// Catmull-Rom reproduces straight lines away from the edges.
	for i := 2; i < 96; i++ {
		assert.InDelta(t, float64(i)*0.005, float64(out[i]), 1e-5, "frame %d", i)
	}
}

func TestResampler_DownsampleKeepsLowTone(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(48000, 1, 48000, 100)
	out := drain(t, ingest.NewResampler(src, 8000), 1024)

	var peak float64
	for _, v := range out {
		peak = math.Max(peak, math.Abs(float64(v)))
	}
	assert.InDelta(t, 1, peak, 0.05)
}

func TestResampler_Errors(t *testing.T) {
	t.Parallel()

	r := ingest.NewResampler(audiotest.NewSilentSource(8000, 2, 10), 4000)
	_, err := r.ReadSamples(make([]float32, 3))
	require.ErrorIs(t, err, ingest.ErrInvalidDstSize)

	src := audiotest.NewSilentSource(8000, 1, 100)
	src.FailAt = 20
	_, err = io.ReadAll(readerOf(ingest.NewResampler(src, 16000)))
	require.ErrorIs(t, err, audiotest.ErrInjected)

	src = audiotest.NewSilentSource(8000, 1, 0)
	n, err := ingest.NewResampler(src, 16000).ReadSamples(make([]float32, 8))
	assert.Zero(t, n)
	require.ErrorIs(t, err, io.EOF)

	src = audiotest.NewSilentSource(8000, 1, 100)
	src.StallAt = 20
	_, err = io.ReadAll(readerOf(ingest.NewResampler(src, 16000)))
	require.ErrorIs(t, err, io.ErrNoProgress)

	c := audiotest.NewSilentSource(8000, 1, 1)
	require.NoError(t, ingest.NewResampler(c, 16000).Close())
	assert.True(t, c.Closed)
}

// sourceReader exposes a Source as an io.Reader of 4 byte values.
type sourceReader struct {
	src ingest.Source
	buf []float32
}

func readerOf(src ingest.Source) io.Reader {
	return &sourceReader{src: src, buf: make([]float32, 16*src.Channels())}
}

func (r *sourceReader) Read(p []byte) (int, error) {
	n := min(len(p)/4, len(r.buf))
	n -= n % r.src.Channels()
	if n == 0 {
		return 0, io.ErrShortBuffer
	}

	got, err := r.src.ReadSamples(r.buf[:n])
	for i, v := range r.buf[:got] {
		bits := math.Float32bits(v)
		p[4*i], p[4*i+1], p[4*i+2], p[4*i+3] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
	}

	return 4 * got, err
}
