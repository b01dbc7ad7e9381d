// SPDX-License-Identifier: EPL-2.0

package ingest

import (
	"errors"
	"fmt"
	"io"
)

// Resampler converts a Source to another sample rate with Catmull-Rom cubic
// interpolation, preserving the channel count. When downsampling, input
// frames pass through a one-pole low-pass filter first.
type Resampler struct {
	src      Source
	srcRate  int64
	rate     int64
	channels int

	// ring holds the four most recently read source frames; frame i lives
	// in slot i%4.
	ring   [4][]float32
	loaded int64
	eof    bool

	// next is the index of the next output frame.
	next int64

	in    []float32
	inPos int

	smooth []float32
	alpha  float32
}

func NewResampler(src Source, rate int) *Resampler {
	channels := src.Channels()
	r := &Resampler{
		src:      src,
		srcRate:  int64(src.SampleRate()),
		rate:     int64(rate),
		channels: channels,
		in:       make([]float32, 0, 1024*channels),
		smooth:   make([]float32, channels),
		alpha:    1,
	}
	if r.srcRate > r.rate {
		r.alpha = 0.5
	}
	for i := range r.ring {
		r.ring[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return int(r.rate) }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull reads the next source frame into the ring.
func (r *Resampler) pull() error {
	for empty := 0; r.inPos >= len(r.in); {
		if r.eof {
			return io.EOF
		}

		n, err := r.src.ReadSamples(r.in[:cap(r.in)])
		r.in, r.inPos = r.in[:n-n%r.channels], 0
		switch {
		case errors.Is(err, io.EOF):
			r.eof = true
		case err != nil:
			return fmt.Errorf("%w", err)
		case len(r.in) > 0:
			empty = 0
		default:
			if empty++; empty >= maxEmptyReads {
				return io.ErrNoProgress
			}
		}
	}

	frame := r.ring[r.loaded%4]
	copy(frame, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.alpha < 1 {
		if r.loaded == 0 {
			copy(r.smooth, frame)
		}
		for c, v := range frame {
			r.smooth[c] = r.alpha*v + (1-r.alpha)*r.smooth[c]
			frame[c] = r.smooth[c]
		}
	}
	r.loaded++

	return nil
}

// frame returns source frame i, clamped to the frames read so far.
func (r *Resampler) frame(i int64) []float32 {
	i = max(0, min(i, r.loaded-1))

	return r.ring[i%4]
}

// catmullRom interpolates between y1 and y2 at x in [0, 1].
func catmullRom(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}

// ReadSamples fills dst with frames at the target rate. len(dst) must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		pos := r.next * r.srcRate
		base := pos / r.rate

		for r.loaded < base+3 {
			err := r.pull()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return written, err
			}
		}
		if base >= r.loaded {
			return written, io.EOF
		}

		x := float32(pos%r.rate) / float32(r.rate)
		f0, f1, f2, f3 := r.frame(base-1), r.frame(base), r.frame(base+1), r.frame(base+2)
		for c := range r.channels {
			dst[written+c] = catmullRom(f0[c], f1[c], f2[c], f3[c], x)
		}

		written += r.channels
		r.next++
	}

	return written, nil
}
