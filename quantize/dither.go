// SPDX-License-Identifier: EPL-2.0

package quantize

import (
	"fmt"
	"math/rand/v2"
)

// Dither enables triangular dithering during encoding.
type Dither struct {
	// Storage, when non-nil, receives the generated noise and must have the
	// same length as the encoded input.
	Storage []float64

	// Rand is the noise source. A nil Rand uses the global generator.
	Rand *rand.Rand
}

// NewDither returns a Dither with a deterministic PCG source.
func NewDither(seed uint64) *Dither {
	return &Dither{Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d *Dither) float64() float64 {
	if d.Rand != nil {
		return d.Rand.Float64()
	}

	return rand.Float64()
}

// noise fills and returns n samples of triangular noise spanning one
// quantization step on each side of zero. A nil receiver returns nil.
func (d *Dither) noise(n int, resolution float64) ([]float64, error) {
	if d == nil {
		return nil, nil
	}

	buf := d.Storage
	switch {
	case buf == nil:
		buf = make([]float64, n)
	case len(buf) != n:
		return nil, fmt.Errorf("%w: dither storage has %d elements, want %d", ErrLength, len(buf), n)
	}

	for i := range buf {
		buf[i] = (d.float64() - d.float64()) * resolution
	}

	return buf, nil
}
