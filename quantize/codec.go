// SPDX-License-Identifier: EPL-2.0

package quantize

import (
	"fmt"
	"math"
	"unsafe"
)

// sameSlice returns src viewed as []T when S and T are the same type.
func sameSlice[T, S any](src []S) ([]T, bool) {
	var zero S
	if _, ok := any(zero).(T); !ok {
		return nil, false
	}

	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(src))), len(src)), true
}

func isIdentity(resolution, offset float64) bool {
	return resolution == 1 && offset == 0
}

// Encode quantizes src into a new []T. When T matches S and the transform
// is the identity, src itself is returned.
func Encode[T Integer, S Number](resolution, offset float64, src []S, d *Dither) ([]T, error) {
	if isIdentity(resolution, offset) {
		if same, ok := sameSlice[T](src); ok {
			return same, nil
		}
	}

	dst := make([]T, len(src))
	if err := EncodeInto(dst, resolution, offset, src, d); err != nil {
		return nil, err
	}

	return dst, nil
}

// EncodeInto quantizes src into dst, which must have the same length.
func EncodeInto[T Integer, S Number](dst []T, resolution, offset float64, src []S, d *Dither) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d elements, src has %d", ErrLength, len(dst), len(src))
	}
	if isIdentity(resolution, offset) {
		if same, ok := sameSlice[T](src); ok {
			copy(dst, same)
			return nil
		}
	}

	noise, err := d.noise(len(src), resolution)
	if err != nil {
		return err
	}

	clip := clipper[T]()
	if noise == nil {
		for i, x := range src {
			dst[i] = clip(math.RoundToEven((float64(x) - offset) / resolution))
		}
		return nil
	}

	for i, x := range src {
		dst[i] = clip(math.RoundToEven((float64(x) + noise[i] - offset) / resolution))
	}

	return nil
}

// Decode maps src to physical values. When src is already []float64 and the
// transform is the identity, src itself is returned.
func Decode[S Number](resolution, offset float64, src []S) []float64 {
	if isIdentity(resolution, offset) {
		if same, ok := sameSlice[float64](src); ok {
			return same
		}
	}

	dst := make([]float64, len(src))
	decodeInto(dst, resolution, offset, src)

	return dst
}

// DecodeInto maps src to physical values in dst, which must have the same
// length.
func DecodeInto[S Number](dst []float64, resolution, offset float64, src []S) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst has %d elements, src has %d", ErrLength, len(dst), len(src))
	}
	decodeInto(dst, resolution, offset, src)

	return nil
}

func decodeInto[S Number](dst []float64, resolution, offset float64, src []S) {
	if isIdentity(resolution, offset) {
		for i, x := range src {
			dst[i] = float64(x)
		}
		return
	}

	for i, x := range src {
		dst[i] = resolution*float64(x) + offset
	}
}
