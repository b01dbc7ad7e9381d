// SPDX-License-Identifier: EPL-2.0

package quantize

import "math"

// Integer is the set of element types a sample can be encoded as.
type Integer interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// Number is the set of element types accepted as encode input.
type Number interface {
	Integer | float32 | float64
}

// clipper returns a function saturating an integral float64 to T's range.
// NaN maps to 0.
func clipper[T Integer]() func(float64) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return clampTo[T](math.MinInt8, math.MaxInt8)
	case int16:
		return clampTo[T](math.MinInt16, math.MaxInt16)
	case int32:
		return clampTo[T](math.MinInt32, math.MaxInt32)
	case uint8:
		return clampTo[T](0, math.MaxUint8)
	case uint16:
		return clampTo[T](0, math.MaxUint16)
	case uint32:
		return clampTo[T](0, math.MaxUint32)
	case int64:
		return func(v float64) T {
			var i int64
			switch {
			case math.IsNaN(v):
			case v >= 1<<63:
				i = math.MaxInt64
			case v <= -(1 << 63):
				i = math.MinInt64
			default:
				i = int64(v)
			}
			return T(i)
		}
	default:
		return func(v float64) T {
			var u uint64
			switch {
			case math.IsNaN(v), v <= 0:
			case v >= 1<<64:
				u = math.MaxUint64
			default:
				u = uint64(v)
			}
			return T(u)
		}
	}
}

func clampTo[T Integer](lo, hi float64) func(float64) T {
	return func(v float64) T {
		switch {
		case math.IsNaN(v):
			return 0
		case v < lo:
			v = lo
		case v > hi:
			v = hi
		}
		return T(v)
	}
}

// Clip saturates v to T's range and converts it. NaN maps to 0.
func Clip[T Integer](v float64) T {
	return clipper[T]()(v)
}

// Quantize encodes a single physical value.
func Quantize[T Integer](x, resolution, offset float64) T {
	return Clip[T](math.RoundToEven((x - offset) / resolution))
}
