// SPDX-License-Identifier: EPL-2.0

package samples

import (
	"fmt"

	"github.com/ik5/onda/quantize"
	"github.com/ik5/onda/signal"
)

// Data is a channels x samples matrix of any Element type. It is
// implemented by *Matrix[T] only.
type Data interface {
	ChannelCount() int
	SampleCount() int

	// Slice returns up to n samples starting at offset, sharing storage.
	Slice(offset, n int) Data
	// Rows returns a copy holding the given channels in order.
	Rows(idx []int) Data
	Clone() Data
	Equal(o Data) bool

	// ElementType reports the integer sample type of the elements. It
	// returns false for float64 matrices.
	ElementType() (signal.SampleType, bool)

	encodeAs(t signal.SampleType, resolution, offset float64, d *quantize.Dither) (Data, error)
	encodeInto(dst Data, resolution, offset float64, d *quantize.Dither) error
	decode(resolution, offset float64) *Matrix[float64]
	decodeInto(dst *Matrix[float64], resolution, offset float64) error
	copyInto(dst Data) error
}

func sameShape(a, b Data) error {
	if a.ChannelCount() != b.ChannelCount() || a.SampleCount() != b.SampleCount() {
		return fmt.Errorf("%w: %d x %d into %d x %d", ErrShapeMismatch,
			a.ChannelCount(), a.SampleCount(), b.ChannelCount(), b.SampleCount())
	}

	return nil
}

func encodeMatrix[T quantize.Integer, S Element](m *Matrix[S], resolution, offset float64, d *quantize.Dither) (Data, error) {
	out, err := quantize.Encode[T](resolution, offset, m.Data, d)
	if err != nil {
		return nil, err
	}

	return &Matrix[T]{Data: out, Channels: m.Channels}, nil
}

func (m *Matrix[T]) encodeAs(t signal.SampleType, resolution, offset float64, d *quantize.Dither) (Data, error) {
	switch t {
	case signal.Int8:
		return encodeMatrix[int8](m, resolution, offset, d)
	case signal.Int16:
		return encodeMatrix[int16](m, resolution, offset, d)
	case signal.Int32:
		return encodeMatrix[int32](m, resolution, offset, d)
	case signal.Int64:
		return encodeMatrix[int64](m, resolution, offset, d)
	case signal.UInt8:
		return encodeMatrix[uint8](m, resolution, offset, d)
	case signal.UInt16:
		return encodeMatrix[uint16](m, resolution, offset, d)
	case signal.UInt32:
		return encodeMatrix[uint32](m, resolution, offset, d)
	case signal.UInt64:
		return encodeMatrix[uint64](m, resolution, offset, d)
	}

	return nil, fmt.Errorf("%w: unsupported sample type %s", signal.ErrValidation, t)
}

func (m *Matrix[T]) encodeInto(dst Data, resolution, offset float64, d *quantize.Dither) error {
	if err := sameShape(m, dst); err != nil {
		return err
	}

	switch out := dst.(type) {
	case *Matrix[int8]:
		return quantize.EncodeInto(out.Data, resolution, offset, m.Data, d)
	case *Matrix[int16]:
		return quantize.EncodeInto(out.Data, resolution, offset, m.Data, d)
	case *Matrix[int32]:
		return quantize.EncodeInto(out.Data, resolution, offset, m.Data, d)
	case *Matrix[int64]:
		return quantize.EncodeInto(out.Data, resolution, offset, m.Data, d)
	case *Matrix[uint8]:
		return quantize.EncodeInto(out.Data, resolution, offset, m.Data, d)
	case *Matrix[uint16]:
		return quantize.EncodeInto(out.Data, resolution, offset, m.Data, d)
	case *Matrix[uint32]:
		return quantize.EncodeInto(out.Data, resolution, offset, m.Data, d)
	case *Matrix[uint64]:
		return quantize.EncodeInto(out.Data, resolution, offset, m.Data, d)
	}

	return fmt.Errorf("%w: cannot encode into %v", ErrShapeMismatch, dst)
}

func (m *Matrix[T]) decode(resolution, offset float64) *Matrix[float64] {
	return &Matrix[float64]{Data: quantize.Decode(resolution, offset, m.Data), Channels: m.Channels}
}

func (m *Matrix[T]) decodeInto(dst *Matrix[float64], resolution, offset float64) error {
	if err := sameShape(m, dst); err != nil {
		return err
	}

	return quantize.DecodeInto(dst.Data, resolution, offset, m.Data)
}

func (m *Matrix[T]) copyInto(dst Data) error {
	if err := sameShape(m, dst); err != nil {
		return err
	}
	out, ok := dst.(*Matrix[T])
	if !ok {
		return fmt.Errorf("%w: cannot copy %v into %v", ErrShapeMismatch, m, dst)
	}
	copy(out.Data, m.Data)

	return nil
}
