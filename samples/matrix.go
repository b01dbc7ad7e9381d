// SPDX-License-Identifier: EPL-2.0

package samples

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/onda/quantize"
	"github.com/ik5/onda/signal"
)

// All requests every remaining sample.
const All = math.MaxInt

// Element is the set of matrix element types: encoded integer codes or
// decoded float64 values.
type Element interface {
	quantize.Integer | float64
}

// Matrix is a channels x samples matrix stored interleaved: all channels
// of sample 0, then all channels of sample 1, and so on. This is also the
// LPCM byte order, so serialization never transposes.
type Matrix[T Element] struct {
	Data     []T
	Channels int
}

// NewMatrix allocates a zeroed channels x n matrix.
func NewMatrix[T Element](channels, n int) *Matrix[T] {
	return &Matrix[T]{Data: make([]T, channels*n), Channels: channels}
}

// FromRows builds a matrix from one slice per channel.
func FromRows[T Element](rows ...[]T) (*Matrix[T], error) {
	if len(rows) == 0 {
		return &Matrix[T]{}, nil
	}

	n := len(rows[0])
	m := NewMatrix[T](len(rows), n)
	for c, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d samples, want %d", ErrShapeMismatch, c, len(row), n)
		}
		for j, v := range row {
			m.Data[j*m.Channels+c] = v
		}
	}

	return m, nil
}

func (m *Matrix[T]) ChannelCount() int { return m.Channels }

func (m *Matrix[T]) SampleCount() int {
	if m.Channels == 0 {
		return 0
	}

	return len(m.Data) / m.Channels
}

// At returns the value of channel c at sample j.
func (m *Matrix[T]) At(c, j int) T { return m.Data[j*m.Channels+c] }

// Set stores v as the value of channel c at sample j.
func (m *Matrix[T]) Set(c, j int, v T) { m.Data[j*m.Channels+c] = v }

// Row returns a copy of channel c.
func (m *Matrix[T]) Row(c int) []T {
	n := m.SampleCount()
	out := make([]T, n)
	for j := range n {
		out[j] = m.Data[j*m.Channels+c]
	}

	return out
}

// Sub returns up to n samples starting at offset, clamped to what is
// available. The result shares storage with m.
func (m *Matrix[T]) Sub(offset, n int) *Matrix[T] {
	total := m.SampleCount()
	offset = min(max(offset, 0), total)
	n = min(max(n, 0), total-offset)

	lo := offset * m.Channels
	hi := lo + n*m.Channels

	return &Matrix[T]{Data: m.Data[lo:hi:hi], Channels: m.Channels}
}

func (m *Matrix[T]) Slice(offset, n int) Data { return m.Sub(offset, n) }

// Rows returns a new matrix holding the given channels in order.
func (m *Matrix[T]) Rows(idx []int) Data {
	n := m.SampleCount()
	out := NewMatrix[T](len(idx), n)
	for j := range n {
		src := m.Data[j*m.Channels : (j+1)*m.Channels]
		dst := out.Data[j*len(idx) : (j+1)*len(idx)]
		for k, c := range idx {
			dst[k] = src[c]
		}
	}

	return out
}

func (m *Matrix[T]) Clone() Data {
	return &Matrix[T]{Data: slices.Clone(m.Data), Channels: m.Channels}
}

func (m *Matrix[T]) Equal(o Data) bool {
	other, ok := o.(*Matrix[T])
	if !ok || other == nil {
		return false
	}

	return m.Channels == other.Channels && slices.Equal(m.Data, other.Data)
}

func (m *Matrix[T]) ElementType() (signal.SampleType, bool) {
	return elementType[T]()
}

func (m *Matrix[T]) String() string {
	var zero T
	return fmt.Sprintf("Matrix[%T](%d x %d)", zero, m.Channels, m.SampleCount())
}

func elementType[T Element]() (signal.SampleType, bool) {
	var zero T
	switch any(zero).(type) {
	case int8:
		return signal.Int8, true
	case int16:
		return signal.Int16, true
	case int32:
		return signal.Int32, true
	case int64:
		return signal.Int64, true
	case uint8:
		return signal.UInt8, true
	case uint16:
		return signal.UInt16, true
	case uint32:
		return signal.UInt32, true
	case uint64:
		return signal.UInt64, true
	}

	return signal.Invalid, false
}

// NewData allocates a zeroed channels x n matrix of the given sample type.
func NewData(t signal.SampleType, channels, n int) (Data, error) {
	switch t {
	case signal.Int8:
		return NewMatrix[int8](channels, n), nil
	case signal.Int16:
		return NewMatrix[int16](channels, n), nil
	case signal.Int32:
		return NewMatrix[int32](channels, n), nil
	case signal.Int64:
		return NewMatrix[int64](channels, n), nil
	case signal.UInt8:
		return NewMatrix[uint8](channels, n), nil
	case signal.UInt16:
		return NewMatrix[uint16](channels, n), nil
	case signal.UInt32:
		return NewMatrix[uint32](channels, n), nil
	case signal.UInt64:
		return NewMatrix[uint64](channels, n), nil
	}

	return nil, fmt.Errorf("%w: unsupported sample type %s", signal.ErrValidation, t)
}
