// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/ik5/onda/quantize"
	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
)

var littleEndianHost = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// asBytes returns the little-endian bytes of v. On little-endian hosts the
// result aliases v.
func asBytes[T quantize.Integer](v []T) []byte {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(v) == 0 {
		return []byte{}
	}
	if littleEndianHost {
		return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(v))), len(v)*size)
	}

	out := make([]byte, len(v)*size)
	for i, x := range v {
		putLE(out[i*size:], size, uint64(x))
	}

	return out
}

func putLE(b []byte, size int, x uint64) {
	switch size {
	case 1:
		b[0] = byte(x)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(x))
	default:
		binary.LittleEndian.PutUint64(b, x)
	}
}

func getLE(b []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	}

	return binary.LittleEndian.Uint64(b)
}

// fromBytes copies little-endian elements out of b, whose length must be a
// multiple of the element size.
func fromBytes[T quantize.Integer](b []byte, channels int) *samples.Matrix[T] {
	var zero T
	size := int(unsafe.Sizeof(zero))
	m := &samples.Matrix[T]{Data: make([]T, len(b)/size), Channels: channels}
	if len(m.Data) == 0 {
		return m
	}

	if littleEndianHost {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(m.Data))), len(b)), b)
		return m
	}
	for i := range m.Data {
		m.Data[i] = T(getLE(b[i*size:], size))
	}

	return m
}

func dataBytes(data samples.Data) ([]byte, error) {
	switch m := data.(type) {
	case *samples.Matrix[int8]:
		return asBytes(m.Data), nil
	case *samples.Matrix[int16]:
		return asBytes(m.Data), nil
	case *samples.Matrix[int32]:
		return asBytes(m.Data), nil
	case *samples.Matrix[int64]:
		return asBytes(m.Data), nil
	case *samples.Matrix[uint8]:
		return asBytes(m.Data), nil
	case *samples.Matrix[uint16]:
		return asBytes(m.Data), nil
	case *samples.Matrix[uint32]:
		return asBytes(m.Data), nil
	case *samples.Matrix[uint64]:
		return asBytes(m.Data), nil
	}

	return nil, fmt.Errorf("%w: cannot serialize %v", samples.ErrShapeMismatch, data)
}

func bytesData(t signal.SampleType, b []byte, channels int) (samples.Data, error) {
	switch t {
	case signal.Int8:
		return fromBytes[int8](b, channels), nil
	case signal.Int16:
		return fromBytes[int16](b, channels), nil
	case signal.Int32:
		return fromBytes[int32](b, channels), nil
	case signal.Int64:
		return fromBytes[int64](b, channels), nil
	case signal.UInt8:
		return fromBytes[uint8](b, channels), nil
	case signal.UInt16:
		return fromBytes[uint16](b, channels), nil
	case signal.UInt32:
		return fromBytes[uint32](b, channels), nil
	case signal.UInt64:
		return fromBytes[uint64](b, channels), nil
	}

	return nil, fmt.Errorf("%w: unsupported sample type %s", signal.ErrValidation, t)
}
