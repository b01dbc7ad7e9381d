// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"fmt"
	"math"
)

// SampleType is the integer encoding of stored samples.
type SampleType uint8

const (
	Invalid SampleType = iota
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
)

var sampleTypeNames = [...]string{
	Invalid: "invalid",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	UInt8:   "uint8",
	UInt16:  "uint16",
	UInt32:  "uint32",
	UInt64:  "uint64",
}

// SampleTypes lists every supported sample type.
func SampleTypes() []SampleType {
	return []SampleType{Int8, Int16, Int32, Int64, UInt8, UInt16, UInt32, UInt64}
}

// ParseSampleType returns the SampleType named s, e.g. "int16".
func ParseSampleType(s string) (SampleType, error) {
	for _, t := range SampleTypes() {
		if sampleTypeNames[t] == s {
			return t, nil
		}
	}

	return Invalid, fmt.Errorf("%w: unsupported sample type %q", ErrValidation, s)
}

// Valid reports whether t is one of the supported integer types.
func (t SampleType) Valid() bool { return t >= Int8 && t <= UInt64 }

func (t SampleType) String() string {
	if int(t) < len(sampleTypeNames) {
		return sampleTypeNames[t]
	}

	return fmt.Sprintf("SampleType(%d)", uint8(t))
}

// Size returns the width of t in bytes.
func (t SampleType) Size() int {
	switch t {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32:
		return 4
	case Int64, UInt64:
		return 8
	}

	return 0
}

// Signed reports whether t is a signed integer type.
func (t SampleType) Signed() bool { return t >= Int8 && t <= Int64 }

// Min returns the smallest value representable by t.
func (t SampleType) Min() float64 {
	switch t {
	case Int8:
		return math.MinInt8
	case Int16:
		return math.MinInt16
	case Int32:
		return math.MinInt32
	case Int64:
		return math.MinInt64
	}

	return 0
}

// Max returns the largest value representable by t.
func (t SampleType) Max() float64 {
	switch t {
	case Int8:
		return math.MaxInt8
	case Int16:
		return math.MaxInt16
	case Int32:
		return math.MaxInt32
	case Int64:
		return math.MaxInt64
	case UInt8:
		return math.MaxUint8
	case UInt16:
		return math.MaxUint16
	case UInt32:
		return math.MaxUint32
	case UInt64:
		return math.MaxUint64
	}

	return 0
}

func (t SampleType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unsupported sample type %d", ErrValidation, uint8(t))
	}

	return []byte(t.String()), nil
}

func (t *SampleType) UnmarshalText(b []byte) error {
	v, err := ParseSampleType(string(b))
	if err != nil {
		return err
	}
	*t = v

	return nil
}
