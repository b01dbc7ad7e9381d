// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
	"github.com/ik5/onda/timespan"
)

func mustPlain(t *testing.T, channels int, st signal.SampleType) *Plain {
	t.Helper()

	f, err := NewPlain(channels, st)
	require.NoError(t, err)

	return f
}

// rampData returns channels x n data of st with distinct per-element values.
func rampData(t *testing.T, st signal.SampleType, channels, n int) samples.Data {
	t.Helper()

	m := samples.NewMatrix[float64](channels, n)
	for c := range channels {
		for j := range n {
			m.Set(c, j, float64((j*channels+c)%100))
		}
	}

	info := signal.SamplesInfo{
		Kind:                   "test",
		Channels:               make([]string, channels),
		SampleUnit:             "unit",
		SampleResolutionInUnit: 1,
		SampleType:             st,
		SampleRate:             10,
	}
	for c := range channels {
		info.Channels[c] = string(rune('a' + c))
	}

	s, err := samples.New(m, info, false)
	require.NoError(t, err)
	enc, err := s.Encode(nil)
	require.NoError(t, err)

	return enc.Data
}

func TestPlain_Layout(t *testing.T) {
	t.Parallel()

	m, err := samples.FromRows([]int16{1, 2}, []int16{-1, 0x0203})
	require.NoError(t, err)

	f := mustPlain(t, 2, signal.Int16)
	b, err := f.Serialize(m)
	require.NoError(t, err)

	// sample 1: ch1=1, ch2=-1; sample 2: ch1=2, ch2=0x0203
	assert.Equal(t, []byte{0x01, 0x00, 0xff, 0xff, 0x02, 0x00, 0x03, 0x02}, b)
}

func TestPlain_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, st := range signal.SampleTypes() {
		t.Run(st.String(), func(t *testing.T) {
			t.Parallel()

			data := rampData(t, st, 3, 17)
			f := mustPlain(t, 3, st)

			b, err := f.Serialize(data)
			require.NoError(t, err)
			assert.Len(t, b, 3*17*st.Size())

			got, err := f.Deserialize(b, 0, samples.All)
			require.NoError(t, err)
			assert.True(t, data.Equal(got))
		})
	}
}

func TestPlain_ExtremeValues(t *testing.T) {
	t.Parallel()

	m, err := samples.FromRows([]int64{math.MinInt64, math.MaxInt64, -1})
	require.NoError(t, err)

	f := mustPlain(t, 1, signal.Int64)
	b, err := f.Serialize(m)
	require.NoError(t, err)

	got, err := f.Deserialize(b, 0, samples.All)
	require.NoError(t, err)
	assert.Equal(t, m.Data, got.(*samples.Matrix[int64]).Data)

	u, err := samples.FromRows([]uint64{math.MaxUint64, 0})
	require.NoError(t, err)
	fu := mustPlain(t, 1, signal.UInt64)
	b, err = fu.Serialize(u)
	require.NoError(t, err)
	gotU, err := fu.Deserialize(b, 0, samples.All)
	require.NoError(t, err)
	assert.Equal(t, u.Data, gotU.(*samples.Matrix[uint64]).Data)
}

func TestPlain_DeserializeRange(t *testing.T) {
	t.Parallel()

	data := rampData(t, signal.UInt16, 2, 10).(*samples.Matrix[uint16])
	f := mustPlain(t, 2, signal.UInt16)
	b, err := f.Serialize(data)
	require.NoError(t, err)

	tests := []struct {
		name          string
		offset, count int
		wantN         int
	}{
		{"middle", 3, 4, 4},
		{"over length", 8, 100, 2},
		{"past end", 20, 5, 0},
		{"all", 0, samples.All, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := f.Deserialize(b, tt.offset, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.wantN, got.SampleCount())
			assert.True(t, data.Sub(tt.offset, tt.count).Equal(got))
		})
	}

	_, err = f.Deserialize(b, -1, 2)
	assert.ErrorIs(t, err, timespan.ErrDomain)
}

func TestPlain_Malformed(t *testing.T) {
	t.Parallel()

	f := mustPlain(t, 2, signal.Int32)
	_, err := f.Deserialize(make([]byte, 12), 0, samples.All)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = f.Serialize(samples.NewMatrix[int32](3, 2))
	assert.ErrorIs(t, err, samples.ErrShapeMismatch)

	_, err = f.Serialize(samples.NewMatrix[int16](2, 2))
	assert.ErrorIs(t, err, samples.ErrShapeMismatch)

	_, err = f.Serialize(samples.NewMatrix[float64](2, 2))
	assert.ErrorIs(t, err, samples.ErrShapeMismatch)

	_, err = NewPlain(0, signal.Int8)
	assert.ErrorIs(t, err, signal.ErrValidation)

	_, err = NewPlain(1, signal.Invalid)
	assert.ErrorIs(t, err, signal.ErrValidation)
}

func TestPlain_SerializeAliasesOnLittleEndian(t *testing.T) {
	t.Parallel()

	if !littleEndianHost {
		t.Skip("zero-copy serialization needs a little-endian host")
	}

	m := samples.NewMatrix[int32](1, 4)
	f := mustPlain(t, 1, signal.Int32)
	b, err := f.Serialize(m)
	require.NoError(t, err)

	m.Set(0, 0, 0x01020304)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b[:4])
}

func TestPlain_DeserializeCallback(t *testing.T) {
	t.Parallel()

	f := mustPlain(t, 4, signal.Int16)

	cb, br, err := f.DeserializeCallback(10, 5)
	require.NoError(t, err)
	assert.Equal(t, ByteRange{Offset: 80, Count: 40, Known: true}, br)

	data := rampData(t, signal.Int16, 4, 30)
	b, err := f.Serialize(data)
	require.NoError(t, err)

	got, err := cb(b[br.Offset : br.Offset+br.Count])
	require.NoError(t, err)
	assert.True(t, data.Slice(10, 5).Equal(got))

	// a block cut short at the end of the object still decodes
	_, br, err = f.DeserializeCallback(28, 5)
	require.NoError(t, err)
	got, err = cb(b[br.Offset:])
	require.NoError(t, err)
	assert.Equal(t, 2, got.SampleCount())

	_, br, err = f.DeserializeCallback(0, samples.All)
	require.NoError(t, err)
	assert.True(t, br.Known)
	assert.Equal(t, int64(math.MaxInt64), br.Count)

	_, _, err = f.DeserializeCallback(-1, 1)
	assert.ErrorIs(t, err, timespan.ErrDomain)
}

func TestFileFormatString(t *testing.T) {
	t.Parallel()

	p := mustPlain(t, 1, signal.Int8)
	assert.Equal(t, "lpcm", FileFormatString(p))
	assert.Equal(t, "lpcm.zst", FileFormatString(NewCompressed(p, Zstd{}, DefaultLevel)))
	assert.Equal(t, "plain", KindPlain.String())
	assert.Equal(t, "compressed", KindCompressed.String())
}
