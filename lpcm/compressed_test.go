// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
)

func TestCompressed_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, level := range []int{1, DefaultLevel, 19} {
		f := NewCompressed(mustPlain(t, 3, signal.Int32), Zstd{}, level)
		data := rampData(t, signal.Int32, 3, 500)

		b, err := f.Serialize(data)
		require.NoError(t, err)
		assert.Less(t, len(b), 3*500*4, "ramp data must compress")

		got, err := f.Deserialize(b, 0, samples.All)
		require.NoError(t, err)
		assert.True(t, data.Equal(got))

		part, err := f.Deserialize(b, 100, 50)
		require.NoError(t, err)
		assert.True(t, data.Slice(100, 50).Equal(part))
	}
}

func TestCompressed_Malformed(t *testing.T) {
	t.Parallel()

	f := NewCompressed(mustPlain(t, 1, signal.Int8), Zstd{}, DefaultLevel)
	_, err := f.Deserialize([]byte("definitely not zstd"), 0, samples.All)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestCompressed_DeserializeCallback(t *testing.T) {
	t.Parallel()

	f := NewCompressed(mustPlain(t, 2, signal.Int16), Zstd{}, DefaultLevel)
	cb, br, err := f.DeserializeCallback(5, 3)
	require.NoError(t, err)
	assert.False(t, br.Known)
	assert.Equal(t, KindCompressed, f.Kind())

	data := rampData(t, signal.Int16, 2, 20)
	b, err := f.Serialize(data)
	require.NoError(t, err)

	got, err := cb(b)
	require.NoError(t, err)
	assert.True(t, data.Slice(5, 3).Equal(got))
}

func TestCompressed_Accessors(t *testing.T) {
	t.Parallel()

	p := mustPlain(t, 2, signal.UInt8)
	f := NewCompressed(p, Zstd{}, 7)
	assert.Equal(t, 7, f.Level())
	assert.Same(t, p, f.Plain())
	assert.Equal(t, 2, f.ChannelCount())
	assert.Equal(t, signal.UInt8, f.SampleType())

	var buf bytes.Buffer
	_, err := WithSerializer(f, &buf, func(s Serializer) error {
		return s.Serialize(samples.NewMatrix[uint8](2, 3))
	})
	require.NoError(t, err)

	got, err := f.Deserialize(buf.Bytes(), 0, samples.All)
	require.NoError(t, err)
	assert.Equal(t, 3, got.SampleCount())
}
