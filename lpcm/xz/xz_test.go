// SPDX-License-Identifier: EPL-2.0

package xz

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/onda/lpcm"
	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
)

func testInfo() signal.SamplesInfo {
	return signal.SamplesInfo{
		Kind:                   "accelerometer",
		Channels:               []string{"x", "y", "z"},
		SampleUnit:             "standard_gravity",
		SampleResolutionInUnit: 1.0 / 4096,
		SampleType:             signal.Int16,
		SampleRate:             50,
	}
}

func testData() *samples.Matrix[int16] {
	m := samples.NewMatrix[int16](3, 400)
	for j := range 400 {
		m.Set(0, j, int16(j%16))
		m.Set(1, j, 4096)
		m.Set(2, j, int16(-j))
	}

	return m
}

func TestDictCap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1<<16, DictCap(-1))
	assert.Equal(t, 1<<19, DictCap(3))
	assert.Equal(t, 1<<25, DictCap(100))
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := lpcm.DefaultRegistry()
	require.NoError(t, Register(reg))
	assert.Equal(t, []string{"lpcm", "lpcm.xz", "lpcm.zst"}, reg.Tags())

	f, err := reg.Format("lpcm.xz", testInfo())
	require.NoError(t, err)

	data := testData()
	b, err := f.Serialize(data)
	require.NoError(t, err)

	got, err := f.Deserialize(b, 0, samples.All)
	require.NoError(t, err)
	assert.True(t, data.Equal(got))

	_, br, err := f.DeserializeCallback(10, 10)
	require.NoError(t, err)
	assert.False(t, br.Known)
}

func TestStream(t *testing.T) {
	t.Parallel()

	p, err := lpcm.PlainFor(testInfo())
	require.NoError(t, err)
	f := lpcm.NewCompressed(p, Codec{}, 1)
	data := testData()

	var buf bytes.Buffer
	_, err = lpcm.WithSerializer(f, &buf, func(s lpcm.Serializer) error {
		return s.Serialize(data)
	})
	require.NoError(t, err)

	var got samples.Data
	_, err = lpcm.WithDeserializer(f, bytes.NewReader(buf.Bytes()), func(d lpcm.Deserializer) error {
		got, err = d.Deserialize(100, 100)
		return err
	})
	require.NoError(t, err)
	assert.True(t, data.Sub(100, 100).Equal(got))
}

func TestMalformed(t *testing.T) {
	t.Parallel()

	p, err := lpcm.PlainFor(testInfo())
	require.NoError(t, err)
	f := lpcm.NewCompressed(p, Codec{}, 1)

	_, err = f.Deserialize([]byte("plain text"), 0, samples.All)
	assert.ErrorIs(t, err, lpcm.ErrFormat)

	_, err = f.NewDeserializer(bytes.NewReader([]byte("plain text")))
	assert.ErrorIs(t, err, lpcm.ErrFormat)
}
