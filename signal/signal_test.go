// SPDX-License-Identifier: EPL-2.0

package signal

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/onda/timespan"
)

func testInfo() SamplesInfo {
	return SamplesInfo{
		Kind:                   "eeg",
		Channels:               []string{"fp1", "f3", "c3", "p3"},
		SampleUnit:             "microvolt",
		SampleResolutionInUnit: 0.25,
		SampleOffsetInUnit:     3.6,
		SampleType:             Int16,
		SampleRate:             256,
	}
}

func TestNewSamplesInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*SamplesInfo)
		wantErr error
	}{
		{"valid", func(*SamplesInfo) {}, nil},
		{"duplicate channel", func(i *SamplesInfo) { i.Channels = []string{"a", "b", "a"} }, ErrValidation},
		{"empty channels", func(i *SamplesInfo) { i.Channels = nil }, ErrValidation},
		{"empty channel name", func(i *SamplesInfo) { i.Channels = []string{""} }, ErrValidation},
		{"uppercase channel", func(i *SamplesInfo) { i.Channels = []string{"Fp1"} }, ErrValidation},
		{"dash channel", func(i *SamplesInfo) { i.Channels = []string{"f3-m2"} }, ErrValidation},
		{"zero rate", func(i *SamplesInfo) { i.SampleRate = 0 }, ErrValidation},
		{"negative rate", func(i *SamplesInfo) { i.SampleRate = -256 }, ErrValidation},
		{"bad sample type", func(i *SamplesInfo) { i.SampleType = Invalid }, ErrValidation},
		{"bad unit", func(i *SamplesInfo) { i.SampleUnit = "Micro Volt" }, ErrValidation},
		{"zero resolution", func(i *SamplesInfo) { i.SampleResolutionInUnit = 0 }, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := testInfo()
			tt.mutate(&info)

			got, err := NewSamplesInfo(info)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				_, err = NewSamplesInfo(info, WithoutValidation())
				require.NoError(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, info.Equal(got))
		})
	}
}

func TestSamplesInfo_DuplicateChannelIsDuplicateKey(t *testing.T) {
	t.Parallel()

	info := testInfo()
	info.Channels = []string{"x", "x"}
	err := info.Validate()
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestSamplesInfo_Channels(t *testing.T) {
	t.Parallel()

	info := testInfo()
	assert.Equal(t, 4, info.ChannelCount())

	idx, ok := info.Channel("c3")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = info.Channel("o1")
	assert.False(t, ok)

	name, ok := info.ChannelName(3)
	assert.True(t, ok)
	assert.Equal(t, "p3", name)

	_, ok = info.ChannelName(4)
	assert.False(t, ok)
}

func TestSamplesInfo_Sizes(t *testing.T) {
	t.Parallel()

	info := testInfo()

	n, err := info.SampleCount(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(512), n)

	size, err := info.SizeOfSamples(2 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(512*4*2), size)
}

func TestSamplesInfo_EqualAndClone(t *testing.T) {
	t.Parallel()

	a := testInfo()
	a.Custom = map[string]any{"montage": "bipolar"}

	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Channels[0] = "o1"
	assert.Equal(t, "fp1", a.Channels[0])
	assert.False(t, a.Equal(b))

	c := a.Clone()
	c.Custom["montage"] = "referential"
	assert.False(t, a.Equal(c))

	d := testInfo()
	d.Custom = map[string]any{}
	assert.True(t, testInfo().Equal(d))
}

func TestSampleType(t *testing.T) {
	t.Parallel()

	for _, st := range SampleTypes() {
		parsed, err := ParseSampleType(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
		assert.True(t, st.Valid())
		assert.Contains(t, []int{1, 2, 4, 8}, st.Size())
		assert.Less(t, st.Min(), st.Max())
	}

	assert.Equal(t, -32768.0, Int16.Min())
	assert.Equal(t, 255.0, UInt8.Max())
	assert.True(t, Int8.Signed())
	assert.False(t, UInt64.Signed())

	_, err := ParseSampleType("float32")
	assert.ErrorIs(t, err, ErrValidation)

	var st SampleType
	require.NoError(t, st.UnmarshalText([]byte("uint32")))
	assert.Equal(t, UInt32, st)

	_, err = Invalid.MarshalText()
	assert.ErrorIs(t, err, ErrValidation)
}

func testSignal(path string) Signal {
	return Signal{
		SamplesInfo: testInfo(),
		Recording:   uuid.New(),
		FilePath:    path,
		FileFormat:  "lpcm",
		Span:        timespan.Must(0, 10*time.Second),
	}
}

func TestNewSignal(t *testing.T) {
	t.Parallel()

	sig, err := NewSignal(testSignal("rec/eeg.lpcm"))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, sig.Duration())

	n, err := sig.SampleCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2560), n)

	size, err := sig.SizeOfSamples()
	require.NoError(t, err)
	assert.Equal(t, int64(2560*4*2), size)
	assert.True(t, sig.Info().Equal(testInfo()))

	bad := testSignal("")
	_, err = NewSignal(bad)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewSignal(bad, WithoutValidation())
	assert.NoError(t, err)

	bad = testSignal("x.lpcm")
	bad.FileFormat = ""
	_, err = NewSignal(bad)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateSignals(t *testing.T) {
	t.Parallel()

	a := testSignal("rec/eeg.lpcm")
	b := testSignal("rec/ecg.lpcm")
	require.NoError(t, ValidateSignals([]Signal{a, b}))

	c := testSignal("rec/eeg.lpcm")
	err := ValidateSignals([]Signal{a, b, c})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	d := testSignal("rec/bad.lpcm")
	d.SampleRate = 0
	err = ValidateSignals([]Signal{a, d})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSignal_Equal(t *testing.T) {
	t.Parallel()

	a := testSignal("x.lpcm")
	b := a
	b.SamplesInfo = a.SamplesInfo.Clone()
	assert.True(t, a.Equal(b))

	b.Span = timespan.Must(0, time.Second)
	assert.False(t, a.Equal(b))
}
