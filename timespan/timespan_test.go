// SPDX-License-Identifier: EPL-2.0

package timespan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		start, stop time.Duration
		want        TimeSpan
		wantErr     error
	}{
		{"regular", 0, 10, TimeSpan{0, 10}, nil},
		{"widened", 5, 5, TimeSpan{5, 6}, nil},
		{"inverted", 10, 5, TimeSpan{}, ErrDomain},
		{"negative start", -1, 5, TimeSpan{}, ErrDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := New(tt.start, tt.stop)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Positive(t, got.Duration())
		})
	}
}

func TestAt(t *testing.T) {
	t.Parallel()

	s, err := At(time.Second)
	require.NoError(t, err)
	assert.Equal(t, TimeSpan{time.Second, time.Second + 1}, s)
}

func TestContains(t *testing.T) {
	t.Parallel()

	outer := Must(0, 10)
	assert.True(t, Contains(outer, Must(0, 10)))
	assert.True(t, Contains(outer, Must(2, 5)))
	assert.False(t, Contains(outer, Must(5, 11)))
	assert.False(t, outer.Contains(Must(11, 12)))
}

func TestOverlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b TimeSpan
		want bool
	}{
		{Must(0, 10), Must(10, 20), false},
		{Must(0, 10), Must(9, 20), true},
		{Must(9, 20), Must(0, 10), true},
		{Must(0, 10), Must(2, 3), true},
		{Must(20, 30), Must(0, 10), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Overlaps(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
		assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
	}
}

func TestShortestContaining(t *testing.T) {
	t.Parallel()

	got, err := ShortestContaining(Must(0, 10), Must(5, 20), Must(15, 16))
	require.NoError(t, err)
	assert.Equal(t, Must(0, 20), got)

	_, err = ShortestContaining()
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10*time.Nanosecond, Duration(Must(5, 15)))
	assert.Equal(t, time.Nanosecond, Must(7, 7).Duration())
}

func TestMerge(t *testing.T) {
	t.Parallel()

	spans := []TimeSpan{Must(15, 16), Must(0, 10), Must(30, 40), Must(5, 20)}

	got := Merge(spans, nil)
	assert.Equal(t, []TimeSpan{Must(0, 20), Must(30, 40)}, got)
	assert.Equal(t, Must(15, 16), spans[0], "input must not be reordered")

	touching := func(a, b TimeSpan) bool { return b.Start <= a.Stop }
	got = Merge([]TimeSpan{Must(0, 10), Must(10, 20)}, touching)
	assert.Equal(t, []TimeSpan{Must(0, 20)}, got)

	assert.Nil(t, Merge(nil, nil))
}

func TestMergeRuns(t *testing.T) {
	t.Parallel()

	spans := []TimeSpan{Must(15, 16), Must(0, 10), Must(30, 40), Must(5, 20), Must(30, 31)}

	merged, runs := MergeRuns(spans, nil)
	assert.Equal(t, []TimeSpan{Must(0, 20), Must(30, 40)}, merged)
	assert.Equal(t, [][]int{{1, 3, 0}, {2, 4}}, runs)

	never := func(TimeSpan, TimeSpan) bool { return false }
	merged, runs = MergeRuns([]TimeSpan{Must(3, 4), Must(3, 5)}, never)
	assert.Equal(t, []TimeSpan{Must(3, 4), Must(3, 5)}, merged)
	assert.Equal(t, [][]int{{0}, {1}}, runs)

	merged, runs = MergeRuns(nil, nil)
	assert.Nil(t, merged)
	assert.Nil(t, runs)
}
