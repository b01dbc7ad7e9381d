// SPDX-License-Identifier: EPL-2.0

package annotation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/onda/signal"
	"github.com/ik5/onda/timespan"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	rec := uuid.New()
	a := New(rec, timespan.Must(0, 10))
	b := New(rec, timespan.Must(5, 20))
	require.NoError(t, Validate([]Annotation{a, b}))

	assert.ErrorIs(t, Validate([]Annotation{a, b, a}), signal.ErrDuplicateKey)

	bad := New(rec, timespan.TimeSpan{Start: 10, Stop: 5})
	assert.ErrorIs(t, Validate([]Annotation{bad}), signal.ErrValidation)
}

func TestMergeOverlapping(t *testing.T) {
	t.Parallel()

	recA, recB := uuid.New(), uuid.New()
	a1 := New(recA, timespan.Must(15, 16))
	a2 := New(recA, timespan.Must(0, 10))
	a3 := New(recA, timespan.Must(5, 20))
	a4 := New(recA, timespan.Must(20, 30))
	b1 := New(recB, timespan.Must(0, 10))
	b2 := New(recB, timespan.Must(9, 11))

	in := []Annotation{a1, b1, a2, a3, a4, b2}
	got := MergeOverlapping(in, nil)
	require.Len(t, got, 3)

	assert.Equal(t, recA, got[0].Recording)
	assert.Equal(t, timespan.Must(0, 20), got[0].Span)
	assert.ElementsMatch(t, []uuid.UUID{a1.ID, a2.ID, a3.ID}, got[0].From)

	assert.Equal(t, recA, got[1].Recording)
	assert.Equal(t, timespan.Must(20, 30), got[1].Span)
	assert.Equal(t, []uuid.UUID{a4.ID}, got[1].From)

	assert.Equal(t, recB, got[2].Recording)
	assert.Equal(t, timespan.Must(0, 11), got[2].Span)

	ids := map[uuid.UUID]bool{}
	for _, m := range got {
		for _, src := range in {
			assert.NotEqual(t, src.ID, m.ID)
		}
		assert.False(t, ids[m.ID])
		ids[m.ID] = true
	}
	assert.Equal(t, timespan.Must(15, 16), in[0].Span, "input must not be reordered")
}

func TestMergeOverlapping_CustomPredicate(t *testing.T) {
	t.Parallel()

	rec := uuid.New()
	touching := func(a, b timespan.TimeSpan) bool { return b.Start <= a.Stop }

	got := MergeOverlapping([]Annotation{
		New(rec, timespan.Must(0, 10)),
		New(rec, timespan.Must(10, 20)),
	}, touching)
	require.Len(t, got, 1)
	assert.Equal(t, timespan.Must(0, 20), got[0].Span)

	assert.Empty(t, MergeOverlapping(nil, nil))
}
