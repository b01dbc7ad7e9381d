// SPDX-License-Identifier: EPL-2.0

// Package annotation models time-span annotations attached to recordings.
package annotation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ik5/onda/signal"
	"github.com/ik5/onda/timespan"
)

// Annotation marks a span of one recording.
type Annotation struct {
	Recording uuid.UUID         `json:"recording" yaml:"recording"`
	ID        uuid.UUID         `json:"id" yaml:"id"`
	Span      timespan.TimeSpan `json:"span" yaml:"span"`

	// From lists the source annotations of a merged annotation.
	From []uuid.UUID `json:"from,omitempty" yaml:"from,omitempty"`

	Custom map[string]any `json:"custom,omitempty" yaml:"custom,omitempty"`
}

// New returns an annotation with a fresh random ID.
func New(recording uuid.UUID, span timespan.TimeSpan) Annotation {
	return Annotation{Recording: recording, ID: uuid.New(), Span: span}
}

// Validate checks every annotation's span and that IDs are unique.
func Validate(annotations []Annotation) error {
	seen := make(map[uuid.UUID]struct{}, len(annotations))
	for _, a := range annotations {
		if a.Span.Start < 0 || a.Span.Stop <= a.Span.Start {
			return fmt.Errorf("%w: annotation %s has malformed span %s", signal.ErrValidation, a.ID, a.Span)
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: annotation id %s", signal.ErrDuplicateKey, a.ID)
		}
		seen[a.ID] = struct{}{}
	}

	return nil
}

// MergeOverlapping merges annotations of the same recording whose spans
// satisfy shouldMerge, checked against the span accumulated so far after
// sorting by start. A nil shouldMerge uses timespan.Overlaps.
//
// Every output annotation gets a fresh ID and lists its sources in From.
// Custom fields are not carried over. Output is grouped by recording in
// order of first appearance.
func MergeOverlapping(annotations []Annotation, shouldMerge func(a, b timespan.TimeSpan) bool) []Annotation {
	var order []uuid.UUID
	groups := make(map[uuid.UUID][]Annotation)
	for _, a := range annotations {
		if _, ok := groups[a.Recording]; !ok {
			order = append(order, a.Recording)
		}
		groups[a.Recording] = append(groups[a.Recording], a)
	}

	out := make([]Annotation, 0, len(annotations))
	for _, rec := range order {
		group := groups[rec]
		spans := make([]timespan.TimeSpan, len(group))
		for i, a := range group {
			spans[i] = a.Span
		}

		merged, runs := timespan.MergeRuns(spans, shouldMerge)
		for k, span := range merged {
			from := make([]uuid.UUID, len(runs[k]))
			for j, i := range runs[k] {
				from[j] = group[i].ID
			}
			out = append(out, Annotation{Recording: rec, ID: uuid.New(), Span: span, From: from})
		}
	}

	return out
}
