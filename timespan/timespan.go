// SPDX-License-Identifier: EPL-2.0

package timespan

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// TimeSpan is the half-open interval [Start, Stop) in nanoseconds since the
// start of a recording.
type TimeSpan struct {
	Start time.Duration `json:"start" yaml:"start"`
	Stop  time.Duration `json:"stop" yaml:"stop"`
}

// New returns the span [start, stop). When start == stop the span is widened
// to one nanosecond.
func New(start, stop time.Duration) (TimeSpan, error) {
	if start < 0 {
		return TimeSpan{}, fmt.Errorf("%w: negative start %d", ErrDomain, start)
	}
	if stop < start {
		return TimeSpan{}, fmt.Errorf("%w: stop %d before start %d", ErrDomain, stop, start)
	}
	if stop == start {
		stop = start + 1
	}

	return TimeSpan{Start: start, Stop: stop}, nil
}

// At returns the one nanosecond span starting at t.
func At(t time.Duration) (TimeSpan, error) {
	return New(t, t)
}

// Must is like New but panics on error. It is meant for constants and tests.
func Must(start, stop time.Duration) TimeSpan {
	s, err := New(start, stop)
	if err != nil {
		panic(err)
	}

	return s
}

// Duration returns Stop - Start.
func (s TimeSpan) Duration() time.Duration { return s.Stop - s.Start }

// Contains reports whether b lies entirely within s.
func (s TimeSpan) Contains(b TimeSpan) bool { return Contains(s, b) }

// Overlaps reports whether s and b share at least one nanosecond.
func (s TimeSpan) Overlaps(b TimeSpan) bool { return Overlaps(s, b) }

func (s TimeSpan) String() string {
	return fmt.Sprintf("TimeSpan(%s, %s)", s.Start, s.Stop)
}

// Contains reports whether b lies entirely within a.
func Contains(a, b TimeSpan) bool {
	return b.Start >= a.Start && b.Stop <= a.Stop
}

// Overlaps reports whether a and b intersect. Spans that only touch at a
// boundary do not overlap.
func Overlaps(a, b TimeSpan) bool {
	return a.Start < b.Stop && b.Start < a.Stop
}

// Duration returns the length of s.
func Duration(s TimeSpan) time.Duration { return s.Duration() }

// ShortestContaining returns the smallest span that contains every span in
// spans.
func ShortestContaining(spans ...TimeSpan) (TimeSpan, error) {
	if len(spans) == 0 {
		return TimeSpan{}, ErrEmptyInput
	}

	out := spans[0]
	for _, s := range spans[1:] {
		out.Start = min(out.Start, s.Start)
		out.Stop = max(out.Stop, s.Stop)
	}

	return out, nil
}

// Merge sorts spans by start and folds each run of consecutive spans for
// which shouldMerge(accumulated, next) holds into its shortest containing
// span. A nil shouldMerge uses Overlaps. The input slice is not modified.
func Merge(spans []TimeSpan, shouldMerge func(a, b TimeSpan) bool) []TimeSpan {
	merged, _ := MergeRuns(spans, shouldMerge)

	return merged
}

// MergeRuns is Merge that also reports, for each merged span, the indices
// into spans that were folded into it, in sorted order.
func MergeRuns(spans []TimeSpan, shouldMerge func(a, b TimeSpan) bool) ([]TimeSpan, [][]int) {
	if len(spans) == 0 {
		return nil, nil
	}
	if shouldMerge == nil {
		shouldMerge = Overlaps
	}

	order := make([]int, len(spans))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(spans[a].Start, spans[b].Start)
	})

	var (
		out  []TimeSpan
		runs [][]int
	)
	cur, run := spans[order[0]], []int{order[0]}
	for _, i := range order[1:] {
		s := spans[i]
		if shouldMerge(cur, s) {
			cur.Start = min(cur.Start, s.Start)
			cur.Stop = max(cur.Stop, s.Stop)
			run = append(run, i)
			continue
		}
		out, runs = append(out, cur), append(runs, run)
		cur, run = s, []int{i}
	}

	return append(out, cur), append(runs, run)
}
