// SPDX-License-Identifier: EPL-2.0

// Package timespan implements the time algebra used to address recorded
// signals.
//
// A TimeSpan is a half-open nanosecond interval [Start, Stop) measured from
// the start of a recording. Spans always cover at least one nanosecond:
// constructing a span whose start equals its stop yields [start, start+1).
//
//	span, _ := timespan.New(5, 5) // {5ns, 6ns}
//
// # Span Operations
//
//   - Contains reports whether one span lies entirely inside another.
//   - Overlaps reports whether two spans intersect. Touching spans do not.
//   - ShortestContaining returns the smallest span covering every input.
//   - Merge folds a set of spans into non-overlapping groups.
//
// # Sample Indices
//
// Sample indices are 1-based. At a sample rate of r Hz, sample i becomes
// active at the earliest nanosecond t for which IndexFromTime(r, t) == i:
//
//	t, _ := timespan.TimeFromIndex(100, 101) // 1s
//	i, _ := timespan.IndexFromTime(100, t)   // 101
//
// The two mappings are exact inverses at sample boundaries. Integral sample
// rates are computed with exact 128-bit integer arithmetic; other rates fall
// back to float64 with a boundary correction so the inverse law still holds.
//
// # Errors
//
// Out-of-range arguments (negative times, non-positive indices, non-positive
// rates, spans with Stop < Start) return ErrDomain. ShortestContaining over
// zero spans returns ErrEmptyInput.
package timespan
