// SPDX-License-Identifier: EPL-2.0

package timespan

import (
	"fmt"
	"math"
	"math/bits"
	"time"
)

const nanosPerSecond = 1_000_000_000

// IndexRange is an inclusive range of 1-based sample indices.
type IndexRange struct {
	First int64 `json:"first" yaml:"first"`
	Last  int64 `json:"last" yaml:"last"`
}

// Len returns the number of indices in r.
func (r IndexRange) Len() int64 { return r.Last - r.First + 1 }

func (r IndexRange) String() string { return fmt.Sprintf("%d:%d", r.First, r.Last) }

func checkRate(rate float64) error {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrDomain, rate)
	}

	return nil
}

// integralRate reports whether rate can be handled with exact integer math.
func integralRate(rate float64) (uint64, bool) {
	if rate > 1<<53 || rate != math.Trunc(rate) {
		return 0, false
	}

	return uint64(rate), true
}

// TimeFromIndex returns the earliest nanosecond at which the 1-based sample
// index is the active sample at the given rate, i.e. ceil((index-1)*1e9/rate).
func TimeFromIndex(rate float64, index int64) (time.Duration, error) {
	if err := checkRate(rate); err != nil {
		return 0, err
	}
	if index < 1 {
		return 0, fmt.Errorf("%w: sample index %d", ErrDomain, index)
	}

	r, ok := integralRate(rate)
	if !ok {
		return timeFromIndexFloat(rate, index)
	}

	hi, lo := bits.Mul64(uint64(index-1), nanosPerSecond)
	if hi >= r {
		return 0, fmt.Errorf("%w: sample index %d overflows at %v Hz", ErrDomain, index, rate)
	}
	q, rem := bits.Div64(hi, lo, r)
	if q >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: sample index %d overflows at %v Hz", ErrDomain, index, rate)
	}
	if rem != 0 {
		q++
	}

	return time.Duration(q), nil
}

func timeFromIndexFloat(rate float64, index int64) (time.Duration, error) {
	t := math.Ceil(float64(index-1) * nanosPerSecond / rate)
	if t >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: sample index %d overflows at %v Hz", ErrDomain, index, rate)
	}

	// float rounding can land a few nanoseconds off the boundary
	ns := time.Duration(t)
	for indexFromTimeFloat(rate, ns) < index {
		ns++
	}
	for ns > 0 && indexFromTimeFloat(rate, ns-1) >= index {
		ns--
	}

	return ns, nil
}

// IndexFromTime returns the 1-based index of the sample active at t,
// floor(t*rate/1e9) + 1.
func IndexFromTime(rate float64, t time.Duration) (int64, error) {
	if err := checkRate(rate); err != nil {
		return 0, err
	}
	if t < 0 {
		return 0, fmt.Errorf("%w: negative time %d", ErrDomain, t)
	}

	r, ok := integralRate(rate)
	if !ok {
		f := math.Floor(float64(t) * rate / nanosPerSecond)
		if f >= math.MaxInt64 {
			return 0, fmt.Errorf("%w: time %d overflows at %v Hz", ErrDomain, t, rate)
		}

		return int64(f) + 1, nil
	}

	hi, lo := bits.Mul64(uint64(t), r)
	if hi >= nanosPerSecond {
		return 0, fmt.Errorf("%w: time %d overflows at %v Hz", ErrDomain, t, rate)
	}
	q, _ := bits.Div64(hi, lo, nanosPerSecond)
	if q >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: time %d overflows at %v Hz", ErrDomain, t, rate)
	}

	return int64(q) + 1, nil
}

func indexFromTimeFloat(rate float64, t time.Duration) int64 {
	return int64(math.Floor(float64(t)*rate/nanosPerSecond)) + 1
}

// SpanFromIndexRange returns the span covered by the samples in r:
// [TimeFromIndex(r.First), TimeFromIndex(r.Last+1)).
func SpanFromIndexRange(rate float64, r IndexRange) (TimeSpan, error) {
	if r.First < 1 || r.Last < r.First || r.Last == math.MaxInt64 {
		return TimeSpan{}, fmt.Errorf("%w: index range %s", ErrDomain, r)
	}

	start, err := TimeFromIndex(rate, r.First)
	if err != nil {
		return TimeSpan{}, err
	}
	stop, err := TimeFromIndex(rate, r.Last+1)
	if err != nil {
		return TimeSpan{}, err
	}

	return New(start, stop)
}

// IndexRangeFromSpan returns the inclusive range of samples active during s.
func IndexRangeFromSpan(rate float64, s TimeSpan) (IndexRange, error) {
	if s.Stop <= s.Start {
		return IndexRange{}, fmt.Errorf("%w: span %s", ErrDomain, s)
	}

	first, err := IndexFromTime(rate, s.Start)
	if err != nil {
		return IndexRange{}, err
	}
	last, err := IndexFromTime(rate, s.Stop-1)
	if err != nil {
		return IndexRange{}, err
	}

	return IndexRange{First: first, Last: last}, nil
}

// SampleCount returns the number of samples that fit in d at the given rate.
func SampleCount(rate float64, d time.Duration) (int64, error) {
	i, err := IndexFromTime(rate, d)
	if err != nil {
		return 0, err
	}

	return i - 1, nil
}
