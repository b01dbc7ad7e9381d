// SPDX-License-Identifier: EPL-2.0

package timespan

import "errors"

var (
	// ErrDomain indicates a time, index, rate or span argument outside its valid range.
	ErrDomain = errors.New("argument out of domain")

	// ErrEmptyInput indicates an operation that needs at least one element received none.
	ErrEmptyInput = errors.New("empty input")
)
