// SPDX-License-Identifier: EPL-2.0

package quantize

import "errors"

var (
	// ErrLength indicates that a destination or dither buffer does not match the input length.
	ErrLength = errors.New("buffer length mismatch")
)
