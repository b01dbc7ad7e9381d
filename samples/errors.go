// SPDX-License-Identifier: EPL-2.0

package samples

import "errors"

var (
	// ErrShapeMismatch indicates data whose channel count, length or element
	// type disagrees with its descriptor or destination.
	ErrShapeMismatch = errors.New("shape mismatch")
)
