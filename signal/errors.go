// SPDX-License-Identifier: EPL-2.0

package signal

import "errors"

var (
	// ErrValidation indicates a malformed descriptor.
	ErrValidation = errors.New("invalid descriptor")

	// ErrDuplicateKey indicates a repeated channel name, file path or identifier.
	ErrDuplicateKey = errors.New("duplicate key")
)
