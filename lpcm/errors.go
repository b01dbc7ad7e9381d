// SPDX-License-Identifier: EPL-2.0

package lpcm

import "errors"

var (
	// ErrFormat indicates bytes that are too short or malformed for the format.
	ErrFormat = errors.New("malformed LPCM data")

	// ErrUnknownFormat indicates a file format tag with no registered constructor.
	ErrUnknownFormat = errors.New("unknown file format")

	// ErrFinalized indicates use of a stream after Finalize.
	ErrFinalized = errors.New("stream already finalized")
)
