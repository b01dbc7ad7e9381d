// SPDX-License-Identifier: EPL-2.0

package storage

import "errors"

var (
	// ErrNotFound indicates a locator with no stored object.
	ErrNotFound = errors.New("object not found")

	// ErrRange indicates a negative byte offset or count.
	ErrRange = errors.New("invalid byte range")

	// ErrLocator indicates a locator that escapes the backend root.
	ErrLocator = errors.New("invalid locator")
)
