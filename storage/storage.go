// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"fmt"
	"io"
	"math"
)

// Backend reads and writes whole objects by locator.
type Backend interface {
	Read(locator string) ([]byte, error)
	Write(locator string, b []byte) error
}

// RangeReader is implemented by backends that can read part of an object.
type RangeReader interface {
	// ReadByteRange returns up to count bytes starting at offset. Ranges
	// past the end of the object are truncated.
	ReadByteRange(locator string, offset, count int64) ([]byte, error)
}

// Writer streams one object. The object becomes visible, replacing any
// previous one, only when Close succeeds. Abort discards what was written
// and leaves the previous object in place. Close after Abort, and Abort
// after Close, are no-ops.
type Writer interface {
	io.WriteCloser
	Abort() error
}

// StreamBackend is implemented by backends that can stream objects.
type StreamBackend interface {
	OpenReader(locator string) (io.ReadCloser, error)
	OpenWriter(locator string) (Writer, error)
}

// ReadByteRange reads count bytes at offset from b, using a ranged read
// when b supports one and slicing a full read otherwise.
func ReadByteRange(b Backend, locator string, offset, count int64) ([]byte, error) {
	if offset < 0 || count < 0 {
		return nil, fmt.Errorf("%w: byte offset %d, count %d", ErrRange, offset, count)
	}
	if rr, ok := b.(RangeReader); ok {
		return rr.ReadByteRange(locator, offset, count)
	}

	all, err := b.Read(locator)
	if err != nil {
		return nil, err
	}

	return clampRange(all, offset, count), nil
}

func clampRange(b []byte, offset, count int64) []byte {
	n := int64(len(b))
	offset = min(offset, n)
	if count > n-offset {
		count = n - offset
	}

	return b[offset : offset+count]
}

// saturatingEnd returns offset+count capped at math.MaxInt64.
func saturatingEnd(offset, count int64) int64 {
	if count > math.MaxInt64-offset {
		return math.MaxInt64
	}

	return offset + count
}
