// SPDX-License-Identifier: EPL-2.0

package ingest

import "errors"

var (
	// ErrInvalidDstSize indicates a buffer that does not hold whole frames.
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnknownFormat indicates a format key with no registered decoder.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrUnsupported indicates audio the decoders cannot represent, such as
	// an unsupported bit depth or a non-PCM encoding.
	ErrUnsupported = errors.New("unsupported audio encoding")

	// ErrNoChannels indicates a source that reports zero channels.
	ErrNoChannels = errors.New("audio source has no channels")
)
