// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// DefaultLevel is the compression level used when none is given.
const DefaultLevel = 3

// Zstd compresses with Zstandard. Levels follow the zstd command line
// scale.
type Zstd struct{}

func (Zstd) Name() string { return "zst" }

func (Zstd) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return enc, nil
}

func (Zstd) NewReader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return dec.IOReadCloser(), nil
}
