// SPDX-License-Identifier: EPL-2.0

// Package xz provides the "lpcm.xz" format: plain LPCM compressed with xz
// (LZMA2). It trades speed for the smallest files of the bundled codecs.
//
// The level selects the dictionary size, 64 KiB << level, clamped to
// levels 0 through 9.
package xz

import (
	"fmt"
	"io"

	"github.com/ulikunitz/xz"

	"github.com/ik5/onda/lpcm"
)

// DictCap returns the dictionary capacity used for level.
func DictCap(level int) int {
	return 1 << (16 + min(max(level, 0), 9))
}

// Codec compresses LPCM bytes with xz.
type Codec struct{}

func (Codec) Name() string { return "xz" }

func (Codec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	cfg := xz.WriterConfig{DictCap: DictCap(level)}
	zw, err := cfg.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return zw, nil
}

func (Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := xz.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return io.NopCloser(zr), nil
}

// Register adds "lpcm.xz" to r.
func Register(r *lpcm.Registry) error {
	return r.RegisterCodec(Codec{})
}
