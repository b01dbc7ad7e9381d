// SPDX-License-Identifier: EPL-2.0

// Package lz4 provides the "lpcm.lz4" format: plain LPCM compressed with
// LZ4 frames.
//
//	reg := lpcm.DefaultRegistry()
//	if err := lz4.Register(reg); err != nil {
//	    return err
//	}
//	f, err := reg.Format("lpcm.lz4", info)
//
// Levels 1 through 9 select the LZ4 HC levels; anything lower selects the
// fast compressor.
package lz4

import (
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/ik5/onda/lpcm"
)

var levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

// Codec compresses LPCM bytes with LZ4.
type Codec struct{}

func (Codec) Name() string { return "lz4" }

func (Codec) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(levels[min(max(level, 0), len(levels)-1)])); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return zw, nil
}

func (Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

// Register adds "lpcm.lz4" to r.
func Register(r *lpcm.Registry) error {
	return r.RegisterCodec(Codec{})
}
