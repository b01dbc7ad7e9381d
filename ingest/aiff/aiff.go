// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into ingest sources using
// github.com/go-audio/aiff.
package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/onda/ingest"
)

var (
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrMissingFormat indicates an AIFF file without a usable COMM chunk.
	ErrMissingFormat = errors.New("AIFF file has no format information")
)

// Decoder decodes 8, 16, 24 and 32 bit AIFF files. Inputs that cannot seek
// are buffered in memory.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (ingest.Source, error) {
	rs, err := ingest.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels == 0 {
		return nil, ErrMissingFormat
	}

	src, err := ingest.NewPCMSource(dec, format.SampleRate, format.NumChannels, int(dec.BitDepth), false)
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	return src, nil
}
