// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/onda/ingest"
)

// formatPCM is the WAVE_FORMAT_PCM format tag.
const formatPCM = 1

// Decoder decodes integer PCM WAV files of 8, 16, 24 or 32 bits. Inputs
// that cannot seek are buffered in memory.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (ingest.Source, error) {
	rs, err := ingest.Seekable(r)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, dec.WavAudioFormat)
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	// 8 bit WAV samples are unsigned, wider ones are signed.
	return ingest.NewPCMSource(dec, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth), dec.BitDepth == 8)
}
