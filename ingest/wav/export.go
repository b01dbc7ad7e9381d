// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/onda/ingest"
	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
)

// bitDepths maps the sample types WAV can carry to their bit depth.
var bitDepths = map[signal.SampleType]int{
	signal.UInt8: 8,
	signal.Int16: 16,
	signal.Int32: 32,
}

func ints[T int16 | int32 | uint8](m *samples.Matrix[T]) []int {
	out := make([]int, len(m.Data))
	for i, v := range m.Data {
		out[i] = int(v)
	}

	return out
}

// Export writes s as a PCM WAV file. Decoded samples are encoded first;
// the encoded codes are written unchanged, so the sample type must be
// uint8, int16 or int32 and the sample rate a whole number of Hz.
func Export(w io.WriteSeeker, s samples.Samples) (err error) {
	bits, ok := bitDepths[s.Info.SampleType]
	if !ok {
		return fmt.Errorf("%w: %s samples in WAV", ingest.ErrUnsupported, s.Info.SampleType)
	}
	rate := s.Info.SampleRate
	if rate != math.Trunc(rate) || rate < 1 || rate > math.MaxUint32 {
		return fmt.Errorf("%w: sample rate %v Hz in WAV", ingest.ErrUnsupported, rate)
	}

	enc, err := s.Encode(nil)
	if err != nil {
		return err
	}

	var data []int
	switch m := enc.Data.(type) {
	case *samples.Matrix[uint8]:
		data = ints(m)
	case *samples.Matrix[int16]:
		data = ints(m)
	case *samples.Matrix[int32]:
		data = ints(m)
	default:
		return fmt.Errorf("%w: encoded %v", samples.ErrShapeMismatch, enc.Data)
	}

	channels := enc.ChannelCount()
	e := wav.NewEncoder(w, int(rate), bits, channels, formatPCM)
	defer func() {
		err = errors.Join(err, e.Close())
	}()

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: int(rate)},
		Data:           data,
		SourceBitDepth: bits,
	}
	if err := e.Write(buf); err != nil {
		return fmt.Errorf("writing WAV: %w", err)
	}

	return nil
}
