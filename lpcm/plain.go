// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
	"github.com/ik5/onda/timespan"
)

// TagPlain is the file format tag of plain LPCM.
const TagPlain = "lpcm"

// Plain is headerless little-endian LPCM with channels interleaved per
// sample.
type Plain struct {
	channels   int
	sampleType signal.SampleType
}

// NewPlain returns the plain format for the given channel count and sample
// type.
func NewPlain(channels int, t signal.SampleType) (*Plain, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count %d", signal.ErrValidation, channels)
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unsupported sample type %s", signal.ErrValidation, t)
	}

	return &Plain{channels: channels, sampleType: t}, nil
}

// PlainFor returns the plain format matching info.
func PlainFor(info signal.SamplesInfo) (*Plain, error) {
	return NewPlain(info.ChannelCount(), info.SampleType)
}

func (f *Plain) Kind() Kind                    { return KindPlain }
func (f *Plain) String() string                { return TagPlain }
func (f *Plain) ChannelCount() int             { return f.channels }
func (f *Plain) SampleType() signal.SampleType { return f.sampleType }

// FrameSize returns the byte size of one sample across all channels.
func (f *Plain) FrameSize() int { return f.channels * f.sampleType.Size() }

func (f *Plain) check(data samples.Data) error {
	if data == nil {
		return fmt.Errorf("%w: nil data", samples.ErrShapeMismatch)
	}
	if data.ChannelCount() != f.channels {
		return fmt.Errorf("%w: %d channels, format has %d", samples.ErrShapeMismatch, data.ChannelCount(), f.channels)
	}
	if t, ok := data.ElementType(); !ok || t != f.sampleType {
		return fmt.Errorf("%w: %v, format stores %s", samples.ErrShapeMismatch, data, f.sampleType)
	}

	return nil
}

func (f *Plain) Serialize(data samples.Data) ([]byte, error) {
	if err := f.check(data); err != nil {
		return nil, err
	}

	return dataBytes(data)
}

func checkRange(offset, count int) error {
	if offset < 0 || count < 0 {
		return fmt.Errorf("%w: sample offset %d, count %d", timespan.ErrDomain, offset, count)
	}

	return nil
}

func (f *Plain) Deserialize(b []byte, offset, count int) (samples.Data, error) {
	if err := checkRange(offset, count); err != nil {
		return nil, err
	}

	frame := f.FrameSize()
	if len(b)%frame != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of the %d byte frame", ErrFormat, len(b), frame)
	}

	total := len(b) / frame
	offset = min(offset, total)
	count = min(count, total-offset)

	return bytesData(f.sampleType, b[offset*frame:(offset+count)*frame], f.channels)
}

// DeserializeCallback returns the exact byte range holding the requested
// samples. The range count saturates when count is samples.All; readers
// clamp it to the stored length.
func (f *Plain) DeserializeCallback(offset, count int) (Callback, ByteRange, error) {
	if err := checkRange(offset, count); err != nil {
		return nil, ByteRange{}, err
	}

	frame := int64(f.FrameSize())
	if int64(offset) > math.MaxInt64/frame {
		return nil, ByteRange{}, fmt.Errorf("%w: sample offset %d overflows", timespan.ErrDomain, offset)
	}

	br := ByteRange{Offset: int64(offset) * frame, Count: math.MaxInt64, Known: true}
	if int64(count) <= math.MaxInt64/frame {
		br.Count = int64(count) * frame
	}

	// the delivered block may be cut short at the end of the object
	callback := func(b []byte) (samples.Data, error) {
		return f.Deserialize(b, 0, count)
	}

	return callback, br, nil
}

func (f *Plain) NewDeserializer(r io.Reader) (Deserializer, error) {
	return &plainDeserializer{format: f, r: r}, nil
}

func (f *Plain) NewSerializer(w io.Writer) (Serializer, error) {
	return &plainSerializer{format: f, w: w}, nil
}
