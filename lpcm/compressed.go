// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
)

// Codec is a pluggable byte transform applied on top of plain LPCM.
type Codec interface {
	// Name is the tag suffix, e.g. "zst" for "lpcm.zst".
	Name() string
	// NewWriter compresses into w. Closing the writer must flush the
	// stream without closing w.
	NewWriter(w io.Writer, level int) (io.WriteCloser, error)
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Compressed is plain LPCM passed through a Codec. It has no random access:
// partial reads decompress the whole object.
type Compressed struct {
	plain *Plain
	codec Codec
	level int
}

// NewCompressed returns the compressed variant of p.
func NewCompressed(p *Plain, c Codec, level int) *Compressed {
	return &Compressed{plain: p, codec: c, level: level}
}

func (f *Compressed) Kind() Kind                    { return KindCompressed }
func (f *Compressed) String() string                { return TagPlain + "." + f.codec.Name() }
func (f *Compressed) ChannelCount() int             { return f.plain.ChannelCount() }
func (f *Compressed) SampleType() signal.SampleType { return f.plain.SampleType() }

// Level returns the compression level.
func (f *Compressed) Level() int { return f.level }

// Plain returns the underlying plain format.
func (f *Compressed) Plain() *Plain { return f.plain }

func (f *Compressed) Serialize(data samples.Data) ([]byte, error) {
	raw, err := f.plain.Serialize(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w, err := f.codec.NewWriter(&buf, f.level)
	if err != nil {
		return nil, fmt.Errorf("%s writer: %w", f, err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, errors.Join(fmt.Errorf("%s: %w", f, err), w.Close())
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", f, err)
	}

	return buf.Bytes(), nil
}

func (f *Compressed) decompress(b []byte) ([]byte, error) {
	r, err := f.codec.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, f, err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, f, err)
	}

	return raw, nil
}

func (f *Compressed) Deserialize(b []byte, offset, count int) (samples.Data, error) {
	if err := checkRange(offset, count); err != nil {
		return nil, err
	}

	raw, err := f.decompress(b)
	if err != nil {
		return nil, err
	}

	return f.plain.Deserialize(raw, offset, count)
}

// DeserializeCallback always reports an unknown range: the caller must
// deliver the whole object.
func (f *Compressed) DeserializeCallback(offset, count int) (Callback, ByteRange, error) {
	if err := checkRange(offset, count); err != nil {
		return nil, ByteRange{}, err
	}

	callback := func(b []byte) (samples.Data, error) {
		return f.Deserialize(b, offset, count)
	}

	return callback, ByteRange{}, nil
}

func (f *Compressed) NewDeserializer(r io.Reader) (Deserializer, error) {
	rc, err := f.codec.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, f, err)
	}

	return &compressedDeserializer{
		plainDeserializer: plainDeserializer{format: f.plain, r: rc},
		rc:                rc,
		src:               r,
	}, nil
}

func (f *Compressed) NewSerializer(w io.Writer) (Serializer, error) {
	enc, err := f.codec.NewWriter(w, f.level)
	if err != nil {
		return nil, fmt.Errorf("%s writer: %w", f, err)
	}

	return &compressedSerializer{format: f, enc: enc}, nil
}

type compressedDeserializer struct {
	plainDeserializer

	rc  io.ReadCloser
	src io.Reader
}

// Finalize closes the decompressor and, when it is closable, the source.
// The source position is undefined after decompressor read-ahead, so the
// channel is never reported as usable.
func (d *compressedDeserializer) Finalize() (bool, error) {
	if d.done {
		return false, ErrFinalized
	}
	d.done = true

	err := d.rc.Close()
	if c, ok := d.src.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}

	return false, err
}

type compressedSerializer struct {
	format *Compressed
	enc    io.WriteCloser
	done   bool
}

func (s *compressedSerializer) Serialize(data samples.Data) error {
	if s.done {
		return ErrFinalized
	}

	raw, err := s.format.plain.Serialize(data)
	if err != nil {
		return err
	}
	if _, err := s.enc.Write(raw); err != nil {
		return fmt.Errorf("%s: %w", s.format, err)
	}

	return nil
}

// Finalize ends the compressed stream. The destination stays open.
func (s *compressedSerializer) Finalize() (bool, error) {
	if s.done {
		return false, ErrFinalized
	}
	s.done = true

	if err := s.enc.Close(); err != nil {
		return true, fmt.Errorf("%s: %w", s.format, err)
	}

	return true, nil
}
