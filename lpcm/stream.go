// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/timespan"
)

// Deserializer reads samples incrementally from an I/O channel it owns.
// Finalize must be called exactly once.
type Deserializer interface {
	// Deserialize skips offset samples from the current position and then
	// reads up to count samples. Fewer samples are returned at the end of
	// the stream.
	Deserialize(offset, count int) (samples.Data, error)
	// Finalize releases the stream and reports whether the underlying I/O
	// channel is still usable.
	Finalize() (bool, error)
}

// Serializer writes samples incrementally to an I/O channel it owns.
// Finalize must be called exactly once.
type Serializer interface {
	Serialize(data samples.Data) error
	// Finalize flushes the stream and reports whether the underlying I/O
	// channel is still usable.
	Finalize() (bool, error)
}

// WithDeserializer opens a deserializing stream over r, passes it to fn and
// finalizes it on every path. It returns the result of Finalize joined with
// any error from fn.
func WithDeserializer(f Format, r io.Reader, fn func(Deserializer) error) (open bool, err error) {
	d, err := f.NewDeserializer(r)
	if err != nil {
		return false, err
	}
	defer func() {
		ok, ferr := d.Finalize()
		open = ok
		err = errors.Join(err, ferr)
	}()

	return false, fn(d)
}

// WithSerializer opens a serializing stream over w, passes it to fn and
// finalizes it on every path.
func WithSerializer(f Format, w io.Writer, fn func(Serializer) error) (open bool, err error) {
	s, err := f.NewSerializer(w)
	if err != nil {
		return false, err
	}
	defer func() {
		ok, ferr := s.Finalize()
		open = ok
		err = errors.Join(err, ferr)
	}()

	return false, fn(s)
}

type plainDeserializer struct {
	format *Plain
	r      io.Reader
	done   bool
}

func skip(r io.Reader, n int64) error {
	if n == 0 {
		return nil
	}
	if s, ok := r.(io.Seeker); ok {
		_, err := s.Seek(n, io.SeekCurrent)
		return err
	}

	_, err := io.CopyN(io.Discard, r, n)
	if errors.Is(err, io.EOF) {
		return nil
	}

	return err
}

func (d *plainDeserializer) Deserialize(offset, count int) (samples.Data, error) {
	if d.done {
		return nil, ErrFinalized
	}
	if err := checkRange(offset, count); err != nil {
		return nil, err
	}

	frame := int64(d.format.FrameSize())
	if int64(offset) > math.MaxInt64/frame {
		return nil, fmt.Errorf("%w: sample offset %d overflows", timespan.ErrDomain, offset)
	}
	if err := skip(d.r, int64(offset)*frame); err != nil {
		return nil, fmt.Errorf("skipping %d samples: %w", offset, err)
	}

	limit := int64(math.MaxInt64)
	if int64(count) <= math.MaxInt64/frame {
		limit = int64(count) * frame
	}

	b, err := io.ReadAll(io.LimitReader(d.r, limit))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return d.format.Deserialize(b, 0, samples.All)
}

func (d *plainDeserializer) Finalize() (bool, error) {
	if d.done {
		return false, ErrFinalized
	}
	d.done = true

	return true, nil
}

type plainSerializer struct {
	format *Plain
	w      io.Writer
	done   bool
}

func (s *plainSerializer) Serialize(data samples.Data) error {
	if s.done {
		return ErrFinalized
	}

	b, err := s.format.Serialize(data)
	if err != nil {
		return err
	}
	if _, err := s.w.Write(b); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

type flusher interface {
	Flush() error
}

func (s *plainSerializer) Finalize() (bool, error) {
	if s.done {
		return false, ErrFinalized
	}
	s.done = true

	if f, ok := s.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return true, fmt.Errorf("%w", err)
		}
	}

	return true, nil
}
