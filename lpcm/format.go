// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"io"

	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
)

// Kind is the closed set of LPCM format variants.
type Kind uint8

const (
	KindPlain Kind = iota + 1
	KindCompressed
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindCompressed:
		return "compressed"
	}

	return "unknown"
}

// ByteRange is the part of a stored object a partial read needs. When Known
// is false the whole object must be read.
type ByteRange struct {
	Offset int64
	Count  int64
	Known  bool
}

// Callback turns the bytes delivered for a ByteRange into the requested
// samples.
type Callback func(b []byte) (samples.Data, error)

// Format serializes encoded sample matrices with a fixed channel count and
// sample type. Formats are immutable and safe for concurrent use.
type Format interface {
	Kind() Kind
	// String returns the file format tag, e.g. "lpcm" or "lpcm.zst".
	String() string
	ChannelCount() int
	SampleType() signal.SampleType

	// Serialize returns the bytes of data. The result may alias data.
	Serialize(data samples.Data) ([]byte, error)
	// Deserialize returns up to count samples starting at the 0-based
	// sample offset. Requests past the end are truncated.
	Deserialize(b []byte, offset, count int) (samples.Data, error)
	// DeserializeCallback plans a partial read of count samples starting
	// at offset.
	DeserializeCallback(offset, count int) (Callback, ByteRange, error)

	// NewDeserializer wraps r in a stream. The stream owns r until it is
	// finalized.
	NewDeserializer(r io.Reader) (Deserializer, error)
	// NewSerializer wraps w in a stream. The stream owns w until it is
	// finalized.
	NewSerializer(w io.Writer) (Serializer, error)
}

// FileFormatString returns the tag under which f is registered.
func FileFormatString(f Format) string { return f.String() }
