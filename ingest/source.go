// SPDX-License-Identifier: EPL-2.0

package ingest

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/ik5/onda/signal"
)

// Source streams interleaved audio samples normalized to [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels per frame, e.g. 1 for mono or 2 for stereo.
	Channels() int
	// ReadSamples fills dst with whole frames and returns the number of
	// values written. It returns io.EOF once the stream is exhausted,
	// possibly together with the final values.
	ReadSamples(dst []float32) (n int, err error)
	Close() error
}

// maxEmptyReads is how many consecutive reads may return no values and no
// error before a Source is reported as stuck with io.ErrNoProgress.
const maxEmptyReads = 100

// Decoder opens a Source over encoded audio.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys such as "wav" or "mp3" to decoders.
type Registry struct {
	decoders map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		decoders: make(map[string]Decoder),
		mtx:      &sync.Mutex{},
	}
}

// Register adds d under format. A format can be registered once.
func (r *Registry) Register(format string, d Decoder) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, dup := r.decoders[format]; dup {
		return fmt.Errorf("%w: audio format %q", signal.ErrDuplicateKey, format)
	}
	r.decoders[format] = d

	return nil
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.decoders[format]

	return d, ok
}

// Decode opens rd with the decoder registered for format.
func (r *Registry) Decode(format string, rd io.Reader) (Source, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return d.Decode(rd)
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Sorted(maps.Keys(r.decoders))
}
