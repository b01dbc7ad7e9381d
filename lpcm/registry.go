// SPDX-License-Identifier: EPL-2.0

package lpcm

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/pion/logging"

	ilogging "github.com/ik5/onda/internal/logging"
	"github.com/ik5/onda/signal"
)

// Option configures a format built by a Constructor.
type Option func(*Options)

// Options holds the settings a Constructor may use.
type Options struct {
	Level int
}

// WithLevel sets the compression level of compressed formats.
func WithLevel(level int) Option {
	return func(o *Options) { o.Level = level }
}

// BuildOptions applies opts over the defaults.
func BuildOptions(opts ...Option) Options {
	o := Options{Level: DefaultLevel}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Constructor builds a format for the channel set described by info.
type Constructor func(info signal.SamplesInfo, opts ...Option) (Format, error)

// PlainConstructor builds plain LPCM formats.
func PlainConstructor(info signal.SamplesInfo, _ ...Option) (Format, error) {
	return PlainFor(info)
}

// CompressedConstructor returns a constructor for c on top of plain LPCM.
func CompressedConstructor(c Codec) Constructor {
	return func(info signal.SamplesInfo, opts ...Option) (Format, error) {
		p, err := PlainFor(info)
		if err != nil {
			return nil, err
		}

		return NewCompressed(p, c, BuildOptions(opts...).Level), nil
	}
}

// Registry maps file format tags to format constructors.
type Registry struct {
	formats map[string]Constructor

	mtx *sync.RWMutex
	log logging.LeveledLogger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLoggerFactory routes registry logs through f.
func WithLoggerFactory(f logging.LoggerFactory) RegistryOption {
	return func(r *Registry) { r.log = ilogging.Factory(f).NewLogger("lpcm") }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		formats: make(map[string]Constructor),
		mtx:     &sync.RWMutex{},
		log:     ilogging.NewLogger("lpcm"),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// DefaultRegistry returns a new registry holding "lpcm" and "lpcm.zst".
func DefaultRegistry(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	r.formats[TagPlain] = PlainConstructor
	r.formats[TagPlain+"."+Zstd{}.Name()] = CompressedConstructor(Zstd{})

	return r
}

// Register adds a constructor under tag. Tags cannot be replaced.
func (r *Registry) Register(tag string, c Constructor) error {
	if tag == "" || c == nil {
		return fmt.Errorf("%w: empty format tag or constructor", signal.ErrValidation)
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, dup := r.formats[tag]; dup {
		return fmt.Errorf("%w: file format %q already registered", signal.ErrDuplicateKey, tag)
	}
	r.formats[tag] = c
	r.log.Debugf("registered file format %q", tag)

	return nil
}

// RegisterCodec registers the compressed format "lpcm.<name>" for c.
func (r *Registry) RegisterCodec(c Codec) error {
	return r.Register(TagPlain+"."+c.Name(), CompressedConstructor(c))
}

// Lookup returns the constructor registered under tag.
func (r *Registry) Lookup(tag string) (Constructor, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	c, ok := r.formats[tag]
	return c, ok
}

// Format builds the format registered under tag for info.
func (r *Registry) Format(tag string, info signal.SamplesInfo, opts ...Option) (Format, error) {
	c, ok := r.Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, tag)
	}

	return c(info, opts...)
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return slices.Sorted(maps.Keys(r.formats))
}
