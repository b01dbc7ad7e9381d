// SPDX-License-Identifier: EPL-2.0

package onda

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pion/logging"

	ilogging "github.com/ik5/onda/internal/logging"
	"github.com/ik5/onda/lpcm"
	"github.com/ik5/onda/lpcm/lz4"
	"github.com/ik5/onda/lpcm/xz"
	"github.com/ik5/onda/quantize"
	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
	"github.com/ik5/onda/storage"
	"github.com/ik5/onda/timespan"
)

// SampleStore loads and stores the samples of signals through a storage
// backend. It is safe for concurrent use when the backend is.
type SampleStore struct {
	backend  storage.Backend
	registry *lpcm.Registry
	cfg      Config
	factory  logging.LoggerFactory
	log      logging.LeveledLogger

	seed atomic.Uint64
}

// Option configures a SampleStore.
type Option func(*SampleStore)

func WithConfig(cfg Config) Option {
	return func(s *SampleStore) { s.cfg = cfg }
}

// WithRegistry sets the format registry. The default registry holds lpcm,
// lpcm.zst, lpcm.lz4 and lpcm.xz.
func WithRegistry(r *lpcm.Registry) Option {
	return func(s *SampleStore) { s.registry = r }
}

// WithLoggerFactory routes store logs through f. Without it a factory
// writing to stderr at Config.LogLevel is used.
func WithLoggerFactory(f logging.LoggerFactory) Option {
	return func(s *SampleStore) { s.factory = f }
}

// DefaultRegistry returns a registry with every bundled format.
func DefaultRegistry(opts ...lpcm.RegistryOption) (*lpcm.Registry, error) {
	r := lpcm.DefaultRegistry(opts...)
	if err := lz4.Register(r); err != nil {
		return nil, err
	}
	if err := xz.Register(r); err != nil {
		return nil, err
	}

	return r, nil
}

func New(backend storage.Backend, opts ...Option) (*SampleStore, error) {
	s := &SampleStore{
		backend: backend,
		cfg:     DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	if s.factory == nil {
		f, err := ilogging.NewFactory(s.cfg.LogLevel, os.Stderr)
		if err != nil {
			return nil, err
		}
		s.factory = f
	}
	s.log = s.factory.NewLogger("onda")

	if s.registry == nil {
		r, err := DefaultRegistry(lpcm.WithLoggerFactory(s.factory))
		if err != nil {
			return nil, err
		}
		s.registry = r
	}
	if _, ok := s.registry.Lookup(s.cfg.DefaultFormat); !ok {
		return nil, fmt.Errorf("%w: default_format %q", lpcm.ErrUnknownFormat, s.cfg.DefaultFormat)
	}
	if !s.cfg.Validation {
		s.log.Warn("sample validation is disabled")
	}
	s.seed.Store(s.cfg.DitherSeed)

	return s, nil
}

// Config returns the store's configuration.
func (s *SampleStore) Config() Config { return s.cfg }

// Registry returns the store's format registry.
func (s *SampleStore) Registry() *lpcm.Registry { return s.registry }

func (s *SampleStore) validation() signal.Option {
	return signal.WithValidation(s.cfg.Validation)
}

func (s *SampleStore) format(tag string, info signal.SamplesInfo) (lpcm.Format, error) {
	if tag == "" {
		tag = s.cfg.DefaultFormat
	}

	return s.registry.Format(tag, info, lpcm.WithLevel(s.cfg.CompressionLevel))
}

func (s *SampleStore) wrap(data samples.Data, info signal.SamplesInfo, encoded bool) (samples.Samples, error) {
	smp, err := samples.New(data, info, true, s.validation())
	if err != nil {
		return samples.Samples{}, err
	}
	if !encoded {
		smp = smp.Decode()
	}

	return smp, nil
}

// Load reads every sample of sig. Decoded samples are returned unless
// encoded is set.
func (s *SampleStore) Load(sig signal.Signal, encoded bool) (samples.Samples, error) {
	smp, err := s.LoadFile(sig.FilePath, sig.FileFormat, sig.SamplesInfo, encoded)
	if err != nil {
		return samples.Samples{}, err
	}

	if want, err := sig.SampleCount(); err == nil && want != int64(smp.SampleCount()) {
		s.log.Warnf("%s holds %d samples, signal span covers %d", sig.FilePath, smp.SampleCount(), want)
	}

	return smp, nil
}

// LoadFile reads every sample of the file at path, stored in the named
// format with the channel layout of info.
func (s *SampleStore) LoadFile(path, tag string, info signal.SamplesInfo, encoded bool) (samples.Samples, error) {
	f, err := s.format(tag, info)
	if err != nil {
		return samples.Samples{}, err
	}

	var data samples.Data
	if sb, ok := s.backend.(storage.StreamBackend); ok {
		data, err = s.readStream(sb, path, f)
	} else {
		var b []byte
		if b, err = s.backend.Read(path); err == nil {
			data, err = f.Deserialize(b, 0, samples.All)
		}
	}
	if err != nil {
		return samples.Samples{}, fmt.Errorf("loading %s: %w", path, err)
	}

	return s.wrap(data, info, encoded)
}

func (s *SampleStore) readStream(sb storage.StreamBackend, path string, f lpcm.Format) (samples.Data, error) {
	rc, err := sb.OpenReader(path)
	if err != nil {
		return nil, err
	}
	r := &onceCloser{ReadCloser: rc}

	var data samples.Data
	open, err := lpcm.WithDeserializer(f, r, func(d lpcm.Deserializer) error {
		var derr error
		data, derr = d.Deserialize(0, samples.All)
		return derr
	})
	s.log.Tracef("finalized %s reader for %s, channel open: %t", f, path, open)

	return data, errors.Join(err, r.Close())
}

// onceCloser lets both a deserializer and its caller close the source.
type onceCloser struct {
	io.ReadCloser

	once sync.Once
	err  error
}

func (c *onceCloser) Close() error {
	c.once.Do(func() { c.err = c.ReadCloser.Close() })

	return c.err
}

// LoadSpan reads the samples of sig active during span, which is relative
// to the start of the signal. Only the needed bytes are read when the
// format supports it. A span running past the end is truncated; one
// starting past the end fails with ErrDomain.
func (s *SampleStore) LoadSpan(sig signal.Signal, span timespan.TimeSpan, encoded bool) (samples.Samples, error) {
	r, err := timespan.IndexRangeFromSpan(sig.SampleRate, span)
	if err != nil {
		return samples.Samples{}, err
	}
	total, err := sig.SampleCount()
	if err != nil {
		return samples.Samples{}, err
	}
	if r.First > total {
		return samples.Samples{}, fmt.Errorf("%w: span %s starts after the last of %d samples", timespan.ErrDomain, span, total)
	}

	f, err := s.format(sig.FileFormat, sig.SamplesInfo)
	if err != nil {
		return samples.Samples{}, err
	}

	offset, count := int(r.First-1), int(r.Len())
	callback, br, err := f.DeserializeCallback(offset, count)
	if err != nil {
		return samples.Samples{}, err
	}

	var b []byte
	if br.Known {
		b, err = storage.ReadByteRange(s.backend, sig.FilePath, br.Offset, br.Count)
	} else {
		s.log.Debugf("%s has no byte range for %s, reading the whole file", f, r)
		b, err = s.backend.Read(sig.FilePath)
	}

	var data samples.Data
	if err == nil {
		data, err = callback(b)
	}
	if err != nil {
		return samples.Samples{}, fmt.Errorf("loading %s of %s: %w", span, sig.FilePath, err)
	}

	return s.wrap(data, sig.SamplesInfo, encoded)
}

func (s *SampleStore) dither() *quantize.Dither {
	if !s.cfg.Dither {
		return nil
	}

	return quantize.NewDither(s.seed.Add(1) - 1)
}

// Store encodes smp if needed and writes it to path in the named format.
// An empty tag selects Config.DefaultFormat.
func (s *SampleStore) Store(path, tag string, smp samples.Samples) error {
	if s.cfg.Validation {
		if err := smp.Validate(); err != nil {
			return err
		}
	}

	f, err := s.format(tag, smp.Info)
	if err != nil {
		return err
	}

	enc, err := smp.Encode(s.dither())
	if err != nil {
		return err
	}

	if sb, ok := s.backend.(storage.StreamBackend); ok {
		err = s.writeStream(sb, path, f, enc.Data)
	} else {
		var b []byte
		if b, err = f.Serialize(enc.Data); err == nil {
			err = s.backend.Write(path, b)
		}
	}
	if err != nil {
		return fmt.Errorf("storing %s: %w", path, err)
	}
	s.log.Debugf("stored %d samples of %d channels to %s as %s", enc.SampleCount(), enc.ChannelCount(), path, f)

	return nil
}

func (s *SampleStore) writeStream(sb storage.StreamBackend, path string, f lpcm.Format, data samples.Data) error {
	w, err := sb.OpenWriter(path)
	if err != nil {
		return err
	}

	_, err = lpcm.WithSerializer(f, w, func(ser lpcm.Serializer) error {
		return ser.Serialize(data)
	})
	if err != nil {
		return errors.Join(err, w.Abort())
	}

	return w.Close()
}

// StoreSignal stores smp and returns the signal describing it, placed in
// recording from start for the duration of the samples. Entries of custom
// are added to the descriptor's custom metadata.
func (s *SampleStore) StoreSignal(
	path, tag string,
	smp samples.Samples,
	recording uuid.UUID,
	start time.Duration,
	custom map[string]any,
) (signal.Signal, error) {
	if tag == "" {
		tag = s.cfg.DefaultFormat
	}

	d, err := smp.Duration()
	if err != nil {
		return signal.Signal{}, err
	}
	span, err := timespan.New(start, start+d)
	if err != nil {
		return signal.Signal{}, err
	}

	info := smp.Info.Clone()
	if len(custom) > 0 && info.Custom == nil {
		info.Custom = make(map[string]any, len(custom))
	}
	for k, v := range custom {
		info.Custom[k] = v
	}

	sig, err := signal.NewSignal(signal.Signal{
		SamplesInfo: info,
		Recording:   recording,
		FilePath:    path,
		FileFormat:  tag,
		Span:        span,
	}, s.validation())
	if err != nil {
		return signal.Signal{}, err
	}

	if err := s.Store(path, tag, smp); err != nil {
		return signal.Signal{}, err
	}

	return sig, nil
}
