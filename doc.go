// SPDX-License-Identifier: EPL-2.0

// Package onda stores and loads the sample data of biosignal recordings.
//
// A recording is split into signals. Each [signal.Signal] describes one
// channel set: its names, units, quantization, sample rate, where its
// samples are stored and in which file format, and the time span it covers
// within the recording. The samples themselves travel as
// [samples.Samples], a channels x samples matrix that is either encoded
// (integer codes exactly as stored) or decoded (physical values).
//
// # Storing and loading
//
// [SampleStore] ties the pieces together. It encodes samples with the
// signal's resolution and offset, serializes them with a registered LPCM
// format and writes them to a [storage.Backend]:
//
//	store, err := onda.New(storage.NewLocal("/data/onda"))
//	if err != nil {
//	    return err
//	}
//
//	sig, err := store.StoreSignal("rec1/eeg.lpcm.zst", "lpcm.zst", smp, recording, 0, nil)
//	if err != nil {
//	    return err
//	}
//
// Loading returns decoded samples unless encoded ones are requested.
// [SampleStore.LoadSpan] reads only the bytes a span needs when the format
// allows it:
//
//	first, err := store.LoadSpan(sig, timespan.Must(0, 10*time.Second), false)
//
// # Formats
//
// The default registry knows "lpcm" (interleaved little-endian samples) and
// its compressed variants "lpcm.zst", "lpcm.lz4" and "lpcm.xz". Further
// formats can be added with [lpcm.Registry.Register] and passed in with
// [WithRegistry].
//
// # Configuration
//
// [Config] is read from YAML with [LoadConfig] or [LoadConfigFile]:
//
//	validate: true
//	default_format: lpcm.zst
//	compression_level: 3
//	dither: false
//	log_level: warn
//
// Logging uses github.com/pion/logging. Pass a factory with
// [WithLoggerFactory] to route store, registry and backend logs.
//
// # Errors
//
// Errors wrap the sentinels re-exported by this package, such as
// [ErrValidation], [ErrDomain] and [ErrFormat]; test for them with
// errors.Is.
package onda
