// SPDX-License-Identifier: EPL-2.0

package ingest

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pion/logging"

	ilogging "github.com/ik5/onda/internal/logging"
	"github.com/ik5/onda/samples"
	"github.com/ik5/onda/signal"
)

// Descriptor values of imported audio.
const (
	Kind       = "audio"
	SampleUnit = "normalized"
	Resolution = 1.0 / 32768
)

// Options controls Import.
type Options struct {
	// SampleRate resamples the source when non-zero and different from
	// the source rate.
	SampleRate int
	// Mono averages all channels into one.
	Mono bool
	// Kind overrides the descriptor kind, "audio" by default.
	Kind string
	// BufferSize is the number of values read per call, 4096 by default.
	BufferSize    int
	LoggerFactory logging.LoggerFactory
}

// ChannelNames returns the channel names used for n imported channels:
// left and right for stereo, channel_1 to channel_n otherwise.
func ChannelNames(n int) []string {
	if n == 2 {
		return []string{"left", "right"}
	}

	names := make([]string, n)
	for i := range names {
		names[i] = "channel_" + strconv.Itoa(i+1)
	}

	return names
}

// Info returns the descriptor of audio with the given channels and rate,
// encoded as 16 bit codes of normalized amplitude.
func Info(kind string, channels []string, rate int) signal.SamplesInfo {
	return signal.SamplesInfo{
		Kind:                   kind,
		Channels:               channels,
		SampleUnit:             SampleUnit,
		SampleResolutionInUnit: Resolution,
		SampleType:             signal.Int16,
		SampleRate:             float64(rate),
	}
}

// Import reads src to the end and returns its decoded samples. The source
// is closed on return.
func Import(src Source, opts Options) (smp samples.Samples, err error) {
	log := ilogging.Factory(opts.LoggerFactory).NewLogger("ingest")
	defer func() {
		err = errors.Join(err, src.Close())
	}()

	if src.Channels() <= 0 {
		return samples.Samples{}, ErrNoChannels
	}

	var stage Source = src
	if opts.SampleRate > 0 && opts.SampleRate != src.SampleRate() {
		stage = NewResampler(stage, opts.SampleRate)
	}
	if opts.Mono {
		stage = NewMonoMixer(stage)
	}

	channels := stage.Channels()
	size := opts.BufferSize
	if size <= 0 {
		size = 4096
	}
	size = max(size-size%channels, channels)

	data, err := readAll(stage, size)
	if err != nil {
		return samples.Samples{}, err
	}

	names := ChannelNames(channels)
	kind := opts.Kind
	if kind == "" {
		kind = Kind
	}

	m := &samples.Matrix[float64]{Data: data, Channels: channels}
	smp, err = samples.New(m, Info(kind, names, stage.SampleRate()), false)
	if err != nil {
		return samples.Samples{}, err
	}
	log.Debugf("imported %d frames of %d channels at %d Hz (source %d Hz)",
		smp.SampleCount(), channels, stage.SampleRate(), src.SampleRate())

	return smp, nil
}

func readAll(src Source, size int) ([]float64, error) {
	buf := make([]float32, size)
	var out []float64

	for empty := 0; ; {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			out = append(out, float64(v))
		}

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading audio: %w", err)
		}

		if n > 0 {
			empty = 0
		} else if empty++; empty >= maxEmptyReads {
			return nil, fmt.Errorf("reading audio: %w", io.ErrNoProgress)
		}
	}
}
