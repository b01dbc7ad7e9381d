// SPDX-License-Identifier: EPL-2.0

// Package signal defines the descriptors for stored multichannel signals.
//
// SamplesInfo describes a channel set: its channel names, the physical unit
// of its samples, how physical values are quantized into integer codes and
// the sample rate. Signal adds the placement of one channel set in storage:
// the recording it belongs to, the file path and format tag of its sample
// data and its time span within the recording.
//
//	info, err := signal.NewSamplesInfo(signal.SamplesInfo{
//	    Kind:                   "eeg",
//	    Channels:               []string{"fp1", "f3", "c3"},
//	    SampleUnit:             "microvolt",
//	    SampleResolutionInUnit: 0.25,
//	    SampleType:             signal.Int16,
//	    SampleRate:             256,
//	})
//
// Constructors validate by default. WithoutValidation skips the checks for
// legacy data; the caller then owns the consequences of malformed fields.
//
// Both records carry a Custom map for caller-defined fields.
package signal
