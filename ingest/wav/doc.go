// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files using github.com/go-audio/wav.
//
// [Decoder] turns a WAV file into an ingest.Source. [Export] writes encoded
// uint8, int16 or int32 samples back out, one WAV channel per onda channel.
package wav
