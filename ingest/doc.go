// SPDX-License-Identifier: EPL-2.0

// Package ingest imports audio recordings as onda samples.
//
// Audio flows through [Source] values that yield interleaved float32
// samples in [-1, 1]. Format packages decode files into sources:
//
//   - ingest/wav: WAV (8, 16, 24 and 32 bit PCM) via github.com/go-audio/wav
//   - ingest/aiff: AIFF via github.com/go-audio/aiff
//   - ingest/mp3: MP3 via github.com/hajimehoshi/go-mp3
//   - ingest/vorbis: Ogg Vorbis via github.com/jfreymuth/oggvorbis
//
// Sources can be chained. [Resampler] changes the sample rate with cubic
// interpolation and [MonoMixer] averages channels:
//
//	mono := ingest.NewMonoMixer(ingest.NewResampler(src, 16000))
//
// [Import] runs such a pipeline to the end and returns decoded
// [samples.Samples] described as kind "audio", unit "normalized", with
// 16 bit codes of resolution 1/32768. Stereo channels are named left and
// right; other layouts use channel_1, channel_2 and so on.
//
//	f, _ := os.Open("take1.wav")
//	src, err := wav.Decoder{}.Decode(f)
//	if err != nil {
//	    return err
//	}
//	smp, err := ingest.Import(src, ingest.Options{SampleRate: 8000})
package ingest
