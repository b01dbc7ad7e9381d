// SPDX-License-Identifier: EPL-2.0

// Package samples provides the in-memory container for multichannel sample
// data.
//
// A Samples value pairs a channels x samples matrix with its
// signal.SamplesInfo and an Encoded flag. Encoded samples hold the integer
// codes declared by Info.SampleType; decoded samples hold float64 values in
// Info.SampleUnit.
//
//	m, _ := samples.FromRows([]float64{0.5, 1.0}, []float64{-0.5, -1.0})
//	s, _ := samples.New(m, info, false)
//	enc, _ := s.Encode(nil)
//	dec := enc.Decode()
//
// Encode and Decode never modify their receiver. They return a new Samples
// sharing Info, or the receiver itself when it is already in the requested
// state. EncodeInto and DecodeInto write into caller-owned matrices instead.
//
// # Layout
//
// Matrix stores data interleaved, channel-fastest. Slicing by sample range
// (Slice, Span) shares storage; selecting channels (Channels) copies.
package samples
