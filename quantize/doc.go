// SPDX-License-Identifier: EPL-2.0

// Package quantize converts between physical sample values and the integer
// codes stored on disk.
//
// A physical value x is encoded as
//
//	clip(roundHalfEven((x - offset) / resolution))
//
// where clip saturates to the range of the target integer type before
// narrowing. Decoding is resolution*v + offset.
//
// # Fast Paths
//
// When resolution == 1, offset == 0 and the element types already match,
// Encode and Decode return their input slice unchanged without allocating.
//
// # Dithering
//
// A non-nil *Dither adds triangular noise of one quantization step, the
// difference of two uniform variates, before rounding:
//
//	codes, err := quantize.Encode[int16](0.25, 0, volts, quantize.NewDither(42))
//
// When Dither.Storage is set the noise is written into it, so repeated calls
// reuse one buffer. A nil *Dither disables dithering.
//
// Without dithering, |Decode(Encode(x)) - x| <= resolution/2 for every x
// inside the representable range.
package quantize
