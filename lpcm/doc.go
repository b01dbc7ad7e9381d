// SPDX-License-Identifier: EPL-2.0

// Package lpcm serializes encoded sample matrices as linear PCM bytes.
//
// # Byte Layout
//
// Plain LPCM ("lpcm") has no header, padding or length prefix. Samples are
// fixed-width little-endian integers of the descriptor's sample type,
// interleaved per sample in channel order:
//
//	c1[1] c2[1] ... cN[1] c1[2] c2[2] ... cN[2] ...
//
// The length of an object is channels * samples * element size.
//
// Compressed variants ("lpcm.zst", "lpcm.lz4", "lpcm.xz") pass the plain
// bytes through a Codec. Zstandard at level 3 is the default compressed
// format; lz4 and xz live in the lpcm/lz4 and lpcm/xz subpackages.
//
// # Partial Reads
//
// DeserializeCallback plans a read of a sample sub-range. Plain LPCM
// reports the exact byte range, so a storage layer can issue a ranged read:
//
//	cb, br, _ := format.DeserializeCallback(10, 5)
//	b, _ := storage.ReadByteRange(backend, path, br.Offset, br.Count)
//	data, _ := cb(b)
//
// Compressed formats report an unknown range and expect the whole object.
//
// # Streams
//
// NewDeserializer and NewSerializer wrap an I/O channel for incremental
// reads or writes. A stream owns its channel until Finalize, which must be
// called exactly once and reports whether the channel is still usable.
// WithDeserializer and WithSerializer guarantee finalization:
//
//	_, err := lpcm.WithSerializer(format, f, func(s lpcm.Serializer) error {
//	    for _, chunk := range chunks {
//	        if err := s.Serialize(chunk); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	})
//
// # Registry
//
// A Registry maps file format tags to constructors. DefaultRegistry returns
// a fresh registry with "lpcm" and "lpcm.zst"; registering an existing tag
// fails with signal.ErrDuplicateKey.
package lpcm
