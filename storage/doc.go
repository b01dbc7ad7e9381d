// SPDX-License-Identifier: EPL-2.0

// Package storage provides the byte stores that sample files live in.
//
// A [Backend] reads and writes whole objects by locator. Backends may also
// implement [RangeReader] to serve partial reads and [StreamBackend] to
// stream objects in and out. [ReadByteRange] uses a ranged read when one is
// available and otherwise slices a full read:
//
//	b, err := storage.ReadByteRange(backend, "rec/eeg.lpcm", 4096, 8192)
//
// Two backends are included: [Local] stores files below a root directory
// and [Memory] keeps objects in process, which is convenient for tests.
// Reading a missing object fails with [ErrNotFound].
package storage
