// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile = errors.New("not a WAV file")

	// ErrNotPCM indicates a WAV file whose samples are not integer PCM.
	ErrNotPCM = errors.New("WAV file is not integer PCM")
)
