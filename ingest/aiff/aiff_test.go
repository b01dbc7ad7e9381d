// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/onda/ingest"
	"github.com/ik5/onda/ingest/aiff"
)

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
	}{
		{"text", []byte("This is not an AIFF file")},
		{"empty", nil},
		{"riff header", []byte("RIFF\x24\x00\x00\x00WAVEfmt ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := aiff.Decoder{}.Decode(bytes.NewReader(tt.in))
			require.ErrorIs(t, err, aiff.ErrNotAiffFile)
		})
	}
}

func TestDecoder_Registers(t *testing.T) {
	t.Parallel()

	r := ingest.NewRegistry()
	require.NoError(t, r.Register("aiff", aiff.Decoder{}))

	_, err := r.Decode("aiff", bytes.NewReader([]byte("nope")))
	require.ErrorIs(t, err, aiff.ErrNotAiffFile)
}
