// SPDX-License-Identifier: EPL-2.0

package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/onda/ingest"
	"github.com/ik5/onda/internal/audiotest"
)

func TestMonoMixer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		want     float32
	}{
		{"mono passthrough", 1, 0},
		{"stereo", 2, 0.25},
		{"quad", 4, 0.75},
		{"five", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// channel c carries c*0.5, so the mean is (channels-1)*0.25.
			src := audiotest.NewRampSource(8000, tt.channels, 100, 0, 0.5)
			m := ingest.NewMonoMixer(src)
			assert.Equal(t, 1, m.Channels())
			assert.Equal(t, 8000, m.SampleRate())

			out := drain(t, m, 30)
			require.Len(t, out, 100)
			for _, v := range out {
				assert.InDelta(t, tt.want, v, 1e-6)
			}

			require.NoError(t, m.Close())
			assert.True(t, src.Closed)
		})
	}
}
