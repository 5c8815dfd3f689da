package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer_Validation(t *testing.T) {
	_, err := NewBuffer(nil, 44100)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = NewBuffer([][]float64{make([]float64, 10)}, 0)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	// Mismatched channel lengths violate the frame-count invariant.
	_, err = NewBuffer([][]float64{make([]float64, 10), make([]float64, 9)}, 44100)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	buf, err := NewBuffer([][]float64{make([]float64, 10), make([]float64, 10)}, 44100)
	require.NoError(t, err)
	assert.Equal(t, 2, buf.NumChannels())
	assert.Equal(t, 10, buf.FrameCount())
}

func TestBuffer_Duration(t *testing.T) {
	buf, err := NewBuffer([][]float64{make([]float64, 22050)}, 44100)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, buf.Duration(), 1e-9)
}

func TestBuffer_Extract(t *testing.T) {
	samples := []float64{0, 1, 2, 3, 4, 5, 6, 7}
	buf, err := NewBuffer([][]float64{samples}, 8)
	require.NoError(t, err)

	sub := buf.Extract(2, 5)
	assert.Equal(t, []float64{2, 3, 4}, sub.Channels[0])
	assert.Equal(t, 8, sub.SampleRate)

	// Extraction is independent of the source.
	sub.Channels[0][0] = 99
	assert.Equal(t, 2.0, buf.Channels[0][2])

	// Out-of-range bounds are clamped.
	assert.Equal(t, 2, buf.Extract(6, 100).FrameCount())
	assert.Equal(t, 0, buf.Extract(5, 3).FrameCount())
}

func TestBuffer_Clone(t *testing.T) {
	buf, err := NewBuffer([][]float64{{0.5, -0.5}}, 44100)
	require.NoError(t, err)

	clone := buf.Clone()
	clone.Channels[0][0] = 0

	assert.Equal(t, 0.5, buf.Channels[0][0])
	assert.Equal(t, buf.SampleRate, clone.SampleRate)
}

func TestBuffer_Peak(t *testing.T) {
	buf, err := NewBuffer([][]float64{{0.1, -0.9, 0.3}, {0.2, 0.4, -0.5}}, 44100)
	require.NoError(t, err)
	assert.Equal(t, 0.9, buf.Peak())
}
