package file

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

func monoBuffer(t *testing.T, samples []float64, rate int) *audio.Buffer {
	t.Helper()
	buf, err := audio.NewBuffer([][]float64{samples}, rate)
	require.NoError(t, err)
	return buf
}

func TestEncodeWAV_HeaderExactness(t *testing.T) {
	buf := monoBuffer(t, make([]float64, 1000), 44100)

	out, err := EncodeWAV(buf)
	require.NoError(t, err)
	require.Len(t, out, 44+2000)

	le := binary.LittleEndian

	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, uint32(36+2000), le.Uint32(out[4:8])) // ChunkSize
	assert.Equal(t, "WAVE", string(out[8:12]))

	assert.Equal(t, "fmt ", string(out[12:16]))
	assert.Equal(t, uint32(16), le.Uint32(out[16:20]))    // Subchunk1Size
	assert.Equal(t, uint16(1), le.Uint16(out[20:22]))     // PCM
	assert.Equal(t, uint16(1), le.Uint16(out[22:24]))     // NumChannels
	assert.Equal(t, uint32(44100), le.Uint32(out[24:28])) // SampleRate
	assert.Equal(t, uint32(88200), le.Uint32(out[28:32])) // ByteRate
	assert.Equal(t, uint16(2), le.Uint16(out[32:34]))     // BlockAlign
	assert.Equal(t, uint16(16), le.Uint16(out[34:36]))    // BitsPerSample

	assert.Equal(t, "data", string(out[36:40]))
	assert.Equal(t, uint32(2000), le.Uint32(out[40:44])) // Subchunk2Size
}

func TestEncodeWAV_SampleMapping(t *testing.T) {
	// Clamp to [-1,1], scale negatives by 32768 and non-negatives by 32767.
	buf := monoBuffer(t, []float64{-2.0, -1.0, -0.5, 0.0, 0.5, 1.0, 2.0}, 44100)

	out, err := EncodeWAV(buf)
	require.NoError(t, err)

	want := []int16{-32768, -32768, -16384, 0, 16383, 32767, 32767}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(out[44+2*i:]))
		assert.Equal(t, w, got, "sample %d", i)
	}
}

func TestEncodeWAV_InterleavesChannels(t *testing.T) {
	buf, err := audio.NewBuffer([][]float64{{0.5, 0.5}, {-0.5, -0.5}}, 48000)
	require.NoError(t, err)

	out, err := EncodeWAV(buf)
	require.NoError(t, err)

	le := binary.LittleEndian
	assert.Equal(t, uint16(4), le.Uint16(out[32:34])) // BlockAlign = 2 ch * 2 bytes

	// Frame 0: left then right.
	assert.Equal(t, int16(16383), int16(le.Uint16(out[44:])))
	assert.Equal(t, int16(-16384), int16(le.Uint16(out[46:])))
}

func TestEncodeWAV_Deterministic(t *testing.T) {
	buf := monoBuffer(t, []float64{0.1, -0.2, 0.3}, 44100)

	first, err := EncodeWAV(buf)
	require.NoError(t, err)
	second, err := EncodeWAV(buf)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEncodeWAV_RoundTripThroughDecoder(t *testing.T) {
	buf := monoBuffer(t, []float64{0.0, 0.25, -0.25, 0.5}, 44100)

	out, err := EncodeWAV(buf)
	require.NoError(t, err)

	decoded, err := decodeWAV(out)
	require.NoError(t, err)

	assert.Equal(t, buf.SampleRate, decoded.SampleRate)
	assert.Equal(t, buf.FrameCount(), decoded.FrameCount())
	for i := range buf.Channels[0] {
		assert.InDelta(t, buf.Channels[0][i], decoded.Channels[0][i], 1.0/32767)
	}
}

func TestEncodeWAV_InvalidInput(t *testing.T) {
	_, err := EncodeWAV(nil)
	assert.ErrorIs(t, err, audio.ErrInvalidParameters)
}
