package capture

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

func testConfig() Config {
	return Config{
		SampleRate:  44100,
		Channels:    1,
		MaxDuration: time.Second,
		LevelWindow: 100 * time.Millisecond,
	}
}

// pcmChunk encodes int16 samples as little-endian PCM bytes.
func pcmChunk(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestRecorder_StartStop_ProducesBuffer(t *testing.T) {
	ctx := new(MockContext)
	device := new(MockDevice)
	recorder := NewRecorder(ctx, testConfig(), nil)

	ctx.On("InitDevice", mock.Anything, mock.Anything).Return(device, nil)
	device.On("Start").Return(nil)
	device.On("Stop").Return(nil)
	device.On("Uninit").Return(nil)

	require.NoError(t, recorder.Start())
	assert.Equal(t, StateRecording, recorder.State())

	ctx.PushData(pcmChunk(0, 16384, -16384, -32768))

	buf, err := recorder.Stop()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, recorder.State())

	require.Equal(t, 4, buf.FrameCount())
	assert.Equal(t, 44100, buf.SampleRate)
	assert.InDelta(t, 0.5, buf.Channels[0][1], 1e-9)
	assert.InDelta(t, -1.0, buf.Channels[0][3], 1e-9)

	device.AssertExpectations(t)
	ctx.AssertExpectations(t)
}

func TestRecorder_StopWhileIdle(t *testing.T) {
	recorder := NewRecorder(new(MockContext), testConfig(), nil)

	_, err := recorder.Stop()
	assert.ErrorIs(t, err, audio.ErrInvalidState)
}

func TestRecorder_DoubleStart(t *testing.T) {
	ctx := new(MockContext)
	device := new(MockDevice)
	recorder := NewRecorder(ctx, testConfig(), nil)

	ctx.On("InitDevice", mock.Anything, mock.Anything).Return(device, nil)
	device.On("Start").Return(nil)
	device.On("Stop").Return(nil)
	device.On("Uninit").Return(nil)

	require.NoError(t, recorder.Start())

	err := recorder.Start()
	assert.ErrorIs(t, err, audio.ErrInvalidState)

	// The original recording is still active.
	assert.Equal(t, StateRecording, recorder.State())
	recorder.Cancel()
}

func TestRecorder_DeviceAcquisitionFailure(t *testing.T) {
	ctx := new(MockContext)
	recorder := NewRecorder(ctx, testConfig(), nil)

	ctx.On("InitDevice", mock.Anything, mock.Anything).Return(nil, errors.New("permission denied"))

	err := recorder.Start()
	assert.ErrorIs(t, err, audio.ErrDeviceFailure)
	assert.Equal(t, StateIdle, recorder.State())
}

func TestRecorder_StartFailureReleasesDevice(t *testing.T) {
	ctx := new(MockContext)
	device := new(MockDevice)
	recorder := NewRecorder(ctx, testConfig(), nil)

	ctx.On("InitDevice", mock.Anything, mock.Anything).Return(device, nil)
	device.On("Start").Return(errors.New("device busy"))
	device.On("Uninit").Return(nil)

	err := recorder.Start()
	assert.ErrorIs(t, err, audio.ErrDeviceFailure)
	assert.Equal(t, StateIdle, recorder.State())

	// The half-acquired device must have been released.
	device.AssertCalled(t, "Uninit")
}

func TestRecorder_Cancel_ReleasesDeviceAndDiscards(t *testing.T) {
	ctx := new(MockContext)
	device := new(MockDevice)
	recorder := NewRecorder(ctx, testConfig(), nil)

	ctx.On("InitDevice", mock.Anything, mock.Anything).Return(device, nil)
	device.On("Start").Return(nil)
	device.On("Stop").Return(nil)
	device.On("Uninit").Return(nil)

	require.NoError(t, recorder.Start())
	ctx.PushData(pcmChunk(1000, 2000))

	recorder.Cancel()
	assert.Equal(t, StateIdle, recorder.State())
	device.AssertCalled(t, "Stop")
	device.AssertCalled(t, "Uninit")

	// A cancelled recording never resolves.
	_, err := recorder.Stop()
	assert.ErrorIs(t, err, audio.ErrInvalidState)
}

func TestRecorder_CancelWhileIdleIsNoOp(t *testing.T) {
	recorder := NewRecorder(new(MockContext), testConfig(), nil)
	recorder.Cancel()
	assert.Equal(t, StateIdle, recorder.State())
}

func TestRecorder_LateCallbacksAfterCancelAreDropped(t *testing.T) {
	ctx := new(MockContext)
	device := new(MockDevice)
	recorder := NewRecorder(ctx, testConfig(), nil)

	ctx.On("InitDevice", mock.Anything, mock.Anything).Return(device, nil)
	device.On("Start").Return(nil)
	device.On("Stop").Return(nil)
	device.On("Uninit").Return(nil)

	require.NoError(t, recorder.Start())
	recorder.Cancel()

	// A straggling chunk from the dead recording must not leak into the
	// next take.
	ctx.PushData(pcmChunk(12345))

	require.NoError(t, recorder.Start())
	buf, err := recorder.Stop()
	require.NoError(t, err)
	assert.Equal(t, 0, buf.FrameCount())
}

func TestRecorder_StartWithoutContext(t *testing.T) {
	recorder := NewRecorder(nil, testConfig(), nil)
	assert.ErrorIs(t, recorder.Start(), audio.ErrNotInitialized)
}

func TestRecorder_LevelWhileIdleIsZero(t *testing.T) {
	recorder := NewRecorder(new(MockContext), testConfig(), nil)
	assert.Equal(t, LevelData{}, recorder.Level())
}

func TestRecorder_LevelReflectsInput(t *testing.T) {
	ctx := new(MockContext)
	device := new(MockDevice)
	recorder := NewRecorder(ctx, testConfig(), nil)

	ctx.On("InitDevice", mock.Anything, mock.Anything).Return(device, nil)
	device.On("Start").Return(nil)
	device.On("Stop").Return(nil)
	device.On("Uninit").Return(nil)

	require.NoError(t, recorder.Start())

	loud := make([]int16, 256)
	for i := range loud {
		loud[i] = 20000
	}
	ctx.PushData(pcmChunk(loud...))

	level := recorder.Level()
	assert.Greater(t, level.Level, 0)

	recorder.Cancel()
}
