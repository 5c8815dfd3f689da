package engine

import (
	"github.com/stretchr/testify/mock"
	"github.com/tphakala/malgo"

	"github.com/dhiasalah/websampler-go/internal/audio"
	"github.com/dhiasalah/websampler-go/internal/audio/capture"
)

// MockOutputDevice mocks playback.Device
type MockOutputDevice struct {
	mock.Mock
}

func (m *MockOutputDevice) Play(buf *audio.Buffer, start, duration, gain float64) error {
	args := m.Called(buf, start, duration, gain)
	return args.Error(0)
}

func (m *MockOutputDevice) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCaptureContext mocks capture.Context
type MockCaptureContext struct {
	mock.Mock

	lastCallbacks malgo.DeviceCallbacks
}

func (m *MockCaptureContext) Devices(deviceType malgo.DeviceType) ([]malgo.DeviceInfo, error) {
	args := m.Called(deviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]malgo.DeviceInfo), args.Error(1)
}

func (m *MockCaptureContext) InitDevice(config *malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) (capture.Device, error) {
	m.lastCallbacks = callbacks
	args := m.Called(config, callbacks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(capture.Device), args.Error(1)
}

func (m *MockCaptureContext) Uninit() error {
	args := m.Called()
	return args.Error(0)
}

// PushData invokes the captured data callback as the device would.
func (m *MockCaptureContext) PushData(data []byte) {
	if m.lastCallbacks.Data != nil {
		m.lastCallbacks.Data(nil, data, uint32(len(data)/2))
	}
}

// MockCaptureDevice mocks capture.Device
type MockCaptureDevice struct {
	mock.Mock
}

func (m *MockCaptureDevice) Start() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCaptureDevice) Stop() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCaptureDevice) Uninit() error {
	args := m.Called()
	return args.Error(0)
}
