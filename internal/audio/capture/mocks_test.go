package capture

import (
	"github.com/stretchr/testify/mock"
	"github.com/tphakala/malgo"
)

// MockContext mocks the Context interface
type MockContext struct {
	mock.Mock

	// lastCallbacks holds the callbacks of the most recent InitDevice
	// call so tests can push synthetic capture data.
	lastCallbacks malgo.DeviceCallbacks
}

func (m *MockContext) Devices(deviceType malgo.DeviceType) ([]malgo.DeviceInfo, error) {
	args := m.Called(deviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]malgo.DeviceInfo), args.Error(1)
}

func (m *MockContext) InitDevice(config *malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) (Device, error) {
	m.lastCallbacks = callbacks
	args := m.Called(config, callbacks)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Device), args.Error(1)
}

func (m *MockContext) Uninit() error {
	args := m.Called()
	return args.Error(0)
}

// PushData invokes the captured data callback as the device would.
func (m *MockContext) PushData(data []byte) {
	if m.lastCallbacks.Data != nil {
		m.lastCallbacks.Data(nil, data, uint32(len(data)/2))
	}
}

// MockDevice mocks the Device interface
type MockDevice struct {
	mock.Mock
}

func (m *MockDevice) Start() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDevice) Stop() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockDevice) Uninit() error {
	args := m.Called()
	return args.Error(0)
}
