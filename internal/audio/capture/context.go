// Package capture drives microphone acquisition: a malgo-backed device
// layer behind small interfaces, a bounded accumulation buffer for the raw
// PCM, a live input level meter, and the recorder state machine that ties
// them together.
package capture

import (
	"fmt"
	"sync"

	"github.com/tphakala/malgo"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

// Context represents an audio context for managing capture devices.
type Context interface {
	// Devices returns a list of available devices.
	Devices(deviceType malgo.DeviceType) ([]malgo.DeviceInfo, error)

	// InitDevice initializes a new audio device.
	InitDevice(config *malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) (Device, error)

	// Uninit uninitializes the context.
	Uninit() error
}

// Device represents an acquired capture device.
type Device interface {
	// Start starts audio capture.
	Start() error

	// Stop stops audio capture.
	Stop() error

	// Uninit uninitializes the audio device.
	Uninit() error
}

// MalgoContextAdapter adapts malgo.AllocatedContext to the Context interface.
type MalgoContextAdapter struct {
	context *malgo.AllocatedContext
	mu      sync.Mutex
}

// NewMalgoContextAdapter creates a new adapter for the malgo context.
func NewMalgoContextAdapter(backends []malgo.Backend, config *malgo.ContextConfig, logger func(string)) (Context, error) {
	ctx, err := malgo.InitContext(backends, *config, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	return &MalgoContextAdapter{context: ctx}, nil
}

// NewDefaultContext creates a context on the platform's default backend.
func NewDefaultContext(logger func(string)) (Context, error) {
	var backends []malgo.Backend

	backend := audio.GetPlatformDefaultBackend()
	if backend != malgo.BackendNull {
		backends = []malgo.Backend{backend}
	}

	return NewMalgoContextAdapter(backends, &malgo.ContextConfig{}, logger)
}

// Devices implements the Context interface.
func (a *MalgoContextAdapter) Devices(deviceType malgo.DeviceType) ([]malgo.DeviceInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.context.Devices(deviceType)
}

// InitDevice implements the Context interface.
func (a *MalgoContextAdapter) InitDevice(config *malgo.DeviceConfig, callbacks malgo.DeviceCallbacks) (Device, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	device, err := malgo.InitDevice(a.context.Context, *config, callbacks)
	if err != nil {
		return nil, err
	}
	return NewMalgoDeviceAdapter(device), nil
}

// Uninit implements the Context interface.
func (a *MalgoContextAdapter) Uninit() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.context.Uninit()
}
