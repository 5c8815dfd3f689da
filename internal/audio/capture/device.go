package capture

import (
	"sync"

	"github.com/tphakala/malgo"
)

// MalgoDeviceAdapter adapts malgo.Device to the Device interface.
type MalgoDeviceAdapter struct {
	device *malgo.Device
	mu     sync.Mutex
}

// NewMalgoDeviceAdapter creates a new adapter for the malgo device.
func NewMalgoDeviceAdapter(device *malgo.Device) Device {
	return &MalgoDeviceAdapter{device: device}
}

// Start implements the Device interface.
func (a *MalgoDeviceAdapter) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.device.Start()
}

// Stop implements the Device interface.
func (a *MalgoDeviceAdapter) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.device.Stop()
}

// Uninit implements the Device interface.
func (a *MalgoDeviceAdapter) Uninit() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.device.Uninit()
	return nil
}
