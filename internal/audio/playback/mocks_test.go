package playback

import (
	"github.com/stretchr/testify/mock"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

// MockDevice mocks the Device interface
type MockDevice struct {
	mock.Mock
}

func (m *MockDevice) Play(buf *audio.Buffer, start, duration, gain float64) error {
	args := m.Called(buf, start, duration, gain)
	return args.Error(0)
}

func (m *MockDevice) Close() error {
	args := m.Called()
	return args.Error(0)
}
