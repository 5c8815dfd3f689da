package engine

import (
	"time"

	"github.com/dhiasalah/websampler-go/internal/audio/segment"
)

// Config holds all configuration parameters for the sampler engine.
type Config struct {
	// SampleRate is the engine's working rate for capture and playback.
	SampleRate int

	// CaptureChannels is the channel count used when recording.
	CaptureChannels int

	// MaxCaptureDuration is the ceiling for one recording take.
	MaxCaptureDuration time.Duration

	// Segmentation holds the silence-detection thresholds used when a
	// recording is sliced into pads.
	Segmentation segment.Options
}

// NewDefaultConfig creates a config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		SampleRate:         44100,
		CaptureChannels:    1,
		MaxCaptureDuration: 60 * time.Second,
		Segmentation:       segment.DefaultOptions(),
	}
}
