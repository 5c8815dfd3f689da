// Package playback renders a pad's trimmed, gain-scaled buffer region to
// the output device. Every Play call creates an independent playback
// instance; overlapping plays of the same or different pads mix at the
// device and never cancel each other.
package playback

import (
	"github.com/dhiasalah/websampler-go/internal/audio"
	"github.com/dhiasalah/websampler-go/internal/audio/pads"
)

// Device is the abstract output sink: a buffer region plus gain and an
// immediate start command.
type Device interface {
	// Play schedules immediate playback of duration seconds of buf
	// starting at start seconds, scaled by gain.
	Play(buf *audio.Buffer, start, duration, gain float64) error

	// Close releases the output device.
	Close() error
}

// Engine plays pads from a store through a Device.
type Engine struct {
	device Device
	logger audio.Logger
}

// NewEngine creates a playback engine. A nil device degrades every Play to
// a warning no-op.
func NewEngine(device Device, logger audio.Logger) *Engine {
	if logger == nil {
		logger = &audio.StandardLogger{}
	}
	return &Engine{device: device, logger: logger}
}

// Play schedules playback of the pad at index, restricted to its trim
// region and scaled by its gain. Missing device, invalid index and
// unloaded pad all degrade to a warning no-op with the matching error.
func (e *Engine) Play(store *pads.Store, index int) error {
	if e.device == nil {
		e.logger.Warn("play: no output device initialized")
		return audio.ErrNotInitialized
	}

	pad, err := store.Pad(index)
	if err != nil {
		e.logger.Warn("play: pad index %d out of range", index)
		return err
	}
	if !pad.Loaded {
		e.logger.Warn("play: pad %d is not loaded", index)
		return audio.ErrNotLoaded
	}

	// The store already guarantees valid trim points; clamp anyway in
	// case the pad was mutated from outside.
	total := pad.Buffer.Duration()
	start := clamp(pad.TrimStart, 0, total)
	end := clamp(pad.TrimEnd, start, total)

	return e.device.Play(pad.Buffer, start, end-start, pad.Gain)
}

// Close releases the underlying device, if any.
func (e *Engine) Close() error {
	if e.device == nil {
		return nil
	}
	return e.device.Close()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
