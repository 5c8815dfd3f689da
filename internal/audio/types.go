// Package audio holds the core data types shared by the sampler engine:
// the decoded sample buffer, the common error values, and the logging
// abstraction used across the internal packages.
package audio

import (
	"fmt"
	"math"
)

// Buffer is decoded multichannel audio. Once constructed it is treated as
// immutable: every consumer that needs to modify sample data works on a
// Clone or an extracted sub-buffer, never on the original channels.
type Buffer struct {
	// Channels holds one float64 slice per channel; all slices have the
	// same length (the frame count).
	Channels [][]float64

	// SampleRate is in frames per second and is always positive.
	SampleRate int
}

// NewBuffer validates the channel layout and wraps it in a Buffer.
// All channels must have the same length and the sample rate must be
// positive.
func NewBuffer(channels [][]float64, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidParameters, sampleRate)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidParameters)
	}
	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			return nil, fmt.Errorf("%w: channel %d has %d frames, expected %d",
				ErrInvalidParameters, i, len(ch), frames)
		}
	}
	return &Buffer{Channels: channels, SampleRate: sampleRate}, nil
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// FrameCount returns the number of frames per channel.
func (b *Buffer) FrameCount() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.FrameCount()) / float64(b.SampleRate)
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	channels := make([][]float64, len(b.Channels))
	for i, ch := range b.Channels {
		channels[i] = make([]float64, len(ch))
		copy(channels[i], ch)
	}
	return &Buffer{Channels: channels, SampleRate: b.SampleRate}
}

// Extract returns a new independent buffer holding frames [from, to) of
// every channel. The range is clamped to the buffer bounds; an empty range
// after clamping yields a zero-frame buffer.
func (b *Buffer) Extract(from, to int) *Buffer {
	frames := b.FrameCount()
	if from < 0 {
		from = 0
	}
	if to > frames {
		to = frames
	}
	if from > to {
		from = to
	}
	channels := make([][]float64, len(b.Channels))
	for i, ch := range b.Channels {
		channels[i] = make([]float64, to-from)
		copy(channels[i], ch[from:to])
	}
	return &Buffer{Channels: channels, SampleRate: b.SampleRate}
}

// Peak returns the largest absolute sample value across all channels.
func (b *Buffer) Peak() float64 {
	peak := 0.0
	for _, ch := range b.Channels {
		for _, s := range ch {
			if a := math.Abs(s); a > peak {
				peak = a
			}
		}
	}
	return peak
}

// Common error values.
var (
	ErrInvalidIndex      = Error("pad index out of range")
	ErrNotLoaded         = Error("pad is not loaded")
	ErrNotInitialized    = Error("audio device not initialized")
	ErrDeviceFailure     = Error("capture device failure")
	ErrDecodeFailed      = Error("audio decode failed")
	ErrInvalidState      = Error("invalid recorder state")
	ErrInvalidParameters = Error("invalid parameters")
)

// Error type for common errors.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
