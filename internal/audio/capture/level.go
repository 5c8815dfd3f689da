package capture

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/smallnest/ringbuffer"
)

// LevelData holds one input level reading for a record indicator.
type LevelData struct {
	Level    int  `json:"level"`    // 0-100
	Clipping bool `json:"clipping"` // true if clipping is detected
}

// levelMeter keeps a sliding window of the most recent input PCM and turns
// it into a 0-100 level on demand. Writes come from the device callback;
// reads come from whoever polls the indicator.
type levelMeter struct {
	rb *ringbuffer.RingBuffer
	mu sync.Mutex
}

// newLevelMeter creates a meter over a window of windowBytes of PCM.
func newLevelMeter(windowBytes int) *levelMeter {
	if windowBytes < 2 {
		windowBytes = 2
	}
	return &levelMeter{rb: ringbuffer.New(windowBytes)}
}

// Write feeds captured PCM into the window. When the window is full the
// oldest data is dropped first so the meter always reflects recent input.
func (m *levelMeter) Write(data []byte) {
	if len(data) == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if free := m.rb.Free(); free < len(data) {
		discard := make([]byte, len(data)-free)
		m.rb.Read(discard)
	}
	m.rb.Write(data)
}

// Read returns the level over the retained window without consuming it, so
// polling faster than the window refills yields a steady reading instead of
// a level followed by zeroes. An empty window yields a zero level.
func (m *levelMeter) Read() LevelData {
	m.mu.Lock()
	data := m.rb.Bytes(nil)
	m.mu.Unlock()

	return calculateLevel(data)
}

// Reset empties the window.
func (m *levelMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rb.Reset()
}

// calculateLevel computes the RMS of 16-bit little-endian samples and maps
// it to a 0-100 level, flagging clipping at full scale.
func calculateLevel(samples []byte) LevelData {
	if len(samples) == 0 {
		return LevelData{}
	}

	// Ensure we have an even number of bytes (16-bit samples).
	if len(samples)%2 != 0 {
		samples = samples[:len(samples)-1]
	}

	var sum float64
	sampleCount := len(samples) / 2
	isClipping := false

	for i := 0; i+1 < len(samples); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(samples[i : i+2]))
		abs := math.Abs(float64(sample))
		sum += abs * abs

		if sample == 32767 || sample == -32768 {
			isClipping = true
		}
	}

	if sampleCount == 0 {
		return LevelData{}
	}

	rms := math.Sqrt(sum / float64(sampleCount))
	if rms == 0 {
		return LevelData{Clipping: isClipping}
	}

	// Convert RMS to decibels relative to 16-bit full scale, then scale
	// -60..-10 dB onto 0..100.
	db := 20 * math.Log10(rms/32768.0)
	scaled := (db + 60) * (100.0 / 50.0)

	if isClipping {
		scaled = math.Max(scaled, 95)
	}

	if scaled < 0 {
		scaled = 0
	} else if scaled > 100 {
		scaled = 100
	}

	return LevelData{Level: int(scaled), Clipping: isClipping}
}
