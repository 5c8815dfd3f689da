package capture

import (
	"errors"
	"sync"
	"time"
)

// recordBuffer accumulates raw PCM for one recording up to a fixed
// capacity. Unlike a circular capture buffer it never overwrites old data;
// once full, further writes are truncated so a forgotten recording cannot
// grow without bound.
type recordBuffer struct {
	data       []byte
	writeIndex int
	truncated  bool
	mu         sync.Mutex
}

// newRecordBuffer sizes the buffer for maxDuration of 16-bit PCM at the
// given rate and channel count.
func newRecordBuffer(sampleRate, channels uint32, maxDuration time.Duration) *recordBuffer {
	bytesPerSecond := int(sampleRate*channels) * 2
	size := int(float64(bytesPerSecond) * maxDuration.Seconds())

	// Round up to an aligned boundary.
	size = ((size + 2047) / 2048) * 2048

	return &recordBuffer{data: make([]byte, size)}
}

// Write appends PCM data, truncating whatever does not fit.
func (rb *recordBuffer) Write(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, errors.New("empty data provided")
	}

	rb.mu.Lock()
	defer rb.mu.Unlock()

	n := copy(rb.data[rb.writeIndex:], data)
	rb.writeIndex += n
	if n < len(data) {
		rb.truncated = true
	}
	return n, nil
}

// Bytes returns a copy of everything accumulated so far.
func (rb *recordBuffer) Bytes() []byte {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	out := make([]byte, rb.writeIndex)
	copy(out, rb.data[:rb.writeIndex])
	return out
}

// Truncated reports whether any write did not fit.
func (rb *recordBuffer) Truncated() bool {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.truncated
}

// Reset discards the accumulated data.
func (rb *recordBuffer) Reset() {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.writeIndex = 0
	rb.truncated = false
}
