// Package pads implements the fixed bank of sample slots. The store owns
// every pad's buffer reference, trim points, gain and name; all mutation
// goes through bounds-checked, mutex-guarded operations so no caller ever
// observes a pad mid-update.
package pads

import (
	"fmt"
	"sync"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

// NumPads is the fixed number of slots in the bank.
const NumPads = 16

// Default values for an empty pad.
const (
	DefaultGain = 1.0

	// defaultTrimEnd is a placeholder for unloaded pads; it carries no
	// meaning until a buffer is loaded.
	defaultTrimEnd = 1.0
)

// Pad is one slot of the bank. A copy of the struct is handed out by the
// store's read accessors; the shared mutable state stays inside the store.
type Pad struct {
	Index     int
	Buffer    *audio.Buffer
	Name      string
	Loaded    bool
	TrimStart float64 // seconds
	TrimEnd   float64 // seconds
	Gain      float64 // [0, 2]
}

// Duration returns the pad buffer's duration, or 0 when unloaded.
func (p *Pad) Duration() float64 {
	if !p.Loaded || p.Buffer == nil {
		return 0
	}
	return p.Buffer.Duration()
}

// Store is the bank of NumPads fixed slots, indexed 0..NumPads-1.
type Store struct {
	pads   [NumPads]Pad
	logger audio.Logger
	mu     sync.RWMutex
}

// NewStore creates a store with all pads in the empty state.
func NewStore(logger audio.Logger) *Store {
	if logger == nil {
		logger = &audio.StandardLogger{}
	}
	s := &Store{logger: logger}
	for i := range s.pads {
		s.pads[i] = emptyPad(i)
	}
	return s
}

func emptyPad(index int) Pad {
	return Pad{
		Index:     index,
		Name:      fmt.Sprintf("Pad %d", index+1),
		TrimStart: 0,
		TrimEnd:   defaultTrimEnd,
		Gain:      DefaultGain,
	}
}

// validIndex reports whether i addresses a slot.
func validIndex(i int) bool {
	return i >= 0 && i < NumPads
}

// Load replaces slot index with the given buffer and name, resets the trim
// region to the full buffer and the gain to 1.0, and returns a copy of the
// resulting pad.
func (s *Store) Load(index int, buf *audio.Buffer, name string) (Pad, error) {
	if !validIndex(index) {
		s.logger.Warn("load: pad index %d out of range", index)
		return Pad{}, audio.ErrInvalidIndex
	}
	if buf == nil {
		return Pad{}, audio.ErrInvalidParameters
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.pads[index]
	p.Buffer = buf
	p.Name = name
	p.Loaded = true
	p.TrimStart = 0
	p.TrimEnd = buf.Duration()
	p.Gain = DefaultGain
	return *p, nil
}

// SetTrim stores a clamped trim region for a loaded pad. Start is clamped
// to [0, duration] first, then end is clamped to [start, duration] against
// the already-clamped start, so start <= end always holds afterwards.
// A caller passing end below the clamped start collapses the region to a
// single point. No-ops on an unloaded pad.
func (s *Store) SetTrim(index int, start, end float64) error {
	if !validIndex(index) {
		s.logger.Warn("setTrim: pad index %d out of range", index)
		return audio.ErrInvalidIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.pads[index]
	if !p.Loaded {
		return audio.ErrNotLoaded
	}
	dur := p.Buffer.Duration()
	p.TrimStart = clamp(start, 0, dur)
	p.TrimEnd = clamp(end, p.TrimStart, dur)
	return nil
}

// SetGain stores the pad gain, clamped to [0, 2].
func (s *Store) SetGain(index int, gain float64) error {
	if !validIndex(index) {
		s.logger.Warn("setGain: pad index %d out of range", index)
		return audio.ErrInvalidIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pads[index].Gain = clamp(gain, 0, 2)
	return nil
}

// SetName renames a pad.
func (s *Store) SetName(index int, name string) error {
	if !validIndex(index) {
		return audio.ErrInvalidIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pads[index].Name = name
	return nil
}

// Reset restores the full trim region and unity gain of a loaded pad.
// No-op on an unloaded pad.
func (s *Store) Reset(index int) error {
	if !validIndex(index) {
		return audio.ErrInvalidIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &s.pads[index]
	if !p.Loaded {
		return audio.ErrNotLoaded
	}
	p.TrimStart = 0
	p.TrimEnd = p.Buffer.Duration()
	p.Gain = DefaultGain
	return nil
}

// Clear returns the slot to the empty-pad default.
func (s *Store) Clear(index int) error {
	if !validIndex(index) {
		return audio.ErrInvalidIndex
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pads[index] = emptyPad(index)
	return nil
}

// ClearAll clears every slot in the bank.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.pads {
		s.pads[i] = emptyPad(i)
	}
}

// Pad returns a copy of the slot at index.
func (s *Store) Pad(index int) (Pad, error) {
	if !validIndex(index) {
		return Pad{}, audio.ErrInvalidIndex
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pads[index], nil
}

// Loaded reports whether the slot at index holds a buffer.
func (s *Store) Loaded(index int) bool {
	if !validIndex(index) {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pads[index].Loaded
}

// Pads returns a copy of all slots, in index order.
func (s *Store) Pads() []Pad {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Pad, NumPads)
	copy(out, s.pads[:])
	return out
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
