package capture

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tphakala/malgo"

	"github.com/dhiasalah/websampler-go/internal/audio"
	"github.com/dhiasalah/websampler-go/internal/audio/file"
)

// State is the recorder state.
type State int

const (
	// StateIdle means no recording is in progress.
	StateIdle State = iota

	// StateRecording means the capture device is acquired and buffering.
	StateRecording
)

// Config holds the recording parameters.
type Config struct {
	SampleRate  uint32
	Channels    uint32
	MaxDuration time.Duration
	LevelWindow time.Duration
}

// DefaultConfig returns recording parameters suited to sampling: mono
// 44.1 kHz with a one-minute ceiling per take.
func DefaultConfig() Config {
	return Config{
		SampleRate:  44100,
		Channels:    1,
		MaxDuration: 60 * time.Second,
		LevelWindow: 100 * time.Millisecond,
	}
}

// Recorder is the microphone capture state machine: Idle -> Recording ->
// Idle. Only one recording may be active at a time, and the capture device
// is released on every exit path, whether the recording stops, fails or is
// cancelled.
type Recorder struct {
	context Context
	cfg     Config
	logger  audio.Logger

	mu     sync.Mutex
	state  State
	device Device
	buf    *recordBuffer
	meter  *levelMeter

	// generation invalidates data callbacks from a device that has been
	// stopped or cancelled, so a dead recording can never write again.
	generation atomic.Uint64
}

// NewRecorder creates an idle recorder over the given context.
func NewRecorder(context Context, cfg Config, logger audio.Logger) *Recorder {
	if logger == nil {
		logger = &audio.StandardLogger{}
	}
	return &Recorder{
		context: context,
		cfg:     cfg,
		logger:  logger,
		state:   StateIdle,
	}
}

// State returns the current recorder state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

// Level returns the input level over the recent window. Zero while idle.
func (r *Recorder) Level() LevelData {
	r.mu.Lock()
	meter := r.meter
	r.mu.Unlock()

	if meter == nil {
		return LevelData{}
	}
	return meter.Read()
}

// Start acquires the capture device and begins buffering raw input.
// Fails with ErrInvalidState if a recording is already active and with
// ErrDeviceFailure if the device cannot be acquired; on failure the device
// is never left partially acquired.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.context == nil {
		return audio.ErrNotInitialized
	}
	if r.state == StateRecording {
		return fmt.Errorf("%w: recording already active", audio.ErrInvalidState)
	}

	buf := newRecordBuffer(r.cfg.SampleRate, r.cfg.Channels, r.cfg.MaxDuration)
	windowBytes := int(float64(r.cfg.SampleRate*r.cfg.Channels*2) * r.cfg.LevelWindow.Seconds())
	meter := newLevelMeter(windowBytes)
	gen := r.generation.Load()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = r.cfg.Channels
	deviceConfig.SampleRate = r.cfg.SampleRate
	deviceConfig.Alsa.NoMMap = 1
	deviceConfig.Periods = 3

	callbacks := malgo.DeviceCallbacks{
		Data: func(outputBuffer, inputBuffer []byte, frameCount uint32) {
			// Chunks from a recording that has since stopped or been
			// cancelled are dropped here.
			if r.generation.Load() != gen {
				return
			}
			if _, err := buf.Write(inputBuffer); err != nil {
				return
			}
			meter.Write(inputBuffer)
		},
	}

	device, err := r.context.InitDevice(&deviceConfig, callbacks)
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrDeviceFailure, err)
	}

	if err := device.Start(); err != nil {
		if uninitErr := device.Uninit(); uninitErr != nil {
			r.logger.Error("error uninitializing capture device: %v", uninitErr)
		}
		return fmt.Errorf("%w: %w", audio.ErrDeviceFailure, err)
	}

	r.device = device
	r.buf = buf
	r.meter = meter
	r.state = StateRecording
	r.logger.Info("recording started (%d Hz, %d ch)", r.cfg.SampleRate, r.cfg.Channels)
	return nil
}

// Stop halts capture, releases the device and decodes the accumulated raw
// input into a sample buffer. Fails with ErrInvalidState while idle.
func (r *Recorder) Stop() (*audio.Buffer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return nil, fmt.Errorf("%w: no recording active", audio.ErrInvalidState)
	}

	raw := r.teardownLocked()

	buf, err := file.DecodePCM16(raw, int(r.cfg.SampleRate), int(r.cfg.Channels))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecodeFailed, err)
	}

	r.logger.Info("recording stopped: %.2fs captured", buf.Duration())
	return buf, nil
}

// Cancel discards buffered input and releases the device without producing
// output. Cancelling an idle recorder is a no-op.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRecording {
		return
	}

	r.teardownLocked()
	r.logger.Info("recording cancelled")
}

// teardownLocked stops and releases the device, bumps the generation so
// straggling callbacks are dropped, and returns whatever raw input was
// accumulated. Caller holds r.mu.
func (r *Recorder) teardownLocked() []byte {
	r.generation.Add(1)

	if r.device != nil {
		if err := r.device.Stop(); err != nil {
			r.logger.Error("error stopping capture device: %v", err)
		}
		if err := r.device.Uninit(); err != nil {
			r.logger.Error("error uninitializing capture device: %v", err)
		}
		r.device = nil
	}

	var raw []byte
	if r.buf != nil {
		if r.buf.Truncated() {
			r.logger.Warn("recording hit the %.0fs ceiling, input truncated", r.cfg.MaxDuration.Seconds())
		}
		raw = r.buf.Bytes()
		r.buf = nil
	}
	if r.meter != nil {
		r.meter.Reset()
		r.meter = nil
	}

	r.state = StateIdle
	return raw
}
