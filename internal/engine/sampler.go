// Package engine composes the sampler core: the pad store, the playback
// engine, the microphone recorder and the segmentation step that slices a
// recording into pads. It is the single owner of all shared state; every
// collaborator is injected through the constructor and handed out through
// explicit accessors.
package engine

import (
	"fmt"
	"io"

	"github.com/dhiasalah/websampler-go/internal/audio"
	"github.com/dhiasalah/websampler-go/internal/audio/capture"
	"github.com/dhiasalah/websampler-go/internal/audio/file"
	"github.com/dhiasalah/websampler-go/internal/audio/pads"
	"github.com/dhiasalah/websampler-go/internal/audio/playback"
	"github.com/dhiasalah/websampler-go/internal/audio/segment"
)

// Sampler is the pad audio engine.
type Sampler struct {
	cfg      *Config
	store    *pads.Store
	player   *playback.Engine
	recorder *capture.Recorder
	logger   audio.Logger
}

// New creates a sampler with all 16 pads empty. Both devices are optional:
// a nil output device degrades playback to warning no-ops, and a nil
// capture context makes recording fail with ErrNotInitialized.
func New(cfg *Config, output playback.Device, captureCtx capture.Context, logger audio.Logger) *Sampler {
	if cfg == nil {
		cfg = NewDefaultConfig()
	}
	if logger == nil {
		logger = &audio.StandardLogger{}
	}

	recCfg := capture.DefaultConfig()
	recCfg.SampleRate = uint32(cfg.SampleRate)
	recCfg.Channels = uint32(cfg.CaptureChannels)
	recCfg.MaxDuration = cfg.MaxCaptureDuration

	return &Sampler{
		cfg:      cfg,
		store:    pads.NewStore(logger),
		player:   playback.NewEngine(output, logger),
		recorder: capture.NewRecorder(captureCtx, recCfg, logger),
		logger:   logger,
	}
}

// Pads returns the pad store.
func (s *Sampler) Pads() *pads.Store { return s.store }

// Recorder returns the capture controller.
func (s *Sampler) Recorder() *capture.Recorder { return s.recorder }

// LoadPad decodes encoded audio from r and loads it into the pad at index.
// A failed decode leaves the previous pad content intact.
func (s *Sampler) LoadPad(index int, r io.Reader, name string) (pads.Pad, error) {
	buf, err := file.Decode(r)
	if err != nil {
		return pads.Pad{}, err
	}
	return s.store.Load(index, buf, name)
}

// LoadPadBuffer loads an already-decoded buffer into the pad at index.
func (s *Sampler) LoadPadBuffer(index int, buf *audio.Buffer, name string) (pads.Pad, error) {
	return s.store.Load(index, buf, name)
}

// Play schedules playback of the pad at index.
func (s *Sampler) Play(index int) error {
	return s.player.Play(s.store, index)
}

// StartRecording begins a microphone take.
func (s *Sampler) StartRecording() error {
	return s.recorder.Start()
}

// RecordingLevel returns the current input level for a record indicator.
func (s *Sampler) RecordingLevel() capture.LevelData {
	return s.recorder.Level()
}

// CancelRecording discards the active take, if any.
func (s *Sampler) CancelRecording() {
	s.recorder.Cancel()
}

// StopRecordingToPad finishes the active take and loads the whole
// recording into the pad at index.
func (s *Sampler) StopRecordingToPad(index int, name string) (pads.Pad, error) {
	buf, err := s.recorder.Stop()
	if err != nil {
		return pads.Pad{}, err
	}
	return s.store.Load(index, buf, name)
}

// StopRecordingSegmented finishes the active take, slices it at silences
// and loads the resulting sounds into consecutive pads starting at
// firstIndex. Slices beyond the last pad are dropped. Returns the pads
// that were loaded.
func (s *Sampler) StopRecordingSegmented(firstIndex int) ([]pads.Pad, error) {
	buf, err := s.recorder.Stop()
	if err != nil {
		return nil, err
	}

	segments := segment.Detect(buf, s.cfg.Segmentation)
	slices := segment.Split(buf, segments)
	if len(slices) == 0 {
		s.logger.Info("recording contained no sounds above the silence threshold")
		return nil, nil
	}

	loaded := make([]pads.Pad, 0, len(slices))
	for i, slice := range slices {
		index := firstIndex + i
		if index >= pads.NumPads {
			s.logger.Warn("dropping %d slice(s): pad bank is full", len(slices)-i)
			break
		}
		pad, err := s.store.Load(index, slice, fmt.Sprintf("Slice %d", i+1))
		if err != nil {
			return loaded, err
		}
		loaded = append(loaded, pad)
	}
	return loaded, nil
}

// ExportPad encodes the pad's trimmed region as a WAV container.
func (s *Sampler) ExportPad(index int) ([]byte, error) {
	pad, err := s.store.Pad(index)
	if err != nil {
		return nil, err
	}
	if !pad.Loaded {
		return nil, audio.ErrNotLoaded
	}

	segments := []segment.Segment{{Start: pad.TrimStart, End: pad.TrimEnd}}
	trimmed := segment.Split(pad.Buffer, segments)
	if len(trimmed) == 0 {
		// Trim region collapsed to a point; export nothing.
		return nil, audio.ErrInvalidParameters
	}

	return file.EncodeWAV(trimmed[0])
}

// Close releases the output device. The recorder, if active, is cancelled
// first so the capture device is not leaked.
func (s *Sampler) Close() error {
	s.recorder.Cancel()
	return s.player.Close()
}
