package playback

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

// SpeakerDevice is the beep-backed output device. The speaker mixes every
// streamer handed to it, so each Play is an independent instance.
type SpeakerDevice struct {
	sr beep.SampleRate
}

// NewSpeakerDevice initializes the speaker at the given sample rate with a
// 100ms internal buffer.
func NewSpeakerDevice(sampleRate int) (*SpeakerDevice, error) {
	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &SpeakerDevice{sr: sr}, nil
}

// Play implements the Device interface, resampling to the speaker rate
// when the buffer's rate differs.
func (d *SpeakerDevice) Play(buf *audio.Buffer, start, duration, gain float64) error {
	if buf == nil || buf.NumChannels() == 0 {
		return audio.ErrInvalidParameters
	}

	s := newBufferStreamer(buf, start, duration, gain)

	var stream beep.Streamer = s
	if beep.SampleRate(buf.SampleRate) != d.sr {
		stream = beep.Resample(4, beep.SampleRate(buf.SampleRate), d.sr, s)
	}

	speaker.Play(stream)
	return nil
}

// Close shuts the speaker down.
func (d *SpeakerDevice) Close() error {
	speaker.Close()
	return nil
}

// bufferStreamer streams one region of a sample buffer at a fixed gain.
// Mono buffers play on both output channels; extra channels beyond stereo
// are ignored.
type bufferStreamer struct {
	buf  *audio.Buffer
	pos  int // current frame
	end  int // exclusive last frame
	gain float64
}

func newBufferStreamer(buf *audio.Buffer, start, duration float64, gain float64) *bufferStreamer {
	rate := float64(buf.SampleRate)
	frames := buf.FrameCount()

	from := int(math.Round(start * rate))
	to := from + int(math.Round(duration*rate))
	if from < 0 {
		from = 0
	}
	if to > frames {
		to = frames
	}
	if to < from {
		to = from
	}

	return &bufferStreamer{buf: buf, pos: from, end: to, gain: gain}
}

// Stream implements beep.Streamer.
func (s *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.end {
		return 0, false
	}

	n := 0
	for i := range samples {
		if s.pos >= s.end {
			break
		}
		left := s.buf.Channels[0][s.pos] * s.gain
		right := left
		if s.buf.NumChannels() > 1 {
			right = s.buf.Channels[1][s.pos] * s.gain
		}
		samples[i][0] = left
		samples[i][1] = right
		s.pos++
		n++
	}
	return n, true
}

// Err implements beep.Streamer.
func (s *bufferStreamer) Err() error { return nil }
