// Package segment implements silence-based detection of sound regions in a
// captured buffer and the splitting of a buffer along those regions. Both
// operations are pure: identical inputs always yield identical output and
// the source buffer is never mutated.
package segment

import (
	"math"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

// Segment is one detected contiguous non-silent interval, in seconds.
// Always Start < End.
type Segment struct {
	Start float64
	End   float64
}

// Options are the detection thresholds.
type Options struct {
	// SilenceThreshold is the absolute amplitude above which a sample
	// counts as sound.
	SilenceThreshold float64

	// MinSilence is the gap, in seconds, that closes a sound region.
	MinSilence float64

	// MinSound is the shortest region, in seconds, worth emitting.
	MinSound float64
}

// DefaultOptions returns thresholds that work well for slicing a recorded
// phrase of drum hits into pads.
func DefaultOptions() Options {
	return Options{
		SilenceThreshold: 0.02,
		MinSilence:       0.1,
		MinSound:         0.05,
	}
}

// Detect scans the first channel of buf sample-by-sample and returns the
// sound regions separated by silences of at least opts.MinSilence, in
// ascending time order. Regions shorter than opts.MinSound are discarded.
// A trailing region still open at the end of data is closed at the buffer's
// end and emitted under the same minimum-length rule. An all-silent buffer
// yields an empty slice.
func Detect(buf *audio.Buffer, opts Options) []Segment {
	if buf == nil || buf.FrameCount() == 0 || buf.NumChannels() == 0 {
		return nil
	}

	rate := float64(buf.SampleRate)
	minSilenceSamples := int(opts.MinSilence * rate)
	if minSilenceSamples < 1 {
		minSilenceSamples = 1
	}
	minSoundSamples := int(opts.MinSound * rate)

	samples := buf.Channels[0]

	var segments []Segment
	inSound := false
	start := 0    // first loud sample of the open region
	lastLoud := 0 // most recent loud sample of the open region

	emit := func(from, to int) {
		// to is exclusive; from..to-1 are the loud samples.
		if to-from >= minSoundSamples && to > from {
			segments = append(segments, Segment{
				Start: float64(from) / rate,
				End:   float64(to) / rate,
			})
		}
	}

	for i, s := range samples {
		loud := math.Abs(s) > opts.SilenceThreshold
		switch {
		case loud && !inSound:
			inSound = true
			start = i
			lastLoud = i
		case loud:
			lastLoud = i
		case inSound:
			// Still in-sound during silence; close the region once the
			// gap since the last loud sample is long enough.
			if i-lastLoud >= minSilenceSamples {
				emit(start, lastLoud+1)
				inSound = false
			}
		}
	}

	// A region still open at end of data ends at the buffer's end rather
	// than at a silence boundary.
	if inSound {
		emit(start, len(samples))
	}

	return segments
}
