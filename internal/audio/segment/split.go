package segment

import (
	"math"

	"github.com/dhiasalah/websampler-go/internal/audio"
)

// Split extracts each segment's [Start, End) region from buf into a new
// independent buffer at the same sample rate. Segments whose rounded sample
// length is not positive are dropped, so the result may be shorter than the
// segment list. The source buffer is never mutated.
func Split(buf *audio.Buffer, segments []Segment) []*audio.Buffer {
	if buf == nil || len(segments) == 0 {
		return nil
	}

	rate := float64(buf.SampleRate)
	frames := buf.FrameCount()

	out := make([]*audio.Buffer, 0, len(segments))
	for _, seg := range segments {
		from := int(math.Round(seg.Start * rate))
		to := int(math.Round(seg.End * rate))
		if from < 0 {
			from = 0
		}
		if to > frames {
			to = frames
		}
		if to-from <= 0 {
			continue
		}
		out = append(out, buf.Extract(from, to))
	}
	return out
}
