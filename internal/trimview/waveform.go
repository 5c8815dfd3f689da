package trimview

import (
	"github.com/dhiasalah/websampler-go/internal/audio"
)

// Waveform renders a buffer's amplitude envelope onto a surface: one
// vertical min/max line per pixel column, computed from the first channel.
type Waveform struct {
	surface Surface
}

// NewWaveform creates a renderer bound to its drawing surface. The owner
// of the surface owns the renderer and hands it to collaborators directly;
// there is no ambient registry.
func NewWaveform(surface Surface) *Waveform {
	return &Waveform{surface: surface}
}

// Surface returns the drawing surface the renderer is bound to.
func (w *Waveform) Surface() Surface {
	return w.surface
}

// Render clears the surface and draws the envelope of buf across the full
// width. A nil or empty buffer just clears.
func (w *Waveform) Render(buf *audio.Buffer) {
	w.surface.Clear()
	if buf == nil || buf.FrameCount() == 0 || buf.NumChannels() == 0 {
		return
	}

	width := w.surface.Width()
	height := w.surface.Height()
	if width <= 0 || height <= 0 {
		return
	}

	samples := buf.Channels[0]
	frames := len(samples)
	mid := float64(height) / 2
	halfScale := float64(height) / 2

	for col := 0; col < width; col++ {
		from := col * frames / width
		to := (col + 1) * frames / width
		if to <= from {
			to = from + 1
		}
		if to > frames {
			to = frames
		}

		lo, hi := samples[from], samples[from]
		for _, s := range samples[from:to] {
			if s < lo {
				lo = s
			}
			if s > hi {
				hi = s
			}
		}

		x := float64(col)
		w.surface.Line(x, mid-hi*halfScale, x, mid-lo*halfScale)
	}
}

// RenderBars draws the trim bar overlay: one full-height vertical line per
// bar at its current position.
func (w *Waveform) RenderBars(bars *Bars) {
	height := float64(w.surface.Height())
	w.surface.Line(bars.Left(), 0, bars.Left(), height)
	w.surface.Line(bars.Right(), 0, bars.Right(), height)
}
