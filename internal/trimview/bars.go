// Package trimview couples a pad's numeric trim points to an interactive
// waveform display: two draggable bars in pixel space, hit-testing and drag
// handling with a no-crossing rule, a waveform renderer, and the cancellable
// redraw loop that keeps the overlay current.
package trimview

// DefaultHitRadius is the pointer distance, in pixels, within which a bar
// counts as hit.
const DefaultHitRadius = 10.0

// bar is one trim marker with its transient interaction flags.
type bar struct {
	pos      float64
	selected bool
	dragged  bool
}

// Bars is the pair of trim markers over a fixed-width drawing surface.
// The left bar never ends up right of the right bar after a completed drag.
type Bars struct {
	left      bar
	right     bar
	width     float64
	hitRadius float64
}

// NewBars creates the pair spanning the full surface width.
func NewBars(width float64) *Bars {
	return &Bars{
		left:      bar{pos: 0},
		right:     bar{pos: width},
		width:     width,
		hitRadius: DefaultHitRadius,
	}
}

// Left returns the left bar's pixel position.
func (b *Bars) Left() float64 { return b.left.pos }

// Right returns the right bar's pixel position.
func (b *Bars) Right() float64 { return b.right.pos }

// Width returns the surface width the bars operate over.
func (b *Bars) Width() float64 { return b.width }

// Dragging reports whether either bar is currently being dragged.
func (b *Bars) Dragging() bool { return b.left.dragged || b.right.dragged }

// SetPositions places both bars directly, clamping to the surface and
// ordering left <= right. Used when the displayed pad changes and the pad's
// trim points are pulled back into bar positions.
func (b *Bars) SetPositions(left, right float64) {
	left = clampPixel(left, 0, b.width)
	right = clampPixel(right, 0, b.width)
	if left > right {
		left = right
	}
	b.left.pos = left
	b.right.pos = right
}

// HitTest marks the bar close to x as selected. When both bars are within
// the hit radius, a bar already selected from the previous test wins, so
// exactly one bar is ever selected; this keeps both bars from latching
// under one click near their crossing point. Selection is left untouched
// while a drag is in progress.
func (b *Bars) HitTest(x float64) {
	if b.Dragging() {
		return
	}

	leftHit := distance(b.left.pos, x) < b.hitRadius
	rightHit := distance(b.right.pos, x) < b.hitRadius

	switch {
	case leftHit && rightHit:
		if !b.left.selected && !b.right.selected {
			// Neither was selected; take the nearer bar.
			if distance(b.left.pos, x) <= distance(b.right.pos, x) {
				b.left.selected = true
			} else {
				b.right.selected = true
			}
		}
		// Otherwise the previously selected bar stays selected.
	case leftHit:
		b.left.selected = true
		b.right.selected = false
	case rightHit:
		b.right.selected = true
		b.left.selected = false
	default:
		b.left.selected = false
		b.right.selected = false
	}
}

// StartDrag begins dragging the currently selected bar, if any.
func (b *Bars) StartDrag() {
	if b.left.selected {
		b.left.dragged = true
	}
	if b.right.selected {
		b.right.dragged = true
	}
}

// MoveTo re-runs hit-testing and moves whichever bar is dragged to the
// pointer position, clamped to the surface. While a drag is active the
// hit-test is a no-op, so selection is frozen for the whole drag: the bar
// grabbed at StartDrag stays the one that moves even when the pointer
// sweeps past the other bar. A move that would cross the other bar is
// rejected outright: the bar stays at its last valid position rather than
// being clamped to the boundary.
func (b *Bars) MoveTo(x float64) {
	b.HitTest(x)

	clamped := clampPixel(x, 0, b.width)
	if b.left.dragged && clamped <= b.right.pos {
		b.left.pos = clamped
	}
	if b.right.dragged && clamped >= b.left.pos {
		b.right.pos = clamped
	}
}

// StopDrag ends any drag in progress, clearing the transient flags of the
// dragged bar. As a final safety net the bars are snapped together if they
// ended up inverted, so left <= right holds after every completed drag.
func (b *Bars) StopDrag() {
	leftWasDragged := b.left.dragged
	rightWasDragged := b.right.dragged

	if leftWasDragged {
		b.left.dragged = false
		b.left.selected = false
	}
	if rightWasDragged {
		b.right.dragged = false
		b.right.selected = false
	}

	if b.left.pos > b.right.pos {
		if leftWasDragged {
			b.left.pos = b.right.pos
		} else {
			b.right.pos = b.left.pos
		}
	}
}

// PixelToSeconds converts a bar position to a trim point for a buffer of
// the given duration displayed over width pixels.
func PixelToSeconds(x, duration, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return (x / width) * duration
}

// SecondsToPixel converts a trim point back to a bar position.
func SecondsToPixel(t, duration, width float64) float64 {
	if duration <= 0 {
		return 0
	}
	return (t / duration) * width
}

func distance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func clampPixel(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
