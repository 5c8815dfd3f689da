package trimview

// Surface is the external 2D raster the waveform and trim bars draw onto.
// The engine only needs clearing, a line primitive, and the pixel
// dimensions for coordinate conversion.
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear erases the whole surface.
	Clear()

	// Line draws a straight line between two points.
	Line(x0, y0, x1, y1 float64)
}
