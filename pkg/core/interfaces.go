package core

// PixelSink receives final pixel colors from the renderer.
// Coordinates are in image space: x is the column, y is the row, origin top-left.
type PixelSink interface {
	WritePixel(x, y int, r, g, b uint8)
}

// Bounded is implemented by sinks that know their own dimensions
type Bounded interface {
	Width() int
	Height() int
}
