// Package imaging holds rendered pixels and writes them out as image files.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrPixelOutOfBounds is the panic value for writes outside the framebuffer
var ErrPixelOutOfBounds = errors.New("imaging: pixel out of bounds")

// Framebuffer is a width x height x 3 byte RGB buffer with a black background.
// It implements image.Image and core.PixelSink.
type Framebuffer struct {
	width, height int
	pix           []uint8
}

// NewFramebuffer allocates a zeroed framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, 3*width*height),
	}
}

// Width returns the framebuffer width in pixels
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels
func (fb *Framebuffer) Height() int { return fb.height }

// Pix returns the underlying RGB bytes in row-major order
func (fb *Framebuffer) Pix() []uint8 { return fb.pix }

// WritePixel stores three bytes at (x, y).
// It panics with ErrPixelOutOfBounds if the coordinates are outside the buffer.
func (fb *Framebuffer) WritePixel(x, y int, r, g, b uint8) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		panic(fmt.Errorf("%w: (%d, %d) in %dx%d", ErrPixelOutOfBounds, x, y, fb.width, fb.height))
	}
	i := 3 * (y*fb.width + x)
	fb.pix[i] = r
	fb.pix[i+1] = g
	fb.pix[i+2] = b
}

// RGBAt returns the bytes stored at (x, y)
func (fb *Framebuffer) RGBAt(x, y int) (r, g, b uint8) {
	i := 3 * (y*fb.width + x)
	return fb.pix[i], fb.pix[i+1], fb.pix[i+2]
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle { return image.Rect(0, 0, fb.width, fb.height) }

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(fb.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := fb.RGBAt(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
