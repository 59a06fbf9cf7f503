package imaging

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
)

// PPM is a framebuffer bound to a plain-text (P3) PPM file.
// The header is written on Create and the pixels on Close.
type PPM struct {
	*Framebuffer
	f *os.File
}

// Create opens path, writes the PPM header and allocates the pixel buffer
func Create(path string, width, height int) (*PPM, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid ppm size %dx%d", width, height)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create ppm file: %w", err)
	}
	if err := writePPMHeader(f, width, height); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write ppm header: %w", err)
	}

	return &PPM{
		Framebuffer: NewFramebuffer(width, height),
		f:           f,
	}, nil
}

// Close writes one "R G B" line per pixel in row-major order and closes the file
func (p *PPM) Close() error {
	w := bufio.NewWriter(p.f)
	if err := writePPMBody(w, p.Framebuffer); err != nil {
		p.f.Close()
		return fmt.Errorf("failed to write ppm pixels: %w", err)
	}
	if err := w.Flush(); err != nil {
		p.f.Close()
		return fmt.Errorf("failed to write ppm pixels: %w", err)
	}
	if err := p.f.Close(); err != nil {
		return fmt.Errorf("failed to close ppm file: %w", err)
	}
	return nil
}

// EncodePPM writes img to w as a P3 PPM
func EncodePPM(w io.Writer, img image.Image) error {
	fb := toFramebuffer(img)
	bw := bufio.NewWriter(w)
	if err := writePPMHeader(bw, fb.width, fb.height); err != nil {
		return err
	}
	if err := writePPMBody(bw, fb); err != nil {
		return err
	}
	return bw.Flush()
}

func writePPMHeader(w io.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, "P3\n%d %d\n255\n", width, height)
	return err
}

func writePPMBody(w io.Writer, fb *Framebuffer) error {
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			r, g, b := fb.RGBAt(x, y)
			if _, err := fmt.Fprintf(w, "%d %d %d\n", r, g, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// toFramebuffer returns img as a framebuffer, converting other image types
func toFramebuffer(img image.Image) *Framebuffer {
	if fb, ok := img.(*Framebuffer); ok {
		return fb
	}
	if p, ok := img.(*PPM); ok {
		return p.Framebuffer
	}

	bounds := img.Bounds()
	fb := NewFramebuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			fb.WritePixel(x, y, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}
	return fb
}
