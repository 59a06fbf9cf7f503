package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Number of pixels scanned
	PixelsWritten  int           // Pixels that received at least one hit
	PixelWrites    int           // Writes to the sink, one per accepted nearer hit
	CameraRays     int           // Primary rays cast
	ShadowRays     int           // Shadow rays cast
	ShadowedPixels int           // Pixels whose final shade is in shadow
	SurfaceTests   int           // Ray-surface intersection tests performed
	Elapsed        time.Duration // Wall time of the render
}

// Merge adds the counters of other into s. Elapsed is not summed.
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.PixelsWritten += other.PixelsWritten
	s.PixelWrites += other.PixelWrites
	s.CameraRays += other.CameraRays
	s.ShadowRays += other.ShadowRays
	s.ShadowedPixels += other.ShadowedPixels
	s.SurfaceTests += other.SurfaceTests
}

// HitRatio returns the fraction of scanned pixels that hit any surface
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.PixelsWritten) / float64(s.TotalPixels)
}
