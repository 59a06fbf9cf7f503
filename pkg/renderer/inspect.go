package renderer

import (
	"fmt"

	"github.com/df07/go-lux-raytracer/pkg/core"
)

// PixelInfo describes the surface that determines a single pixel
type PixelInfo struct {
	Hit      bool
	Job      int // Index of the job in submission order
	Index    int // Index of the surface within its job
	Variant  string
	Distance float64
	Point    core.Vec3
	Color    core.Color // Unshaded surface color
	Shadowed bool
	RGB      [3]uint8 // Final pixel bytes
}

// Inspect traces the camera ray for pixel (x, y) without touching the depth buffer.
// The result matches what Render would leave in the pixel.
func (rt *Raytracer) Inspect(x, y int) (PixelInfo, error) {
	if x < 0 || x >= rt.config.Width || y < 0 || y >= rt.config.Height {
		return PixelInfo{}, fmt.Errorf("pixel (%d, %d) outside %dx%d image", x, y, rt.config.Width, rt.config.Height)
	}

	camera := rt.scene.Camera
	aspectRatio := float64(rt.config.Width) / float64(rt.config.Height)
	origin := camera.Position
	ray := camera.PixelToRay(float64(x)/float64(rt.config.Width), float64(y)/float64(rt.config.Height), aspectRatio)

	var info PixelInfo
	for j, job := range rt.scene.Jobs() {
		for i := 0; i < job.Len(); i++ {
			hit, ok := job.Intersect(i, origin, ray)
			if !ok || (info.Hit && hit.Distance >= info.Distance) {
				continue
			}
			info = PixelInfo{
				Hit:      true,
				Job:      j,
				Index:    i,
				Variant:  job.Variant(),
				Distance: hit.Distance,
				Point:    origin.Add(ray.Multiply(hit.Distance)),
				Color:    hit.Color,
			}
		}
	}
	if !info.Hit {
		return info, nil
	}

	var stats RenderStats
	info.Shadowed = rt.inShadow(info.Point, &stats)
	color := info.Color
	if info.Shadowed {
		color = color.Multiply(AmbientFactor)
	}
	r, g, b := colorToBytes(color)
	info.RGB = [3]uint8{r, g, b}
	return info, nil
}
