package renderer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/df07/go-lux-raytracer/pkg/core"
	"github.com/df07/go-lux-raytracer/pkg/logging"
	"github.com/df07/go-lux-raytracer/pkg/scene"
)

const (
	// ShadowEpsilon offsets shadow ray origins along the shadow ray to avoid self-hits
	ShadowEpsilon = 0.001
	// AmbientFactor scales the color of shadowed pixels
	AmbientFactor = 0.2
)

// ErrInvalidSize is returned when a render is requested with a non-positive image size
var ErrInvalidSize = errors.New("image width and height must be positive")

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width         int
	Height        int
	NumWorkers    int  // 1 = sequential scan, 0 = use CPU count
	RowsPerTask   int  // Rows per worker task (0 = 8)
	StrictShadows bool // Only occluders between the hit point and the light cast shadows
}

// DefaultRenderConfig returns sensible default values for the given image size
func DefaultRenderConfig(width, height int) RenderConfig {
	return RenderConfig{
		Width:       width,
		Height:      height,
		NumWorkers:  1,
		RowsPerTask: 8,
	}
}

// Raytracer is the depth-buffered compositor: one camera ray per pixel,
// nearest hit through the depth buffer, binary shadow test toward a point light.
// Concurrent Render calls on one Raytracer run one after another.
type Raytracer struct {
	scene  *scene.Scene
	config RenderConfig
	logger *slog.Logger

	mu    sync.Mutex // held for the whole of Render
	depth *DepthBuffer
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, config RenderConfig, logger *slog.Logger) *Raytracer {
	return &Raytracer{
		scene:  s,
		config: config,
		logger: logging.OrNop(logger),
	}
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// DepthBuffer returns the depth buffer of the most recent render, or nil
func (rt *Raytracer) DepthBuffer() *DepthBuffer {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.depth
}

// Render scans every pixel and writes shaded hits to sink.
// Pixels that hit nothing are never written.
func (rt *Raytracer) Render(ctx context.Context, sink core.PixelSink) (RenderStats, error) {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return RenderStats{}, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, rt.config.Width, rt.config.Height)
	}
	if b, ok := sink.(core.Bounded); ok && (b.Width() != rt.config.Width || b.Height() != rt.config.Height) {
		return RenderStats{}, fmt.Errorf("sink is %dx%d, render is %dx%d", b.Width(), b.Height(), rt.config.Width, rt.config.Height)
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.depth = NewDepthBuffer(rt.config.Width, rt.config.Height)

	pool := NewWorkerPool(rt, rt.config.NumWorkers)
	rt.logger.Info("render started",
		"width", rt.config.Width,
		"height", rt.config.Height,
		"jobs", len(rt.scene.Jobs()),
		"surfaces", rt.scene.GetSurfaceCount(),
		"workers", pool.GetNumWorkers(),
		"strict_shadows", rt.config.StrictShadows)

	start := time.Now()
	var stats RenderStats
	var err error
	if pool.GetNumWorkers() == 1 {
		stats, err = rt.RenderRows(ctx, 0, rt.config.Height, sink)
	} else {
		stats, err = pool.Render(ctx, sink, rt.config.RowsPerTask)
	}
	stats.Elapsed = time.Since(start)

	if err != nil {
		rt.logger.Warn("render aborted", "error", err, "elapsed", stats.Elapsed)
		return stats, err
	}

	rt.logger.Info("render completed",
		"elapsed", stats.Elapsed,
		"pixels_written", stats.PixelsWritten,
		"shadow_rays", stats.ShadowRays,
		"shadowed_pixels", stats.ShadowedPixels)
	return stats, nil
}

// RenderRows renders rows [y0, y1) into sink using the current depth buffer.
// Context cancellation is checked before each row.
func (rt *Raytracer) RenderRows(ctx context.Context, y0, y1 int, sink core.PixelSink) (RenderStats, error) {
	var stats RenderStats
	for y := y0; y < y1; y++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		for x := 0; x < rt.config.Width; x++ {
			rt.renderPixel(x, y, sink, &stats)
		}
	}
	return stats, nil
}

// renderPixel tests the camera ray for (x, y) against every surface in job order
func (rt *Raytracer) renderPixel(x, y int, sink core.PixelSink, stats *RenderStats) {
	camera := rt.scene.Camera
	aspectRatio := float64(rt.config.Width) / float64(rt.config.Height)
	u := float64(x) / float64(rt.config.Width)
	v := float64(y) / float64(rt.config.Height)

	origin := camera.Position
	ray := camera.PixelToRay(u, v, aspectRatio)

	stats.TotalPixels++
	stats.CameraRays++

	written, shadowed := false, false
	for _, job := range rt.scene.Jobs() {
		for i := 0; i < job.Len(); i++ {
			stats.SurfaceTests++
			hit, ok := job.Intersect(i, origin, ray)
			if !ok || !rt.depth.TestAndSet(x, y, hit.Distance) {
				continue
			}

			hitPoint := origin.Add(ray.Multiply(hit.Distance))
			shadowed = rt.inShadow(hitPoint, stats)

			color := hit.Color
			if shadowed {
				color = color.Multiply(AmbientFactor)
			}
			r, g, b := colorToBytes(color)
			sink.WritePixel(x, y, r, g, b)
			stats.PixelWrites++
			written = true
		}
	}

	if written {
		stats.PixelsWritten++
		if shadowed {
			stats.ShadowedPixels++
		}
	}
}

// inShadow casts a shadow ray from hitPoint toward the light.
// By default any surface along the ray occludes, including surfaces beyond the light.
func (rt *Raytracer) inShadow(hitPoint core.Vec3, stats *RenderStats) bool {
	toLight := rt.scene.Light.Subtract(hitPoint)
	dir, err := toLight.SafeNormalize()
	if err != nil {
		// Hit point coincides with the light
		return false
	}
	origin := hitPoint.Add(dir.Multiply(ShadowEpsilon))
	lightDistance := rt.scene.Light.Subtract(origin).Length()

	stats.ShadowRays++
	for _, job := range rt.scene.Jobs() {
		for i := 0; i < job.Len(); i++ {
			stats.SurfaceTests++
			hit, ok := job.Intersect(i, origin, dir)
			if !ok {
				continue
			}
			if rt.config.StrictShadows && hit.Distance >= lightDistance {
				continue
			}
			return true
		}
	}
	return false
}

// colorToBytes scales [0, 1] channels to bytes, clamping out-of-range values
func colorToBytes(c core.Color) (r, g, b uint8) {
	c = c.Multiply(255).Clamp(0, 255)
	return uint8(c.X), uint8(c.Y), uint8(c.Z)
}
