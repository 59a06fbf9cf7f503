package renderer

import (
	"math"
	"testing"
)

func TestDepthBuffer_InitializedToInfinity(t *testing.T) {
	db := NewDepthBuffer(3, 2)
	for y := 0; y < db.Height(); y++ {
		for x := 0; x < db.Width(); x++ {
			if !math.IsInf(db.At(x, y), 1) {
				t.Errorf("Expected +Inf at (%d, %d), got %f", x, y, db.At(x, y))
			}
		}
	}
}

func TestDepthBuffer_TestAndSet(t *testing.T) {
	db := NewDepthBuffer(2, 2)

	tests := []struct {
		name     string
		distance float64
		accepted bool
		stored   float64
	}{
		{"first hit", 5, true, 5},
		{"farther hit rejected", 6, false, 5},
		{"tie rejected", 5, false, 5},
		{"nearer hit accepted", 2, true, 2},
		{"zero distance accepted", 0, true, 0},
	}

	for _, tt := range tests {
		if got := db.TestAndSet(1, 0, tt.distance); got != tt.accepted {
			t.Errorf("%s: expected accepted=%t, got %t", tt.name, tt.accepted, got)
		}
		if got := db.At(1, 0); got != tt.stored {
			t.Errorf("%s: expected stored %f, got %f", tt.name, tt.stored, got)
		}
	}

	if !math.IsInf(db.At(0, 1), 1) {
		t.Error("Expected other slots untouched")
	}

	db.Reset()
	if !math.IsInf(db.At(1, 0), 1) {
		t.Error("Expected Reset to restore +Inf")
	}
}

func TestRenderStats_Merge(t *testing.T) {
	a := RenderStats{TotalPixels: 10, PixelsWritten: 4, PixelWrites: 5, CameraRays: 10, ShadowRays: 5, ShadowedPixels: 1, SurfaceTests: 30}
	b := RenderStats{TotalPixels: 6, PixelsWritten: 2, PixelWrites: 2, CameraRays: 6, ShadowRays: 2, ShadowedPixels: 2, SurfaceTests: 12}
	a.Merge(b)

	expected := RenderStats{TotalPixels: 16, PixelsWritten: 6, PixelWrites: 7, CameraRays: 16, ShadowRays: 7, ShadowedPixels: 3, SurfaceTests: 42}
	if a != expected {
		t.Errorf("Expected %+v, got %+v", expected, a)
	}
	if math.Abs(a.HitRatio()-6.0/16.0) > 1e-12 {
		t.Errorf("Expected hit ratio 0.375, got %f", a.HitRatio())
	}
	if (RenderStats{}).HitRatio() != 0 {
		t.Error("Expected zero hit ratio for empty stats")
	}
}
