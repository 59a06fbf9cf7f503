package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-lux-raytracer/pkg/core"
)

var red = core.NewVec3(1, 0, 0)

func TestSphere_Intersect_Hit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 1), 0.5, red)

	hit, isHit := sphere.Intersect(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.Distance-1.5) > 1e-9 {
		t.Errorf("Expected distance=1.5, got %f", hit.Distance)
	}
	if hit.Color != red {
		t.Errorf("Expected color %v, got %v", red, hit.Color)
	}
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 1), 0.5, red)

	hit, isHit := sphere.Intersect(core.NewVec3(0, 0, -1), core.NewVec3(1, 0, 0))
	if isHit {
		t.Errorf("Expected miss, but got hit at distance=%f", hit.Distance)
	}
}

func TestSphere_Intersect_Cases(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, red)

	tests := []struct {
		name         string
		origin       core.Vec3
		dir          core.Vec3
		expectHit    bool
		expectedDist float64
	}{
		{
			name:         "front hit",
			origin:       core.NewVec3(0, 0, 3),
			dir:          core.NewVec3(0, 0, -1),
			expectHit:    true,
			expectedDist: 2.0,
		},
		{
			name:      "outside pointing away",
			origin:    core.NewVec3(0, 0, 3),
			dir:       core.NewVec3(0, 0, 1),
			expectHit: false,
		},
		{
			name:         "origin inside clamps to zero",
			origin:       core.NewVec3(0, 0, 0.5),
			dir:          core.NewVec3(0, 0, 1),
			expectHit:    true,
			expectedDist: 0,
		},
		{
			name:         "glancing hit",
			origin:       core.NewVec3(1, 0, 2),
			dir:          core.NewVec3(0, 0, -1),
			expectHit:    true,
			expectedDist: 2.0,
		},
		{
			name:      "passes beside",
			origin:    core.NewVec3(1.5, 0, 2),
			dir:       core.NewVec3(0, 0, -1),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := sphere.Intersect(tt.origin, tt.dir)
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.Distance-tt.expectedDist) > 1e-9 {
				t.Errorf("Expected distance=%f, got %f", tt.expectedDist, hit.Distance)
			}
		})
	}
}
