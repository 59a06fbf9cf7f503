package geometry

import (
	"math"

	"github.com/df07/go-lux-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	Color  core.Color
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, color core.Color) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

func (s *Sphere) surface() {}

// Intersect tests if a ray intersects with the sphere.
// A ray starting inside the sphere reports a hit at distance 0.
func (s *Sphere) Intersect(origin, dir core.Vec3) (Hit, bool) {
	// Vector from sphere center to ray origin
	m := origin.Subtract(s.Center)

	b := m.Dot(dir)
	c := m.Dot(m) - s.Radius*s.Radius

	// Origin outside the sphere and ray pointing away
	if c > 0 && b > 0 {
		return Hit{}, false
	}

	discriminant := b*b - c
	if discriminant < 0 {
		return Hit{}, false
	}

	t := -b - math.Sqrt(discriminant)
	if t < 0 {
		t = 0
	}

	return Hit{Color: s.Color, Distance: t}, true
}
