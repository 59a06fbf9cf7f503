package geometry

import (
	"github.com/df07/go-lux-raytracer/pkg/core"
)

// Plane represents an infinite plane through Point spanned by BasisU and BasisV
type Plane struct {
	Point  core.Vec3  // A point on the plane
	BasisU core.Vec3  // First spanning vector
	BasisV core.Vec3  // Second spanning vector
	Color  core.Color // Color of the plane
}

// NewPlane creates a new plane
func NewPlane(point, basisU, basisV core.Vec3, color core.Color) *Plane {
	return &Plane{
		Point:  point,
		BasisU: basisU,
		BasisV: basisV,
		Color:  color,
	}
}

func (p *Plane) surface() {}

// Normal returns BasisU x BasisV (not normalized)
func (p *Plane) Normal() core.Vec3 {
	return p.BasisU.Cross(p.BasisV)
}

// Intersect tests if a ray intersects with the plane.
// The origin and the ray direction must lie on opposite sides of the plane
// relative to its normal, so parallel rays and rays starting on the plane miss.
func (p *Plane) Intersect(origin, dir core.Vec3) (Hit, bool) {
	n := p.Normal()
	m := origin.Subtract(p.Point)

	nm := n.Dot(m)
	nd := n.Dot(dir)
	if nm*nd >= 0 {
		return Hit{}, false
	}

	return Hit{Color: p.Color, Distance: -nm / nd}, true
}
