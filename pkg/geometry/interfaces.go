package geometry

import (
	"github.com/df07/go-lux-raytracer/pkg/core"
)

// Hit is the result of a successful ray-surface intersection
type Hit struct {
	Color    core.Color // Flat color of the surface that was hit
	Distance float64    // Distance along the ray (ray direction is unit length)
}

// Surface is an object that can be hit by rays.
// The set of implementers is closed: *Sphere and *Plane.
type Surface interface {
	// Intersect tests a ray starting at origin with unit direction dir
	Intersect(origin, dir core.Vec3) (Hit, bool)
	surface()
}
