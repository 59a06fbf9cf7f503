package scene

import (
	"fmt"

	"github.com/df07/go-lux-raytracer/pkg/core"
	"github.com/df07/go-lux-raytracer/pkg/geometry"
)

// Job is a homogeneous batch of surfaces submitted to a scene.
// Surfaces are tested in index order.
type Job interface {
	Len() int
	Intersect(i int, origin, dir core.Vec3) (geometry.Hit, bool)
	Variant() string
}

// Batch is a Job holding surfaces of a single variant
type Batch[S geometry.Surface] struct {
	Surfaces []S
}

// NewJob creates a batch from surfaces of one variant
func NewJob[S geometry.Surface](surfaces ...S) *Batch[S] {
	return &Batch[S]{Surfaces: surfaces}
}

// Len returns the number of surfaces in the batch
func (b *Batch[S]) Len() int {
	return len(b.Surfaces)
}

// Intersect tests the i-th surface of the batch
func (b *Batch[S]) Intersect(i int, origin, dir core.Vec3) (geometry.Hit, bool) {
	return b.Surfaces[i].Intersect(origin, dir)
}

// Variant returns the surface type name of the batch
func (b *Batch[S]) Variant() string {
	var zero S
	switch any(zero).(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Plane:
		return "plane"
	default:
		return fmt.Sprintf("%T", zero)
	}
}
