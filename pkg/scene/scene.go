package scene

import (
	"github.com/df07/go-lux-raytracer/pkg/core"
	"github.com/df07/go-lux-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *geometry.Camera
	Light        core.Vec3 // Point light position
	CameraConfig geometry.CameraConfig
	RenderConfig RenderConfig
	jobs         []Job // Submission order is test order
}

// RenderConfig contains the image size a scene is designed for
type RenderConfig struct {
	Width  int // Image width
	Height int // Image height
}

// NewScene creates an empty scene with a camera built from cameraConfig
func NewScene(cameraConfig geometry.CameraConfig, light core.Vec3, renderConfig RenderConfig) *Scene {
	return &Scene{
		Camera:       geometry.NewCameraFromConfig(cameraConfig),
		Light:        light,
		CameraConfig: cameraConfig,
		RenderConfig: renderConfig,
	}
}

// Submit appends a job to the scene
func (s *Scene) Submit(job Job) {
	s.jobs = append(s.jobs, job)
}

// Jobs returns the submitted jobs in insertion order.
// The returned slice must not be modified.
func (s *Scene) Jobs() []Job {
	return s.jobs
}

// GetSurfaceCount returns the total number of surfaces across all jobs
func (s *Scene) GetSurfaceCount() int {
	count := 0
	for _, job := range s.jobs {
		count += job.Len()
	}
	return count
}

// AddSpheres submits a sphere job
func (s *Scene) AddSpheres(spheres ...*geometry.Sphere) {
	if len(spheres) == 0 {
		return
	}
	s.Submit(NewJob(spheres...))
}

// AddPlanes submits a plane job
func (s *Scene) AddPlanes(planes ...*geometry.Plane) {
	if len(planes) == 0 {
		return
	}
	s.Submit(NewJob(planes...))
}

// NewGroundPlane creates a horizontal plane through point.
// Its normal BasisU x BasisV points down (0,-1,0), which the plane test does not depend on.
func NewGroundPlane(point core.Vec3, color core.Color) *geometry.Plane {
	return geometry.NewPlane(point, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), color)
}
