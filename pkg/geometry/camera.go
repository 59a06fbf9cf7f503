package geometry

import (
	"math"

	"github.com/df07/go-lux-raytracer/pkg/core"
)

var worldUp = core.NewVec3(0, 1, 0)

// CameraConfig contains the parameters a scene uses to build its camera.
// When LookAt is set it takes precedence over Forward.
type CameraConfig struct {
	Position core.Vec3
	Forward  core.Vec3
	LookAt   *core.Vec3
	FOV      float64 // Degrees
}

// Camera generates primary rays for rendering.
// Up and Forward are unit length and orthogonal.
type Camera struct {
	Up       core.Vec3
	Forward  core.Vec3
	Position core.Vec3
	FOV      float64 // Degrees; controls the image plane height at unit distance
}

// NewCamera creates a camera at position watching along forward
func NewCamera(forward, position core.Vec3, fov float64) *Camera {
	c := &Camera{
		Forward:  forward.Normalize(),
		Position: position,
		FOV:      fov,
	}
	c.deriveUp()
	return c
}

// NewCameraFromConfig creates a camera from a scene camera configuration
func NewCameraFromConfig(config CameraConfig) *Camera {
	forward := config.Forward
	if forward == (core.Vec3{}) {
		forward = core.NewVec3(0, 0, 1)
	}
	c := NewCamera(forward, config.Position, config.FOV)
	if config.LookAt != nil {
		c.LookAt(*config.LookAt)
	}
	return c
}

// LookAt points the camera at target, keeping its position
func (c *Camera) LookAt(target core.Vec3) {
	c.Forward = target.Subtract(c.Position).Normalize()
	c.deriveUp()
}

// deriveUp recomputes Up from Forward by removing the forward component of world up.
// A camera looking straight along world up has no defined up vector.
func (c *Camera) deriveUp() {
	if c.Forward.Y == 0 {
		c.Up = worldUp
		return
	}

	up := c.Forward.Subtract(worldUp.Multiply(c.Forward.Dot(c.Forward) / c.Forward.Y)).Normalize()
	// Cameras tilted upward would otherwise get a downward up vector and a flipped image
	if up.Y < 0 {
		up = up.Negate()
	}
	c.Up = up
}

// Right returns Forward x Up
func (c *Camera) Right() core.Vec3 {
	return c.Forward.Cross(c.Up)
}

// PixelToRay maps normalized pixel coordinates (u = column/width, v = row/height)
// to a unit direction from the camera position through the image plane,
// which sits at unit distance along Forward.
func (c *Camera) PixelToRay(u, v, aspectRatio float64) core.Vec3 {
	h := 2 * math.Tan(c.FOV*(math.Pi/180.0))
	w := aspectRatio * h

	center := c.Position.Add(c.Forward)
	world := center.
		Add(c.Up.Multiply((h / 2) * (1 - 2*v))).
		Add(c.Right().Multiply((w / 2) * (1 - 2*u)))

	return world.Subtract(c.Position).Normalize()
}

// GetRay returns the primary ray for normalized pixel coordinates
func (c *Camera) GetRay(u, v, aspectRatio float64) core.Ray {
	return core.NewRay(c.Position, c.PixelToRay(u, v, aspectRatio))
}
