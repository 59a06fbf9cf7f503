package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-lux-raytracer/pkg/core"
	"github.com/df07/go-lux-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name matches no built-in scene or scene file
var ErrUnknownScene = errors.New("unknown scene")

// builtinScene describes a scene constructor available by name
type builtinScene struct {
	description string
	create      func(cameraOverrides ...geometry.CameraConfig) *Scene
}

var builtinScenes = map[string]builtinScene{
	"default": {"Red and green spheres over a ground plane, lit from the upper left", NewDefaultScene},
	"shadow":  {"A sphere casting a shadow onto the ground from a light directly above", NewShadowScene},
	"overlap": {"Two overlapping spheres submitted far to near", NewOverlapScene},
	"empty":   {"A camera and a light with no surfaces", NewEmptyScene},
}

// BuiltinSceneNames returns the names of all built-in scenes in sorted order
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates a built-in scene by name
func NewBuiltinScene(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	b, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.create(cameraOverrides...), nil
}

// cameraConfigFor applies the first override, if any, on top of the default config
func cameraConfigFor(defaults geometry.CameraConfig, overrides []geometry.CameraConfig) geometry.CameraConfig {
	if len(overrides) == 0 {
		return defaults
	}
	return MergeCameraConfig(defaults, overrides[0])
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override geometry.CameraConfig) geometry.CameraConfig {
	result := base
	if override.Position != (core.Vec3{}) {
		result.Position = override.Position
	}
	if override.Forward != (core.Vec3{}) {
		result.Forward = override.Forward
		result.LookAt = nil
	}
	if override.LookAt != nil {
		result.LookAt = override.LookAt
	}
	if override.FOV != 0 {
		result.FOV = override.FOV
	}
	return result
}

// NewDefaultScene creates the two-sphere scene: a red and a green sphere side by side
// in front of a camera at (0, 0, -1), resting on a grey ground plane
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := cameraConfigFor(geometry.CameraConfig{
		Position: core.NewVec3(0, 0, -1),
		Forward:  core.NewVec3(0, 0, 1),
		FOV:      45.0, // Image plane spans [-1, 1] at unit distance
	}, cameraOverrides)

	s := NewScene(cameraConfig, core.NewVec3(-1.5, 2, -0.5), RenderConfig{Width: 400, Height: 400})

	s.AddSpheres(
		geometry.NewSphere(core.NewVec3(-0.5, 0, 1), 0.5, core.NewVec3(1, 0, 0)),
		geometry.NewSphere(core.NewVec3(0.5, 0, 1), 0.5, core.NewVec3(0, 1, 0)),
	)
	s.AddPlanes(NewGroundPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0.8, 0.8, 0.8)))

	return s
}

// NewShadowScene creates a blue sphere floating above the ground with the light straight above it
func NewShadowScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	lookAt := core.NewVec3(0, 0.25, 2)
	cameraConfig := cameraConfigFor(geometry.CameraConfig{
		Position: core.NewVec3(0, 1.5, -2),
		LookAt:   &lookAt,
		FOV:      30.0,
	}, cameraOverrides)

	s := NewScene(cameraConfig, core.NewVec3(0, 5, 2), RenderConfig{Width: 400, Height: 300})

	s.AddPlanes(NewGroundPlane(core.NewVec3(0, 0, 0), core.NewVec3(0.9, 0.9, 0.6)))
	s.AddSpheres(geometry.NewSphere(core.NewVec3(0, 1, 2), 0.5, core.NewVec3(0.2, 0.3, 1)))

	return s
}

// NewOverlapScene creates two overlapping spheres on the view axis.
// The far sphere is submitted first so nearest-hit resolution decides the visible color.
func NewOverlapScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := cameraConfigFor(geometry.CameraConfig{
		Position: core.NewVec3(0, 0, -1),
		Forward:  core.NewVec3(0, 0, 1),
		FOV:      30.0,
	}, cameraOverrides)

	s := NewScene(cameraConfig, core.NewVec3(0, 0, -3), RenderConfig{Width: 300, Height: 300})

	s.AddSpheres(geometry.NewSphere(core.NewVec3(0.2, 0, 2), 0.6, core.NewVec3(0, 0, 1)))
	s.AddSpheres(geometry.NewSphere(core.NewVec3(-0.2, 0, 1.5), 0.4, core.NewVec3(1, 1, 0)))

	return s
}

// NewEmptyScene creates a scene with no surfaces
func NewEmptyScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := cameraConfigFor(geometry.CameraConfig{
		Position: core.NewVec3(0, 0, -1),
		Forward:  core.NewVec3(0, 0, 1),
		FOV:      45.0,
	}, cameraOverrides)

	return NewScene(cameraConfig, core.NewVec3(0, 5, 0), RenderConfig{Width: 200, Height: 200})
}
