package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-lux-raytracer/pkg/core"
	"github.com/df07/go-lux-raytracer/pkg/geometry"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

// Vec3 converts the config value to a core.Vec3
func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg is the JSON form of a camera
type CameraCfg struct {
	Position Vec3Cfg  `json:"position"`
	Forward  *Vec3Cfg `json:"forward,omitempty"`
	LookAt   *Vec3Cfg `json:"lookAt,omitempty"`
	FOV      float64  `json:"fov"`
}

// SphereCfg is the JSON form of a sphere
type SphereCfg struct {
	Center Vec3Cfg `json:"center"`
	Radius float64 `json:"radius"`
	Color  Vec3Cfg `json:"color"`
}

// PlaneCfg is the JSON form of a plane
type PlaneCfg struct {
	Point  Vec3Cfg `json:"point"`
	BasisU Vec3Cfg `json:"u"`
	BasisV Vec3Cfg `json:"v"`
	Color  Vec3Cfg `json:"color"`
}

// JobCfg is one job of a JSON scene; exactly one of Spheres or Planes is set
type JobCfg struct {
	Spheres []SphereCfg `json:"spheres,omitempty"`
	Planes  []PlaneCfg  `json:"planes,omitempty"`
}

// FileCfg is the top level of a JSON scene file
type FileCfg struct {
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description,omitempty"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	Camera      CameraCfg `json:"camera"`
	Light       Vec3Cfg   `json:"light"`
	Jobs        []JobCfg  `json:"jobs"`
}

// LoadJSONScene reads a scene file from disk
func LoadJSONScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()

	s, err := DecodeJSONScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// DecodeJSONScene decodes and validates a scene from r
func DecodeJSONScene(r io.Reader) (*Scene, error) {
	var cfg FileCfg
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return cfg.Build()
}

// Build validates the config and creates the scene
func (cfg FileCfg) Build() (*Scene, error) {
	if cfg.Camera.FOV <= 0 || cfg.Camera.FOV >= 90 {
		return nil, fmt.Errorf("camera fov must be in (0, 90) degrees, got %g", cfg.Camera.FOV)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return nil, fmt.Errorf("image size must not be negative, got %dx%d", cfg.Width, cfg.Height)
	}

	cameraConfig := geometry.CameraConfig{
		Position: cfg.Camera.Position.Vec3(),
		Forward:  core.NewVec3(0, 0, 1),
		FOV:      cfg.Camera.FOV,
	}
	if cfg.Camera.Forward != nil {
		cameraConfig.Forward = cfg.Camera.Forward.Vec3()
		if cameraConfig.Forward == (core.Vec3{}) {
			return nil, fmt.Errorf("camera forward: %w", core.ErrDegenerateVector)
		}
	}
	if cfg.Camera.LookAt != nil {
		target := cfg.Camera.LookAt.Vec3()
		if target == cameraConfig.Position {
			return nil, fmt.Errorf("camera lookAt equals its position: %w", core.ErrDegenerateVector)
		}
		cameraConfig.LookAt = &target
	}
	// Looking straight along world up leaves the up vector undefined
	dir := cameraConfig.Forward
	if cameraConfig.LookAt != nil {
		dir = cameraConfig.LookAt.Subtract(cameraConfig.Position)
	}
	if dir.X == 0 && dir.Z == 0 {
		return nil, fmt.Errorf("camera looks straight up or down: %w", core.ErrDegenerateVector)
	}

	renderConfig := RenderConfig{Width: cfg.Width, Height: cfg.Height}
	if renderConfig.Width == 0 {
		renderConfig.Width = 400
	}
	if renderConfig.Height == 0 {
		renderConfig.Height = renderConfig.Width
	}

	s := NewScene(cameraConfig, cfg.Light.Vec3(), renderConfig)

	for i, job := range cfg.Jobs {
		switch {
		case len(job.Spheres) > 0 && len(job.Planes) > 0:
			return nil, fmt.Errorf("job %d: mixes spheres and planes", i)
		case len(job.Spheres) > 0:
			spheres := make([]*geometry.Sphere, 0, len(job.Spheres))
			for j, sc := range job.Spheres {
				if sc.Radius <= 0 {
					return nil, fmt.Errorf("job %d sphere %d: radius must be positive, got %g", i, j, sc.Radius)
				}
				spheres = append(spheres, geometry.NewSphere(sc.Center.Vec3(), sc.Radius, sc.Color.Vec3()))
			}
			s.AddSpheres(spheres...)
		case len(job.Planes) > 0:
			planes := make([]*geometry.Plane, 0, len(job.Planes))
			for j, pc := range job.Planes {
				p := geometry.NewPlane(pc.Point.Vec3(), pc.BasisU.Vec3(), pc.BasisV.Vec3(), pc.Color.Vec3())
				if p.Normal() == (core.Vec3{}) {
					return nil, fmt.Errorf("job %d plane %d: basis vectors are parallel", i, j)
				}
				planes = append(planes, p)
			}
			s.AddPlanes(planes...)
		default:
			return nil, fmt.Errorf("job %d: no surfaces", i)
		}
	}

	return s, nil
}
