package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/df07/go-lux-raytracer/pkg/renderer"
	"github.com/df07/go-lux-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit      bool       `json:"hit"`
	Variant  string     `json:"variant,omitempty"`
	Job      int        `json:"job"`
	Index    int        `json:"index"`
	Point    [3]float64 `json:"point"`
	Distance float64    `json:"distance"`
	Color    string     `json:"color,omitempty"` // Final pixel color as #rrggbb
	Shadowed bool       `json:"shadowed"`
}

// handleInspect reports which surface determines a pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sc, width, height, err := s.loadScene(req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, scene.ErrUnknownScene) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	q := r.URL.Query()
	x, err := parseIntParam(q, "x", -1, 0, width-1)
	if err == nil && x < 0 {
		err = errors.New("x is required")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	y, err := parseIntParam(q, "y", -1, 0, height-1)
	if err == nil && y < 0 {
		err = errors.New("y is required")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rt := renderer.NewRaytracer(sc, renderer.RenderConfig{
		Width:         width,
		Height:        height,
		StrictShadows: req.Strict,
	}, s.logger)
	info, err := rt.Inspect(x, y)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := InspectResponse{Hit: info.Hit}
	if info.Hit {
		resp.Variant = info.Variant
		resp.Job = info.Job
		resp.Index = info.Index
		resp.Point = [3]float64{info.Point.X, info.Point.Y, info.Point.Z}
		resp.Distance = info.Distance
		resp.Color = fmt.Sprintf("#%02x%02x%02x", info.RGB[0], info.RGB[1], info.RGB[2])
		resp.Shadowed = info.Shadowed
	}
	writeJSON(w, http.StatusOK, resp)
}
