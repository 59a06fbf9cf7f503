package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/df07/go-lux-raytracer/pkg/imaging"
	"github.com/df07/go-lux-raytracer/pkg/renderer"
	"github.com/df07/go-lux-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene     string         // Scene name accepted by scene.CreateScene
	Width     int            // Image width (0 = scene default)
	Height    int            // Image height (0 = scene default)
	Workers   int            // Parallel workers
	Strict    bool           // Ignore occluders past the light
	Format    imaging.Format // Response encoding
	Thumbnail uint           // Max thumbnail edge (0 = full size)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	q := r.URL.Query()
	req := &RenderRequest{Scene: s.config.Scene, Format: imaging.FormatPNG}

	if name := q.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(q, "width", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(q, "height", 0, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(q, "workers", 0, 0, maxWorkers); err != nil {
		return nil, err
	}
	if req.Strict, err = parseBoolParam(q, "strict", s.config.StrictShadows); err != nil {
		return nil, err
	}
	thumb, err := parseIntParam(q, "thumb", 0, 0, maxImageSize)
	if err != nil {
		return nil, err
	}
	req.Thumbnail = uint(thumb)

	if format := q.Get("format"); format != "" {
		if req.Format, err = imaging.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// loadScene resolves the scene and the final image size of a request
func (s *Server) loadScene(req *RenderRequest) (*scene.Scene, int, int, error) {
	sc, err := scene.CreateScene(req.Scene, s.config.ScenesDir)
	if err != nil {
		return nil, 0, 0, err
	}
	width, height := req.Width, req.Height
	if width == 0 {
		width = sc.RenderConfig.Width
	}
	if height == 0 {
		height = sc.RenderConfig.Height
	}
	if width > maxImageSize || height > maxImageSize {
		return nil, 0, 0, fmt.Errorf("scene size %dx%d exceeds %d", width, height, maxImageSize)
	}
	return sc, width, height, nil
}

// handleRender renders a scene and returns the encoded image.
// Render statistics are reported in X-Render-* headers.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
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

	renderID := uuid.New().String()
	logger := s.logger.With("render_id", renderID, "scene", req.Scene)

	workers := req.Workers
	if workers == 0 {
		workers = s.config.Workers
	}
	rt := renderer.NewRaytracer(sc, renderer.RenderConfig{
		Width:         width,
		Height:        height,
		NumWorkers:    workers,
		RowsPerTask:   s.config.RowsPerTask,
		StrictShadows: req.Strict,
	}, logger)

	fb := imaging.NewFramebuffer(width, height)
	stats, err := rt.Render(r.Context(), fb)
	if err != nil {
		logger.Warn("render failed", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Thumbnail(fb, req.Thumbnail), req.Format); err != nil {
		logger.Error("failed to encode image", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode image")
		return
	}

	h := w.Header()
	h.Set("Content-Type", req.Format.ContentType())
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("X-Render-Id", renderID)
	h.Set("X-Render-Pixels-Written", strconv.Itoa(stats.PixelsWritten))
	h.Set("X-Render-Shadowed-Pixels", strconv.Itoa(stats.ShadowedPixels))
	h.Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
