package server

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-lux-raytracer/pkg/config"
	"github.com/df07/go-lux-raytracer/pkg/scene"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.ScenesDir = t.TempDir()
	ts := httptest.NewServer(NewServer(cfg, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("Unexpected health response %d %v", resp.StatusCode, body)
	}
}

func TestHandleScenes(t *testing.T) {
	cfg := config.Default()
	cfg.ScenesDir = t.TempDir()
	sceneJSON := `{"name": "Lonely Ball", "width": 16, "camera": {"position": [0, 0, -1], "fov": 30}, "light": [0, 5, 0], "jobs": [{"spheres": [{"center": [0, 0, 2], "radius": 0.5, "color": [1, 1, 1]}]}]}`
	if err := os.WriteFile(filepath.Join(cfg.ScenesDir, "lonely.json"), []byte(sceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	ts := httptest.NewServer(NewServer(cfg, nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/scenes")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var scenes []scene.SceneInfo
	if err := json.NewDecoder(resp.Body).Decode(&scenes); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(scenes) != len(scene.BuiltinSceneNames())+1 {
		t.Fatalf("Expected builtins plus one JSON scene, got %+v", scenes)
	}
	last := scenes[len(scenes)-1]
	if last.ID != "lonely" || last.Type != "json" || last.DisplayName != "Lonely Ball" {
		t.Errorf("Unexpected JSON scene entry %+v", last)
	}

	render, err := http.Get(ts.URL + "/api/render?scene=lonely&format=bmp")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	render.Body.Close()
	if render.StatusCode != http.StatusOK || render.Header.Get("Content-Type") != "image/bmp" {
		t.Errorf("Expected bmp render of JSON scene, got %d %q", render.StatusCode, render.Header.Get("Content-Type"))
	}
}

func TestHandleRender_VerticalCameraScene(t *testing.T) {
	cfg := config.Default()
	cfg.ScenesDir = t.TempDir()
	sceneJSON := `{"camera": {"position": [0, 2, 0], "lookAt": [0, -1, 0], "fov": 30}, "light": [0, 5, 0], "jobs": []}`
	if err := os.WriteFile(filepath.Join(cfg.ScenesDir, "topdown.json"), []byte(sceneJSON), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	ts := httptest.NewServer(NewServer(cfg, nil).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/render?scene=topdown")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for a camera looking straight down, got %d", resp.StatusCode)
	}
}

func TestHandleRender_PNG(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/render?scene=default&width=32&height=24&workers=2")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if resp.Header.Get("X-Render-Id") == "" {
		t.Error("Expected X-Render-Id header")
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
		t.Errorf("Expected 32x24 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestHandleRender_PPMThumbnail(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/render?scene=shadow&width=40&height=40&format=ppm&thumb=8")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/x-portable-pixmap" {
		t.Errorf("Unexpected content type %q", ct)
	}
	if !strings.HasPrefix(string(data), "P3\n8 8\n255\n") {
		t.Errorf("Unexpected PPM body %q", string(data))
	}
}

func TestHandleRender_Errors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"unknown scene", "scene=nonexistent", http.StatusNotFound},
		{"bad width", "width=abc", http.StatusBadRequest},
		{"width too large", "width=5000", http.StatusBadRequest},
		{"bad format", "format=gif", http.StatusBadRequest},
		{"bad strict", "strict=perhaps", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/render?" + tt.query)
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	ts := newTestServer(t)

	// Lower middle of the default scene looks at the ground plane
	resp, err := http.Get(ts.URL + "/api/inspect?scene=default&width=40&height=40&x=20&y=30")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var body InspectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if body.Hit && (body.Variant == "" || !strings.HasPrefix(body.Color, "#")) {
		t.Errorf("Incomplete hit response %+v", body)
	}

	resp2, err := http.Get(ts.URL + "/api/inspect?scene=default&width=40&height=40&x=40&y=0")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for x out of range, got %d", resp2.StatusCode)
	}

	resp3, err := http.Get(ts.URL + "/api/inspect?scene=default")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp3.Body.Close()
	if resp3.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 without coordinates, got %d", resp3.StatusCode)
	}
}
