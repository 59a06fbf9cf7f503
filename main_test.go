package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-lux-raytracer/pkg/config"
	"github.com/df07/go-lux-raytracer/pkg/imaging"
	"github.com/df07/go-lux-raytracer/pkg/scene"
)

func TestResolveSize(t *testing.T) {
	s := scene.NewDefaultScene() // 400x400

	tests := []struct {
		name           string
		width, height  int
		expectedWidth  int
		expectedHeight int
	}{
		{"scene default", 0, 0, 400, 400},
		{"both given", 64, 32, 64, 32},
		{"width keeps aspect", 100, 0, 100, 100},
		{"height keeps aspect", 0, 50, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Width, cfg.Height = tt.width, tt.height
			w, h := resolveSize(cfg, s)
			if w != tt.expectedWidth || h != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, w, h)
			}
		})
	}
}

func TestSceneSlug(t *testing.T) {
	tests := map[string]string{
		"default":                   "default",
		"scenes/three-spheres.json": "three-spheres",
		"/tmp/x/my.scene.json":      "my.scene",
	}
	for input, expected := range tests {
		if got := sceneSlug(input); got != expected {
			t.Errorf("sceneSlug(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestRun_WritesPPM(t *testing.T) {
	output := filepath.Join(t.TempDir(), "nested", "image.ppm")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-scene", "default", "-width", "16", "-height", "12", "-output", output}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n16 12\n255\n") {
		t.Errorf("Unexpected PPM header: %q", string(data[:20]))
	}
	if lines := strings.Count(string(data), "\n"); lines != 3+16*12 {
		t.Errorf("Expected %d lines, got %d", 3+16*12, lines)
	}
	if !strings.Contains(stderr.String(), "render_id") {
		t.Errorf("Expected render id in logs, got %q", stderr.String())
	}
}

func TestRun_PNGWithThumbnail(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "render.png")
	var stdout, stderr bytes.Buffer

	args := []string{"-scene", "shadow", "-width", "40", "-height", "20", "-workers", "3", "-output", output, "-thumbnail", "10"}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	f, err := os.Open(imaging.ThumbnailPath(output))
	if err != nil {
		t.Fatalf("Thumbnail missing: %v", err)
	}
	defer f.Close()

	thumb, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode thumbnail: %v", err)
	}
	if b := thumb.Bounds(); b.Dx() != 10 || b.Dy() != 5 {
		t.Errorf("Expected 10x5 thumbnail, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"-scene", "nonexistent", "-output", filepath.Join(dir, "a.ppm")}},
		{"unsupported output", []string{"-output", filepath.Join(dir, "a.gif")}},
		{"bad log level", []string{"-log-level", "loud"}},
		{"bad flag", []string{"-frobnicate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(context.Background(), tt.args, &stdout, &stderr); err == nil {
				t.Errorf("Expected error for %v", tt.args)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-help"}, &stdout, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stdout.String(), "-scene") {
		t.Errorf("Expected usage output, got %q", stdout.String())
	}
}

func TestRun_ListScenes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-list"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, name := range scene.BuiltinSceneNames() {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("Expected scene %q in listing:\n%s", name, stdout.String())
		}
	}
}

type recordingUploader struct {
	scene, ext, contentType string
	size                    int
}

func (r *recordingUploader) Upload(_ context.Context, sceneName, ext, contentType string, data []byte) (string, string, error) {
	r.scene, r.ext, r.contentType, r.size = sceneName, ext, contentType, len(data)
	return "renders/" + sceneName + "/id." + ext, "", nil
}

func TestUploadImage(t *testing.T) {
	fb := imaging.NewFramebuffer(4, 4)
	u := &recordingUploader{}

	key, _, err := uploadImage(context.Background(), u, "default", "out/render.bmp", fb)
	if err != nil {
		t.Fatalf("uploadImage failed: %v", err)
	}
	if key != "renders/default/id.bmp" {
		t.Errorf("Unexpected key %q", key)
	}
	if u.ext != "bmp" || u.contentType != "image/bmp" || u.size == 0 {
		t.Errorf("Unexpected upload %+v", u)
	}
}

func TestResolveSize_DerivedSideNeverZero(t *testing.T) {
	s := scene.NewShadowScene() // 400x300

	cfg := config.Default()
	cfg.Width = 1
	if w, h := resolveSize(cfg, s); w != 1 || h != 1 {
		t.Errorf("Expected 1x1, got %dx%d", w, h)
	}

	cfg = config.Default()
	cfg.Height = 1
	if w, h := resolveSize(cfg, s); w != 1 || h != 1 {
		t.Errorf("Expected 1x1, got %dx%d", w, h)
	}
}
