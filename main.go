package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/df07/go-lux-raytracer/pkg/config"
	"github.com/df07/go-lux-raytracer/pkg/imaging"
	"github.com/df07/go-lux-raytracer/pkg/logging"
	"github.com/df07/go-lux-raytracer/pkg/publish"
	"github.com/df07/go-lux-raytracer/pkg/renderer"
	"github.com/df07/go-lux-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the command line settings after config and flags are merged
type options struct {
	cfg    config.Config
	upload bool
	list   bool
}

func parseFlags(args []string, cfg config.Config, stdout io.Writer) (options, error) {
	opts := options{cfg: cfg}
	fs := flag.NewFlagSet("lux", flag.ContinueOnError)
	fs.SetOutput(stdout)

	fs.StringVar(&opts.cfg.Scene, "scene", cfg.Scene, "Scene: built-in name, JSON scene name, or path to a .json scene file")
	fs.IntVar(&opts.cfg.Width, "width", cfg.Width, "Image width (0 = scene default)")
	fs.IntVar(&opts.cfg.Height, "height", cfg.Height, "Image height (0 = scene default)")
	fs.IntVar(&opts.cfg.Workers, "workers", cfg.Workers, "Number of parallel workers (0 = auto-detect CPU count, 1 = sequential)")
	fs.IntVar(&opts.cfg.RowsPerTask, "rows", cfg.RowsPerTask, "Rows per worker task")
	fs.BoolVar(&opts.cfg.StrictShadows, "strict", cfg.StrictShadows, "Ignore occluders farther away than the light")
	fs.StringVar(&opts.cfg.Output, "output", cfg.Output, "Output file (.ppm, .png, .bmp, .tif)")
	fs.UintVar(&opts.cfg.Thumbnail, "thumbnail", cfg.Thumbnail, "Also write a thumbnail at most this many pixels wide (0 = off)")
	fs.StringVar(&opts.cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&opts.cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	fs.BoolVar(&opts.upload, "upload", false, "Upload the render to the configured S3 bucket")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")

	fs.Usage = func() {
		fmt.Fprintln(stdout, "Lux Raytracer")
		fmt.Fprintln(stdout, "Usage: lux [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Settings can also be given as LUX_* environment variables or in a .env file.")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	opts, err := parseFlags(args, cfg, stdout)
	if err != nil {
		return err
	}
	cfg = opts.cfg

	logger, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	if opts.list {
		return listScenes(stdout, cfg.ScenesDir)
	}

	s, err := scene.CreateScene(cfg.Scene, cfg.ScenesDir)
	if err != nil {
		return err
	}

	width, height := resolveSize(cfg, s)
	renderID := uuid.New().String()
	logger = logger.With("render_id", renderID, "scene", cfg.Scene)

	renderConfig := renderer.RenderConfig{
		Width:         width,
		Height:        height,
		NumWorkers:    cfg.Workers,
		RowsPerTask:   cfg.RowsPerTask,
		StrictShadows: cfg.StrictShadows,
	}

	img, err := renderToFile(ctx, s, renderConfig, cfg.Output, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", cfg.Output)

	if cfg.Thumbnail > 0 {
		thumbPath := imaging.ThumbnailPath(cfg.Output)
		if err := imaging.Save(thumbPath, imaging.Thumbnail(img, cfg.Thumbnail)); err != nil {
			return fmt.Errorf("failed to save thumbnail: %w", err)
		}
		logger.Info("thumbnail saved", "path", thumbPath, "max_size", cfg.Thumbnail)
	}

	if opts.upload {
		publisher, err := publish.NewS3Publisher(cfg.S3, logger)
		if err != nil {
			return err
		}
		key, url, err := uploadImage(ctx, publisher, sceneSlug(cfg.Scene), cfg.Output, img)
		if err != nil {
			return err
		}
		if url == "" {
			url = key
		}
		fmt.Fprintf(stdout, "Uploaded %s\n", url)
	}

	return nil
}

// resolveSize picks the configured size, falling back to the scene's own.
// A lone width keeps the scene's aspect ratio.
func resolveSize(cfg config.Config, s *scene.Scene) (int, int) {
	width, height := cfg.Width, cfg.Height
	sw, sh := s.RenderConfig.Width, s.RenderConfig.Height
	switch {
	case width > 0 && height > 0:
	case width > 0 && sw > 0:
		height = max(1, width*sh/sw)
	case height > 0 && sh > 0:
		width = max(1, height*sw/sh)
	default:
		width, height = sw, sh
	}
	return width, height
}

// renderToFile renders s and writes it to path. PPM output streams through imaging.Create.
func renderToFile(ctx context.Context, s *scene.Scene, config renderer.RenderConfig, path string, logger *slog.Logger) (*imaging.Framebuffer, error) {
	format, err := imaging.FormatForPath(path)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	rt := renderer.NewRaytracer(s, config, logger)

	if format == imaging.FormatPPM {
		if config.Width <= 0 || config.Height <= 0 {
			return nil, fmt.Errorf("%w: got %dx%d", renderer.ErrInvalidSize, config.Width, config.Height)
		}
		ppm, err := imaging.Create(path, config.Width, config.Height)
		if err != nil {
			return nil, err
		}
		stats, err := rt.Render(ctx, ppm)
		if err != nil {
			ppm.Close()
			return nil, err
		}
		logStats(logger, stats)
		return ppm.Framebuffer, ppm.Close()
	}

	fb := imaging.NewFramebuffer(config.Width, config.Height)
	stats, err := rt.Render(ctx, fb)
	if err != nil {
		return nil, err
	}
	logStats(logger, stats)
	return fb, imaging.Save(path, fb)
}

func logStats(logger *slog.Logger, stats renderer.RenderStats) {
	logger.Info("render stats",
		"pixels", stats.TotalPixels,
		"pixels_written", stats.PixelsWritten,
		"hit_ratio", fmt.Sprintf("%.3f", stats.HitRatio()),
		"shadow_rays", stats.ShadowRays,
		"shadowed_pixels", stats.ShadowedPixels,
		"elapsed", stats.Elapsed)
}

// uploader is satisfied by *publish.S3Publisher
type uploader interface {
	Upload(ctx context.Context, sceneName, ext, contentType string, data []byte) (key, url string, err error)
}

func uploadImage(ctx context.Context, u uploader, sceneName, outputPath string, img *imaging.Framebuffer) (string, string, error) {
	format, err := imaging.FormatForPath(outputPath)
	if err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return "", "", fmt.Errorf("failed to encode upload: %w", err)
	}
	return u.Upload(ctx, sceneName, string(format), format.ContentType(), buf.Bytes())
}

// sceneSlug turns a scene name or file path into a key-safe name
func sceneSlug(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func listScenes(w io.Writer, scenesDir string) error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scenes {
		fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Description)
	}
	return nil
}
