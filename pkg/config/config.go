// Package config loads renderer settings from a .env file and LUX_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-lux-raytracer/pkg/publish"
)

// Config holds the defaults the CLI and the web server start from
type Config struct {
	RootDir string

	Scene         string
	Width         int // 0 = use the scene's own size
	Height        int // 0 = use the scene's own size
	Workers       int
	RowsPerTask   int
	Output        string
	StrictShadows bool
	Thumbnail     uint

	LogLevel  string
	LogFormat string

	ServerAddress string
	ScenesDir     string

	S3 publish.S3Config
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		RootDir:       ".",
		Scene:         "default",
		Workers:       1,
		RowsPerTask:   8,
		Output:        "image.ppm",
		LogLevel:      "info",
		LogFormat:     "text",
		ServerAddress: ":8080",
		ScenesDir:     "scenes",
	}
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// Load reads <rootDir>/.env (a missing file is ignored) and then the LUX_* variables.
// Variables already set in the environment take precedence over the .env file.
func Load(rootDir string) (Config, error) {
	cfg := Default()
	cfg.RootDir = getEnv("LUX_ROOT_DIR", rootDir)
	_ = godotenv.Load(filepath.Join(cfg.RootDir, ".env"))

	cfg.Scene = getEnv("LUX_SCENE", cfg.Scene)
	cfg.Output = getEnv("LUX_OUTPUT", cfg.Output)
	cfg.LogLevel = getEnv("LUX_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LUX_LOG_FORMAT", cfg.LogFormat)
	cfg.ServerAddress = getEnv("LUX_SERVER_ADDRESS", cfg.ServerAddress)
	cfg.ScenesDir = getEnv("LUX_SCENES_DIR", cfg.ScenesDir)

	var err error
	if cfg.Width, err = getEnvInt("LUX_WIDTH", cfg.Width); err != nil {
		return cfg, err
	}
	if cfg.Height, err = getEnvInt("LUX_HEIGHT", cfg.Height); err != nil {
		return cfg, err
	}
	if cfg.Workers, err = getEnvInt("LUX_WORKERS", cfg.Workers); err != nil {
		return cfg, err
	}
	if cfg.RowsPerTask, err = getEnvInt("LUX_ROWS_PER_TASK", cfg.RowsPerTask); err != nil {
		return cfg, err
	}
	if cfg.StrictShadows, err = getEnvBool("LUX_STRICT_SHADOWS", cfg.StrictShadows); err != nil {
		return cfg, err
	}
	thumb, err := getEnvInt("LUX_THUMBNAIL", int(cfg.Thumbnail))
	if err != nil {
		return cfg, err
	}
	if thumb < 0 {
		return cfg, fmt.Errorf("invalid LUX_THUMBNAIL: %d", thumb)
	}
	cfg.Thumbnail = uint(thumb)

	cfg.S3 = publish.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    getEnv("S3_PREFIX", "renders"),
		CDNURL:    os.Getenv("CDN_URL"),
	}

	return cfg, nil
}
