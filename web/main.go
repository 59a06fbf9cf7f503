package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/df07/go-lux-raytracer/pkg/config"
	"github.com/df07/go-lux-raytracer/pkg/logging"
	"github.com/df07/go-lux-raytracer/web/server"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", 0, "Port to serve on (overrides LUX_SERVER_ADDRESS)")
	flag.StringVar(&cfg.ScenesDir, "scenes", cfg.ScenesDir, "Directory of JSON scene files")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Default number of parallel workers (0 = CPU count)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	flag.Parse()

	if *port > 0 {
		cfg.ServerAddress = fmt.Sprintf(":%d", *port)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	webServer := server.NewServer(cfg, logger)
	if err := webServer.Start(); err != nil {
		logger.Error("web server stopped", "error", err)
		os.Exit(1)
	}
}
