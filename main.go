package main

import (
	"flag"
	"log/slog"

	"github.com/anzohr/snapcrop/app"
	"github.com/anzohr/snapcrop/config"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging and diagnostics")
	flag.Parse()

	cfg, err := config.Load(*configPath)

	level := slog.LevelInfo
	if *debug || cfg.Debug {
		cfg.Debug = true
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	if err != nil {
		logger.Warn("config load failed, using defaults", slog.String("path", *configPath), slog.Any("error", err))
	}

	application := app.NewApp("SnapCrop", 1000, 700, cfg, *configPath, logger)
	application.Start()
}
