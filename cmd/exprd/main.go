package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/leonardinius/goexpr/internal/config"
	"github.com/leonardinius/goexpr/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		slog.Error("Failed to create logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	slog.Info("Starting expression service", "port", cfg.Server.Port, "origins", cfg.Server.CorsOrigins)
	if err := server.New(cfg, logger).Start(context.Background()); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
