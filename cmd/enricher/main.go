package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/vietddude/stylelog"

	"github.com/vietddude/enricher/internal/control"
	"github.com/vietddude/enricher/internal/core/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	startIndex := flag.Int("start", -1, "Override resume position (-1 = use checkpoint)")
	isDebug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		// Optional; config values may still come from the environment
		slog.Debug("No .env file found")
	}

	// Load Configuration first (before setting up logger)
	cfg, err := config.Load(*configPath)
	if err != nil {
		// Fall back to default logger for config load errors
		stylelog.InitDefault()
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Simplifed logging logic (debug < info)
	slogLevel := slog.LevelInfo
	if *isDebug || cfg.Logging.Level == "debug" {
		slogLevel = slog.LevelDebug
	}

	// Initialize stylelog with tint.Options for level control
	stylelog.InitDefault(
		&tint.Options{
			Level:      slogLevel,
			TimeFormat: time.RFC3339,
		})
	slog.Info("Logger initialized", "level", slogLevel.String())

	// Transform config
	controlCfg := control.Config{
		Port:     cfg.Server.Port,
		Catalog:  cfg.Catalog,
		Pipeline: cfg.Pipeline,
		Lookup:   cfg.Lookup,
		Cache:    cfg.Cache,
		Database: cfg.Database,
	}
	if *startIndex >= 0 {
		controlCfg.StartOverride = startIndex
	}

	// Initialize Enricher
	app, err := control.New(controlCfg)
	if err != nil {
		slog.Error("Failed to initialize Enricher", "error", err)
		os.Exit(1)
	}

	// Setup Context with Cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle OS Signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Run the pipeline; it finishes on its own or on signal
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	exitCode := 0
	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		cancel()
		if err := <-done; err != nil && err != context.Canceled {
			slog.Error("Run failed during shutdown", "error", err)
			exitCode = 1
		}
	case err := <-done:
		if err != nil {
			slog.Error("Run failed", "error", err)
			exitCode = 1
		}
	}

	// Graceful Shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.Stop(shutdownCtx); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Enricher stopped")
	os.Exit(exitCode)
}
