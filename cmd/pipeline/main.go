package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"brandpulse-worker/config"
	"brandpulse-worker/container"
	"brandpulse-worker/domain/models"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting brand analysis pipeline")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("Configuration loaded",
		"brand", cfg.Brand.Name,
		"batch_size", cfg.Analysis.BatchSize,
		"report_format", cfg.Analysis.ReportFormat,
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info("Received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create container
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		logger.Error("Failed to create container", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	// Run the pipeline
	if err := c.Pipeline.Run(ctx); err != nil {
		if errors.Is(err, models.ErrNoCorpus) {
			logger.Info("Nothing to analyze", "reason", err)
			return
		}
		logger.Error("Pipeline failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Pipeline finished")
}
