// Package main implements the entry point for the ecomm API server,
// which serves the product catalog and handles authenticated product
// management with remote image hosting.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/FavasCherukunnu/ecomm-api/internal/config"
	"github.com/FavasCherukunnu/ecomm-api/internal/platform/logger"
)

func main() {
	// A missing .env file is fine; deployments configure the process
	// environment directly.
	_ = godotenv.Load()

	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, wires the application and blocks until the
// server shuts down.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
