// Package main implements the entry point for the Plank API server: an
// access-controlled collaborative kanban backend with per-user board list
// caching and realtime event streams.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/plankhq/plank-api/internal/config"
	"github.com/plankhq/plank-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

// run loads configuration, connects dependencies and serves until shutdown.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx := context.Background()

	db, err := setupDatabase(ctx, cfg, appLogger)
	if err != nil {
		return err
	}

	redisClient := setupRedis(ctx, cfg, appLogger)

	app, err := newApplication(cfg, appLogger, db, redisClient)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
