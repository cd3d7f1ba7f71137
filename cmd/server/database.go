package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/plankhq/plank-api/internal/config"
	"github.com/plankhq/plank-api/internal/platform/postgres"
)

// setupDatabase opens the Postgres connection, verifies it and applies
// pending migrations.
func setupDatabase(ctx context.Context, cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database connection established")
	return db, nil
}

// setupRedis connects to Redis for the board-list cache. A failed ping is
// logged but not fatal: the cache degrades to a read-through miss on every
// request and the API stays up.
func setupRedis(ctx context.Context, cfg *config.Config, log *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, board list cache degraded",
			"addr", cfg.Cache.RedisAddr,
			"error", err)
	} else {
		log.Info("redis connection established", "addr", cfg.Cache.RedisAddr)
	}

	return client
}
