package main

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plankhq/plank-api/internal/config"
	"github.com/plankhq/plank-api/internal/platform/postgres"
	"github.com/plankhq/plank-api/internal/platform/rediscache"
	"github.com/plankhq/plank-api/internal/realtime"
	"github.com/plankhq/plank-api/internal/service"
	"github.com/plankhq/plank-api/internal/service/auth"
)

// application holds the shared dependencies so wiring happens in one place
// and cleanup can release them in order on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *redis.Client
	hub   *realtime.Hub

	jwtService auth.JWTService

	userService   *service.UserService
	boardService  *service.BoardService
	columnService *service.ColumnService
	taskService   *service.TaskService
	authz         *service.AccessResolver
}

// newApplication wires stores, cache, hub and services on top of the given
// connections.
func newApplication(
	cfg *config.Config,
	log *slog.Logger,
	db *sql.DB,
	redisClient *redis.Client,
) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, err
	}

	userStore := postgres.NewUserStore(db, log)
	boardStore := postgres.NewBoardStore(db, log)
	columnStore := postgres.NewColumnStore(db, log)
	taskStore := postgres.NewTaskStore(db, log)

	cache := rediscache.NewBoardListCache(
		redisClient,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		log,
	)
	hub := realtime.NewHub(log)
	authz := service.NewAccessResolver(boardStore, log)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	return &application{
		config:     cfg,
		logger:     log,
		db:         db,
		redis:      redisClient,
		hub:        hub,
		jwtService: jwtService,
		authz:      authz,
		userService: service.NewUserService(
			userStore, hasher, jwtService, log,
		),
		boardService: service.NewBoardService(
			boardStore, columnStore, taskStore, userStore, authz, cache, hub, log,
		),
		columnService: service.NewColumnService(
			columnStore, authz, hub, log,
		),
		taskService: service.NewTaskService(
			taskStore, columnStore, authz, hub, log,
		),
	}, nil
}

// cleanup releases connections once the HTTP server has drained.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("failed to close redis client", "error", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
