package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/metrics"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/ratelimit"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// openDatabase is replaced in tests.
var openDatabase = postgres.Open

// application holds the shared dependencies and owns their cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *redis.Client

	metrics     *metrics.Metrics
	tokens      auth.TokenService
	authService service.AuthService
	taskService service.TaskService
	limiter     ratelimit.Counter
}

// setupApplication connects to Postgres and, when configured, Redis, then
// wires the application on top of them. A Redis that cannot be reached
// disables rate limiting instead of failing startup.
func setupApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		// The driver error may echo the connection string.
		return nil, errors.New("failed to connect to database: " + redact.Error(err))
	}

	var limiter ratelimit.Counter
	client, err := ratelimit.Connect(ctx, cfg.RateLimit, log)
	if err != nil {
		log.Warn("rate limiting disabled: redis unavailable", slog.String("error", redact.Error(err)))
	} else if client != nil {
		limiter = ratelimit.NewRedisCounter(client)
	}

	app, err := newApplication(cfg, log, postgres.NewUnitOfWork(db, log), limiter)
	if err != nil {
		_ = db.Close()
		if client != nil {
			_ = client.Close()
		}
		return nil, err
	}
	app.db = db
	app.redis = client
	return app, nil
}

// newApplication builds services and collectors over an existing unit of
// work. limiter may be nil.
func newApplication(
	cfg *config.Config,
	log *slog.Logger,
	uow store.UnitOfWork,
	limiter ratelimit.Counter,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  log,
		metrics: metrics.New(),
		limiter: limiter,
	}

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	log.Info("token service initialized", slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	opts := []service.Option{
		service.WithQueryTimeout(cfg.Database.QueryTimeout()),
		service.WithAuthEvents(app.metrics),
	}
	app.authService = service.NewAuthService(uow, auth.NewBcryptHasher(cfg.Auth.BcryptCost), app.tokens, log, opts...)
	app.taskService = service.NewTaskService(uow, log, opts...)

	return app, nil
}

// cleanup releases external connections.
func (app *application) cleanup() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
