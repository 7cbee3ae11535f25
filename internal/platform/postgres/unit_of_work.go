package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/store"
)

// Open connects to PostgreSQL through the pgx stdlib driver, configures the
// pool and verifies connectivity.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// UnitOfWork implements store.UnitOfWork with one database transaction per call.
type UnitOfWork struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewUnitOfWork creates a UnitOfWork over db.
func NewUnitOfWork(db *sql.DB, logger *slog.Logger) *UnitOfWork {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UnitOfWork{db: db, logger: logger}
}

var _ store.UnitOfWork = (*UnitOfWork)(nil)

// Do runs fn with account and task stores bound to a single transaction.
func (u *UnitOfWork) Do(ctx context.Context, fn store.UnitOfWorkFn) error {
	return store.RunInTransaction(ctx, u.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, store.Stores{
			Accounts: NewPostgresAccountStore(tx, u.logger),
			Tasks:    NewPostgresTaskStore(tx, u.logger),
		})
	})
}
