package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
)

// runMigrations opens the configured database, runs one goose command
// against the embedded migrations and closes the connection.
func runMigrations(ctx context.Context, cfg *config.Config, command string, log *slog.Logger) error {
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database after migrations", slog.String("error", cerr.Error()))
		}
	}()

	log.Info("executing migrations", slog.String("command", command))
	if err := postgres.Migrate(ctx, db, command, log); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	log.Info("migrations finished", slog.String("command", command))
	return nil
}
