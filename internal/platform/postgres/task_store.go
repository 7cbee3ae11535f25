package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

const taskColumns = `id, owner_id, title, description, completed, created_at, updated_at`

// searchPredicate matches a lower-cased LIKE pattern against title or description.
const searchPredicate = `(LOWER(title) LIKE $2 ESCAPE '\' OR LOWER(description) LIKE $2 ESCAPE '\')`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
// Every statement filters on owner_id.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("owner_id", task.OwnerID.String()))
		return store.NewStoreError("task", "create", "database error", MapError(err))
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("owner_id", task.OwnerID.String()))
	return nil
}

// GetForOwner implements store.TaskStore.GetForOwner.
func (s *PostgresTaskStore) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner_id = $2`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "get", "database error", MapError(err))
	}
	return task, nil
}

// Update implements store.TaskStore.Update.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update", slog.String("error", err.Error()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, completed = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Completed,
		task.UpdatedAt,
		task.ID,
		task.OwnerID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return store.NewStoreError("task", "update", "database error", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete.
func (s *PostgresTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return store.NewStoreError("task", "delete", "database error", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrTaskNotFound)
}

// ListByOwner implements store.TaskStore.ListByOwner.
func (s *PostgresTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page domain.PageRequest,
) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`
	return s.list(ctx, "list", query, ownerID, page.Size, page.Offset())
}

// ListRecentIncomplete implements store.TaskStore.ListRecentIncomplete.
func (s *PostgresTaskStore) ListRecentIncomplete(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner_id = $1 AND completed = FALSE
		ORDER BY created_at DESC, id
		LIMIT $2
	`
	return s.list(ctx, "recent", query, ownerID, limit)
}

// Search implements store.TaskStore.Search.
func (s *PostgresTaskStore) Search(
	ctx context.Context,
	ownerID uuid.UUID,
	query string,
	page domain.PageRequest,
) ([]*domain.Task, error) {
	sqlQuery := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner_id = $1 AND ` + searchPredicate + `
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4
	`
	return s.list(ctx, "search", sqlQuery, ownerID, likePattern(query), page.Size, page.Offset())
}

// CountSearch implements store.TaskStore.CountSearch.
func (s *PostgresTaskStore) CountSearch(ctx context.Context, ownerID uuid.UUID, query string) (int64, error) {
	return s.count(ctx, "count_search",
		`SELECT COUNT(*) FROM tasks WHERE owner_id = $1 AND `+searchPredicate,
		ownerID, likePattern(query))
}

// CountByOwner implements store.TaskStore.CountByOwner.
func (s *PostgresTaskStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.count(ctx, "count", `SELECT COUNT(*) FROM tasks WHERE owner_id = $1`, ownerID)
}

// CountIncompleteByOwner implements store.TaskStore.CountIncompleteByOwner.
func (s *PostgresTaskStore) CountIncompleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return s.count(ctx, "count_incomplete",
		`SELECT COUNT(*) FROM tasks WHERE owner_id = $1 AND completed = FALSE`, ownerID)
}

func (s *PostgresTaskStore) list(ctx context.Context, op, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", op, "database error", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task", slog.String("operation", op), slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", op, "scan error", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed iterating tasks", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", op, "database error", MapError(err))
	}
	return tasks, nil
}

func (s *PostgresTaskStore) count(ctx context.Context, op, query string, args ...any) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to count tasks",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return 0, store.NewStoreError("task", op, "database error", MapError(err))
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern. LIKE wildcards in
// the user's query match literally.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}
