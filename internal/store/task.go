package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Every method is scoped by ownerID. A task that exists but belongs to a
// different owner is reported exactly like a missing one: ErrTaskNotFound.
type TaskStore interface {
	// Create saves a new task. The task's OwnerID must reference an existing account.
	Create(ctx context.Context, task *domain.Task) error

	// GetForOwner retrieves the task with id if it is owned by ownerID.
	GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// Update persists title, description, completed and updated_at of a task
	// owned by task.OwnerID.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes the task with id if it is owned by ownerID.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// ListByOwner returns one page of the owner's tasks, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*domain.Task, error)

	// ListRecentIncomplete returns up to limit incomplete tasks, newest first.
	ListRecentIncomplete(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Task, error)

	// Search returns one page of the owner's tasks whose title or description
	// contains query, case-insensitively, newest first.
	Search(ctx context.Context, ownerID uuid.UUID, query string, page domain.PageRequest) ([]*domain.Task, error)

	// CountSearch counts the owner's tasks matching query.
	CountSearch(ctx context.Context, ownerID uuid.UUID, query string) (int64, error)

	// CountByOwner counts all of the owner's tasks.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// CountIncompleteByOwner counts the owner's tasks that are not completed.
	CountIncompleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
