package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskInput carries the user-editable task fields.
type TaskInput struct {
	Title       string
	Description string
}

// TaskService manages the tasks of the account identified by username.
// Every method returns ErrTaskNotFound for a task the account does not own.
type TaskService interface {
	Recent(ctx context.Context, username string) ([]*domain.Task, error)
	List(ctx context.Context, username string, page, size int) (*domain.TaskPage, error)
	Get(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error)
	Create(ctx context.Context, username string, in TaskInput) (*domain.Task, error)
	Update(ctx context.Context, username string, id uuid.UUID, in TaskInput) (*domain.Task, error)
	MarkCompleted(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error)
	MarkPending(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error)
	Delete(ctx context.Context, username string, id uuid.UUID) error
	Search(ctx context.Context, username, query string, page, size int) (*domain.TaskPage, error)
	Stats(ctx context.Context, username string) (domain.TaskStats, error)
}

type taskServiceImpl struct {
	uow    store.UnitOfWork
	logger *slog.Logger
	opts   options
}

var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a new TaskService.
func NewTaskService(uow store.UnitOfWork, logger *slog.Logger, opts ...Option) TaskService {
	if uow == nil {
		panic("unit of work cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		uow:    uow,
		logger: logger.With(slog.String("component", "task_service")),
		opts:   newOptions(opts),
	}
}

type ownedFn func(ctx context.Context, tasks store.TaskStore, owner *domain.Account) error

// asOwner resolves username to its account and runs fn in the same unit of
// work. A username without an account is ErrUnauthenticated.
func (s *taskServiceImpl) asOwner(ctx context.Context, op, username string, fn ownedFn) error {
	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	err := s.uow.Do(ctx, func(ctx context.Context, st store.Stores) error {
		owner, err := st.Accounts.GetByUsername(ctx, username)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrUnauthenticated
			}
			return err
		}
		return fn(ctx, st.Tasks, owner)
	})
	if err == nil {
		return nil
	}

	err = NewServiceError(op, "task operation failed", err)
	log := logger.FromContextOrDefault(ctx, s.logger)
	var unexpected *ServiceError
	if errors.As(err, &unexpected) {
		log.Error("task operation failed", slog.String("operation", op), slog.String("error", err.Error()))
	} else {
		log.Debug("task operation rejected", slog.String("operation", op), slog.String("reason", err.Error()))
	}
	return err
}

// Recent implements TaskService.
func (s *taskServiceImpl) Recent(ctx context.Context, username string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := s.asOwner(ctx, "recent", username, func(ctx context.Context, ts store.TaskStore, owner *domain.Account) error {
		var err error
		tasks, err = ts.ListRecentIncomplete(ctx, owner.ID, domain.RecentTaskLimit)
		return err
	})
	return tasks, err
}

// List implements TaskService.
func (s *taskServiceImpl) List(ctx context.Context, username string, page, size int) (*domain.TaskPage, error) {
	req := domain.NewPageRequest(page, size)
	var result *domain.TaskPage
	err := s.asOwner(ctx, "list", username, func(ctx context.Context, ts store.TaskStore, owner *domain.Account) error {
		tasks, err := ts.ListByOwner(ctx, owner.ID, req)
		if err != nil {
			return err
		}
		total, err := ts.CountByOwner(ctx, owner.ID)
		if err != nil {
			return err
		}
		result = &domain.TaskPage{Tasks: tasks, Page: req.Page, Size: req.Size, TotalElements: total}
		return nil
	})
	return result, err
}

// Get implements TaskService.
func (s *taskServiceImpl) Get(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error) {
	var task *domain.Task
	err := s.asOwner(ctx, "get", username, func(ctx context.Context, ts store.TaskStore, owner *domain.Account) error {
		var err error
		task, err = ts.GetForOwner(ctx, id, owner.ID)
		return err
	})
	return task, err
}

// Create implements TaskService.
func (s *taskServiceImpl) Create(ctx context.Context, username string, in TaskInput) (*domain.Task, error) {
	var task *domain.Task
	err := s.asOwner(ctx, "create", username, func(ctx context.Context, ts store.TaskStore, owner *domain.Account) error {
		var err error
		task, err = domain.NewTask(owner.ID, in.Title, in.Description, s.opts.now())
		if err != nil {
			return err
		}
		return ts.Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update implements TaskService.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	username string,
	id uuid.UUID,
	in TaskInput,
) (*domain.Task, error) {
	return s.mutate(ctx, "update", username, id, func(task *domain.Task) error {
		return task.Update(in.Title, in.Description, s.opts.now())
	})
}

// MarkCompleted implements TaskService. Completing a completed task succeeds
// and leaves it completed.
func (s *taskServiceImpl) MarkCompleted(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error) {
	return s.mutate(ctx, "complete", username, id, func(task *domain.Task) error {
		task.MarkCompleted(s.opts.now())
		return nil
	})
}

// MarkPending implements TaskService.
func (s *taskServiceImpl) MarkPending(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error) {
	return s.mutate(ctx, "pending", username, id, func(task *domain.Task) error {
		task.MarkPending(s.opts.now())
		return nil
	})
}

// mutate loads an owned task, applies change and saves it.
func (s *taskServiceImpl) mutate(
	ctx context.Context,
	op, username string,
	id uuid.UUID,
	change func(*domain.Task) error,
) (*domain.Task, error) {
	var task *domain.Task
	err := s.asOwner(ctx, op, username, func(ctx context.Context, ts store.TaskStore, owner *domain.Account) error {
		var err error
		task, err = ts.GetForOwner(ctx, id, owner.ID)
		if err != nil {
			return err
		}
		if err := change(task); err != nil {
			return err
		}
		return ts.Update(ctx, task)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete implements TaskService.
func (s *taskServiceImpl) Delete(ctx context.Context, username string, id uuid.UUID) error {
	return s.asOwner(ctx, "delete", username, func(ctx context.Context, ts store.TaskStore, owner *domain.Account) error {
		return ts.Delete(ctx, id, owner.ID)
	})
}

// Search implements TaskService. A blank query is a validation error.
func (s *taskServiceImpl) Search(
	ctx context.Context,
	username, query string,
	page, size int,
) (*domain.TaskPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ValidationErrors{domain.NewValidationError("q", "is required", nil)}
	}

	req := domain.NewPageRequest(page, size)
	var result *domain.TaskPage
	err := s.asOwner(ctx, "search", username, func(ctx context.Context, ts store.TaskStore, owner *domain.Account) error {
		tasks, err := ts.Search(ctx, owner.ID, query, req)
		if err != nil {
			return err
		}
		total, err := ts.CountSearch(ctx, owner.ID, query)
		if err != nil {
			return err
		}
		result = &domain.TaskPage{Tasks: tasks, Page: req.Page, Size: req.Size, TotalElements: total}
		return nil
	})
	return result, err
}

// Stats implements TaskService. Both counts are read in one transaction so
// Completed + Incomplete == Total.
func (s *taskServiceImpl) Stats(ctx context.Context, username string) (domain.TaskStats, error) {
	var stats domain.TaskStats
	err := s.asOwner(ctx, "stats", username, func(ctx context.Context, ts store.TaskStore, owner *domain.Account) error {
		total, err := ts.CountByOwner(ctx, owner.ID)
		if err != nil {
			return err
		}
		incomplete, err := ts.CountIncompleteByOwner(ctx, owner.ID)
		if err != nil {
			return err
		}
		stats = domain.NewTaskStats(total, incomplete)
		return nil
	})
	return stats, err
}
