package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskService is a mock of service.TaskService for use with testify/mock.
type TestifyMockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*TestifyMockTaskService)(nil)

func taskArg(args mock.Arguments) (*domain.Task, error) {
	if t, ok := args.Get(0).(*domain.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func pageArg(args mock.Arguments) (*domain.TaskPage, error) {
	if p, ok := args.Get(0).(*domain.TaskPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

// Recent is a mock implementation of service.TaskService.Recent
func (m *TestifyMockTaskService) Recent(ctx context.Context, username string) ([]*domain.Task, error) {
	args := m.Called(ctx, username)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of service.TaskService.List
func (m *TestifyMockTaskService) List(ctx context.Context, username string, page, size int) (*domain.TaskPage, error) {
	return pageArg(m.Called(ctx, username, page, size))
}

// Get is a mock implementation of service.TaskService.Get
func (m *TestifyMockTaskService) Get(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error) {
	return taskArg(m.Called(ctx, username, id))
}

// Create is a mock implementation of service.TaskService.Create
func (m *TestifyMockTaskService) Create(ctx context.Context, username string, in service.TaskInput) (*domain.Task, error) {
	return taskArg(m.Called(ctx, username, in))
}

// Update is a mock implementation of service.TaskService.Update
func (m *TestifyMockTaskService) Update(
	ctx context.Context,
	username string,
	id uuid.UUID,
	in service.TaskInput,
) (*domain.Task, error) {
	return taskArg(m.Called(ctx, username, id, in))
}

// MarkCompleted is a mock implementation of service.TaskService.MarkCompleted
func (m *TestifyMockTaskService) MarkCompleted(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error) {
	return taskArg(m.Called(ctx, username, id))
}

// MarkPending is a mock implementation of service.TaskService.MarkPending
func (m *TestifyMockTaskService) MarkPending(ctx context.Context, username string, id uuid.UUID) (*domain.Task, error) {
	return taskArg(m.Called(ctx, username, id))
}

// Delete is a mock implementation of service.TaskService.Delete
func (m *TestifyMockTaskService) Delete(ctx context.Context, username string, id uuid.UUID) error {
	return m.Called(ctx, username, id).Error(0)
}

// Search is a mock implementation of service.TaskService.Search
func (m *TestifyMockTaskService) Search(
	ctx context.Context,
	username, query string,
	page, size int,
) (*domain.TaskPage, error) {
	return pageArg(m.Called(ctx, username, query, page, size))
}

// Stats is a mock implementation of service.TaskService.Stats
func (m *TestifyMockTaskService) Stats(ctx context.Context, username string) (domain.TaskStats, error) {
	args := m.Called(ctx, username)
	stats, _ := args.Get(0).(domain.TaskStats)
	return stats, args.Error(1)
}
