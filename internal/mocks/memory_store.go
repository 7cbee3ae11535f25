package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

type memoryData struct {
	accounts map[uuid.UUID]domain.Account
	tasks    map[uuid.UUID]domain.Task
}

func (d memoryData) clone() memoryData {
	c := memoryData{
		accounts: make(map[uuid.UUID]domain.Account, len(d.accounts)),
		tasks:    make(map[uuid.UUID]domain.Task, len(d.tasks)),
	}
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.tasks {
		c.tasks[k] = v
	}
	return c
}

// MemoryUnitOfWork implements store.UnitOfWork over in-memory maps.
// Units of work are serialized, and a failed one leaves no trace.
type MemoryUnitOfWork struct {
	mu   sync.Mutex
	data memoryData

	// DoErr, when set, is returned by Do without running fn.
	DoErr error
	// Calls counts Do invocations.
	Calls int
}

var _ store.UnitOfWork = (*MemoryUnitOfWork)(nil)

// NewMemoryUnitOfWork creates an empty in-memory store.
func NewMemoryUnitOfWork() *MemoryUnitOfWork {
	return &MemoryUnitOfWork{data: memoryData{
		accounts: map[uuid.UUID]domain.Account{},
		tasks:    map[uuid.UUID]domain.Task{},
	}}
}

// Do implements store.UnitOfWork.
func (u *MemoryUnitOfWork) Do(ctx context.Context, fn store.UnitOfWorkFn) (err error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.Calls++
	if u.DoErr != nil {
		return u.DoErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := u.data.clone()
	defer func() {
		if p := recover(); p != nil {
			u.data = snapshot
			panic(p)
		}
		if err != nil {
			u.data = snapshot
		}
	}()

	return fn(ctx, store.Stores{
		Accounts: &memoryAccountStore{data: &u.data},
		Tasks:    &memoryTaskStore{data: &u.data},
	})
}

// AccountCount returns the number of stored accounts.
func (u *MemoryUnitOfWork) AccountCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.data.accounts)
}

// Account returns a copy of the stored account with username.
func (u *MemoryUnitOfWork) Account(username string) (domain.Account, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, a := range u.data.accounts {
		if a.Username == username {
			return a, true
		}
	}
	return domain.Account{}, false
}

// TaskCount returns the number of stored tasks across all owners.
func (u *MemoryUnitOfWork) TaskCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.data.tasks)
}

type memoryAccountStore struct {
	data *memoryData
}

func (s *memoryAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	for _, a := range s.data.accounts {
		if a.Username == account.Username {
			return store.ErrUsernameExists
		}
		if a.Email == account.Email {
			return store.ErrEmailExists
		}
	}
	s.data.accounts[account.ID] = *account
	return nil
}

func (s *memoryAccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	for _, a := range s.data.accounts {
		if a.Username == username {
			a := a
			return &a, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

func (s *memoryAccountStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.GetByUsername(ctx, username)
	return err == nil, nil
}

func (s *memoryAccountStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, a := range s.data.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memoryTaskStore struct {
	data *memoryData
}

func (s *memoryTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	if _, ok := s.data.accounts[task.OwnerID]; !ok {
		return store.ErrInvalidEntity
	}
	if _, ok := s.data.tasks[task.ID]; ok {
		return store.ErrDuplicate
	}
	s.data.tasks[task.ID] = *task
	return nil
}

func (s *memoryTaskStore) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	t, ok := s.data.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

func (s *memoryTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	existing, ok := s.data.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return store.ErrTaskNotFound
	}
	existing.Title = task.Title
	existing.Description = task.Description
	existing.Completed = task.Completed
	existing.UpdatedAt = task.UpdatedAt
	s.data.tasks[task.ID] = existing
	return nil
}

func (s *memoryTaskStore) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	t, ok := s.data.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(s.data.tasks, id)
	return nil
}

func (s *memoryTaskStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	page domain.PageRequest,
) ([]*domain.Task, error) {
	return paginate(s.filter(ownerID, func(domain.Task) bool { return true }), page), nil
}

func (s *memoryTaskStore) ListRecentIncomplete(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Task, error) {
	tasks := s.filter(ownerID, func(t domain.Task) bool { return !t.Completed })
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (s *memoryTaskStore) Search(
	ctx context.Context,
	ownerID uuid.UUID,
	query string,
	page domain.PageRequest,
) ([]*domain.Task, error) {
	return paginate(s.filter(ownerID, matches(query)), page), nil
}

func (s *memoryTaskStore) CountSearch(ctx context.Context, ownerID uuid.UUID, query string) (int64, error) {
	return int64(len(s.filter(ownerID, matches(query)))), nil
}

func (s *memoryTaskStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return int64(len(s.filter(ownerID, func(domain.Task) bool { return true }))), nil
}

func (s *memoryTaskStore) CountIncompleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return int64(len(s.filter(ownerID, func(t domain.Task) bool { return !t.Completed }))), nil
}

// filter returns copies of the owner's tasks that satisfy keep, newest first.
func (s *memoryTaskStore) filter(ownerID uuid.UUID, keep func(domain.Task) bool) []*domain.Task {
	tasks := make([]*domain.Task, 0)
	for _, t := range s.data.tasks {
		if t.OwnerID == ownerID && keep(t) {
			t := t
			tasks = append(tasks, &t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID.String() < tasks[j].ID.String()
	})
	return tasks
}

func matches(query string) func(domain.Task) bool {
	q := strings.ToLower(query)
	return func(t domain.Task) bool {
		return strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q)
	}
}

func paginate(tasks []*domain.Task, page domain.PageRequest) []*domain.Task {
	start := page.Offset()
	if start >= len(tasks) {
		return []*domain.Task{}
	}
	end := start + page.Size
	if end > len(tasks) {
		end = len(tasks)
	}
	return tasks[start:end]
}
