package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task field limits.
const (
	TitleMaxLength       = 255
	DescriptionMaxLength = 1000
)

// Task is a to-do item owned by exactly one account.
type Task struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates an incomplete task owned by ownerID.
func NewTask(ownerID uuid.UUID, title, description string, now time.Time) (*Task, error) {
	now = now.UTC()
	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate checks the task fields.
func (t *Task) Validate() error {
	var errs ValidationErrors
	if t.ID == uuid.Nil {
		errs = append(errs, NewValidationError("id", "is required", ErrInvalidID))
	}
	if t.OwnerID == uuid.Nil {
		errs = append(errs, NewValidationError("owner_id", "is required", ErrInvalidID))
	}
	errs = append(errs, ValidateTaskContent(t.Title, t.Description)...)
	return errs.orNil()
}

// ValidateTaskContent checks the user-editable fields of a task.
func ValidateTaskContent(title, description string) ValidationErrors {
	var errs ValidationErrors
	switch {
	case strings.TrimSpace(title) == "":
		errs = append(errs, NewValidationError("title", "is required", nil))
	case utf8.RuneCountInString(title) > TitleMaxLength:
		errs = append(errs, NewValidationError("title", "must be at most 255 characters", nil))
	}
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		errs = append(errs, NewValidationError("description", "must be at most 1000 characters", nil))
	}
	return errs
}

// Update replaces title and description. The task is left untouched when
// the new content is invalid.
func (t *Task) Update(title, description string, now time.Time) error {
	if err := ValidateTaskContent(title, description).orNil(); err != nil {
		return err
	}
	t.Title = title
	t.Description = description
	t.UpdatedAt = now.UTC()
	return nil
}

// MarkCompleted sets the task as done. Calling it on a completed task only
// refreshes UpdatedAt.
func (t *Task) MarkCompleted(now time.Time) {
	t.Completed = true
	t.UpdatedAt = now.UTC()
}

// MarkPending sets the task back to not done.
func (t *Task) MarkPending(now time.Time) {
	t.Completed = false
	t.UpdatedAt = now.UTC()
}

// TaskStats summarizes one account's tasks.
type TaskStats struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Incomplete int64 `json:"incomplete"`
}

// NewTaskStats derives the completed count so Total == Completed + Incomplete always holds.
func NewTaskStats(total, incomplete int64) TaskStats {
	return TaskStats{
		Total:      total,
		Completed:  total - incomplete,
		Incomplete: incomplete,
	}
}
