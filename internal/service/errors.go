package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps each of them to one status code and one safe message.
var (
	// ErrDuplicateIdentity is the parent of the duplicate username/email errors.
	ErrDuplicateIdentity = errors.New("identity already registered")

	// ErrDuplicateUsername indicates the requested username is taken.
	ErrDuplicateUsername = fmt.Errorf("%w: username is already taken", ErrDuplicateIdentity)

	// ErrDuplicateEmail indicates the requested email is already registered.
	ErrDuplicateEmail = fmt.Errorf("%w: email is already registered", ErrDuplicateIdentity)

	// ErrInvalidCredentials is returned for an unknown username and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthenticated indicates the caller's identity could not be resolved,
	// e.g. a valid token whose account no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrTaskNotFound indicates the task does not exist or is owned by another account.
	ErrTaskNotFound = errors.New("task not found")
)

// ServiceError wraps an unexpected failure with the operation that produced it.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError translates err for callers of the service package.
// Known sentinels and validation errors are returned as-is, store-level
// sentinels are mapped to their service equivalents, and everything else is
// wrapped in a ServiceError.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, ErrDuplicateIdentity),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated):
		return err
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, store.ErrUsernameExists):
		return ErrDuplicateUsername
	case errors.Is(err, store.ErrEmailExists):
		return ErrDuplicateEmail
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
