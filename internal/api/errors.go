package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
)

// Client-facing error messages.
const (
	MsgValidationFailed   = "Validation failed"
	MsgUsernameTaken      = "Username is already taken"
	MsgEmailTaken         = "Email is already registered"
	MsgInvalidCredentials = "Invalid username or password"
	MsgInvalidToken       = "Invalid or expired token"
	MsgTaskNotFound       = "Task not found"
	MsgInvalidRequest     = "Invalid request format"
	MsgInternal           = "An unexpected error occurred"
)

func isUnauthenticated(err error) bool {
	return errors.Is(err, service.ErrUnauthenticated) ||
		errors.Is(err, auth.ErrMalformedToken) ||
		errors.Is(err, auth.ErrInvalidSignature) ||
		errors.Is(err, auth.ErrExpiredToken) ||
		errors.Is(err, auth.ErrMissingToken)
}

// MapErrorToStatusCode maps internal errors to HTTP status codes so internal
// error types never leak to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrDuplicateIdentity):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), isUnauthenticated(err):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return MsgInternal
	case errors.Is(err, domain.ErrValidation):
		return MsgValidationFailed
	case errors.Is(err, service.ErrDuplicateUsername):
		return MsgUsernameTaken
	case errors.Is(err, service.ErrDuplicateEmail):
		return MsgEmailTaken
	case errors.Is(err, service.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case isUnauthenticated(err):
		return MsgInvalidToken
	case errors.Is(err, service.ErrTaskNotFound):
		return MsgTaskNotFound
	default:
		return MsgInternal
	}
}

// handleAPIError writes the response for err using the mapping above.
// Validation errors carry their per-field messages.
func handleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	var verrs domain.ValidationErrors
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verrs):
		opts = append(opts, shared.WithFields(verrs.Fields()))
	case errors.As(err, &verr):
		opts = append(opts, shared.WithFields(map[string]string{verr.Field: verr.Message}))
	}
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
