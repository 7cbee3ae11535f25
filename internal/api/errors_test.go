package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        domain.ValidationErrors{domain.NewValidationError("title", "is required", nil)},
			wantStatus: http.StatusBadRequest,
			wantMsg:    MsgValidationFailed,
		},
		{"duplicate username", service.ErrDuplicateUsername, http.StatusBadRequest, MsgUsernameTaken},
		{"duplicate email", service.ErrDuplicateEmail, http.StatusBadRequest, MsgEmailTaken},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials},
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized, MsgInvalidToken},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, MsgInvalidToken},
		{"bad signature", auth.ErrInvalidSignature, http.StatusUnauthorized, MsgInvalidToken},
		{"malformed token", auth.ErrMalformedToken, http.StatusUnauthorized, MsgInvalidToken},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, MsgInvalidToken},
		{"task not found", service.ErrTaskNotFound, http.StatusNotFound, MsgTaskNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", service.ErrTaskNotFound), http.StatusNotFound, MsgTaskNotFound},
		{
			name:       "unexpected",
			err:        &service.ServiceError{Operation: "list", Message: "boom", Err: errors.New("pq: relation missing")},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIErrorBody(t *testing.T) {
	t.Run("validation fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/tasks", nil)
		handleAPIError(w, r, domain.ValidationErrors{
			domain.NewValidationError("title", "is required", nil),
			domain.NewValidationError("description", "must be at most 1000 characters", nil),
		})

		var body shared.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, MsgValidationFailed, body.Error)
		assert.Equal(t, "is required", body.Fields["title"])
		assert.Len(t, body.Fields, 2)
	})

	t.Run("internal detail is hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		handleAPIError(w, r, errors.New("SELECT * FROM accounts failed: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "SELECT")
		assert.NotContains(t, w.Body.String(), "accounts")
	})
}
