package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	account, err := NewAccount("alice", "a@x.com", "$2a$10$hash", now)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, "a@x.com", account.Email)
	assert.Equal(t, "$2a$10$hash", account.PasswordHash)
	assert.Equal(t, now, account.CreatedAt)
	assert.Equal(t, now, account.UpdatedAt)
}

func TestNewAccountRequiresHash(t *testing.T) {
	_, err := NewAccount("alice", "a@x.com", "", time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"password_hash"}, verrs.FieldNames())
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		wantFields []string
	}{
		{name: "valid", username: "alice", email: "a@x.com", password: "secret1"},
		{name: "blank username", username: "   ", email: "a@x.com", password: "secret1", wantFields: []string{"username"}},
		{name: "short username", username: "al", email: "a@x.com", password: "secret1", wantFields: []string{"username"}},
		{name: "long username", username: strings.Repeat("a", 51), email: "a@x.com", password: "secret1", wantFields: []string{"username"}},
		{name: "bad email", username: "alice", email: "not-an-email", password: "secret1", wantFields: []string{"email"}},
		{name: "long email", username: "alice", email: strings.Repeat("a", 95) + "@x.com", password: "secret1", wantFields: []string{"email"}},
		{name: "short password", username: "alice", email: "a@x.com", password: "12345", wantFields: []string{"password"}},
		{name: "long password", username: "alice", email: "a@x.com", password: strings.Repeat("p", 73), wantFields: []string{"password"}},
		{name: "everything wrong", username: "", email: "", password: "", wantFields: []string{"email", "password", "username"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRegistration(tc.username, tc.email, tc.password)
			if len(tc.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tc.wantFields, verrs.FieldNames())
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	err := ValidationErrors{
		NewValidationError("title", "is required", nil),
		NewValidationError("description", "must be at most 1000 characters", nil),
	}

	assert.Equal(t, "validation failed: title is required; description must be at most 1000 characters", err.Error())
	assert.Equal(t, map[string]string{
		"title":       "is required",
		"description": "must be at most 1000 characters",
	}, err.Fields())
}
