package mocks

import (
	"context"

	"github.com/phrazzld/todo-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
// Without custom functions it issues "token-for-<username>" and accepts only
// tokens of that form.
type MockTokenService struct {
	IssueTokenFn func(ctx context.Context, username string) (string, error)
	ParseTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when functions aren't explicitly defined
	Err error
}

var _ auth.TokenService = (*MockTokenService)(nil)

const mockTokenPrefix = "token-for-"

// IssueToken implements auth.TokenService.
func (m *MockTokenService) IssueToken(ctx context.Context, username string) (string, error) {
	if m.IssueTokenFn != nil {
		return m.IssueTokenFn(ctx, username)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return mockTokenPrefix + username, nil
}

// ParseToken implements auth.TokenService.
func (m *MockTokenService) ParseToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ParseTokenFn != nil {
		return m.ParseTokenFn(ctx, token)
	}
	if token == "" {
		return nil, auth.ErrMissingToken
	}
	if len(token) <= len(mockTokenPrefix) || token[:len(mockTokenPrefix)] != mockTokenPrefix {
		return nil, auth.ErrMalformedToken
	}
	return &auth.Claims{Subject: token[len(mockTokenPrefix):]}, nil
}

// ValidateToken implements auth.TokenService.
func (m *MockTokenService) ValidateToken(ctx context.Context, token, expectedSubject string) bool {
	claims, err := m.ParseToken(ctx, token)
	return err == nil && claims.Subject == expectedSubject
}

// ExtractUsername implements auth.TokenService.
func (m *MockTokenService) ExtractUsername(ctx context.Context, token string) string {
	claims, err := m.ParseToken(ctx, token)
	if err != nil {
		return ""
	}
	return claims.Subject
}
