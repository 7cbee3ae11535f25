// Package middleware contains the HTTP middleware placed in front of the handlers.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service/auth"
)

// Client-facing messages for rejected requests.
const (
	MsgAuthHeaderRequired = "Authorization header required"
	MsgInvalidToken       = "Invalid or expired token"
)

// AuthMiddleware authenticates bearer tokens before protected handlers run.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	if tokens == nil {
		panic("token service cannot be nil")
	}
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the bearer token in the Authorization header and
// stores its subject in the request context. Every token failure gets the same
// 401 response; the reason is only logged.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, MsgAuthHeaderRequired)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidToken,
				errors.New("authorization header is not a bearer token"))
			return
		}

		claims, err := m.tokens.ParseToken(r.Context(), token)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, MsgInvalidToken, err)
			return
		}

		ctx := shared.WithUsername(r.Context(), claims.Subject)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With("username", claims.Subject))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
