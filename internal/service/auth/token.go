package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
)

// MinSecretLength is the shortest signing secret accepted, in bytes.
const MinSecretLength = 32

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	// IssueToken returns a token with sub=username, iat=now and exp=now+TTL.
	IssueToken(ctx context.Context, username string) (string, error)

	// ParseToken checks structure, signature and expiry in that order and
	// returns the claims of a valid token. Failures are ErrMalformedToken,
	// ErrInvalidSignature or ErrExpiredToken.
	ParseToken(ctx context.Context, token string) (*Claims, error)

	// ValidateToken reports whether token is valid and was issued for expectedSubject.
	ValidateToken(ctx context.Context, token, expectedSubject string) bool

	// ExtractUsername returns the subject of a valid token, or "" for any failure.
	ExtractUsername(ctx context.Context, token string) string
}

// Claims is the verified claim set of a token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// hmacTokenService implements TokenService with HMAC-SHA256.
type hmacTokenService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time // Injectable for testing
}

var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService from the auth configuration.
// The secret is copied; later changes to cfg do not affect the service.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	return NewTokenServiceWithClock(cfg, time.Now)
}

// NewTokenServiceWithClock is NewTokenService with an explicit clock.
func NewTokenServiceWithClock(cfg config.AuthConfig, now func() time.Time) (TokenService, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if cfg.TokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %d minutes", cfg.TokenLifetimeMinutes)
	}
	if now == nil {
		now = time.Now
	}
	return &hmacTokenService{
		signingKey: []byte(cfg.JWTSecret),
		lifetime:   cfg.TokenLifetime(),
		timeFunc:   now,
	}, nil
}

// IssueToken implements TokenService.
func (s *hmacTokenService) IssueToken(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", fmt.Errorf("%w: empty subject", ErrMalformedToken)
	}

	now := s.timeFunc()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("signing_method", jwt.SigningMethodHS256.Name))
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

// ParseToken implements TokenService.
func (s *hmacTokenService) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}
	// The base64 decoder skips CR and LF, so they must be rejected up front.
	if strings.ContainsFunc(tokenString, unicode.IsSpace) {
		log.Debug("token validation failed", slog.String("reason", "whitespace in token"))
		return nil, ErrMalformedToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(token *jwt.Token) (any, error) {
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(s.timeFunc),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		mapped := classifyParseError(err)
		log.Debug("token validation failed",
			slog.String("reason", mapped.Error()),
			slog.String("error", err.Error()))
		return nil, mapped
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		log.Debug("token validation failed", slog.String("reason", "missing subject"))
		return nil, ErrMalformedToken
	}

	result := &Claims{
		Subject:   claims.Subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}

// classifyParseError maps jwt errors onto this package's sentinels. A
// signature failure wins over expiry because the library verifies the
// signature before it looks at any claim.
func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	default:
		return ErrMalformedToken
	}
}

// ValidateToken implements TokenService.
func (s *hmacTokenService) ValidateToken(ctx context.Context, token, expectedSubject string) bool {
	claims, err := s.ParseToken(ctx, token)
	if err != nil {
		return false
	}
	return expectedSubject != "" && claims.Subject == expectedSubject
}

// ExtractUsername implements TokenService.
func (s *hmacTokenService) ExtractUsername(ctx context.Context, token string) string {
	claims, err := s.ParseToken(ctx, token)
	if err != nil {
		return ""
	}
	return claims.Subject
}
