package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
)

// Auth event names.
const (
	AuthEventRegister = "register"
	AuthEventLogin    = "login"
)

// RegisterInput is the plaintext registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput is the plaintext login request.
type LoginInput struct {
	Username string
	Password string
}

// AuthResult is returned after a successful register or login.
type AuthResult struct {
	Token    string
	Username string
	Email    string
}

// AuthService exchanges credentials for bearer tokens.
type AuthService interface {
	// Register creates an account and returns a token for it.
	// Returns validation errors, ErrDuplicateUsername or ErrDuplicateEmail.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)

	// Login verifies credentials and returns a fresh token.
	// Returns ErrInvalidCredentials for any credential failure.
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
}

type authServiceImpl struct {
	uow    store.UnitOfWork
	hasher auth.PasswordHasher
	tokens auth.TokenService
	logger *slog.Logger
	opts   options

	dummyOnce sync.Once
	dummyHash string
}

var _ AuthService = (*authServiceImpl)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(
	uow store.UnitOfWork,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	logger *slog.Logger,
	opts ...Option,
) AuthService {
	if uow == nil || hasher == nil || tokens == nil {
		panic("auth service dependencies cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authServiceImpl{
		uow:    uow,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With(slog.String("component", "auth_service")),
		opts:   newOptions(opts),
	}
}

// Register implements AuthService.
func (s *authServiceImpl) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateRegistration(in.Username, in.Email, in.Password); err != nil {
		s.opts.events.RecordAuthEvent(AuthEventRegister, "invalid")
		return nil, err
	}

	ctx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	var account *domain.Account
	err := s.uow.Do(ctx, func(ctx context.Context, st store.Stores) error {
		taken, err := st.Accounts.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateUsername
		}

		taken, err = st.Accounts.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}

		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return err
		}

		account, err = domain.NewAccount(in.Username, in.Email, hash, s.opts.now())
		if err != nil {
			return err
		}
		return st.Accounts.Create(ctx, account)
	})
	if err != nil {
		err = NewServiceError("register", "failed to create account", err)
		if errors.Is(err, ErrDuplicateIdentity) {
			log.Debug("registration rejected: identity already taken", slog.String("reason", err.Error()))
			s.opts.events.RecordAuthEvent(AuthEventRegister, "duplicate")
		} else {
			log.Error("registration failed", slog.String("error", err.Error()))
			s.opts.events.RecordAuthEvent(AuthEventRegister, "error")
		}
		return nil, err
	}

	token, err := s.tokens.IssueToken(ctx, account.Username)
	if err != nil {
		s.opts.events.RecordAuthEvent(AuthEventRegister, "error")
		return nil, NewServiceError("register", "failed to issue token", err)
	}

	log.Info("account registered", slog.String("account_id", account.ID.String()))
	s.opts.events.RecordAuthEvent(AuthEventRegister, "success")
	return &AuthResult{Token: token, Username: account.Username, Email: account.Email}, nil
}

// Login implements AuthService.
func (s *authServiceImpl) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if in.Username == "" || in.Password == "" {
		s.opts.events.RecordAuthEvent(AuthEventLogin, "unauthorized")
		return nil, ErrInvalidCredentials
	}

	queryCtx, cancel := s.opts.withTimeout(ctx)
	defer cancel()

	var account *domain.Account
	err := s.uow.Do(queryCtx, func(ctx context.Context, st store.Stores) error {
		var err error
		account, err = st.Accounts.GetByUsername(ctx, in.Username)
		return err
	})
	if err != nil && !errors.Is(err, store.ErrAccountNotFound) {
		log.Error("login lookup failed", slog.String("error", err.Error()))
		s.opts.events.RecordAuthEvent(AuthEventLogin, "error")
		return nil, NewServiceError("login", "failed to load account", err)
	}

	if account == nil {
		// Spend the same bcrypt work as a real comparison.
		_ = s.hasher.Compare(s.timingHash(), in.Password)
		log.Debug("login rejected: unknown username")
		s.opts.events.RecordAuthEvent(AuthEventLogin, "unauthorized")
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(account.PasswordHash, in.Password); err != nil {
		log.Debug("login rejected: password mismatch", slog.String("account_id", account.ID.String()))
		s.opts.events.RecordAuthEvent(AuthEventLogin, "unauthorized")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(ctx, account.Username)
	if err != nil {
		s.opts.events.RecordAuthEvent(AuthEventLogin, "error")
		return nil, NewServiceError("login", "failed to issue token", err)
	}

	log.Debug("login succeeded", slog.String("account_id", account.ID.String()))
	s.opts.events.RecordAuthEvent(AuthEventLogin, "success")
	return &AuthResult{Token: token, Username: account.Username, Email: account.Email}, nil
}

// timingHash is a hash of a random-looking constant, compared against when
// the username is unknown.
func (s *authServiceImpl) timingHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("timing-equalization-placeholder")
	})
	return s.dummyHash
}
