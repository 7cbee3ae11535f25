package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create saves a new account.
	// Returns ErrUsernameExists or ErrEmailExists when a unique constraint
	// is violated, including when a concurrent registration won the race.
	Create(ctx context.Context, account *domain.Account) error

	// GetByUsername retrieves an account by its exact username.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// ExistsByUsername reports whether an account with the username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether an account with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
