package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestAccount(t *testing.T) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount("alice", "alice@example.com", "$2a$10$abcdefghijklmnopqrstuv", fixedNow)
	require.NoError(t, err)
	return account
}

func TestNewPostgresAccountStorePanicsOnNilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresAccountStore(nil, nil) })
}

func TestAccountStoreCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)
		account := newTestAccount(t)

		mock.ExpectExec("INSERT INTO accounts").
			WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", account.PasswordHash, fixedNow, fixedNow).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(ctx, account))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectExec("INSERT INTO accounts").
			WillReturnError(newPgError(uniqueViolationCode, accountsUsernameConstraint))

		err := s.Create(ctx, newTestAccount(t))
		assert.ErrorIs(t, err, store.ErrUsernameExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectExec("INSERT INTO accounts").
			WillReturnError(newPgError(uniqueViolationCode, accountsEmailConstraint))

		err := s.Create(ctx, newTestAccount(t))
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid account never reaches the database", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		account := newTestAccount(t)
		account.PasswordHash = ""

		assert.ErrorIs(t, s.Create(ctx, account), domain.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)
		cause := errors.New("connection reset")

		mock.ExpectExec("INSERT INTO accounts").WillReturnError(cause)

		err := s.Create(ctx, newTestAccount(t))
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "create", storeErr.Operation)
		assert.ErrorIs(t, err, cause)
	})
}

func TestAccountStoreGetByUsername(t *testing.T) {
	ctx := context.Background()
	account := newTestAccount(t)
	columns := []string{"id", "username", "email", "password_hash", "created_at", "updated_at"}

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery(`FROM accounts WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				account.ID.String(), account.Username, account.Email, account.PasswordHash, fixedNow, fixedNow,
			))

		got, err := s.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
		assert.Equal(t, account.PasswordHash, got.PasswordHash)
		assert.Equal(t, fixedNow, got.CreatedAt)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresAccountStore(db, nil)

		mock.ExpectQuery(`FROM accounts WHERE username = \$1`).
			WithArgs("bob").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := s.GetByUsername(ctx, "bob")
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})
}

func TestAccountStoreExists(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	s := NewPostgresAccountStore(db, nil)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM accounts WHERE username = \$1\)`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM accounts WHERE email = \$1\)`).
		WithArgs("new@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := s.ExistsByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.ExistsByEmail(ctx, "new@example.com")
	require.NoError(t, err)
	assert.False(t, taken)

	assert.NoError(t, mock.ExpectationsWereMet())
}
