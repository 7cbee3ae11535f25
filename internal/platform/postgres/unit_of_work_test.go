package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWorkDo(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		db, mock := newMockDB(t)
		uow := NewUnitOfWork(db, nil)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectCommit()

		err := uow.Do(ctx, func(ctx context.Context, s store.Stores) error {
			require.NotNil(t, s.Accounts)
			require.NotNil(t, s.Tasks)
			_, err := s.Accounts.ExistsByUsername(ctx, "alice")
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		uow := NewUnitOfWork(db, nil)

		mock.ExpectBegin()
		mock.ExpectRollback()

		want := errors.New("nope")
		err := uow.Do(ctx, func(ctx context.Context, s store.Stores) error { return want })
		assert.ErrorIs(t, err, want)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
