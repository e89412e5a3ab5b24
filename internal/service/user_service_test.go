package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/store"
)

func TestDeleteAccount(t *testing.T) {
	t.Parallel()

	t.Run("clears funding legs before the user row", func(t *testing.T) {
		t.Parallel()

		f := newFakeStores()
		f.users.deleted = true
		uow, mock := newTestUnitOfWork(t, f)
		mock.ExpectBegin()
		mock.ExpectCommit()

		svc := NewUserService(uow, nil, nil, nil, testLogger())
		require.NoError(t, svc.DeleteAccount(context.Background(), 7))

		// Payments and saving transactions reference income and expense
		// rows, so they must be gone before the user delete cascades.
		assert.Equal(t, []string{
			"debt_payments.delete_all",
			"saving_transactions.delete_all",
			"users.delete",
		}, f.log.ops)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user rolls back", func(t *testing.T) {
		t.Parallel()

		f := newFakeStores()
		f.users.deleted = false
		uow, mock := newTestUnitOfWork(t, f)
		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := NewUserService(uow, nil, nil, nil, testLogger())
		err := svc.DeleteAccount(context.Background(), 99)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("leg deletion failure stops the user delete", func(t *testing.T) {
		t.Parallel()

		f := newFakeStores()
		f.debtPayments.deleteAllErr = assert.AnError
		uow, mock := newTestUnitOfWork(t, f)
		mock.ExpectBegin()
		mock.ExpectRollback()

		svc := NewUserService(uow, nil, nil, nil, testLogger())
		err := svc.DeleteAccount(context.Background(), 7)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, []string{"debt_payments.delete_all"}, f.log.ops)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
