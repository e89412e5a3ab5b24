package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitySentinelsWrapCommonErrors(t *testing.T) {
	t.Parallel()

	notFound := []error{
		ErrUserNotFound,
		ErrCategoryNotFound,
		ErrDebtNotFound,
		ErrIncomeNotFound,
		ErrExpenseNotFound,
		ErrDebtPaymentNotFound,
		ErrSavingGoalNotFound,
		ErrSavingTransactionNotFound,
	}
	for _, err := range notFound {
		assert.ErrorIs(t, err, ErrNotFound, "%v", err)
		assert.True(t, IsNotFoundError(err))
		assert.False(t, IsDuplicateError(err))
	}

	duplicates := []error{ErrEmailExists, ErrCategoryNameExists, ErrGoalNameExists}
	for _, err := range duplicates {
		assert.ErrorIs(t, err, ErrDuplicate, "%v", err)
		assert.True(t, IsDuplicateError(err))
		assert.False(t, IsNotFoundError(err))
	}
}

func TestIsNotFoundErrorSeesThroughWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("loading debt 42: %w", ErrDebtNotFound)

	assert.True(t, IsNotFoundError(wrapped))
	assert.ErrorIs(t, wrapped, ErrDebtNotFound)
	assert.False(t, IsNotFoundError(errors.New("unrelated")))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	t.Run("formats with a wrapped error", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		err := NewStoreError("debt", "save", "insert failed", cause)

		assert.Equal(t, "save operation on debt failed: insert failed: connection reset", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("formats without a wrapped error", func(t *testing.T) {
		t.Parallel()

		err := NewStoreError("income", "update", "no rows affected", nil)

		assert.Equal(t, "update operation on income failed: no rows affected", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("preserves sentinel classification through wrapping", func(t *testing.T) {
		t.Parallel()

		err := NewStoreError("category", "get", "lookup failed", ErrCategoryNotFound)

		assert.True(t, IsNotFoundError(err))
	})
}

func TestTransactionError(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("saving expense: %w", ErrInvalidEntity)
	err := &TransactionError{Err: cause}

	t.Run("identifies as a failed transaction", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, err, ErrTransactionFailed)
	})

	t.Run("keeps the original failure reachable", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, err, ErrInvalidEntity)
		assert.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run("message includes the cause", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, err.Error(), "transaction failed")
		assert.Contains(t, err.Error(), "saving expense")
	})
}
