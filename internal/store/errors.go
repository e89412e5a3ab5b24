package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g. a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails a storage-level
	// constraint, such as a missing foreign key target.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction fails to commit
	// or when an operation inside WithTransaction fails and is rolled
	// back.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors.

	ErrUserNotFound              = fmt.Errorf("%w: user", ErrNotFound)
	ErrCategoryNotFound          = fmt.Errorf("%w: category", ErrNotFound)
	ErrDebtNotFound              = fmt.Errorf("%w: debt", ErrNotFound)
	ErrIncomeNotFound            = fmt.Errorf("%w: income", ErrNotFound)
	ErrExpenseNotFound           = fmt.Errorf("%w: expense", ErrNotFound)
	ErrDebtPaymentNotFound       = fmt.Errorf("%w: debt payment", ErrNotFound)
	ErrSavingGoalNotFound        = fmt.Errorf("%w: saving goal", ErrNotFound)
	ErrSavingTransactionNotFound = fmt.Errorf("%w: saving transaction", ErrNotFound)

	// Entity-specific "duplicate" errors.

	// ErrEmailExists indicates that a user with the given email already
	// exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrCategoryNameExists indicates that the user already has a
	// category with the given name.
	ErrCategoryNameExists = fmt.Errorf("%w: category name", ErrDuplicate)

	// ErrGoalNameExists indicates that the user already has a saving
	// goal with the given name.
	ErrGoalNameExists = fmt.Errorf("%w: saving goal name", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Entity    string // The entity type (e.g. "debt", "income")
	Operation string // The operation that failed (e.g. "save", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation on %s failed: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity,
// operation, message and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: operation, Message: message, Err: err}
}

// TransactionError wraps any failure escaping a WithTransaction scope
// after rollback. The original failure stays reachable through Unwrap, so
// callers can still classify domain or policy errors with errors.Is,
// while errors.Is(err, ErrTransactionFailed) identifies the rolled-back
// scope itself.
type TransactionError struct {
	Err error
}

// Error implements the error interface for TransactionError.
func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed: %v", e.Err)
}

// Unwrap returns the original failure.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// Is marks the error as an ErrTransactionFailed for errors.Is.
func (e *TransactionError) Is(target error) bool {
	return target == ErrTransactionFailed
}
