package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// ExpenseStore defines the interface for expense data persistence.
type ExpenseStore interface {
	// Save persists a new expense row, assigns the generated id and
	// returns it.
	Save(ctx context.Context, expense *domain.Expense) (int64, error)

	// GetByID retrieves an expense by ID.
	// Returns ErrExpenseNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Expense, error)

	// GetByIDAndUserID retrieves an expense only when it belongs to the
	// given user. Mismatched ownership yields ErrExpenseNotFound.
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Expense, error)

	// GetAllByUserID lists the user's expenses, newest paid date first.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Expense, error)

	// GetAllByUserIDAndDateRange lists the user's expenses whose paid
	// date falls within [from, to], newest first.
	GetAllByUserIDAndDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*domain.Expense, error)

	// CalculateTotalByUserID sums the amounts of all expenses for the
	// user. An empty ledger sums to zero.
	CalculateTotalByUserID(ctx context.Context, userID int64) (float64, error)

	// Update persists changes to an existing expense.
	// Returns ErrExpenseNotFound if the row no longer exists.
	Update(ctx context.Context, expense *domain.Expense) error

	// Delete removes an expense by ID. Returns false when no row
	// matched. The delete fails with a StoreError when a debt payment
	// still references the row.
	Delete(ctx context.Context, id int64) (bool, error)

	// WithTx returns a new ExpenseStore bound to the transaction.
	WithTx(tx *sql.Tx) ExpenseStore
}
