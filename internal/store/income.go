package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// IncomeStore defines the interface for income data persistence.
type IncomeStore interface {
	// Save persists a new income row, assigns the generated id and
	// returns it.
	Save(ctx context.Context, income *domain.Income) (int64, error)

	// GetByID retrieves an income by ID.
	// Returns ErrIncomeNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Income, error)

	// GetByIDAndUserID retrieves an income only when it belongs to the
	// given user. Mismatched ownership yields ErrIncomeNotFound.
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Income, error)

	// GetAllByUserID lists the user's incomes, newest received date
	// first.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Income, error)

	// GetAllByUserIDAndDateRange lists the user's incomes whose received
	// date falls within [from, to], newest first.
	GetAllByUserIDAndDateRange(ctx context.Context, userID int64, from, to time.Time) ([]*domain.Income, error)

	// CalculateTotalByUserID sums the amounts of all incomes for the
	// user. An empty ledger sums to zero.
	CalculateTotalByUserID(ctx context.Context, userID int64) (float64, error)

	// Update persists changes to an existing income.
	// Returns ErrIncomeNotFound if the row no longer exists.
	Update(ctx context.Context, income *domain.Income) error

	// Delete removes an income by ID. Returns false when no row matched.
	// The delete fails with a StoreError when a saving transaction still
	// references the row.
	Delete(ctx context.Context, id int64) (bool, error)

	// WithTx returns a new IncomeStore bound to the transaction.
	WithTx(tx *sql.Tx) IncomeStore
}
