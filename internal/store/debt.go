package store

import (
	"context"
	"database/sql"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// DebtStore defines the interface for debt data persistence.
type DebtStore interface {
	// Save persists a new debt row, assigns the generated id and returns
	// it.
	Save(ctx context.Context, debt *domain.Debt) (int64, error)

	// GetByID retrieves a debt by ID.
	// Returns ErrDebtNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Debt, error)

	// GetByIDAndUserID retrieves a debt only when it belongs to the
	// given user. Mismatched ownership yields ErrDebtNotFound.
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Debt, error)

	// GetByIDAndUserIDForUpdate behaves like GetByIDAndUserID but locks
	// the row for the remainder of the enclosing transaction. Must only
	// be called on a transaction-bound store.
	GetByIDAndUserIDForUpdate(ctx context.Context, id, userID int64) (*domain.Debt, error)

	// GetAllByUserID lists the user's debts, nearest due date first.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Debt, error)

	// GetAllByUserIDAndStatus lists the user's debts in one status.
	GetAllByUserIDAndStatus(ctx context.Context, userID int64, status domain.DebtStatus) ([]*domain.Debt, error)

	// CalculateTotalPrincipalByUserID sums the principal of the user's
	// active debts. An empty ledger sums to zero.
	CalculateTotalPrincipalByUserID(ctx context.Context, userID int64) (float64, error)

	// Update persists changes to an existing debt.
	// Returns ErrDebtNotFound if the row no longer exists.
	Update(ctx context.Context, debt *domain.Debt) error

	// Delete removes a debt by ID. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)

	// WithTx returns a new DebtStore bound to the transaction.
	WithTx(tx *sql.Tx) DebtStore
}
