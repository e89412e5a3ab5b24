package store

import (
	"context"
	"database/sql"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// DebtPaymentStore defines the interface for debt payment persistence.
type DebtPaymentStore interface {
	// Save persists a new debt payment, assigns the generated id and
	// returns it.
	Save(ctx context.Context, payment *domain.DebtPayment) (int64, error)

	// GetByID retrieves a debt payment by ID.
	// Returns ErrDebtPaymentNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.DebtPayment, error)

	// GetAllByDebtID lists every payment recorded against a debt, oldest
	// first.
	GetAllByDebtID(ctx context.Context, debtID int64) ([]*domain.DebtPayment, error)

	// GetAllByUserID lists every payment the user has recorded.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.DebtPayment, error)

	// ExistsByIncomeID reports whether any payment references the
	// income leg.
	ExistsByIncomeID(ctx context.Context, incomeID int64) (bool, error)

	// ExistsByExpenseID reports whether any payment references the
	// expense leg.
	ExistsByExpenseID(ctx context.Context, expenseID int64) (bool, error)

	// CalculateTotalByUserID sums the expense-leg amounts of the user's
	// debt payments. An empty ledger sums to zero.
	CalculateTotalByUserID(ctx context.Context, userID int64) (float64, error)

	// CalculateTotalByDebtID sums the expense-leg amounts recorded
	// against a single debt.
	CalculateTotalByDebtID(ctx context.Context, debtID int64) (float64, error)

	// Delete removes a debt payment by ID. Returns false when no row
	// matched.
	Delete(ctx context.Context, id int64) (bool, error)

	// DeleteAllByUserID removes every payment the user has recorded and
	// returns how many rows went away. Account deletion clears payments
	// before the owning rows so the leg constraints never see a dangling
	// reference mid-cascade.
	DeleteAllByUserID(ctx context.Context, userID int64) (int64, error)

	// WithTx returns a new DebtPaymentStore bound to the transaction.
	WithTx(tx *sql.Tx) DebtPaymentStore
}
