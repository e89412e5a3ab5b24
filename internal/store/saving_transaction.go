package store

import (
	"context"
	"database/sql"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// SavingTransactionStore defines the interface for saving transaction
// persistence.
type SavingTransactionStore interface {
	// Save persists a new saving transaction, assigns the generated id
	// and returns it.
	Save(ctx context.Context, txn *domain.SavingTransaction) (int64, error)

	// GetByID retrieves a saving transaction by ID.
	// Returns ErrSavingTransactionNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.SavingTransaction, error)

	// GetAllByGoalID lists every transaction recorded against a goal,
	// oldest first.
	GetAllByGoalID(ctx context.Context, goalID int64) ([]*domain.SavingTransaction, error)

	// GetAllByUserID lists every saving transaction the user has
	// recorded.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.SavingTransaction, error)

	// ExistsByIncomeID reports whether any saving transaction references
	// the income leg.
	ExistsByIncomeID(ctx context.Context, incomeID int64) (bool, error)

	// ExistsByExpenseID reports whether any saving transaction references
	// the expense leg.
	ExistsByExpenseID(ctx context.Context, expenseID int64) (bool, error)

	// CalculateTotalDepositsByUserID sums the amounts of the user's
	// deposit-type transactions across all goals.
	CalculateTotalDepositsByUserID(ctx context.Context, userID int64) (float64, error)

	// CalculateGoalBalance returns deposits minus withdrawals for one
	// goal. An empty history nets to zero.
	CalculateGoalBalance(ctx context.Context, goalID int64) (float64, error)

	// Delete removes a saving transaction by ID. Returns false when no
	// row matched.
	Delete(ctx context.Context, id int64) (bool, error)

	// DeleteAllByUserID removes every saving transaction the user has
	// recorded and returns how many rows went away. Account deletion
	// clears transactions before the owning rows so the leg constraints
	// never see a dangling reference mid-cascade.
	DeleteAllByUserID(ctx context.Context, userID int64) (int64, error)

	// WithTx returns a new SavingTransactionStore bound to the
	// transaction.
	WithTx(tx *sql.Tx) SavingTransactionStore
}
