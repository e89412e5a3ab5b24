package store

import (
	"context"
	"database/sql"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// SavingGoalStore defines the interface for saving goal persistence.
type SavingGoalStore interface {
	// Save persists a new goal, assigns the generated id and returns it.
	// Returns ErrGoalNameExists when (name, user) is taken.
	Save(ctx context.Context, goal *domain.SavingGoal) (int64, error)

	// GetByID retrieves a goal by ID.
	// Returns ErrSavingGoalNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.SavingGoal, error)

	// GetByIDAndUserID retrieves a goal only when it belongs to the
	// given user. Mismatched ownership yields ErrSavingGoalNotFound.
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.SavingGoal, error)

	// GetByIDAndUserIDForUpdate behaves like GetByIDAndUserID but locks
	// the row for the remainder of the enclosing transaction. Must only
	// be called on a transaction-bound store.
	GetByIDAndUserIDForUpdate(ctx context.Context, id, userID int64) (*domain.SavingGoal, error)

	// GetByNameAndUserID retrieves a goal by its per-user natural key.
	GetByNameAndUserID(ctx context.Context, name string, userID int64) (*domain.SavingGoal, error)

	// GetAllByUserID lists the user's goals, nearest target date first.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.SavingGoal, error)

	// Update persists changes to an existing goal.
	// Returns ErrSavingGoalNotFound if the row no longer exists.
	Update(ctx context.Context, goal *domain.SavingGoal) error

	// Delete removes a goal by ID. Returns false when no row matched.
	Delete(ctx context.Context, id int64) (bool, error)

	// WithTx returns a new SavingGoalStore bound to the transaction.
	WithTx(tx *sql.Tx) SavingGoalStore
}
