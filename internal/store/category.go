package store

import (
	"context"
	"database/sql"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Save persists a new category, assigns the generated id and returns
	// it. Returns ErrCategoryNameExists when (name, user) is taken.
	Save(ctx context.Context, category *domain.Category) (int64, error)

	// GetByID retrieves a category by ID.
	// Returns ErrCategoryNotFound if it does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Category, error)

	// GetByIDAndUserID retrieves a category only when it belongs to the
	// given user. A mismatched owner yields nil, ErrCategoryNotFound, so
	// ownership violations are indistinguishable from absence.
	GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Category, error)

	// GetByNameAndUserID retrieves a category by its per-user natural
	// key. Returns ErrCategoryNotFound if it does not exist.
	GetByNameAndUserID(ctx context.Context, name string, userID int64) (*domain.Category, error)

	// GetAllByUserID lists every category owned by the user.
	GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Category, error)

	// GetAllByUserIDAndType lists the user's categories of one type.
	GetAllByUserIDAndType(ctx context.Context, userID int64, categoryType domain.CategoryType) ([]*domain.Category, error)

	// IsInUse reports whether any income or expense row references the
	// category.
	IsInUse(ctx context.Context, id int64) (bool, error)

	// Update persists name/description changes.
	// Returns ErrCategoryNotFound if the row vanished between fetch and
	// write.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes a category by ID. Returns false (and no error) when
	// no row matched.
	Delete(ctx context.Context, id int64) (bool, error)

	// WithTx returns a new CategoryStore bound to the transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
