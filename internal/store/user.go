package store

import (
	"context"
	"database/sql"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Save persists a new user, assigns the generated id to user.ID and
	// returns it. Returns ErrEmailExists if the email is already taken.
	Save(ctx context.Context, user *domain.User) (int64, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies an existing user's profile fields and password
	// hash. Returns ErrUserNotFound if the row vanished between fetch
	// and write, ErrEmailExists when updating to a taken email.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Returns false (and no error) when no
	// row matched. Owned rows cascade at the schema level.
	Delete(ctx context.Context, id int64) (bool, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) UserStore
}
