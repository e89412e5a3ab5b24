package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/platform/logger"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface. If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{
		db:     tx,
		logger: s.logger,
	}
}

const categoryColumns = `id, user_id, type, name, description, created_at`

// scanCategory scans a single category row in categoryColumns order.
func scanCategory(row interface{ Scan(...any) error }) (*domain.Category, error) {
	var c domain.Category
	var description sql.NullString
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Type,
		&c.Name,
		&description,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	return &c, nil
}

// Save implements store.CategoryStore.Save
func (s *PostgresCategoryStore) Save(ctx context.Context, category *domain.Category) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO categories (user_id, type, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		category.UserID,
		category.Type,
		category.Name,
		nullableString(category.Description),
	).Scan(&category.ID, &category.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate category name during save",
				slog.Int64("user_id", category.UserID),
				slog.String("name", category.Name))
			return 0, fmt.Errorf("%w: %v", store.ErrCategoryNameExists, err)
		}
		log.Error("failed to save category",
			slog.String("error", err.Error()),
			slog.Int64("user_id", category.UserID),
			slog.String("name", category.Name))
		return 0, MapError(err)
	}

	log.Info("category saved successfully",
		slog.Int64("category_id", category.ID),
		slog.Int64("user_id", category.UserID),
		slog.String("type", string(category.Type)))
	return category.ID, nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *PostgresCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.Int64("category_id", id))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by ID",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}

	return category, nil
}

// GetByIDAndUserID implements store.CategoryStore.GetByIDAndUserID
func (s *PostgresCategoryStore) GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND user_id = $2`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found for user",
				slog.Int64("category_id", id),
				slog.Int64("user_id", userID))
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by ID and user",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}

	return category, nil
}

// GetByNameAndUserID implements store.CategoryStore.GetByNameAndUserID
func (s *PostgresCategoryStore) GetByNameAndUserID(ctx context.Context, name string, userID int64) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1 AND user_id = $2`

	category, err := scanCategory(s.db.QueryRowContext(ctx, query, name, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		log.Error("failed to get category by name",
			slog.String("error", err.Error()),
			slog.String("name", name),
			slog.Int64("user_id", userID))
		return nil, MapError(err)
	}

	return category, nil
}

// GetAllByUserID implements store.CategoryStore.GetAllByUserID
func (s *PostgresCategoryStore) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY name ASC`
	return s.queryCategories(ctx, query, userID)
}

// GetAllByUserIDAndType implements store.CategoryStore.GetAllByUserIDAndType
func (s *PostgresCategoryStore) GetAllByUserIDAndType(
	ctx context.Context,
	userID int64,
	categoryType domain.CategoryType,
) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 AND type = $2 ORDER BY name ASC`
	return s.queryCategories(ctx, query, userID, categoryType)
}

// queryCategories runs a multi-row category query and scans the results.
func (s *PostgresCategoryStore) queryCategories(ctx context.Context, query string, args ...any) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query categories", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning category rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return categories, nil
}

// IsInUse implements store.CategoryStore.IsInUse
func (s *PostgresCategoryStore) IsInUse(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (SELECT 1 FROM incomes WHERE category_id = $1)
		    OR EXISTS (SELECT 1 FROM expenses WHERE category_id = $1)
	`

	var inUse bool
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&inUse); err != nil {
		log.Error("failed to check category usage",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return false, MapError(err)
	}

	return inUse, nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE categories
		SET name = $1, description = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query,
		category.Name,
		nullableString(category.Description),
		category.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate category name during update",
				slog.Int64("category_id", category.ID),
				slog.String("name", category.Name))
			return fmt.Errorf("%w: %v", store.ErrCategoryNameExists, err)
		}
		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", category.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
		log.Debug("category not found for update", slog.Int64("category_id", category.ID))
		return err
	}

	log.Info("category updated successfully", slog.Int64("category_id", category.ID))
	return nil
}

// Delete implements store.CategoryStore.Delete
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM categories WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	log.Info("category deleted successfully", slog.Int64("category_id", id))
	return true, nil
}

// nullableString maps an empty string to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullableID maps a zero ID to SQL NULL.
func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
