package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/platform/logger"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// PostgresIncomeStore implements the store.IncomeStore interface
// using a PostgreSQL database as the storage backend.
type PostgresIncomeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresIncomeStore creates a new PostgreSQL implementation of the
// IncomeStore interface. If logger is nil, a default logger will be used.
func NewPostgresIncomeStore(db store.DBTX, logger *slog.Logger) *PostgresIncomeStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresIncomeStore{
		db:     db,
		logger: logger.With(slog.String("component", "income_store")),
	}
}

// Ensure PostgresIncomeStore implements store.IncomeStore interface
var _ store.IncomeStore = (*PostgresIncomeStore)(nil)

// WithTx implements store.IncomeStore.WithTx
func (s *PostgresIncomeStore) WithTx(tx *sql.Tx) store.IncomeStore {
	return &PostgresIncomeStore{
		db:     tx,
		logger: s.logger,
	}
}

const incomeColumns = `id, user_id, category_id, name, source, amount, received_date, payment_method, remarks, created_at`

// scanIncome scans a single income row in incomeColumns order.
func scanIncome(row interface{ Scan(...any) error }) (*domain.Income, error) {
	var inc domain.Income
	var remarks sql.NullString
	err := row.Scan(
		&inc.ID,
		&inc.UserID,
		&inc.CategoryID,
		&inc.Name,
		&inc.Source,
		&inc.Amount,
		&inc.ReceivedDate,
		&inc.PaymentMethod,
		&remarks,
		&inc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inc.Remarks = remarks.String
	return &inc, nil
}

// Save implements store.IncomeStore.Save
func (s *PostgresIncomeStore) Save(ctx context.Context, income *domain.Income) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO incomes (user_id, category_id, name, source, amount, received_date, payment_method, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		income.UserID,
		income.CategoryID,
		income.Name,
		income.Source,
		income.Amount,
		income.ReceivedDate,
		income.PaymentMethod,
		nullableString(income.Remarks),
	).Scan(&income.ID, &income.CreatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during income save",
				slog.Int64("user_id", income.UserID),
				slog.Int64("category_id", income.CategoryID))
			return 0, fmt.Errorf("%w: category with ID %d not found",
				store.ErrInvalidEntity, income.CategoryID)
		}
		log.Error("failed to save income",
			slog.String("error", err.Error()),
			slog.Int64("user_id", income.UserID))
		return 0, MapError(err)
	}

	log.Info("income saved successfully",
		slog.Int64("income_id", income.ID),
		slog.Int64("user_id", income.UserID),
		slog.Float64("amount", income.Amount))
	return income.ID, nil
}

// GetByID implements store.IncomeStore.GetByID
func (s *PostgresIncomeStore) GetByID(ctx context.Context, id int64) (*domain.Income, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE id = $1`

	income, err := scanIncome(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("income not found", slog.Int64("income_id", id))
			return nil, store.ErrIncomeNotFound
		}
		log.Error("failed to get income by ID",
			slog.String("error", err.Error()),
			slog.Int64("income_id", id))
		return nil, MapError(err)
	}

	return income, nil
}

// GetByIDAndUserID implements store.IncomeStore.GetByIDAndUserID
func (s *PostgresIncomeStore) GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Income, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE id = $1 AND user_id = $2`

	income, err := scanIncome(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("income not found for user",
				slog.Int64("income_id", id),
				slog.Int64("user_id", userID))
			return nil, store.ErrIncomeNotFound
		}
		log.Error("failed to get income by ID and user",
			slog.String("error", err.Error()),
			slog.Int64("income_id", id))
		return nil, MapError(err)
	}

	return income, nil
}

// GetAllByUserID implements store.IncomeStore.GetAllByUserID
func (s *PostgresIncomeStore) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Income, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE user_id = $1 ORDER BY received_date DESC, id DESC`
	return s.queryIncomes(ctx, query, userID)
}

// GetAllByUserIDAndDateRange implements store.IncomeStore.GetAllByUserIDAndDateRange
func (s *PostgresIncomeStore) GetAllByUserIDAndDateRange(
	ctx context.Context,
	userID int64,
	from, to time.Time,
) ([]*domain.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE user_id = $1 AND received_date >= $2 AND received_date <= $3
		ORDER BY received_date DESC, id DESC
	`
	return s.queryIncomes(ctx, query, userID, from, to)
}

// queryIncomes runs a multi-row income query and scans the results.
func (s *PostgresIncomeStore) queryIncomes(ctx context.Context, query string, args ...any) ([]*domain.Income, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query incomes", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	incomes := []*domain.Income{}
	for rows.Next() {
		income, err := scanIncome(rows)
		if err != nil {
			log.Error("failed to scan income row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		incomes = append(incomes, income)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning income rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return incomes, nil
}

// CalculateTotalByUserID implements store.IncomeStore.CalculateTotalByUserID
func (s *PostgresIncomeStore) CalculateTotalByUserID(ctx context.Context, userID int64) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COALESCE(SUM(amount), 0) FROM incomes WHERE user_id = $1`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		log.Error("failed to calculate income total",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	return total, nil
}

// Update implements store.IncomeStore.Update
func (s *PostgresIncomeStore) Update(ctx context.Context, income *domain.Income) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE incomes
		SET category_id = $1, name = $2, source = $3, amount = $4,
		    received_date = $5, payment_method = $6, remarks = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		income.CategoryID,
		income.Name,
		income.Source,
		income.Amount,
		income.ReceivedDate,
		income.PaymentMethod,
		nullableString(income.Remarks),
		income.ID,
	)

	if err != nil {
		log.Error("failed to update income",
			slog.String("error", err.Error()),
			slog.Int64("income_id", income.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrIncomeNotFound); err != nil {
		log.Debug("income not found for update", slog.Int64("income_id", income.ID))
		return err
	}

	log.Info("income updated successfully", slog.Int64("income_id", income.ID))
	return nil
}

// Delete implements store.IncomeStore.Delete
// The schema restricts deletes while a saving transaction references the
// income leg; that surfaces here as a foreign key violation.
func (s *PostgresIncomeStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM incomes WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("income still referenced by a saving transaction",
				slog.Int64("income_id", id))
			return false, &store.StoreError{
				Entity:    "income",
				Operation: "delete",
				Message:   "income is referenced by a saving transaction",
				Err:       err,
			}
		}
		log.Error("failed to delete income",
			slog.String("error", err.Error()),
			slog.Int64("income_id", id))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	log.Info("income deleted successfully", slog.Int64("income_id", id))
	return true, nil
}
