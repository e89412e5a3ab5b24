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

// PostgresDebtStore implements the store.DebtStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDebtStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDebtStore creates a new PostgreSQL implementation of the
// DebtStore interface. If logger is nil, a default logger will be used.
func NewPostgresDebtStore(db store.DBTX, logger *slog.Logger) *PostgresDebtStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDebtStore{
		db:     db,
		logger: logger.With(slog.String("component", "debt_store")),
	}
}

// Ensure PostgresDebtStore implements store.DebtStore interface
var _ store.DebtStore = (*PostgresDebtStore)(nil)

// WithTx implements store.DebtStore.WithTx
func (s *PostgresDebtStore) WithTx(tx *sql.Tx) store.DebtStore {
	return &PostgresDebtStore{
		db:     tx,
		logger: s.logger,
	}
}

const debtColumns = `id, user_id, lender, name, principal, interest_rate, start_date, due_date, status, created_at`

// scanDebt scans a single debt row in debtColumns order.
func scanDebt(row interface{ Scan(...any) error }) (*domain.Debt, error) {
	var d domain.Debt
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Lender,
		&d.Name,
		&d.Principal,
		&d.InterestRate,
		&d.StartDate,
		&d.DueDate,
		&d.Status,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Save implements store.DebtStore.Save
func (s *PostgresDebtStore) Save(ctx context.Context, debt *domain.Debt) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO debts (user_id, lender, name, principal, interest_rate, start_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		debt.UserID,
		debt.Lender,
		debt.Name,
		debt.Principal,
		debt.InterestRate,
		debt.StartDate,
		debt.DueDate,
		debt.Status,
	).Scan(&debt.ID, &debt.CreatedAt)

	if err != nil {
		log.Error("failed to save debt",
			slog.String("error", err.Error()),
			slog.Int64("user_id", debt.UserID),
			slog.String("lender", debt.Lender))
		return 0, MapError(err)
	}

	log.Info("debt saved successfully",
		slog.Int64("debt_id", debt.ID),
		slog.Int64("user_id", debt.UserID),
		slog.Float64("principal", debt.Principal))
	return debt.ID, nil
}

// GetByID implements store.DebtStore.GetByID
func (s *PostgresDebtStore) GetByID(ctx context.Context, id int64) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1`
	return s.getDebt(ctx, query, id)
}

// GetByIDAndUserID implements store.DebtStore.GetByIDAndUserID
func (s *PostgresDebtStore) GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1 AND user_id = $2`
	return s.getDebt(ctx, query, id, userID)
}

// GetByIDAndUserIDForUpdate implements store.DebtStore.GetByIDAndUserIDForUpdate
// The FOR UPDATE clause holds a row lock until the enclosing transaction
// ends, so concurrent payments against the same debt serialize.
func (s *PostgresDebtStore) GetByIDAndUserIDForUpdate(ctx context.Context, id, userID int64) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return s.getDebt(ctx, query, id, userID)
}

// getDebt runs a single-row debt query.
func (s *PostgresDebtStore) getDebt(ctx context.Context, query string, args ...any) (*domain.Debt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	debt, err := scanDebt(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("debt not found")
			return nil, store.ErrDebtNotFound
		}
		log.Error("failed to get debt", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return debt, nil
}

// GetAllByUserID implements store.DebtStore.GetAllByUserID
func (s *PostgresDebtStore) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1 ORDER BY due_date ASC, id ASC`
	return s.queryDebts(ctx, query, userID)
}

// GetAllByUserIDAndStatus implements store.DebtStore.GetAllByUserIDAndStatus
func (s *PostgresDebtStore) GetAllByUserIDAndStatus(
	ctx context.Context,
	userID int64,
	status domain.DebtStatus,
) ([]*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1 AND status = $2 ORDER BY due_date ASC, id ASC`
	return s.queryDebts(ctx, query, userID, status)
}

// queryDebts runs a multi-row debt query and scans the results.
func (s *PostgresDebtStore) queryDebts(ctx context.Context, query string, args ...any) ([]*domain.Debt, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query debts", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	debts := []*domain.Debt{}
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			log.Error("failed to scan debt row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		debts = append(debts, debt)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning debt rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return debts, nil
}

// CalculateTotalPrincipalByUserID implements store.DebtStore.CalculateTotalPrincipalByUserID
func (s *PostgresDebtStore) CalculateTotalPrincipalByUserID(ctx context.Context, userID int64) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(principal), 0)
		FROM debts
		WHERE user_id = $1 AND status = $2
	`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, userID, domain.DebtStatusActive).Scan(&total); err != nil {
		log.Error("failed to calculate debt principal total",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	return total, nil
}

// Update implements store.DebtStore.Update
func (s *PostgresDebtStore) Update(ctx context.Context, debt *domain.Debt) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE debts
		SET lender = $1, name = $2, principal = $3, interest_rate = $4,
		    start_date = $5, due_date = $6, status = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		debt.Lender,
		debt.Name,
		debt.Principal,
		debt.InterestRate,
		debt.StartDate,
		debt.DueDate,
		debt.Status,
		debt.ID,
	)

	if err != nil {
		log.Error("failed to update debt",
			slog.String("error", err.Error()),
			slog.Int64("debt_id", debt.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrDebtNotFound); err != nil {
		log.Debug("debt not found for update", slog.Int64("debt_id", debt.ID))
		return err
	}

	log.Info("debt updated successfully",
		slog.Int64("debt_id", debt.ID),
		slog.String("status", string(debt.Status)))
	return nil
}

// Delete implements store.DebtStore.Delete
func (s *PostgresDebtStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM debts WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("debt still has recorded payments", slog.Int64("debt_id", id))
			return false, &store.StoreError{
				Entity:    "debt",
				Operation: "delete",
				Message:   "debt has recorded payments",
				Err:       err,
			}
		}
		log.Error("failed to delete debt",
			slog.String("error", err.Error()),
			slog.Int64("debt_id", id))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	log.Info("debt deleted successfully", slog.Int64("debt_id", id))
	return true, nil
}
