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

// PostgresDebtPaymentStore implements the store.DebtPaymentStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDebtPaymentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDebtPaymentStore creates a new PostgreSQL implementation of
// the DebtPaymentStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresDebtPaymentStore(db store.DBTX, logger *slog.Logger) *PostgresDebtPaymentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDebtPaymentStore{
		db:     db,
		logger: logger.With(slog.String("component", "debt_payment_store")),
	}
}

// Ensure PostgresDebtPaymentStore implements store.DebtPaymentStore interface
var _ store.DebtPaymentStore = (*PostgresDebtPaymentStore)(nil)

// WithTx implements store.DebtPaymentStore.WithTx
func (s *PostgresDebtPaymentStore) WithTx(tx *sql.Tx) store.DebtPaymentStore {
	return &PostgresDebtPaymentStore{
		db:     tx,
		logger: s.logger,
	}
}

const debtPaymentColumns = `id, debt_id, user_id, income_id, expense_id, pymt_type, created_at`

// scanDebtPayment scans a single debt payment row in debtPaymentColumns
// order. NULL funding legs come back as zero IDs.
func scanDebtPayment(row interface{ Scan(...any) error }) (*domain.DebtPayment, error) {
	var p domain.DebtPayment
	var incomeID, expenseID sql.NullInt64
	err := row.Scan(
		&p.ID,
		&p.DebtID,
		&p.UserID,
		&incomeID,
		&expenseID,
		&p.PymtType,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.IncomeID = incomeID.Int64
	p.ExpenseID = expenseID.Int64
	return &p, nil
}

// Save implements store.DebtPaymentStore.Save
func (s *PostgresDebtPaymentStore) Save(ctx context.Context, payment *domain.DebtPayment) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO debt_payments (debt_id, user_id, income_id, expense_id, pymt_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		payment.DebtID,
		payment.UserID,
		nullableID(payment.IncomeID),
		nullableID(payment.ExpenseID),
		payment.PymtType,
	).Scan(&payment.ID, &payment.CreatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during debt payment save",
				slog.Int64("debt_id", payment.DebtID),
				slog.Int64("user_id", payment.UserID))
			return 0, fmt.Errorf("%w: referenced debt or funding leg not found",
				store.ErrInvalidEntity)
		}
		log.Error("failed to save debt payment",
			slog.String("error", err.Error()),
			slog.Int64("debt_id", payment.DebtID))
		return 0, MapError(err)
	}

	log.Info("debt payment saved successfully",
		slog.Int64("payment_id", payment.ID),
		slog.Int64("debt_id", payment.DebtID))
	return payment.ID, nil
}

// GetByID implements store.DebtPaymentStore.GetByID
func (s *PostgresDebtPaymentStore) GetByID(ctx context.Context, id int64) (*domain.DebtPayment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + debtPaymentColumns + ` FROM debt_payments WHERE id = $1`

	payment, err := scanDebtPayment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("debt payment not found", slog.Int64("payment_id", id))
			return nil, store.ErrDebtPaymentNotFound
		}
		log.Error("failed to get debt payment by ID",
			slog.String("error", err.Error()),
			slog.Int64("payment_id", id))
		return nil, MapError(err)
	}

	return payment, nil
}

// GetAllByDebtID implements store.DebtPaymentStore.GetAllByDebtID
func (s *PostgresDebtPaymentStore) GetAllByDebtID(ctx context.Context, debtID int64) ([]*domain.DebtPayment, error) {
	query := `SELECT ` + debtPaymentColumns + ` FROM debt_payments WHERE debt_id = $1 ORDER BY created_at ASC, id ASC`
	return s.queryDebtPayments(ctx, query, debtID)
}

// GetAllByUserID implements store.DebtPaymentStore.GetAllByUserID
func (s *PostgresDebtPaymentStore) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.DebtPayment, error) {
	query := `SELECT ` + debtPaymentColumns + ` FROM debt_payments WHERE user_id = $1 ORDER BY created_at ASC, id ASC`
	return s.queryDebtPayments(ctx, query, userID)
}

// queryDebtPayments runs a multi-row debt payment query and scans the results.
func (s *PostgresDebtPaymentStore) queryDebtPayments(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.DebtPayment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query debt payments", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	payments := []*domain.DebtPayment{}
	for rows.Next() {
		payment, err := scanDebtPayment(rows)
		if err != nil {
			log.Error("failed to scan debt payment row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning debt payment rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return payments, nil
}

// ExistsByIncomeID implements store.DebtPaymentStore.ExistsByIncomeID
func (s *PostgresDebtPaymentStore) ExistsByIncomeID(ctx context.Context, incomeID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM debt_payments WHERE income_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, incomeID).Scan(&exists); err != nil {
		log.Error("failed to check debt payment by income",
			slog.String("error", err.Error()),
			slog.Int64("income_id", incomeID))
		return false, MapError(err)
	}

	return exists, nil
}

// ExistsByExpenseID implements store.DebtPaymentStore.ExistsByExpenseID
func (s *PostgresDebtPaymentStore) ExistsByExpenseID(ctx context.Context, expenseID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM debt_payments WHERE expense_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, expenseID).Scan(&exists); err != nil {
		log.Error("failed to check debt payment by expense",
			slog.String("error", err.Error()),
			slog.Int64("expense_id", expenseID))
		return false, MapError(err)
	}

	return exists, nil
}

// CalculateTotalByUserID implements store.DebtPaymentStore.CalculateTotalByUserID
// Payment amounts live on the expense leg, so the sum joins through it.
func (s *PostgresDebtPaymentStore) CalculateTotalByUserID(ctx context.Context, userID int64) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM debt_payments dp
		JOIN expenses e ON e.id = dp.expense_id
		WHERE dp.user_id = $1
	`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		log.Error("failed to calculate debt payment total",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	return total, nil
}

// CalculateTotalByDebtID implements store.DebtPaymentStore.CalculateTotalByDebtID
func (s *PostgresDebtPaymentStore) CalculateTotalByDebtID(ctx context.Context, debtID int64) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM debt_payments dp
		JOIN expenses e ON e.id = dp.expense_id
		WHERE dp.debt_id = $1
	`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, debtID).Scan(&total); err != nil {
		log.Error("failed to calculate payment total for debt",
			slog.String("error", err.Error()),
			slog.Int64("debt_id", debtID))
		return 0, MapError(err)
	}

	return total, nil
}

// Delete implements store.DebtPaymentStore.Delete
func (s *PostgresDebtPaymentStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM debt_payments WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete debt payment",
			slog.String("error", err.Error()),
			slog.Int64("payment_id", id))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	log.Info("debt payment deleted successfully", slog.Int64("payment_id", id))
	return true, nil
}

// DeleteAllByUserID implements store.DebtPaymentStore.DeleteAllByUserID
func (s *PostgresDebtPaymentStore) DeleteAllByUserID(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM debt_payments WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to delete debt payments for user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		log.Info("debt payments deleted for user",
			slog.Int64("user_id", userID),
			slog.Int64("count", rowsAffected))
	}
	return rowsAffected, nil
}
