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

// PostgresSavingTransactionStore implements the
// store.SavingTransactionStore interface using a PostgreSQL database as
// the storage backend.
type PostgresSavingTransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSavingTransactionStore creates a new PostgreSQL
// implementation of the SavingTransactionStore interface. If logger is
// nil, a default logger will be used.
func NewPostgresSavingTransactionStore(db store.DBTX, logger *slog.Logger) *PostgresSavingTransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSavingTransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "saving_transaction_store")),
	}
}

// Ensure PostgresSavingTransactionStore implements store.SavingTransactionStore interface
var _ store.SavingTransactionStore = (*PostgresSavingTransactionStore)(nil)

// WithTx implements store.SavingTransactionStore.WithTx
func (s *PostgresSavingTransactionStore) WithTx(tx *sql.Tx) store.SavingTransactionStore {
	return &PostgresSavingTransactionStore{
		db:     tx,
		logger: s.logger,
	}
}

const savingTransactionColumns = `id, goal_id, user_id, txt_type, income_id, expense_id, amount, txt_date, remarks`

// scanSavingTransaction scans a single saving transaction row in
// savingTransactionColumns order. NULL funding legs come back as zero IDs.
func scanSavingTransaction(row interface{ Scan(...any) error }) (*domain.SavingTransaction, error) {
	var t domain.SavingTransaction
	var incomeID, expenseID sql.NullInt64
	var remarks sql.NullString
	err := row.Scan(
		&t.ID,
		&t.GoalID,
		&t.UserID,
		&t.TxtType,
		&incomeID,
		&expenseID,
		&t.Amount,
		&t.TxtDate,
		&remarks,
	)
	if err != nil {
		return nil, err
	}
	t.IncomeID = incomeID.Int64
	t.ExpenseID = expenseID.Int64
	t.Remarks = remarks.String
	return &t, nil
}

// Save implements store.SavingTransactionStore.Save
func (s *PostgresSavingTransactionStore) Save(ctx context.Context, txn *domain.SavingTransaction) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO saving_transactions (goal_id, user_id, txt_type, income_id, expense_id, amount, txt_date, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		txn.GoalID,
		txn.UserID,
		txn.TxtType,
		nullableID(txn.IncomeID),
		nullableID(txn.ExpenseID),
		txn.Amount,
		txn.TxtDate,
		nullableString(txn.Remarks),
	).Scan(&txn.ID)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during saving transaction save",
				slog.Int64("goal_id", txn.GoalID),
				slog.Int64("user_id", txn.UserID))
			return 0, fmt.Errorf("%w: referenced goal or funding leg not found",
				store.ErrInvalidEntity)
		}
		log.Error("failed to save saving transaction",
			slog.String("error", err.Error()),
			slog.Int64("goal_id", txn.GoalID))
		return 0, MapError(err)
	}

	log.Info("saving transaction saved successfully",
		slog.Int64("transaction_id", txn.ID),
		slog.Int64("goal_id", txn.GoalID),
		slog.String("txt_type", string(txn.TxtType)),
		slog.Float64("amount", txn.Amount))
	return txn.ID, nil
}

// GetByID implements store.SavingTransactionStore.GetByID
func (s *PostgresSavingTransactionStore) GetByID(ctx context.Context, id int64) (*domain.SavingTransaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + savingTransactionColumns + ` FROM saving_transactions WHERE id = $1`

	txn, err := scanSavingTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("saving transaction not found", slog.Int64("transaction_id", id))
			return nil, store.ErrSavingTransactionNotFound
		}
		log.Error("failed to get saving transaction by ID",
			slog.String("error", err.Error()),
			slog.Int64("transaction_id", id))
		return nil, MapError(err)
	}

	return txn, nil
}

// GetAllByGoalID implements store.SavingTransactionStore.GetAllByGoalID
func (s *PostgresSavingTransactionStore) GetAllByGoalID(ctx context.Context, goalID int64) ([]*domain.SavingTransaction, error) {
	query := `SELECT ` + savingTransactionColumns + ` FROM saving_transactions WHERE goal_id = $1 ORDER BY txt_date ASC, id ASC`
	return s.querySavingTransactions(ctx, query, goalID)
}

// GetAllByUserID implements store.SavingTransactionStore.GetAllByUserID
func (s *PostgresSavingTransactionStore) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.SavingTransaction, error) {
	query := `SELECT ` + savingTransactionColumns + ` FROM saving_transactions WHERE user_id = $1 ORDER BY txt_date ASC, id ASC`
	return s.querySavingTransactions(ctx, query, userID)
}

// querySavingTransactions runs a multi-row saving transaction query and
// scans the results.
func (s *PostgresSavingTransactionStore) querySavingTransactions(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.SavingTransaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query saving transactions", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	transactions := []*domain.SavingTransaction{}
	for rows.Next() {
		txn, err := scanSavingTransaction(rows)
		if err != nil {
			log.Error("failed to scan saving transaction row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning saving transaction rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return transactions, nil
}

// ExistsByIncomeID implements store.SavingTransactionStore.ExistsByIncomeID
func (s *PostgresSavingTransactionStore) ExistsByIncomeID(ctx context.Context, incomeID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM saving_transactions WHERE income_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, incomeID).Scan(&exists); err != nil {
		log.Error("failed to check saving transaction by income",
			slog.String("error", err.Error()),
			slog.Int64("income_id", incomeID))
		return false, MapError(err)
	}

	return exists, nil
}

// ExistsByExpenseID implements store.SavingTransactionStore.ExistsByExpenseID
func (s *PostgresSavingTransactionStore) ExistsByExpenseID(ctx context.Context, expenseID int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT EXISTS (SELECT 1 FROM saving_transactions WHERE expense_id = $1)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, expenseID).Scan(&exists); err != nil {
		log.Error("failed to check saving transaction by expense",
			slog.String("error", err.Error()),
			slog.Int64("expense_id", expenseID))
		return false, MapError(err)
	}

	return exists, nil
}

// CalculateTotalDepositsByUserID implements
// store.SavingTransactionStore.CalculateTotalDepositsByUserID
func (s *PostgresSavingTransactionStore) CalculateTotalDepositsByUserID(ctx context.Context, userID int64) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM saving_transactions
		WHERE user_id = $1 AND txt_type = $2
	`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, userID, domain.PaymentTypeDeposit).Scan(&total); err != nil {
		log.Error("failed to calculate saving deposit total",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	return total, nil
}

// CalculateGoalBalance implements store.SavingTransactionStore.CalculateGoalBalance
func (s *PostgresSavingTransactionStore) CalculateGoalBalance(ctx context.Context, goalID int64) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(SUM(CASE WHEN txt_type = $2 THEN amount ELSE -amount END), 0)
		FROM saving_transactions
		WHERE goal_id = $1
	`

	var balance float64
	if err := s.db.QueryRowContext(ctx, query, goalID, domain.PaymentTypeDeposit).Scan(&balance); err != nil {
		log.Error("failed to calculate goal balance",
			slog.String("error", err.Error()),
			slog.Int64("goal_id", goalID))
		return 0, MapError(err)
	}

	return balance, nil
}

// Delete implements store.SavingTransactionStore.Delete
func (s *PostgresSavingTransactionStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM saving_transactions WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete saving transaction",
			slog.String("error", err.Error()),
			slog.Int64("transaction_id", id))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	log.Info("saving transaction deleted successfully", slog.Int64("transaction_id", id))
	return true, nil
}

// DeleteAllByUserID implements store.SavingTransactionStore.DeleteAllByUserID
func (s *PostgresSavingTransactionStore) DeleteAllByUserID(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM saving_transactions WHERE user_id = $1`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to delete saving transactions for user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected > 0 {
		log.Info("saving transactions deleted for user",
			slog.Int64("user_id", userID),
			slog.Int64("count", rowsAffected))
	}
	return rowsAffected, nil
}
