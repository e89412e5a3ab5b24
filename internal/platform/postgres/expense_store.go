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

// PostgresExpenseStore implements the store.ExpenseStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExpenseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExpenseStore creates a new PostgreSQL implementation of the
// ExpenseStore interface. If logger is nil, a default logger will be used.
func NewPostgresExpenseStore(db store.DBTX, logger *slog.Logger) *PostgresExpenseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresExpenseStore{
		db:     db,
		logger: logger.With(slog.String("component", "expense_store")),
	}
}

// Ensure PostgresExpenseStore implements store.ExpenseStore interface
var _ store.ExpenseStore = (*PostgresExpenseStore)(nil)

// WithTx implements store.ExpenseStore.WithTx
func (s *PostgresExpenseStore) WithTx(tx *sql.Tx) store.ExpenseStore {
	return &PostgresExpenseStore{
		db:     tx,
		logger: s.logger,
	}
}

const expenseColumns = `id, user_id, category_id, name, payee, amount, expense_date, payment_method, remarks, created_at`

// scanExpense scans a single expense row in expenseColumns order.
func scanExpense(row interface{ Scan(...any) error }) (*domain.Expense, error) {
	var exp domain.Expense
	var remarks sql.NullString
	err := row.Scan(
		&exp.ID,
		&exp.UserID,
		&exp.CategoryID,
		&exp.Name,
		&exp.Payee,
		&exp.Amount,
		&exp.ExpenseDate,
		&exp.PaymentMethod,
		&remarks,
		&exp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	exp.Remarks = remarks.String
	return &exp, nil
}

// Save implements store.ExpenseStore.Save
func (s *PostgresExpenseStore) Save(ctx context.Context, expense *domain.Expense) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO expenses (user_id, category_id, name, payee, amount, expense_date, payment_method, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		expense.UserID,
		expense.CategoryID,
		expense.Name,
		expense.Payee,
		expense.Amount,
		expense.ExpenseDate,
		expense.PaymentMethod,
		nullableString(expense.Remarks),
	).Scan(&expense.ID, &expense.CreatedAt)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during expense save",
				slog.Int64("user_id", expense.UserID),
				slog.Int64("category_id", expense.CategoryID))
			return 0, fmt.Errorf("%w: category with ID %d not found",
				store.ErrInvalidEntity, expense.CategoryID)
		}
		log.Error("failed to save expense",
			slog.String("error", err.Error()),
			slog.Int64("user_id", expense.UserID))
		return 0, MapError(err)
	}

	log.Info("expense saved successfully",
		slog.Int64("expense_id", expense.ID),
		slog.Int64("user_id", expense.UserID),
		slog.Float64("amount", expense.Amount))
	return expense.ID, nil
}

// GetByID implements store.ExpenseStore.GetByID
func (s *PostgresExpenseStore) GetByID(ctx context.Context, id int64) (*domain.Expense, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	expense, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("expense not found", slog.Int64("expense_id", id))
			return nil, store.ErrExpenseNotFound
		}
		log.Error("failed to get expense by ID",
			slog.String("error", err.Error()),
			slog.Int64("expense_id", id))
		return nil, MapError(err)
	}

	return expense, nil
}

// GetByIDAndUserID implements store.ExpenseStore.GetByIDAndUserID
func (s *PostgresExpenseStore) GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.Expense, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND user_id = $2`

	expense, err := scanExpense(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("expense not found for user",
				slog.Int64("expense_id", id),
				slog.Int64("user_id", userID))
			return nil, store.ErrExpenseNotFound
		}
		log.Error("failed to get expense by ID and user",
			slog.String("error", err.Error()),
			slog.Int64("expense_id", id))
		return nil, MapError(err)
	}

	return expense, nil
}

// GetAllByUserID implements store.ExpenseStore.GetAllByUserID
func (s *PostgresExpenseStore) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE user_id = $1 ORDER BY expense_date DESC, id DESC`
	return s.queryExpenses(ctx, query, userID)
}

// GetAllByUserIDAndDateRange implements store.ExpenseStore.GetAllByUserIDAndDateRange
func (s *PostgresExpenseStore) GetAllByUserIDAndDateRange(
	ctx context.Context,
	userID int64,
	from, to time.Time,
) ([]*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1 AND expense_date >= $2 AND expense_date <= $3
		ORDER BY expense_date DESC, id DESC
	`
	return s.queryExpenses(ctx, query, userID, from, to)
}

// queryExpenses runs a multi-row expense query and scans the results.
func (s *PostgresExpenseStore) queryExpenses(ctx context.Context, query string, args ...any) ([]*domain.Expense, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query expenses", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	expenses := []*domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			log.Error("failed to scan expense row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning expense rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return expenses, nil
}

// CalculateTotalByUserID implements store.ExpenseStore.CalculateTotalByUserID
func (s *PostgresExpenseStore) CalculateTotalByUserID(ctx context.Context, userID int64) (float64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		log.Error("failed to calculate expense total",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return 0, MapError(err)
	}

	return total, nil
}

// Update implements store.ExpenseStore.Update
func (s *PostgresExpenseStore) Update(ctx context.Context, expense *domain.Expense) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE expenses
		SET category_id = $1, name = $2, payee = $3, amount = $4,
		    expense_date = $5, payment_method = $6, remarks = $7
		WHERE id = $8
	`

	result, err := s.db.ExecContext(ctx, query,
		expense.CategoryID,
		expense.Name,
		expense.Payee,
		expense.Amount,
		expense.ExpenseDate,
		expense.PaymentMethod,
		nullableString(expense.Remarks),
		expense.ID,
	)

	if err != nil {
		log.Error("failed to update expense",
			slog.String("error", err.Error()),
			slog.Int64("expense_id", expense.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrExpenseNotFound); err != nil {
		log.Debug("expense not found for update", slog.Int64("expense_id", expense.ID))
		return err
	}

	log.Info("expense updated successfully", slog.Int64("expense_id", expense.ID))
	return nil
}

// Delete implements store.ExpenseStore.Delete
// The schema restricts deletes while a debt payment references the
// expense leg; that surfaces here as a foreign key violation.
func (s *PostgresExpenseStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM expenses WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("expense still referenced by a debt payment",
				slog.Int64("expense_id", id))
			return false, &store.StoreError{
				Entity:    "expense",
				Operation: "delete",
				Message:   "expense is referenced by a debt payment",
				Err:       err,
			}
		}
		log.Error("failed to delete expense",
			slog.String("error", err.Error()),
			slog.Int64("expense_id", id))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	log.Info("expense deleted successfully", slog.Int64("expense_id", id))
	return true, nil
}
