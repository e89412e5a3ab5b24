package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// ExpenseService provides expense entry management operations.
type ExpenseService interface {
	// CreateExpense validates and persists a new expense entry. The target
	// category must exist, belong to the user and have the expense type.
	CreateExpense(ctx context.Context, in policy.ExpenseInsertInput) (*domain.Expense, error)

	// GetExpense retrieves one expense entry owned by the user.
	GetExpense(ctx context.Context, userID, expenseID int64) (*domain.Expense, error)

	// ListExpenses lists the user's expense entries, newest first.
	ListExpenses(ctx context.Context, userID int64) ([]*domain.Expense, error)

	// UpdateExpense applies a partial edit to an expense entry.
	UpdateExpense(ctx context.Context, userID, expenseID int64, in policy.ExpenseEditInput) (*domain.Expense, error)

	// DeleteExpense removes an expense entry that no debt payment or
	// saving transaction references.
	DeleteExpense(ctx context.Context, userID, expenseID int64) error
}

// ExpenseServiceImpl implements the ExpenseService interface
type ExpenseServiceImpl struct {
	uow            *store.UnitOfWork
	policy         policy.TransactionPolicy
	categoryPolicy policy.CategoryPolicy
	logger         *slog.Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(uow *store.UnitOfWork, logger *slog.Logger) ExpenseService {
	return &ExpenseServiceImpl{
		uow:    uow,
		logger: logger.With("component", "expense_service"),
	}
}

// CreateExpense validates and persists a new expense entry.
func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, in policy.ExpenseInsertInput) (*domain.Expense, error) {
	insert, err := s.policy.ValidateInsertExpense(in)
	if err != nil {
		s.logger.Debug("expense creation rejected by policy", "error", err)
		return nil, err
	}

	var expense *domain.Expense
	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		category, err := uow.Categories.GetByIDAndUserID(ctx, insert.CategoryID, insert.UserID)
		if err != nil && !errors.Is(err, store.ErrCategoryNotFound) {
			return err
		}
		if err := s.categoryPolicy.ValidateExistence(category); err != nil {
			return err
		}
		if category.Type != domain.CategoryTypeExpense {
			return policy.Errorf("Category %q is not an expense category", category.Name)
		}

		expense, err = domain.NewExpense(
			insert.UserID,
			insert.CategoryID,
			insert.Name,
			insert.Payee,
			insert.Amount,
			insert.ExpenseDate,
			string(insert.PaymentMethod),
			insert.Remarks,
		)
		if err != nil {
			return err
		}

		_, err = uow.Expenses.Save(ctx, expense)
		return err
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, domain.ErrInvalidExpense) {
			return nil, err
		}
		s.logger.Error("failed to create expense", "error", err, "user_id", insert.UserID)
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.logger.Info("expense created",
		"expense_id", expense.ID,
		"user_id", expense.UserID,
		"amount", expense.Amount)
	return expense, nil
}

// GetExpense retrieves one expense entry owned by the user.
func (s *ExpenseServiceImpl) GetExpense(ctx context.Context, userID, expenseID int64) (*domain.Expense, error) {
	expense, err := s.uow.Expenses.GetByIDAndUserID(ctx, expenseID, userID)
	if err != nil {
		if !errors.Is(err, store.ErrExpenseNotFound) {
			s.logger.Error("failed to retrieve expense", "error", err, "expense_id", expenseID)
		}
		return nil, err
	}
	return expense, nil
}

// ListExpenses lists the user's expense entries, newest first.
func (s *ExpenseServiceImpl) ListExpenses(ctx context.Context, userID int64) ([]*domain.Expense, error) {
	expenses, err := s.uow.Expenses.GetAllByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// UpdateExpense applies a partial edit to an expense entry.
func (s *ExpenseServiceImpl) UpdateExpense(
	ctx context.Context,
	userID, expenseID int64,
	in policy.ExpenseEditInput,
) (*domain.Expense, error) {
	var updated *domain.Expense
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		expense, err := uow.Expenses.GetByIDAndUserID(ctx, expenseID, userID)
		if err != nil {
			return err
		}

		upd, err := s.policy.ValidateExpenseEdit(in, expense)
		if err != nil {
			return err
		}

		if upd.CategoryID != nil {
			category, err := uow.Categories.GetByIDAndUserID(ctx, *upd.CategoryID, userID)
			if err != nil && !errors.Is(err, store.ErrCategoryNotFound) {
				return err
			}
			if err := s.categoryPolicy.ValidateExistence(category); err != nil {
				return err
			}
			if category.Type != domain.CategoryTypeExpense {
				return policy.Errorf("Category %q is not an expense category", category.Name)
			}
		}

		if err := expense.Update(upd); err != nil {
			return err
		}
		if err := uow.Expenses.Update(ctx, expense); err != nil {
			return err
		}
		updated = expense
		return nil
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, store.ErrExpenseNotFound) ||
			errors.Is(err, domain.ErrInvalidExpense) {
			return nil, err
		}
		s.logger.Error("failed to update expense", "error", err, "expense_id", expenseID)
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	s.logger.Info("expense updated", "expense_id", expenseID, "user_id", userID)
	return updated, nil
}

// DeleteExpense removes an expense entry after checking nothing
// references its funding leg.
func (s *ExpenseServiceImpl) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		expense, err := uow.Expenses.GetByIDAndUserID(ctx, expenseID, userID)
		if err != nil && !errors.Is(err, store.ErrExpenseNotFound) {
			return err
		}

		var usedByDebtPayment, usedBySavingTxn bool
		if expense != nil {
			usedByDebtPayment, err = uow.DebtPayments.ExistsByExpenseID(ctx, expenseID)
			if err != nil {
				return err
			}
			usedBySavingTxn, err = uow.SavingTransactions.ExistsByExpenseID(ctx, expenseID)
			if err != nil {
				return err
			}
		}

		if err := s.policy.ValidateExpenseDeletion(expense, usedByDebtPayment, usedBySavingTxn); err != nil {
			return err
		}

		_, err = uow.Expenses.Delete(ctx, expenseID)
		return err
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) {
			return err
		}
		s.logger.Error("failed to delete expense", "error", err, "expense_id", expenseID)
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.logger.Info("expense deleted", "expense_id", expenseID, "user_id", userID)
	return nil
}
