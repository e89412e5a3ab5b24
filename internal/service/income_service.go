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

// IncomeService provides income entry management operations.
type IncomeService interface {
	// CreateIncome validates and persists a new income entry. The target
	// category must exist, belong to the user and have the income type.
	CreateIncome(ctx context.Context, in policy.IncomeInsertInput) (*domain.Income, error)

	// GetIncome retrieves one income entry owned by the user.
	GetIncome(ctx context.Context, userID, incomeID int64) (*domain.Income, error)

	// ListIncomes lists the user's income entries, newest first.
	ListIncomes(ctx context.Context, userID int64) ([]*domain.Income, error)

	// UpdateIncome applies a partial edit to an income entry.
	UpdateIncome(ctx context.Context, userID, incomeID int64, in policy.IncomeEditInput) (*domain.Income, error)

	// DeleteIncome removes an income entry that no saving transaction
	// references.
	DeleteIncome(ctx context.Context, userID, incomeID int64) error
}

// IncomeServiceImpl implements the IncomeService interface
type IncomeServiceImpl struct {
	uow            *store.UnitOfWork
	policy         policy.TransactionPolicy
	categoryPolicy policy.CategoryPolicy
	logger         *slog.Logger
}

// NewIncomeService creates a new IncomeService
func NewIncomeService(uow *store.UnitOfWork, logger *slog.Logger) IncomeService {
	return &IncomeServiceImpl{
		uow:    uow,
		logger: logger.With("component", "income_service"),
	}
}

// CreateIncome validates and persists a new income entry.
func (s *IncomeServiceImpl) CreateIncome(ctx context.Context, in policy.IncomeInsertInput) (*domain.Income, error) {
	insert, err := s.policy.ValidateInsertIncome(in)
	if err != nil {
		s.logger.Debug("income creation rejected by policy", "error", err)
		return nil, err
	}

	var income *domain.Income
	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		category, err := uow.Categories.GetByIDAndUserID(ctx, insert.CategoryID, insert.UserID)
		if err != nil && !errors.Is(err, store.ErrCategoryNotFound) {
			return err
		}
		if err := s.categoryPolicy.ValidateExistence(category); err != nil {
			return err
		}
		if category.Type != domain.CategoryTypeIncome {
			return policy.Errorf("Category %q is not an income category", category.Name)
		}

		income, err = domain.NewIncome(
			insert.UserID,
			insert.CategoryID,
			insert.Name,
			insert.Source,
			insert.Amount,
			insert.ReceivedDate,
			string(insert.PaymentMethod),
			insert.Remarks,
		)
		if err != nil {
			return err
		}

		_, err = uow.Incomes.Save(ctx, income)
		return err
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, domain.ErrInvalidIncome) {
			return nil, err
		}
		s.logger.Error("failed to create income", "error", err, "user_id", insert.UserID)
		return nil, fmt.Errorf("failed to create income: %w", err)
	}

	s.logger.Info("income created",
		"income_id", income.ID,
		"user_id", income.UserID,
		"amount", income.Amount)
	return income, nil
}

// GetIncome retrieves one income entry owned by the user.
func (s *IncomeServiceImpl) GetIncome(ctx context.Context, userID, incomeID int64) (*domain.Income, error) {
	income, err := s.uow.Incomes.GetByIDAndUserID(ctx, incomeID, userID)
	if err != nil {
		if !errors.Is(err, store.ErrIncomeNotFound) {
			s.logger.Error("failed to retrieve income", "error", err, "income_id", incomeID)
		}
		return nil, err
	}
	return income, nil
}

// ListIncomes lists the user's income entries, newest first.
func (s *IncomeServiceImpl) ListIncomes(ctx context.Context, userID int64) ([]*domain.Income, error) {
	incomes, err := s.uow.Incomes.GetAllByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list incomes", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return incomes, nil
}

// UpdateIncome applies a partial edit to an income entry.
func (s *IncomeServiceImpl) UpdateIncome(
	ctx context.Context,
	userID, incomeID int64,
	in policy.IncomeEditInput,
) (*domain.Income, error) {
	var updated *domain.Income
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		income, err := uow.Incomes.GetByIDAndUserID(ctx, incomeID, userID)
		if err != nil {
			return err
		}

		upd, err := s.policy.ValidateIncomeEdit(in, income)
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
			if category.Type != domain.CategoryTypeIncome {
				return policy.Errorf("Category %q is not an income category", category.Name)
			}
		}

		if err := income.Update(upd); err != nil {
			return err
		}
		if err := uow.Incomes.Update(ctx, income); err != nil {
			return err
		}
		updated = income
		return nil
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, store.ErrIncomeNotFound) ||
			errors.Is(err, domain.ErrInvalidIncome) {
			return nil, err
		}
		s.logger.Error("failed to update income", "error", err, "income_id", incomeID)
		return nil, fmt.Errorf("failed to update income: %w", err)
	}

	s.logger.Info("income updated", "income_id", incomeID, "user_id", userID)
	return updated, nil
}

// DeleteIncome removes an income entry after checking nothing references
// its funding leg.
func (s *IncomeServiceImpl) DeleteIncome(ctx context.Context, userID, incomeID int64) error {
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		income, err := uow.Incomes.GetByIDAndUserID(ctx, incomeID, userID)
		if err != nil && !errors.Is(err, store.ErrIncomeNotFound) {
			return err
		}

		var usedByDebtPayment, usedBySavingTxn bool
		if income != nil {
			usedByDebtPayment, err = uow.DebtPayments.ExistsByIncomeID(ctx, incomeID)
			if err != nil {
				return err
			}
			usedBySavingTxn, err = uow.SavingTransactions.ExistsByIncomeID(ctx, incomeID)
			if err != nil {
				return err
			}
		}

		if err := s.policy.ValidateIncomeDeletion(income, usedByDebtPayment, usedBySavingTxn); err != nil {
			return err
		}

		_, err = uow.Incomes.Delete(ctx, incomeID)
		return err
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) {
			return err
		}
		s.logger.Error("failed to delete income", "error", err, "income_id", incomeID)
		return fmt.Errorf("failed to delete income: %w", err)
	}

	s.logger.Info("income deleted", "income_id", incomeID, "user_id", userID)
	return nil
}
