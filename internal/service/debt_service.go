package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/domain/finance"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// DebtSummary pairs a debt with its derived reporting figures.
type DebtSummary struct {
	Debt        *domain.Debt `json:"debt"`
	StatusLabel string       `json:"status_label"`
	TotalPaid   float64      `json:"total_paid"`
	AmountDue   float64      `json:"amount_due"`
}

// DebtService provides debt management operations.
type DebtService interface {
	// CreateDebt validates and persists a new debt.
	CreateDebt(ctx context.Context, in policy.DebtInsertInput) (*domain.Debt, error)

	// GetDebt retrieves one debt with its derived figures.
	GetDebt(ctx context.Context, userID, debtID int64) (*DebtSummary, error)

	// ListDebts lists the user's debts with status labels and totals.
	ListDebts(ctx context.Context, userID int64) ([]*DebtSummary, error)

	// UpdateDebtTerms applies a principal and/or interest rate change.
	UpdateDebtTerms(ctx context.Context, userID, debtID int64, in policy.DebtEditInput) (*domain.Debt, error)

	// CloseDebt marks a debt as closed. Closing an already closed debt
	// fails.
	CloseDebt(ctx context.Context, userID, debtID int64) (*domain.Debt, error)

	// ReopenDebt marks a closed debt as active again.
	ReopenDebt(ctx context.Context, userID, debtID int64) (*domain.Debt, error)

	// DeleteDebt removes a debt and, through the schema's cascade rules,
	// its payment records.
	DeleteDebt(ctx context.Context, userID, debtID int64) error
}

// DebtServiceImpl implements the DebtService interface
type DebtServiceImpl struct {
	uow    *store.UnitOfWork
	policy policy.TransactionPolicy
	logger *slog.Logger
}

// NewDebtService creates a new DebtService
func NewDebtService(uow *store.UnitOfWork, logger *slog.Logger) DebtService {
	return &DebtServiceImpl{
		uow:    uow,
		logger: logger.With("component", "debt_service"),
	}
}

// CreateDebt validates and persists a new debt.
func (s *DebtServiceImpl) CreateDebt(ctx context.Context, in policy.DebtInsertInput) (*domain.Debt, error) {
	insert, err := s.policy.ValidateInsertDebt(in)
	if err != nil {
		s.logger.Debug("debt creation rejected by policy", "error", err)
		return nil, err
	}

	debt, err := domain.NewDebt(
		insert.UserID,
		insert.Lender,
		insert.Principal,
		insert.InterestRate,
		insert.StartDate,
		insert.DueDate,
		insert.Name,
	)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		_, err := uow.Debts.Save(ctx, debt)
		return err
	})
	if err != nil {
		s.logger.Error("failed to create debt", "error", err, "user_id", insert.UserID)
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	s.logger.Info("debt created",
		"debt_id", debt.ID,
		"user_id", debt.UserID,
		"principal", debt.Principal)
	return debt, nil
}

// GetDebt retrieves one debt with its derived figures.
func (s *DebtServiceImpl) GetDebt(ctx context.Context, userID, debtID int64) (*DebtSummary, error) {
	debt, err := s.uow.Debts.GetByIDAndUserID(ctx, debtID, userID)
	if err != nil {
		if !errors.Is(err, store.ErrDebtNotFound) {
			s.logger.Error("failed to retrieve debt", "error", err, "debt_id", debtID)
		}
		return nil, err
	}
	return s.summarize(ctx, debt)
}

// ListDebts lists the user's debts with status labels and totals.
func (s *DebtServiceImpl) ListDebts(ctx context.Context, userID int64) ([]*DebtSummary, error) {
	debts, err := s.uow.Debts.GetAllByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list debts", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}

	summaries := make([]*DebtSummary, 0, len(debts))
	for _, debt := range debts {
		summary, err := s.summarize(ctx, debt)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// summarize attaches the status label, amount paid so far and the total
// amount due to a debt.
func (s *DebtServiceImpl) summarize(ctx context.Context, debt *domain.Debt) (*DebtSummary, error) {
	totalPaid, err := s.uow.DebtPayments.CalculateTotalByDebtID(ctx, debt.ID)
	if err != nil {
		s.logger.Error("failed to total debt payments", "error", err, "debt_id", debt.ID)
		return nil, fmt.Errorf("failed to total debt payments: %w", err)
	}

	months := finance.MonthsUntilDue(debt.DueDate)
	amountDue, err := finance.TotalAmountDue(debt.Principal, debt.InterestRate, months)
	if err != nil {
		// Past-due debts accrue no further interest here.
		amountDue = debt.Principal
	}

	return &DebtSummary{
		Debt:        debt,
		StatusLabel: finance.DebtStatusLabel(debt),
		TotalPaid:   totalPaid,
		AmountDue:   amountDue,
	}, nil
}

// UpdateDebtTerms applies a principal and/or interest rate change.
func (s *DebtServiceImpl) UpdateDebtTerms(
	ctx context.Context,
	userID, debtID int64,
	in policy.DebtEditInput,
) (*domain.Debt, error) {
	var updated *domain.Debt
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		debt, err := uow.Debts.GetByIDAndUserIDForUpdate(ctx, debtID, userID)
		if err != nil && !errors.Is(err, store.ErrDebtNotFound) {
			return err
		}
		if err := s.policy.ValidateDebtPresence(debt); err != nil {
			return err
		}

		edit, err := s.policy.ValidateDebtEdit(in, debt)
		if err != nil {
			return err
		}

		if err := debt.UpdateTerms(edit.Principal, edit.InterestRate); err != nil {
			return err
		}
		if err := uow.Debts.Update(ctx, debt); err != nil {
			return err
		}
		updated = debt
		return nil
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, domain.ErrInvalidDebt) {
			return nil, err
		}
		s.logger.Error("failed to update debt terms", "error", err, "debt_id", debtID)
		return nil, fmt.Errorf("failed to update debt terms: %w", err)
	}

	s.logger.Info("debt terms updated", "debt_id", debtID, "user_id", userID)
	return updated, nil
}

// CloseDebt marks a debt as closed.
func (s *DebtServiceImpl) CloseDebt(ctx context.Context, userID, debtID int64) (*domain.Debt, error) {
	return s.transition(ctx, userID, debtID, "close", (*domain.Debt).Close)
}

// ReopenDebt marks a closed debt as active again.
func (s *DebtServiceImpl) ReopenDebt(ctx context.Context, userID, debtID int64) (*domain.Debt, error) {
	return s.transition(ctx, userID, debtID, "reopen", (*domain.Debt).Reopen)
}

// transition loads a debt under a row lock, applies a status change and
// writes it back.
func (s *DebtServiceImpl) transition(
	ctx context.Context,
	userID, debtID int64,
	action string,
	fn func(*domain.Debt) error,
) (*domain.Debt, error) {
	var updated *domain.Debt
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		debt, err := uow.Debts.GetByIDAndUserIDForUpdate(ctx, debtID, userID)
		if err != nil {
			return err
		}
		if err := fn(debt); err != nil {
			return err
		}
		if err := uow.Debts.Update(ctx, debt); err != nil {
			return err
		}
		updated = debt
		return nil
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if errors.Is(err, store.ErrDebtNotFound) || errors.Is(err, domain.ErrInvalidDebt) {
			return nil, err
		}
		s.logger.Error("failed to "+action+" debt", "error", err, "debt_id", debtID)
		return nil, fmt.Errorf("failed to %s debt: %w", action, err)
	}

	s.logger.Info("debt status changed",
		"debt_id", debtID,
		"user_id", userID,
		"action", action)
	return updated, nil
}

// DeleteDebt removes a debt.
func (s *DebtServiceImpl) DeleteDebt(ctx context.Context, userID, debtID int64) error {
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		debt, err := uow.Debts.GetByIDAndUserID(ctx, debtID, userID)
		if err != nil && !errors.Is(err, store.ErrDebtNotFound) {
			return err
		}
		if err := s.policy.ValidateDebtPresence(debt); err != nil {
			return err
		}
		_, err = uow.Debts.Delete(ctx, debtID)
		return err
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) {
			return err
		}
		s.logger.Error("failed to delete debt", "error", err, "debt_id", debtID)
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	s.logger.Info("debt deleted", "debt_id", debtID, "user_id", userID)
	return nil
}
