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

// CreateDebtPaymentInput is the raw debt-payment request. Amount and
// date arrive as strings, the same shape the other transaction inputs
// use.
type CreateDebtPaymentInput struct {
	UserID        int64
	DebtID        int64
	Amount        string
	PaymentDate   string
	PaymentMethod string
	Remarks       string
}

// DebtPaymentResult carries everything one payment created: the payment
// row, its funding expense and the category the expense landed in.
type DebtPaymentResult struct {
	Payment  *domain.DebtPayment `json:"payment"`
	Expense  *domain.Expense     `json:"expense"`
	Category *domain.Category    `json:"category"`
}

// DebtPaymentService records payments against debts.
type DebtPaymentService interface {
	// CreateDebtPayment validates the payment, locks the debt row,
	// derives or reuses the debt's auto-named expense category, creates
	// the funding expense and records the payment, all in one
	// transaction. A failure at any step leaves no orphaned category or
	// expense.
	CreateDebtPayment(ctx context.Context, in CreateDebtPaymentInput) (*DebtPaymentResult, error)

	// ListDebtPayments lists payments recorded against one debt, oldest
	// first.
	ListDebtPayments(ctx context.Context, userID, debtID int64) ([]*domain.DebtPayment, error)
}

// DebtPaymentServiceImpl implements the DebtPaymentService interface
type DebtPaymentServiceImpl struct {
	uow    *store.UnitOfWork
	policy policy.TransactionPolicy
	logger *slog.Logger
}

// NewDebtPaymentService creates a new DebtPaymentService
func NewDebtPaymentService(uow *store.UnitOfWork, logger *slog.Logger) DebtPaymentService {
	return &DebtPaymentServiceImpl{
		uow:    uow,
		logger: logger.With("component", "debt_payment_service"),
	}
}

// debtPaymentCategoryName derives the auto-named category a debt's
// payments land in.
func debtPaymentCategoryName(lender string) string {
	return "Debt payment to " + lender
}

// CreateDebtPayment records a payment against a debt.
func (s *DebtPaymentServiceImpl) CreateDebtPayment(ctx context.Context, in CreateDebtPaymentInput) (*DebtPaymentResult, error) {
	insert, err := s.policy.ValidateInsertDebtPayment(policy.DebtPaymentInsertInput{
		UserID: in.UserID,
		DebtID: in.DebtID,
	})
	if err != nil {
		s.logger.Debug("debt payment rejected by policy", "error", err)
		return nil, err
	}

	amount, err := policy.ValidateNumeric(in.Amount, "Amount", false)
	if err != nil {
		return nil, err
	}
	paymentDate, err := policy.ValidateDate(in.PaymentDate, "Payment Date", false, true)
	if err != nil {
		return nil, err
	}
	method, err := policy.ValidatePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var result *DebtPaymentResult
	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		// Lock the debt row so concurrent payments serialize.
		debt, err := uow.Debts.GetByIDAndUserIDForUpdate(ctx, insert.DebtID, insert.UserID)
		if err != nil && !errors.Is(err, store.ErrDebtNotFound) {
			return err
		}
		if err := s.policy.ValidateDebtPresence(debt); err != nil {
			return err
		}
		if debt.Status == domain.DebtStatusClosed {
			return policy.Errorf("Cannot record a payment against a closed debt")
		}

		category, err := s.findOrCreateCategory(ctx, uow, debt)
		if err != nil {
			return err
		}

		expense, err := domain.NewExpense(
			insert.UserID,
			category.ID,
			debt.Name,
			debt.Lender,
			amount,
			paymentDate,
			string(method),
			in.Remarks,
		)
		if err != nil {
			return err
		}
		if _, err := uow.Expenses.Save(ctx, expense); err != nil {
			return err
		}

		payment, err := domain.NewDebtPayment(
			debt.ID,
			insert.UserID,
			0,
			expense.ID,
			string(insert.PymtType),
		)
		if err != nil {
			return err
		}
		if _, err := uow.DebtPayments.Save(ctx, payment); err != nil {
			return err
		}

		result = &DebtPaymentResult{
			Payment:  payment,
			Expense:  expense,
			Category: category,
		}
		return nil
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, domain.ErrInvalidExpense) ||
			errors.Is(err, domain.ErrInvalidDebtPayment) {
			return nil, err
		}
		s.logger.Error("failed to record debt payment",
			"error", err,
			"debt_id", in.DebtID,
			"user_id", in.UserID)
		return nil, fmt.Errorf("failed to record debt payment: %w", err)
	}

	s.logger.Info("debt payment recorded",
		"payment_id", result.Payment.ID,
		"debt_id", result.Payment.DebtID,
		"expense_id", result.Expense.ID,
		"amount", amount)
	return result, nil
}

// findOrCreateCategory reuses the debt's auto-named expense category or
// creates it on first payment.
func (s *DebtPaymentServiceImpl) findOrCreateCategory(
	ctx context.Context,
	uow *store.UnitOfWork,
	debt *domain.Debt,
) (*domain.Category, error) {
	name := debtPaymentCategoryName(debt.Lender)

	category, err := uow.Categories.GetByNameAndUserID(ctx, name, debt.UserID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, store.ErrCategoryNotFound) {
		return nil, err
	}

	category, err = domain.NewCategory(
		debt.UserID,
		string(domain.CategoryTypeExpense),
		name,
		"Payments toward "+debt.Name,
	)
	if err != nil {
		return nil, err
	}
	if _, err := uow.Categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListDebtPayments lists payments recorded against one debt.
func (s *DebtPaymentServiceImpl) ListDebtPayments(ctx context.Context, userID, debtID int64) ([]*domain.DebtPayment, error) {
	debt, err := s.uow.Debts.GetByIDAndUserID(ctx, debtID, userID)
	if err != nil && !errors.Is(err, store.ErrDebtNotFound) {
		s.logger.Error("failed to retrieve debt for payment listing",
			"error", err,
			"debt_id", debtID)
		return nil, fmt.Errorf("failed to retrieve debt: %w", err)
	}
	if err := s.policy.ValidateDebtPresence(debt); err != nil {
		return nil, err
	}

	payments, err := s.uow.DebtPayments.GetAllByDebtID(ctx, debtID)
	if err != nil {
		s.logger.Error("failed to list debt payments", "error", err, "debt_id", debtID)
		return nil, fmt.Errorf("failed to list debt payments: %w", err)
	}
	return payments, nil
}
