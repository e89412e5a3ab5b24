package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pitaka-app/pitaka-api/internal/domain/finance"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// Dashboard is the headline figures shown on the home screen. Every
// number derives from the user's full recorded history.
type Dashboard struct {
	TotalIncome        float64 `json:"total_income"`
	TotalExpense       float64 `json:"total_expense"`
	TotalDebtPrincipal float64 `json:"total_debt_principal"`
	TotalDebtPayments  float64 `json:"total_debt_payments"`
	TotalSavings       float64 `json:"total_savings"`

	NetWorth          float64 `json:"net_worth"`
	NetValue          float64 `json:"net_value"`
	NetIncome         float64 `json:"net_income"`
	CurrentBalance    float64 `json:"current_balance"`
	AvailableBalance  float64 `json:"available_balance"`
	SavingsRate       float64 `json:"savings_rate"`
	ExpenseRatio      float64 `json:"expense_ratio"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio"`
}

// DashboardService derives the user's headline financial figures.
type DashboardService interface {
	// GetDashboard aggregates the user's recorded history into the
	// dashboard figures. It reads outside any transaction.
	GetDashboard(ctx context.Context, userID int64) (*Dashboard, error)
}

// DashboardServiceImpl implements the DashboardService interface
type DashboardServiceImpl struct {
	uow    *store.UnitOfWork
	logger *slog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(uow *store.UnitOfWork, logger *slog.Logger) DashboardService {
	return &DashboardServiceImpl{
		uow:    uow,
		logger: logger.With("component", "dashboard_service"),
	}
}

// GetDashboard aggregates the user's recorded history.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, userID int64) (*Dashboard, error) {
	totalIncome, err := s.uow.Incomes.CalculateTotalByUserID(ctx, userID)
	if err != nil {
		return nil, s.aggregateErr(err, "income total", userID)
	}
	totalExpense, err := s.uow.Expenses.CalculateTotalByUserID(ctx, userID)
	if err != nil {
		return nil, s.aggregateErr(err, "expense total", userID)
	}
	totalPrincipal, err := s.uow.Debts.CalculateTotalPrincipalByUserID(ctx, userID)
	if err != nil {
		return nil, s.aggregateErr(err, "debt principal total", userID)
	}
	totalDebtPayments, err := s.uow.DebtPayments.CalculateTotalByUserID(ctx, userID)
	if err != nil {
		return nil, s.aggregateErr(err, "debt payment total", userID)
	}
	totalDeposits, err := s.uow.SavingTransactions.CalculateTotalDepositsByUserID(ctx, userID)
	if err != nil {
		return nil, s.aggregateErr(err, "saving deposit total", userID)
	}

	return &Dashboard{
		TotalIncome:        totalIncome,
		TotalExpense:       totalExpense,
		TotalDebtPrincipal: totalPrincipal,
		TotalDebtPayments:  totalDebtPayments,
		TotalSavings:       totalDeposits,

		NetWorth:          finance.NetWorth(totalIncome, totalExpense, totalPrincipal, totalDeposits),
		NetValue:          finance.NetValue(totalIncome, totalExpense, totalDeposits),
		NetIncome:         finance.NetIncome(totalIncome, totalExpense),
		CurrentBalance:    finance.CurrentBalance(totalIncome, totalExpense, totalDebtPayments, totalDeposits),
		AvailableBalance:  finance.AvailableBalance(totalIncome, totalExpense, totalDebtPayments, totalDeposits, finance.DefaultMinimumBalance),
		SavingsRate:       finance.SavingsRate(totalIncome, totalDeposits),
		ExpenseRatio:      finance.ExpenseRatio(totalIncome, totalExpense),
		DebtToIncomeRatio: finance.DebtToIncomeRatio(totalPrincipal, totalIncome),
	}, nil
}

func (s *DashboardServiceImpl) aggregateErr(err error, what string, userID int64) error {
	s.logger.Error("failed to calculate "+what, "error", err, "user_id", userID)
	return fmt.Errorf("failed to calculate %s: %w", what, err)
}
