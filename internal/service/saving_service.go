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

// Auto-named categories the funding legs of saving transactions land in.
const (
	savingDepositCategory  = "Savings deposit"
	savingWithdrawCategory = "Savings withdrawal"
)

// GoalSummary is a saving goal with its derived progress figures.
type GoalSummary struct {
	Goal      *domain.SavingGoal `json:"goal"`
	Progress  float64            `json:"progress"`
	Remaining float64            `json:"remaining"`
	OnTrack   bool               `json:"on_track"`
}

// GoalListing is every goal the user has, summarized and bucketed.
type GoalListing struct {
	Goals    []*GoalSummary      `json:"goals"`
	Buckets  finance.GoalBuckets `json:"buckets"`
	Priority *domain.SavingGoal  `json:"priority,omitempty"`
}

// SavingTransactionResult carries everything one deposit or withdrawal
// created, plus the goal's updated running amount.
type SavingTransactionResult struct {
	Transaction *domain.SavingTransaction `json:"transaction"`
	Goal        *domain.SavingGoal        `json:"goal"`
}

// SavingService manages saving goals and the deposits and withdrawals
// recorded against them.
type SavingService interface {
	// CreateGoal validates and persists a new saving goal. Goal names
	// are unique per user.
	CreateGoal(ctx context.Context, in policy.SavingGoalInsertInput) (*domain.SavingGoal, error)

	// GetGoal retrieves one goal with derived progress figures.
	GetGoal(ctx context.Context, userID, goalID int64) (*GoalSummary, error)

	// ListGoals lists the user's goals with progress figures, bucketed
	// by status, plus the incomplete goal with the nearest target date.
	ListGoals(ctx context.Context, userID int64) (*GoalListing, error)

	// UpdateGoal applies a partial edit to a goal the user owns.
	UpdateGoal(ctx context.Context, userID, goalID int64, in policy.SavingGoalEditInput) (*domain.SavingGoal, error)

	// DeleteGoal removes a goal and its recorded transactions. The
	// funding income and expense rows stay in the user's history.
	DeleteGoal(ctx context.Context, userID, goalID int64) error

	// Deposit records money moved into a goal. It creates an income
	// funding leg under the savings-deposit category, the deposit
	// transaction, and bumps the goal's running amount, all in one
	// transaction.
	Deposit(ctx context.Context, in policy.SavingTransactionInsertInput) (*SavingTransactionResult, error)

	// Withdraw records money taken back out of a goal. It creates an
	// expense funding leg, the withdraw transaction, and lowers the
	// goal's running amount. Withdrawing more than the goal holds is
	// rejected.
	Withdraw(ctx context.Context, in policy.SavingTransactionInsertInput) (*SavingTransactionResult, error)

	// ListGoalTransactions lists the deposits and withdrawals recorded
	// against one goal, oldest first.
	ListGoalTransactions(ctx context.Context, userID, goalID int64) ([]*domain.SavingTransaction, error)
}

// SavingServiceImpl implements the SavingService interface
type SavingServiceImpl struct {
	uow    *store.UnitOfWork
	policy policy.SavingPolicy
	logger *slog.Logger
}

// NewSavingService creates a new SavingService
func NewSavingService(uow *store.UnitOfWork, logger *slog.Logger) SavingService {
	return &SavingServiceImpl{
		uow:    uow,
		logger: logger.With("component", "saving_service"),
	}
}

// CreateGoal validates and persists a new saving goal.
func (s *SavingServiceImpl) CreateGoal(ctx context.Context, in policy.SavingGoalInsertInput) (*domain.SavingGoal, error) {
	insert, err := s.policy.ValidateInsertGoal(in)
	if err != nil {
		s.logger.Debug("goal creation rejected by policy", "error", err)
		return nil, err
	}

	var goal *domain.SavingGoal
	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		existing, err := uow.SavingGoals.GetByNameAndUserID(ctx, insert.Name, insert.UserID)
		if err != nil && !errors.Is(err, store.ErrSavingGoalNotFound) {
			return err
		}
		if err := s.policy.ValidateDuplicateGoalName(existing); err != nil {
			return err
		}

		goal, err = domain.NewSavingGoal(
			insert.UserID,
			insert.Name,
			insert.TargetAmount,
			insert.TargetDate,
			insert.Remarks,
		)
		if err != nil {
			return err
		}
		_, err = uow.SavingGoals.Save(ctx, goal)
		return err
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, domain.ErrInvalidSavingGoal) ||
			errors.Is(err, store.ErrGoalNameExists) {
			return nil, err
		}
		s.logger.Error("failed to create saving goal", "error", err, "user_id", insert.UserID)
		return nil, fmt.Errorf("failed to create saving goal: %w", err)
	}

	s.logger.Info("saving goal created", "goal_id", goal.ID, "user_id", goal.UserID)
	return goal, nil
}

func summarizeGoal(goal *domain.SavingGoal) *GoalSummary {
	return &GoalSummary{
		Goal:      goal,
		Progress:  finance.GoalProgressPercentage(goal),
		Remaining: finance.RemainingAmount(goal),
		OnTrack:   finance.IsOnTrack(goal),
	}
}

// GetGoal retrieves one goal with derived progress figures.
func (s *SavingServiceImpl) GetGoal(ctx context.Context, userID, goalID int64) (*GoalSummary, error) {
	goal, err := s.uow.SavingGoals.GetByIDAndUserID(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, store.ErrSavingGoalNotFound) {
			return nil, err
		}
		s.logger.Error("failed to retrieve saving goal", "error", err, "goal_id", goalID)
		return nil, fmt.Errorf("failed to retrieve saving goal: %w", err)
	}
	return summarizeGoal(goal), nil
}

// ListGoals lists the user's goals with progress figures and buckets.
func (s *SavingServiceImpl) ListGoals(ctx context.Context, userID int64) (*GoalListing, error) {
	goals, err := s.uow.SavingGoals.GetAllByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list saving goals", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list saving goals: %w", err)
	}

	listing := &GoalListing{
		Goals:    make([]*GoalSummary, 0, len(goals)),
		Buckets:  finance.CategorizeGoals(goals),
		Priority: finance.HighestPriorityGoal(goals),
	}
	for _, g := range goals {
		listing.Goals = append(listing.Goals, summarizeGoal(g))
	}
	return listing, nil
}

// UpdateGoal applies a partial edit to a goal the user owns.
func (s *SavingServiceImpl) UpdateGoal(ctx context.Context, userID, goalID int64, in policy.SavingGoalEditInput) (*domain.SavingGoal, error) {
	var goal *domain.SavingGoal
	err := s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		var err error
		goal, err = uow.SavingGoals.GetByIDAndUserIDForUpdate(ctx, goalID, userID)
		if err != nil && !errors.Is(err, store.ErrSavingGoalNotFound) {
			return err
		}

		upd, err := s.policy.ValidateGoalEdit(in, goal)
		if err != nil {
			return err
		}

		if upd.Name != nil && *upd.Name != goal.Name {
			existing, err := uow.SavingGoals.GetByNameAndUserID(ctx, *upd.Name, userID)
			if err != nil && !errors.Is(err, store.ErrSavingGoalNotFound) {
				return err
			}
			if err := s.policy.ValidateDuplicateGoalName(existing); err != nil {
				return err
			}
		}

		if err := goal.Update(upd); err != nil {
			return err
		}
		return uow.SavingGoals.Update(ctx, goal)
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, domain.ErrInvalidSavingGoal) ||
			errors.Is(err, store.ErrGoalNameExists) {
			return nil, err
		}
		s.logger.Error("failed to update saving goal", "error", err, "goal_id", goalID)
		return nil, fmt.Errorf("failed to update saving goal: %w", err)
	}

	s.logger.Info("saving goal updated", "goal_id", goal.ID)
	return goal, nil
}

// DeleteGoal removes a goal and its recorded transactions.
func (s *SavingServiceImpl) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	goal, err := s.uow.SavingGoals.GetByIDAndUserID(ctx, goalID, userID)
	if err != nil {
		if errors.Is(err, store.ErrSavingGoalNotFound) {
			return err
		}
		s.logger.Error("failed to retrieve saving goal for deletion", "error", err, "goal_id", goalID)
		return fmt.Errorf("failed to retrieve saving goal: %w", err)
	}

	deleted, err := s.uow.SavingGoals.Delete(ctx, goal.ID)
	if err != nil {
		s.logger.Error("failed to delete saving goal", "error", err, "goal_id", goalID)
		return fmt.Errorf("failed to delete saving goal: %w", err)
	}
	if !deleted {
		return store.ErrSavingGoalNotFound
	}

	s.logger.Info("saving goal deleted", "goal_id", goalID, "user_id", userID)
	return nil
}

// Deposit records money moved into a goal.
func (s *SavingServiceImpl) Deposit(ctx context.Context, in policy.SavingTransactionInsertInput) (*SavingTransactionResult, error) {
	in.TxtType = string(domain.PaymentTypeDeposit)
	return s.record(ctx, in)
}

// Withdraw records money taken back out of a goal.
func (s *SavingServiceImpl) Withdraw(ctx context.Context, in policy.SavingTransactionInsertInput) (*SavingTransactionResult, error) {
	in.TxtType = string(domain.PaymentTypeWithdraw)
	return s.record(ctx, in)
}

// record runs the shared deposit/withdraw flow: lock the goal, create
// the funding leg, record the transaction and move the running amount.
func (s *SavingServiceImpl) record(ctx context.Context, in policy.SavingTransactionInsertInput) (*SavingTransactionResult, error) {
	insert, err := s.policy.ValidateInsertTransaction(in)
	if err != nil {
		s.logger.Debug("saving transaction rejected by policy", "error", err)
		return nil, err
	}

	var result *SavingTransactionResult
	err = s.uow.WithTransaction(ctx, func(ctx context.Context, uow *store.UnitOfWork) error {
		goal, err := uow.SavingGoals.GetByIDAndUserIDForUpdate(ctx, insert.GoalID, insert.UserID)
		if err != nil && !errors.Is(err, store.ErrSavingGoalNotFound) {
			return err
		}
		if err := s.policy.ValidateGoalPresence(goal); err != nil {
			return err
		}

		var incomeID, expenseID int64
		if insert.TxtType == domain.PaymentTypeDeposit {
			incomeID, err = s.createDepositLeg(ctx, uow, goal, insert)
		} else {
			if err := s.policy.ValidateWithdrawal(goal, insert.Amount); err != nil {
				return err
			}
			expenseID, err = s.createWithdrawLeg(ctx, uow, goal, insert)
		}
		if err != nil {
			return err
		}

		txn, err := domain.NewSavingTransaction(
			goal.ID,
			insert.UserID,
			string(insert.TxtType),
			incomeID,
			expenseID,
			insert.Amount,
			insert.TxtDate,
			insert.Remarks,
		)
		if err != nil {
			return err
		}
		if _, err := uow.SavingTransactions.Save(ctx, txn); err != nil {
			return err
		}

		if insert.TxtType == domain.PaymentTypeDeposit {
			goal.CurrentAmount += insert.Amount
		} else {
			goal.CurrentAmount -= insert.Amount
		}
		if err := uow.SavingGoals.Update(ctx, goal); err != nil {
			return err
		}

		result = &SavingTransactionResult{Transaction: txn, Goal: goal}
		return nil
	})
	if err != nil {
		err = unwrapTransactionError(err)
		if policy.IsPolicyError(err) || errors.Is(err, domain.ErrInvalidSavingTransaction) {
			return nil, err
		}
		s.logger.Error("failed to record saving transaction",
			"error", err,
			"goal_id", insert.GoalID,
			"txt_type", insert.TxtType)
		return nil, fmt.Errorf("failed to record saving transaction: %w", err)
	}

	s.logger.Info("saving transaction recorded",
		"transaction_id", result.Transaction.ID,
		"goal_id", result.Goal.ID,
		"txt_type", insert.TxtType,
		"amount", insert.Amount)
	return result, nil
}

// createDepositLeg books the income row a deposit is funded by.
func (s *SavingServiceImpl) createDepositLeg(
	ctx context.Context,
	uow *store.UnitOfWork,
	goal *domain.SavingGoal,
	insert policy.SavingTransactionInsert,
) (int64, error) {
	category, err := s.findOrCreateCategory(ctx, uow, goal.UserID, domain.CategoryTypeIncome, savingDepositCategory)
	if err != nil {
		return 0, err
	}

	income, err := domain.NewIncome(
		goal.UserID,
		category.ID,
		goal.Name,
		savingDepositCategory,
		insert.Amount,
		insert.TxtDate,
		string(domain.PaymentMethodBank),
		insert.Remarks,
	)
	if err != nil {
		return 0, err
	}
	return uow.Incomes.Save(ctx, income)
}

// createWithdrawLeg books the expense row a withdrawal is funded by.
func (s *SavingServiceImpl) createWithdrawLeg(
	ctx context.Context,
	uow *store.UnitOfWork,
	goal *domain.SavingGoal,
	insert policy.SavingTransactionInsert,
) (int64, error) {
	category, err := s.findOrCreateCategory(ctx, uow, goal.UserID, domain.CategoryTypeExpense, savingWithdrawCategory)
	if err != nil {
		return 0, err
	}

	expense, err := domain.NewExpense(
		goal.UserID,
		category.ID,
		goal.Name,
		savingWithdrawCategory,
		insert.Amount,
		insert.TxtDate,
		string(domain.PaymentMethodBank),
		insert.Remarks,
	)
	if err != nil {
		return 0, err
	}
	return uow.Expenses.Save(ctx, expense)
}

// findOrCreateCategory reuses the auto-named funding category or creates
// it on first use.
func (s *SavingServiceImpl) findOrCreateCategory(
	ctx context.Context,
	uow *store.UnitOfWork,
	userID int64,
	categoryType domain.CategoryType,
	name string,
) (*domain.Category, error) {
	category, err := uow.Categories.GetByNameAndUserID(ctx, name, userID)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, store.ErrCategoryNotFound) {
		return nil, err
	}

	category, err = domain.NewCategory(userID, string(categoryType), name, "Saving goal transfers")
	if err != nil {
		return nil, err
	}
	if _, err := uow.Categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListGoalTransactions lists the transactions recorded against one goal.
func (s *SavingServiceImpl) ListGoalTransactions(ctx context.Context, userID, goalID int64) ([]*domain.SavingTransaction, error) {
	goal, err := s.uow.SavingGoals.GetByIDAndUserID(ctx, goalID, userID)
	if err != nil && !errors.Is(err, store.ErrSavingGoalNotFound) {
		s.logger.Error("failed to retrieve saving goal for transaction listing",
			"error", err,
			"goal_id", goalID)
		return nil, fmt.Errorf("failed to retrieve saving goal: %w", err)
	}
	if err := s.policy.ValidateGoalPresence(goal); err != nil {
		return nil, err
	}

	transactions, err := s.uow.SavingTransactions.GetAllByGoalID(ctx, goalID)
	if err != nil {
		s.logger.Error("failed to list saving transactions", "error", err, "goal_id", goalID)
		return nil, fmt.Errorf("failed to list saving transactions: %w", err)
	}
	return transactions, nil
}
