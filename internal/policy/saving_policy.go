package policy

import (
	"strings"
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// SavingGoalInsertInput is the untrusted goal-creation shape.
type SavingGoalInsertInput struct {
	UserID       int64
	Name         string
	TargetAmount string
	TargetDate   string
	Remarks      string
}

// SavingGoalInsert is the cleaned goal-creation data.
type SavingGoalInsert struct {
	UserID       int64
	Name         string
	TargetAmount float64
	TargetDate   time.Time
	Remarks      string
}

// SavingGoalEditInput is the untrusted goal-edit shape.
type SavingGoalEditInput struct {
	Name         *string
	TargetAmount *string
	TargetDate   *string
	Remarks      *string
}

// SavingTransactionInsertInput is the untrusted deposit/withdraw shape.
type SavingTransactionInsertInput struct {
	UserID  int64
	GoalID  int64
	TxtType string
	Amount  string
	TxtDate string
	Remarks string
}

// SavingTransactionInsert is the cleaned deposit/withdraw data.
type SavingTransactionInsert struct {
	UserID  int64
	GoalID  int64
	TxtType domain.PaymentType
	Amount  float64
	TxtDate time.Time
	Remarks string
}

// SavingPolicy validates saving goals and their deposit/withdraw
// transactions.
type SavingPolicy struct{}

// ValidateInsertGoal checks the goal-creation form.
func (SavingPolicy) ValidateInsertGoal(in SavingGoalInsertInput) (SavingGoalInsert, error) {
	if err := requireFields(
		idField("user_id", in.UserID),
		stringField("name", in.Name),
		stringField("target_amount", in.TargetAmount),
		stringField("target_date", in.TargetDate),
	); err != nil {
		return SavingGoalInsert{}, err
	}

	userID, err := ValidateID(in.UserID, "User ID")
	if err != nil {
		return SavingGoalInsert{}, err
	}
	name, err := ValidateString(in.Name, "Goal Name", 3)
	if err != nil {
		return SavingGoalInsert{}, err
	}
	amount, err := ValidateNumeric(in.TargetAmount, "Target Amount", false)
	if err != nil {
		return SavingGoalInsert{}, err
	}
	targetDate, err := ValidateDate(in.TargetDate, "Target Date", true, false)
	if err != nil {
		return SavingGoalInsert{}, err
	}

	return SavingGoalInsert{
		UserID:       userID,
		Name:         name,
		TargetAmount: amount,
		TargetDate:   targetDate,
		Remarks:      strings.TrimSpace(in.Remarks),
	}, nil
}

// ValidateDuplicateGoalName rejects a goal name already used by the user.
func (SavingPolicy) ValidateDuplicateGoalName(existing *domain.SavingGoal) error {
	if existing != nil {
		return Errorf("You already have %q as a saving goal", existing.Name)
	}
	return nil
}

// ValidateGoalEdit checks a partial goal update against a fetched goal.
func (SavingPolicy) ValidateGoalEdit(in SavingGoalEditInput, goal *domain.SavingGoal) (domain.SavingGoalUpdate, error) {
	if goal == nil {
		return domain.SavingGoalUpdate{}, Errorf("Saving goal not found")
	}
	if in.Name == nil && in.TargetAmount == nil && in.TargetDate == nil && in.Remarks == nil {
		return domain.SavingGoalUpdate{}, Errorf("No valid fields provided for update")
	}

	var out domain.SavingGoalUpdate
	if in.Name != nil {
		name, err := ValidateString(*in.Name, "Goal Name", 3)
		if err != nil {
			return domain.SavingGoalUpdate{}, err
		}
		out.Name = &name
	}
	if in.TargetAmount != nil {
		amount, err := ValidateNumeric(*in.TargetAmount, "Target Amount", false)
		if err != nil {
			return domain.SavingGoalUpdate{}, err
		}
		out.TargetAmount = &amount
	}
	if in.TargetDate != nil {
		date, err := ValidateDate(*in.TargetDate, "Target Date", true, false)
		if err != nil {
			return domain.SavingGoalUpdate{}, err
		}
		out.TargetDate = &date
	}
	if in.Remarks != nil {
		remarks := strings.TrimSpace(*in.Remarks)
		out.Remarks = &remarks
	}
	return out, nil
}

// ValidateInsertTransaction checks the deposit/withdraw form.
func (SavingPolicy) ValidateInsertTransaction(in SavingTransactionInsertInput) (SavingTransactionInsert, error) {
	if err := requireFields(
		idField("user_id", in.UserID),
		idField("goal_id", in.GoalID),
		stringField("txt_type", in.TxtType),
		stringField("amount", in.Amount),
		stringField("txt_date", in.TxtDate),
	); err != nil {
		return SavingTransactionInsert{}, err
	}

	userID, err := ValidateID(in.UserID, "User ID")
	if err != nil {
		return SavingTransactionInsert{}, err
	}
	goalID, err := ValidateID(in.GoalID, "Goal ID")
	if err != nil {
		return SavingTransactionInsert{}, err
	}
	txtType, err := ValidatePaymentType(in.TxtType)
	if err != nil {
		return SavingTransactionInsert{}, err
	}
	amount, err := ValidateNumeric(in.Amount, "Amount", false)
	if err != nil {
		return SavingTransactionInsert{}, err
	}
	txtDate, err := ValidateDate(in.TxtDate, "Transaction Date", false, true)
	if err != nil {
		return SavingTransactionInsert{}, err
	}

	return SavingTransactionInsert{
		UserID:  userID,
		GoalID:  goalID,
		TxtType: txtType,
		Amount:  amount,
		TxtDate: txtDate,
		Remarks: strings.TrimSpace(in.Remarks),
	}, nil
}

// ValidateGoalPresence rejects transactions against a goal that was not
// found under the acting user.
func (SavingPolicy) ValidateGoalPresence(goal *domain.SavingGoal) error {
	if goal == nil {
		return Errorf("No Saving Goal record found")
	}
	return nil
}

// ValidateWithdrawal rejects withdrawing more than the goal currently
// holds.
func (SavingPolicy) ValidateWithdrawal(goal *domain.SavingGoal, amount float64) error {
	if amount > goal.CurrentAmount {
		return Errorf("Cannot withdraw more than the current saved amount")
	}
	return nil
}
