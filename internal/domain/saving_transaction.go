package domain

import (
	"fmt"
	"time"
)

// SavingTransaction records a deposit to or withdrawal from a saving goal,
// linked to the Income or Expense row that funded it. Exactly one of
// IncomeID/ExpenseID is set (zero means absent).
type SavingTransaction struct {
	ID        int64       `json:"id"`
	GoalID    int64       `json:"goal_id"`
	UserID    int64       `json:"user_id"`
	TxtType   PaymentType `json:"txt_type"`
	IncomeID  int64       `json:"income_id,omitempty"`
	ExpenseID int64       `json:"expense_id,omitempty"`
	Amount    float64     `json:"amount"`
	TxtDate   time.Time   `json:"txt_date"`
	Remarks   string      `json:"remarks,omitempty"`
}

// NewSavingTransaction creates a SavingTransaction. Pass zero for the
// absent funding leg. Returns an error wrapping ErrInvalidSavingTransaction
// if validation fails.
func NewSavingTransaction(
	goalID, userID int64,
	txtType string,
	incomeID, expenseID int64,
	amount float64,
	txtDate time.Time,
	remarks string,
) (*SavingTransaction, error) {
	if goalID <= 0 {
		return nil, validationErr(ErrInvalidSavingTransaction, "goal_id", "must be a positive integer")
	}
	if userID <= 0 {
		return nil, validationErr(ErrInvalidSavingTransaction, "user_id", "must be a positive integer")
	}
	typ, err := ParsePaymentType(txtType, ErrInvalidSavingTransaction)
	if err != nil {
		return nil, err
	}
	if incomeID < 0 || expenseID < 0 {
		return nil, validationErr(ErrInvalidSavingTransaction, "funding_leg", "ids cannot be negative")
	}
	if (incomeID == 0) == (expenseID == 0) {
		return nil, validationErr(ErrInvalidSavingTransaction, "funding_leg",
			"exactly one of income_id or expense_id must be set")
	}
	if amount <= 0 {
		return nil, validationErr(ErrInvalidSavingTransaction, "amount", "must be greater than zero")
	}
	date := DateOf(txtDate)
	if date.After(Today()) {
		return nil, validationErr(ErrInvalidSavingTransaction, "txt_date", "cannot be in the future")
	}

	return &SavingTransaction{
		GoalID:    goalID,
		UserID:    userID,
		TxtType:   typ,
		IncomeID:  incomeID,
		ExpenseID: expenseID,
		Amount:    amount,
		TxtDate:   date,
		Remarks:   trimmed(remarks),
	}, nil
}

func (t *SavingTransaction) String() string {
	return fmt.Sprintf("SavingTransaction(id=%d, goal_id=%d, txt_type=%s, amount=%v)",
		t.ID, t.GoalID, t.TxtType, t.Amount)
}
