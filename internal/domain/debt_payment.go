package domain

import (
	"fmt"
	"time"
)

// DebtPayment ties a Debt to the Income or Expense row that funded the
// payment. Exactly one of IncomeID/ExpenseID is set (zero means absent);
// debt-reduction flows always use the deposit type with an expense leg.
type DebtPayment struct {
	ID        int64       `json:"id"`
	DebtID    int64       `json:"debt_id"`
	UserID    int64       `json:"user_id"`
	IncomeID  int64       `json:"income_id,omitempty"`
	ExpenseID int64       `json:"expense_id,omitempty"`
	PymtType  PaymentType `json:"pymt_type"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewDebtPayment creates a DebtPayment. Pass zero for the absent funding
// leg. Returns an error wrapping ErrInvalidDebtPayment if validation fails.
func NewDebtPayment(debtID, userID, incomeID, expenseID int64, pymtType string) (*DebtPayment, error) {
	if debtID <= 0 {
		return nil, validationErr(ErrInvalidDebtPayment, "debt_id", "must be a positive integer")
	}
	if userID <= 0 {
		return nil, validationErr(ErrInvalidDebtPayment, "user_id", "must be a positive integer")
	}
	if incomeID < 0 || expenseID < 0 {
		return nil, validationErr(ErrInvalidDebtPayment, "funding_leg", "ids cannot be negative")
	}
	if (incomeID == 0) == (expenseID == 0) {
		return nil, validationErr(ErrInvalidDebtPayment, "funding_leg",
			"exactly one of income_id or expense_id must be set")
	}
	typ, err := ParsePaymentType(pymtType, ErrInvalidDebtPayment)
	if err != nil {
		return nil, err
	}

	return &DebtPayment{
		DebtID:    debtID,
		UserID:    userID,
		IncomeID:  incomeID,
		ExpenseID: expenseID,
		PymtType:  typ,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (p *DebtPayment) String() string {
	return fmt.Sprintf("DebtPayment(id=%d, debt_id=%d, pymt_type=%s)", p.ID, p.DebtID, p.PymtType)
}
