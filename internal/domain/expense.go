package domain

import (
	"fmt"
	"time"
)

// Expense represents money spent by a user, filed under a category.
// It mirrors Income field-for-field but is keyed on a payee rather than
// a source.
type Expense struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	CategoryID    int64         `json:"category_id"`
	Name          string        `json:"name"`
	Payee         string        `json:"payee"`
	Amount        float64       `json:"amount"`
	ExpenseDate   time.Time     `json:"expense_date"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Remarks       string        `json:"remarks,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ExpenseUpdate carries the optional fields accepted by Expense.Update.
// Nil fields are left untouched.
type ExpenseUpdate struct {
	CategoryID    *int64
	Name          *string
	Payee         *string
	Amount        *float64
	ExpenseDate   *time.Time
	PaymentMethod *string
	Remarks       *string
}

// NewExpense creates an Expense. Returns an error wrapping
// ErrInvalidExpense if any field violates the expense rules.
func NewExpense(
	userID, categoryID int64,
	name, payee string,
	amount float64,
	expenseDate time.Time,
	paymentMethod, remarks string,
) (*Expense, error) {
	if userID <= 0 {
		return nil, validationErr(ErrInvalidExpense, "user_id", "must be a positive integer")
	}
	if categoryID <= 0 {
		return nil, validationErr(ErrInvalidExpense, "category_id", "must be a positive integer")
	}
	cleanName := trimmed(name)
	if cleanName == "" {
		return nil, validationErr(ErrInvalidExpense, "name", "cannot be empty")
	}
	cleanPayee := trimmed(payee)
	if cleanPayee == "" {
		return nil, validationErr(ErrInvalidExpense, "payee", "cannot be empty")
	}
	if amount <= 0 {
		return nil, validationErr(ErrInvalidExpense, "amount", "must be greater than zero")
	}
	date := DateOf(expenseDate)
	if date.After(Today()) {
		return nil, validationErr(ErrInvalidExpense, "expense_date", "cannot be in the future")
	}
	method, err := ParsePaymentMethod(paymentMethod, ErrInvalidExpense)
	if err != nil {
		return nil, err
	}

	return &Expense{
		UserID:        userID,
		CategoryID:    categoryID,
		Name:          cleanName,
		Payee:         cleanPayee,
		Amount:        amount,
		ExpenseDate:   date,
		PaymentMethod: method,
		Remarks:       trimmed(remarks),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Update applies the non-nil fields of upd, re-validating each one.
func (e *Expense) Update(upd ExpenseUpdate) error {
	if upd.CategoryID != nil {
		if *upd.CategoryID <= 0 {
			return validationErr(ErrInvalidExpense, "category_id", "must be a positive integer")
		}
		e.CategoryID = *upd.CategoryID
	}
	if upd.Name != nil {
		clean := trimmed(*upd.Name)
		if clean == "" {
			return validationErr(ErrInvalidExpense, "name", "cannot be empty")
		}
		e.Name = clean
	}
	if upd.Payee != nil {
		clean := trimmed(*upd.Payee)
		if clean == "" {
			return validationErr(ErrInvalidExpense, "payee", "cannot be empty")
		}
		e.Payee = clean
	}
	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return validationErr(ErrInvalidExpense, "amount", "must be greater than zero")
		}
		e.Amount = *upd.Amount
	}
	if upd.ExpenseDate != nil {
		date := DateOf(*upd.ExpenseDate)
		if date.After(Today()) {
			return validationErr(ErrInvalidExpense, "expense_date", "cannot be in the future")
		}
		e.ExpenseDate = date
	}
	if upd.PaymentMethod != nil {
		method, err := ParsePaymentMethod(*upd.PaymentMethod, ErrInvalidExpense)
		if err != nil {
			return err
		}
		e.PaymentMethod = method
	}
	if upd.Remarks != nil {
		e.Remarks = trimmed(*upd.Remarks)
	}
	return nil
}

// TransactionAmount implements the finance.Transaction read surface.
func (e *Expense) TransactionAmount() float64 { return e.Amount }

// TransactionDate implements the finance.Transaction read surface.
func (e *Expense) TransactionDate() time.Time { return e.ExpenseDate }

// TransactionCategory implements the finance.Transaction read surface.
func (e *Expense) TransactionCategory() int64 { return e.CategoryID }

func (e *Expense) String() string {
	return fmt.Sprintf("Expense(id=%d, payee=%s, amount=%v, expense_date=%s)",
		e.ID, e.Payee, e.Amount, e.ExpenseDate.Format("2006-01-02"))
}
