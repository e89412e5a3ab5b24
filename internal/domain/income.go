package domain

import (
	"fmt"
	"time"
)

// Income represents money received by a user, filed under a category.
type Income struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	CategoryID    int64         `json:"category_id"`
	Name          string        `json:"name"`
	Source        string        `json:"source"`
	Amount        float64       `json:"amount"`
	ReceivedDate  time.Time     `json:"received_date"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Remarks       string        `json:"remarks,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// IncomeUpdate carries the optional fields accepted by Income.Update.
// Nil fields are left untouched.
type IncomeUpdate struct {
	CategoryID    *int64
	Name          *string
	Source        *string
	Amount        *float64
	ReceivedDate  *time.Time
	PaymentMethod *string
	Remarks       *string
}

// NewIncome creates an Income. Returns an error wrapping ErrInvalidIncome
// if any field violates the income rules.
func NewIncome(
	userID, categoryID int64,
	name, source string,
	amount float64,
	receivedDate time.Time,
	paymentMethod, remarks string,
) (*Income, error) {
	if userID <= 0 {
		return nil, validationErr(ErrInvalidIncome, "user_id", "must be a positive integer")
	}
	if categoryID <= 0 {
		return nil, validationErr(ErrInvalidIncome, "category_id", "must be a positive integer")
	}
	cleanName := trimmed(name)
	if cleanName == "" {
		return nil, validationErr(ErrInvalidIncome, "name", "cannot be empty")
	}
	cleanSource := trimmed(source)
	if cleanSource == "" {
		return nil, validationErr(ErrInvalidIncome, "source", "cannot be empty")
	}
	if amount <= 0 {
		return nil, validationErr(ErrInvalidIncome, "amount", "must be greater than zero")
	}
	received := DateOf(receivedDate)
	if received.After(Today()) {
		return nil, validationErr(ErrInvalidIncome, "received_date", "cannot be in the future")
	}
	method, err := ParsePaymentMethod(paymentMethod, ErrInvalidIncome)
	if err != nil {
		return nil, err
	}

	return &Income{
		UserID:        userID,
		CategoryID:    categoryID,
		Name:          cleanName,
		Source:        cleanSource,
		Amount:        amount,
		ReceivedDate:  received,
		PaymentMethod: method,
		Remarks:       trimmed(remarks),
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Update applies the non-nil fields of upd, re-validating each one.
func (i *Income) Update(upd IncomeUpdate) error {
	if upd.CategoryID != nil {
		if *upd.CategoryID <= 0 {
			return validationErr(ErrInvalidIncome, "category_id", "must be a positive integer")
		}
		i.CategoryID = *upd.CategoryID
	}
	if upd.Name != nil {
		clean := trimmed(*upd.Name)
		if clean == "" {
			return validationErr(ErrInvalidIncome, "name", "cannot be empty")
		}
		i.Name = clean
	}
	if upd.Source != nil {
		clean := trimmed(*upd.Source)
		if clean == "" {
			return validationErr(ErrInvalidIncome, "source", "cannot be empty")
		}
		i.Source = clean
	}
	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return validationErr(ErrInvalidIncome, "amount", "must be greater than zero")
		}
		i.Amount = *upd.Amount
	}
	if upd.ReceivedDate != nil {
		received := DateOf(*upd.ReceivedDate)
		if received.After(Today()) {
			return validationErr(ErrInvalidIncome, "received_date", "cannot be in the future")
		}
		i.ReceivedDate = received
	}
	if upd.PaymentMethod != nil {
		method, err := ParsePaymentMethod(*upd.PaymentMethod, ErrInvalidIncome)
		if err != nil {
			return err
		}
		i.PaymentMethod = method
	}
	if upd.Remarks != nil {
		i.Remarks = trimmed(*upd.Remarks)
	}
	return nil
}

// TransactionAmount implements the finance.Transaction read surface.
func (i *Income) TransactionAmount() float64 { return i.Amount }

// TransactionDate implements the finance.Transaction read surface.
func (i *Income) TransactionDate() time.Time { return i.ReceivedDate }

// TransactionCategory implements the finance.Transaction read surface.
func (i *Income) TransactionCategory() int64 { return i.CategoryID }

func (i *Income) String() string {
	return fmt.Sprintf("Income(id=%d, source=%s, amount=%v, received_date=%s)",
		i.ID, i.Source, i.Amount, i.ReceivedDate.Format("2006-01-02"))
}
