package domain

import (
	"fmt"
	"strings"
	"time"
)

// DebtStatus is the two-state lifecycle of a debt.
type DebtStatus string

// Valid debt statuses.
const (
	DebtStatusActive DebtStatus = "active"
	DebtStatusClosed DebtStatus = "closed"
)

// Debt business rule bounds.
const (
	// MinDebtPrincipal is the minimum principal in PHP.
	MinDebtPrincipal = 100.0
	// MaxDebtInterestRate is the maximum annual interest rate in percent.
	MaxDebtInterestRate = 6.0
)

// Debt represents money owed to a lender, with principal, annual interest
// and a due date. Status transitions are explicit: Close and Reopen error
// when the debt is already in the requested state.
type Debt struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	Lender       string     `json:"lender"`
	Name         string     `json:"name"`
	Principal    float64    `json:"principal"`
	InterestRate float64    `json:"interest_rate"`
	StartDate    time.Time  `json:"start_date"`
	DueDate      time.Time  `json:"due_date"`
	Status       DebtStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewDebt creates an active Debt. An empty name defaults to
// "Debt to {lender}". Returns an error wrapping ErrInvalidDebt if any
// field violates the debt rules.
func NewDebt(
	userID int64,
	lender string,
	principal, interestRate float64,
	startDate, dueDate time.Time,
	name string,
) (*Debt, error) {
	if userID <= 0 {
		return nil, validationErr(ErrInvalidDebt, "user_id", "must be a positive integer")
	}
	cleanLender, err := validateLender(lender)
	if err != nil {
		return nil, err
	}
	if err := validatePrincipal(principal); err != nil {
		return nil, err
	}
	if err := validateInterestRate(interestRate); err != nil {
		return nil, err
	}
	start := DateOf(startDate)
	due := DateOf(dueDate)
	if err := validateDebtDates(start, due); err != nil {
		return nil, err
	}

	cleanName := trimmed(name)
	if cleanName == "" {
		cleanName = "Debt to " + cleanLender
	}

	return &Debt{
		UserID:       userID,
		Lender:       cleanLender,
		Name:         cleanName,
		Principal:    principal,
		InterestRate: interestRate,
		StartDate:    start,
		DueDate:      due,
		Status:       DebtStatusActive,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Close marks the debt closed. Closing an already-closed debt is an error,
// not a no-op.
func (d *Debt) Close() error {
	if d.Status == DebtStatusClosed {
		return validationErr(ErrInvalidDebt, "status", "debt is already closed")
	}
	d.Status = DebtStatusClosed
	return nil
}

// Reopen marks a closed debt active again. Reopening an active debt is an
// error, not a no-op.
func (d *Debt) Reopen() error {
	if d.Status == DebtStatusActive {
		return validationErr(ErrInvalidDebt, "status", "debt is already active")
	}
	d.Status = DebtStatusActive
	return nil
}

// UpdateTerms updates principal and/or interest rate with validation.
// Nil fields are left untouched.
func (d *Debt) UpdateTerms(principal, interestRate *float64) error {
	if principal != nil {
		if err := validatePrincipal(*principal); err != nil {
			return err
		}
		d.Principal = *principal
	}
	if interestRate != nil {
		if err := validateInterestRate(*interestRate); err != nil {
			return err
		}
		d.InterestRate = *interestRate
	}
	return nil
}

// InterestAmount returns simple interest accrued over the given number of
// months: principal x (rate/100) x (months/12).
func (d *Debt) InterestAmount(months int) float64 {
	return d.Principal * (d.InterestRate / 100) * (float64(months) / 12)
}

// ParseDebtStatus validates a raw status string.
func ParseDebtStatus(raw string) (DebtStatus, error) {
	status := DebtStatus(strings.ToLower(trimmed(raw)))
	if status != DebtStatusActive && status != DebtStatusClosed {
		return "", validationErr(ErrInvalidDebt, "status",
			fmt.Sprintf("must be %q or %q, got %q", DebtStatusActive, DebtStatusClosed, raw))
	}
	return status, nil
}

func validateLender(lender string) (string, error) {
	clean := trimmed(lender)
	if len(clean) < 3 {
		return "", validationErr(ErrInvalidDebt, "lender", "name must be at least 3 characters")
	}
	return clean, nil
}

func validatePrincipal(principal float64) error {
	if principal < MinDebtPrincipal {
		return validationErr(ErrInvalidDebt, "principal",
			fmt.Sprintf("must be at least %.0f PHP, got %v", MinDebtPrincipal, principal))
	}
	return nil
}

func validateInterestRate(rate float64) error {
	if rate < 0 {
		return validationErr(ErrInvalidDebt, "interest_rate", "cannot be negative")
	}
	if rate > MaxDebtInterestRate {
		return validationErr(ErrInvalidDebt, "interest_rate",
			fmt.Sprintf("cannot exceed %.0f%%, got %v%%", MaxDebtInterestRate, rate))
	}
	return nil
}

func validateDebtDates(start, due time.Time) error {
	today := Today()
	if start.After(today) {
		return validationErr(ErrInvalidDebt, "start_date", "cannot be in the future")
	}
	if !due.After(start) {
		return validationErr(ErrInvalidDebt, "due_date", "must be after start_date")
	}
	if due.Before(today) {
		return validationErr(ErrInvalidDebt, "due_date", "must be in the future")
	}
	return nil
}

func (d *Debt) String() string {
	return fmt.Sprintf("Debt(id=%d, lender=%s, principal=%v, interest_rate=%v%%, status=%s)",
		d.ID, d.Lender, d.Principal, d.InterestRate, d.Status)
}
