package finance

import (
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// DefaultDueSoonDays is the window within which a debt counts as due soon.
const DefaultDueSoonDays = 7

// Human-readable debt status labels, in priority order.
const (
	DebtLabelClosed  = "Closed"
	DebtLabelOverdue = "Overdue"
	DebtLabelDueSoon = "Due Soon"
	DebtLabelActive  = "Active"
)

// InterestAccrued returns simple interest over a period:
// principal x (rate/100) x (months/12).
//
// InterestAccrued(10000, 6, 3) == 150.
func InterestAccrued(principal, annualRate float64, months int) (float64, error) {
	if principal < 0 {
		return 0, domainErr(domain.ErrInvalidDebt, "principal cannot be negative")
	}
	if annualRate < 0 {
		return 0, domainErr(domain.ErrInvalidDebt, "interest rate cannot be negative")
	}
	if months < 0 {
		return 0, domainErr(domain.ErrInvalidDebt, "months cannot be negative")
	}
	return principal * (annualRate / 100) * (float64(months) / 12), nil
}

// TotalAmountDue returns principal plus interest accrued over the period.
func TotalAmountDue(principal, annualRate float64, months int) (float64, error) {
	interest, err := InterestAccrued(principal, annualRate, months)
	if err != nil {
		return 0, err
	}
	return principal + interest, nil
}

// MonthlyPayment returns the equal-installment payment needed to settle
// the total amount due over monthsRemaining. Simple interest only; real
// loans amortize. Errors when monthsRemaining is zero or negative.
func MonthlyPayment(principal, annualRate float64, monthsRemaining int) (float64, error) {
	if monthsRemaining <= 0 {
		return 0, domainErr(domain.ErrInvalidDebt, "months remaining must be greater than zero")
	}
	total, err := TotalAmountDue(principal, annualRate, monthsRemaining)
	if err != nil {
		return 0, err
	}
	return total / float64(monthsRemaining), nil
}

// MonthsUntilDue returns the whole-month difference between the due date
// and today, floored at zero.
func MonthsUntilDue(dueDate time.Time) int {
	today := domain.Today()
	due := domain.DateOf(dueDate)
	if !due.After(today) {
		return 0
	}
	months := (due.Year()-today.Year())*12 + int(due.Month()) - int(today.Month())
	return max(0, months)
}

// IsOverdue reports whether the due date is strictly in the past.
func IsOverdue(dueDate time.Time) bool {
	return domain.DateOf(dueDate).Before(domain.Today())
}

// IsDueSoon reports whether the due date falls within the next
// daysThreshold days, excluding today and overdue dates.
func IsDueSoon(dueDate time.Time, daysThreshold int) bool {
	days := int(domain.DateOf(dueDate).Sub(domain.Today()).Hours() / 24)
	return days > 0 && days <= daysThreshold
}

// DebtStatusLabel returns the display label for a debt:
// Closed beats Overdue beats Due Soon beats Active.
func DebtStatusLabel(debt *domain.Debt) string {
	if debt.Status == domain.DebtStatusClosed {
		return DebtLabelClosed
	}
	if IsOverdue(debt.DueDate) {
		return DebtLabelOverdue
	}
	if IsDueSoon(debt.DueDate, DefaultDueSoonDays) {
		return DebtLabelDueSoon
	}
	return DebtLabelActive
}
