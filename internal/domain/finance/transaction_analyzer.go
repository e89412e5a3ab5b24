package finance

import (
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// Transaction is the read surface the analyzer needs from income and
// expense rows. Both *domain.Income and *domain.Expense satisfy it.
type Transaction interface {
	TransactionAmount() float64
	TransactionDate() time.Time
	TransactionCategory() int64
}

// MonthTotal is one month's aggregate in a spending trend, labelled by
// month name and year ("January 2026").
type MonthTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// GroupByCategory sums transaction amounts per category id.
func GroupByCategory[T Transaction](txns []T) map[int64]float64 {
	totals := make(map[int64]float64, len(txns))
	for _, t := range txns {
		totals[t.TransactionCategory()] += t.TransactionAmount()
	}
	return totals
}

// FilterByDateRange keeps transactions dated within [start, end],
// inclusive on both ends.
func FilterByDateRange[T Transaction](txns []T, start, end time.Time) []T {
	from := domain.DateOf(start)
	to := domain.DateOf(end)
	var out []T
	for _, t := range txns {
		d := domain.DateOf(t.TransactionDate())
		if !d.Before(from) && !d.After(to) {
			out = append(out, t)
		}
	}
	return out
}

// FilterThisMonth keeps transactions dated in the current calendar month.
func FilterThisMonth[T Transaction](txns []T) []T {
	today := domain.Today()
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return FilterByDateRange(txns, first, last)
}

// FilterThisYear keeps transactions dated in the current calendar year.
func FilterThisYear[T Transaction](txns []T) []T {
	today := domain.Today()
	first := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(today.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
	return FilterByDateRange(txns, first, last)
}

// AverageAmount returns the mean transaction amount, 0 for an empty list.
func AverageAmount[T Transaction](txns []T) float64 {
	if len(txns) == 0 {
		return 0
	}
	return TotalAmount(txns) / float64(len(txns))
}

// TotalAmount sums all transaction amounts.
func TotalAmount[T Transaction](txns []T) float64 {
	var total float64
	for _, t := range txns {
		total += t.TransactionAmount()
	}
	return total
}

// HighestTransaction returns the largest transaction by amount.
// The second return is false for an empty list.
func HighestTransaction[T Transaction](txns []T) (T, bool) {
	var best T
	if len(txns) == 0 {
		return best, false
	}
	best = txns[0]
	for _, t := range txns[1:] {
		if t.TransactionAmount() > best.TransactionAmount() {
			best = t
		}
	}
	return best, true
}

// LowestTransaction returns the smallest transaction by amount.
// The second return is false for an empty list.
func LowestTransaction[T Transaction](txns []T) (T, bool) {
	var best T
	if len(txns) == 0 {
		return best, false
	}
	best = txns[0]
	for _, t := range txns[1:] {
		if t.TransactionAmount() < best.TransactionAmount() {
			best = t
		}
	}
	return best, true
}

// SpendingTrend sums expenses per calendar month for the last numMonths
// months (current month included), oldest first.
func SpendingTrend(expenses []*domain.Expense, numMonths int) []MonthTotal {
	today := domain.Today()
	trend := make([]MonthTotal, 0, numMonths)

	for i := numMonths - 1; i >= 0; i-- {
		month := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)

		var total float64
		for _, e := range expenses {
			d := domain.DateOf(e.ExpenseDate)
			if d.Year() == month.Year() && d.Month() == month.Month() {
				total += e.Amount
			}
		}

		trend = append(trend, MonthTotal{
			Label: month.Format("January 2006"),
			Total: total,
		})
	}

	return trend
}
