package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

func expenseOn(amount float64, categoryID int64, date time.Time) *domain.Expense {
	return &domain.Expense{CategoryID: categoryID, Amount: amount, ExpenseDate: domain.DateOf(date)}
}

func TestAverageAmount(t *testing.T) {
	t.Parallel()

	assert.Zero(t, AverageAmount([]*domain.Expense{}), "empty list averages to zero")

	txns := []*domain.Expense{
		expenseOn(10, 1, domain.Today()),
		expenseOn(20, 1, domain.Today()),
		expenseOn(30, 1, domain.Today()),
	}
	assert.InDelta(t, 20.0, AverageAmount(txns), 1e-9)
}

func TestTotalAmount(t *testing.T) {
	t.Parallel()

	assert.Zero(t, TotalAmount([]*domain.Expense{}))

	txns := []*domain.Expense{
		expenseOn(100.50, 1, domain.Today()),
		expenseOn(200.25, 2, domain.Today()),
	}
	assert.InDelta(t, 300.75, TotalAmount(txns), 1e-9)
}

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	txns := []*domain.Expense{
		expenseOn(100, 1, domain.Today()),
		expenseOn(50, 2, domain.Today()),
		expenseOn(25, 1, domain.Today()),
	}

	totals := GroupByCategory(txns)
	assert.Len(t, totals, 2)
	assert.InDelta(t, 125.0, totals[1], 1e-9)
	assert.InDelta(t, 50.0, totals[2], 1e-9)
}

func TestFilterByDateRange(t *testing.T) {
	t.Parallel()

	jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jan15 := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	txns := []*domain.Expense{
		expenseOn(1, 1, jan1),
		expenseOn(2, 1, jan15),
		expenseOn(3, 1, jan31),
		expenseOn(4, 1, feb1),
	}

	got := FilterByDateRange(txns, jan1, jan31)
	require.Len(t, got, 3, "both range ends are inclusive")
	assert.InDelta(t, 6.0, TotalAmount(got), 1e-9)
}

func TestHighestAndLowestTransaction(t *testing.T) {
	t.Parallel()

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		_, ok := HighestTransaction([]*domain.Expense{})
		assert.False(t, ok)
		_, ok = LowestTransaction([]*domain.Expense{})
		assert.False(t, ok)
	})

	t.Run("picks extremes", func(t *testing.T) {
		t.Parallel()
		txns := []*domain.Expense{
			expenseOn(50, 1, domain.Today()),
			expenseOn(200, 1, domain.Today()),
			expenseOn(10, 1, domain.Today()),
		}

		highest, ok := HighestTransaction(txns)
		require.True(t, ok)
		assert.InDelta(t, 200.0, highest.Amount, 1e-9)

		lowest, ok := LowestTransaction(txns)
		require.True(t, ok)
		assert.InDelta(t, 10.0, lowest.Amount, 1e-9)
	})
}

func TestSpendingTrend(t *testing.T) {
	t.Parallel()

	today := domain.Today()
	thisMonth := time.Date(today.Year(), today.Month(), 15, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	expenses := []*domain.Expense{
		expenseOn(100, 1, thisMonth),
		expenseOn(40, 1, thisMonth),
		expenseOn(75, 1, lastMonth),
	}

	trend := SpendingTrend(expenses, 3)
	require.Len(t, trend, 3)

	assert.Zero(t, trend[0].Total, "oldest month has no expenses")
	assert.InDelta(t, 75.0, trend[1].Total, 1e-9)
	assert.InDelta(t, 140.0, trend[2].Total, 1e-9)

	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, first.Format("January 2006"), trend[2].Label)
}
