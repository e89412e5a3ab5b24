package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDebt(t *testing.T) {
	t.Parallel()

	start := time.Now().UTC().AddDate(0, -6, 0)
	due := time.Now().UTC().AddDate(1, 0, 0)

	t.Run("creates active debt with explicit name", func(t *testing.T) {
		t.Parallel()

		debt, err := NewDebt(1, "BPI", 10000, 3, start, due, "Car loan")
		require.NoError(t, err)

		assert.Equal(t, int64(1), debt.UserID)
		assert.Equal(t, "BPI", debt.Lender)
		assert.Equal(t, "Car loan", debt.Name)
		assert.Equal(t, DebtStatusActive, debt.Status)
		assert.Equal(t, DateOf(start), debt.StartDate)
		assert.Equal(t, DateOf(due), debt.DueDate)
	})

	t.Run("empty name defaults to lender", func(t *testing.T) {
		t.Parallel()

		debt, err := NewDebt(1, "Maria Santos", 5000, 0, start, due, "  ")
		require.NoError(t, err)

		assert.Equal(t, "Debt to Maria Santos", debt.Name)
	})

	t.Run("lender is trimmed", func(t *testing.T) {
		t.Parallel()

		debt, err := NewDebt(1, "  BDO  ", 10000, 3, start, due, "")
		require.NoError(t, err)

		assert.Equal(t, "BDO", debt.Lender)
	})

	tests := []struct {
		name         string
		userID       int64
		lender       string
		principal    float64
		interestRate float64
		startDate    time.Time
		dueDate      time.Time
	}{
		{
			name:         "zero user id",
			userID:       0,
			lender:       "BPI",
			principal:    10000,
			interestRate: 3,
			startDate:    start,
			dueDate:      due,
		},
		{
			name:         "lender shorter than 3 characters",
			userID:       1,
			lender:       "Jo",
			principal:    10000,
			interestRate: 3,
			startDate:    start,
			dueDate:      due,
		},
		{
			name:         "principal below minimum",
			userID:       1,
			lender:       "BPI",
			principal:    99.99,
			interestRate: 3,
			startDate:    start,
			dueDate:      due,
		},
		{
			name:         "negative interest rate",
			userID:       1,
			lender:       "BPI",
			principal:    10000,
			interestRate: -1,
			startDate:    start,
			dueDate:      due,
		},
		{
			name:         "interest rate above cap",
			userID:       1,
			lender:       "BPI",
			principal:    10000,
			interestRate: 6.5,
			startDate:    start,
			dueDate:      due,
		},
		{
			name:         "start date in the future",
			userID:       1,
			lender:       "BPI",
			principal:    10000,
			interestRate: 3,
			startDate:    time.Now().UTC().AddDate(0, 0, 2),
			dueDate:      due,
		},
		{
			name:         "due date not after start date",
			userID:       1,
			lender:       "BPI",
			principal:    10000,
			interestRate: 3,
			startDate:    start,
			dueDate:      start,
		},
		{
			name:         "due date already passed",
			userID:       1,
			lender:       "BPI",
			principal:    10000,
			interestRate: 3,
			startDate:    time.Now().UTC().AddDate(-1, 0, 0),
			dueDate:      time.Now().UTC().AddDate(0, -1, 0),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("rejects "+tc.name, func(t *testing.T) {
			t.Parallel()

			debt, err := NewDebt(tc.userID, tc.lender, tc.principal, tc.interestRate, tc.startDate, tc.dueDate, "")

			assert.Nil(t, debt)
			assert.ErrorIs(t, err, ErrInvalidDebt)
		})
	}
}

func TestDebtCloseAndReopen(t *testing.T) {
	t.Parallel()

	newActiveDebt := func(t *testing.T) *Debt {
		t.Helper()
		debt, err := NewDebt(1, "BPI", 10000, 3,
			time.Now().UTC().AddDate(0, -1, 0), time.Now().UTC().AddDate(1, 0, 0), "")
		require.NoError(t, err)
		return debt
	}

	t.Run("close marks debt closed", func(t *testing.T) {
		t.Parallel()

		debt := newActiveDebt(t)
		require.NoError(t, debt.Close())
		assert.Equal(t, DebtStatusClosed, debt.Status)
	})

	t.Run("closing a closed debt fails", func(t *testing.T) {
		t.Parallel()

		debt := newActiveDebt(t)
		require.NoError(t, debt.Close())

		err := debt.Close()
		assert.ErrorIs(t, err, ErrInvalidDebt)
		assert.Equal(t, DebtStatusClosed, debt.Status)
	})

	t.Run("reopen restores active status", func(t *testing.T) {
		t.Parallel()

		debt := newActiveDebt(t)
		require.NoError(t, debt.Close())
		require.NoError(t, debt.Reopen())
		assert.Equal(t, DebtStatusActive, debt.Status)
	})

	t.Run("reopening an active debt fails", func(t *testing.T) {
		t.Parallel()

		debt := newActiveDebt(t)

		err := debt.Reopen()
		assert.ErrorIs(t, err, ErrInvalidDebt)
		assert.Equal(t, DebtStatusActive, debt.Status)
	})
}

func TestDebtUpdateTerms(t *testing.T) {
	t.Parallel()

	newDebt := func(t *testing.T) *Debt {
		t.Helper()
		debt, err := NewDebt(1, "BPI", 10000, 3,
			time.Now().UTC().AddDate(0, -1, 0), time.Now().UTC().AddDate(1, 0, 0), "")
		require.NoError(t, err)
		return debt
	}

	t.Run("updates both fields", func(t *testing.T) {
		t.Parallel()

		debt := newDebt(t)
		principal := 20000.0
		rate := 5.0
		require.NoError(t, debt.UpdateTerms(&principal, &rate))

		assert.Equal(t, 20000.0, debt.Principal)
		assert.Equal(t, 5.0, debt.InterestRate)
	})

	t.Run("nil fields are left untouched", func(t *testing.T) {
		t.Parallel()

		debt := newDebt(t)
		rate := 4.0
		require.NoError(t, debt.UpdateTerms(nil, &rate))

		assert.Equal(t, 10000.0, debt.Principal)
		assert.Equal(t, 4.0, debt.InterestRate)
	})

	t.Run("invalid principal leaves debt unchanged", func(t *testing.T) {
		t.Parallel()

		debt := newDebt(t)
		principal := 50.0

		err := debt.UpdateTerms(&principal, nil)
		assert.ErrorIs(t, err, ErrInvalidDebt)
		assert.Equal(t, 10000.0, debt.Principal)
	})

	t.Run("invalid interest rate leaves debt unchanged", func(t *testing.T) {
		t.Parallel()

		debt := newDebt(t)
		rate := 10.0

		err := debt.UpdateTerms(nil, &rate)
		assert.ErrorIs(t, err, ErrInvalidDebt)
		assert.Equal(t, 3.0, debt.InterestRate)
	})
}

func TestDebtInterestAmount(t *testing.T) {
	t.Parallel()

	debt := &Debt{Principal: 10000, InterestRate: 6}

	assert.InDelta(t, 150, debt.InterestAmount(3), 0.001)
	assert.InDelta(t, 600, debt.InterestAmount(12), 0.001)
	assert.Zero(t, debt.InterestAmount(0))
}

func TestParseDebtStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    DebtStatus
		wantErr bool
	}{
		{name: "active", raw: "active", want: DebtStatusActive},
		{name: "closed", raw: "closed", want: DebtStatusClosed},
		{name: "mixed case with spaces", raw: "  Active ", want: DebtStatusActive},
		{name: "unknown status", raw: "paid", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDebtStatus(tc.raw)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDebt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
