package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSavingTransaction(t *testing.T) {
	t.Parallel()

	date := time.Now().UTC().AddDate(0, 0, -1)

	t.Run("deposit funded by an income leg", func(t *testing.T) {
		t.Parallel()

		txt, err := NewSavingTransaction(1, 2, "deposit", 10, 0, 500, date, " first deposit ")
		require.NoError(t, err)

		assert.Equal(t, int64(1), txt.GoalID)
		assert.Equal(t, int64(2), txt.UserID)
		assert.Equal(t, PaymentTypeDeposit, txt.TxtType)
		assert.Equal(t, int64(10), txt.IncomeID)
		assert.Zero(t, txt.ExpenseID)
		assert.Equal(t, 500.0, txt.Amount)
		assert.Equal(t, DateOf(date), txt.TxtDate)
		assert.Equal(t, "first deposit", txt.Remarks)
	})

	t.Run("withdrawal funded by an expense leg", func(t *testing.T) {
		t.Parallel()

		txt, err := NewSavingTransaction(1, 2, "withdraw", 0, 20, 250, date, "")
		require.NoError(t, err)

		assert.Equal(t, PaymentTypeWithdraw, txt.TxtType)
		assert.Zero(t, txt.IncomeID)
		assert.Equal(t, int64(20), txt.ExpenseID)
	})

	tests := []struct {
		name      string
		goalID    int64
		userID    int64
		txtType   string
		incomeID  int64
		expenseID int64
		amount    float64
		txtDate   time.Time
	}{
		{name: "zero goal id", goalID: 0, userID: 2, txtType: "deposit", incomeID: 10, amount: 500, txtDate: date},
		{name: "zero user id", goalID: 1, userID: 0, txtType: "deposit", incomeID: 10, amount: 500, txtDate: date},
		{name: "unknown txt type", goalID: 1, userID: 2, txtType: "transfer", incomeID: 10, amount: 500, txtDate: date},
		{name: "negative funding leg id", goalID: 1, userID: 2, txtType: "deposit", incomeID: -1, amount: 500, txtDate: date},
		{name: "both funding legs set", goalID: 1, userID: 2, txtType: "deposit", incomeID: 10, expenseID: 20, amount: 500, txtDate: date},
		{name: "neither funding leg set", goalID: 1, userID: 2, txtType: "deposit", amount: 500, txtDate: date},
		{name: "zero amount", goalID: 1, userID: 2, txtType: "deposit", incomeID: 10, amount: 0, txtDate: date},
		{name: "future date", goalID: 1, userID: 2, txtType: "deposit", incomeID: 10, amount: 500, txtDate: time.Now().UTC().AddDate(0, 0, 2)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("rejects "+tc.name, func(t *testing.T) {
			t.Parallel()

			txt, err := NewSavingTransaction(tc.goalID, tc.userID, tc.txtType,
				tc.incomeID, tc.expenseID, tc.amount, tc.txtDate, "")

			assert.Nil(t, txt)
			assert.ErrorIs(t, err, ErrInvalidSavingTransaction)
		})
	}
}

func TestParsePaymentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    PaymentType
		wantErr bool
	}{
		{name: "deposit", raw: "deposit", want: PaymentTypeDeposit},
		{name: "withdraw", raw: "withdraw", want: PaymentTypeWithdraw},
		{name: "mixed case with spaces", raw: " Deposit ", want: PaymentTypeDeposit},
		{name: "unknown type", raw: "transfer", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePaymentType(tc.raw, ErrInvalidSavingTransaction)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSavingTransaction)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
