package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncome(t *testing.T) {
	t.Parallel()

	received := time.Now().UTC().AddDate(0, 0, -3)

	t.Run("creates income with normalized fields", func(t *testing.T) {
		t.Parallel()

		income, err := NewIncome(1, 2, " July salary ", " Acme Corp ", 45000, received, " BANK ", " verified ")
		require.NoError(t, err)

		assert.Equal(t, int64(1), income.UserID)
		assert.Equal(t, int64(2), income.CategoryID)
		assert.Equal(t, "July salary", income.Name)
		assert.Equal(t, "Acme Corp", income.Source)
		assert.Equal(t, 45000.0, income.Amount)
		assert.Equal(t, DateOf(received), income.ReceivedDate)
		assert.Equal(t, PaymentMethodBank, income.PaymentMethod)
		assert.Equal(t, "verified", income.Remarks)
	})

	tests := []struct {
		name          string
		userID        int64
		categoryID    int64
		incomeName    string
		source        string
		amount        float64
		receivedDate  time.Time
		paymentMethod string
	}{
		{name: "zero user id", userID: 0, categoryID: 2, incomeName: "Salary", source: "Acme", amount: 100, receivedDate: received, paymentMethod: "cash"},
		{name: "zero category id", userID: 1, categoryID: 0, incomeName: "Salary", source: "Acme", amount: 100, receivedDate: received, paymentMethod: "cash"},
		{name: "empty name", userID: 1, categoryID: 2, incomeName: "  ", source: "Acme", amount: 100, receivedDate: received, paymentMethod: "cash"},
		{name: "empty source", userID: 1, categoryID: 2, incomeName: "Salary", source: "", amount: 100, receivedDate: received, paymentMethod: "cash"},
		{name: "zero amount", userID: 1, categoryID: 2, incomeName: "Salary", source: "Acme", amount: 0, receivedDate: received, paymentMethod: "cash"},
		{name: "future received date", userID: 1, categoryID: 2, incomeName: "Salary", source: "Acme", amount: 100, receivedDate: time.Now().UTC().AddDate(0, 0, 2), paymentMethod: "cash"},
		{name: "unknown payment method", userID: 1, categoryID: 2, incomeName: "Salary", source: "Acme", amount: 100, receivedDate: received, paymentMethod: "check"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("rejects "+tc.name, func(t *testing.T) {
			t.Parallel()

			income, err := NewIncome(tc.userID, tc.categoryID, tc.incomeName, tc.source,
				tc.amount, tc.receivedDate, tc.paymentMethod, "")

			assert.Nil(t, income)
			assert.ErrorIs(t, err, ErrInvalidIncome)
		})
	}
}

func TestIncomeUpdate(t *testing.T) {
	t.Parallel()

	newIncome := func(t *testing.T) *Income {
		t.Helper()
		income, err := NewIncome(1, 2, "Salary", "Acme Corp", 45000,
			time.Now().UTC().AddDate(0, 0, -3), "bank", "")
		require.NoError(t, err)
		return income
	}

	t.Run("applies non-nil fields", func(t *testing.T) {
		t.Parallel()

		income := newIncome(t)
		amount := 48000.0
		method := "gcash"
		require.NoError(t, income.Update(IncomeUpdate{Amount: &amount, PaymentMethod: &method}))

		assert.Equal(t, 48000.0, income.Amount)
		assert.Equal(t, PaymentMethodGcash, income.PaymentMethod)
		assert.Equal(t, "Salary", income.Name)
	})

	t.Run("invalid amount leaves income unchanged", func(t *testing.T) {
		t.Parallel()

		income := newIncome(t)
		amount := -5.0

		err := income.Update(IncomeUpdate{Amount: &amount})
		assert.ErrorIs(t, err, ErrInvalidIncome)
		assert.Equal(t, 45000.0, income.Amount)
	})

	t.Run("future received date is rejected", func(t *testing.T) {
		t.Parallel()

		income := newIncome(t)
		date := time.Now().UTC().AddDate(0, 0, 5)

		err := income.Update(IncomeUpdate{ReceivedDate: &date})
		assert.ErrorIs(t, err, ErrInvalidIncome)
	})
}

func TestParsePaymentMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    PaymentMethod
		wantErr bool
	}{
		{name: "cash", raw: "cash", want: PaymentMethodCash},
		{name: "gcash", raw: "gcash", want: PaymentMethodGcash},
		{name: "bank", raw: "bank", want: PaymentMethodBank},
		{name: "card", raw: "card", want: PaymentMethodCard},
		{name: "other", raw: "other", want: PaymentMethodOther},
		{name: "mixed case with spaces", raw: " Cash ", want: PaymentMethodCash},
		{name: "unknown method", raw: "check", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePaymentMethod(tc.raw, ErrInvalidIncome)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidIncome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
