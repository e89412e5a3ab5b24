package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

func TestValidateString(t *testing.T) {
	t.Parallel()

	t.Run("trims and accepts", func(t *testing.T) {
		t.Parallel()

		got, err := ValidateString("  Groceries  ", "Category Name", 3)
		require.NoError(t, err)
		assert.Equal(t, "Groceries", got)
	})

	t.Run("rejects values below the minimum length", func(t *testing.T) {
		t.Parallel()

		_, err := ValidateString(" ab ", "Category Name", 3)
		require.Error(t, err)
		assert.True(t, IsPolicyError(err))
		assert.EqualError(t, err, "Category Name must be at least 3 characters long")
	})
}

func TestValidateNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		allowZero bool
		want      float64
		wantMsg   string
	}{
		{name: "positive amount", value: "1500.50", want: 1500.50},
		{name: "trimmed", value: " 100 ", want: 100},
		{name: "empty", value: "  ", wantMsg: "Amount is required"},
		{name: "not a number", value: "abc", wantMsg: "Amount must be a number"},
		{name: "zero without allowZero", value: "0", wantMsg: "Amount must be greater than zero"},
		{name: "negative without allowZero", value: "-5", wantMsg: "Amount must be greater than zero"},
		{name: "zero with allowZero", value: "0", allowZero: true, want: 0},
		{name: "negative with allowZero", value: "-5", allowZero: true, wantMsg: "Amount cannot be negative"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ValidateNumeric(tc.value, "Amount", tc.allowZero)
			if tc.wantMsg != "" {
				require.Error(t, err)
				assert.True(t, IsPolicyError(err))
				assert.EqualError(t, err, tc.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 0.001)
		})
	}
}

func TestValidateID(t *testing.T) {
	t.Parallel()

	got, err := ValidateID(42, "User ID")
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	_, err = ValidateID(0, "User ID")
	assert.EqualError(t, err, "User ID must be a positive integer")

	_, err = ValidateID(-1, "User ID")
	require.Error(t, err)
	assert.True(t, IsPolicyError(err))
}

func TestValidateDate(t *testing.T) {
	t.Parallel()

	yesterday := domain.Today().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := domain.Today().AddDate(0, 0, 1).Format("2006-01-02")

	t.Run("parses plain dates", func(t *testing.T) {
		t.Parallel()

		got, err := ValidateDate("2024-06-15", "Received Date", false, true)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("parses RFC3339 timestamps", func(t *testing.T) {
		t.Parallel()

		got, err := ValidateDate("2024-06-15T09:30:00Z", "Received Date", false, true)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("today is always in bounds", func(t *testing.T) {
		t.Parallel()

		today := domain.Today().Format("2006-01-02")

		_, err := ValidateDate(today, "Date", false, false)
		assert.NoError(t, err)
	})

	tests := []struct {
		name        string
		value       string
		allowFuture bool
		allowPast   bool
		wantMsg     string
	}{
		{name: "empty", value: "", wantMsg: "Date is required"},
		{name: "garbage", value: "15/06/2024", wantMsg: "Date must be a valid date (YYYY-MM-DD)"},
		{name: "future when disallowed", value: tomorrow, allowPast: true, wantMsg: "Date cannot be in the future"},
		{name: "past when disallowed", value: yesterday, allowFuture: true, wantMsg: "Date cannot be in the past"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("rejects "+tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ValidateDate(tc.value, "Date", tc.allowFuture, tc.allowPast)
			require.Error(t, err)
			assert.True(t, IsPolicyError(err))
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	got, err := ValidateEmail(" juan@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", got)

	for _, raw := range []string{"", "juan", "juan@example", "juan.example.com"} {
		_, err := ValidateEmail(raw)
		assert.EqualError(t, err, "Invalid Email format", "email %q", raw)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	t.Run("accepts matching confirmation", func(t *testing.T) {
		t.Parallel()

		confirm := "hunter2hunter2"
		got, err := ValidatePassword("hunter2hunter2", &confirm)
		require.NoError(t, err)
		assert.Equal(t, "hunter2hunter2", got)
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		t.Parallel()

		_, err := ValidatePassword("short", nil)
		assert.EqualError(t, err, "Password must be at least 8 characters long")
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		t.Parallel()

		confirm := "different1"
		_, err := ValidatePassword("hunter2hunter2", &confirm)
		assert.EqualError(t, err, "Passwords do not match")
	})
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	got, err := ValidateName(" Dela Cruz ", "Lastname", 2)
	require.NoError(t, err)
	assert.Equal(t, "Dela Cruz", got)

	_, err = ValidateName("Juan2", "Firstname", 2)
	assert.EqualError(t, err, "Firstname must contain letters only, with single spaces between words")

	_, err = ValidateName("J", "Firstname", 2)
	assert.EqualError(t, err, "Firstname must be at least 2 characters long")
}

func TestValidatePaymentMethod(t *testing.T) {
	t.Parallel()

	got, err := ValidatePaymentMethod("gcash")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodGcash, got)

	_, err = ValidatePaymentMethod("check")
	assert.EqualError(t, err, "Invalid Payment Method value")
}

func TestValidatePaymentType(t *testing.T) {
	t.Parallel()

	got, err := ValidatePaymentType("deposit")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentTypeDeposit, got)

	got, err = ValidatePaymentType("withdraw")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentTypeWithdraw, got)

	_, err = ValidatePaymentType("transfer")
	assert.EqualError(t, err, "Invalid Payment Type value")
}
