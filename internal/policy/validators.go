package policy

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 8

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z]+( [A-Za-z]+)*$`)
	emailRe = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
)

// requiredField pairs a field name with its presence check for
// requireFields.
type requiredField struct {
	name    string
	present bool
}

// requireFields fails with a single "Missing fields" error listing every
// absent required field, mirroring the form-validation contract.
func requireFields(fields ...requiredField) error {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return Errorf("Missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func stringField(name, value string) requiredField {
	return requiredField{name: name, present: strings.TrimSpace(value) != ""}
}

func idField(name string, value int64) requiredField {
	return requiredField{name: name, present: value != 0}
}

// ValidateString trims the value and enforces a minimum length.
func ValidateString(value, field string, minLen int) (string, error) {
	clean := strings.TrimSpace(value)
	if len(clean) < minLen {
		return "", Errorf("%s must be at least %d characters long", field, minLen)
	}
	return clean, nil
}

// ValidateNumeric parses a raw money value. With allowZero the value may
// be zero but not negative; otherwise it must be strictly positive.
func ValidateNumeric(value, field string, allowZero bool) (float64, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return 0, Errorf("%s is required", field)
	}
	amount, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, Errorf("%s must be a number", field)
	}
	if allowZero {
		if amount < 0 {
			return 0, Errorf("%s cannot be negative", field)
		}
	} else if amount <= 0 {
		return 0, Errorf("%s must be greater than zero", field)
	}
	return amount, nil
}

// ValidateID enforces a positive integer identifier.
func ValidateID(value int64, field string) (int64, error) {
	if value <= 0 {
		return 0, Errorf("%s must be a positive integer", field)
	}
	return value, nil
}

// ValidateDate parses an ISO-8601 date ("2006-01-02", full timestamps
// accepted) and enforces the past/future bounds.
func ValidateDate(value, field string, allowFuture, allowPast bool) (time.Time, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return time.Time{}, Errorf("%s is required", field)
	}

	parsed, err := time.Parse("2006-01-02", clean)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, clean)
		if err != nil {
			return time.Time{}, Errorf("%s must be a valid date (YYYY-MM-DD)", field)
		}
	}

	date := domain.DateOf(parsed)
	today := domain.Today()
	if !allowFuture && date.After(today) {
		return time.Time{}, Errorf("%s cannot be in the future", field)
	}
	if !allowPast && date.Before(today) {
		return time.Time{}, Errorf("%s cannot be in the past", field)
	}
	return date, nil
}

// ValidateEmail enforces the local@domain.tld shape.
func ValidateEmail(email string) (string, error) {
	clean := strings.TrimSpace(email)
	if !emailRe.MatchString(clean) {
		return "", Errorf("Invalid Email format")
	}
	return clean, nil
}

// ValidatePassword enforces the minimum length and, when a confirmation
// value is supplied, an exact match.
func ValidatePassword(password string, confirm *string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", Errorf("Password must be at least %d characters long", MinPasswordLen)
	}
	if confirm != nil && password != *confirm {
		return "", Errorf("Passwords do not match")
	}
	return password, nil
}

// ValidateName enforces letters-and-single-spaces names (person names,
// lender names, goal names) with a per-field minimum length.
func ValidateName(value, field string, minLen int) (string, error) {
	clean, err := ValidateString(value, field, minLen)
	if err != nil {
		return "", err
	}
	if !nameRe.MatchString(clean) {
		return "", Errorf("%s must contain letters only, with single spaces between words", field)
	}
	return clean, nil
}

// ValidatePaymentMethod checks the payment-method whitelist.
func ValidatePaymentMethod(raw string) (domain.PaymentMethod, error) {
	clean, err := ValidateString(raw, "Payment Method", 4)
	if err != nil {
		return "", err
	}
	switch domain.PaymentMethod(clean) {
	case domain.PaymentMethodCash, domain.PaymentMethodGcash, domain.PaymentMethodBank,
		domain.PaymentMethodCard, domain.PaymentMethodOther:
		return domain.PaymentMethod(clean), nil
	}
	return "", Errorf("Invalid Payment Method value")
}

// ValidatePaymentType checks the deposit/withdraw whitelist.
func ValidatePaymentType(raw string) (domain.PaymentType, error) {
	clean, err := ValidateString(raw, "Payment Type", 7)
	if err != nil {
		return "", err
	}
	switch domain.PaymentType(clean) {
	case domain.PaymentTypeDeposit, domain.PaymentTypeWithdraw:
		return domain.PaymentType(clean), nil
	}
	return "", Errorf("Invalid Payment Type value")
}
