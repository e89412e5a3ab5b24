package domain

import (
	"fmt"
	"strings"
)

// PaymentMethod is how money changed hands for an income or expense row.
type PaymentMethod string

// Valid payment methods.
const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodGcash PaymentMethod = "gcash"
	PaymentMethodBank  PaymentMethod = "bank"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodOther PaymentMethod = "other"
)

// PaymentType is the direction of a debt payment or saving transaction.
type PaymentType string

// Valid payment types.
const (
	PaymentTypeDeposit  PaymentType = "deposit"
	PaymentTypeWithdraw PaymentType = "withdraw"
)

// ParsePaymentMethod validates a raw payment method against the whitelist.
// The kind sentinel decides which entity error the failure wraps.
func ParsePaymentMethod(raw string, kind error) (PaymentMethod, error) {
	method := PaymentMethod(strings.ToLower(trimmed(raw)))
	switch method {
	case PaymentMethodCash, PaymentMethodGcash, PaymentMethodBank, PaymentMethodCard, PaymentMethodOther:
		return method, nil
	}
	return "", validationErr(kind, "payment_method",
		fmt.Sprintf("must be one of cash, gcash, bank, card, other, got %q", raw))
}

// ParsePaymentType validates a raw payment type against the whitelist.
func ParsePaymentType(raw string, kind error) (PaymentType, error) {
	typ := PaymentType(strings.ToLower(trimmed(raw)))
	switch typ {
	case PaymentTypeDeposit, PaymentTypeWithdraw:
		return typ, nil
	}
	return "", validationErr(kind, "pymt_type",
		fmt.Sprintf("must be %q or %q, got %q", PaymentTypeDeposit, PaymentTypeWithdraw, raw))
}
