// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Per-entity validation sentinels. Every validation failure raised by an
// entity constructor or mutator wraps exactly one of these, so callers can
// classify failures with errors.Is without inspecting messages.
var (
	// ErrInvalidUser is returned when user data violates domain rules.
	ErrInvalidUser = errors.New("invalid user")

	// ErrInvalidCategory is returned when category data violates domain rules.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidDebt is returned when debt data violates domain rules.
	ErrInvalidDebt = errors.New("invalid debt")

	// ErrInvalidIncome is returned when income data violates domain rules.
	ErrInvalidIncome = errors.New("invalid income")

	// ErrInvalidExpense is returned when expense data violates domain rules.
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrInvalidDebtPayment is returned when debt payment data violates domain rules.
	ErrInvalidDebtPayment = errors.New("invalid debt payment")

	// ErrInvalidSavingGoal is returned when saving goal data violates domain rules.
	ErrInvalidSavingGoal = errors.New("invalid saving goal")

	// ErrInvalidSavingTransaction is returned when saving transaction data violates domain rules.
	ErrInvalidSavingTransaction = errors.New("invalid saving transaction")
)

// ValidationError carries the field and reason of a domain validation
// failure. It wraps the entity's sentinel error so errors.Is(err,
// domain.ErrInvalidDebt) and friends keep working through wrapping.
type ValidationError struct {
	// Kind is the per-entity sentinel (e.g. ErrInvalidDebt).
	Kind error
	// Field is the entity field that failed validation.
	Field string
	// Reason is a human-readable description of the violation.
	Reason string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", e.Kind, e.Field, e.Reason)
}

// Unwrap returns the per-entity sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func validationErr(kind error, field, reason string) error {
	return &ValidationError{Kind: kind, Field: field, Reason: reason}
}
