package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pitaka-app/pitaka-api/internal/api/shared"
	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/policy"
	"github.com/pitaka-app/pitaka-api/internal/service"
	"github.com/pitaka-app/pitaka-api/internal/service/auth"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case policy.IsPolicyError(err),
		isDomainValidation(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Policy and domain validation messages are
// written for users and pass through; everything else maps to a fixed
// phrase.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case policy.IsPolicyError(err), isDomainValidation(err):
		return err.Error()

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this record"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found"
	case errors.Is(err, store.ErrIncomeNotFound):
		return "Income not found"
	case errors.Is(err, store.ErrExpenseNotFound):
		return "Expense not found"
	case errors.Is(err, store.ErrDebtNotFound):
		return "Debt not found"
	case errors.Is(err, store.ErrDebtPaymentNotFound):
		return "Debt payment not found"
	case errors.Is(err, store.ErrSavingGoalNotFound):
		return "Saving goal not found"
	case errors.Is(err, store.ErrSavingTransactionNotFound):
		return "Saving transaction not found"
	case errors.Is(err, store.ErrNotFound):
		return "Record not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrCategoryNameExists):
		return "Category name already exists"
	case errors.Is(err, store.ErrGoalNameExists):
		return "Saving goal name already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Record already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleServiceError translates a service-layer error into the matching
// HTTP response. Handlers call it on any error their service returns.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

func isDomainValidation(err error) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve)
}

// SanitizeValidationError removes sensitive details from struct-tag
// validation errors and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'LoginRequest.Email' Error:Field
		// validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
