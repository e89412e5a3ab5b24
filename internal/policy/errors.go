package policy

import (
	"errors"
	"fmt"
)

// Error signals malformed, missing or out-of-range request data, including
// duplicate-name and ownership-mismatch checks. Policy failures are
// user-facing and recoverable by correcting the input; they are never
// retried and never transient.
type Error struct {
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a policy Error with a formatted message.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// IsPolicyError reports whether err is (or wraps) a policy Error.
func IsPolicyError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}
