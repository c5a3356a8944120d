package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced task id does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports an empty or invalid required field. The operation
// that returned it made no changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AuthReason enumerates why a login attempt was rejected.
type AuthReason string

const (
	AuthEmptyEmail         AuthReason = "empty_email"
	AuthInvalidEmailFormat AuthReason = "invalid_email_format"
	AuthEmptyPassword      AuthReason = "empty_password"
	AuthInvalidCredentials AuthReason = "invalid_credentials"
)

// AuthError wraps a login failure reason with a user-facing message.
type AuthError struct {
	Reason AuthReason
}

func (e *AuthError) Error() string {
	switch e.Reason {
	case AuthEmptyEmail:
		return "Email is required."
	case AuthInvalidEmailFormat:
		return "Enter a valid email address."
	case AuthEmptyPassword:
		return "Password is required."
	default:
		return "Invalid email or password. Please try again."
	}
}

// IsAuthReason reports whether err is an AuthError with the given reason.
func IsAuthReason(err error, reason AuthReason) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Reason == reason
}
