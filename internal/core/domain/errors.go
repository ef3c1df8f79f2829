package domain

import (
	"errors"
	"strings"
)

var (
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	ErrMissingToken = errors.New("missing bearer token")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// ValidationError carries every failed input rule, in field order.
type ValidationError struct {
	Errors []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Errors: msgs}
}

// Error returns the first failure, which is what callers show as the message.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0]
}

// Detail joins all failures for logging.
func (e *ValidationError) Detail() string {
	return strings.Join(e.Errors, "; ")
}

// IsClientError reports whether err is an expected business outcome rather
// than an infrastructure failure.
func IsClientError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	for _, known := range []error{
		ErrUsernameTaken,
		ErrInvalidCredentials,
		ErrUserNotFound,
		ErrAccessDenied,
		ErrTooManyAttempts,
		ErrMissingToken,
		ErrTokenExpired,
		ErrTokenInvalid,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
