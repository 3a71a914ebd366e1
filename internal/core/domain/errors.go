package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationRequired = errors.New("user must be authenticated")
	ErrDashboardNotFound      = errors.New("dashboard not found")
	ErrValidation             = errors.New("validation failed")
	ErrForbidden              = errors.New("access forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserExists             = errors.New("user already exists")
	ErrTokenRevoked           = errors.New("token has been revoked")
	ErrLayoutNotFound         = errors.New("layout not found")
	ErrInvalidLayout          = errors.New("invalid layout")
)

// RemoteStoreError reports any failure of the dashboard store, not-found included.
type RemoteStoreError struct {
	Op  string
	Err error
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *RemoteStoreError) Unwrap() error { return e.Err }

// NewValidationError wraps ErrValidation with a formatted detail message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
