package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned for any email/password mismatch
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrInvalidToken covers bad signatures, foreign algorithms and expiry
	ErrInvalidToken = errors.New("Invalid or expired token")
)

// ValidationError reports malformed or missing input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an operation addressing a missing entity
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// AssetPurgeError reports external assets that could not be removed. The
// owning record is left in place so the failure can be reconciled.
type AssetPurgeError struct {
	PublicIDs []string
	Err       error
}

func (e *AssetPurgeError) Error() string {
	return fmt.Sprintf("failed to purge assets [%s]: %v", strings.Join(e.PublicIDs, ", "), e.Err)
}

func (e *AssetPurgeError) Unwrap() error {
	return e.Err
}
