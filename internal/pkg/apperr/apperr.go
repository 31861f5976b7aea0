package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPolicyViolation  = errors.New("policy violation")
	ErrConflict         = errors.New("conflict")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUnavailable      = errors.New("service unavailable")
	ErrUnconfigured     = errors.New("provider not configured")
	ErrIdentityConflict = errors.New("identity conflict")
)

// ValidationError carries every violation found in a request, not just the first.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidation builds a ValidationError from a non-empty violation list.
func NewValidation(violations []string) *ValidationError {
	return &ValidationError{Violations: violations}
}

// NotFoundf wraps ErrNotFound with entity context.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
