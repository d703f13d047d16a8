package common

import (
	"errors"
	"fmt"
)

// Error kinds used across services. Handlers map them to HTTP statuses
// with errors.Is; services attach context with %w wrapping.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// IsInternal reports whether the error carries none of the known kinds,
// i.e. it is an unexpected persistence or infrastructure failure.
func IsInternal(err error) bool {
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, ErrValidation) &&
		!errors.Is(err, ErrConflict)
}
