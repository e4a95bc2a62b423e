package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSelection = errors.New("invalid selection")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrStorage          = errors.New("storage failure")
)

// ValidationError names the first field that blocked an operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
