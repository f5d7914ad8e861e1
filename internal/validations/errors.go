package validations

import "errors"

var (
	// ErrInvalidInput marks user-correctable request problems.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a missing or foreign validation.
	ErrNotFound = errors.New("validation not found")
)
