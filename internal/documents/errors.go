package documents

import "errors"

var (
	// ErrInvalidInput marks user-correctable upload problems (missing file,
	// wrong extension, disallowed content type).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a missing or foreign document.
	ErrNotFound = errors.New("document not found")
)
