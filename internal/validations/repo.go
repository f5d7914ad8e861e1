package validations

import "context"

// Repo defines persistence operations for validations.
type Repo interface {
	Create(ctx context.Context, v Validation) error
	GetByID(ctx context.Context, userID, validationID string) (Validation, error)
	ListByUser(ctx context.Context, userID, documentID string, limit int) ([]Validation, error)
}
