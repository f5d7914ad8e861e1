package validations

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores validations in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Validation
	byUser map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Validation),
		byUser: make(map[string][]string),
	}
}

// Create stores the validation.
func (r *MemoryRepo) Create(ctx context.Context, v Validation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[v.ID] = v
	r.byUser[v.UserID] = append(r.byUser[v.UserID], v.ID)
	return nil
}

// GetByID returns a validation scoped to its owner.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, validationID string) (Validation, error) {
	if err := ctx.Err(); err != nil {
		return Validation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.byID[validationID]
	if !ok || v.UserID != userID {
		return Validation{}, ErrNotFound
	}
	return v, nil
}

// ListByUser returns the user's validations, newest first, optionally filtered
// by document.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID, documentID string, limit int) ([]Validation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Validation, 0, len(r.byUser[userID]))
	for _, id := range r.byUser[userID] {
		v := r.byID[id]
		if documentID != "" && v.DocumentID != documentID {
			continue
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
