package validations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"apacheck-backend/internal/apa"
)

// PGRepo implements Repo using Postgres. Reports are stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new validation.
func (r *PGRepo) Create(ctx context.Context, v Validation) error {
	const query = `
INSERT INTO validations (id, document_id, user_id, filename, score, report, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	report, err := json.Marshal(v.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		v.ID,
		v.DocumentID,
		v.UserID,
		v.Filename,
		v.Score,
		report,
		v.CreatedAt,
	)
	return err
}

// GetByID returns a validation scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, userID, validationID string) (Validation, error) {
	const query = `
SELECT id, document_id, user_id, filename, score, report, created_at
FROM validations
WHERE id = $1 AND user_id = $2`
	return scanValidation(r.DB.QueryRowContext(ctx, query, validationID, userID))
}

// ListByUser returns the user's validations, newest first, optionally filtered
// by document.
func (r *PGRepo) ListByUser(ctx context.Context, userID, documentID string, limit int) ([]Validation, error) {
	query := `
SELECT id, document_id, user_id, filename, score, report, created_at
FROM validations
WHERE user_id = $1`
	args := []any{userID}
	if documentID != "" {
		query += ` AND document_id = $2 ORDER BY created_at DESC LIMIT $3`
		args = append(args, documentID, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Validation
	for rows.Next() {
		v, err := scanValidation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanValidation(row rowScanner) (Validation, error) {
	var v Validation
	var report []byte
	err := row.Scan(
		&v.ID,
		&v.DocumentID,
		&v.UserID,
		&v.Filename,
		&v.Score,
		&report,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Validation{}, ErrNotFound
		}
		return Validation{}, err
	}
	if len(report) > 0 {
		if err := json.Unmarshal(report, &v.Report); err != nil {
			return Validation{}, fmt.Errorf("unmarshal report: %w", err)
		}
	} else {
		v.Report = apa.Report{Passing: []apa.Finding{}, Issues: []apa.Finding{}}
	}
	return v, nil
}
