package validations

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"apacheck-backend/internal/apa"
	"apacheck-backend/internal/documents"
	"apacheck-backend/internal/docx"
	"apacheck-backend/internal/shared/metrics"
	"apacheck-backend/internal/shared/telemetry"
)

// Service runs the extractor and rule evaluator against stored documents and
// persists the resulting reports.
type Service struct {
	Repo   Repo
	Docs   *documents.Service
	Policy apa.Policy
}

// Run validates a previously uploaded document and stores the report.
func (s *Service) Run(ctx context.Context, userID, documentID string) (Validation, error) {
	if documentID == "" {
		return Validation{}, fmt.Errorf("%w: documentId is required", ErrInvalidInput)
	}

	doc, err := s.Docs.Get(ctx, userID, documentID)
	if err != nil {
		return Validation{}, err
	}

	data, err := s.Docs.ReadAll(ctx, doc)
	if err != nil {
		metrics.IncValidationFailed()
		return Validation{}, fmt.Errorf("read stored document: %w", err)
	}

	return s.runAndStore(ctx, userID, doc.ID, doc.FileName, data)
}

// RunUpload uploads a document and validates it in one call.
func (s *Service) RunUpload(ctx context.Context, userID, fileName string, r io.Reader) (Validation, error) {
	doc, err := s.Docs.Upload(ctx, userID, fileName, r)
	if err != nil {
		return Validation{}, err
	}

	data, err := s.Docs.ReadAll(ctx, doc)
	if err != nil {
		metrics.IncValidationFailed()
		return Validation{}, fmt.Errorf("read stored document: %w", err)
	}

	return s.runAndStore(ctx, userID, doc.ID, doc.FileName, data)
}

// Get returns a stored validation scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, validationID string) (Validation, error) {
	if validationID == "" {
		return Validation{}, fmt.Errorf("%w: validation id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, validationID)
}

// List returns the user's validations, newest first.
func (s *Service) List(ctx context.Context, userID, documentID string, limit int) ([]Validation, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return s.Repo.ListByUser(ctx, userID, documentID, limit)
}

func (s *Service) runAndStore(ctx context.Context, userID, documentID, fileName string, data []byte) (Validation, error) {
	metrics.IncValidationStarted()
	start := time.Now()

	report := s.validate(fileName, data)

	metrics.ObserveValidationDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.ObserveValidationScore(report.Score)
	metrics.IncValidationCompleted()

	v := Validation{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		UserID:     userID,
		Filename:   fileName,
		Score:      report.Score,
		Report:     report,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return Validation{}, err
	}

	telemetry.Info("validation.complete", map[string]any{
		"validation_id": v.ID,
		"document_id":   documentID,
		"user_id":       userID,
		"score":         report.Score,
		"passing":       len(report.Passing),
		"issues":        len(report.Issues),
	})
	return v, nil
}

// validate runs the core pipeline. A malformed package is a reportable
// outcome, not an error: it yields the degraded report.
func (s *Service) validate(fileName string, data []byte) apa.Report {
	structure, err := docx.Extract(data)
	if err != nil {
		return apa.DegradedReport(fileName, err)
	}
	return apa.Evaluate(fileName, structure, s.Policy)
}
