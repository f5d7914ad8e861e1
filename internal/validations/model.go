package validations

import (
	"time"

	"apacheck-backend/internal/apa"
)

// Validation is one stored validation run: the document it inspected and the
// full report the rule evaluator produced.
type Validation struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"documentId"`
	UserID     string     `json:"userId"`
	Filename   string     `json:"filename"`
	Score      int        `json:"score"`
	Report     apa.Report `json:"report"`
	CreatedAt  time.Time  `json:"createdAt"`
}
