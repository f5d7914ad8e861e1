package apa

// Severity is the ordinal weight of an issue, driving score deduction.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Finding is one reportable observation produced by a single rule. Passing
// findings carry no ID and no severity; issues carry both.
type Finding struct {
	ID       string   `json:"id,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	Message  string   `json:"message"`
	Details  string   `json:"details,omitempty"`
}

func pass(message, details string) Finding {
	return Finding{Message: message, Details: details}
}

func issue(id string, severity Severity, message, details string) Finding {
	return Finding{ID: id, Severity: severity, Message: message, Details: details}
}

// IsIssue reports whether the finding carries a severity.
func (f Finding) IsIssue() bool {
	return f.Severity != ""
}
