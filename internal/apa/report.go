package apa

import (
	"apacheck-backend/internal/docx"
)

// Debug is the structural summary attached to every report so consumers can
// see what the extractor recovered.
type Debug struct {
	FontFamily   string  `json:"fontFamily"`
	FontSizePt   float64 `json:"fontSizePt"`
	DoubleSpaced bool    `json:"doubleSpaced"`
	HeadingCount int     `json:"headingCount"`
	PageNumbers  bool    `json:"pageNumbers"`
	TextChars    int     `json:"textChars"`
}

// Report is the validation outcome for one document.
type Report struct {
	Filename string    `json:"filename"`
	Passing  []Finding `json:"passing"`
	Issues   []Finding `json:"issues"`
	Score    int       `json:"score"`
	Debug    Debug     `json:"debug"`
}

// Evaluate runs the rule battery against an extracted structure. Rules run in
// their declared order, so reports for the same structure are identical.
func Evaluate(filename string, s docx.Structure, p Policy) Report {
	passing := []Finding{}
	issues := []Finding{}
	for _, rule := range rules {
		for _, f := range rule(s, p) {
			if f.IsIssue() {
				issues = append(issues, f)
			} else {
				passing = append(passing, f)
			}
		}
	}

	return Report{
		Filename: filename,
		Passing:  passing,
		Issues:   issues,
		Score:    score(issues, p),
		Debug: Debug{
			FontFamily:   s.Font.Family,
			FontSizePt:   s.Font.SizePt,
			DoubleSpaced: s.Spacing.DoubleSpaced,
			HeadingCount: len(s.Headings),
			PageNumbers:  s.PageNumbers,
			TextChars:    len(s.Text),
		},
	}
}

// DegradedReport is returned when the package itself cannot be parsed. The
// failure is a reportable outcome, not a transport fault: score 0, one error
// finding, empty passing.
func DegradedReport(filename string, parseErr error) Report {
	details := ""
	if parseErr != nil {
		details = parseErr.Error()
	}
	return Report{
		Filename: filename,
		Passing:  []Finding{},
		Issues: []Finding{issue("document-unreadable", SeverityError,
			"Could not read the document package", details)},
		Score: 0,
	}
}

// score subtracts severity-weighted issue counts from 100, floored at 0.
func score(issues []Finding, p Policy) int {
	total := 100
	for _, f := range issues {
		total -= p.weight(f.Severity)
	}
	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}
