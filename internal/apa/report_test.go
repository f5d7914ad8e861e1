package apa

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"apacheck-backend/internal/docx"
)

func compliantStructure() docx.Structure {
	abstract := strings.TrimSpace(strings.Repeat("alpha ", 200))
	entries := strings.Repeat("Smith, J. (2020). Sleep and memory. Journal of Rest, 12(3), 45-67. ", 3)
	text := "The Effects of Sleep on Memory Maria Santos University of Lisbon " +
		"Abstract " + abstract + " Introduction " +
		"Prior work shows strong effects (Smith, 2020). " +
		"References " + entries
	return docx.Structure{
		Text:        text,
		Font:        docx.FontInfo{Family: "Times New Roman", SizePt: 12},
		Spacing:     docx.SpacingInfo{DoubleSpaced: true},
		Headings:    []docx.Heading{{Level: 1, Text: "Introduction", Bold: true, Centered: true}},
		PageNumbers: true,
	}
}

func TestEvaluateCompliantDocumentScores100(t *testing.T) {
	report := Evaluate("paper.docx", compliantStructure(), DefaultPolicy())
	if len(report.Issues) != 0 {
		t.Fatalf("expected no issues, got %+v", report.Issues)
	}
	if report.Score != 100 {
		t.Fatalf("score = %d, want 100", report.Score)
	}
	if len(report.Passing) == 0 {
		t.Fatalf("expected passing findings")
	}
	if report.Filename != "paper.docx" {
		t.Fatalf("filename = %q", report.Filename)
	}
}

func TestEvaluateScoreMatchesWeightedFormula(t *testing.T) {
	p := DefaultPolicy()
	report := Evaluate("paper.docx", docx.Structure{}, p)

	want := 100
	for _, f := range report.Issues {
		switch f.Severity {
		case SeverityError:
			want -= p.ErrorWeight
		case SeverityWarning:
			want -= p.WarningWeight
		case SeveritySuggestion:
			want -= p.SuggestionWeight
		default:
			t.Fatalf("issue without a known severity: %+v", f)
		}
	}
	if want < 0 {
		want = 0
	}
	if report.Score != want {
		t.Fatalf("score = %d, want %d", report.Score, want)
	}
	if report.Score < 0 || report.Score > 100 {
		t.Fatalf("score out of range: %d", report.Score)
	}
}

func TestEvaluateSplitsFindingsBySeverity(t *testing.T) {
	report := Evaluate("paper.docx", docx.Structure{}, DefaultPolicy())
	for _, f := range report.Passing {
		if f.IsIssue() || f.ID != "" {
			t.Fatalf("passing finding carries issue fields: %+v", f)
		}
	}
	for _, f := range report.Issues {
		switch f.Severity {
		case SeverityError, SeverityWarning, SeveritySuggestion:
		default:
			t.Fatalf("issue with invalid severity: %+v", f)
		}
		if f.ID == "" {
			t.Fatalf("issue without an id: %+v", f)
		}
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	s := compliantStructure()
	s.Font.Family = "Comic Sans"
	p := DefaultPolicy()
	first := Evaluate("paper.docx", s, p)
	second := Evaluate("paper.docx", s, p)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reports differ across runs:\n%+v\n%+v", first, second)
	}
}

func TestScoreFloorsAtZero(t *testing.T) {
	p := DefaultPolicy()
	issues := make([]Finding, 8)
	for i := range issues {
		issues[i] = issue("x", SeverityError, "m", "")
	}
	if got := score(issues, p); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestDegradedReport(t *testing.T) {
	report := DegradedReport("broken.docx", errors.New("open archive: zip: not a valid zip file"))
	if report.Score != 0 {
		t.Fatalf("score = %d, want 0", report.Score)
	}
	if len(report.Passing) != 0 {
		t.Fatalf("passing should be empty: %+v", report.Passing)
	}
	if len(report.Issues) != 1 || report.Issues[0].Severity != SeverityError {
		t.Fatalf("issues = %+v", report.Issues)
	}
	if report.Issues[0].Details == "" {
		t.Fatalf("expected parse error details")
	}
}
