package apa

// FontSpec is one acceptable family/size pairing.
type FontSpec struct {
	Family string
	SizePt float64
}

// Policy holds the severities, weights, and thresholds the rules evaluate
// against. The checker's source conventions disagree on several of these
// (missing page numbers, font tolerance), so they are data, not constants.
type Policy struct {
	ErrorWeight      int
	WarningWeight    int
	SuggestionWeight int

	AcceptedFonts       []FontSpec
	FontSizeTolerancePt float64

	FontSeverity           Severity
	SpacingSeverity        Severity
	PageNumbersSeverity    Severity
	AuthorSeverity         Severity
	InstitutionSeverity    Severity
	AbstractLengthSeverity Severity
	HeadingsSeverity       Severity
	HeadingBoldSeverity    Severity
	CitationsSeverity      Severity
	QuotePageSeverity      Severity
	ReferencesSeverity     Severity

	// First-page window, in characters of extracted text.
	FirstPageChars int

	// Abstract word-count bands: [PassMin, PassMax] passes, [ReportMin,
	// PassMin) is too short, above PassMax is too long, below ReportMin is
	// not reported at all.
	AbstractPassMin   int
	AbstractPassMax   int
	AbstractReportMin int

	// Quoted-passage proximity check.
	QuoteMinChars    int
	QuoteWindowChars int

	// Minimum trimmed length for the references body to count as populated.
	MinReferencesChars int
}

// DefaultPolicy returns the lenient variant of the rule thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ErrorWeight:      15,
		WarningWeight:    8,
		SuggestionWeight: 3,

		AcceptedFonts: []FontSpec{
			{Family: "Times New Roman", SizePt: 12},
			{Family: "Calibri", SizePt: 11},
			{Family: "Arial", SizePt: 11},
			{Family: "Georgia", SizePt: 11},
			{Family: "Lucida Sans Unicode", SizePt: 10},
		},
		FontSizeTolerancePt: 1,

		FontSeverity:           SeverityWarning,
		SpacingSeverity:        SeveritySuggestion,
		PageNumbersSeverity:    SeveritySuggestion,
		AuthorSeverity:         SeverityWarning,
		InstitutionSeverity:    SeveritySuggestion,
		AbstractLengthSeverity: SeveritySuggestion,
		HeadingsSeverity:       SeveritySuggestion,
		HeadingBoldSeverity:    SeveritySuggestion,
		CitationsSeverity:      SeveritySuggestion,
		QuotePageSeverity:      SeverityError,
		ReferencesSeverity:     SeveritySuggestion,

		FirstPageChars: 1500,

		AbstractPassMin:   150,
		AbstractPassMax:   250,
		AbstractReportMin: 50,

		QuoteMinChars:    20,
		QuoteWindowChars: 50,

		MinReferencesChars: 100,
	}
}

func (p Policy) weight(severity Severity) int {
	switch severity {
	case SeverityError:
		return p.ErrorWeight
	case SeverityWarning:
		return p.WarningWeight
	case SeveritySuggestion:
		return p.SuggestionWeight
	default:
		return 0
	}
}
