package apa

import (
	"fmt"
	"regexp"
	"strings"

	"apacheck-backend/internal/docx"
)

// A ruleFunc inspects the extracted structure and emits zero or more findings.
// Rules are pure and independent; only their declared order fixes the report's
// insertion order.
type ruleFunc func(docx.Structure, Policy) []Finding

var rules = []ruleFunc{
	checkFont,
	checkSpacing,
	checkPageNumbers,
	checkTitlePage,
	checkAuthor,
	checkInstitution,
	checkAbstract,
	checkHeadings,
	checkCitations,
	checkQuotedPassages,
	checkReferences,
}

var (
	abstractRe   = regexp.MustCompile(`(?is)\babstract\b(.*?)(?:\b(?:introduction|method|methods|results|discussion|conclusion|references|keywords)\b|$)`)
	referencesRe = regexp.MustCompile(`(?is)\breferences\b(.*?)(?:\bappendix\b|$)`)

	authorNameRe = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	authorByRe   = regexp.MustCompile(`\bBy [A-Z]`)

	institutionRe = regexp.MustCompile(`(?i)\b(?:university|college|school|institute|institution)\b`)

	// Single parenthetical citation: Author, Year[, p./pp. N[-M]]. Lists
	// separated by semicolons are deliberately not special-cased.
	citationRe = regexp.MustCompile(`\(([A-Za-z][A-Za-z\s&,.\-]*?),\s*\d{4}[a-z]?(?:,\s*pp?\.\s*\d+(?:-\d+)?)?\)`)

	quotedSpanRe   = regexp.MustCompile(`["\x{201C}]([^"\x{201C}\x{201D}]+)["\x{201D}]`)
	pageCitationRe = regexp.MustCompile(`\([^()]*\d{4}[a-z]?,\s*pp?\.\s*\d+`)
)

var reservedHeadingTitles = map[string]struct{}{
	"abstract":   {},
	"references": {},
	"keywords":   {},
}

func checkFont(s docx.Structure, p Policy) []Finding {
	detail := fmt.Sprintf("%s %gpt", s.Font.Family, s.Font.SizePt)
	for _, accepted := range p.AcceptedFonts {
		if strings.EqualFold(s.Font.Family, accepted.Family) &&
			withinTolerance(s.Font.SizePt, accepted.SizePt, p.FontSizeTolerancePt) {
			return []Finding{pass("Font is APA compliant", detail)}
		}
	}
	return []Finding{issue("font-noncompliant", p.FontSeverity,
		"Font does not match an APA-recommended pairing",
		detail+"; use Times New Roman 12pt, Calibri 11pt, Arial 11pt, Georgia 11pt, or Lucida Sans Unicode 10pt")}
}

func checkSpacing(s docx.Structure, p Policy) []Finding {
	if s.Spacing.DoubleSpaced {
		return []Finding{pass("Double spacing detected", "line spacing markers indicate double spacing")}
	}
	return []Finding{issue("spacing-unverified", p.SpacingSeverity,
		"Could not verify double spacing",
		"no double-spacing markers were found; APA requires double-spaced text throughout")}
}

func checkPageNumbers(s docx.Structure, p Policy) []Finding {
	if s.PageNumbers {
		return []Finding{pass("Page numbers detected", "page number field or element present")}
	}
	return []Finding{issue("page-numbers-missing", p.PageNumbersSeverity,
		"No page numbers detected",
		"APA requires a page number in the top right of every page")}
}

func checkTitlePage(s docx.Structure, p Policy) []Finding {
	firstPage := firstPageText(s.Text, p.FirstPageChars)
	if len(strings.TrimSpace(firstPage)) >= 20 {
		return []Finding{pass("Title page content detected", "")}
	}
	return nil
}

func checkAuthor(s docx.Structure, p Policy) []Finding {
	firstPage := firstPageText(s.Text, p.FirstPageChars)
	if authorNameRe.MatchString(firstPage) ||
		strings.Contains(firstPage, "Author") ||
		authorByRe.MatchString(firstPage) {
		return []Finding{pass("Author name found on title page", "")}
	}
	return []Finding{issue("author-missing", p.AuthorSeverity,
		"No author name detected on the title page",
		"the title page should list each author's full name")}
}

func checkInstitution(s docx.Structure, p Policy) []Finding {
	firstPage := firstPageText(s.Text, p.FirstPageChars)
	if institutionRe.MatchString(firstPage) {
		return []Finding{pass("Institutional affiliation found", "")}
	}
	return []Finding{issue("institution-missing", p.InstitutionSeverity,
		"No institutional affiliation detected",
		"the title page should name the authors' university, college, or school")}
}

// checkAbstract covers both the presence rule (absence carries no issue) and
// the word-count bands. The count is a naive whitespace split.
func checkAbstract(s docx.Structure, p Policy) []Finding {
	m := abstractRe.FindStringSubmatch(s.Text)
	if m == nil {
		return nil
	}
	findings := []Finding{pass("Abstract section found", "")}

	words := len(strings.Fields(m[1]))
	switch {
	case words >= p.AbstractPassMin && words <= p.AbstractPassMax:
		findings = append(findings, pass("Abstract length is within APA limits",
			fmt.Sprintf("%d words", words)))
	case words > p.AbstractPassMax:
		findings = append(findings, issue("abstract-too-long", p.AbstractLengthSeverity,
			"Abstract exceeds the APA word limit",
			fmt.Sprintf("%d words; APA recommends %d-%d", words, p.AbstractPassMin, p.AbstractPassMax)))
	case words >= p.AbstractReportMin:
		findings = append(findings, issue("abstract-too-short", p.AbstractLengthSeverity,
			"Abstract is shorter than APA recommends",
			fmt.Sprintf("%d words; APA recommends %d-%d", words, p.AbstractPassMin, p.AbstractPassMax)))
	}
	return findings
}

// checkHeadings covers presence of content headings, per-heading bold, and
// centering of level-1 headings. Reserved section titles do not count as
// content headings.
func checkHeadings(s docx.Structure, p Policy) []Finding {
	var content []docx.Heading
	for _, h := range s.Headings {
		key := strings.ToLower(strings.TrimSpace(h.Text))
		if _, reserved := reservedHeadingTitles[key]; reserved {
			continue
		}
		content = append(content, h)
	}

	if len(content) == 0 {
		return []Finding{issue("headings-none", p.HeadingsSeverity,
			"No section headings detected",
			"APA papers use styled headings to organize sections")}
	}

	findings := []Finding{pass("Section headings found", fmt.Sprintf("%d headings", len(content)))}
	for _, h := range content {
		if h.Bold {
			findings = append(findings, pass("Heading is bold", quoteHeading(h.Text)))
		} else {
			findings = append(findings, issue("heading-not-bold", p.HeadingBoldSeverity,
				"Heading is not bold",
				quoteHeading(h.Text)+"; APA headings are boldface"))
		}
		if h.Level == 1 && h.Centered {
			findings = append(findings, pass("Level 1 heading is centered", quoteHeading(h.Text)))
		}
	}
	return findings
}

func checkCitations(s docx.Structure, p Policy) []Finding {
	count := len(citationRe.FindAllString(s.Text, -1))
	if count > 0 {
		return []Finding{pass("In-text citations found", fmt.Sprintf("%d citations", count))}
	}
	return []Finding{issue("citations-none", p.CitationsSeverity,
		"No in-text citations detected",
		"APA requires parenthetical citations such as (Author, 2020)")}
}

// checkQuotedPassages verifies, by pure proximity, that each long quoted span
// is followed by a citation carrying a page marker within a short window.
func checkQuotedPassages(s docx.Structure, p Policy) []Finding {
	missing := 0
	for _, loc := range quotedSpanRe.FindAllStringSubmatchIndex(s.Text, -1) {
		spanStart, spanEnd := loc[2], loc[3]
		if spanEnd-spanStart < p.QuoteMinChars {
			continue
		}
		windowEnd := loc[1] + p.QuoteWindowChars
		if windowEnd > len(s.Text) {
			windowEnd = len(s.Text)
		}
		if !pageCitationRe.MatchString(s.Text[loc[1]:windowEnd]) {
			missing++
		}
	}
	if missing == 0 {
		return nil
	}
	return []Finding{issue("quotes-missing-page-numbers", p.QuotePageSeverity,
		"Direct quotations are missing page numbers",
		fmt.Sprintf("%d quotation(s) lack a citation with p./pp. nearby", missing))}
}

// checkReferences covers both section presence and content length.
func checkReferences(s docx.Structure, p Policy) []Finding {
	m := referencesRe.FindStringSubmatch(s.Text)
	if m == nil {
		return []Finding{issue("references-missing", p.ReferencesSeverity,
			"No References section detected",
			"APA papers end with a References section listing all cited sources")}
	}
	findings := []Finding{pass("References section found", "")}
	if len(strings.TrimSpace(m[1])) > p.MinReferencesChars {
		findings = append(findings, pass("References entries detected", ""))
	}
	return findings
}

func firstPageText(text string, chars int) string {
	if chars <= 0 || len(text) <= chars {
		return text
	}
	return text[:chars]
}

func withinTolerance(got, want, tolerance float64) bool {
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

func quoteHeading(text string) string {
	return fmt.Sprintf("%q", text)
}
