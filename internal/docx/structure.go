package docx

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultFontFamily is assumed when no font declaration is found anywhere.
	DefaultFontFamily = "Times New Roman"
	// DefaultFontSizePt is assumed when no size declaration is found.
	DefaultFontSizePt = 12
)

// FontInfo is the dominant/default font detected for the document.
type FontInfo struct {
	Family string  `json:"family"`
	SizePt float64 `json:"sizePt"`
}

// SpacingInfo records whether positive double-spacing evidence was found.
// Absence of evidence does not prove single spacing.
type SpacingInfo struct {
	DoubleSpaced bool `json:"isDoubleSpaced"`
}

// Heading is a paragraph whose style matched a heading pattern, in document order.
type Heading struct {
	Level    int    `json:"level"`
	Text     string `json:"text"`
	Bold     bool   `json:"isBold"`
	Centered bool   `json:"isCentered"`
}

// Structure is the normalized record derived once per document. It is the sole
// input to rule evaluation and is never mutated after extraction.
type Structure struct {
	Text        string      `json:"text"`
	Font        FontInfo    `json:"fontInfo"`
	Spacing     SpacingInfo `json:"spacingInfo"`
	Headings    []Heading   `json:"headings"`
	PageNumbers bool        `json:"pageNumbersPresent"`
}

var (
	headingStyleRe = regexp.MustCompile(`(?i)^heading\s*(\d?)$`)

	// First-match-wins scans over raw part markup. Direct formatting, paragraph
	// styles, and document defaults are not distinguished by priority.
	fontFamilyRe = regexp.MustCompile(`<w:rFonts[^>]*w:ascii="([^"]+)"`)
	fontSizeRe   = regexp.MustCompile(`<w:sz[^>]*w:val="(\d+)"`)

	doubleLineRe   = regexp.MustCompile(`<w:spacing[^>]*w:line="480"`)
	autoLineRuleRe = regexp.MustCompile(`<w:spacing[^>]*w:lineRule="auto"`)
	cssLineRe      = regexp.MustCompile(`line-height:\s*2(?:\.0)?\b`)

	pageFieldRe = regexp.MustCompile(`<w:fldSimple[^>]*w:instr="[^"]*PAGE`)
	pageNumElRe = regexp.MustCompile(`<w:pgNum\b`)
	pageInstrRe = regexp.MustCompile(`<w:instrText[^>]*>[^<]*PAGE`)
)

// Extract opens a document package and derives its Structure. It fails only
// when the archive cannot be opened or the main document part is missing or
// unparseable; every per-field shortfall degrades to a default instead.
func Extract(data []byte) (Structure, error) {
	pkg, err := openPackage(data)
	if err != nil {
		return Structure{}, err
	}

	docBytes, err := pkg.mainDocument()
	if err != nil {
		return Structure{}, err
	}

	var doc documentXML
	if err := xml.Unmarshal(docBytes, &doc); err != nil {
		return Structure{}, fmt.Errorf("%w: parse %s: %v", ErrMalformedPackage, documentPart, err)
	}

	stylesBytes, _ := pkg.part(stylesPart)
	styleNames := styleNameIndex(stylesBytes)

	markup := string(stylesBytes) + string(docBytes)
	extra := pkg.headerFooterParts()

	return Structure{
		Text:        extractText(doc),
		Font:        detectFont(markup),
		Spacing:     SpacingInfo{DoubleSpaced: detectDoubleSpacing(markup)},
		Headings:    extractHeadings(doc, styleNames),
		PageNumbers: detectPageNumbers(docBytes, extra),
	}, nil
}

// extractText concatenates all run text nodes in document order, separated by
// single spaces. Paragraph boundaries collapse to whitespace; only the heading
// side-channel keeps block structure.
func extractText(doc documentXML) string {
	var parts []string
	for _, p := range doc.Body.Paragraphs {
		for _, r := range p.Runs {
			for _, t := range r.Texts {
				if t != "" {
					parts = append(parts, t)
				}
			}
		}
	}
	return strings.Join(parts, " ")
}

// detectFont picks the first declared font family and the first declared size
// (half-point units) anywhere in the concatenated markup. This is a heuristic,
// not a cascade-resolved style computation.
func detectFont(markup string) FontInfo {
	info := FontInfo{Family: DefaultFontFamily, SizePt: DefaultFontSizePt}
	if m := fontFamilyRe.FindStringSubmatch(markup); m != nil {
		info.Family = m[1]
	}
	if m := fontSizeRe.FindStringSubmatch(markup); m != nil {
		if halfPoints, err := strconv.Atoi(m[1]); err == nil && halfPoints > 0 {
			info.SizePt = float64(halfPoints) / 2
		}
	}
	return info
}

// detectDoubleSpacing ORs independent positive markers; any one is enough.
func detectDoubleSpacing(markup string) bool {
	return doubleLineRe.MatchString(markup) ||
		autoLineRuleRe.MatchString(markup) ||
		cssLineRe.MatchString(markup)
}

// detectPageNumbers ORs three signals across the main document and any
// header/footer parts: a PAGE field code, a w:pgNum element, or the literal
// marker in instruction text.
func detectPageNumbers(docBytes []byte, headerFooters [][]byte) bool {
	scan := func(part []byte) bool {
		return pageFieldRe.Match(part) || pageNumElRe.Match(part) || pageInstrRe.Match(part)
	}
	if scan(docBytes) {
		return true
	}
	for _, part := range headerFooters {
		if scan(part) {
			return true
		}
	}
	return false
}

// styleNameIndex maps style IDs to display names from the styles part.
// A missing or broken styles part yields an empty index, not an error.
func styleNameIndex(stylesBytes []byte) map[string]string {
	index := make(map[string]string)
	if len(stylesBytes) == 0 {
		return index
	}
	var styles stylesXML
	if err := xml.Unmarshal(stylesBytes, &styles); err != nil {
		return index
	}
	for _, s := range styles.Styles {
		if s.StyleID != "" && s.Name != nil {
			index[s.StyleID] = s.Name.Val
		}
	}
	return index
}

// extractHeadings collects paragraphs whose style ID or resolved style name
// matches the heading pattern, preserving document order. The level comes from
// the trailing digit of the style name only, defaulting to 1 when absent.
func extractHeadings(doc documentXML, styleNames map[string]string) []Heading {
	var headings []Heading
	for _, p := range doc.Body.Paragraphs {
		if p.Properties == nil || p.Properties.Style == nil {
			continue
		}
		styleID := p.Properties.Style.Val
		level, ok := headingLevel(styleID)
		if !ok {
			level, ok = headingLevel(styleNames[styleID])
		}
		if !ok {
			continue
		}
		headings = append(headings, Heading{
			Level:    level,
			Text:     paragraphText(p),
			Bold:     paragraphBold(p),
			Centered: paragraphCentered(p),
		})
	}
	return headings
}

func headingLevel(styleName string) (int, bool) {
	m := headingStyleRe.FindStringSubmatch(strings.TrimSpace(styleName))
	if m == nil {
		return 0, false
	}
	if m[1] == "" {
		return 1, true
	}
	level, err := strconv.Atoi(m[1])
	if err != nil || level < 1 {
		return 1, true
	}
	return level, true
}

func paragraphText(p paragraphXML) string {
	var parts []string
	for _, r := range p.Runs {
		for _, t := range r.Texts {
			if t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}

// paragraphBold reports an explicit bold marker on the paragraph mark or any run.
func paragraphBold(p paragraphXML) bool {
	if p.Properties != nil && p.Properties.RunProps != nil && p.Properties.RunProps.Bold != nil {
		return true
	}
	for _, r := range p.Runs {
		if r.Properties != nil && r.Properties.Bold != nil {
			return true
		}
	}
	return false
}

func paragraphCentered(p paragraphXML) bool {
	return p.Properties != nil && p.Properties.Justify != nil &&
		strings.EqualFold(p.Properties.Justify.Val, "center")
}
