package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func buildPackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func wrapDocument(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` + body + `</w:body></w:document>`
}

func TestExtractRejectsNonArchive(t *testing.T) {
	_, err := Extract([]byte("this is not a zip archive"))
	if !errors.Is(err, ErrMalformedPackage) {
		t.Fatalf("expected ErrMalformedPackage, got %v", err)
	}
}

func TestExtractRejectsMissingDocumentPart(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"word/styles.xml": `<w:styles ` + wordNS + `></w:styles>`,
	})
	_, err := Extract(data)
	if !errors.Is(err, ErrMalformedPackage) {
		t.Fatalf("expected ErrMalformedPackage, got %v", err)
	}
}

func TestExtractRejectsBrokenDocumentPart(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"word/document.xml": "<w:document><w:body><w:p>",
	})
	_, err := Extract(data)
	if !errors.Is(err, ErrMalformedPackage) {
		t.Fatalf("expected ErrMalformedPackage, got %v", err)
	}
}

func TestExtractTextJoinsRunsWithSpaces(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"word/document.xml": wrapDocument(
			`<w:p><w:r><w:t>The Effects</w:t></w:r><w:r><w:t>of Sleep</w:t></w:r></w:p>` +
				`<w:p><w:r><w:t>on Memory</w:t></w:r></w:p>`),
	})
	s, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := "The Effects of Sleep on Memory"
	if s.Text != want {
		t.Fatalf("text = %q, want %q", s.Text, want)
	}
}

func TestDetectFontDefaultsWhenUndeclared(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"word/document.xml": wrapDocument(`<w:p><w:r><w:t>hello</w:t></w:r></w:p>`),
	})
	s, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if s.Font.Family != DefaultFontFamily || s.Font.SizePt != DefaultFontSizePt {
		t.Fatalf("font = %+v, want defaults", s.Font)
	}
}

func TestDetectFontFromStylesPart(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"word/styles.xml": `<w:styles ` + wordNS + `><w:docDefaults><w:rPrDefault><w:rPr>` +
			`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/>` +
			`</w:rPr></w:rPrDefault></w:docDefaults></w:styles>`,
		"word/document.xml": wrapDocument(`<w:p><w:r><w:t>hello</w:t></w:r></w:p>`),
	})
	s, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if s.Font.Family != "Calibri" {
		t.Fatalf("family = %q, want Calibri", s.Font.Family)
	}
	if s.Font.SizePt != 11 {
		t.Fatalf("sizePt = %v, want 11 (22 half-points)", s.Font.SizePt)
	}
}

func TestDetectDoubleSpacing(t *testing.T) {
	cases := []struct {
		name string
		body string
		want bool
	}{
		{"explicit 480 line", `<w:p><w:pPr><w:spacing w:line="480" w:lineRule="exact"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`, true},
		{"auto line rule", `<w:p><w:pPr><w:spacing w:line="276" w:lineRule="auto"/></w:pPr><w:r><w:t>x</w:t></w:r></w:p>`, true},
		{"no markers", `<w:p><w:r><w:t>x</w:t></w:r></w:p>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := buildPackage(t, map[string]string{
				"word/document.xml": wrapDocument(tc.body),
			})
			s, err := Extract(data)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if s.Spacing.DoubleSpaced != tc.want {
				t.Fatalf("doubleSpaced = %v, want %v", s.Spacing.DoubleSpaced, tc.want)
			}
		})
	}
}

func TestExtractHeadings(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"word/document.xml": wrapDocument(
			`<w:p><w:pPr><w:pStyle w:val="Heading1"/><w:jc w:val="center"/><w:rPr><w:b/></w:rPr></w:pPr>` +
				`<w:r><w:t>Method</w:t></w:r></w:p>` +
				`<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr>` +
				`<w:r><w:rPr><w:b/></w:rPr><w:t>Participants</w:t></w:r></w:p>` +
				`<w:p><w:pPr><w:pStyle w:val="Normal"/></w:pPr><w:r><w:t>Body text.</w:t></w:r></w:p>`),
	})
	s, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(s.Headings) != 2 {
		t.Fatalf("got %d headings, want 2: %+v", len(s.Headings), s.Headings)
	}
	first := s.Headings[0]
	if first.Level != 1 || first.Text != "Method" || !first.Bold || !first.Centered {
		t.Fatalf("first heading = %+v", first)
	}
	second := s.Headings[1]
	if second.Level != 2 || second.Text != "Participants" || !second.Bold || second.Centered {
		t.Fatalf("second heading = %+v", second)
	}
}

func TestExtractHeadingsResolvesStyleNames(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"word/styles.xml": `<w:styles ` + wordNS + `>` +
			`<w:style w:type="paragraph" w:styleId="H1"><w:name w:val="heading 1"/></w:style>` +
			`</w:styles>`,
		"word/document.xml": wrapDocument(
			`<w:p><w:pPr><w:pStyle w:val="H1"/></w:pPr><w:r><w:t>Results</w:t></w:r></w:p>`),
	})
	s, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(s.Headings) != 1 || s.Headings[0].Level != 1 || s.Headings[0].Text != "Results" {
		t.Fatalf("headings = %+v", s.Headings)
	}
}

func TestHeadingLevelDefaultsToOne(t *testing.T) {
	data := buildPackage(t, map[string]string{
		"word/document.xml": wrapDocument(
			`<w:p><w:pPr><w:pStyle w:val="Heading"/></w:pPr><w:r><w:t>Discussion</w:t></w:r></w:p>`),
	})
	s, err := Extract(data)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(s.Headings) != 1 || s.Headings[0].Level != 1 {
		t.Fatalf("headings = %+v", s.Headings)
	}
}

func TestDetectPageNumbers(t *testing.T) {
	cases := []struct {
		name  string
		parts map[string]string
		want  bool
	}{
		{
			name: "field code in footer",
			parts: map[string]string{
				"word/document.xml": wrapDocument(`<w:p><w:r><w:t>x</w:t></w:r></w:p>`),
				"word/footer1.xml":  `<w:ftr ` + wordNS + `><w:p><w:fldSimple w:instr=" PAGE "><w:r><w:t>1</w:t></w:r></w:fldSimple></w:p></w:ftr>`,
			},
			want: true,
		},
		{
			name: "pgNum element in header",
			parts: map[string]string{
				"word/document.xml": wrapDocument(`<w:p><w:r><w:t>x</w:t></w:r></w:p>`),
				"word/header1.xml":  `<w:hdr ` + wordNS + `><w:p><w:r><w:pgNum/></w:r></w:p></w:hdr>`,
			},
			want: true,
		},
		{
			name: "instruction text in body",
			parts: map[string]string{
				"word/document.xml": wrapDocument(`<w:p><w:r><w:instrText> PAGE \\* MERGEFORMAT </w:instrText></w:r></w:p>`),
			},
			want: true,
		},
		{
			name: "no signals",
			parts: map[string]string{
				"word/document.xml": wrapDocument(`<w:p><w:r><w:t>x</w:t></w:r></w:p>`),
			},
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Extract(buildPackage(t, tc.parts))
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if s.PageNumbers != tc.want {
				t.Fatalf("pageNumbers = %v, want %v", s.PageNumbers, tc.want)
			}
		})
	}
}
