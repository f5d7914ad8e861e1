package docx

// WordprocessingML types for the parts the extractor reads. Only the
// formatting-relevant subset is modeled; unknown elements are ignored by the
// decoder. Attribute and element names match the w: namespace local names.

type documentXML struct {
	Body bodyXML `xml:"body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

type paragraphXML struct {
	Properties *paragraphPropsXML `xml:"pPr"`
	Runs       []runXML           `xml:"r"`
}

type paragraphPropsXML struct {
	Style    *valXML      `xml:"pStyle"`
	Justify  *valXML      `xml:"jc"`
	Spacing  *spacingXML  `xml:"spacing"`
	RunProps *runPropsXML `xml:"rPr"`
}

type runXML struct {
	Properties *runPropsXML `xml:"rPr"`
	Texts      []string     `xml:"t"`
	InstrTexts []string     `xml:"instrText"`
}

type runPropsXML struct {
	Bold  *emptyXML `xml:"b"`
	Fonts *fontsXML `xml:"rFonts"`
	Size  *valXML   `xml:"sz"`
}

type fontsXML struct {
	ASCII string `xml:"ascii,attr"`
	HAnsi string `xml:"hAnsi,attr"`
}

type spacingXML struct {
	Line     string `xml:"line,attr"`
	LineRule string `xml:"lineRule,attr"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}

type emptyXML struct{}

type stylesXML struct {
	Styles []styleXML `xml:"style"`
}

type styleXML struct {
	Type    string  `xml:"type,attr"`
	StyleID string  `xml:"styleId,attr"`
	Name    *valXML `xml:"name"`
}
