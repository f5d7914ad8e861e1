package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrMalformedPackage indicates the bytes are not a readable document package:
// the archive cannot be opened or the main document part is absent or broken.
var ErrMalformedPackage = errors.New("malformed document package")

const (
	documentPart = "word/document.xml"
	stylesPart   = "word/styles.xml"
)

// packageReader holds the XML parts of an opened document package.
type packageReader struct {
	parts map[string][]byte
}

// openPackage opens raw bytes as a zip archive and reads its parts into memory.
func openPackage(data []byte) (*packageReader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open archive: %v", ErrMalformedPackage, err)
	}

	parts := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		name := path.Clean(f.Name)
		if !strings.HasSuffix(name, ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		content, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			continue
		}
		parts[name] = content
	}
	return &packageReader{parts: parts}, nil
}

// part returns the named part, or false when the package does not carry it.
func (r *packageReader) part(name string) ([]byte, bool) {
	content, ok := r.parts[name]
	return content, ok
}

// mainDocument returns word/document.xml or fails the whole extraction.
func (r *packageReader) mainDocument() ([]byte, error) {
	content, ok := r.parts[documentPart]
	if !ok || len(content) == 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedPackage, documentPart)
	}
	return content, nil
}

// headerFooterParts returns every word/headerN.xml and word/footerN.xml part.
// Missing parts are normal; the result may be empty.
func (r *packageReader) headerFooterParts() [][]byte {
	var out [][]byte
	for name, content := range r.parts {
		base := path.Base(name)
		if strings.HasPrefix(base, "header") || strings.HasPrefix(base, "footer") {
			out = append(out, content)
		}
	}
	return out
}
