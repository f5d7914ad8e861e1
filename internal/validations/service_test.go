package validations

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"apacheck-backend/internal/apa"
	"apacheck-backend/internal/documents"
	localstore "apacheck-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	docs := &documents.Service{
		Store: localstore.New(t.TempDir()),
		Repo:  documents.NewMemoryRepo(),
	}
	return &Service{
		Repo:   NewMemoryRepo(),
		Docs:   docs,
		Policy: apa.DefaultPolicy(),
	}
}

func docxBytes(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const serviceTestDocXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Effects of Sleep on Memory. Jane Smith. Department of Psychology, State University.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestRunUploadStoresValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	v, err := svc.RunUpload(ctx, "guest:u1", "paper.docx", bytes.NewReader(docxBytes(t, serviceTestDocXML)))
	if err != nil {
		t.Fatalf("RunUpload: %v", err)
	}
	if v.ID == "" || v.DocumentID == "" {
		t.Fatalf("expected ids, got %+v", v)
	}
	if v.Score != v.Report.Score {
		t.Fatalf("score %d does not match report score %d", v.Score, v.Report.Score)
	}

	stored, err := svc.Get(ctx, "guest:u1", v.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.ID != v.ID || stored.Score != v.Score {
		t.Fatalf("stored validation mismatch: %+v vs %+v", stored, v)
	}

	// The upload is also visible as a document.
	doc, err := svc.Docs.Get(ctx, "guest:u1", v.DocumentID)
	if err != nil {
		t.Fatalf("document Get: %v", err)
	}
	if doc.FileName != "paper.docx" {
		t.Fatalf("expected paper.docx, got %s", doc.FileName)
	}
}

func TestRunRequiresDocumentID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Run(context.Background(), "guest:u1", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRunUnknownDocument(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Run(context.Background(), "guest:u1", "no-such-document")
	if !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("expected documents.ErrNotFound, got %v", err)
	}
}

func TestValidateMalformedPackageDegrades(t *testing.T) {
	svc := newTestService(t)

	report := svc.validate("broken.docx", []byte("PK\x03\x04 truncated"))
	if report.Score != 0 {
		t.Fatalf("expected score 0, got %d", report.Score)
	}
	if len(report.Issues) != 1 || report.Issues[0].ID != "document-unreadable" {
		t.Fatalf("expected document-unreadable issue, got %+v", report.Issues)
	}
	if len(report.Passing) != 0 {
		t.Fatalf("expected no passing findings, got %d", len(report.Passing))
	}
}

func TestRunUsesStoredDocumentBytes(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	doc, err := svc.Docs.Upload(ctx, "guest:u1", "paper.docx", bytes.NewReader(docxBytes(t, serviceTestDocXML)))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	v, err := svc.Run(ctx, "guest:u1", doc.ID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.DocumentID != doc.ID {
		t.Fatalf("expected documentId %s, got %s", doc.ID, v.DocumentID)
	}
	if v.Filename != "paper.docx" {
		t.Fatalf("expected filename paper.docx, got %s", v.Filename)
	}
}
