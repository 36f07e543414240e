package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

// buildTestPackage assembles an in-memory package from name/content pairs
// in the given order.
func buildTestPackage(t *testing.T, parts [][2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part[0])
		if err != nil {
			t.Fatalf("creating %s: %v", part[0], err)
		}
		if _, err := w.Write([]byte(part[1])); err != nil {
			t.Fatalf("writing %s: %v", part[0], err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

// minimalParts returns the smallest part set OpenPackage accepts.
func minimalParts(body string) [][2]string {
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="` + NSWordML + `"><w:body>` + body + `</w:body></w:document>`
	return [][2]string{
		{PartContentTypes, string(ContentTypesXML())},
		{PartRootRels, string(RootRelsXML())},
		{PartDocument, document},
		{PartDocumentRels, string(DocumentRelsXML())},
		{PartStyles, string(StylesXML())},
	}
}

func TestOpenPackage(t *testing.T) {
	data := buildTestPackage(t, minimalParts("<w:p><w:r><w:t>hi</w:t></w:r></w:p>"))

	pkg, err := OpenPackage(data)
	if err != nil {
		t.Fatalf("OpenPackage failed: %v", err)
	}
	if !pkg.Has(PartDocument) {
		t.Error("expected document part to exist")
	}
	part, ok := pkg.Part(PartDocument)
	if !ok {
		t.Fatal("document part not readable")
	}
	if !strings.Contains(string(part), "<w:t>hi</w:t>") {
		t.Errorf("unexpected document content: %s", part)
	}
}

func TestOpenPackageNotZip(t *testing.T) {
	_, err := OpenPackage([]byte("this is not a zip file"))
	if !errors.Is(err, ErrNotDOCX) {
		t.Errorf("expected ErrNotDOCX, got %v", err)
	}
}

func TestOpenPackageMissingDocument(t *testing.T) {
	data := buildTestPackage(t, [][2]string{
		{PartContentTypes, string(ContentTypesXML())},
	})
	_, err := OpenPackage(data)
	if !errors.Is(err, ErrMissingPart) {
		t.Errorf("expected ErrMissingPart, got %v", err)
	}
}

// TestBytesPreservesUntouchedEntries verifies that rewriting a package
// leaves entries that were never replaced byte-identical.
func TestBytesPreservesUntouchedEntries(t *testing.T) {
	data := buildTestPackage(t, minimalParts("<w:p/>"))
	pkg, err := OpenPackage(data)
	if err != nil {
		t.Fatalf("OpenPackage failed: %v", err)
	}

	pkg.SetPart(PartDocument, []byte("<w:document/>"))

	out, err := pkg.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	before, _ := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	after, _ := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if len(before.File) != len(after.File) {
		t.Fatalf("entry count changed: %d -> %d", len(before.File), len(after.File))
	}
	for i, f := range before.File {
		if f.Name == PartDocument {
			continue
		}
		if after.File[i].Name != f.Name {
			t.Errorf("entry %d renamed: %s -> %s", i, f.Name, after.File[i].Name)
		}
		if after.File[i].CRC32 != f.CRC32 {
			t.Errorf("entry %s content changed", f.Name)
		}
	}

	reread, err := OpenPackage(out)
	if err != nil {
		t.Fatalf("reopening rewritten package: %v", err)
	}
	doc, _ := reread.Part(PartDocument)
	if string(doc) != "<w:document/>" {
		t.Errorf("replaced part not persisted: %s", doc)
	}
}

func TestNewPackageAddsParts(t *testing.T) {
	pkg := NewPackage()
	pkg.SetPart(PartContentTypes, ContentTypesXML())
	pkg.SetPart(PartDocument, []byte("<doc/>"))

	names := pkg.PartNames()
	if len(names) != 2 || names[0] != PartContentTypes || names[1] != PartDocument {
		t.Errorf("unexpected part order: %v", names)
	}

	out, err := pkg.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("output not a zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Errorf("expected 2 entries, got %d", len(zr.File))
	}
}

func TestAddContentTypeOverride(t *testing.T) {
	data := buildTestPackage(t, minimalParts("<w:p/>"))
	pkg, _ := OpenPackage(data)

	if err := pkg.AddContentTypeOverride(PartFootnotes, CTFootnotes); err != nil {
		t.Fatalf("AddContentTypeOverride failed: %v", err)
	}
	ct, _ := pkg.Part(PartContentTypes)
	if !strings.Contains(string(ct), `PartName="/word/footnotes.xml"`) {
		t.Errorf("override missing: %s", ct)
	}
	if strings.Count(string(ct), "<Override") < 7 {
		t.Errorf("existing overrides lost: %s", ct)
	}

	// Registering again must not duplicate.
	if err := pkg.AddContentTypeOverride(PartFootnotes, CTFootnotes); err != nil {
		t.Fatalf("second AddContentTypeOverride failed: %v", err)
	}
	ct, _ = pkg.Part(PartContentTypes)
	if got := strings.Count(string(ct), `PartName="/word/footnotes.xml"`); got != 1 {
		t.Errorf("expected 1 footnotes override, got %d", got)
	}
}

func TestAddContentTypeDefault(t *testing.T) {
	data := buildTestPackage(t, minimalParts("<w:p/>"))
	pkg, _ := OpenPackage(data)

	if err := pkg.AddContentTypeDefault("png", "image/png"); err != nil {
		t.Fatalf("AddContentTypeDefault failed: %v", err)
	}
	if err := pkg.AddContentTypeDefault("png", "image/png"); err != nil {
		t.Fatalf("second AddContentTypeDefault failed: %v", err)
	}
	ct, _ := pkg.Part(PartContentTypes)
	if got := strings.Count(string(ct), `Extension="png"`); got != 1 {
		t.Errorf("expected 1 png default, got %d", got)
	}
}

func TestAddRelationship(t *testing.T) {
	data := buildTestPackage(t, minimalParts("<w:p/>"))
	pkg, _ := OpenPackage(data)

	id, err := pkg.AddRelationship(RelTypeFootnotes, "footnotes.xml")
	if err != nil {
		t.Fatalf("AddRelationship failed: %v", err)
	}
	if id != "rId4" {
		t.Errorf("expected rId4 after the three skeleton rels, got %s", id)
	}

	// Same type+target returns the existing id.
	again, err := pkg.AddRelationship(RelTypeFootnotes, "footnotes.xml")
	if err != nil {
		t.Fatalf("repeat AddRelationship failed: %v", err)
	}
	if again != id {
		t.Errorf("expected stable id %s, got %s", id, again)
	}

	other, err := pkg.AddRelationship(RelTypeEndnotes, "endnotes.xml")
	if err != nil {
		t.Fatalf("AddRelationship failed: %v", err)
	}
	if other != "rId5" {
		t.Errorf("expected rId5, got %s", other)
	}
}

func TestIsDOCX(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"valid package", buildTestPackage(t, minimalParts("<w:p/>")), true},
		{"zip without document part", buildTestPackage(t, [][2]string{{"foo.txt", "bar"}}), false},
		{"not a zip", []byte("%PDF-1.7 not a zip"), false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDOCX(tt.data); got != tt.want {
				t.Errorf("IsDOCX() = %v, want %v", got, tt.want)
			}
		})
	}
}
