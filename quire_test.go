package quire

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/thoreson/quire/model"
)

func TestAssembleEndToEnd(t *testing.T) {
	doc := model.NewDocument()
	doc.Properties.Title = "Field Report"
	doc.Setup.FootnoteReferenceFormat = "[#]"

	heading := model.NewParagraph("Findings")
	heading.Props.Style = "Heading 1"
	heading.Props.BookmarkID = "findings"

	doc.AddSection(model.NewSection(
		heading,
		model.NewRichParagraph(
			&model.TextRun{Text: "The relation "},
			&model.FormulaRun{Source: `E = mc^2`},
			&model.TextRun{Text: " is cited"},
			&model.FootnoteRun{Text: "Einstein, 1905."},
			&model.TextRun{Text: ", see "},
			&model.CrossRefRun{Target: "findings"},
			&model.TextRun{Text: "."},
		),
	))

	res, err := Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(res.Warnings()) != 0 {
		t.Errorf("unexpected warnings: %s", FormatWarnings(res.Warnings()))
	}

	if _, err := zip.NewReader(bytes.NewReader(res.Bytes()), int64(len(res.Bytes()))); err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}

	body, err := res.DocumentXML()
	if err != nil {
		t.Fatalf("DocumentXML: %v", err)
	}
	content := string(body)
	if strings.Contains(content, "__FORMULA_") || strings.Contains(content, "__FOOTNOTE_") {
		t.Fatalf("unresolved placeholders in final document:\n%s", content)
	}
	for _, want := range []string{
		"<m:oMath>",
		`<w:footnoteReference w:id="1">`,
		` REF findings \h `,
		">Findings</w:t>",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("document missing %s", want)
		}
	}
}

func TestAssembleCollectsWarnings(t *testing.T) {
	doc := model.NewDocument()
	doc.AddSection(model.NewSection(
		model.NewRichParagraph(&model.CrossRefRun{Target: "missing-bookmark"}),
	))

	res, err := New(doc).Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	warnings := res.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("warning count = %d, want 1: %s", len(warnings), FormatWarnings(warnings))
	}
	if !strings.Contains(warnings[0].Message, "cross-reference") {
		t.Errorf("warning = %q", warnings[0].Message)
	}
}

func TestAssembleAltTextOCRUnavailableWarns(t *testing.T) {
	// Built without the ocr tag, enabling OCR degrades to a warning.
	doc := model.NewDocument()
	doc.AddSection(model.NewSection(model.NewParagraph("x")))

	res, err := New(doc).AltTextOCR().Assemble()
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	warnings := res.Warnings()
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "OCR unavailable") {
		t.Fatalf("warnings = %s", FormatWarnings(warnings))
	}
}

func TestAssembleEmptyDocument(t *testing.T) {
	res, err := Assemble(model.NewDocument())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	body, err := res.DocumentXML()
	if err != nil {
		t.Fatalf("DocumentXML: %v", err)
	}
	if !strings.Contains(string(body), "<w:sectPr>") {
		t.Errorf("empty document should still carry section properties")
	}
}

func TestRoundTrip(t *testing.T) {
	doc := model.NewDocument()
	heading := model.NewParagraph("Overview")
	heading.Props.Style = "Heading 2"
	body := model.NewParagraph("Plain prose paragraph.")
	table := &model.Table{Rows: [][]string{{"k", "v"}, {"size", "large"}}}
	doc.AddSection(model.NewSection(heading, body, table))

	res, err := Assemble(doc)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	back, err := ReadDocument(res.Bytes())
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	paras := back.AllParagraphs()
	if len(paras) != 2 {
		t.Fatalf("paragraph count = %d, want 2", len(paras))
	}
	if paras[0].GetText() != "Overview" || paras[0].Props.Style != "Heading 2" {
		t.Errorf("heading = %q style %q", paras[0].GetText(), paras[0].Props.Style)
	}
	if paras[1].GetText() != "Plain prose paragraph." {
		t.Errorf("body = %q", paras[1].GetText())
	}
	tables := back.AllTables()
	if len(tables) != 1 || len(tables[0].Rows) != 2 || tables[0].Rows[1][1] != "large" {
		t.Errorf("table did not survive the round trip: %+v", tables)
	}
}

func TestReadDocumentRejectsJunk(t *testing.T) {
	if _, err := ReadDocument([]byte("not a package")); !errors.Is(err, ErrNotDOCX) {
		t.Fatalf("expected ErrNotDOCX, got %v", err)
	}
}

func TestCompileMath(t *testing.T) {
	data, err := CompileMath(`\frac{1}{2}`)
	if err != nil {
		t.Fatalf("CompileMath: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<m:f>") {
		t.Errorf("fraction structure missing:\n%s", out)
	}
	if !strings.HasPrefix(out, "<m:oMath") {
		t.Errorf("output should be an oMath element:\n%s", out)
	}
}

func TestMust(t *testing.T) {
	if got := Must(42, nil); got != 42 {
		t.Errorf("Must = %d", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("Must should panic on error")
		}
	}()
	Must(0, errors.New("boom"))
}
