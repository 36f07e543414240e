package render

import (
	"archive/zip"
	"bytes"
	"image"
	"image/png"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/thoreson/quire/model"
)

// renderToParts renders the document and unpacks the draft into a
// part-name to content map.
func renderToParts(t *testing.T, doc *model.Document) (map[string]string, Pending) {
	t.Helper()

	res, err := Render(doc, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(res.Draft), int64(len(res.Draft)))
	if err != nil {
		t.Fatalf("draft is not a zip: %v", err)
	}
	parts := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		parts[f.Name] = string(data)
	}
	return parts, res.Pending
}

func singleSection(elements ...model.Element) *model.Document {
	doc := model.NewDocument()
	doc.AddSection(model.NewSection(elements...))
	return doc
}

func TestRenderPlainParagraph(t *testing.T) {
	p := model.NewParagraph("Chapter One")
	p.Props.Style = "Heading 1"
	parts, _ := renderToParts(t, singleSection(p))

	body := parts["word/document.xml"]
	if !strings.Contains(body, `<w:pStyle w:val="Heading1">`) {
		t.Errorf("style name not converted to style id:\n%s", body)
	}
	if !strings.Contains(body, ">Chapter One</w:t>") {
		t.Errorf("paragraph text missing:\n%s", body)
	}
}

func TestRenderSkeletonParts(t *testing.T) {
	parts, _ := renderToParts(t, singleSection(model.NewParagraph("x")))

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/settings.xml",
		"word/numbering.xml",
		"docProps/core.xml",
		"docProps/app.xml",
	} {
		if _, ok := parts[name]; !ok {
			t.Errorf("draft missing part %s", name)
		}
	}
}

func TestRenderParagraphFormatting(t *testing.T) {
	p := model.NewParagraph("styled")
	p.Props.Alignment = model.AlignCenter
	p.Props.FontName = "Georgia"
	p.Props.FontSize = 12 // 24 half-points
	p.Props.FontColor = "336699"
	p.Props.SpacingBefore = 6  // 120 twips
	p.Props.LineSpacing = 1.5  // 360 in 240ths
	p.Props.FirstLineIndent = 2

	parts, _ := renderToParts(t, singleSection(p))
	body := parts["word/document.xml"]

	for _, want := range []string{
		`<w:jc w:val="center">`,
		`w:ascii="Georgia"`,
		`<w:sz w:val="24">`,
		`<w:color w:val="336699">`,
		`w:before="120"`,
		`w:line="360"`,
		`w:lineRule="auto"`,
		`w:firstLineChars="200"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("document.xml missing %s", want)
		}
	}
}

var placeholderPattern = regexp.MustCompile(`^__(FORMULA|FOOTNOTE|ENDNOTE)_[0-9a-f]{32}__$`)

func TestRenderPlaceholderRuns(t *testing.T) {
	p := model.NewRichParagraph(
		&model.TextRun{Text: "Euler: "},
		&model.FormulaRun{Source: `e^{i\pi} = -1`},
		&model.FootnoteRun{Text: "A famous identity."},
		&model.EndnoteRun{Text: "See appendix."},
	)
	parts, pending := renderToParts(t, singleSection(p))
	body := parts["word/document.xml"]

	if len(pending.Formulas) != 1 || len(pending.Footnotes) != 1 || len(pending.Endnotes) != 1 {
		t.Fatalf("pending counts = %d/%d/%d, want 1/1/1",
			len(pending.Formulas), len(pending.Footnotes), len(pending.Endnotes))
	}
	for token, source := range pending.Formulas {
		if !placeholderPattern.MatchString(token) {
			t.Errorf("malformed formula token %q", token)
		}
		if source != `e^{i\pi} = -1` {
			t.Errorf("formula source = %q", source)
		}
		if !strings.Contains(body, token) {
			t.Errorf("token %s not present as literal text", token)
		}
	}
	for token := range pending.Footnotes {
		if !strings.Contains(body, token) {
			t.Errorf("footnote token %s not in body", token)
		}
	}
	for token := range pending.Endnotes {
		if !strings.Contains(body, token) {
			t.Errorf("endnote token %s not in body", token)
		}
	}
}

func TestRenderDisplayFormula(t *testing.T) {
	f := &model.Formula{Source: `\frac{a}{b}`}
	parts, pending := renderToParts(t, singleSection(f))
	body := parts["word/document.xml"]

	if len(pending.Formulas) != 1 {
		t.Fatalf("pending formulas = %d, want 1", len(pending.Formulas))
	}
	for token := range pending.Formulas {
		if !strings.Contains(body, ">"+token+"</w:t>") {
			t.Errorf("display formula paragraph does not hold the bare token")
		}
	}
}

func TestRenderCrossReference(t *testing.T) {
	target := model.NewParagraph("Results")
	target.Props.Style = "Heading 1"
	target.Props.BookmarkID = "sec-results"
	ref := model.NewRichParagraph(
		&model.TextRun{Text: "see "},
		&model.CrossRefRun{Target: "sec-results"},
	)
	// Forward reference: the referencing paragraph comes first.
	parts, _ := renderToParts(t, singleSection(ref, target))
	body := parts["word/document.xml"]

	if !strings.Contains(body, `<w:bookmarkStart w:id="1" w:name="sec-results">`) {
		t.Errorf("bookmarkStart missing:\n%s", body)
	}
	if !strings.Contains(body, `<w:bookmarkEnd w:id="1">`) {
		t.Errorf("bookmarkEnd missing")
	}
	if !strings.Contains(body, ` REF sec-results \h `) {
		t.Errorf("REF instruction missing")
	}
	if !strings.Contains(body, ">Results</w:t>") {
		t.Errorf("cached display text missing")
	}
}

func TestRenderCrossReferenceUnresolved(t *testing.T) {
	ref := model.NewRichParagraph(&model.CrossRefRun{Target: "nowhere"})
	parts, _ := renderToParts(t, singleSection(ref))

	if !strings.Contains(parts["word/document.xml"], ">nowhere not found</w:t>") {
		t.Errorf("unresolved reference should cache a 'not found' display")
	}
}

func TestRenderLists(t *testing.T) {
	bullets := &model.List{Items: []model.ListItem{
		{Text: "first"},
		{Text: "nested", Level: 1},
	}}
	numbered := &model.List{Ordered: true, Items: []model.ListItem{{Text: "one"}}}
	parts, _ := renderToParts(t, singleSection(bullets, numbered))
	body := parts["word/document.xml"]

	if !strings.Contains(body, `<w:pStyle w:val="ListBullet">`) ||
		!strings.Contains(body, `<w:numId w:val="1">`) {
		t.Errorf("bullet list not linked to numId 1:\n%s", body)
	}
	if !strings.Contains(body, `<w:ilvl w:val="1">`) {
		t.Errorf("nested item level missing")
	}
	if !strings.Contains(body, `<w:pStyle w:val="ListNumber">`) ||
		!strings.Contains(body, `<w:numId w:val="2">`) {
		t.Errorf("ordered list not linked to numId 2")
	}
}

func TestRenderTable(t *testing.T) {
	table := &model.Table{
		Rows: [][]string{
			{"Name", "Score"},
			{"alpha", "10"},
			{"beta"}, // short row pads to grid width
		},
		Props: model.TableProperties{
			HeaderRow:        true,
			ColumnAlignments: []model.Alignment{model.AlignDefault, model.AlignRight},
		},
	}
	parts, _ := renderToParts(t, singleSection(table))
	body := parts["word/document.xml"]

	if !strings.Contains(body, `<w:tblStyle w:val="TableGrid">`) {
		t.Errorf("default table style missing")
	}
	if !strings.Contains(body, `<w:tblW w:w="5000" w:type="pct">`) {
		t.Errorf("full-width table width missing")
	}
	if strings.Count(body, "<w:gridCol") != 2 {
		t.Errorf("grid column count = %d, want 2", strings.Count(body, "<w:gridCol"))
	}
	if strings.Count(body, "<w:tc>") != 6 {
		t.Errorf("cell count = %d, want 6 (short row padded)", strings.Count(body, "<w:tc>"))
	}
	// Header-row cells carry bold run properties.
	headerRow := body[strings.Index(body, "<w:tr>"):strings.Index(body, "</w:tr>")]
	if !strings.Contains(headerRow, "<w:b>") {
		t.Errorf("header row not bold:\n%s", headerRow)
	}
	if !strings.Contains(body, `<w:jc w:val="right">`) {
		t.Errorf("column alignment not applied")
	}
}

func TestRenderSectionsAndColumns(t *testing.T) {
	doc := model.NewDocument()
	doc.AddSection(model.NewSection(model.NewParagraph("single")))
	two := model.NewSection(model.NewParagraph("double"))
	two.Columns = 2
	doc.AddSection(two)

	parts, _ := renderToParts(t, doc)
	body := parts["word/document.xml"]

	// The non-final section closes with a paragraph-borne sectPr; the
	// final sectPr is a direct body child.
	if strings.Count(body, "<w:sectPr>") != 2 {
		t.Fatalf("sectPr count = %d, want 2", strings.Count(body, "<w:sectPr>"))
	}
	first := body[strings.Index(body, "<w:sectPr>"):]
	if !strings.Contains(body[:strings.Index(body, "<w:sectPr>")], "single") {
		t.Errorf("first section content should precede its sectPr")
	}
	if !strings.HasPrefix(first, "<w:sectPr><w:pgSz") {
		t.Errorf("sectPr should open with page size")
	}
	if !strings.Contains(body, `<w:cols w:num="2" w:space="425">`) {
		t.Errorf("two-column section missing cols element")
	}
	if !strings.Contains(body, "</w:sectPr></w:body>") {
		t.Errorf("final sectPr should close the body")
	}
}

func TestRenderPageSetup(t *testing.T) {
	doc := singleSection(model.NewParagraph("x"))
	doc.Setup.Orientation = model.Landscape
	doc.Setup.Margins = model.Margins{TopCm: 2, BottomCm: 2, LeftCm: 3, RightCm: 1}

	parts, _ := renderToParts(t, doc)
	body := parts["word/document.xml"]

	if !strings.Contains(body, `w:w="16838" w:h="11906"`) {
		t.Errorf("landscape should swap page dimensions")
	}
	if !strings.Contains(body, `w:orient="landscape"`) {
		t.Errorf("orientation attribute missing")
	}
	if !strings.Contains(body, `w:top="1134"`) || !strings.Contains(body, `w:left="1701"`) {
		t.Errorf("margins not converted to twips:\n%s", body)
	}
}

func TestRenderHeaderFooter(t *testing.T) {
	doc := singleSection(
		&model.Header{Props: model.HeaderFooterProperties{Text: "Annual Report"}},
		&model.Footer{Props: model.HeaderFooterProperties{Text: "Page {PAGE_NUM} of many"}},
		model.NewParagraph("body"),
	)
	parts, _ := renderToParts(t, doc)

	header, ok := parts["word/header1.xml"]
	if !ok {
		t.Fatalf("header part missing")
	}
	if !strings.Contains(header, ">Annual Report</w:t>") {
		t.Errorf("header text missing:\n%s", header)
	}
	footer, ok := parts["word/footer1.xml"]
	if !ok {
		t.Fatalf("footer part missing")
	}
	for _, want := range []string{">Page </w:t>", ` PAGE `, ">of many</w:t>"} {
		if !strings.Contains(footer, want) {
			t.Errorf("footer missing %s:\n%s", want, footer)
		}
	}

	body := parts["word/document.xml"]
	if !strings.Contains(body, `<w:headerReference w:type="default"`) ||
		!strings.Contains(body, `<w:footerReference w:type="default"`) {
		t.Errorf("section properties missing header/footer references")
	}
	ct := parts["[Content_Types].xml"]
	if !strings.Contains(ct, "header+xml") || !strings.Contains(ct, "footer+xml") {
		t.Errorf("content-type overrides missing for header/footer parts")
	}
}

func TestRenderImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}
	parts, _ := renderToParts(t, singleSection(&model.Image{
		Data:    buf.Bytes(),
		AltText: "a test pattern",
	}))

	if _, ok := parts["word/media/image1.png"]; !ok {
		t.Fatalf("media part missing; parts: %v", partNames(parts))
	}
	body := parts["word/document.xml"]
	// 4x2 px at 96 DPI.
	if !strings.Contains(body, `cx="38100" cy="19050"`) {
		t.Errorf("intrinsic extent missing:\n%s", body)
	}
	if !strings.Contains(body, `descr="a test pattern"`) {
		t.Errorf("alt text not carried into docPr")
	}
	if !strings.Contains(parts["[Content_Types].xml"], `Extension="png"`) {
		t.Errorf("png default content type missing")
	}
	if !strings.Contains(parts["word/_rels/document.xml.rels"], `Target="media/image1.png"`) {
		t.Errorf("image relationship missing")
	}
}

func TestRenderUndecodableImageFallsBack(t *testing.T) {
	parts, _ := renderToParts(t, singleSection(&model.Image{
		Data: []byte("not an image"), WidthCm: 5, HeightCm: 5,
	}))
	body := parts["word/document.xml"]
	if !strings.Contains(body, `cx="1800000" cy="1800000"`) {
		t.Errorf("explicit dimensions should size the fallback extent:\n%s", body)
	}
}

func TestRenderBreaks(t *testing.T) {
	parts, _ := renderToParts(t, singleSection(
		model.NewParagraph("before"),
		&model.ColumnBreak{},
		&model.PageBreak{},
	))
	body := parts["word/document.xml"]

	if !strings.Contains(body, `>before</w:t></w:r><w:r><w:br w:type="column">`) {
		t.Errorf("column break should attach to the preceding paragraph:\n%s", body)
	}
	if !strings.Contains(body, `<w:br w:type="page">`) {
		t.Errorf("page break missing")
	}
}

func TestRenderTOC(t *testing.T) {
	parts, _ := renderToParts(t, singleSection(&model.TOC{}))
	body := parts["word/document.xml"]

	if !strings.Contains(body, `w:dirty="true"`) {
		t.Errorf("TOC field should be marked dirty")
	}
	if !strings.Contains(body, ` TOC \o &#34;1-3&#34; \h \z \u `) {
		t.Errorf("TOC instruction missing:\n%s", body)
	}
}

func TestRenderCoreProperties(t *testing.T) {
	doc := singleSection(model.NewParagraph("x"))
	doc.Properties.Title = "Q3 Figures"
	doc.Properties.Creator = "reporting"
	doc.Properties.Keywords = []string{"finance", "quarterly"}

	parts, _ := renderToParts(t, doc)
	core := parts["docProps/core.xml"]
	if !strings.Contains(core, ">Q3 Figures</dc:title>") {
		t.Errorf("title missing:\n%s", core)
	}
	if !strings.Contains(core, "finance, quarterly") {
		t.Errorf("keywords missing")
	}
}

func TestStyleID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Heading 1", "Heading1"},
		{"Table Grid", "TableGrid"},
		{"Normal", "Normal"},
	}
	for _, tt := range tests {
		if got := styleID(tt.name); got != tt.want {
			t.Errorf("styleID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestUnitConversions(t *testing.T) {
	if got := cmToTwips(2.5); got != "1418" {
		t.Errorf("cmToTwips(2.5) = %s, want 1418", got)
	}
	if got := pointsToTwips(6); got != "120" {
		t.Errorf("pointsToTwips(6) = %s, want 120", got)
	}
	if got := cmToEMU(1); got != 360000 {
		t.Errorf("cmToEMU(1) = %d, want 360000", got)
	}
}

func partNames(parts map[string]string) []string {
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	return names
}
