package inject

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/thoreson/quire/docx"
	"github.com/thoreson/quire/internal/xmltree"
)

// noteKind parameterizes the injection engine over footnotes and
// endnotes, which differ only in names.
type noteKind struct {
	label       string
	partName    string
	entryName   string // w:footnote / w:endnote
	refName     string // w:footnoteReference / w:endnoteReference
	markName    string // w:footnoteRef / w:endnoteRef
	textStyle   string
	refStyle    string
	relType     string
	contentType string
	target      string
	freshPart   func() []byte
}

var footnoteKind = noteKind{
	label:       "footnote",
	partName:    docx.PartFootnotes,
	entryName:   "w:footnote",
	refName:     "w:footnoteReference",
	markName:    "w:footnoteRef",
	textStyle:   "FootnoteText",
	refStyle:    "FootnoteReference",
	relType:     docx.RelTypeFootnotes,
	contentType: docx.CTFootnotes,
	target:      "footnotes.xml",
	freshPart:   docx.FootnotesXML,
}

var endnoteKind = noteKind{
	label:       "endnote",
	partName:    docx.PartEndnotes,
	entryName:   "w:endnote",
	refName:     "w:endnoteReference",
	markName:    "w:endnoteRef",
	textStyle:   "EndnoteText",
	refStyle:    "EndnoteReference",
	relType:     docx.RelTypeEndnotes,
	contentType: docx.CTEndnotes,
	target:      "endnotes.xml",
	freshPart:   docx.EndnotesXML,
}

// injectNotes resolves footnote or endnote placeholders: each note body
// is appended to the auxiliary part under the next free positive id, and
// the placeholder run in the document part is replaced by the
// reference-mark run sequence. Ids follow document order, so the first
// anchor in reading order gets the lowest number.
func injectNotes(pkg *docx.Package, kind noteKind, notes map[string]string, refFormat string, logger *zap.Logger) error {
	if !pkg.Has(kind.partName) {
		pkg.SetPart(kind.partName, kind.freshPart())
	}
	if err := pkg.AddContentTypeOverride(kind.partName, kind.contentType); err != nil {
		return err
	}
	if _, err := pkg.AddRelationship(kind.relType, kind.target); err != nil {
		return err
	}

	notesDoc, err := parsePart(pkg, kind.partName)
	if err != nil {
		return err
	}
	doc, err := parsePart(pkg, docx.PartDocument)
	if err != nil {
		return err
	}

	nextID := 1
	for _, entry := range notesDoc.Root.Children {
		if entry.IsText {
			continue
		}
		if id, err := strconv.Atoi(xmltree.AttrValue(entry, "id")); err == nil && id >= nextID {
			nextID = id + 1
		}
	}

	// Collect placeholder runs in document order; splice in reverse so
	// recorded sibling indexes stay valid.
	type match struct {
		parent *xmltree.Node
		index  int
		token  string
		id     int
	}
	var matches []match
	walkWithParent(doc.Root, func(parent *xmltree.Node, index int, child *xmltree.Node) bool {
		if !xmltree.IsElement(child, "r") {
			return true
		}
		if _, ok := notes[xmltree.CollectText(child)]; ok {
			matches = append(matches, match{parent: parent, index: index, token: xmltree.CollectText(child)})
		}
		return true
	})
	for i := range matches {
		matches[i].id = nextID
		nextID++
	}

	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		m.parent.ReplaceChild(m.index, referenceRuns(kind, refFormat, m.id)...)
	}
	for _, m := range matches {
		notesDoc.Root.Children = append(notesDoc.Root.Children, noteEntry(kind, m.id, notes[m.token]))
	}

	if len(matches) < len(notes) {
		found := make(map[string]bool, len(matches))
		for _, m := range matches {
			found[m.token] = true
		}
		for token := range notes {
			if !found[token] {
				logger.Warn(kind.label+" placeholder not found in document",
					zap.String("placeholder", token))
			}
		}
	}

	if err := savePart(pkg, kind.partName, notesDoc); err != nil {
		return err
	}
	return savePart(pkg, docx.PartDocument, doc)
}

// noteEntry builds the w:footnote/w:endnote element for one note body:
// a styled paragraph opening with the note's own reference mark.
func noteEntry(kind noteKind, id int, text string) *xmltree.Node {
	entry := xmltree.NewElement(kind.entryName)
	entry.SetAttr("w:id", strconv.Itoa(id))

	para := xmltree.NewElement("w:p")

	pPr := xmltree.NewElement("w:pPr")
	style := xmltree.NewElement("w:pStyle")
	style.SetAttr("w:val", kind.textStyle)
	pPr.Children = append(pPr.Children, style)
	para.Children = append(para.Children, pPr)

	markRun := xmltree.NewElement("w:r")
	markPr := xmltree.NewElement("w:rPr")
	markStyle := xmltree.NewElement("w:rStyle")
	markStyle.SetAttr("w:val", kind.refStyle)
	markPr.Children = append(markPr.Children, markStyle)
	markRun.Children = append(markRun.Children, markPr, xmltree.NewElement(kind.markName))
	para.Children = append(para.Children, markRun)

	textRun := xmltree.NewElement("w:r")
	textEl := xmltree.NewElement("w:t")
	textEl.SetAttr("xml:space", "preserve")
	textEl.SetText(" " + text)
	textRun.Children = append(textRun.Children, textEl)
	para.Children = append(para.Children, textRun)

	entry.Children = append(entry.Children, para)
	return entry
}

// referenceRuns builds the in-text anchor: the reference-format template
// split on its '#' marker into superscript prefix and suffix runs around
// the numbered reference construct.
func referenceRuns(kind noteKind, refFormat string, id int) []*xmltree.Node {
	prefix, suffix, found := strings.Cut(refFormat, "#")
	if !found {
		prefix, suffix = "", ""
	}

	var runs []*xmltree.Node
	if prefix != "" {
		runs = append(runs, superscriptTextRun(prefix))
	}

	refRun := xmltree.NewElement("w:r")
	refPr := xmltree.NewElement("w:rPr")
	refStyle := xmltree.NewElement("w:rStyle")
	refStyle.SetAttr("w:val", kind.refStyle)
	refPr.Children = append(refPr.Children, refStyle)
	ref := xmltree.NewElement(kind.refName)
	ref.SetAttr("w:id", strconv.Itoa(id))
	refRun.Children = append(refRun.Children, refPr, ref)
	runs = append(runs, refRun)

	if suffix != "" {
		runs = append(runs, superscriptTextRun(suffix))
	}
	return runs
}

func superscriptTextRun(text string) *xmltree.Node {
	run := xmltree.NewElement("w:r")
	rPr := xmltree.NewElement("w:rPr")
	vert := xmltree.NewElement("w:vertAlign")
	vert.SetAttr("w:val", "superscript")
	rPr.Children = append(rPr.Children, vert)
	t := xmltree.NewElement("w:t")
	t.SetText(text)
	run.Children = append(run.Children, rPr, t)
	return run
}
