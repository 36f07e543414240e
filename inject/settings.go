package inject

import (
	"github.com/thoreson/quire/docx"
	"github.com/thoreson/quire/internal/xmltree"
	"github.com/thoreson/quire/model"
)

// applyNoteFormats writes configured footnote/endnote numbering formats
// into the settings part, creating the pr elements as needed.
func applyNoteFormats(pkg *docx.Package, setup model.PageSetup) error {
	if !pkg.Has(docx.PartSettings) {
		pkg.SetPart(docx.PartSettings, docx.SettingsXML())
	}
	settings, err := parsePart(pkg, docx.PartSettings)
	if err != nil {
		return err
	}
	if setup.FootnoteNumberFormat != "" {
		setNoteFormat(settings.Root, "footnotePr", string(setup.FootnoteNumberFormat))
	}
	if setup.EndnoteNumberFormat != "" {
		setNoteFormat(settings.Root, "endnotePr", string(setup.EndnoteNumberFormat))
	}
	return savePart(pkg, docx.PartSettings, settings)
}

func setNoteFormat(settings *xmltree.Node, prName, format string) {
	pr := settings.ChildElement(prName)
	if pr == nil {
		pr = xmltree.NewElement("w:" + prName)
		settings.Children = append(settings.Children, pr)
	}
	numFmt := pr.ChildElement("numFmt")
	if numFmt == nil {
		numFmt = xmltree.NewElement("w:numFmt")
		pr.Children = append(pr.Children, numFmt)
	}
	numFmt.SetAttr("w:val", format)
}
