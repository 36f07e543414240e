// Package inject performs the placeholder-resolution phase over a draft
// package: compiled formulas, footnotes, and endnotes are spliced into
// the document part where their placeholder tokens sit, note numbering
// formats land in the settings part, and custom numbering definitions
// are allocated and linked to styles. Stages run in a fixed order and
// each rewrites only the parts it touched; any stage failure aborts the
// build rather than returning a half-mutated package.
package inject

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/thoreson/quire/docx"
	"github.com/thoreson/quire/internal/xmltree"
	"github.com/thoreson/quire/model"
	"github.com/thoreson/quire/render"
)

// Resolve applies every applicable stage to the draft bytes and returns
// the final package. Stages with empty input are skipped.
func Resolve(draft []byte, pending render.Pending, setup model.PageSetup, defs []model.NumberingDefinition, logger *zap.Logger) ([]byte, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pkg, err := docx.OpenPackage(draft)
	if err != nil {
		return nil, err
	}

	if len(pending.Formulas) > 0 {
		logger.Debug("injecting formulas", zap.Int("count", len(pending.Formulas)))
		if err := injectFormulas(pkg, pending.Formulas, logger); err != nil {
			return nil, fmt.Errorf("formula injection: %w", err)
		}
	}
	if len(pending.Footnotes) > 0 {
		logger.Debug("injecting footnotes", zap.Int("count", len(pending.Footnotes)))
		if err := injectNotes(pkg, footnoteKind, pending.Footnotes, setup.FootnoteReferenceFormat, logger); err != nil {
			return nil, fmt.Errorf("footnote injection: %w", err)
		}
	}
	if len(pending.Endnotes) > 0 {
		logger.Debug("injecting endnotes", zap.Int("count", len(pending.Endnotes)))
		if err := injectNotes(pkg, endnoteKind, pending.Endnotes, setup.EndnoteReferenceFormat, logger); err != nil {
			return nil, fmt.Errorf("endnote injection: %w", err)
		}
	}
	if setup.FootnoteNumberFormat != "" || setup.EndnoteNumberFormat != "" {
		if err := applyNoteFormats(pkg, setup); err != nil {
			return nil, fmt.Errorf("note numbering format: %w", err)
		}
	}
	if len(defs) > 0 {
		logger.Debug("linking numbering definitions", zap.Int("count", len(defs)))
		if err := applyNumbering(pkg, defs, logger); err != nil {
			return nil, fmt.Errorf("numbering definitions: %w", err)
		}
	}

	return pkg.Bytes()
}

// parsePart reads and parses one XML part of the package.
func parsePart(pkg *docx.Package, name string) (*xmltree.Document, error) {
	data, ok := pkg.Part(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", docx.ErrMissingPart, name)
	}
	doc, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", docx.ErrMalformedPart, name, err)
	}
	return doc, nil
}

// savePart encodes the tree back into the package.
func savePart(pkg *docx.Package, name string, doc *xmltree.Document) error {
	out, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	pkg.SetPart(name, out)
	return nil
}

// walkWithParent visits every element below root depth-first, handing
// the visitor each child with its parent and index so the caller can
// splice siblings. Returning false stops the walk.
func walkWithParent(root *xmltree.Node, visit func(parent *xmltree.Node, index int, child *xmltree.Node) bool) bool {
	for i, child := range root.Children {
		if child.IsText {
			continue
		}
		if !visit(root, i, child) {
			return false
		}
		if !walkWithParent(child, visit) {
			return false
		}
	}
	return true
}
