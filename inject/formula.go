package inject

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/thoreson/quire/docx"
	"github.com/thoreson/quire/internal/xmltree"
	"github.com/thoreson/quire/omml"
)

// injectFormulas replaces formula placeholders in the document part with
// compiled OMML. A paragraph whose entire text is one placeholder
// becomes display math: its inline content is replaced by an oMathPara
// block and the block's justification hint is lifted onto the paragraph
// properties. A placeholder that is one run among several becomes
// inline math at run level. Unmatched placeholders are logged and left
// as literal text.
func injectFormulas(pkg *docx.Package, formulas map[string]string, logger *zap.Logger) error {
	doc, err := parsePart(pkg, docx.PartDocument)
	if err != nil {
		return err
	}

	resolved := make(map[string]bool, len(formulas))

	for _, para := range xmltree.FindAll(doc.Root, "p") {
		token := xmltree.CollectText(para)
		src, ok := formulas[token]
		if !ok {
			continue
		}
		frag := compileFormula(src, logger)
		block, err := frag.BlockXML()
		if err != nil {
			return fmt.Errorf("serializing formula: %w", err)
		}
		nodes, err := xmltree.ParseFragment(block)
		if err != nil {
			return fmt.Errorf("parsing compiled formula: %w", err)
		}

		pPr := para.ChildElement("pPr")
		if frag.Justify != "" {
			if pPr == nil {
				pPr = xmltree.NewElement("w:pPr")
			}
			if jc := pPr.ChildElement("jc"); jc != nil {
				jc.SetAttr("w:val", frag.Justify)
			} else {
				node := xmltree.NewElement("w:jc")
				node.SetAttr("w:val", frag.Justify)
				pPr.Children = append(pPr.Children, node)
			}
		}

		children := make([]*xmltree.Node, 0, len(nodes)+1)
		if pPr != nil {
			children = append(children, pPr)
		}
		para.Children = append(children, nodes...)
		resolved[token] = true
	}

	// Inline placeholders: a single run inside a mixed paragraph.
	type match struct {
		parent *xmltree.Node
		index  int
		token  string
	}
	var matches []match
	walkWithParent(doc.Root, func(parent *xmltree.Node, index int, child *xmltree.Node) bool {
		if !xmltree.IsElement(child, "r") {
			return true
		}
		token := xmltree.CollectText(child)
		if _, ok := formulas[token]; ok && !resolved[token] {
			matches = append(matches, match{parent, index, token})
		}
		return true
	})
	// Reverse order keeps recorded indexes valid while splicing.
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		frag := compileFormula(formulas[m.token], logger)
		inline, err := frag.XML()
		if err != nil {
			return fmt.Errorf("serializing formula: %w", err)
		}
		nodes, err := xmltree.ParseFragment(inline)
		if err != nil {
			return fmt.Errorf("parsing compiled formula: %w", err)
		}
		m.parent.ReplaceChild(m.index, nodes...)
		resolved[m.token] = true
	}

	for token := range formulas {
		if !resolved[token] {
			logger.Warn("formula placeholder not found in document", zap.String("placeholder", token))
		}
	}

	return savePart(pkg, docx.PartDocument, doc)
}

// compileFormula compiles math markup, logging a degraded result. The
// fragment stays usable either way.
func compileFormula(src string, logger *zap.Logger) *omml.Fragment {
	frag, err := omml.Compile(src)
	if err != nil {
		logger.Warn("formula degraded to error run",
			zap.String("source", src), zap.Error(err))
	}
	return frag
}
