package inject

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/thoreson/quire/docx"
	"github.com/thoreson/quire/internal/xmltree"
	"github.com/thoreson/quire/model"
)

// applyNumbering allocates one abstract and one concrete numbering
// instance per definition, above any pre-existing ids, and points each
// linked style's paragraph properties at its level. A style name with no
// definition in the styles part is logged and skipped.
func applyNumbering(pkg *docx.Package, defs []model.NumberingDefinition, logger *zap.Logger) error {
	if !pkg.Has(docx.PartNumbering) {
		pkg.SetPart(docx.PartNumbering, docx.NumberingXML())
	}
	numbering, err := parsePart(pkg, docx.PartNumbering)
	if err != nil {
		return err
	}
	styles, err := parsePart(pkg, docx.PartStyles)
	if err != nil {
		return err
	}

	nextAbstract, nextNum := 0, 0
	for _, child := range numbering.Root.Children {
		if child.IsText {
			continue
		}
		switch xmltree.LocalName(child) {
		case "abstractNum":
			if id, err := strconv.Atoi(xmltree.AttrValue(child, "abstractNumId")); err == nil && id >= nextAbstract {
				nextAbstract = id + 1
			}
		case "num":
			if id, err := strconv.Atoi(xmltree.AttrValue(child, "numId")); err == nil && id >= nextNum {
				nextNum = id + 1
			}
		}
	}

	for _, def := range defs {
		abstractID, numID := nextAbstract, nextNum
		nextAbstract++
		nextNum++

		// Schema order: every abstractNum precedes every num.
		insertAt := 0
		for i, child := range numbering.Root.Children {
			if xmltree.IsElement(child, "abstractNum") {
				insertAt = i + 1
			}
		}
		numbering.Root.InsertChildren(insertAt, abstractNumElement(abstractID, def))

		num := xmltree.NewElement("w:num")
		num.SetAttr("w:numId", strconv.Itoa(numID))
		abstractRef := xmltree.NewElement("w:abstractNumId")
		abstractRef.SetAttr("w:val", strconv.Itoa(abstractID))
		num.Children = append(num.Children, abstractRef)
		numbering.Root.Children = append(numbering.Root.Children, num)

		linkStyles(styles.Root, def, numID, logger)
	}

	if err := savePart(pkg, docx.PartNumbering, numbering); err != nil {
		return err
	}
	return savePart(pkg, docx.PartStyles, styles)
}

// abstractNumElement builds the w:abstractNum with one w:lvl per
// configured level. Indentation hangs 360 twips at 720 per level depth.
func abstractNumElement(abstractID int, def model.NumberingDefinition) *xmltree.Node {
	abstract := xmltree.NewElement("w:abstractNum")
	abstract.SetAttr("w:abstractNumId", strconv.Itoa(abstractID))

	multiLevel := xmltree.NewElement("w:multiLevelType")
	multiLevel.SetAttr("w:val", "multilevel")
	abstract.Children = append(abstract.Children, multiLevel)

	for _, level := range def.Levels {
		lvl := xmltree.NewElement("w:lvl")
		lvl.SetAttr("w:ilvl", strconv.Itoa(level.Level))

		start := xmltree.NewElement("w:start")
		start.SetAttr("w:val", "1")
		numFmt := xmltree.NewElement("w:numFmt")
		numFmt.SetAttr("w:val", string(level.Format))
		lvlText := xmltree.NewElement("w:lvlText")
		lvlText.SetAttr("w:val", level.Text)
		lvlJc := xmltree.NewElement("w:lvlJc")
		lvlJc.SetAttr("w:val", "left")

		pPr := xmltree.NewElement("w:pPr")
		ind := xmltree.NewElement("w:ind")
		ind.SetAttr("w:left", strconv.Itoa(720*(level.Level+1)))
		ind.SetAttr("w:hanging", "360")
		pPr.Children = append(pPr.Children, ind)

		lvl.Children = append(lvl.Children, start, numFmt, lvlText, lvlJc, pPr)
		abstract.Children = append(abstract.Children, lvl)
	}
	return abstract
}

// linkStyles attaches numbering-paragraph-properties to every style the
// definition names, replacing any numbering the style already carried.
func linkStyles(stylesRoot *xmltree.Node, def model.NumberingDefinition, numID int, logger *zap.Logger) {
	names := make([]string, 0, len(def.StyleLinks))
	for name := range def.StyleLinks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		level := def.StyleLinks[name]
		style := findStyle(stylesRoot, styleID(name))
		if style == nil {
			logger.Warn("numbering style link target not found",
				zap.String("style", name), zap.String("definition", def.Name))
			continue
		}

		pPr := style.ChildElement("pPr")
		if pPr == nil {
			pPr = xmltree.NewElement("w:pPr")
			// pPr precedes rPr inside a style definition.
			insertAt := len(style.Children)
			for i, child := range style.Children {
				if xmltree.IsElement(child, "rPr") {
					insertAt = i
					break
				}
			}
			style.InsertChildren(insertAt, pPr)
		}
		if existing := pPr.ChildElement("numPr"); existing != nil {
			pPr.RemoveChild(pPr.ChildIndex(existing))
		}

		numPr := xmltree.NewElement("w:numPr")
		ilvl := xmltree.NewElement("w:ilvl")
		ilvl.SetAttr("w:val", strconv.Itoa(level))
		numRef := xmltree.NewElement("w:numId")
		numRef.SetAttr("w:val", strconv.Itoa(numID))
		numPr.Children = append(numPr.Children, ilvl, numRef)
		pPr.InsertChildren(0, numPr)
	}
}

func findStyle(stylesRoot *xmltree.Node, id string) *xmltree.Node {
	for _, child := range stylesRoot.Children {
		if xmltree.IsElement(child, "style") && xmltree.AttrValue(child, "styleId") == id {
			return child
		}
	}
	return nil
}

// styleID derives a style id from its display name: the name minus
// spaces.
func styleID(name string) string {
	return strings.ReplaceAll(name, " ", "")
}
