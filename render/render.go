// Package render walks a document IR and emits a draft OOXML package.
// Constructs the high-level layer expresses directly (paragraphs, tables,
// images, fields, section properties) are written in full; formulas,
// footnotes, and endnotes are stood in for by opaque placeholder tokens
// and recorded as pending injections for post-processing.
package render

import (
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/thoreson/quire/docx"
	"github.com/thoreson/quire/model"
)

// Pending records the placeholder tokens awaiting resolution, mapping
// each token to its source text: math markup for formulas, the note body
// for footnotes and endnotes.
type Pending struct {
	Formulas  map[string]string
	Footnotes map[string]string
	Endnotes  map[string]string
}

// Empty reports whether no injections are pending.
func (p Pending) Empty() bool {
	return len(p.Formulas) == 0 && len(p.Footnotes) == 0 && len(p.Endnotes) == 0
}

// Options configures one render invocation.
type Options struct {
	// Logger receives recoverable-skippable events at Warn; defaults to
	// a nop logger.
	Logger *zap.Logger
	// AltText, when set, derives alternative text for images that carry
	// none. Failure is logged and skipped.
	AltText func(image []byte) (string, error)
	// Now stamps docProps/core.xml; zero means time.Now.
	Now time.Time
}

// Result is the draft package plus the pending-injection maps the
// post-processing phase consumes.
type Result struct {
	Draft   []byte
	Pending Pending
}

// renderer owns the per-invocation state: the package under
// construction, the pending maps, the current section's bookmark map,
// and the id counters. Nothing here is shared between invocations.
type renderer struct {
	logger *zap.Logger
	opts   Options

	pkg     *docx.Package
	pending Pending

	bookmarks  map[string]string
	bookmarkID int
	drawingID  int
	imageID    int
	headerID   int
	footerID   int

	// lastParagraph is the column-break attachment point.
	lastParagraph *paragraphXML
}

// Render builds the draft package for the document.
func Render(doc *model.Document, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	r := &renderer{
		logger: logger,
		opts:   opts,
		pkg:    docx.NewPackage(),
		pending: Pending{
			Formulas:  make(map[string]string),
			Footnotes: make(map[string]string),
			Endnotes:  make(map[string]string),
		},
	}

	r.pkg.SetPart(docx.PartContentTypes, docx.ContentTypesXML())
	r.pkg.SetPart(docx.PartRootRels, docx.RootRelsXML())
	r.pkg.SetPart(docx.PartDocument, nil) // reserves zip position; filled below
	r.pkg.SetPart(docx.PartDocumentRels, docx.DocumentRelsXML())
	r.pkg.SetPart(docx.PartStyles, docx.StylesXML())
	r.pkg.SetPart(docx.PartSettings, docx.SettingsXML())
	r.pkg.SetPart(docx.PartNumbering, docx.NumberingXML())
	r.pkg.SetPart(docx.PartCoreProps, docx.CorePropertiesXML(
		doc.Properties.Title, doc.Properties.Subject, doc.Properties.Creator,
		doc.Properties.Keywords, now))
	r.pkg.SetPart(docx.PartAppProps, docx.AppPropertiesXML())

	document := newDocumentXML()
	for i, section := range doc.Sections {
		r.bookmarks = scanBookmarks(section.Elements)
		r.lastParagraph = nil

		sectPr := r.sectionProps(doc.Setup, section)
		children, err := r.renderSection(section, sectPr)
		if err != nil {
			return nil, err
		}
		document.Body.Children = append(document.Body.Children, children...)

		if i < len(doc.Sections)-1 {
			// A non-final section closes with a dedicated paragraph
			// carrying its properties.
			document.Body.Children = append(document.Body.Children, &paragraphXML{
				Props: &paragraphPropsXML{SectPr: sectPr},
			})
		} else {
			document.Body.Children = append(document.Body.Children, sectPr)
		}
	}
	if len(doc.Sections) == 0 {
		document.Body.Children = append(document.Body.Children,
			r.sectionProps(doc.Setup, &model.Section{}))
	}

	marshaled, err := xml.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("marshaling document part: %w", err)
	}
	r.pkg.SetPart(docx.PartDocument, append([]byte(xml.Header), marshaled...))

	draft, err := r.pkg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("packing draft: %w", err)
	}
	return &Result{Draft: draft, Pending: r.pending}, nil
}

// renderSection renders the section's elements in order. Header and
// footer elements materialize as separate parts referenced from the
// section properties rather than as body children.
func (r *renderer) renderSection(section *model.Section, sectPr *sectPrXML) ([]interface{}, error) {
	var children []interface{}
	for _, element := range section.Elements {
		switch el := element.(type) {
		case *model.Paragraph:
			p := r.renderParagraph(el)
			children = append(children, p)
			r.lastParagraph = p
		case *model.Formula:
			p := r.renderFormulaElement(el)
			children = append(children, p)
			r.lastParagraph = p
		case *model.List:
			for _, item := range el.Items {
				p := r.renderListItem(item, el.Ordered)
				children = append(children, p)
				r.lastParagraph = p
			}
		case *model.Table:
			children = append(children, r.renderTable(el))
			r.lastParagraph = nil
		case *model.Image:
			p, err := r.renderImage(el)
			if err != nil {
				return nil, err
			}
			children = append(children, p)
			r.lastParagraph = p
		case *model.Header:
			if err := r.renderHeader(el, sectPr); err != nil {
				return nil, err
			}
		case *model.Footer:
			if err := r.renderFooter(el, sectPr); err != nil {
				return nil, err
			}
		case *model.PageBreak:
			children = append(children, &paragraphXML{Children: []interface{}{
				&runXML{Children: []interface{}{&breakXML{Type: "page"}}},
			}})
			r.lastParagraph = nil
		case *model.ColumnBreak:
			// Attaches to the preceding paragraph so the break lands at
			// the end of its text rather than on an empty line.
			br := &runXML{Children: []interface{}{&breakXML{Type: "column"}}}
			if r.lastParagraph != nil {
				r.lastParagraph.Children = append(r.lastParagraph.Children, br)
			} else {
				p := &paragraphXML{Children: []interface{}{br}}
				children = append(children, p)
				r.lastParagraph = p
			}
		case *model.TOC:
			children = append(children, &paragraphXML{Children: tocFieldRuns()})
			r.lastParagraph = nil
		default:
			r.logger.Warn("skipping unsupported element", zap.String("type", element.Type().String()))
		}
	}
	return children, nil
}

// renderParagraph renders a paragraph. A rich paragraph's runs append in
// order; formula, footnote, and endnote runs leave a placeholder token
// and a pending entry, while cross-reference runs resolve immediately
// against the section's bookmark map.
func (r *renderer) renderParagraph(p *model.Paragraph) *paragraphXML {
	para := &paragraphXML{Props: paragraphProps(p.Props)}

	if !p.IsRich() {
		if text := p.GetText(); text != "" {
			para.Children = append(para.Children, newTextRun(text, runProps(p.Props, model.RunProperties{})))
		}
	} else {
		for _, run := range p.Content() {
			switch rn := run.(type) {
			case *model.TextRun:
				para.Children = append(para.Children, newTextRun(rn.Text, runProps(p.Props, rn.Props)))
			case *model.FormulaRun:
				token := newPlaceholder("FORMULA")
				r.pending.Formulas[token] = rn.Source
				para.Children = append(para.Children, newTextRun(token, nil))
			case *model.FootnoteRun:
				token := newPlaceholder("FOOTNOTE")
				r.pending.Footnotes[token] = rn.Text
				para.Children = append(para.Children, newTextRun(token, nil))
			case *model.EndnoteRun:
				token := newPlaceholder("ENDNOTE")
				r.pending.Endnotes[token] = rn.Text
				para.Children = append(para.Children, newTextRun(token, nil))
			case *model.CrossRefRun:
				display, ok := r.bookmarks[rn.Target]
				if !ok {
					display = rn.Target + " not found"
					r.logger.Warn("cross-reference target not found in section",
						zap.String("bookmark", rn.Target))
				}
				para.Children = append(para.Children, refFieldRuns(rn.Target, display)...)
			default:
				r.logger.Warn("skipping unsupported run", zap.String("type", run.Type().String()))
			}
		}
	}

	if p.Props.BookmarkID != "" {
		r.bookmarkID++
		id := strconv.Itoa(r.bookmarkID)
		wrapped := make([]interface{}, 0, len(para.Children)+2)
		wrapped = append(wrapped, &bookmarkStartXML{ID: id, Name: p.Props.BookmarkID})
		wrapped = append(wrapped, para.Children...)
		wrapped = append(wrapped, &bookmarkEndXML{ID: id})
		para.Children = wrapped
	}
	return para
}

// renderFormulaElement renders display math: a paragraph whose entire
// text is the placeholder token, replaced wholesale during injection.
func (r *renderer) renderFormulaElement(f *model.Formula) *paragraphXML {
	token := newPlaceholder("FORMULA")
	r.pending.Formulas[token] = f.Source
	return &paragraphXML{
		Props:    paragraphProps(f.Props),
		Children: []interface{}{newTextRun(token, nil)},
	}
}

func (r *renderer) renderListItem(item model.ListItem, ordered bool) *paragraphXML {
	style, numID := "ListBullet", "1"
	if ordered {
		style, numID = "ListNumber", "2"
	}
	return &paragraphXML{
		Props: &paragraphPropsXML{
			Style: val("w:pStyle", style),
			NumPr: &numPrXML{
				Ilvl:  val("w:ilvl", strconv.Itoa(item.Level)),
				NumID: val("w:numId", numID),
			},
		},
		Children: []interface{}{newTextRun(item.Text, nil)},
	}
}

func (r *renderer) renderTable(t *model.Table) *tableXML {
	style := t.Props.Style
	if style == "" {
		style = "Table Grid"
	}
	table := &tableXML{
		Props: tablePropsXML{
			Style: val("w:tblStyle", styleID(style)),
			W:     &tblWidthXML{W: "5000", Type: "pct"},
		},
	}
	if jc := t.Props.Alignment.Value(); jc != "" {
		table.Props.Jc = val("w:jc", jc)
	}

	columns := t.ColumnCount()
	for i := 0; i < columns; i++ {
		table.Grid.Cols = append(table.Grid.Cols, &gridColXML{})
	}

	for rowIndex, row := range t.Rows {
		tr := &tableRowXML{}
		for colIndex := 0; colIndex < columns; colIndex++ {
			text := ""
			if colIndex < len(row) {
				text = row[colIndex]
			}

			props := &paragraphPropsXML{}
			if colIndex < len(t.Props.ColumnAlignments) {
				if jc := t.Props.ColumnAlignments[colIndex].Value(); jc != "" {
					props.Jc = val("w:jc", jc)
				}
			}
			var rPr *runPropsXML
			if rowIndex == 0 && t.Props.HeaderRow {
				rPr = &runPropsXML{Bold: empty("w:b")}
			}
			cellPara := &paragraphXML{Props: props}
			if text != "" {
				cellPara.Children = []interface{}{newTextRun(text, rPr)}
			}
			tr.Cells = append(tr.Cells, &tableCellXML{Children: []interface{}{cellPara}})
		}
		table.Rows = append(table.Rows, tr)
	}
	return table
}

// renderImage stores the image bytes as a media part and emits the
// inline drawing referencing it. Sizing failures degrade to a default
// extent rather than failing the build.
func (r *renderer) renderImage(img *model.Image) (*paragraphXML, error) {
	info, err := inspectImage(img.Data, img.WidthCm, img.HeightCm)
	if err != nil {
		r.logger.Warn("image not decodable, embedding with fallback extent", zap.Error(err))
		info = &imageInfo{
			extension:   "png",
			contentType: "image/png",
			cx:          cmToEMU(defaultImageWidthCm),
			cy:          cmToEMU(defaultImageWidthCm * 0.75),
		}
		if img.WidthCm > 0 && img.HeightCm > 0 {
			info.cx = cmToEMU(img.WidthCm)
			info.cy = cmToEMU(img.HeightCm)
		}
	}

	r.imageID++
	name := fmt.Sprintf("image%d.%s", r.imageID, info.extension)
	r.pkg.SetPart(docx.MediaPrefix+name, img.Data)
	if err := r.pkg.AddContentTypeDefault(info.extension, info.contentType); err != nil {
		return nil, err
	}
	relID, err := r.pkg.AddRelationship(docx.RelTypeImage, "media/"+name)
	if err != nil {
		return nil, err
	}

	alt := img.AltText
	if alt == "" && r.opts.AltText != nil {
		text, err := r.opts.AltText(img.Data)
		if err != nil {
			r.logger.Warn("alt-text derivation failed", zap.Error(err))
		} else {
			alt = text
		}
	}

	r.drawingID++
	drawing := &drawingXML{Inline: inlineXML{
		DistT:  "0",
		DistB:  "0",
		DistL:  "0",
		DistR:  "0",
		Extent: extentXML{CX: info.cx, CY: info.cy},
		DocPr:  docPrXML{ID: r.drawingID, Name: fmt.Sprintf("Picture %d", r.drawingID), Descr: alt},
		Graphic: graphicXML{Data: graphicDataXML{
			URI: docx.NSPicture,
			Pic: picXML{
				NvPicPr:  nvPicPrXML{CNvPr: cNvPrXML{ID: r.drawingID, Name: name}},
				BlipFill: blipFillXML{Blip: blipXML{Embed: relID}},
			},
		}},
	}}
	drawing.Inline.Graphic.Data.Pic.SpPr.Xfrm.Ext.CX = info.cx
	drawing.Inline.Graphic.Data.Pic.SpPr.Xfrm.Ext.CY = info.cy
	drawing.Inline.Graphic.Data.Pic.SpPr.Geom.Prst = "rect"

	return &paragraphXML{
		Props:    &paragraphPropsXML{Jc: val("w:jc", "center")},
		Children: []interface{}{&runXML{Children: []interface{}{drawing}}},
	}, nil
}

func (r *renderer) renderHeader(h *model.Header, sectPr *sectPrXML) error {
	r.headerID++
	name := fmt.Sprintf("header%d.xml", r.headerID)
	part := &headerXML{
		NSW:      docx.NSWordML,
		NSR:      docx.NSRelationship,
		Children: []interface{}{headerFooterParagraph(h.Props)},
	}
	relID, err := r.writeHeaderFooterPart("word/"+name, name, part, docx.RelTypeHeader, docx.CTHeader)
	if err != nil {
		return err
	}
	sectPr.HeaderRefs = append(sectPr.HeaderRefs, &headerRefXML{Type: "default", ID: relID})
	return nil
}

func (r *renderer) renderFooter(f *model.Footer, sectPr *sectPrXML) error {
	r.footerID++
	name := fmt.Sprintf("footer%d.xml", r.footerID)
	part := &footerXML{
		NSW:      docx.NSWordML,
		NSR:      docx.NSRelationship,
		Children: []interface{}{headerFooterParagraph(f.Props)},
	}
	relID, err := r.writeHeaderFooterPart("word/"+name, name, part, docx.RelTypeFooter, docx.CTFooter)
	if err != nil {
		return err
	}
	sectPr.FooterRefs = append(sectPr.FooterRefs, &footerRefXML{Type: "default", ID: relID})
	return nil
}

func (r *renderer) writeHeaderFooterPart(partName, target string, content interface{}, relType, contentType string) (string, error) {
	marshaled, err := xml.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", partName, err)
	}
	r.pkg.SetPart(partName, append([]byte(xml.Header), marshaled...))
	if err := r.pkg.AddContentTypeOverride(partName, contentType); err != nil {
		return "", err
	}
	return r.pkg.AddRelationship(relType, target)
}

// headerFooterParagraph renders header/footer text; a {PAGE_NUM} marker
// splits the text around a live page-number field.
func headerFooterParagraph(props model.HeaderFooterProperties) *paragraphXML {
	jc := props.Alignment.Value()
	if jc == "" {
		jc = "center"
	}
	para := &paragraphXML{Props: &paragraphPropsXML{Jc: val("w:jc", jc)}}

	if prefix, suffix, found := strings.Cut(props.Text, "{PAGE_NUM}"); found {
		if prefix != "" {
			para.Children = append(para.Children, newTextRun(prefix, nil))
		}
		para.Children = append(para.Children, pageFieldRuns()...)
		if suffix != "" {
			para.Children = append(para.Children, newTextRun(suffix, nil))
		}
	} else if props.Text != "" {
		para.Children = append(para.Children, newTextRun(props.Text, nil))
	}
	return para
}

// A4 page dimensions in twips.
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
	defaultMargin   = "1440"
)

func (r *renderer) sectionProps(setup model.PageSetup, section *model.Section) *sectPrXML {
	sectPr := &sectPrXML{}

	w, h := pageWidthTwips, pageHeightTwips
	orient := ""
	if setup.Orientation == model.Landscape {
		w, h = h, w
		orient = "landscape"
	}
	sectPr.PgSz = &pgSzXML{W: strconv.Itoa(w), H: strconv.Itoa(h), Orient: orient}

	mar := &pgMarXML{
		Top: defaultMargin, Right: defaultMargin, Bottom: defaultMargin, Left: defaultMargin,
		Header: "720", Footer: "720", Gutter: "0",
	}
	if !setup.Margins.IsZero() {
		mar.Top = cmToTwips(setup.Margins.TopCm)
		mar.Bottom = cmToTwips(setup.Margins.BottomCm)
		mar.Left = cmToTwips(setup.Margins.LeftCm)
		mar.Right = cmToTwips(setup.Margins.RightCm)
	}
	sectPr.PgMar = mar

	if section.Columns > 1 {
		sectPr.Cols = &colsXML{Num: strconv.Itoa(section.Columns), Space: "425"}
	}
	return sectPr
}

// paragraphProps converts IR paragraph properties to w:pPr, dropping
// zero-valued fields.
func paragraphProps(props model.ParagraphProperties) *paragraphPropsXML {
	out := &paragraphPropsXML{}
	if props.Style != "" && props.Style != "Normal" {
		out.Style = val("w:pStyle", styleID(props.Style))
	}
	if props.SpacingBefore > 0 || props.SpacingAfter > 0 || props.LineSpacing > 0 {
		out.Spacing = &spacingXML{}
		if props.SpacingBefore > 0 {
			out.Spacing.Before = pointsToTwips(props.SpacingBefore)
		}
		if props.SpacingAfter > 0 {
			out.Spacing.After = pointsToTwips(props.SpacingAfter)
		}
		if props.LineSpacing > 0 {
			// Line spacing multiples are expressed in 240ths with the
			// "auto" rule.
			out.Spacing.Line = strconv.Itoa(int(math.Round(props.LineSpacing * 240)))
			out.Spacing.LineRule = "auto"
		}
	}
	if props.FirstLineIndent > 0 {
		out.Ind = &indXML{FirstLineChars: strconv.Itoa(int(math.Round(props.FirstLineIndent * 100)))}
	}
	if jc := props.Alignment.Value(); jc != "" {
		out.Jc = val("w:jc", jc)
	}
	if rPr := runProps(props, model.RunProperties{}); rPr != nil {
		out.RPr = rPr
	}
	if out.Style == nil && out.Spacing == nil && out.Ind == nil && out.Jc == nil && out.RPr == nil {
		return nil
	}
	return out
}

// runProps merges paragraph-level character formatting with one run's
// own properties into a w:rPr, or nil when nothing is set.
func runProps(para model.ParagraphProperties, run model.RunProperties) *runPropsXML {
	out := &runPropsXML{}
	set := false
	if para.FontName != "" {
		out.Fonts = &runFontsXML{
			ASCII: para.FontName, EastAsia: para.FontName,
			HAnsi: para.FontName, CS: para.FontName,
		}
		set = true
	}
	if para.Bold || run.Bold {
		out.Bold = empty("w:b")
		set = true
	}
	if run.Italic {
		out.Italic = empty("w:i")
		set = true
	}
	if run.Underline {
		out.Underline = val("w:u", "single")
		set = true
	}
	if para.FontColor != "" {
		out.Color = val("w:color", strings.TrimPrefix(para.FontColor, "#"))
		set = true
	}
	if para.FontSize > 0 {
		halfPoints := strconv.Itoa(int(math.Round(para.FontSize * 2)))
		out.Sz = val("w:sz", halfPoints)
		out.SzCs = val("w:szCs", halfPoints)
		set = true
	}
	switch run.VertAlign {
	case model.VertAlignSuperscript:
		out.VertAlign = val("w:vertAlign", "superscript")
		set = true
	case model.VertAlignSubscript:
		out.VertAlign = val("w:vertAlign", "subscript")
		set = true
	}
	if !set {
		return nil
	}
	return out
}

// scanBookmarks builds the section's bookmark-id to display-text map.
// It runs before the section renders so forward references resolve.
func scanBookmarks(elements []model.Element) map[string]string {
	out := make(map[string]string)
	for _, element := range elements {
		if p, ok := element.(*model.Paragraph); ok && p.Props.BookmarkID != "" {
			out[p.Props.BookmarkID] = p.GetText()
		}
	}
	return out
}

// newPlaceholder generates an opaque token with a kind prefix and a
// UUIDv4's entropy, so collisions with user content are not possible in
// practice.
func newPlaceholder(kind string) string {
	u := uuid.New()
	return "__" + kind + "_" + hex.EncodeToString(u[:]) + "__"
}

// styleID derives the style id from its display name: the name minus
// spaces.
func styleID(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

func cmToTwips(cm float64) string {
	return strconv.Itoa(int(math.Round(cm * 567)))
}

func pointsToTwips(points float64) string {
	return strconv.Itoa(int(math.Round(points * 20)))
}
