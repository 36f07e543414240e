package model

// ElementType represents the type of body element
type ElementType int

const (
	ElementTypeUnknown ElementType = iota
	ElementTypeParagraph
	ElementTypeList
	ElementTypeTable
	ElementTypeImage
	ElementTypeFormula
	ElementTypeHeader
	ElementTypeFooter
	ElementTypePageBreak
	ElementTypeColumnBreak
	ElementTypeTOC
)

func (et ElementType) String() string {
	switch et {
	case ElementTypeParagraph:
		return "Paragraph"
	case ElementTypeList:
		return "List"
	case ElementTypeTable:
		return "Table"
	case ElementTypeImage:
		return "Image"
	case ElementTypeFormula:
		return "Formula"
	case ElementTypeHeader:
		return "Header"
	case ElementTypeFooter:
		return "Footer"
	case ElementTypePageBreak:
		return "PageBreak"
	case ElementTypeColumnBreak:
		return "ColumnBreak"
	case ElementTypeTOC:
		return "TOC"
	default:
		return "Unknown"
	}
}

// Element is the interface for all body elements
type Element interface {
	Type() ElementType
}

// TextElement is an interface for elements carrying readable text
type TextElement interface {
	Element
	GetText() string
}

// Paragraph represents a paragraph of text. It holds either plain text or
// an ordered sequence of runs; the two are mutually exclusive and the
// constructors are the only way to set them.
type Paragraph struct {
	Props ParagraphProperties

	text    string
	content []Run
}

// NewParagraph creates a plain-text paragraph.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{text: text}
}

// NewRichParagraph creates a paragraph whose content is an ordered run
// sequence.
func NewRichParagraph(runs ...Run) *Paragraph {
	return &Paragraph{content: runs}
}

func (p *Paragraph) Type() ElementType { return ElementTypeParagraph }

// IsRich reports whether the paragraph carries runs rather than plain text.
func (p *Paragraph) IsRich() bool { return p.content != nil }

// Content returns the run sequence of a rich paragraph, or nil for a
// plain-text paragraph.
func (p *Paragraph) Content() []Run { return p.content }

// GetText returns the paragraph's effective text: the plain text, or for a
// rich paragraph the concatenation of its text runs. Non-text runs
// contribute nothing.
func (p *Paragraph) GetText() string {
	if p.content == nil {
		return p.text
	}
	var text string
	for _, r := range p.content {
		if tr, ok := r.(*TextRun); ok {
			text += tr.Text
		}
	}
	return text
}

// List represents a list (ordered or unordered)
type List struct {
	Items   []ListItem
	Ordered bool
}

func (l *List) Type() ElementType { return ElementTypeList }
func (l *List) GetText() string {
	var text string
	for _, item := range l.Items {
		text += item.Text + "\n"
	}
	return text
}

// ListItem represents a single list item
type ListItem struct {
	Text  string
	Level int // 0-indexed nesting level
}

// Table represents a table as a rectangular grid of cell text
type Table struct {
	Rows  [][]string
	Props TableProperties
}

func (t *Table) Type() ElementType { return ElementTypeTable }

// ColumnCount returns the width of the widest row.
func (t *Table) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Image represents an embedded image
type Image struct {
	Data []byte
	// Explicit display size in centimeters; zero means derive from the
	// image's intrinsic pixel dimensions.
	WidthCm  float64
	HeightCm float64
	// Alt text if available
	AltText string
}

func (i *Image) Type() ElementType { return ElementTypeImage }

// Formula represents display math in LaTeX-like markup, rendered as its
// own paragraph.
type Formula struct {
	Source string
	Props  ParagraphProperties
}

func (f *Formula) Type() ElementType { return ElementTypeFormula }

// Header represents the running page header for the enclosing section.
type Header struct {
	Props HeaderFooterProperties
}

func (h *Header) Type() ElementType { return ElementTypeHeader }

// Footer represents the running page footer for the enclosing section.
type Footer struct {
	Props HeaderFooterProperties
}

func (f *Footer) Type() ElementType { return ElementTypeFooter }

// PageBreak forces a page break at its position.
type PageBreak struct{}

func (pb *PageBreak) Type() ElementType { return ElementTypePageBreak }

// ColumnBreak forces a column break at its position.
type ColumnBreak struct{}

func (cb *ColumnBreak) Type() ElementType { return ElementTypeColumnBreak }

// TOC inserts a table-of-contents field covering heading levels 1-3. The
// field is marked dirty so a word processor populates it on open.
type TOC struct{}

func (t *TOC) Type() ElementType { return ElementTypeTOC }
