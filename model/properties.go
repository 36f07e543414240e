package model

// Alignment represents paragraph alignment. The zero value means "not
// set": the renderer emits nothing and the style's alignment applies.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

// Value returns the OOXML w:jc value, or "" for AlignDefault.
func (a Alignment) Value() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "both"
	default:
		return ""
	}
}

// ParseAlignment maps an OOXML w:jc value back to an Alignment.
func ParseAlignment(v string) Alignment {
	switch v {
	case "left", "start":
		return AlignLeft
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "both", "justify":
		return AlignJustify
	default:
		return AlignDefault
	}
}

// Orientation represents page orientation
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// Margins holds page margins in centimeters. The zero value leaves the
// word processor's defaults in place.
type Margins struct {
	TopCm    float64
	BottomCm float64
	LeftCm   float64
	RightCm  float64
}

// IsZero reports whether no margin was configured.
func (m Margins) IsZero() bool { return m == Margins{} }

// NumberFormat names an OOXML numbering format (w:numFmt value).
type NumberFormat string

const (
	NumberDecimal     NumberFormat = "decimal"
	NumberLowerLetter NumberFormat = "lowerLetter"
	NumberUpperLetter NumberFormat = "upperLetter"
	NumberLowerRoman  NumberFormat = "lowerRoman"
	NumberUpperRoman  NumberFormat = "upperRoman"
	NumberBullet      NumberFormat = "bullet"
)

// PageSetup holds document-wide page and note configuration.
type PageSetup struct {
	Orientation Orientation
	Margins     Margins

	// Note numbering formats for word/settings.xml. Empty leaves the
	// defaults (decimal footnotes, lowercase roman endnotes).
	FootnoteNumberFormat NumberFormat
	EndnoteNumberFormat  NumberFormat

	// Reference-mark templates containing a single '#' standing for the
	// generated note number, e.g. "[#]". Empty means a bare mark.
	FootnoteReferenceFormat string
	EndnoteReferenceFormat  string
}

// ParagraphProperties represents paragraph-level formatting. Zero-valued
// fields are not emitted.
type ParagraphProperties struct {
	Style      string
	Bold       bool
	BookmarkID string
	Alignment  Alignment
	FontName   string
	FontSize   float64 // points
	FontColor  string  // hex RRGGBB, no leading '#'

	FirstLineIndent float64 // characters
	SpacingBefore   float64 // points
	SpacingAfter    float64 // points
	LineSpacing     float64 // multiple of single spacing

	// Extra holds extension attributes not modeled above.
	Extra map[string]string
}

// TableProperties represents table-level formatting.
type TableProperties struct {
	// HeaderRow renders the first row bold and repeats it across pages.
	HeaderRow bool
	// ColumnAlignments applies per-column paragraph alignment to cells.
	ColumnAlignments []Alignment
	Style            string
	Alignment        Alignment

	// Extra holds extension attributes not modeled above.
	Extra map[string]string
}

// HeaderFooterProperties represents running header/footer content. Text
// may contain the marker {PAGE_NUM}, replaced with a live page-number
// field.
type HeaderFooterProperties struct {
	Text      string
	Alignment Alignment // AlignDefault renders centered
}
