package model

// RunType represents the type of run inside a rich paragraph
type RunType int

const (
	RunTypeUnknown RunType = iota
	RunTypeText
	RunTypeFormula
	RunTypeFootnote
	RunTypeEndnote
	RunTypeCrossRef
)

func (rt RunType) String() string {
	switch rt {
	case RunTypeText:
		return "Text"
	case RunTypeFormula:
		return "Formula"
	case RunTypeFootnote:
		return "Footnote"
	case RunTypeEndnote:
		return "Endnote"
	case RunTypeCrossRef:
		return "CrossRef"
	default:
		return "Unknown"
	}
}

// Run is the interface for all run kinds inside a rich paragraph
type Run interface {
	Type() RunType
}

// TextRun is literal text with optional character formatting
type TextRun struct {
	Text  string
	Props RunProperties
}

func (r *TextRun) Type() RunType { return RunTypeText }

// FormulaRun is inline math markup compiled into the paragraph at its
// position.
type FormulaRun struct {
	Source string
}

func (r *FormulaRun) Type() RunType { return RunTypeFormula }

// FootnoteRun anchors a footnote at its position; the note body is Text.
type FootnoteRun struct {
	Text string
}

func (r *FootnoteRun) Type() RunType { return RunTypeFootnote }

// EndnoteRun anchors an endnote at its position; the note body is Text.
type EndnoteRun struct {
	Text string
}

func (r *EndnoteRun) Type() RunType { return RunTypeEndnote }

// CrossRefRun references a bookmarked paragraph by bookmark id. The
// rendered field caches the target paragraph's text as its display value.
type CrossRefRun struct {
	Target string
}

func (r *CrossRefRun) Type() RunType { return RunTypeCrossRef }

// VertAlign represents vertical run alignment
type VertAlign int

const (
	VertAlignBaseline VertAlign = iota
	VertAlignSuperscript
	VertAlignSubscript
)

// RunProperties represents character formatting on a text run
type RunProperties struct {
	Bold      bool
	Italic    bool
	Underline bool
	VertAlign VertAlign
	// Extra holds extension attributes not modeled above.
	Extra map[string]string
}
