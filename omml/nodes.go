package omml

import (
	"bytes"
	"encoding/xml"
)

// Node is one element of a compiled OMML tree. The concrete types map
// one-to-one onto OMML elements and marshal with literal m: prefixed
// names; the enclosing document part declares the namespaces.
type Node interface {
	node()
}

// Math is the m:oMath container holding one compiled expression.
type Math struct {
	XMLName  xml.Name `xml:"m:oMath"`
	Children []Node
}

// MathPara is the m:oMathPara block wrapper carrying the paragraph
// justification hint.
type MathPara struct {
	XMLName xml.Name `xml:"m:oMathPara"`
	Props   *MathParaProps
	Math    Math
}

// MathParaProps is m:oMathParaPr.
type MathParaProps struct {
	XMLName xml.Name `xml:"m:oMathParaPr"`
	Jc      *Val
}

// Val is a generic single-attribute property element (m:jc, m:chr,
// m:begChr and friends). The element name is set at construction.
type Val struct {
	XMLName xml.Name
	Value   string `xml:"m:val,attr"`
}

// NewVal creates a property element with the given literal name and value.
func NewVal(name, value string) *Val {
	return &Val{XMLName: xml.Name{Local: name}, Value: value}
}

// Run is an m:r leaf carrying text.
type Run struct {
	XMLName xml.Name `xml:"m:r"`
	MProps  *MathRunProps
	WProps  *WordRunProps
	Text    Text
}

func (*Run) node() {}

// MathRunProps is m:rPr (math-level run properties).
type MathRunProps struct {
	XMLName xml.Name `xml:"m:rPr"`
	Sty     *Val
}

// WordRunProps is the w:rPr block inside a math run, used for character
// formatting such as the error color.
type WordRunProps struct {
	XMLName xml.Name `xml:"w:rPr"`
	Color   *WVal
}

// WVal is a generic single-attribute w: property element.
type WVal struct {
	XMLName xml.Name
	Value   string `xml:"w:val,attr"`
}

// Text is the m:t element.
type Text struct {
	XMLName xml.Name `xml:"m:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// NewRun creates a plain text run.
func NewRun(text string) *Run {
	r := &Run{}
	r.Text.Value = text
	if text != "" && (text[0] == ' ' || text[len(text)-1] == ' ') {
		r.Text.Space = "preserve"
	}
	return r
}

// NewFunctionNameRun creates a run styled plain for function names.
func NewFunctionNameRun(name string) *Run {
	r := NewRun(name)
	r.MProps = &MathRunProps{Sty: NewVal("m:sty", "p")}
	return r
}

// NewErrorRun creates a red run used when compilation degrades.
func NewErrorRun(text string) *Run {
	r := NewRun(text)
	r.WProps = &WordRunProps{
		Color: &WVal{XMLName: xml.Name{Local: "w:color"}, Value: "FF0000"},
	}
	return r
}

// Group splices its children into the parent with no wrapper element.
// It represents a braced {...} group used as a script base.
type Group struct {
	Children []Node
}

func (Group) node() {}

// MarshalXML writes the children directly, emitting no element of its own.
func (g Group) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	for _, c := range g.Children {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return nil
}

// Argument containers. Each wraps a fully-reduced node list.

// Elem is the m:e base/content container.
type Elem struct {
	XMLName  xml.Name `xml:"m:e"`
	Children []Node
}

// Num is the m:num numerator container.
type Num struct {
	XMLName  xml.Name `xml:"m:num"`
	Children []Node
}

// Den is the m:den denominator container.
type Den struct {
	XMLName  xml.Name `xml:"m:den"`
	Children []Node
}

// Sub is the m:sub subscript container.
type Sub struct {
	XMLName  xml.Name `xml:"m:sub"`
	Children []Node
}

// Sup is the m:sup superscript container.
type Sup struct {
	XMLName  xml.Name `xml:"m:sup"`
	Children []Node
}

// Deg is the m:deg radical-degree container.
type Deg struct {
	XMLName  xml.Name `xml:"m:deg"`
	Children []Node
}

// FName is the m:fName function-name container.
type FName struct {
	XMLName  xml.Name `xml:"m:fName"`
	Children []Node
}

// Lim is the m:lim limit container.
type Lim struct {
	XMLName  xml.Name `xml:"m:lim"`
	Children []Node
}

// Frac is an m:f fraction.
type Frac struct {
	XMLName xml.Name `xml:"m:f"`
	Num     Num
	Den     Den
}

func (*Frac) node() {}

// Rad is an m:rad radical. When the degree is empty it is hidden via
// m:degHide so plain square roots render without an index.
type Rad struct {
	XMLName xml.Name `xml:"m:rad"`
	Props   *RadProps
	Deg     Deg
	Elem    Elem
}

func (*Rad) node() {}

// RadProps is m:radPr.
type RadProps struct {
	XMLName xml.Name `xml:"m:radPr"`
	DegHide *Val
}

// NewRad builds a radical, hiding the degree when none is given.
func NewRad(deg, base []Node) *Rad {
	r := &Rad{Deg: Deg{Children: deg}, Elem: Elem{Children: base}}
	if len(deg) == 0 {
		r.Props = &RadProps{DegHide: NewVal("m:degHide", "1")}
	}
	return r
}

// Acc is an m:acc accent.
type Acc struct {
	XMLName xml.Name `xml:"m:acc"`
	Props   AccProps
	Elem    Elem
}

func (*Acc) node() {}

// AccProps is m:accPr carrying the combining accent character.
type AccProps struct {
	XMLName xml.Name `xml:"m:accPr"`
	Chr     *Val
}

// Bar is an m:bar overline or underline.
type Bar struct {
	XMLName xml.Name `xml:"m:bar"`
	Props   BarProps
	Elem    Elem
}

func (*Bar) node() {}

// BarProps is m:barPr; Pos is "top" or "bot".
type BarProps struct {
	XMLName xml.Name `xml:"m:barPr"`
	Pos     *Val
}

// SSub is an m:sSub subscript node.
type SSub struct {
	XMLName xml.Name `xml:"m:sSub"`
	Elem    Elem
	Sub     Sub
}

func (*SSub) node() {}

// SSup is an m:sSup superscript node.
type SSup struct {
	XMLName xml.Name `xml:"m:sSup"`
	Elem    Elem
	Sup     Sup
}

func (*SSup) node() {}

// SSubSup is an m:sSubSup combined sub/superscript node.
type SSubSup struct {
	XMLName xml.Name `xml:"m:sSubSup"`
	Elem    Elem
	Sub     Sub
	Sup     Sup
}

func (*SSubSup) node() {}

// Nary is an m:nary operator with optional bounds.
type Nary struct {
	XMLName xml.Name `xml:"m:nary"`
	Props   NaryProps
	Sub     Sub
	Sup     Sup
	Elem    Elem
}

func (*Nary) node() {}

// NaryProps is m:naryPr.
type NaryProps struct {
	XMLName xml.Name `xml:"m:naryPr"`
	Chr     *Val
	LimLoc  *Val
	SubHide *Val
	SupHide *Val
}

// Func is an m:func named-function application.
type Func struct {
	XMLName xml.Name `xml:"m:func"`
	FName   FName
	Elem    Elem
}

func (*Func) node() {}

// LimLow is an m:limLow under-limit construct (\lim_{x \to 0}).
type LimLow struct {
	XMLName xml.Name `xml:"m:limLow"`
	Elem    Elem
	Lim     Lim
}

func (*LimLow) node() {}

// Delim is an m:d delimited group.
type Delim struct {
	XMLName xml.Name `xml:"m:d"`
	Props   *DelimProps
	Elem    Elem
}

func (*Delim) node() {}

// DelimProps is m:dPr. Absent props mean the default ( ) pair.
type DelimProps struct {
	XMLName xml.Name `xml:"m:dPr"`
	BegChr  *Val
	EndChr  *Val
}

// NewDelim builds a delimited group. Empty beg/end render as the
// invisible delimiter; "(" and ")" are the OMML defaults and need no
// properties at all.
func NewDelim(beg, end string, content []Node) *Delim {
	d := &Delim{Elem: Elem{Children: content}}
	if beg != "(" || end != ")" {
		d.Props = &DelimProps{
			BegChr: NewVal("m:begChr", beg),
			EndChr: NewVal("m:endChr", end),
		}
	}
	return d
}

// Matrix is an m:m matrix.
type Matrix struct {
	XMLName xml.Name `xml:"m:m"`
	Rows    []MatrixRow
}

func (*Matrix) node() {}

// MatrixRow is one m:mr row of m:e cells.
type MatrixRow struct {
	XMLName xml.Name `xml:"m:mr"`
	Cells   []Elem
}

// Fragment is the result of compiling one math expression.
type Fragment struct {
	// Math is the m:oMath tree.
	Math Math
	// Justify is the block justification hint ("center" unless the
	// caller overrides), lifted onto the host paragraph when the
	// fragment is injected as display math.
	Justify string
	// Degraded reports that compilation failed structurally and the
	// fragment holds a visibly marked error run instead of real math.
	Degraded bool
}

// XML serializes the fragment as a single m:oMath element.
func (f *Fragment) XML() ([]byte, error) {
	return xml.Marshal(f.Math)
}

// BlockXML serializes the fragment as an m:oMathPara block carrying the
// justification hint.
func (f *Fragment) BlockXML() ([]byte, error) {
	mp := MathPara{Math: f.Math}
	if f.Justify != "" {
		mp.Props = &MathParaProps{Jc: NewVal("m:jc", f.Justify)}
	}
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(mp); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
