package render

import (
	"encoding/xml"

	"github.com/thoreson/quire/docx"
)

// Marshal-only structures for the draft word/document.xml and the
// header/footer parts. Names are literal prefixed strings; the root
// elements declare every namespace the body uses.

type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	NSM     string   `xml:"xmlns:m,attr"`
	NSWP    string   `xml:"xmlns:wp,attr"`
	NSA     string   `xml:"xmlns:a,attr"`
	NSPic   string   `xml:"xmlns:pic,attr"`
	Body    bodyXML
}

func newDocumentXML() *documentXML {
	return &documentXML{
		NSW:   docx.NSWordML,
		NSR:   docx.NSRelationship,
		NSM:   docx.NSMath,
		NSWP:  docx.NSDrawingWP,
		NSA:   docx.NSDrawingMain,
		NSPic: docx.NSPicture,
	}
}

type bodyXML struct {
	XMLName  xml.Name `xml:"w:body"`
	Children []interface{}
}

type headerXML struct {
	XMLName  xml.Name `xml:"w:hdr"`
	NSW      string   `xml:"xmlns:w,attr"`
	NSR      string   `xml:"xmlns:r,attr"`
	Children []interface{}
}

type footerXML struct {
	XMLName  xml.Name `xml:"w:ftr"`
	NSW      string   `xml:"xmlns:w,attr"`
	NSR      string   `xml:"xmlns:r,attr"`
	Children []interface{}
}

// wVal is a single-attribute w: element whose name is set at
// construction (w:pStyle, w:jc, w:sz and friends).
type wVal struct {
	XMLName xml.Name
	Val     string `xml:"w:val,attr"`
}

func val(name, value string) *wVal {
	return &wVal{XMLName: xml.Name{Local: name}, Val: value}
}

// wEmpty is an empty toggle element such as w:b.
type wEmpty struct {
	XMLName xml.Name
}

func empty(name string) *wEmpty {
	return &wEmpty{XMLName: xml.Name{Local: name}}
}

type paragraphXML struct {
	XMLName  xml.Name `xml:"w:p"`
	Props    *paragraphPropsXML
	Children []interface{}
}

// paragraphPropsXML is w:pPr; field order follows the schema sequence.
type paragraphPropsXML struct {
	XMLName xml.Name `xml:"w:pPr"`
	Style   *wVal    // w:pStyle
	NumPr   *numPrXML
	Spacing *spacingXML
	Ind     *indXML
	Jc      *wVal // w:jc
	RPr     *runPropsXML
	SectPr  *sectPrXML
}

type numPrXML struct {
	XMLName xml.Name `xml:"w:numPr"`
	Ilvl    *wVal    // w:ilvl
	NumID   *wVal    // w:numId
}

type spacingXML struct {
	XMLName  xml.Name `xml:"w:spacing"`
	Before   string   `xml:"w:before,attr,omitempty"`
	After    string   `xml:"w:after,attr,omitempty"`
	Line     string   `xml:"w:line,attr,omitempty"`
	LineRule string   `xml:"w:lineRule,attr,omitempty"`
}

type indXML struct {
	XMLName        xml.Name `xml:"w:ind"`
	FirstLineChars string   `xml:"w:firstLineChars,attr,omitempty"`
	FirstLine      string   `xml:"w:firstLine,attr,omitempty"`
}

type runPropsXML struct {
	XMLName   xml.Name `xml:"w:rPr"`
	RStyle    *wVal    // w:rStyle
	Fonts     *runFontsXML
	Bold      *wEmpty // w:b
	Italic    *wEmpty // w:i
	Underline *wVal   // w:u
	Color     *wVal   // w:color
	Sz        *wVal   // w:sz
	SzCs      *wVal   // w:szCs
	VertAlign *wVal   // w:vertAlign
}

type runFontsXML struct {
	XMLName  xml.Name `xml:"w:rFonts"`
	ASCII    string   `xml:"w:ascii,attr,omitempty"`
	EastAsia string   `xml:"w:eastAsia,attr,omitempty"`
	HAnsi    string   `xml:"w:hAnsi,attr,omitempty"`
	CS       string   `xml:"w:cs,attr,omitempty"`
}

type runXML struct {
	XMLName  xml.Name `xml:"w:r"`
	Props    *runPropsXML
	Children []interface{}
}

type textXML struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// newText builds a w:t, preserving significant leading/trailing spaces.
func newText(s string) *textXML {
	t := &textXML{Value: s}
	if s != "" && (s[0] == ' ' || s[len(s)-1] == ' ') {
		t.Space = "preserve"
	}
	return t
}

// newTextRun builds a run holding one text leaf.
func newTextRun(s string, props *runPropsXML) *runXML {
	return &runXML{Props: props, Children: []interface{}{newText(s)}}
}

type breakXML struct {
	XMLName xml.Name `xml:"w:br"`
	Type    string   `xml:"w:type,attr,omitempty"`
}

type fldCharXML struct {
	XMLName xml.Name `xml:"w:fldChar"`
	Type    string   `xml:"w:fldCharType,attr"`
	Dirty   string   `xml:"w:dirty,attr,omitempty"`
}

type instrTextXML struct {
	XMLName xml.Name `xml:"w:instrText"`
	Space   string   `xml:"xml:space,attr"`
	Value   string   `xml:",chardata"`
}

type bookmarkStartXML struct {
	XMLName xml.Name `xml:"w:bookmarkStart"`
	ID      string   `xml:"w:id,attr"`
	Name    string   `xml:"w:name,attr"`
}

type bookmarkEndXML struct {
	XMLName xml.Name `xml:"w:bookmarkEnd"`
	ID      string   `xml:"w:id,attr"`
}

type sectPrXML struct {
	XMLName    xml.Name `xml:"w:sectPr"`
	HeaderRefs []*headerRefXML
	FooterRefs []*footerRefXML
	PgSz       *pgSzXML
	PgMar      *pgMarXML
	Cols       *colsXML
}

type headerRefXML struct {
	XMLName xml.Name `xml:"w:headerReference"`
	Type    string   `xml:"w:type,attr"`
	ID      string   `xml:"r:id,attr"`
}

type footerRefXML struct {
	XMLName xml.Name `xml:"w:footerReference"`
	Type    string   `xml:"w:type,attr"`
	ID      string   `xml:"r:id,attr"`
}

type pgSzXML struct {
	XMLName xml.Name `xml:"w:pgSz"`
	W       string   `xml:"w:w,attr"`
	H       string   `xml:"w:h,attr"`
	Orient  string   `xml:"w:orient,attr,omitempty"`
}

type pgMarXML struct {
	XMLName xml.Name `xml:"w:pgMar"`
	Top     string   `xml:"w:top,attr"`
	Right   string   `xml:"w:right,attr"`
	Bottom  string   `xml:"w:bottom,attr"`
	Left    string   `xml:"w:left,attr"`
	Header  string   `xml:"w:header,attr"`
	Footer  string   `xml:"w:footer,attr"`
	Gutter  string   `xml:"w:gutter,attr"`
}

type colsXML struct {
	XMLName xml.Name `xml:"w:cols"`
	Num     string   `xml:"w:num,attr,omitempty"`
	Space   string   `xml:"w:space,attr"`
}

type tableXML struct {
	XMLName xml.Name `xml:"w:tbl"`
	Props   tablePropsXML
	Grid    tableGridXML
	Rows    []*tableRowXML
}

type tablePropsXML struct {
	XMLName xml.Name `xml:"w:tblPr"`
	Style   *wVal // w:tblStyle
	W       *tblWidthXML
	Jc      *wVal // w:jc
}

type tblWidthXML struct {
	XMLName xml.Name `xml:"w:tblW"`
	W       string   `xml:"w:w,attr"`
	Type    string   `xml:"w:type,attr"`
}

type tableGridXML struct {
	XMLName xml.Name `xml:"w:tblGrid"`
	Cols    []*gridColXML
}

type gridColXML struct {
	XMLName xml.Name `xml:"w:gridCol"`
	W       string   `xml:"w:w,attr,omitempty"`
}

type tableRowXML struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []*tableCellXML
}

type tableCellXML struct {
	XMLName  xml.Name `xml:"w:tc"`
	Props    *tcPrXML
	Children []interface{}
}

type tcPrXML struct {
	XMLName xml.Name `xml:"w:tcPr"`
	W       *tcWidthXML
}

type tcWidthXML struct {
	XMLName xml.Name `xml:"w:tcW"`
	W       string   `xml:"w:w,attr"`
	Type    string   `xml:"w:type,attr"`
}

// Inline image drawing (wp:inline with a pic:pic fill).

type drawingXML struct {
	XMLName xml.Name `xml:"w:drawing"`
	Inline  inlineXML
}

type inlineXML struct {
	XMLName xml.Name `xml:"wp:inline"`
	DistT   string   `xml:"distT,attr"`
	DistB   string   `xml:"distB,attr"`
	DistL   string   `xml:"distL,attr"`
	DistR   string   `xml:"distR,attr"`
	Extent  extentXML
	DocPr   docPrXML
	Graphic graphicXML
}

type extentXML struct {
	XMLName xml.Name `xml:"wp:extent"`
	CX      int64    `xml:"cx,attr"`
	CY      int64    `xml:"cy,attr"`
}

type docPrXML struct {
	XMLName xml.Name `xml:"wp:docPr"`
	ID      int      `xml:"id,attr"`
	Name    string   `xml:"name,attr"`
	Descr   string   `xml:"descr,attr,omitempty"`
}

type graphicXML struct {
	XMLName xml.Name `xml:"a:graphic"`
	Data    graphicDataXML
}

type graphicDataXML struct {
	XMLName xml.Name `xml:"a:graphicData"`
	URI     string   `xml:"uri,attr"`
	Pic     picXML
}

type picXML struct {
	XMLName  xml.Name `xml:"pic:pic"`
	NvPicPr  nvPicPrXML
	BlipFill blipFillXML
	SpPr     spPrXML
}

type nvPicPrXML struct {
	XMLName  xml.Name `xml:"pic:nvPicPr"`
	CNvPr    cNvPrXML
	CNvPicPr struct {
		XMLName xml.Name `xml:"pic:cNvPicPr"`
	}
}

type cNvPrXML struct {
	XMLName xml.Name `xml:"pic:cNvPr"`
	ID      int      `xml:"id,attr"`
	Name    string   `xml:"name,attr"`
}

type blipFillXML struct {
	XMLName xml.Name `xml:"pic:blipFill"`
	Blip    blipXML
	Stretch struct {
		XMLName  xml.Name `xml:"a:stretch"`
		FillRect struct {
			XMLName xml.Name `xml:"a:fillRect"`
		}
	}
}

type blipXML struct {
	XMLName xml.Name `xml:"a:blip"`
	Embed   string   `xml:"r:embed,attr"`
}

type spPrXML struct {
	XMLName xml.Name `xml:"pic:spPr"`
	Xfrm    xfrmXML
	Geom    prstGeomXML
}

type xfrmXML struct {
	XMLName xml.Name `xml:"a:xfrm"`
	Off     struct {
		XMLName xml.Name `xml:"a:off"`
		X       int64    `xml:"x,attr"`
		Y       int64    `xml:"y,attr"`
	}
	Ext struct {
		XMLName xml.Name `xml:"a:ext"`
		CX      int64    `xml:"cx,attr"`
		CY      int64    `xml:"cy,attr"`
	}
}

type prstGeomXML struct {
	XMLName xml.Name `xml:"a:prstGeom"`
	Prst    string   `xml:"prst,attr"`
	AvLst   struct {
		XMLName xml.Name `xml:"a:avLst"`
	}
}
