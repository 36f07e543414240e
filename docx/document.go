package docx

import "encoding/xml"

// Read-side structures for word/document.xml. Tags match on local names
// so any namespace prefixing decodes the same way.

// documentXML represents the structure of word/document.xml.
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    bodyXML  `xml:"body"`
}

// bodyXML holds the document body with element order preserved.
type bodyXML struct {
	Elements []bodyElement
}

// bodyElement is one ordered body child: a paragraph or a table.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML walks the body children in order, decoding paragraphs and
// tables and skipping everything else. The stock decoder collects
// repeated fields by name and loses interleaving, so the order has to be
// rebuilt by hand.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		token, err := d.Token()
		if err != nil {
			return err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Table: &tbl})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name == start.Name {
				return nil
			}
		}
	}
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
	Hyperlinks []hyperlinkXML    `xml:"hyperlink"`
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         valXML `xml:"pStyle"`
	Justification valXML `xml:"jc"`
}

// valXML is a single w:val attribute carrier.
type valXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>).
type runXML struct {
	Text []textXML `xml:"t"`
}

// textXML represents run text (<w:t>).
type textXML struct {
	Value string `xml:",chardata"`
}

// hyperlinkXML represents a hyperlink wrapper whose runs contribute to
// paragraph text.
type hyperlinkXML struct {
	Runs []runXML `xml:"r"`
}

// text returns the concatenated run text of the paragraph.
func (p *paragraphXML) text() string {
	var out string
	for _, r := range p.Runs {
		for _, t := range r.Text {
			out += t.Value
		}
	}
	for _, h := range p.Hyperlinks {
		for _, r := range h.Runs {
			for _, t := range r.Text {
				out += t.Value
			}
		}
	}
	return out
}

// tableXML represents a table element (<w:tbl>).
type tableXML struct {
	Properties tablePropsXML `xml:"tblPr"`
	Rows       []rowXML      `xml:"tr"`
}

// tablePropsXML represents table properties (<w:tblPr>).
type tablePropsXML struct {
	Style valXML `xml:"tblStyle"`
}

// rowXML represents a table row (<w:tr>).
type rowXML struct {
	Cells []cellXML `xml:"tc"`
}

// cellXML represents a table cell (<w:tc>).
type cellXML struct {
	Paragraphs []paragraphXML `xml:"p"`
}

// text returns the cell's paragraphs joined with newlines.
func (c *cellXML) text() string {
	var out string
	for i, p := range c.Paragraphs {
		if i > 0 {
			out += "\n"
		}
		out += p.text()
	}
	return out
}
