// Package docx provides the OOXML package substrate for document
// assembly: part and namespace constants, an in-memory zip wrapper with
// byte-preserving rewrite, the default skeleton parts a draft package is
// seeded with, and the minimal read-back contract that recovers a
// document IR from existing package bytes.
package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/thoreson/quire/model"
)

// ReadDocument parses package bytes into a document IR sufficient to
// re-render it: paragraph text with non-default style, and table cell
// grids with non-default style. Run-level formatting fidelity is out of
// contract. Empty paragraphs are dropped.
func ReadDocument(data []byte) (*model.Document, error) {
	pkg, err := OpenPackage(data)
	if err != nil {
		return nil, err
	}
	raw, ok := pkg.Part(PartDocument)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, PartDocument)
	}

	var parsed documentXML
	if err := decodePart(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, PartDocument, err)
	}

	doc := model.NewDocument()
	section := model.NewSection()
	for _, el := range parsed.Body.Elements {
		switch {
		case el.Paragraph != nil:
			text := el.Paragraph.text()
			if text == "" {
				continue
			}
			p := model.NewParagraph(text)
			if style := styleName(el.Paragraph.Properties.Style.Val); style != "Normal" {
				p.Props.Style = style
			}
			p.Props.Alignment = model.ParseAlignment(el.Paragraph.Properties.Justification.Val)
			section.AddElement(p)
		case el.Table != nil:
			table := &model.Table{}
			for _, row := range el.Table.Rows {
				var cells []string
				for _, cell := range row.Cells {
					cells = append(cells, cell.text())
				}
				table.Rows = append(table.Rows, cells)
			}
			if style := styleName(el.Table.Properties.Style.Val); style != "Table Grid" && style != "" {
				table.Props.Style = style
			}
			section.AddElement(table)
		}
	}
	doc.AddSection(section)
	return doc, nil
}

// decodePart normalizes the part bytes (BOM-aware Unicode decoding) and
// unmarshals them with a charset-aware decoder, so parts written with a
// UTF-16 BOM or a declared legacy encoding still parse.
func decodePart(data []byte, v interface{}) error {
	normalized, err := normalizeEncoding(data)
	if err != nil {
		return err
	}
	decoder := xml.NewDecoder(bytes.NewReader(normalized))
	decoder.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		return charset.NewReaderLabel(label, input)
	}
	return decoder.Decode(v)
}

// normalizeEncoding converts part bytes to UTF-8, honoring a UTF-8 or
// UTF-16 byte-order mark and defaulting to UTF-8 when none is present.
func normalizeEncoding(data []byte) ([]byte, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, err
	}
	// A UTF-16 part declares encoding="UTF-16" in its header; after
	// transcoding the declaration would make the XML decoder reject the
	// now-UTF-8 bytes.
	text := string(out)
	if idx := strings.Index(text, "?>"); idx != -1 {
		header := text[:idx]
		if pos := strings.Index(strings.ToLower(header), "utf-16"); pos != -1 {
			out = []byte(header[:pos] + "UTF-8" + header[pos+len("utf-16"):] + text[idx:])
		}
	}
	return out, nil
}

// styleName maps a style id back to the display name the IR uses,
// reversing the id derivation (display name minus spaces) for the stock
// styles.
func styleName(styleID string) string {
	switch styleID {
	case "":
		return "Normal"
	case "TableGrid":
		return "Table Grid"
	case "ListBullet":
		return "List Bullet"
	case "ListNumber":
		return "List Number"
	}
	if strings.HasPrefix(styleID, "Heading") && len(styleID) == len("Heading")+1 {
		return "Heading " + styleID[len("Heading"):]
	}
	return styleID
}
