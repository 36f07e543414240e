// Package richtext converts a small HTML subset into document IR
// elements, for callers whose input arrives as formatted prose rather
// than structured content. Supported tags: p, b/strong, i/em, u, sup,
// sub, br. Unknown tags contribute their text unformatted.
package richtext

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/thoreson/quire/model"
)

// Parse converts an HTML fragment into paragraphs of styled runs. Text
// outside any <p> forms its own leading paragraph.
func Parse(input string) ([]model.Element, error) {
	root, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, err
	}

	p := &parser{}
	p.walk(root, model.RunProperties{})
	p.flush()
	return p.elements, nil
}

type parser struct {
	elements []model.Element
	runs     []model.Run
}

func (p *parser) walk(n *html.Node, props model.RunProperties) {
	switch n.Type {
	case html.TextNode:
		text := collapseWhitespace(n.Data)
		if strings.TrimSpace(text) != "" {
			p.runs = append(p.runs, &model.TextRun{Text: text, Props: props})
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "p":
			p.flush()
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				p.walk(c, props)
			}
			p.flush()
			return
		case "b", "strong":
			props.Bold = true
		case "i", "em":
			props.Italic = true
		case "u":
			props.Underline = true
		case "sup":
			props.VertAlign = model.VertAlignSuperscript
		case "sub":
			props.VertAlign = model.VertAlignSubscript
		case "br":
			// A line break splits the paragraph; WordprocessingML soft
			// breaks are out of the IR's vocabulary.
			p.flush()
			return
		case "script", "style", "head":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, props)
	}
}

// flush closes the current run accumulation into a paragraph element.
func (p *parser) flush() {
	if len(p.runs) == 0 {
		return
	}
	p.elements = append(p.elements, model.NewRichParagraph(p.runs...))
	p.runs = nil
}

// collapseWhitespace squeezes whitespace runs to single spaces while
// keeping boundary spaces, so adjacent styled runs stay separated.
func collapseWhitespace(s string) string {
	out := strings.Join(strings.Fields(s), " ")
	if out == "" {
		return out
	}
	if s[0] == ' ' || s[0] == '\n' || s[0] == '\t' {
		out = " " + out
	}
	last := s[len(s)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		out += " "
	}
	return out
}
