// Package xmltree provides a mutable XML tree for surgical edits to OOXML
// parts. Parts are parsed into generic nodes, modified in place, and
// re-encoded around the verbatim original root tag so namespace
// declarations and the XML header survive the round trip untouched.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Node is one element or text node in the tree. Element names use either
// the resolved form (Space holds the namespace URL, Local the bare name)
// as produced by Parse, or the prefixed form (Space empty, Local
// "w:p") as produced by ParseFragment and by hand-built nodes. Encode
// folds the resolved form back to prefixes, so both kinds mix freely in
// one tree.
type Node struct {
	Name     xml.Name
	Attr     []xml.Attr
	Children []*Node
	Text     string
	IsText   bool
}

// Document is a parsed XML part. Header and the root start/end tags are
// kept verbatim from the source bytes and written back unchanged.
type Document struct {
	Header    string
	Root      *Node
	RootStart string
	RootEnd   string
}

var headerPattern = regexp.MustCompile(`^\s*(<\?xml[^>]+\?>[ \t\r\n]*)`)

// Parse builds a Document from an XML part.
func Parse(data []byte) (*Document, error) {
	text := string(data)

	header := ""
	if match := headerPattern.FindStringSubmatch(text); len(match) > 0 {
		header = match[1]
	}

	rootStart, rootEnd, err := extractRootTags(text)
	if err != nil {
		return nil, err
	}

	root, err := decodeTree(strings.NewReader(text), false)
	if err != nil {
		return nil, err
	}
	if len(root.Children) == 0 {
		return nil, errors.New("no root element")
	}
	first := root.Children[0]
	for first.IsText {
		root.Children = root.Children[1:]
		if len(root.Children) == 0 {
			return nil, errors.New("no root element")
		}
		first = root.Children[0]
	}

	return &Document{
		Header:    header,
		Root:      first,
		RootStart: rootStart,
		RootEnd:   rootEnd,
	}, nil
}

// ParseFragment parses a sequence of sibling elements that carry literal
// namespace prefixes without declarations, as produced by the marshaling
// writers. The decoder reports undeclared prefixes as the Space of the
// name; they are folded back into the prefixed Local form here so the
// nodes splice cleanly into a parsed Document.
func ParseFragment(data []byte) ([]*Node, error) {
	root, err := decodeTree(bytes.NewReader(data), true)
	if err != nil {
		return nil, err
	}
	return root.Children, nil
}

// decodeTree runs the token loop into a synthetic container node. With
// fold set, undeclared prefixes are folded into Local names.
func decodeTree(r io.Reader, fold bool) (*Node, error) {
	decoder := xml.NewDecoder(r)
	container := &Node{}
	stack := []*Node{}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Name: t.Name, Attr: copyAttrs(t.Attr)}
			if fold {
				node.Name = foldName(node.Name)
				for i := range node.Attr {
					node.Attr[i].Name = foldAttrName(node.Attr[i].Name)
				}
			}
			parent := container
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected end tag %s", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := string(t)
			if text == "" {
				continue
			}
			parent := container
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			} else if strings.TrimSpace(text) == "" {
				continue
			}
			parent.Children = append(parent.Children, &Node{IsText: true, Text: text})
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("unclosed element %s", stack[len(stack)-1].Name.Local)
	}
	return container, nil
}

func copyAttrs(attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	return append([]xml.Attr(nil), attrs...)
}

// Encode serializes the document: header and root tags verbatim, the
// body re-encoded with namespace prefixes restored. Prefixes introduced
// by spliced fragments that the root does not declare are added to the
// root start tag.
func (d *Document) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if d.Header != "" {
		buf.WriteString(d.Header)
	}

	clone := d.Root.Clone()
	normalizeXMLNSAttrs(clone)
	applyPrefixMap(clone, prefixMapFromRoot(d.Root))

	required := requiredNamespaces(prefixesUsed(clone), d.Root)
	buf.WriteString(ensureRootNamespaces(d.RootStart, required))

	encoder := xml.NewEncoder(&buf)
	for _, child := range clone.Children {
		if err := encodeNode(encoder, child); err != nil {
			return nil, err
		}
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}

	buf.WriteString(d.RootEnd)
	return buf.Bytes(), nil
}

// EncodeFragment serializes sibling nodes without a surrounding root.
func EncodeFragment(nodes []*Node) ([]byte, error) {
	var buf bytes.Buffer
	encoder := xml.NewEncoder(&buf)
	for _, node := range nodes {
		if err := encodeNode(encoder, node); err != nil {
			return nil, err
		}
	}
	if err := encoder.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(encoder *xml.Encoder, node *Node) error {
	if node.IsText {
		return encoder.EncodeToken(xml.CharData([]byte(node.Text)))
	}
	start := xml.StartElement{Name: node.Name, Attr: node.Attr}
	if err := encoder.EncodeToken(start); err != nil {
		return err
	}
	for _, child := range node.Children {
		if err := encodeNode(encoder, child); err != nil {
			return err
		}
	}
	return encoder.EncodeToken(start.End())
}
