package xmltree

import (
	"encoding/xml"
	"strings"
)

// NewElement creates an element node with a prefixed literal name, such
// as "w:p" or "m:oMath".
func NewElement(name string) *Node {
	return &Node{Name: xml.Name{Local: name}}
}

// NewText creates a text node.
func NewText(text string) *Node {
	return &Node{IsText: true, Text: text}
}

// Clone deep-copies the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cloned := &Node{
		Name:   n.Name,
		Attr:   copyAttrs(n.Attr),
		Text:   n.Text,
		IsText: n.IsText,
	}
	if len(n.Children) > 0 {
		cloned.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			cloned.Children = append(cloned.Children, child.Clone())
		}
	}
	return cloned
}

// Walk visits the node and its descendants depth-first. Returning false
// from visit stops the walk.
func Walk(n *Node, visit func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, child := range n.Children {
		if !Walk(child, visit) {
			return false
		}
	}
	return true
}

// LocalName returns the element name without its namespace prefix.
func LocalName(n *Node) string {
	if n == nil || n.IsText {
		return ""
	}
	local := n.Name.Local
	if idx := strings.LastIndexByte(local, ':'); idx != -1 {
		local = local[idx+1:]
	}
	return local
}

// IsElement reports whether the node is an element with the given local
// name, in either the resolved or the prefixed representation.
func IsElement(n *Node, local string) bool {
	return LocalName(n) == local
}

// Find returns the first descendant element with the given local name,
// including the node itself.
func Find(n *Node, local string) *Node {
	var match *Node
	Walk(n, func(node *Node) bool {
		if IsElement(node, local) {
			match = node
			return false
		}
		return true
	})
	return match
}

// FindAll returns every descendant element with the given local name in
// document order, including the node itself.
func FindAll(n *Node, local string) []*Node {
	var out []*Node
	Walk(n, func(node *Node) bool {
		if IsElement(node, local) {
			out = append(out, node)
		}
		return true
	})
	return out
}

// ChildElement returns the first direct child element with the given
// local name.
func (n *Node) ChildElement(local string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.Children {
		if IsElement(child, local) {
			return child
		}
	}
	return nil
}

// ChildIndex returns the position of child among the node's children,
// or -1.
func (n *Node) ChildIndex(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// InsertChildren splices nodes into the child list at index.
func (n *Node) InsertChildren(index int, nodes ...*Node) {
	if index < 0 {
		index = 0
	}
	if index > len(n.Children) {
		index = len(n.Children)
	}
	out := make([]*Node, 0, len(n.Children)+len(nodes))
	out = append(out, n.Children[:index]...)
	out = append(out, nodes...)
	out = append(out, n.Children[index:]...)
	n.Children = out
}

// ReplaceChild substitutes the child at index with the given nodes.
func (n *Node) ReplaceChild(index int, nodes ...*Node) {
	if index < 0 || index >= len(n.Children) {
		return
	}
	out := make([]*Node, 0, len(n.Children)-1+len(nodes))
	out = append(out, n.Children[:index]...)
	out = append(out, nodes...)
	out = append(out, n.Children[index+1:]...)
	n.Children = out
}

// RemoveChild deletes the child at index.
func (n *Node) RemoveChild(index int) {
	if index < 0 || index >= len(n.Children) {
		return
	}
	n.Children = append(n.Children[:index], n.Children[index+1:]...)
}

// CollectText concatenates the content of every descendant text-carrying
// element (w:t, m:t) in document order. Field instruction text does not
// contribute.
func CollectText(n *Node) string {
	var builder strings.Builder
	Walk(n, func(node *Node) bool {
		if IsElement(node, "t") {
			for _, child := range node.Children {
				if child.IsText {
					builder.WriteString(child.Text)
				}
			}
		}
		return true
	})
	return builder.String()
}

// InnerText concatenates every descendant text node.
func InnerText(n *Node) string {
	var builder strings.Builder
	Walk(n, func(node *Node) bool {
		if node.IsText {
			builder.WriteString(node.Text)
		}
		return true
	})
	return builder.String()
}

// SetText replaces the node's children with a single text node.
func (n *Node) SetText(text string) {
	if text == "" {
		n.Children = nil
		return
	}
	n.Children = []*Node{NewText(text)}
}

// AttrValue returns the value of the named attribute. The name may be
// given with or without a prefix; an exact match wins over a local-name
// match.
func AttrValue(n *Node, name string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if attr.Name.Local == name && attr.Name.Space == "" {
			return attr.Value
		}
	}
	want := localPart(name)
	for _, attr := range n.Attr {
		if isXMLNSAttr(attr.Name) {
			continue
		}
		if localPart(attr.Name.Local) == want {
			return attr.Value
		}
	}
	return ""
}

// SetAttr sets the named attribute, replacing an existing one matched
// the same way AttrValue matches.
func (n *Node) SetAttr(name, value string) {
	for i, attr := range n.Attr {
		if attr.Name.Local == name && attr.Name.Space == "" {
			n.Attr[i].Value = value
			return
		}
	}
	want := localPart(name)
	for i, attr := range n.Attr {
		if isXMLNSAttr(attr.Name) {
			continue
		}
		if localPart(attr.Name.Local) == want {
			n.Attr[i].Value = value
			return
		}
	}
	n.Attr = append(n.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: value})
}

func localPart(name string) string {
	if idx := strings.LastIndexByte(name, ':'); idx != -1 {
		return name[idx+1:]
	}
	return name
}
