package xmltree

import (
	"encoding/xml"
	"errors"
	"regexp"
	"sort"
	"strings"
)

// xmlNamespace is predeclared by the XML spec and must never be
// redeclared; the decoder resolves the "xml" prefix to this URL.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// knownNamespaces maps the prefixes used across WordprocessingML parts
// to their URLs, for restoring declarations the source root lacks.
var knownNamespaces = map[string]string{
	"w":   "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
	"r":   "http://schemas.openxmlformats.org/officeDocument/2006/relationships",
	"m":   "http://schemas.openxmlformats.org/officeDocument/2006/math",
	"a":   "http://schemas.openxmlformats.org/drawingml/2006/main",
	"wp":  "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing",
	"pic": "http://schemas.openxmlformats.org/drawingml/2006/picture",
	"mc":  "http://schemas.openxmlformats.org/markup-compatibility/2006",
	"w14": "http://schemas.microsoft.com/office/word/2010/wordml",
	"w15": "http://schemas.microsoft.com/office/word/2012/wordml",
}

// foldName rewrites a decoded name into the prefixed form the encoder
// writes verbatim. An undeclared prefix arrives in Space; a resolved
// URL (recognizable by URL characters) is left alone for applyPrefixMap.
func foldName(name xml.Name) xml.Name {
	if name.Space == "" {
		return name
	}
	if name.Space == xmlNamespace {
		return xml.Name{Local: "xml:" + name.Local}
	}
	if strings.ContainsAny(name.Space, "/:") {
		return name
	}
	return xml.Name{Local: name.Space + ":" + name.Local}
}

// foldAttrName is foldName for attributes, keeping namespace
// declarations in their literal xmlns form.
func foldAttrName(name xml.Name) xml.Name {
	if name.Space == "xmlns" {
		return xml.Name{Local: "xmlns:" + name.Local}
	}
	return foldName(name)
}

// prefixMapFromRoot reads the root's namespace declarations into a
// URL-to-prefix map.
func prefixMapFromRoot(root *Node) map[string]string {
	if root == nil {
		return nil
	}
	out := make(map[string]string)
	for _, attr := range root.Attr {
		switch {
		case attr.Name.Space == "xmlns":
			out[attr.Value] = attr.Name.Local
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			out[attr.Value] = ""
		case attr.Name.Space == "" && strings.HasPrefix(attr.Name.Local, "xmlns:"):
			out[attr.Value] = strings.TrimPrefix(attr.Name.Local, "xmlns:")
		}
	}
	return out
}

// namespaceDeclsFromRoot reads the root's declarations into a
// prefix-to-URL map.
func namespaceDeclsFromRoot(root *Node) map[string]string {
	if root == nil {
		return nil
	}
	out := make(map[string]string)
	for _, attr := range root.Attr {
		switch {
		case attr.Name.Space == "xmlns":
			out[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			out[""] = attr.Value
		case attr.Name.Space == "" && strings.HasPrefix(attr.Name.Local, "xmlns:"):
			out[strings.TrimPrefix(attr.Name.Local, "xmlns:")] = attr.Value
		}
	}
	return out
}

// applyPrefixMap folds resolved namespace URLs back into prefixed Local
// names using the root's own declarations.
func applyPrefixMap(node *Node, prefixes map[string]string) {
	if node == nil || len(prefixes) == 0 {
		return
	}
	if !node.IsText {
		if node.Name.Space == xmlNamespace {
			node.Name = xml.Name{Local: "xml:" + node.Name.Local}
		} else if prefix, ok := prefixes[node.Name.Space]; ok {
			if prefix == "" {
				node.Name = xml.Name{Local: node.Name.Local}
			} else {
				node.Name = xml.Name{Local: prefix + ":" + node.Name.Local}
			}
		}
		for i, attr := range node.Attr {
			if isXMLNSAttr(attr.Name) {
				continue
			}
			if attr.Name.Space == xmlNamespace {
				attr.Name = xml.Name{Local: "xml:" + attr.Name.Local}
				node.Attr[i] = attr
				continue
			}
			if prefix, ok := prefixes[attr.Name.Space]; ok && prefix != "" {
				attr.Name = xml.Name{Local: prefix + ":" + attr.Name.Local}
				node.Attr[i] = attr
			}
		}
	}
	for _, child := range node.Children {
		applyPrefixMap(child, prefixes)
	}
}

// normalizeXMLNSAttrs rewrites decoded xmlns declarations into the
// literal form the encoder can write back.
func normalizeXMLNSAttrs(node *Node) {
	if node == nil {
		return
	}
	if !node.IsText {
		for i, attr := range node.Attr {
			if attr.Name.Space != "xmlns" {
				continue
			}
			attr.Name.Space = ""
			if attr.Name.Local == "" {
				attr.Name.Local = "xmlns"
			} else {
				attr.Name.Local = "xmlns:" + attr.Name.Local
			}
			node.Attr[i] = attr
		}
	}
	for _, child := range node.Children {
		normalizeXMLNSAttrs(child)
	}
}

func isXMLNSAttr(name xml.Name) bool {
	if name.Space == "xmlns" {
		return true
	}
	return name.Space == "" && (name.Local == "xmlns" || strings.HasPrefix(name.Local, "xmlns:"))
}

// prefixesUsed collects every namespace prefix appearing in folded
// element and attribute names.
func prefixesUsed(node *Node) map[string]struct{} {
	out := make(map[string]struct{})
	Walk(node, func(n *Node) bool {
		if n.IsText {
			return true
		}
		if prefix := prefixOf(n.Name.Local); prefix != "" {
			out[prefix] = struct{}{}
		}
		for _, attr := range n.Attr {
			if isXMLNSAttr(attr.Name) {
				continue
			}
			if prefix := prefixOf(attr.Name.Local); prefix != "" {
				out[prefix] = struct{}{}
			}
		}
		return true
	})
	return out
}

func prefixOf(local string) string {
	if idx := strings.IndexByte(local, ':'); idx > 0 {
		return local[:idx]
	}
	return ""
}

// requiredNamespaces resolves used prefixes to URLs, preferring the
// root's own declarations over the known WordprocessingML set. The xml
// prefix is predeclared and never listed.
func requiredNamespaces(prefixes map[string]struct{}, root *Node) map[string]string {
	declared := namespaceDeclsFromRoot(root)
	required := make(map[string]string)
	for prefix := range prefixes {
		if prefix == "xml" {
			continue
		}
		if url, ok := declared[prefix]; ok {
			required[prefix] = url
			continue
		}
		if url, ok := knownNamespaces[prefix]; ok {
			required[prefix] = url
		}
	}
	return required
}

var xmlnsDeclPattern = regexp.MustCompile(`\s+xmlns(?::([A-Za-z0-9._-]+))?="([^"]*)"`)

// ensureRootNamespaces adds declarations for required prefixes missing
// from the verbatim root start tag.
func ensureRootNamespaces(rootStart string, required map[string]string) string {
	if len(required) == 0 || rootStart == "" {
		return rootStart
	}
	existing := make(map[string]string)
	for _, match := range xmlnsDeclPattern.FindAllStringSubmatch(rootStart, -1) {
		existing[match[1]] = match[2]
	}

	missing := make([]string, 0, len(required))
	for prefix, url := range required {
		if _, ok := existing[prefix]; ok || url == "" {
			continue
		}
		missing = append(missing, prefix)
	}
	if len(missing) == 0 {
		return rootStart
	}
	sort.Strings(missing)

	var builder strings.Builder
	for _, prefix := range missing {
		builder.WriteString(` xmlns:`)
		builder.WriteString(prefix)
		builder.WriteString(`="`)
		builder.WriteString(required[prefix])
		builder.WriteString(`"`)
	}
	insert := builder.String()

	if strings.HasSuffix(rootStart, "/>") {
		return rootStart[:len(rootStart)-2] + insert + "/>"
	}
	if idx := strings.LastIndexByte(rootStart, '>'); idx != -1 {
		return rootStart[:idx] + insert + rootStart[idx:]
	}
	return rootStart
}

// extractRootTags returns the verbatim root start and end tags of an
// XML document, skipping the header and any comments before the root.
func extractRootTags(text string) (string, string, error) {
	start, end, name, err := findRootStartTag(text)
	if err != nil {
		return "", "", err
	}
	rootStart := text[start : end+1]

	if strings.HasSuffix(rootStart, "/>") {
		return rootStart, "", nil
	}
	endTag := "</" + name + ">"
	endPos := strings.LastIndex(text, endTag)
	if endPos == -1 {
		return "", "", errors.New("root end tag not found")
	}
	return rootStart, endTag, nil
}

func findRootStartTag(text string) (int, int, string, error) {
	i := 0
	for i < len(text) {
		idx := strings.IndexByte(text[i:], '<')
		if idx == -1 {
			return 0, 0, "", errors.New("root start tag not found")
		}
		i += idx
		switch {
		case strings.HasPrefix(text[i:], "<?"):
			end := strings.Index(text[i:], "?>")
			if end == -1 {
				return 0, 0, "", errors.New("xml header not terminated")
			}
			i += end + 2
		case strings.HasPrefix(text[i:], "<!--"):
			end := strings.Index(text[i:], "-->")
			if end == -1 {
				return 0, 0, "", errors.New("xml comment not terminated")
			}
			i += end + 3
		case strings.HasPrefix(text[i:], "<!"):
			end := strings.IndexByte(text[i:], '>')
			if end == -1 {
				return 0, 0, "", errors.New("doctype not terminated")
			}
			i += end + 1
		default:
			return scanRootStartTag(text, i)
		}
	}
	return 0, 0, "", errors.New("root start tag not found")
}

func scanRootStartTag(text string, start int) (int, int, string, error) {
	inQuote := byte(0)
	for i := start + 1; i < len(text); i++ {
		c := text[i]
		if inQuote != 0 {
			if c == inQuote {
				inQuote = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			inQuote = c
			continue
		}
		if c == '>' {
			name := rootTagName(text[start+1 : i])
			if name == "" {
				return 0, 0, "", errors.New("root tag name missing")
			}
			return start, i, name, nil
		}
	}
	return 0, 0, "", errors.New("root start tag not terminated")
}

func rootTagName(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw[0] == '/' {
		return ""
	}
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case ' ', '\t', '\n', '\r', '/':
			return raw[:i]
		}
	}
	return raw
}
