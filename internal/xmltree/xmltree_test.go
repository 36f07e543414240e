package xmltree

import (
	"strings"
	"testing"
)

const wmlNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// TestParseEncodeRoundTrip tests that compact documents survive a parse
// and encode cycle byte for byte
func TestParseEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			"document with header",
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
				`<w:document xmlns:w="` + wmlNS + `"><w:body><w:p><w:r><w:t>hello</w:t></w:r></w:p></w:body></w:document>`,
		},
		{
			"no header",
			`<w:styles xmlns:w="` + wmlNS + `"><w:style w:styleId="Normal"><w:name w:val="Normal"></w:name></w:style></w:styles>`,
		},
		{
			"preserved space attribute",
			`<w:document xmlns:w="` + wmlNS + `"><w:body><w:p><w:r><w:t xml:space="preserve"> x </w:t></w:r></w:p></w:body></w:document>`,
		},
		{
			"multiple namespace declarations",
			`<w:document xmlns:w="` + wmlNS + `" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body></w:body></w:document>`,
		},
		{
			"text with entities",
			`<w:document xmlns:w="` + wmlNS + `"><w:body><w:p><w:r><w:t>a &amp; b &lt; c</w:t></w:r></w:p></w:body></w:document>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			out, err := doc.Encode()
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if string(out) != tt.input {
				t.Errorf("round trip changed bytes:\n in: %s\nout: %s", tt.input, out)
			}
		})
	}
}

// TestParseRootTags tests verbatim root tag capture
func TestParseRootTags(t *testing.T) {
	input := `<?xml version="1.0"?><!-- generator --><w:document xmlns:w="` + wmlNS + `" mc:Ignorable="w14"><w:body></w:body></w:document>`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	wantStart := `<w:document xmlns:w="` + wmlNS + `" mc:Ignorable="w14">`
	if doc.RootStart != wantStart {
		t.Errorf("RootStart = %q, want %q", doc.RootStart, wantStart)
	}
	if doc.RootEnd != "</w:document>" {
		t.Errorf("RootEnd = %q, want </w:document>", doc.RootEnd)
	}
	if doc.Header != `<?xml version="1.0"?>` {
		t.Errorf("Header = %q", doc.Header)
	}
}

// TestParseSelfClosingRoot tests a root with no body
func TestParseSelfClosingRoot(t *testing.T) {
	doc, err := Parse([]byte(`<w:settings xmlns:w="` + wmlNS + `"/>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if doc.RootEnd != "" {
		t.Errorf("self-closing root should have empty RootEnd, got %q", doc.RootEnd)
	}
	out, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if string(out) != `<w:settings xmlns:w="`+wmlNS+`"/>` {
		t.Errorf("Encode = %s", out)
	}
}

// TestParseErrors tests malformed input handling
func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"text only", "hello"},
		{"mismatched tags", "<a><b></a>"},
		{"unterminated header", "<?xml version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Errorf("Parse(%q) expected error", tt.input)
			}
		})
	}
}

// TestParseFragmentFoldsPrefixes tests that undeclared prefixes fold into
// the literal name
func TestParseFragmentFoldsPrefixes(t *testing.T) {
	nodes, err := ParseFragment([]byte(`<m:oMath><m:r><m:t xml:space="preserve">x </m:t></m:r></m:oMath>`))
	if err != nil {
		t.Fatalf("ParseFragment error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}

	math := nodes[0]
	if math.Name.Local != "m:oMath" || math.Name.Space != "" {
		t.Errorf("name = %+v, want folded m:oMath", math.Name)
	}

	text := Find(math, "t")
	if text == nil {
		t.Fatal("m:t not found")
	}
	if text.Name.Local != "m:t" {
		t.Errorf("text name = %q, want m:t", text.Name.Local)
	}
	if len(text.Attr) != 1 || text.Attr[0].Name.Local != "xml:space" || text.Attr[0].Name.Space != "" {
		t.Errorf("xml:space attr not folded: %+v", text.Attr)
	}

	// Folded fragments re-encode with their literal prefixes.
	out, err := EncodeFragment(nodes)
	if err != nil {
		t.Fatalf("EncodeFragment error: %v", err)
	}
	if string(out) != `<m:oMath><m:r><m:t xml:space="preserve">x </m:t></m:r></m:oMath>` {
		t.Errorf("EncodeFragment = %s", out)
	}
}

// TestParseFragmentAttrPrefix tests folding of prefixed attributes
func TestParseFragmentAttrPrefix(t *testing.T) {
	nodes, err := ParseFragment([]byte(`<m:jc m:val="center"></m:jc>`))
	if err != nil {
		t.Fatalf("ParseFragment error: %v", err)
	}
	if got := AttrValue(nodes[0], "m:val"); got != "center" {
		t.Errorf("AttrValue(m:val) = %q, want center", got)
	}
}

// TestEncodeAddsMissingNamespace tests that a spliced fragment prefix
// earns a declaration on the root start tag
func TestEncodeAddsMissingNamespace(t *testing.T) {
	input := `<w:document xmlns:w="` + wmlNS + `"><w:body><w:p></w:p></w:body></w:document>`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	frag, err := ParseFragment([]byte(`<m:oMath><m:r><m:t>x</m:t></m:r></m:oMath>`))
	if err != nil {
		t.Fatalf("ParseFragment error: %v", err)
	}
	body := Find(doc.Root, "body")
	para := body.ChildElement("p")
	body.ReplaceChild(body.ChildIndex(para), frag...)

	out, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	want := `xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"`
	if !strings.Contains(string(out), want) {
		t.Errorf("output missing %s:\n%s", want, out)
	}
	if !strings.Contains(string(out), "<m:oMath><m:r><m:t>x</m:t></m:r></m:oMath>") {
		t.Errorf("output missing spliced math:\n%s", out)
	}
	// The declaration lands on the root start tag, before its close.
	if !strings.HasPrefix(string(out), `<w:document xmlns:w="`+wmlNS+`" xmlns:m=`) {
		t.Errorf("declaration not on root start tag:\n%s", out)
	}
}

// TestEncodeKeepsDeclaredNamespace tests that an already declared prefix
// is not redeclared
func TestEncodeKeepsDeclaredNamespace(t *testing.T) {
	mathNS := "http://schemas.openxmlformats.org/officeDocument/2006/math"
	input := `<w:document xmlns:w="` + wmlNS + `" xmlns:m="` + mathNS + `"><w:body></w:body></w:document>`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	frag, _ := ParseFragment([]byte(`<m:oMath></m:oMath>`))
	Find(doc.Root, "body").InsertChildren(0, frag...)

	out, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if strings.Count(string(out), "xmlns:m=") != 1 {
		t.Errorf("xmlns:m declared more than once:\n%s", out)
	}
}

// TestCollectText tests text extraction from t elements only
func TestCollectText(t *testing.T) {
	input := `<w:document xmlns:w="` + wmlNS + `"><w:body><w:p><w:r><w:t>one </w:t></w:r><w:r><w:instrText>PAGE</w:instrText></w:r><w:r><w:t>two</w:t></w:r></w:p></w:body></w:document>`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	para := Find(doc.Root, "p")
	if got := CollectText(para); got != "one two" {
		t.Errorf("CollectText = %q, want %q", got, "one two")
	}
	if got := InnerText(para); got != "one PAGEtwo" {
		t.Errorf("InnerText = %q, want %q", got, "one PAGEtwo")
	}
}

// TestFindHelpers tests Find, FindAll and ChildElement
func TestFindHelpers(t *testing.T) {
	input := `<w:document xmlns:w="` + wmlNS + `"><w:body><w:p><w:r><w:t>a</w:t></w:r></w:p><w:p><w:r><w:t>b</w:t></w:r></w:p></w:body></w:document>`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if body := Find(doc.Root, "body"); body == nil {
		t.Fatal("body not found")
	}
	paras := FindAll(doc.Root, "p")
	if len(paras) != 2 {
		t.Fatalf("FindAll(p) = %d nodes, want 2", len(paras))
	}
	if CollectText(paras[0]) != "a" || CollectText(paras[1]) != "b" {
		t.Error("FindAll order wrong")
	}

	body := Find(doc.Root, "body")
	if body.ChildElement("p") != paras[0] {
		t.Error("ChildElement should return the first direct child")
	}
	if body.ChildElement("tbl") != nil {
		t.Error("ChildElement for absent name should be nil")
	}
}

// TestChildSurgery tests insert, replace and remove operations
func TestChildSurgery(t *testing.T) {
	parent := NewElement("w:body")
	a := NewElement("w:p")
	b := NewElement("w:p")
	c := NewElement("w:tbl")
	parent.Children = []*Node{a, b}

	parent.InsertChildren(1, c)
	if len(parent.Children) != 3 || parent.Children[1] != c {
		t.Fatalf("InsertChildren misplaced: %v", parent.Children)
	}

	d := NewElement("w:sectPr")
	parent.ReplaceChild(1, d)
	if len(parent.Children) != 3 || parent.Children[1] != d {
		t.Fatalf("ReplaceChild misplaced")
	}

	parent.RemoveChild(1)
	if len(parent.Children) != 2 || parent.Children[0] != a || parent.Children[1] != b {
		t.Fatalf("RemoveChild wrong result")
	}

	if parent.ChildIndex(b) != 1 {
		t.Errorf("ChildIndex(b) = %d, want 1", parent.ChildIndex(b))
	}
	if parent.ChildIndex(c) != -1 {
		t.Errorf("ChildIndex(removed) = %d, want -1", parent.ChildIndex(c))
	}
}

// TestAttrHelpers tests attribute access across both name forms
func TestAttrHelpers(t *testing.T) {
	input := `<w:document xmlns:w="` + wmlNS + `"><w:body><w:p><w:pPr><w:pStyle w:val="Heading1"></w:pStyle></w:pPr></w:p></w:body></w:document>`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	style := Find(doc.Root, "pStyle")
	if got := AttrValue(style, "w:val"); got != "Heading1" {
		t.Errorf("AttrValue(w:val) = %q, want Heading1", got)
	}
	if got := AttrValue(style, "val"); got != "Heading1" {
		t.Errorf("AttrValue(val) = %q, want Heading1", got)
	}

	style.SetAttr("w:val", "Heading2")
	if got := AttrValue(style, "w:val"); got != "Heading2" {
		t.Errorf("after SetAttr = %q, want Heading2", got)
	}
	if len(style.Attr) != 1 {
		t.Errorf("SetAttr should replace, attrs = %+v", style.Attr)
	}

	built := NewElement("w:footnote")
	built.SetAttr("w:id", "3")
	if got := AttrValue(built, "w:id"); got != "3" {
		t.Errorf("built AttrValue = %q, want 3", got)
	}
}

// TestNodeClone tests deep copy independence
func TestNodeClone(t *testing.T) {
	orig := NewElement("w:p")
	run := NewElement("w:r")
	run.SetText("x")
	orig.Children = []*Node{run}

	clone := orig.Clone()
	clone.Children[0].SetText("y")
	clone.SetAttr("w:rsidR", "0")

	if InnerText(orig) != "x" {
		t.Error("clone mutation leaked into original text")
	}
	if len(orig.Attr) != 0 {
		t.Error("clone mutation leaked into original attrs")
	}
}

// TestLocalName tests prefix stripping in both representations
func TestLocalName(t *testing.T) {
	folded := NewElement("w:p")
	if LocalName(folded) != "p" {
		t.Errorf("LocalName(w:p) = %q", LocalName(folded))
	}
	resolved := &Node{}
	resolved.Name.Space = wmlNS
	resolved.Name.Local = "p"
	if LocalName(resolved) != "p" {
		t.Errorf("LocalName(resolved p) = %q", LocalName(resolved))
	}
	if LocalName(NewText("x")) != "" {
		t.Error("LocalName of text node should be empty")
	}
}
