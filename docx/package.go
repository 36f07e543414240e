package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/thoreson/quire/internal/xmltree"
)

// Sentinel errors for package-level failures.
var (
	// ErrNotDOCX indicates the input bytes are not a readable OOXML package.
	ErrNotDOCX = errors.New("not a DOCX package")
	// ErrMissingPart indicates a required part is absent and cannot be
	// synthesized.
	ErrMissingPart = errors.New("missing required part")
	// ErrMalformedPart indicates a part's XML could not be parsed.
	ErrMalformedPart = errors.New("malformed part")
)

// Package is an OOXML package held in memory. Parts read from an existing
// zip stay in their original compressed form until replaced, so untouched
// entries survive a rewrite byte-identically.
type Package struct {
	source   *zip.Reader
	replaced map[string][]byte
	added    []string
}

// NewPackage creates an empty package to be populated part by part.
func NewPackage() *Package {
	return &Package{replaced: make(map[string][]byte)}
}

// OpenPackage opens package bytes for part access and rewriting.
func OpenPackage(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotDOCX, err)
	}
	p := &Package{source: zr, replaced: make(map[string][]byte)}
	if !p.Has(PartDocument) {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, PartDocument)
	}
	return p, nil
}

// Has reports whether the named part exists.
func (p *Package) Has(name string) bool {
	if _, ok := p.replaced[name]; ok {
		return true
	}
	return p.sourceFile(name) != nil
}

// Part returns the named part's bytes.
func (p *Package) Part(name string) ([]byte, bool) {
	if data, ok := p.replaced[name]; ok {
		return data, true
	}
	f := p.sourceFile(name)
	if f == nil {
		return nil, false
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

// SetPart replaces or adds the named part.
func (p *Package) SetPart(name string, data []byte) {
	if _, ok := p.replaced[name]; !ok && p.sourceFile(name) == nil {
		p.added = append(p.added, name)
	}
	p.replaced[name] = data
}

// PartNames returns every part name: original entries in zip order, then
// added parts in insertion order.
func (p *Package) PartNames() []string {
	var names []string
	if p.source != nil {
		for _, f := range p.source.File {
			names = append(names, f.Name)
		}
	}
	return append(names, p.added...)
}

// Bytes rewrites the package as a zip. Replaced and added parts are
// re-deflated; entries never touched are copied raw from the source so
// their bytes stay identical.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if p.source != nil {
		for _, f := range p.source.File {
			if data, ok := p.replaced[f.Name]; ok {
				if err := writeEntry(zw, f.Name, data); err != nil {
					return nil, err
				}
				continue
			}
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copying %s: %w", f.Name, err)
			}
		}
	}
	for _, name := range p.added {
		if err := writeEntry(zw, name, p.replaced[name]); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

func (p *Package) sourceFile(name string) *zip.File {
	if p.source == nil {
		return nil
	}
	for _, f := range p.source.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// AddContentTypeOverride registers a content-type override for the named
// part in the content-type registry. An existing registration is left
// alone.
func (p *Package) AddContentTypeOverride(partName, contentType string) error {
	data, ok := p.Part(PartContentTypes)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingPart, PartContentTypes)
	}
	doc, err := xmltree.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPart, PartContentTypes, err)
	}
	target := "/" + partName
	for _, o := range xmltree.FindAll(doc.Root, "Override") {
		if xmltree.AttrValue(o, "PartName") == target {
			return nil
		}
	}
	override := xmltree.NewElement("Override")
	override.SetAttr("PartName", target)
	override.SetAttr("ContentType", contentType)
	doc.Root.Children = append(doc.Root.Children, override)
	out, err := doc.Encode()
	if err != nil {
		return err
	}
	p.SetPart(PartContentTypes, out)
	return nil
}

// AddContentTypeDefault registers a default content type for a file
// extension. An existing registration is left alone.
func (p *Package) AddContentTypeDefault(extension, contentType string) error {
	data, ok := p.Part(PartContentTypes)
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingPart, PartContentTypes)
	}
	doc, err := xmltree.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPart, PartContentTypes, err)
	}
	for _, d := range xmltree.FindAll(doc.Root, "Default") {
		if strings.EqualFold(xmltree.AttrValue(d, "Extension"), extension) {
			return nil
		}
	}
	def := xmltree.NewElement("Default")
	def.SetAttr("Extension", extension)
	def.SetAttr("ContentType", contentType)
	doc.Root.Children = append(doc.Root.Children, def)
	out, err := doc.Encode()
	if err != nil {
		return err
	}
	p.SetPart(PartContentTypes, out)
	return nil
}

// AddRelationship adds a relationship from the main document part to the
// target and returns its id. If a relationship with the same type and
// target already exists, its id is returned unchanged.
func (p *Package) AddRelationship(relType, target string) (string, error) {
	data, ok := p.Part(PartDocumentRels)
	if !ok {
		data = []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
			`<Relationships xmlns="` + NSPackageRels + `"></Relationships>`)
	}
	doc, err := xmltree.Parse(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedPart, PartDocumentRels, err)
	}
	maxID := 0
	for _, r := range xmltree.FindAll(doc.Root, "Relationship") {
		if xmltree.AttrValue(r, "Type") == relType && xmltree.AttrValue(r, "Target") == target {
			return xmltree.AttrValue(r, "Id"), nil
		}
		id := xmltree.AttrValue(r, "Id")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n > maxID {
			maxID = n
		}
	}
	id := "rId" + strconv.Itoa(maxID+1)
	rel := xmltree.NewElement("Relationship")
	rel.SetAttr("Id", id)
	rel.SetAttr("Type", relType)
	rel.SetAttr("Target", target)
	doc.Root.Children = append(doc.Root.Children, rel)
	out, err := doc.Encode()
	if err != nil {
		return "", err
	}
	p.SetPart(PartDocumentRels, out)
	return id, nil
}
