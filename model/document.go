package model

// Document represents a complete document to assemble
type Document struct {
	Setup      PageSetup
	Properties CoreProperties
	Sections   []*Section
	Numbering  []NumberingDefinition
}

// CoreProperties contains document-level metadata written to the core
// properties part.
type CoreProperties struct {
	Title    string
	Subject  string
	Creator  string
	Keywords []string
	// Custom metadata
	Custom map[string]string
}

// Section holds an ordered run of elements sharing column layout.
type Section struct {
	Elements []Element
	// Columns is the column count; 0 and 1 both mean a single column.
	Columns int
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Properties: CoreProperties{
			Custom: make(map[string]string),
		},
		Sections: make([]*Section, 0),
	}
}

// AddSection adds a section to the document
func (d *Document) AddSection(s *Section) {
	d.Sections = append(d.Sections, s)
}

// NewSection creates a section from elements with single-column layout.
func NewSection(elements ...Element) *Section {
	return &Section{Elements: elements}
}

// AddElement appends an element to the section.
func (s *Section) AddElement(e Element) {
	s.Elements = append(s.Elements, e)
}

// SectionCount returns the total number of sections
func (d *Document) SectionCount() int {
	return len(d.Sections)
}

// ExtractText returns all paragraph and list text concatenated, one
// block per line. Table cells are joined with tabs.
func (d *Document) ExtractText() string {
	var text string
	for _, s := range d.Sections {
		for _, e := range s.Elements {
			switch el := e.(type) {
			case *Paragraph:
				text += el.GetText() + "\n"
			case *List:
				text += el.GetText()
			case *Table:
				for _, row := range el.Rows {
					for i, cell := range row {
						if i > 0 {
							text += "\t"
						}
						text += cell
					}
					text += "\n"
				}
			}
		}
	}
	return text
}

// AllParagraphs returns every paragraph across all sections in order.
func (d *Document) AllParagraphs() []*Paragraph {
	var paragraphs []*Paragraph
	for _, s := range d.Sections {
		for _, e := range s.Elements {
			if p, ok := e.(*Paragraph); ok {
				paragraphs = append(paragraphs, p)
			}
		}
	}
	return paragraphs
}

// AllTables returns every table across all sections in order.
func (d *Document) AllTables() []*Table {
	var tables []*Table
	for _, s := range d.Sections {
		for _, e := range s.Elements {
			if t, ok := e.(*Table); ok {
				tables = append(tables, t)
			}
		}
	}
	return tables
}
