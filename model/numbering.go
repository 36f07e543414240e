package model

// NumberingLevel defines one level of a multi-level numbering scheme.
type NumberingLevel struct {
	Level  int // 0-indexed
	Format NumberFormat
	// Text is the OOXML level-text template, e.g. "%1." or "%1.%2".
	Text string
}

// NumberingDefinition defines a named multi-level numbering scheme and
// the paragraph styles linked to its levels. Linking happens during
// post-processing: each named style's paragraph properties are pointed at
// the freshly allocated numbering instance.
type NumberingDefinition struct {
	Name string
	// StyleLinks maps a style name (e.g. "Heading 1") to the numbering
	// level it consumes.
	StyleLinks map[string]int
	Levels     []NumberingLevel
}
