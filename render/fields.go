package render

// Field constructs are rendered complete at draft time: the instruction
// and its cached display value are both known, so no placeholder or
// post-processing is involved.

// fieldRuns builds the fldChar begin / instrText / separate / cached
// display / end run sequence for one field. With an empty display the
// separate and display runs are omitted and the consumer computes the
// value itself.
func fieldRuns(instr, display string, dirty bool) []interface{} {
	begin := &fldCharXML{Type: "begin"}
	if dirty {
		begin.Dirty = "true"
	}
	runs := []interface{}{
		&runXML{Children: []interface{}{begin}},
		&runXML{Children: []interface{}{&instrTextXML{Space: "preserve", Value: instr}}},
	}
	if display != "" {
		runs = append(runs,
			&runXML{Children: []interface{}{&fldCharXML{Type: "separate"}}},
			newTextRun(display, nil),
		)
	}
	return append(runs, &runXML{Children: []interface{}{&fldCharXML{Type: "end"}}})
}

// refFieldRuns builds a cross-reference REF field with a cached display
// string.
func refFieldRuns(bookmark, display string) []interface{} {
	return fieldRuns(` REF `+bookmark+` \h `, display, false)
}

// pageFieldRuns builds a live page-number field.
func pageFieldRuns() []interface{} {
	return fieldRuns(` PAGE `, "", false)
}

// tocFieldRuns builds a table-of-contents field covering heading levels
// 1-3, marked dirty so the word processor populates it on open.
func tocFieldRuns() []interface{} {
	return fieldRuns(` TOC \o "1-3" \h \z \u `, "Right-click to update the table of contents.", true)
}
