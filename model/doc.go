// Package model provides the intermediate representation (IR) for document
// assembly.
//
// This package defines the caller-facing data structures that describe the
// document to be produced. The rendering pipeline consumes these types
// read-only; the read-back path produces them from an existing package.
//
// # Document Structure
//
// The [Document] type represents a complete document with page setup,
// numbering definitions, and an ordered list of sections:
//
//	doc := model.NewDocument()
//	doc.Properties.Title = "Quarterly Report"
//	doc.AddSection(section)
//
// Each [Section] holds a column count and an ordered list of [Element]
// values making up the section body.
//
// # Elements
//
// All body content implements the [Element] interface. The concrete types
// are:
//
//   - [Paragraph] - plain or rich text paragraphs
//   - [List] - ordered or unordered lists
//   - [Table] - tables with a rectangular cell grid
//   - [Image] - embedded images
//   - [Formula] - display math in LaTeX-like markup
//   - [Header], [Footer] - running header and footer text
//   - [PageBreak], [ColumnBreak] - explicit breaks
//   - [TOC] - a table-of-contents field
//
// # Runs
//
// A rich [Paragraph] holds an ordered sequence of [Run] values. The
// concrete types are:
//
//   - [TextRun] - literal text with optional character formatting
//   - [FormulaRun] - inline math markup
//   - [FootnoteRun], [EndnoteRun] - note text anchored at this position
//   - [CrossRefRun] - a reference to a bookmarked paragraph
//
// A paragraph carries either plain text or runs, never both; the
// [NewParagraph] and [NewRichParagraph] constructors enforce the split.
package model
