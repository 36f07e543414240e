// Package omml compiles LaTeX-like math markup into OMML, the XML math
// dialect embedded in OOXML word-processing documents.
//
// The compiler is a two-stage pipeline: a [Lexer] splits the markup into
// tokens, and [Compile] runs a recursive-descent parser over the token
// stream producing a [Fragment] ready for serialization:
//
//	frag, err := omml.Compile(`\frac{a}{b} + \sqrt{2}`)
//	xmlBytes, _ := frag.XML()
//
// Compilation degrades rather than fails: unknown commands render as
// literal text, and a structurally broken expression yields a fragment
// containing a visibly marked error run. The returned error reports what
// went wrong while the fragment stays usable, so one bad formula never
// invalidates the surrounding document.
//
// The supported command set is a practical subset of LaTeX: fractions,
// radicals, accents, sub/superscripts, n-ary operators with bounds, named
// functions, auto-sized delimiters, matrix environments, Greek letters,
// and common operator symbols. It is not a full LaTeX implementation.
package omml
