// Package quire assembles Word documents from a structured document
// model. It renders paragraphs, tables, lists, images, headers, and
// footers into an OOXML package, compiles math markup into native OMML,
// and resolves footnotes, endnotes, and custom numbering by rewriting
// the package in a post-processing pass.
//
// The entry point is New, which wraps a model.Document in a Builder:
//
//	doc := model.NewDocument()
//	doc.AddSection(model.NewSection(model.NewParagraph("Hello")))
//	res, err := quire.New(doc).Assemble()
//
// Existing documents can be read back into the model with ReadDocument,
// and standalone math markup compiled with CompileMath.
package quire

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/thoreson/quire/docx"
	"github.com/thoreson/quire/inject"
	"github.com/thoreson/quire/model"
	"github.com/thoreson/quire/ocr"
	"github.com/thoreson/quire/omml"
	"github.com/thoreson/quire/render"
)

// Warning describes a recoverable problem encountered during assembly:
// an unresolved cross-reference, math markup that degraded to literal
// text, an image that could not be sized, and the like. Warnings never
// abort the build.
type Warning struct {
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// FormatWarnings renders warnings one per line for display.
func FormatWarnings(warnings []Warning) string {
	var sb strings.Builder
	for _, w := range warnings {
		sb.WriteString(w.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Builder assembles one document. Configure it with the chainable
// setters, then call Assemble.
type Builder struct {
	doc  *model.Document
	opts Options
}

// New creates a Builder for the document with default options.
func New(doc *model.Document) *Builder {
	return &Builder{doc: doc, opts: defaultOptions()}
}

// Logger routes diagnostic output to the given logger. Warn-level
// entries are additionally collected into the Result's warning list.
func (b *Builder) Logger(logger *zap.Logger) *Builder {
	if logger != nil {
		b.opts.logger = logger
	}
	return b
}

// AltTextOCR derives alternative text for images that carry none by
// running them through the OCR engine. Requires a binary built with the
// "ocr" build tag; without it, assembly proceeds and a warning is
// recorded.
func (b *Builder) AltTextOCR() *Builder {
	b.opts.altTextOCR = true
	return b
}

// OCRLanguage sets the recognition language for alt-text OCR.
// Default is "eng".
func (b *Builder) OCRLanguage(lang string) *Builder {
	if lang != "" {
		b.opts.ocrLanguage = lang
	}
	return b
}

// Result holds the assembled package bytes and the warnings gathered
// along the way.
type Result struct {
	data     []byte
	warnings []Warning
}

// Bytes returns the assembled .docx file contents.
func (r *Result) Bytes() []byte {
	return r.data
}

// Warnings returns the recoverable problems encountered during
// assembly, in the order they occurred.
func (r *Result) Warnings() []Warning {
	return r.warnings
}

// DocumentXML extracts the main document part from the assembled
// package, mainly useful for inspection and testing.
func (r *Result) DocumentXML() ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(r.data), int64(len(r.data)))
	if err != nil {
		return nil, err
	}
	for _, f := range zr.File {
		if f.Name != docx.PartDocument {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: %s", docx.ErrMissingPart, docx.PartDocument)
}

// warnCore is a zapcore.Core that records Warn-and-above entries as
// Warnings, independently of whatever sink the caller configured.
type warnCore struct {
	mu       sync.Mutex
	warnings []Warning
}

func (c *warnCore) Enabled(l zapcore.Level) bool      { return l >= zapcore.WarnLevel }
func (c *warnCore) With([]zapcore.Field) zapcore.Core { return c }

func (c *warnCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c *warnCore) Write(e zapcore.Entry, _ []zapcore.Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, Warning{Message: e.Message})
	return nil
}

func (c *warnCore) Sync() error { return nil }

// Assemble runs both phases: the draft render, then placeholder
// resolution over the draft bytes. The returned Result carries the
// final package and every warning either phase logged.
func (b *Builder) Assemble() (*Result, error) {
	opts := b.opts.clone()

	collector := &warnCore{}
	logger := zap.New(zapcore.NewTee(opts.logger.Core(), collector))

	var altText func([]byte) (string, error)
	if opts.altTextOCR {
		client, err := ocr.New()
		if err != nil {
			logger.Warn("OCR unavailable, images keep their given alt text", zap.Error(err))
		} else {
			defer client.Close()
			if err := client.SetLanguage(opts.ocrLanguage); err != nil {
				logger.Warn("setting OCR language failed", zap.String("language", opts.ocrLanguage), zap.Error(err))
			}
			altText = client.AltText
		}
	}

	rendered, err := render.Render(b.doc, render.Options{
		Logger:  logger,
		AltText: altText,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering draft: %w", err)
	}

	final, err := inject.Resolve(rendered.Draft, rendered.Pending, b.doc.Setup, b.doc.Numbering, logger)
	if err != nil {
		return nil, fmt.Errorf("resolving draft: %w", err)
	}

	return &Result{data: final, warnings: collector.warnings}, nil
}

// Assemble builds the document with default options. It is shorthand
// for New(doc).Assemble().
func Assemble(doc *model.Document) (*Result, error) {
	return New(doc).Assemble()
}

// CompileMath compiles math markup into an inline OMML fragment,
// returning the m:oMath XML. Unrecognized constructs degrade to literal
// runs rather than failing.
func CompileMath(src string) ([]byte, error) {
	frag, err := omml.Compile(src)
	if err != nil {
		return nil, err
	}
	return frag.XML()
}

// ReadDocument parses a .docx file back into the document model. Only
// the structural subset the model expresses survives the round trip.
func ReadDocument(data []byte) (*model.Document, error) {
	return docx.ReadDocument(data)
}

// Must panics if err is non-nil, otherwise returns v. For use in
// examples and variable initialization.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
