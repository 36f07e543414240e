package quire

import (
	"github.com/thoreson/quire/docx"
	"github.com/thoreson/quire/ocr"
)

// Sentinel errors surfaced through the facade. They originate in the
// packages where the conditions arise; re-exporting them here lets
// callers match with errors.Is against a single import.
var (
	// ErrNotDOCX indicates input bytes are not a readable OOXML package.
	ErrNotDOCX = docx.ErrNotDOCX
	// ErrMissingPart indicates a required part is absent and cannot be
	// synthesized.
	ErrMissingPart = docx.ErrMissingPart
	// ErrMalformedPart indicates a part's XML could not be parsed.
	ErrMalformedPart = docx.ErrMalformedPart
	// ErrOCRNotEnabled indicates the binary was built without the "ocr"
	// build tag.
	ErrOCRNotEnabled = ocr.ErrOCRNotEnabled
)
