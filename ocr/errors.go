package ocr

import "errors"

// ErrOCRNotEnabled indicates the binary was built without the "ocr"
// build tag and no recognition backend is available.
var ErrOCRNotEnabled = errors.New("OCR support not enabled (rebuild with -tags ocr)")
