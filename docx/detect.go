package docx

import (
	"archive/zip"
	"bytes"
)

// zipMagic is the local-file-header signature every zip starts with.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// IsDOCX reports whether the bytes look like an OOXML word-processing
// package: a zip container holding a main document part.
func IsDOCX(data []byte) bool {
	if !bytes.HasPrefix(data, zipMagic) {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if f.Name == PartDocument {
			return true
		}
	}
	return false
}
