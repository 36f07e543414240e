//go:build !ocr

// Package ocr derives alternative text for embedded images via the
// Tesseract OCR engine.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. All operations return ErrOCRNotEnabled. To enable OCR, rebuild
// with the "ocr" build tag:
//
//	go build -tags ocr
package ocr

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client. It is safe to call on a nil
// client.
func (c *Client) Close() error {
	return nil
}

// AltText returns an error indicating OCR support is not enabled.
func (c *Client) AltText(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}
