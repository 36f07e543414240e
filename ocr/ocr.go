//go:build ocr

// Package ocr derives alternative text for embedded images via the
// Tesseract OCR engine, wrapped by gosseract. Tesseract must be
// installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// This implementation is selected by the "ocr" build tag; without it a
// stub returning ErrOCRNotEnabled is compiled instead, keeping the cgo
// dependency optional.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for alt-text derivation.
type Client struct {
	client *gosseract.Client
}

// New creates an OCR client. The client should be closed when no longer
// needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	// Whole-page segmentation suits figure captions and diagram labels
	// better than the default per-block mode.
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		client.Close()
		return nil, fmt.Errorf("configuring page segmentation: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// AltText recognizes the image bytes (PNG, TIFF, JPEG, ...) and returns
// the text flattened to a single line suitable for a description
// attribute.
func (c *Client) AltText(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	return strings.Join(strings.Fields(text), " "), nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages
// join with "+" (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
