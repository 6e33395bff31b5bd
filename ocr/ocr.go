//go:build ocr

// Package ocr derives alt text for embedded images by running them
// through the Tesseract OCR engine via gosseract. It requires Tesseract
// to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract for alt-text recognition.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. Close it when no longer needed to
// release resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// AltText recognizes text in image data (PNG, JPEG, TIFF, ...) and
// returns it trimmed, suitable as an image description.
func (c *Client) AltText(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage sets the recognition language(s); multiple languages are
// "+"-separated (e.g. "eng+fra"). Default is "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
