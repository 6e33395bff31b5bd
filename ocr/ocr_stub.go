//go:build !ocr

// Package ocr derives alt text for embedded images via Tesseract.
//
// This is the stub implementation used when the "ocr" build tag is not
// set. All functions return ErrOCRNotEnabled. To enable OCR, rebuild
// with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import "errors"

// ErrOCRNotEnabled is returned when OCR functions are called but OCR
// support was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

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
