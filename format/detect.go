// Package format provides input and output format detection for the
// htmldeck converter.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a recognized file format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HTML indicates an HTML document.
	HTML
	// PPTX indicates a Microsoft PowerPoint (.pptx) document.
	PPTX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HTML:
		return "HTML"
	case PPTX:
		return "PPTX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case HTML:
		return ".html"
	case PPTX:
		return ".pptx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return HTML
	case ".pptx":
		return PPTX
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format. It is more
// reliable than extension-based detection for inputs without one.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	// ZIP magic: PPTX is a ZIP archive.
	if data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04 {
		return PPTX
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n\xef\xbb\xbf")
	lower := bytes.ToLower(trimmed)
	for _, prefix := range [][]byte{
		[]byte("<!doctype html"),
		[]byte("<html"),
		[]byte("<head"),
		[]byte("<body"),
	} {
		if bytes.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
