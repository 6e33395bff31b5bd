package htmldeck

import "github.com/htmldeck/htmldeck/imaging"

// ConvertOptions holds configuration for a conversion run.
type ConvertOptions struct {
	// Layout backend selection.
	useBrowser bool

	// Whole-slide screenshot capture instead of shape emission.
	screenshots bool

	// Speaker notes generation.
	notes bool

	// JPEG re-encode quality for downscaled images.
	jpegQuality int

	// OCR-derived alt text for images without one (needs the ocr build
	// tag).
	ocrAltText bool

	// Remote image fetching (http/https sources).
	remoteImages bool

	// Deck metadata.
	author string
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		useBrowser:   false,
		notes:        false,
		jpegQuality:  imaging.DefaultJPEGQuality,
		ocrAltText:   false,
		remoteImages: true,
		author:       "",
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return o
}
