// Package htmldeck provides a fluent API for converting HTML pages into
// PowerPoint (.pptx) presentations.
//
// Basic usage:
//
//	result, warnings, err := htmldeck.Open("deck.html").Save(ctx, "deck.pptx")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", htmldeck.FormatWarnings(warnings))
//	}
//
// With options:
//
//	result, _, err := htmldeck.Open("deck.html").
//	    WithBrowser().
//	    WithNotes().
//	    Save(ctx, "deck.pptx")
//
// For advanced use cases, the lower-level htmldoc, layout and pptx
// packages are also available.
package htmldeck

import (
	"context"
	"io"
	"log/slog"

	"github.com/htmldeck/htmldeck/pptx"
)

// Converter accumulates configuration and runs the conversion on a
// terminal call (Save or Deck).
type Converter struct {
	filename string
	reader   io.Reader
	options  ConvertOptions
	logger   *slog.Logger
}

// Open prepares a conversion of the given HTML file.
//
// Example:
//
//	result, warnings, err := htmldeck.Open("deck.html").Save(ctx, "deck.pptx")
func Open(filename string) *Converter {
	return &Converter{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader prepares a conversion from an already-open reader. The
// browser layout backend is unavailable in this mode (it renders from a
// file path) and relative image sources resolve against the working
// directory.
func FromReader(r io.Reader) *Converter {
	return &Converter{
		reader:  r,
		options: defaultOptions(),
	}
}

// WithBrowser renders the page in headless Chrome and uses measured
// bounding boxes and computed styles instead of the static layout
// estimate.
func (c *Converter) WithBrowser() *Converter {
	n := c.clone()
	n.options.useBrowser = true
	return n
}

// Screenshots renders each slide as a single full-canvas picture
// captured from the browser instead of individual shapes. The result
// is pixel-faithful but not editable. Implies WithBrowser; when the
// browser cannot be used the slide falls back to shape emission with a
// warning.
func (c *Converter) Screenshots() *Converter {
	n := c.clone()
	n.options.useBrowser = true
	n.options.screenshots = true
	return n
}

// WithNotes attaches each slide's full text content as Markdown speaker
// notes.
func (c *Converter) WithNotes() *Converter {
	n := c.clone()
	n.options.notes = true
	return n
}

// WithOCR derives alt text for images that lack one by running them
// through OCR. Requires building with the "ocr" tag; without it a
// warning is recorded and images keep their empty alt text.
func (c *Converter) WithOCR() *Converter {
	n := c.clone()
	n.options.ocrAltText = true
	return n
}

// Quality sets the JPEG quality (1-100) used when oversized images are
// downscaled and re-encoded.
func (c *Converter) Quality(q int) *Converter {
	n := c.clone()
	n.options.jpegQuality = q
	return n
}

// NoRemoteImages skips http(s) image sources instead of fetching them.
func (c *Converter) NoRemoteImages() *Converter {
	n := c.clone()
	n.options.remoteImages = false
	return n
}

// Author sets the deck's document author metadata.
func (c *Converter) Author(name string) *Converter {
	n := c.clone()
	n.options.author = name
	return n
}

// Logger sets the structured logger used during conversion. Defaults to
// slog.Default().
func (c *Converter) Logger(l *slog.Logger) *Converter {
	n := c.clone()
	n.logger = l
	return n
}

func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		reader:   c.reader,
		options:  c.options.clone(),
		logger:   c.logger,
	}
}

func (c *Converter) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}

// Result summarizes a completed conversion.
type Result struct {
	Slides int
	Shapes int
	Images int
}

// Save converts the input and writes the .pptx package to output.
// Warnings report elements that were skipped or degraded; they do not
// abort the conversion.
func (c *Converter) Save(ctx context.Context, output string) (*Result, []Warning, error) {
	deck, warnings, err := c.Deck(ctx)
	if err != nil {
		return nil, warnings, err
	}
	if err := deck.WriteFile(output); err != nil {
		return nil, warnings, err
	}
	return summarize(deck), warnings, nil
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

func summarize(deck *pptx.Deck) *Result {
	r := &Result{Slides: len(deck.Slides)}
	for _, slide := range deck.Slides {
		r.Shapes += len(slide.Shapes)
		for _, shape := range slide.Shapes {
			if _, ok := shape.(*pptx.Picture); ok {
				r.Images++
			}
		}
	}
	return r
}
