// Package pptx builds PresentationML (.pptx) packages from an in-memory
// shape model. It writes the OOXML parts directly; output is
// deterministic so converting the same input twice yields identical
// bytes.
package pptx

import "time"

// EMU conversion factors. PowerPoint geometry is expressed in English
// Metric Units; 914400 EMU per inch, and at the 96 dpi CSS reference
// 9525 EMU per pixel.
const (
	EMUPerInch = 914400
	EMUPerPx   = 9525
)

// Deck is an in-memory presentation ready to be written.
type Deck struct {
	Title  string
	Author string

	// SlideWidth and SlideHeight are in EMU. Zero means the 1280x720
	// default.
	SlideWidth  int64
	SlideHeight int64

	// Created stamps docProps/core.xml. The zero value uses a fixed
	// epoch so output bytes do not depend on wall time.
	Created time.Time

	Slides []*Slide
}

// Slide holds shapes in z-order: earlier shapes render behind later
// ones.
type Slide struct {
	Background string // "RRGGBB", empty for the master default
	Shapes     []Shape
	Notes      string
}

// Shape is one drawable on a slide.
type Shape interface {
	frame() Frame
}

// Frame is a shape's placement in EMU, top-left origin.
type Frame struct {
	X, Y, CX, CY int64
}

func (f Frame) frame() Frame { return f }

// TextBox is a free-standing text shape with one or more paragraphs.
type TextBox struct {
	Frame
	Name string

	Fill        string // "RRGGBB", empty for no fill
	BorderColor string
	BorderWidth int64 // EMU, 0 for no border

	Paragraphs []*Paragraph
}

// Paragraph is one line group within a text box.
type Paragraph struct {
	Align string // "l", "ctr", "r", "just"; empty inherits
	Runs  []*Run
}

// Run is a span of uniformly formatted text. A non-empty Hyperlink
// makes the run a clickable external link.
type Run struct {
	Text      string
	Font      Font
	Hyperlink string
}

// Font carries the resolved character formatting for a run.
type Font struct {
	Family        string
	SizePt        float64
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Color         string // "RRGGBB"
}

// Picture embeds an image payload at a fixed frame.
type Picture struct {
	Frame
	Name    string
	AltText string

	Data   []byte
	Format string // "png", "jpeg" or "gif"
}

// Rect is a filled or outlined rectangle, used for decorative
// container backgrounds.
type Rect struct {
	Frame
	Name string

	Fill        string
	BorderColor string
	BorderWidth int64 // EMU
}

// AddSlide appends an empty slide and returns it.
func (d *Deck) AddSlide() *Slide {
	s := &Slide{}
	d.Slides = append(d.Slides, s)
	return s
}

// Add appends a shape to the slide's z-order.
func (s *Slide) Add(shape Shape) {
	s.Shapes = append(s.Shapes, shape)
}
