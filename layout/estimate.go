package layout

import (
	"math"
	"strconv"
	"strings"

	"github.com/htmldeck/htmldeck/htmldoc"
	"github.com/htmldeck/htmldeck/model"
	"github.com/htmldeck/htmldeck/style"
)

// Static flow constants. These are deliberately crude: the estimator only
// needs boxes plausible enough to place shapes, since the browser backend
// provides measured geometry when fidelity matters.
const (
	lineHeightFactor = 1.4
	avgCharWidth     = 0.55 // fraction of font size
	blockGapPx       = 8
	defaultImgWidth  = 320
	defaultImgHeight = 240
)

// Estimate assigns a bounding box to every element under the slide root
// using a top-to-bottom flow: block elements stack inside their parent,
// explicit CSS width/height/left/top are honored, and absolutely
// positioned elements are placed relative to the slide.
func Estimate(slide *model.Element) {
	canvas := Canvas()
	slide.Box = canvas
	cursor := canvas.Y
	for _, c := range slide.Children {
		cursor += flow(c, canvas.X, cursor, canvas.Width)
	}
}

// flow lays out one element at (x, y) with the given available width and
// returns the vertical space it consumes in the parent's flow.
func flow(el *model.Element, x, y, avail float64) float64 {
	if style.Hidden(el) {
		el.Box = model.BBox{}
		return 0
	}

	fontPx := style.FontSizePx(el)

	width := avail
	if w, ok := cssLength(el, "width", fontPx); ok {
		width = w
	}
	height, hasHeight := cssLength(el, "height", fontPx)

	// Absolutely positioned elements leave the flow: slide-relative
	// left/top, no space consumed in the parent.
	position := strings.ToLower(el.Property("position"))
	if position == "absolute" || position == "fixed" {
		ax, _ := cssLength(el, "left", fontPx)
		ay, _ := cssLength(el, "top", fontPx)
		if !hasHeight {
			height = contentHeight(el, width, fontPx)
		}
		el.Box = model.NewBBox(ax, ay, width, height)
		flowChildren(el)
		return 0
	}

	if !hasHeight {
		height = contentHeight(el, width, fontPx)
	}
	el.Box = model.NewBBox(x, y, width, height)

	used := flowChildren(el)
	if used > height && !hasHeight {
		height = used
		el.Box.Height = height
	}
	return height + blockGapPx
}

// flowChildren stacks an element's children inside its box and returns
// the total height they used.
func flowChildren(el *model.Element) float64 {
	cursor := el.Box.Y
	for _, c := range el.Children {
		cursor += flow(c, el.Box.X, cursor, el.Box.Width)
	}
	if used := cursor - el.Box.Y; used > 0 {
		return used
	}
	return 0
}

// contentHeight estimates the intrinsic height of an element's own
// content: images from their attributes, text from a wrap estimate.
func contentHeight(el *model.Element, width, fontPx float64) float64 {
	switch el.Tag {
	case "img", "svg", "picture", "canvas", "video":
		_, h := ImageSize(el, width)
		return h
	}

	text := htmldoc.FlattenText(el, " ")
	if text == "" {
		return 0
	}
	return float64(estimateLines(text, width, fontPx)) * fontPx * lineHeightFactor
}

// ImageSize returns an image element's display size in px, from its
// width/height attributes or CSS, scaled down to fit maxWidth with the
// aspect ratio preserved.
func ImageSize(el *model.Element, maxWidth float64) (w, h float64) {
	fontPx := style.FontSizePx(el)
	w = attrPx(el, "width")
	h = attrPx(el, "height")
	if cw, ok := cssLength(el, "width", fontPx); ok {
		w = cw
	}
	if ch, ok := cssLength(el, "height", fontPx); ok {
		h = ch
	}
	if w <= 0 && h <= 0 {
		w, h = defaultImgWidth, defaultImgHeight
	} else if w <= 0 {
		w = h * defaultImgWidth / defaultImgHeight
	} else if h <= 0 {
		h = w * defaultImgHeight / defaultImgWidth
	}
	if maxWidth > 0 && w > maxWidth {
		h = h * maxWidth / w
		w = maxWidth
	}
	return w, h
}

// estimateLines approximates how many lines the text wraps into at the
// given width and font size. Explicit newlines each start a new line.
func estimateLines(text string, width, fontPx float64) int {
	charsPerLine := 1.0
	if width > 0 && fontPx > 0 {
		charsPerLine = math.Max(1, width/(fontPx*avgCharWidth))
	}
	lines := 0
	for _, seg := range strings.Split(text, "\n") {
		n := float64(len([]rune(seg)))
		lines += int(math.Max(1, math.Ceil(n/charsPerLine)))
	}
	if lines < 1 {
		lines = 1
	}
	return lines
}

func cssLength(el *model.Element, prop string, fontPx float64) (float64, bool) {
	v := el.Property(prop)
	if v == "" {
		return 0, false
	}
	return style.ParseLength(v, fontPx)
}

func attrPx(el *model.Element, name string) float64 {
	v := strings.TrimSpace(el.GetAttr(name))
	if v == "" {
		return 0
	}
	v = strings.TrimSuffix(v, "px")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
