// Package layout maps element pixel geometry onto the fixed slide canvas
// and estimates bounding boxes when no browser measurement is available.
package layout

import "github.com/htmldeck/htmldeck/model"

// The slide canvas is fixed at 1280x720 CSS pixels (16:9) at 96 DPI.
const (
	CanvasWidthPx  = 1280.0
	CanvasHeightPx = 720.0

	PxPerInch = 96.0

	// EMUPerPx follows from 914400 EMU per inch at 96 px per inch.
	EMUPerPx = 9525

	// Text boxes are floored to 0.5in x 0.25in so degenerate source
	// boxes still produce visible, editable text. The floor may cause
	// adjacent shapes to overlap; that is an accepted approximation.
	MinTextWidthPx  = PxPerInch / 2
	MinTextHeightPx = PxPerInch / 4
)

// Canvas returns the slide bounds in pixel space.
func Canvas() model.BBox {
	return model.NewBBox(0, 0, CanvasWidthPx, CanvasHeightPx)
}

// ToEMU converts CSS pixels to English Metric Units.
func ToEMU(px float64) int64 {
	if px < 0 {
		return 0
	}
	return int64(px*EMUPerPx + 0.5)
}

// MapBox clamps a pixel box to the canvas and converts it to EMU
// offset/extent values.
func MapBox(b model.BBox) (x, y, cx, cy int64) {
	clamped := b.ClampTo(Canvas())
	return ToEMU(clamped.X), ToEMU(clamped.Y), ToEMU(clamped.Width), ToEMU(clamped.Height)
}

// MapTextBox raises the box to the minimum text-box floor before clamping
// and converting.
func MapTextBox(b model.BBox) (x, y, cx, cy int64) {
	if b.Width < MinTextWidthPx {
		b.Width = MinTextWidthPx
	}
	if b.Height < MinTextHeightPx {
		b.Height = MinTextHeightPx
	}
	return MapBox(b)
}
