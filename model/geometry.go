package model

import "math"

// Point represents a 2D point in pixel space.
type Point struct {
	X, Y float64
}

// BBox represents a bounding box (rectangle) in CSS pixel coordinates.
// The origin is the top-left corner and Y grows downward, matching
// getBoundingClientRect.
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// NewBBox creates a bounding box from coordinates.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate.
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate.
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate.
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point.
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// Contains checks if a point is inside the bounding box.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.Left() && p.X <= b.Right() &&
		p.Y >= b.Top() && p.Y <= b.Bottom()
}

// Intersects checks if two bounding boxes intersect.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Intersection returns the intersection of two bounding boxes.
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{}
	}

	x := math.Max(b.Left(), other.Left())
	y := math.Max(b.Top(), other.Top())
	right := math.Min(b.Right(), other.Right())
	bottom := math.Min(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Union returns the union of two bounding boxes.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Area returns the area of the bounding box.
func (b BBox) Area() float64 {
	return b.Width * b.Height
}

// ClampTo constrains the bounding box to lie within bounds. Position is
// shifted first; dimensions are reduced only when the box is larger than
// the bounds.
func (b BBox) ClampTo(bounds BBox) BBox {
	out := b
	if out.Width > bounds.Width {
		out.Width = bounds.Width
	}
	if out.Height > bounds.Height {
		out.Height = bounds.Height
	}
	if out.X < bounds.X {
		out.X = bounds.X
	}
	if out.Y < bounds.Y {
		out.Y = bounds.Y
	}
	if out.Right() > bounds.Right() {
		out.X = bounds.Right() - out.Width
	}
	if out.Bottom() > bounds.Bottom() {
		out.Y = bounds.Bottom() - out.Height
	}
	return out
}

// IsEmpty returns true if the bounding box has zero area.
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// IsValid returns true if the bounding box has positive dimensions.
func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
