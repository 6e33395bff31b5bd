package style

import (
	"strconv"
	"strings"

	"github.com/htmldeck/htmldeck/model"
)

// PtPerPx converts CSS pixels to typographic points (the original fixed
// scale factor: 12px text renders at 9pt).
const PtPerPx = 0.75

// FontFamily returns the element's PowerPoint font family, falling back
// to DefaultFontFamily for unset or unmapped values.
func FontFamily(el *model.Element) string {
	v := el.Property("font-family")
	if v == "" {
		return DefaultFontFamily
	}
	return ResolveFontFamily(v)
}

// FontSizePx returns the computed font size in pixels (default 16).
func FontSizePx(el *model.Element) float64 {
	v := el.Property("font-size")
	if v == "" {
		return 16.0
	}
	px, ok := ParseLength(v, 16.0)
	if !ok || px <= 0 {
		return 16.0
	}
	return px
}

// FontSizePt returns the font size converted to points.
func FontSizePt(el *model.Element) float64 {
	return FontSizePx(el) * PtPerPx
}

// Bold reports a bold font weight: the keywords, or a numeric weight of
// 600 and up.
func Bold(el *model.Element) bool {
	v := strings.ToLower(el.Property("font-weight"))
	if strings.Contains(v, "bold") {
		return true
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n >= 600
	}
	return false
}

// Italic reports an italic or oblique font style.
func Italic(el *model.Element) bool {
	v := strings.ToLower(el.Property("font-style"))
	return strings.Contains(v, "italic") || strings.Contains(v, "oblique")
}

// Underline reports an underline text decoration.
func Underline(el *model.Element) bool {
	return decorationHas(el, "underline")
}

// Strikethrough reports a line-through text decoration.
func Strikethrough(el *model.Element) bool {
	return decorationHas(el, "line-through")
}

func decorationHas(el *model.Element, token string) bool {
	for _, prop := range []string{"text-decoration", "text-decoration-line"} {
		if strings.Contains(strings.ToLower(el.Property(prop)), token) {
			return true
		}
	}
	return false
}

// Color returns the resolved text color as RGB hex, defaulting to black.
func Color(el *model.Element) string {
	if hex, ok := ParseColor(el.Property("color")); ok {
		return hex
	}
	return "000000"
}

// Align returns the normalized text alignment: left, center, right or
// justify.
func Align(el *model.Element) string {
	v := strings.ToLower(el.Property("text-align"))
	switch {
	case strings.Contains(v, "center"):
		return "center"
	case strings.Contains(v, "right"):
		return "right"
	case strings.Contains(v, "justify"):
		return "justify"
	default:
		return "left"
	}
}

// Uppercase reports text-transform: uppercase.
func Uppercase(el *model.Element) bool {
	return strings.Contains(strings.ToLower(el.Property("text-transform")), "uppercase")
}

// Background returns the element's background color as RGB hex; ok is
// false for transparent or unset backgrounds.
func Background(el *model.Element) (string, bool) {
	if hex, ok := ParseColor(el.Property("background-color")); ok {
		return hex, true
	}
	// The background shorthand may carry the color among other tokens.
	for _, token := range strings.Fields(el.Property("background")) {
		if hex, ok := ParseColor(token); ok {
			return hex, true
		}
	}
	return "", false
}

// Border returns the element's border width in px and color hex; ok is
// false when no visible border is set.
func Border(el *model.Element) (width float64, color string, ok bool) {
	width, style, color := borderParts(el)
	if style == "none" || style == "hidden" || width <= 0 {
		return 0, "", false
	}
	if color == "" {
		color = Color(el)
	}
	return width, color, true
}

func borderParts(el *model.Element) (width float64, style, color string) {
	// Shorthand first.
	for _, token := range strings.Fields(el.Property("border")) {
		lower := strings.ToLower(token)
		switch lower {
		case "solid", "dashed", "dotted", "double", "none", "hidden":
			style = lower
			continue
		}
		if w, ok := ParseLength(token, FontSizePx(el)); ok {
			width = w
			continue
		}
		if hex, ok := ParseColor(token); ok {
			color = hex
		}
	}
	// Longhands override.
	if v := el.Property("border-width"); v != "" {
		if w, ok := ParseLength(v, FontSizePx(el)); ok {
			width = w
		}
	}
	if v := strings.ToLower(el.Property("border-style")); v != "" {
		style = v
	}
	if v := el.Property("border-color"); v != "" {
		if hex, ok := ParseColor(v); ok {
			color = hex
		}
	}
	if width == 0 && style != "" && style != "none" && style != "hidden" {
		width = 3 // CSS "medium" default
	}
	return width, style, color
}

// Hidden reports whether the element is invisible and should produce no
// shape: display:none, visibility:hidden, or zero opacity.
func Hidden(el *model.Element) bool {
	if strings.Contains(strings.ToLower(el.Property("display")), "none") {
		return true
	}
	if strings.Contains(strings.ToLower(el.Property("visibility")), "hidden") {
		return true
	}
	if op := el.Property("opacity"); op != "" {
		if n, err := strconv.ParseFloat(strings.TrimSpace(op), 64); err == nil && n == 0 {
			return true
		}
	}
	return false
}
