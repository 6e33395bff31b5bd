package style

import (
	"strconv"
	"strings"
)

// Pixel conversion factors at the standard 96 DPI the canvas assumes.
const (
	pxPerInch       = 96.0
	pxPerPoint      = 96.0 / 72.0
	pxPerCentimeter = 96.0 / 2.54
	pxPerMillimeter = 96.0 / 25.4
)

// ParseLength converts a CSS length to pixels. Relative em/rem units are
// resolved against fontSize (the parent's computed size in px).
// Percentages and unparseable values return false.
func ParseLength(value string, fontSize float64) (float64, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || strings.HasSuffix(v, "%") || v == "auto" {
		return 0, false
	}

	unit := ""
	for _, u := range []string{"px", "pt", "em", "rem", "in", "cm", "mm"} {
		if strings.HasSuffix(v, u) {
			unit = u
			v = strings.TrimSuffix(v, u)
			break
		}
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, false
	}

	switch unit {
	case "", "px":
		return n, true
	case "pt":
		return n * pxPerPoint, true
	case "em":
		return n * fontSize, true
	case "rem":
		return n * 16.0, true
	case "in":
		return n * pxPerInch, true
	case "cm":
		return n * pxPerCentimeter, true
	case "mm":
		return n * pxPerMillimeter, true
	}
	return 0, false
}
