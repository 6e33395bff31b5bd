package style

import (
	"regexp"
	"strconv"
	"strings"
)

var rgbNums = regexp.MustCompile(`[\d.]+`)

// namedColors covers the CSS named colors that show up in real documents.
var namedColors = map[string]string{
	"black":   "000000",
	"white":   "FFFFFF",
	"red":     "FF0000",
	"green":   "008000",
	"lime":    "00FF00",
	"blue":    "0000FF",
	"yellow":  "FFFF00",
	"orange":  "FFA500",
	"purple":  "800080",
	"gray":    "808080",
	"grey":    "808080",
	"silver":  "C0C0C0",
	"maroon":  "800000",
	"navy":    "000080",
	"teal":    "008080",
	"olive":   "808000",
	"aqua":    "00FFFF",
	"cyan":    "00FFFF",
	"fuchsia": "FF00FF",
	"magenta": "FF00FF",
}

// ParseColor converts a CSS color value to a 6-character uppercase RGB hex
// string. The second return value is false for transparent colors
// (keyword "transparent" or an rgba() with zero alpha) and for values that
// cannot be parsed.
func ParseColor(value string) (string, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || v == "transparent" || v == "none" {
		return "", false
	}

	if hex, ok := namedColors[v]; ok {
		return hex, true
	}

	if strings.HasPrefix(v, "#") {
		h := strings.TrimPrefix(v, "#")
		switch len(h) {
		case 3:
			var b strings.Builder
			for _, c := range h {
				b.WriteRune(c)
				b.WriteRune(c)
			}
			h = b.String()
		case 6:
			// Already expanded.
		default:
			return "", false
		}
		if _, err := strconv.ParseUint(h, 16, 32); err != nil {
			return "", false
		}
		return strings.ToUpper(h), true
	}

	if strings.HasPrefix(v, "rgb") {
		nums := rgbNums.FindAllString(v, -1)
		if len(nums) >= 4 {
			// rgba: zero alpha means transparent.
			if a, err := strconv.ParseFloat(nums[3], 64); err == nil && a == 0 {
				return "", false
			}
		}
		if len(nums) >= 3 {
			var comps [3]uint8
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(nums[i], 64)
				if err != nil {
					return "", false
				}
				if f < 0 {
					f = 0
				}
				if f > 255 {
					f = 255
				}
				comps[i] = uint8(f)
			}
			return strings.ToUpper(
				hexByte(comps[0]) + hexByte(comps[1]) + hexByte(comps[2])), true
		}
		// Malformed rgb(): fall back to black like the color mapping
		// tables specify for other malformed-but-present values.
		return "000000", true
	}

	return "", false
}

func hexByte(b uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}
