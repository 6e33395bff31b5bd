package style

import "strings"

// DefaultFontFamily is used when no entry in the font map matches.
const DefaultFontFamily = "Calibri"

// fontMap maps lowercase web font family names to PowerPoint-compatible
// family names. Loaded once, immutable.
var fontMap = map[string]string{
	"arial":           "Arial",
	"arial black":     "Arial Black",
	"helvetica":       "Helvetica",
	"helvetica neue":  "Helvetica Neue",
	"times":           "Times New Roman",
	"times new roman": "Times New Roman",
	"georgia":         "Georgia",
	"garamond":        "Garamond",
	"palatino":        "Palatino Linotype",
	"book antiqua":    "Book Antiqua",
	"courier":         "Courier New",
	"courier new":     "Courier New",
	"consolas":        "Consolas",
	"monaco":          "Monaco",
	"lucida console":  "Lucida Console",
	"verdana":         "Verdana",
	"tahoma":          "Tahoma",
	"trebuchet ms":    "Trebuchet MS",
	"segoe ui":        "Segoe UI",
	"calibri":         "Calibri",
	"cambria":         "Cambria",
	"candara":         "Candara",
	"impact":          "Impact",
	"comic sans ms":   "Comic Sans MS",
	"roboto":          "Roboto",
	"open sans":       "Open Sans",
	"lato":            "Lato",
	"montserrat":      "Montserrat",
	"source sans pro": "Source Sans Pro",
	"raleway":         "Raleway",
	"poppins":         "Poppins",
	"oswald":          "Oswald",
	"ubuntu":          "Ubuntu",

	// CSS generic families.
	"serif":      "Times New Roman",
	"sans-serif": "Calibri",
	"monospace":  "Courier New",
	"cursive":    "Comic Sans MS",
	"fantasy":    "Impact",
}

// ResolveFontFamily maps a CSS font-family value to a PowerPoint family
// name. The value may be a comma-separated fallback list; the first
// candidate found in the font map wins. Unmapped values fall back to
// DefaultFontFamily.
func ResolveFontFamily(value string) string {
	for _, candidate := range strings.Split(value, ",") {
		name := strings.ToLower(strings.TrimSpace(candidate))
		name = strings.Trim(name, `"'`)
		if name == "" {
			continue
		}
		if mapped, ok := fontMap[name]; ok {
			return mapped
		}
	}
	return DefaultFontFamily
}
