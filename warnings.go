package htmldeck

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal issue encountered during conversion:
// an element that could not be rendered, an image that failed to load,
// a fallback that was taken. Conversion continues past warnings.
type Warning struct {
	// Stage names the pipeline stage that produced the warning
	// ("layout", "image", "notes", ...).
	Stage string

	// Element identifies the source element when one is involved, as a
	// short tag/class description.
	Element string

	// Message is the human-readable description.
	Message string
}

func (w Warning) String() string {
	if w.Element != "" {
		return fmt.Sprintf("%s: %s: %s", w.Stage, w.Element, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}

// FormatWarnings joins warnings into a single newline-separated string
// for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "\n")
}
