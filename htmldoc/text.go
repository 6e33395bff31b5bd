package htmldoc

import (
	"strings"

	"github.com/htmldeck/htmldeck/model"
)

// TextRun is one flattened run of text together with the leaf element
// that carries its styling.
type TextRun struct {
	Text   string
	Source *model.Element
}

// CollectRuns flattens a text-bearing element and its descendants into
// runs, depth-first and left-to-right, one run per leaf. Nested
// block-level elements are not laid out separately: they contribute runs
// to the ancestor that was classified as text, which avoids duplicate
// shapes.
func CollectRuns(el *model.Element) []TextRun {
	var runs []TextRun
	collectRuns(el, &runs)
	return runs
}

func collectRuns(el *model.Element, runs *[]TextRun) {
	if el.Text != "" {
		*runs = append(*runs, TextRun{Text: el.Text, Source: el})
	}
	for _, c := range el.Children {
		collectRuns(c, runs)
	}
}

// FlattenText aggregates an element's own text and its descendants' text
// in reading order, inserting a separator between sibling runs.
func FlattenText(el *model.Element, sep string) string {
	runs := CollectRuns(el)
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		parts = append(parts, r.Text)
	}
	return strings.TrimSpace(strings.Join(parts, sep))
}
