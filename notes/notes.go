// Package notes turns slide source markup into speaker notes. The
// markup is sanitized, converted to Markdown and attached to the slide
// so the full text content survives even where the layout heuristics
// dropped an element.
package notes

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// Generator converts slide HTML fragments into Markdown notes.
type Generator struct {
	policy *bluemonday.Policy
	conv   *converter.Converter
}

// NewGenerator builds a Generator with a UGC sanitization policy and a
// CommonMark converter.
func NewGenerator() *Generator {
	return &Generator{
		policy: bluemonday.UGCPolicy(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// FromHTML sanitizes the fragment and renders it as Markdown. Empty or
// whitespace-only input yields an empty string.
func (g *Generator) FromHTML(fragment string) (string, error) {
	clean := g.policy.Sanitize(fragment)
	if strings.TrimSpace(clean) == "" {
		return "", nil
	}
	md, err := g.conv.ConvertString(clean)
	if err != nil {
		return "", fmt.Errorf("converting notes to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}
