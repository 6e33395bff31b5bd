// Package style resolves each parsed element's effective CSS properties:
// stylesheet rules cascaded by selector specificity, then the inline style
// attribute, then inheritance. Absent properties map to defined defaults;
// resolution never fails.
package style

import (
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"

	"github.com/htmldeck/htmldeck/model"
)

// inherited lists the properties copied from parent to child when the
// child leaves them unset. text-decoration is not inherited in CSS, but
// flattened text runs need the enclosing anchor's underline, so it rides
// along here.
var inherited = []string{
	"color",
	"font-family",
	"font-size",
	"font-style",
	"font-weight",
	"line-height",
	"list-style-type",
	"text-align",
	"text-decoration",
	"text-transform",
	"visibility",
}

// uaDefaults approximates the browser default stylesheet for the tags the
// converter styles. Applied below all author rules.
var uaDefaults = map[string]map[string]string{
	"h1":     {"font-size": "2em", "font-weight": "bold"},
	"h2":     {"font-size": "1.5em", "font-weight": "bold"},
	"h3":     {"font-size": "1.17em", "font-weight": "bold"},
	"h4":     {"font-weight": "bold"},
	"h5":     {"font-size": "0.83em", "font-weight": "bold"},
	"h6":     {"font-size": "0.67em", "font-weight": "bold"},
	"b":      {"font-weight": "bold"},
	"strong": {"font-weight": "bold"},
	"th":     {"font-weight": "bold"},
	"i":      {"font-style": "italic"},
	"em":     {"font-style": "italic"},
	"u":      {"text-decoration": "underline"},
	"ins":    {"text-decoration": "underline"},
	"s":      {"text-decoration": "line-through"},
	"strike": {"text-decoration": "line-through"},
	"del":    {"text-decoration": "line-through"},
	"a":      {"color": "#0000EE", "text-decoration": "underline"},
	"pre":    {"font-family": "monospace"},
	"code":   {"font-family": "monospace"},
	"center": {"text-align": "center"},
}

// sheetRule is one stylesheet rule compiled for matching.
type sheetRule struct {
	sel   cascadia.Sel
	spec  cascadia.Specificity
	order int
	decls []*css.Declaration
}

// Resolver applies stylesheet and inline CSS to an element tree.
type Resolver struct {
	rules []sheetRule
}

// NewResolver compiles the document's <style> blocks. Unparseable sheets
// and unsupported selectors are skipped; missing styles are never an
// error.
func NewResolver(stylesheets []string) *Resolver {
	r := &Resolver{}
	order := 0
	for _, sheet := range stylesheets {
		parsed, err := parser.Parse(sheet)
		if err != nil {
			continue
		}
		for _, rule := range parsed.Rules {
			if rule.Kind != css.QualifiedRule {
				continue
			}
			for _, selector := range rule.Selectors {
				sel, err := cascadia.Parse(selector)
				if err != nil {
					continue
				}
				r.rules = append(r.rules, sheetRule{
					sel:   sel,
					spec:  sel.Specificity(),
					order: order,
					decls: rule.Declarations,
				})
				order++
			}
		}
	}
	return r
}

// Resolve computes the effective style of every element under root,
// top-down so inherited and em-relative values see the parent's computed
// result first.
func (r *Resolver) Resolve(root *model.Element) {
	r.resolveElement(root)
	root.Walk(func(el *model.Element) bool {
		if el != root {
			r.resolveElement(el)
		}
		return true
	})
}

func (r *Resolver) resolveElement(el *model.Element) {
	props := make(map[string]string)

	// Browser defaults, below everything else.
	for k, v := range uaDefaults[el.Tag] {
		props[k] = v
	}

	// Stylesheet rules in specificity order, document order on ties.
	matched := make([]sheetRule, 0, 4)
	for _, rule := range r.rules {
		if el.Node != nil && rule.sel.Match(el.Node) {
			matched = append(matched, rule)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].spec == matched[j].spec {
			return matched[i].order < matched[j].order
		}
		return matched[i].spec.Less(matched[j].spec)
	})
	for _, rule := range matched {
		applyDeclarations(props, rule.decls)
	}

	// Inline style attribute wins over the sheet.
	if inline := el.GetAttr("style"); inline != "" {
		if decls, err := parser.ParseDeclarations(inline); err == nil {
			applyDeclarations(props, decls)
		}
	}

	// Inheritance for unset properties.
	if el.Parent != nil && el.Parent.Style != nil {
		for _, name := range inherited {
			if _, ok := props[name]; !ok {
				if v, ok := el.Parent.Style[name]; ok {
					props[name] = v
				}
			}
		}
	}

	// Normalize font-size to computed pixels so descendants can resolve
	// their own em values against it.
	parentSize := 16.0
	if el.Parent != nil {
		parentSize = FontSizePx(el.Parent)
	}
	if v, ok := props["font-size"]; ok {
		if px, ok := parseFontSize(v, parentSize); ok {
			props["font-size"] = strconv.FormatFloat(px, 'f', -1, 64) + "px"
		} else {
			delete(props, "font-size")
		}
	}

	el.Style = props
}

func applyDeclarations(props map[string]string, decls []*css.Declaration) {
	for _, d := range decls {
		name := strings.ToLower(strings.TrimSpace(d.Property))
		if name == "" {
			continue
		}
		props[name] = strings.TrimSpace(d.Value)
	}
}

// parseFontSize handles lengths plus the % and keyword forms that only
// make sense for font-size.
func parseFontSize(value string, parentPx float64) (float64, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if strings.HasSuffix(v, "%") {
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0, false
		}
		return parentPx * n / 100, true
	}
	switch v {
	case "xx-small":
		return 16.0 * 3 / 5, true
	case "x-small":
		return 16.0 * 3 / 4, true
	case "small":
		return 16.0 * 8 / 9, true
	case "medium":
		return 16.0, true
	case "large":
		return 16.0 * 6 / 5, true
	case "x-large":
		return 16.0 * 3 / 2, true
	case "xx-large":
		return 16.0 * 2, true
	case "smaller":
		return parentPx / 1.2, true
	case "larger":
		return parentPx * 1.2, true
	}
	return ParseLength(v, parentPx)
}
