package model

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is one node of the parsed HTML document tree. It is built once
// during parsing, annotated by the style resolver and layout mapper, and
// read-only afterward.
type Element struct {
	// Node is the underlying parse-tree node. Selector matching operates
	// on it; it stays linked to its document so ancestor queries work.
	Node *html.Node

	Tag     string
	ID      string
	Classes []string
	Attr    map[string]string

	// Style holds the element's resolved CSS properties after cascading
	// (stylesheet rules by specificity, then the inline style attribute)
	// and inheritance. Keys are lowercase property names.
	Style map[string]string

	// Box is the element's bounding box in CSS pixels, either measured by
	// the browser backend or estimated by the static layout pass.
	Box BBox

	// Text is the concatenation of the element's direct text children,
	// whitespace-collapsed. Descendant text lives on the descendants.
	Text string

	Parent   *Element
	Children []*Element
}

// GetAttr returns the value of an attribute, or "" when absent.
func (e *Element) GetAttr(name string) string {
	if e.Attr == nil {
		return ""
	}
	return e.Attr[name]
}

// HasClass reports whether the element carries the given class.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes {
		if c == name {
			return true
		}
	}
	return false
}

// Property returns a resolved CSS property value, or "" when unset.
func (e *Element) Property(name string) string {
	if e.Style == nil {
		return ""
	}
	return e.Style[strings.ToLower(name)]
}

// LinkTarget returns the href of the nearest enclosing anchor, including
// the element itself, or "" when the element is not inside a link. It is
// applied uniformly whether link text is a direct child of the anchor or
// nested several levels below it.
func (e *Element) LinkTarget() string {
	for el := e; el != nil; el = el.Parent {
		if el.Tag == "a" {
			if href := el.GetAttr("href"); href != "" {
				return href
			}
		}
	}
	return ""
}

// Walk visits the element and all descendants depth-first in document
// order. Returning false from fn prunes the subtree below that element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Document is the parsed, style-resolved representation of one input
// HTML file.
type Document struct {
	Title string
	Meta  map[string]string

	// Root is the body element (or the document root when no body exists).
	Root *Element

	// Slides holds the elements that map to output slides: every element
	// matching the slide selector, or just Root when none match.
	Slides []*Element

	// Stylesheets holds the raw text of all <style> blocks in document
	// order, consumed by the style resolver.
	Stylesheets []string

	// BaseDir is the directory of the input file, used to resolve
	// relative image sources.
	BaseDir string
}
