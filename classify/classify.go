// Package classify assigns each HTML element to one output category using
// CSS-selector matching against fixed, precedence-ordered lists.
package classify

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/htmldeck/htmldeck/model"
)

// Category is the output classification of an HTML element.
type Category int

const (
	// Container elements emit no shape of their own (decorative
	// containers excepted) and contribute only by recursion.
	Container Category = iota
	// Image elements become Picture shapes.
	Image
	// Text elements become TextBox shapes.
	Text
	// Link elements become TextBox shapes carrying a hyperlink.
	Link
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Image:
		return "image"
	case Text:
		return "text"
	case Link:
		return "link"
	default:
		return "container"
	}
}

// Selector lists, checked in precedence order: image beats text beats
// link; anything unmatched is a container. The class entries mirror the
// visual classes the tool was built around.
const (
	imageSelectors = "img, svg, picture, canvas, video, .viz-box, .dashboard-placeholder, .bi, .corner-icon, .fa, .icon"
	textSelectors  = "h1, h2, h3, h4, h5, h6, p, li, dt, dd, blockquote, pre, code, span, label, button, figcaption, caption, td, th, small, strong, em, b, i, u, s"
	linkSelectors  = "a[href]"

	// DecorativeSelectors matches containers that earn a filled
	// rectangle behind their children.
	DecorativeSelectors = ".box, .card, .panel, .accent-bar, .slide-section"
)

// Classifier maps elements of one document to categories.
type Classifier struct {
	categories map[*html.Node]Category
	decorative map[*html.Node]bool
}

// New classifies every element reachable from root. The root node must
// belong to a complete parsed document so selector matching sees
// ancestors.
func New(root *html.Node) *Classifier {
	c := &Classifier{
		categories: make(map[*html.Node]Category),
		decorative: make(map[*html.Node]bool),
	}

	doc := goquery.NewDocumentFromNode(root)

	// Precedence order is fixed: entries claimed by an earlier list are
	// not reassigned by a later one.
	assign := func(selectors string, cat Category) {
		doc.Find(selectors).Each(func(_ int, sel *goquery.Selection) {
			n := sel.Get(0)
			if _, taken := c.categories[n]; !taken {
				c.categories[n] = cat
			}
		})
	}
	assign(imageSelectors, Image)
	assign(textSelectors, Text)
	assign(linkSelectors, Link)

	doc.Find(DecorativeSelectors).Each(func(_ int, sel *goquery.Selection) {
		c.decorative[sel.Get(0)] = true
	})

	return c
}

// Of returns the element's category; elements outside every list are
// containers.
func (c *Classifier) Of(el *model.Element) Category {
	if cat, ok := c.categories[el.Node]; ok {
		return cat
	}
	return Container
}

// Decorative reports whether a container element matches one of the
// decorative visual classes and should emit a background rectangle.
func (c *Classifier) Decorative(el *model.Element) bool {
	return c.decorative[el.Node]
}
