// Package htmldoc parses HTML documents into the element tree the
// conversion pipeline works on.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/htmldeck/htmldeck/model"
)

// Open opens and parses an HTML file. The file's directory becomes the
// base for resolving relative image sources.
func Open(filename string) (*model.Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	doc, err := OpenReader(f)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(filename); err == nil {
		doc.BaseDir = filepath.Dir(abs)
	}
	return doc, nil
}

// OpenReader parses HTML from an io.Reader, sniffing the character
// encoding from the content.
func OpenReader(r io.Reader) (*model.Document, error) {
	decoded, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	root, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := &model.Document{
		Meta: make(map[string]string),
	}
	extractHead(root, doc)

	body := findElement(root, "body")
	if body == nil {
		// Fragment input: build from the document root.
		body = root
	}
	doc.Root = buildTree(body, nil)
	if doc.Root == nil {
		return nil, fmt.Errorf("parsing HTML: no content")
	}

	doc.Slides = findSlides(doc.Root)
	return doc, nil
}

// extractHead pulls the title, meta tags, and stylesheet text out of the
// document. <style> blocks anywhere in the document are collected, in
// order, since fragments often carry them in the body.
func extractHead(n *html.Node, doc *model.Document) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if doc.Title == "" {
				doc.Title = strings.TrimSpace(rawText(n))
			}
		case "meta":
			name, content := "", ""
			for _, attr := range n.Attr {
				switch attr.Key {
				case "name", "property":
					name = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if name != "" && content != "" {
				doc.Meta[name] = content
			}
		case "style":
			if text := rawText(n); strings.TrimSpace(text) != "" {
				doc.Stylesheets = append(doc.Stylesheets, text)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractHead(c, doc)
	}
}

// buildTree converts a parse-tree node into an Element. Non-content
// elements are dropped; direct text children collapse onto the element.
func buildTree(n *html.Node, parent *model.Element) *model.Element {
	el := &model.Element{
		Node:   n,
		Tag:    n.Data,
		Attr:   make(map[string]string, len(n.Attr)),
		Parent: parent,
	}
	if n.Type != html.ElementNode {
		el.Tag = ""
	}
	for _, attr := range n.Attr {
		el.Attr[attr.Key] = attr.Val
		switch attr.Key {
		case "id":
			el.ID = attr.Val
		case "class":
			el.Classes = strings.Fields(attr.Val)
		}
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			if shouldSkipElement(c.Data) {
				continue
			}
			if c.Data == "br" {
				text.WriteString("\n")
				continue
			}
			if child := buildTree(c, el); child != nil {
				el.Children = append(el.Children, child)
			}
		}
	}
	el.Text = collapseSpace(text.String())
	return el
}

// shouldSkipElement returns true for elements that never contribute
// content. svg stays in the tree: it classifies as an image.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "math", "iframe", "object", "embed", "head", "title", "meta", "link", "base":
		return true
	}
	return false
}

// findSlides returns the outermost elements carrying the "slide" class,
// in document order. When none exist the whole body is one slide.
func findSlides(root *model.Element) []*model.Element {
	var slides []*model.Element
	root.Walk(func(el *model.Element) bool {
		if el.HasClass("slide") {
			slides = append(slides, el)
			return false // nested .slide stays inside its outer slide
		}
		return true
	})
	if len(slides) == 0 {
		slides = []*model.Element{root}
	}
	return slides
}

// findElement finds the first parse-tree element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// rawText extracts the raw text under a parse-tree node.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// collapseSpace trims and collapses runs of whitespace to single spaces,
// preserving explicit newlines from <br>.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteRune('\n')
			space = false
		case ' ', '\t', '\r', '\f', '\v':
			space = true
		default:
			if space && b.Len() > 0 {
				b.WriteRune(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), " \n")
}
