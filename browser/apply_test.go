package browser

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/htmldeck/htmldeck/htmldoc"
	"github.com/htmldeck/htmldeck/model"
)

func parseDoc(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return root
}

func findTag(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestNodePath(t *testing.T) {
	root := parseDoc(t, `<html><head></head><body>
		<div><p>first</p><p>second<span>inner</span></p></div>
	</body></html>`)

	tests := []struct {
		tag  string
		want string
	}{
		{"html", "0"},
		{"head", "0/0"},
		{"body", "0/1"},
		{"div", "0/1/0"},
		{"span", "0/1/0/1/0"},
	}
	for _, tt := range tests {
		n := findTag(root, tt.tag)
		if n == nil {
			t.Fatalf("tag %s not found", tt.tag)
		}
		if got := NodePath(n); got != tt.want {
			t.Errorf("NodePath(%s) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestNodePathSkipsTextSiblings(t *testing.T) {
	// Text nodes between elements must not shift the element index.
	root := parseDoc(t, `<html><body>leading text<p>a</p>middle<p>b</p></body></html>`)

	var second *html.Node
	for c := findTag(root, "body").FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "p" {
			second = c
		}
	}
	if second == nil {
		t.Fatal("no p elements found")
	}
	if got := NodePath(second); got != "0/1/1" {
		t.Errorf("nodePath = %q, want 0/1/1", got)
	}
}

func TestApply(t *testing.T) {
	doc, err := htmldoc.OpenReader(strings.NewReader(`<html><body>
		<div class="slide"><p>hello</p></div>
	</body></html>`))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}

	var para *model.Element
	doc.Root.Walk(func(el *model.Element) bool {
		if el.Tag == "p" {
			para = el
		}
		return true
	})
	if para == nil {
		t.Fatal("no p element in parsed document")
	}

	metrics := map[string]Metrics{
		NodePath(para.Node): {
			X: 12, Y: 34, W: 560, H: 42,
			Style: map[string]string{
				"font-size":        "24px",
				"border-top-width": "2px",
				"color":            "",
			},
		},
	}
	Apply(doc, metrics)

	if para.Box != model.NewBBox(12, 34, 560, 42) {
		t.Errorf("box = %+v, want measured geometry", para.Box)
	}
	if got := para.Style["font-size"]; got != "24px" {
		t.Errorf("font-size = %q, want 24px", got)
	}
	if got := para.Style["border-width"]; got != "2px" {
		t.Errorf("border-width = %q, want renamed longhand value", got)
	}
	if _, ok := para.Style["border-top-width"]; ok {
		t.Error("browser longhand name should not leak into the style map")
	}
	if _, ok := para.Style["color"]; ok {
		t.Error("empty computed values must not overwrite resolved style")
	}
}

func TestApplyTranslatesSlideOrigins(t *testing.T) {
	// Slides render stacked in the viewport: the second slide's
	// measured boxes start at y=720, and even the first is offset by
	// the body margin. Shapes are placed slide-locally, so Apply must
	// subtract each slide root's origin from its subtree.
	doc, err := htmldoc.OpenReader(strings.NewReader(`<html><body>
		<div class="slide"><p>one</p></div>
		<div class="slide"><p>two</p></div>
	</body></html>`))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	if len(doc.Slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(doc.Slides))
	}

	metrics := map[string]Metrics{
		"0/1/0":   {X: 8, Y: 8, W: 1264, H: 704},    // first slide, body margin
		"0/1/0/0": {X: 18, Y: 18, W: 560, H: 30},    // its paragraph
		"0/1/1":   {X: 0, Y: 720, W: 1280, H: 720},  // second slide, below the first
		"0/1/1/0": {X: 64, Y: 750, W: 560, H: 30},   // its paragraph
	}
	Apply(doc, metrics)

	first, second := doc.Slides[0], doc.Slides[1]
	if first.Box != model.NewBBox(0, 0, 1264, 704) {
		t.Errorf("first slide box = %+v, want origin at 0,0", first.Box)
	}
	if got := first.Children[0].Box; got != model.NewBBox(10, 10, 560, 30) {
		t.Errorf("first paragraph box = %+v, want (10,10,560,30)", got)
	}
	if second.Box != model.NewBBox(0, 0, 1280, 720) {
		t.Errorf("second slide box = %+v, want origin at 0,0", second.Box)
	}
	if got := second.Children[0].Box; got != model.NewBBox(64, 30, 560, 30) {
		t.Errorf("second paragraph box = %+v, want (64,30,560,30)", got)
	}
}
