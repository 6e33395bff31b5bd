package classify

import (
	"strings"
	"testing"

	"github.com/htmldeck/htmldeck/htmldoc"
	"github.com/htmldeck/htmldeck/model"
)

func parseBody(t *testing.T, src string) (*Classifier, *model.Element) {
	t.Helper()
	doc, err := htmldoc.OpenReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	return New(doc.Root.Node), doc.Root
}

func find(root *model.Element, match func(*model.Element) bool) *model.Element {
	var found *model.Element
	root.Walk(func(el *model.Element) bool {
		if found == nil && match(el) {
			found = el
		}
		return found == nil
	})
	return found
}

func findTag(root *model.Element, tag string) *model.Element {
	return find(root, func(el *model.Element) bool { return el.Tag == tag })
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{Container, "container"},
		{Image, "image"},
		{Text, "text"},
		{Link, "link"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestClassifyBasicCategories(t *testing.T) {
	c, root := parseBody(t, `<html><body>
		<div id="wrap">
			<h1>Title</h1>
			<img src="x.png">
			<a href="https://example.com">site</a>
		</div>
	</body></html>`)

	if got := c.Of(findTag(root, "h1")); got != Text {
		t.Errorf("h1 category = %v, want Text", got)
	}
	if got := c.Of(findTag(root, "img")); got != Image {
		t.Errorf("img category = %v, want Image", got)
	}
	if got := c.Of(findTag(root, "a")); got != Link {
		t.Errorf("a[href] category = %v, want Link", got)
	}
	if got := c.Of(findTag(root, "div")); got != Container {
		t.Errorf("plain div category = %v, want Container", got)
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// An element matching both image and text selectors is an image;
	// a text element that is also a link stays text.
	c, root := parseBody(t, `<html><body>
		<span class="icon">*</span>
		<a href="https://example.com"><p>linked paragraph</p></a>
	</body></html>`)

	span := findTag(root, "span")
	if got := c.Of(span); got != Image {
		t.Errorf("span.icon category = %v, want Image (image beats text)", got)
	}

	p := findTag(root, "p")
	if got := c.Of(p); got != Text {
		t.Errorf("p inside anchor = %v, want Text", got)
	}
}

func TestClassifyAnchorWithoutHref(t *testing.T) {
	c, root := parseBody(t, `<html><body><a name="top"></a></body></html>`)
	if got := c.Of(findTag(root, "a")); got != Container {
		t.Errorf("a without href = %v, want Container", got)
	}
}

func TestClassifyDecorative(t *testing.T) {
	c, root := parseBody(t, `<html><body>
		<div class="card">styled</div>
		<div class="plain">unstyled</div>
	</body></html>`)

	card := find(root, func(el *model.Element) bool { return el.HasClass("card") })
	plain := find(root, func(el *model.Element) bool { return el.HasClass("plain") })

	if !c.Decorative(card) {
		t.Error("div.card should be decorative")
	}
	if c.Decorative(plain) {
		t.Error("div.plain should not be decorative")
	}
}

func TestClassifyVisualImageClasses(t *testing.T) {
	c, root := parseBody(t, `<html><body>
		<div class="viz-box"></div>
		<i class="bi bi-graph-up"></i>
	</body></html>`)

	viz := find(root, func(el *model.Element) bool { return el.HasClass("viz-box") })
	if got := c.Of(viz); got != Image {
		t.Errorf("div.viz-box category = %v, want Image", got)
	}
	icon := findTag(root, "i")
	if got := c.Of(icon); got != Image {
		t.Errorf("i.bi category = %v, want Image", got)
	}
}
