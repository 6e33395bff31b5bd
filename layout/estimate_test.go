package layout

import (
	"strings"
	"testing"

	"github.com/htmldeck/htmldeck/htmldoc"
	"github.com/htmldeck/htmldeck/model"
	"github.com/htmldeck/htmldeck/style"
)

func estimateDoc(t *testing.T, src string) *model.Document {
	t.Helper()
	doc, err := htmldoc.OpenReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parsing test document: %v", err)
	}
	style.NewResolver(doc.Stylesheets).Resolve(doc.Root)
	for _, slide := range doc.Slides {
		Estimate(slide)
	}
	return doc
}

func findTag(root *model.Element, tag string) *model.Element {
	var found *model.Element
	root.Walk(func(el *model.Element) bool {
		if found == nil && el.Tag == tag {
			found = el
		}
		return found == nil
	})
	return found
}

func TestEstimateAbsolutePosition(t *testing.T) {
	doc := estimateDoc(t, `<html><body>
		<div style="position: absolute; left: 10px; top: 10px; width: 100px; height: 30px">pinned</div>
	</body></html>`)

	div := findTag(doc.Root, "div")
	want := model.NewBBox(10, 10, 100, 30)
	if div.Box != want {
		t.Errorf("absolute box = %+v, want %+v", div.Box, want)
	}
}

func TestEstimateFlowStacksVertically(t *testing.T) {
	doc := estimateDoc(t, `<html><body>
		<p style="height: 40px">first</p>
		<p style="height: 40px">second</p>
	</body></html>`)

	var ps []*model.Element
	doc.Root.Walk(func(el *model.Element) bool {
		if el.Tag == "p" {
			ps = append(ps, el)
		}
		return true
	})
	if len(ps) != 2 {
		t.Fatalf("found %d paragraphs, want 2", len(ps))
	}
	if ps[0].Box.Y >= ps[1].Box.Y {
		t.Errorf("flow order broken: first at y=%v, second at y=%v", ps[0].Box.Y, ps[1].Box.Y)
	}
	if ps[1].Box.Y < ps[0].Box.Bottom() {
		t.Errorf("second paragraph (y=%v) overlaps first (bottom=%v)", ps[1].Box.Y, ps[0].Box.Bottom())
	}
}

func TestEstimateHiddenConsumesNoSpace(t *testing.T) {
	doc := estimateDoc(t, `<html><body>
		<p style="display: none">gone</p>
		<p>shown</p>
	</body></html>`)

	var shown *model.Element
	doc.Root.Walk(func(el *model.Element) bool {
		if el.Tag == "p" && el.Text == "shown" {
			shown = el
		}
		return true
	})
	if shown == nil {
		t.Fatal("visible paragraph not found")
	}
	if shown.Box.Y != 0 {
		t.Errorf("visible paragraph y = %v, want 0 (hidden sibling consumes no space)", shown.Box.Y)
	}
}

func TestEstimateTextHeightGrowsWithContent(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 30)
	doc := estimateDoc(t, `<html><body>
		<p id="short">one line</p>
		<p id="long">`+long+`</p>
	</body></html>`)

	var short, longer *model.Element
	doc.Root.Walk(func(el *model.Element) bool {
		switch el.ID {
		case "short":
			short = el
		case "long":
			longer = el
		}
		return true
	})
	if short == nil || longer == nil {
		t.Fatal("test paragraphs not found")
	}
	if longer.Box.Height <= short.Box.Height {
		t.Errorf("long text height %v should exceed short text height %v",
			longer.Box.Height, short.Box.Height)
	}
}

func TestImageSize(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		maxW  float64
		wantW float64
		wantH float64
	}{
		{"explicit attrs", map[string]string{"width": "200", "height": "100"}, 0, 200, 100},
		{"no size defaults", nil, 0, 320, 240},
		{"scaled to fit", map[string]string{"width": "800", "height": "400"}, 400, 400, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := &model.Element{Tag: "img", Attr: tt.attrs}
			if el.Attr == nil {
				el.Attr = map[string]string{}
			}
			w, h := ImageSize(el, tt.maxW)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ImageSize = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
