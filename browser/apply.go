package browser

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/htmldeck/htmldeck/model"
)

// computed style properties copied straight into the element's style
// map. Browser longhand names are normalized to the ones the style
// getters read.
var styleRenames = map[string]string{
	"border-top-width": "border-width",
	"border-top-style": "border-style",
	"border-top-color": "border-color",
}

// Apply overlays measured metrics onto the parsed document: every
// matched element gets its rendered bounding box and computed style.
// Elements the snapshot does not cover keep their resolved values.
//
// Measured boxes are viewport-absolute, but shapes are placed in
// slide-local coordinates (a second slide renders below the first, at
// y >= viewport height). Each slide subtree is therefore translated by
// the slide root's own measured origin.
func Apply(doc *model.Document, metrics map[string]Metrics) {
	doc.Root.Walk(func(el *model.Element) bool {
		m, ok := metrics[NodePath(el.Node)]
		if !ok {
			return true
		}
		el.Box = model.NewBBox(m.X, m.Y, m.W, m.H)
		if el.Style == nil {
			el.Style = make(map[string]string, len(m.Style))
		}
		for k, v := range m.Style {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if renamed, ok := styleRenames[k]; ok {
				k = renamed
			}
			el.Style[k] = v
		}
		return true
	})

	for _, slide := range doc.Slides {
		ox, oy := slide.Box.X, slide.Box.Y
		if ox == 0 && oy == 0 {
			continue
		}
		slide.Walk(func(el *model.Element) bool {
			el.Box.X -= ox
			el.Box.Y -= oy
			return true
		})
	}
}

// NodePath builds the element index path used as the snapshot key: the
// position of each ancestor among its element-node siblings, from the
// document element down ("0", "0/1", ...).
func NodePath(n *html.Node) string {
	if n == nil {
		return ""
	}
	var idx []string
	for cur := n; cur != nil && cur.Type == html.ElementNode; cur = cur.Parent {
		i := 0
		for sib := cur.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type == html.ElementNode {
				i++
			}
		}
		idx = append(idx, strconv.Itoa(i))
	}
	// Reverse: collected child-to-root.
	for l, r := 0, len(idx)-1; l < r; l, r = l+1, r-1 {
		idx[l], idx[r] = idx[r], idx[l]
	}
	return strings.Join(idx, "/")
}
