package htmldeck

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/htmldeck/htmldeck/browser"
	"github.com/htmldeck/htmldeck/classify"
	"github.com/htmldeck/htmldeck/format"
	"github.com/htmldeck/htmldeck/htmldoc"
	"github.com/htmldeck/htmldeck/imaging"
	"github.com/htmldeck/htmldeck/layout"
	"github.com/htmldeck/htmldeck/model"
	"github.com/htmldeck/htmldeck/notes"
	"github.com/htmldeck/htmldeck/ocr"
	"github.com/htmldeck/htmldeck/pptx"
	"github.com/htmldeck/htmldeck/style"
)

// accentFill is the rectangle fill used for decorative containers that
// declare no background of their own.
const accentFill = "F3F4F6"

// Deck converts the input and returns the in-memory presentation. Most
// callers want Save instead; Deck is the hook for inspecting or
// post-processing shapes before writing.
func (c *Converter) Deck(ctx context.Context) (*pptx.Deck, []Warning, error) {
	e := &emitter{opts: c.options, logger: c.log()}

	doc, err := c.load()
	if err != nil {
		return nil, nil, err
	}

	style.NewResolver(doc.Stylesheets).Resolve(doc.Root)

	cleanup := e.layout(ctx, c, doc)
	defer cleanup()
	e.classifier = classify.New(doc.Root.Node)

	if c.options.notes {
		e.notesGen = notes.NewGenerator()
	}
	if c.options.ocrAltText {
		client, err := ocr.New()
		if err != nil {
			e.warn("ocr", nil, err.Error())
		} else {
			e.ocrClient = client
			defer client.Close()
		}
	}

	deck := &pptx.Deck{Title: doc.Title, Author: c.options.author}
	e.deck = deck
	e.baseDir = doc.BaseDir

	for i, slideEl := range doc.Slides {
		e.emitSlide(ctx, deck.AddSlide(), slideEl, i+1)
	}

	e.logger.Info("conversion complete",
		"slides", len(deck.Slides), "warnings", len(e.warnings))
	return deck, e.warnings, nil
}

func (c *Converter) load() (*model.Document, error) {
	if c.reader != nil {
		return htmldoc.OpenReader(c.reader)
	}
	if f := format.Detect(c.filename); f != format.HTML {
		return nil, fmt.Errorf("unsupported input %q: expected an .html or .htm file", c.filename)
	}
	return htmldoc.Open(c.filename)
}

// emitter walks the classified element tree of each slide and produces
// pptx shapes.
type emitter struct {
	opts       ConvertOptions
	logger     *slog.Logger
	classifier *classify.Classifier
	notesGen   *notes.Generator
	ocrClient  *ocr.Client
	deck       *pptx.Deck
	baseDir    string

	// page is the rendered document when the browser backend is live;
	// it stays open through emission for element screenshots.
	page *browser.Page

	// imageCache dedupes fetch+optimize per source reference.
	imageCache map[string]*imaging.Optimized

	warnings []Warning
}

// layout assigns bounding boxes: measured by the browser backend when
// requested and available, the static flow estimate otherwise. The
// returned cleanup closes the browser resources and must run after
// emission, since e.page is still used for element screenshots.
func (e *emitter) layout(ctx context.Context, c *Converter, doc *model.Document) func() {
	if c.options.useBrowser && c.filename != "" {
		if cleanup, ok := e.browserLayout(ctx, c, doc); ok {
			return cleanup
		}
	} else if c.options.useBrowser {
		e.warn("layout", nil, "browser layout needs a file input, using static layout")
	}

	for _, slide := range doc.Slides {
		layout.Estimate(slide)
	}
	return func() {}
}

func (e *emitter) browserLayout(ctx context.Context, c *Converter, doc *model.Document) (func(), bool) {
	backend, err := browser.New(c.log(), layout.CanvasWidthPx, layout.CanvasHeightPx)
	if err != nil {
		e.warn("layout", nil, "browser unavailable, using static layout: "+err.Error())
		return nil, false
	}

	page, err := backend.Open(ctx, c.filename)
	if err != nil {
		backend.Close()
		e.warn("layout", nil, "browser render failed, using static layout: "+err.Error())
		return nil, false
	}

	metrics, err := page.Snapshot(ctx)
	if err != nil {
		page.Close()
		backend.Close()
		e.warn("layout", nil, "browser snapshot failed, using static layout: "+err.Error())
		return nil, false
	}

	browser.Apply(doc, metrics)
	e.page = page
	return func() {
		page.Close()
		backend.Close()
	}, true
}

func (e *emitter) emitSlide(ctx context.Context, slide *pptx.Slide, slideEl *model.Element, num int) {
	if bg, ok := style.Background(slideEl); ok {
		slide.Background = bg
	}

	if e.opts.screenshots && e.emitSlideScreenshot(ctx, slide, slideEl) {
		if e.notesGen != nil {
			e.emitNotes(slide, slideEl, num)
		}
		return
	}

	for _, child := range slideEl.Children {
		e.emitElement(ctx, slide, child)
	}

	if e.notesGen != nil {
		e.emitNotes(slide, slideEl, num)
	}
}

// emitSlideScreenshot renders the whole slide as a single canvas-sized
// picture. Falls back to shape emission (returning false) when the
// browser is unavailable or the capture fails.
func (e *emitter) emitSlideScreenshot(ctx context.Context, slide *pptx.Slide, slideEl *model.Element) bool {
	if e.page == nil {
		e.warn("screenshot", slideEl, "browser unavailable, emitting shapes")
		return false
	}
	data, err := e.page.ScreenshotElement(ctx, browser.NodePath(slideEl.Node))
	if err != nil {
		e.warn("screenshot", slideEl, err.Error())
		return false
	}
	slide.Add(&pptx.Picture{
		Frame: pptx.Frame{
			CX: layout.ToEMU(layout.CanvasWidthPx),
			CY: layout.ToEMU(layout.CanvasHeightPx),
		},
		Name:   elementName(slideEl),
		Data:   data,
		Format: "png",
	})
	return true
}

// emitElement dispatches on the element's category. Text elements
// consume their whole subtree as runs; only image descendants are still
// emitted separately so pictures inside paragraphs survive.
func (e *emitter) emitElement(ctx context.Context, slide *pptx.Slide, el *model.Element) {
	if style.Hidden(el) {
		return
	}

	switch e.classifier.Of(el) {
	case classify.Image:
		e.emitImage(ctx, slide, el)

	case classify.Text, classify.Link:
		e.emitTextBox(slide, el)
		for _, child := range el.Children {
			e.emitNestedImages(ctx, slide, child)
		}

	default: // container
		e.emitContainerRect(slide, el)
		for _, child := range el.Children {
			e.emitElement(ctx, slide, child)
		}
	}
}

// emitNestedImages finds image elements buried inside a text subtree.
func (e *emitter) emitNestedImages(ctx context.Context, slide *pptx.Slide, el *model.Element) {
	if style.Hidden(el) {
		return
	}
	if e.classifier.Of(el) == classify.Image {
		e.emitImage(ctx, slide, el)
		return
	}
	for _, child := range el.Children {
		e.emitNestedImages(ctx, slide, child)
	}
}

// emitContainerRect draws a background rectangle for containers that
// are visually styled: a decorative class, an explicit background, or a
// border. Plain structural containers produce nothing.
func (e *emitter) emitContainerRect(slide *pptx.Slide, el *model.Element) {
	fill, hasFill := style.Background(el)
	bw, bc, hasBorder := style.Border(el)
	decorative := e.classifier.Decorative(el)

	if !hasFill && !hasBorder && !decorative {
		return
	}
	if decorative && !hasFill {
		fill = accentFill
	}

	x, y, cx, cy := layout.MapBox(el.Box)
	if cx <= 0 || cy <= 0 {
		return
	}

	rect := &pptx.Rect{
		Frame: pptx.Frame{X: x, Y: y, CX: cx, CY: cy},
		Name:  elementName(el),
		Fill:  fill,
	}
	if hasBorder {
		rect.BorderColor = bc
		rect.BorderWidth = layout.ToEMU(bw)
	}
	slide.Add(rect)
}

func (e *emitter) emitTextBox(slide *pptx.Slide, el *model.Element) {
	runs := htmldoc.CollectRuns(el)
	if len(runs) == 0 {
		return
	}

	x, y, cx, cy := layout.MapTextBox(el.Box)

	para := &pptx.Paragraph{Align: pptxAlign(style.Align(el))}
	for i, run := range runs {
		text := run.Text
		if style.Uppercase(run.Source) {
			text = strings.ToUpper(text)
		}
		if i == 0 && el.Tag == "li" && !strings.HasPrefix(text, "■") {
			text = "■ " + text
		}
		para.Runs = append(para.Runs, &pptx.Run{
			Text:      text,
			Font:      runFont(run.Source),
			Hyperlink: run.Source.LinkTarget(),
		})
	}

	box := &pptx.TextBox{
		Frame:      pptx.Frame{X: x, Y: y, CX: cx, CY: cy},
		Name:       elementName(el),
		Paragraphs: []*pptx.Paragraph{para},
	}
	if fill, ok := style.Background(el); ok {
		box.Fill = fill
	}
	if bw, bc, ok := style.Border(el); ok {
		box.BorderColor = bc
		box.BorderWidth = layout.ToEMU(bw)
	}
	slide.Add(box)
}

func runFont(el *model.Element) pptx.Font {
	return pptx.Font{
		Family:        style.FontFamily(el),
		SizePt:        style.FontSizePt(el),
		Bold:          style.Bold(el),
		Italic:        style.Italic(el),
		Underline:     style.Underline(el),
		Strikethrough: style.Strikethrough(el),
		Color:         style.Color(el),
	}
}

// emitImage embeds the element's image payload. Elements without a
// fetchable source (icon placeholders, inline svg containers) and
// payloads that fail to decode degrade to a filled rectangle so the
// slide keeps its visual structure.
func (e *emitter) emitImage(ctx context.Context, slide *pptx.Slide, el *model.Element) {
	x, y, cx, cy := layout.MapBox(el.Box)
	if cx <= 0 || cy <= 0 {
		return
	}

	src := strings.TrimSpace(el.GetAttr("src"))
	if src == "" {
		// Icon fonts, chart placeholders and inline svg carry no
		// fetchable source; with a live browser they are captured as
		// rendered, otherwise they degrade to a filled rectangle.
		if e.page != nil {
			data, err := e.page.ScreenshotElement(ctx, browser.NodePath(el.Node))
			if err == nil {
				slide.Add(&pptx.Picture{
					Frame:   pptx.Frame{X: x, Y: y, CX: cx, CY: cy},
					Name:    elementName(el),
					AltText: el.GetAttr("alt"),
					Data:    data,
					Format:  "png",
				})
				return
			}
			e.warn("image", el, "element screenshot: "+err.Error())
		}
		e.emitImagePlaceholder(slide, el, x, y, cx, cy)
		return
	}
	if !e.opts.remoteImages && (strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")) {
		e.warn("image", el, "remote image skipped")
		e.emitImagePlaceholder(slide, el, x, y, cx, cy)
		return
	}

	opt, err := e.loadImage(ctx, src)
	if err != nil {
		e.warn("image", el, err.Error())
		e.emitImagePlaceholder(slide, el, x, y, cx, cy)
		return
	}

	alt := el.GetAttr("alt")
	if alt == "" && e.ocrClient != nil {
		if text, oerr := e.ocrClient.AltText(opt.Data); oerr == nil {
			alt = text
		}
	}

	slide.Add(&pptx.Picture{
		Frame:   pptx.Frame{X: x, Y: y, CX: cx, CY: cy},
		Name:    elementName(el),
		AltText: alt,
		Data:    opt.Data,
		Format:  opt.Format,
	})
}

func (e *emitter) loadImage(ctx context.Context, src string) (*imaging.Optimized, error) {
	if cached, ok := e.imageCache[src]; ok {
		return cached, nil
	}
	data, err := imaging.Fetch(ctx, src, e.baseDir)
	if err != nil {
		return nil, err
	}
	opt, err := imaging.Optimize(data, e.opts.jpegQuality)
	if err != nil {
		return nil, err
	}
	if e.imageCache == nil {
		e.imageCache = make(map[string]*imaging.Optimized)
	}
	e.imageCache[src] = opt
	return opt, nil
}

// emitImagePlaceholder stands in for an image that produced no payload:
// a rectangle with the element's background, or the accent fill.
func (e *emitter) emitImagePlaceholder(slide *pptx.Slide, el *model.Element, x, y, cx, cy int64) {
	fill, ok := style.Background(el)
	if !ok {
		fill = accentFill
	}
	slide.Add(&pptx.Rect{
		Frame: pptx.Frame{X: x, Y: y, CX: cx, CY: cy},
		Name:  elementName(el),
		Fill:  fill,
	})
}

func (e *emitter) emitNotes(slide *pptx.Slide, slideEl *model.Element, num int) {
	var b strings.Builder
	if err := html.Render(&b, slideEl.Node); err != nil {
		e.warn("notes", slideEl, "rendering slide markup: "+err.Error())
		return
	}
	md, err := e.notesGen.FromHTML(b.String())
	if err != nil {
		e.warn("notes", slideEl, err.Error())
		return
	}
	if md != "" {
		slide.Notes = md
		e.logger.Debug("speaker notes attached", "slide", num, "chars", len(md))
	}
}

func (e *emitter) warn(stage string, el *model.Element, msg string) {
	w := Warning{Stage: stage, Message: msg}
	if el != nil {
		w.Element = elementName(el)
	}
	e.warnings = append(e.warnings, w)
	e.logger.Warn(msg, "stage", stage, "element", w.Element)
}

// pptxAlign maps CSS alignment keywords to DrawingML values. Left is
// the default and stays implicit.
func pptxAlign(align string) string {
	switch align {
	case "center":
		return "ctr"
	case "right":
		return "r"
	case "justify":
		return "just"
	default:
		return ""
	}
}

// elementName builds a short shape name from the element's tag, id and
// classes, e.g. "div#hero.card".
func elementName(el *model.Element) string {
	var b strings.Builder
	b.WriteString(el.Tag)
	if el.ID != "" {
		b.WriteString("#")
		b.WriteString(el.ID)
	}
	for _, c := range el.Classes {
		b.WriteString(".")
		b.WriteString(c)
	}
	return b.String()
}
