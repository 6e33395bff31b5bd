package htmldeck

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/htmldeck/htmldeck/pptx"
)

func convert(t *testing.T, markup string) (*pptx.Deck, []Warning) {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	deck, warnings, err := FromReader(strings.NewReader(markup)).
		Logger(quiet).
		Deck(context.Background())
	if err != nil {
		t.Fatalf("Deck: %v", err)
	}
	return deck, warnings
}

func textBoxes(slide *pptx.Slide) []*pptx.TextBox {
	var boxes []*pptx.TextBox
	for _, shape := range slide.Shapes {
		if tb, ok := shape.(*pptx.TextBox); ok {
			boxes = append(boxes, tb)
		}
	}
	return boxes
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.Set(0, 0, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDeckAbsolutePositionedText(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide">
			<p style="font-family:Arial;position:absolute;left:10px;top:10px;width:100px;height:30px">Hello</p>
		</div>
	</body></html>`)

	if len(deck.Slides) != 1 {
		t.Fatalf("slides = %d, want 1", len(deck.Slides))
	}
	boxes := textBoxes(deck.Slides[0])
	if len(boxes) != 1 {
		t.Fatalf("text boxes = %d, want 1", len(boxes))
	}

	tb := boxes[0]
	want := pptx.Frame{X: 10 * 9525, Y: 10 * 9525, CX: 100 * 9525, CY: 30 * 9525}
	if tb.Frame != want {
		t.Errorf("frame = %+v, want %+v", tb.Frame, want)
	}
	run := tb.Paragraphs[0].Runs[0]
	if run.Text != "Hello" {
		t.Errorf("run text = %q, want %q", run.Text, "Hello")
	}
	if run.Font.Family != "Arial" {
		t.Errorf("font family = %q, want Arial", run.Font.Family)
	}
	if run.Hyperlink != "" {
		t.Errorf("unexpected hyperlink %q", run.Hyperlink)
	}
}

func TestDeckSlideSplitting(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide"><p>one</p></div>
		<div class="slide"><p>two</p></div>
		<div class="slide"><p>three</p></div>
	</body></html>`)
	if len(deck.Slides) != 3 {
		t.Errorf("slides = %d, want 3", len(deck.Slides))
	}
}

func TestDeckBodyFallback(t *testing.T) {
	deck, _ := convert(t, `<html><body><h1>Only slide</h1></body></html>`)
	if len(deck.Slides) != 1 {
		t.Fatalf("slides = %d, want 1", len(deck.Slides))
	}
	if len(textBoxes(deck.Slides[0])) != 1 {
		t.Error("expected the heading to become a text box")
	}
}

func TestDeckSlideBackground(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide" style="background:#1a2b3c"><p>x</p></div>
	</body></html>`)
	if got := deck.Slides[0].Background; got != "1A2B3C" {
		t.Errorf("background = %q, want %q", got, "1A2B3C")
	}
}

func TestDeckHyperlinkRuns(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide">
			<p>see <a href="https://example.com/docs">the docs</a> here</p>
		</div>
	</body></html>`)

	boxes := textBoxes(deck.Slides[0])
	if len(boxes) != 1 {
		t.Fatalf("text boxes = %d, want 1", len(boxes))
	}

	var linked *pptx.Run
	for _, run := range boxes[0].Paragraphs[0].Runs {
		if run.Hyperlink != "" {
			linked = run
		}
	}
	if linked == nil {
		t.Fatal("no run carries a hyperlink")
	}
	if linked.Hyperlink != "https://example.com/docs" {
		t.Errorf("hyperlink = %q", linked.Hyperlink)
	}
	if !strings.Contains(linked.Text, "the docs") {
		t.Errorf("linked run text = %q", linked.Text)
	}
}

func TestDeckListBullets(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide">
			<ul><li>first point</li><li>second point</li></ul>
		</div>
	</body></html>`)

	boxes := textBoxes(deck.Slides[0])
	if len(boxes) != 2 {
		t.Fatalf("text boxes = %d, want 2", len(boxes))
	}
	for _, tb := range boxes {
		got := tb.Paragraphs[0].Runs[0].Text
		if !strings.HasPrefix(got, "■ ") {
			t.Errorf("list item text %q missing bullet prefix", got)
		}
	}
}

func TestDeckListBulletNotDoubled(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide">
			<ul><li>■ already bulleted</li></ul>
		</div>
	</body></html>`)

	boxes := textBoxes(deck.Slides[0])
	if len(boxes) != 1 {
		t.Fatalf("text boxes = %d, want 1", len(boxes))
	}
	if got := boxes[0].Paragraphs[0].Runs[0].Text; got != "■ already bulleted" {
		t.Errorf("run text = %q, want single bullet", got)
	}
}

func TestDeckUppercaseTransform(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide">
			<p style="text-transform:uppercase">shout this</p>
		</div>
	</body></html>`)

	boxes := textBoxes(deck.Slides[0])
	if got := boxes[0].Paragraphs[0].Runs[0].Text; got != "SHOUT THIS" {
		t.Errorf("run text = %q, want %q", got, "SHOUT THIS")
	}
}

func TestDeckFontStyling(t *testing.T) {
	deck, _ := convert(t, `<html><head><style>
		h1 { color: #ff0000; font-size: 40px; }
	</style></head><body>
		<div class="slide"><h1>Title</h1></div>
	</body></html>`)

	font := textBoxes(deck.Slides[0])[0].Paragraphs[0].Runs[0].Font
	if !font.Bold {
		t.Error("h1 run should be bold")
	}
	if font.Color != "FF0000" {
		t.Errorf("color = %q, want FF0000", font.Color)
	}
	if font.SizePt != 30 { // 40px * 0.75
		t.Errorf("size = %v pt, want 30", font.SizePt)
	}
}

func TestDeckEmbedsDataURIImage(t *testing.T) {
	deck, warnings := convert(t, `<html><body>
		<div class="slide">
			<img src="`+pngDataURI(t, 4, 4)+`" alt="a square" width="200" height="100">
		</div>
	</body></html>`)

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	var pic *pptx.Picture
	for _, shape := range deck.Slides[0].Shapes {
		if p, ok := shape.(*pptx.Picture); ok {
			pic = p
		}
	}
	if pic == nil {
		t.Fatal("no picture emitted")
	}
	if pic.Format != "png" {
		t.Errorf("format = %q, want png", pic.Format)
	}
	if pic.AltText != "a square" {
		t.Errorf("alt text = %q", pic.AltText)
	}
	if len(pic.Data) == 0 {
		t.Error("picture has no payload")
	}
}

func TestDeckBrokenImageBecomesPlaceholder(t *testing.T) {
	deck, warnings := convert(t, `<html><body>
		<div class="slide">
			<img src="does-not-exist.png" width="200" height="100">
		</div>
	</body></html>`)

	for _, shape := range deck.Slides[0].Shapes {
		if _, ok := shape.(*pptx.Picture); ok {
			t.Fatal("broken image must not produce a picture")
		}
	}
	var rect *pptx.Rect
	for _, shape := range deck.Slides[0].Shapes {
		if r, ok := shape.(*pptx.Rect); ok {
			rect = r
		}
	}
	if rect == nil {
		t.Fatal("no placeholder rectangle emitted")
	}
	if rect.Fill != accentFill {
		t.Errorf("placeholder fill = %q, want %q", rect.Fill, accentFill)
	}

	found := false
	for _, w := range warnings {
		if w.Stage == "image" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an image warning, got %v", warnings)
	}
}

func TestDeckNoRemoteImages(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	markup := `<html><body>
		<div class="slide"><img src="https://example.com/pic.png" width="100" height="100"></div>
	</body></html>`

	deck, warnings, err := FromReader(strings.NewReader(markup)).
		NoRemoteImages().
		Logger(quiet).
		Deck(context.Background())
	if err != nil {
		t.Fatalf("Deck: %v", err)
	}
	for _, shape := range deck.Slides[0].Shapes {
		if _, ok := shape.(*pptx.Picture); ok {
			t.Fatal("remote image fetched despite NoRemoteImages")
		}
	}
	found := false
	for _, w := range warnings {
		if w.Stage == "image" && strings.Contains(w.Message, "skipped") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a remote-skip warning, got %v", warnings)
	}
}

func TestDeckDecorativeContainer(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide">
			<div class="card"><p>inside</p></div>
		</div>
	</body></html>`)

	var rect *pptx.Rect
	for _, shape := range deck.Slides[0].Shapes {
		if r, ok := shape.(*pptx.Rect); ok {
			rect = r
		}
	}
	if rect == nil {
		t.Fatal("decorative container produced no rectangle")
	}
	if rect.Fill != accentFill {
		t.Errorf("fill = %q, want accent %q", rect.Fill, accentFill)
	}
	if len(textBoxes(deck.Slides[0])) != 1 {
		t.Error("card content should still become a text box")
	}
}

func TestDeckHiddenElementsSkipped(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide">
			<p>visible</p>
			<p style="display:none">invisible</p>
		</div>
	</body></html>`)

	boxes := textBoxes(deck.Slides[0])
	if len(boxes) != 1 {
		t.Fatalf("text boxes = %d, want 1", len(boxes))
	}
	if got := boxes[0].Paragraphs[0].Runs[0].Text; got != "visible" {
		t.Errorf("run text = %q", got)
	}
}

func TestDeckNestedImageInsideText(t *testing.T) {
	deck, _ := convert(t, `<html><body>
		<div class="slide">
			<p>logo: <img src="`+pngDataURI(t, 2, 2)+`" width="50" height="50"></p>
		</div>
	</body></html>`)

	slide := deck.Slides[0]
	if len(textBoxes(slide)) != 1 {
		t.Error("paragraph should produce a text box")
	}
	found := false
	for _, shape := range slide.Shapes {
		if _, ok := shape.(*pptx.Picture); ok {
			found = true
		}
	}
	if !found {
		t.Error("image nested in a paragraph should still be emitted")
	}
}

func TestDeckScreenshotsFallBackToShapes(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	markup := `<html><body>
		<div class="slide"><p>content</p></div>
	</body></html>`

	deck, warnings, err := FromReader(strings.NewReader(markup)).
		Screenshots().
		Logger(quiet).
		Deck(context.Background())
	if err != nil {
		t.Fatalf("Deck: %v", err)
	}

	// Reader input cannot be rendered, so the slide degrades to shapes.
	if len(textBoxes(deck.Slides[0])) != 1 {
		t.Error("expected shape emission fallback")
	}
	found := false
	for _, w := range warnings {
		if w.Stage == "screenshot" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a screenshot warning, got %v", warnings)
	}
}

func TestDeckNotes(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	markup := `<html><body>
		<div class="slide"><h1>Quarterly Review</h1><p>Revenue grew.</p></div>
	</body></html>`

	deck, _, err := FromReader(strings.NewReader(markup)).
		WithNotes().
		Logger(quiet).
		Deck(context.Background())
	if err != nil {
		t.Fatalf("Deck: %v", err)
	}
	notes := deck.Slides[0].Notes
	if !strings.Contains(notes, "Quarterly Review") {
		t.Errorf("notes %q missing heading text", notes)
	}
	if !strings.Contains(notes, "Revenue grew.") {
		t.Errorf("notes %q missing body text", notes)
	}
}

func TestDeckTitleFromDocument(t *testing.T) {
	deck, _ := convert(t, `<html><head><title>My Deck</title></head><body>
		<div class="slide"><p>x</p></div>
	</body></html>`)
	if deck.Title != "My Deck" {
		t.Errorf("title = %q, want %q", deck.Title, "My Deck")
	}
}

func TestSaveWritesPackage(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	markup := `<html><body>
		<div class="slide"><h1>One</h1><img src="` + pngDataURI(t, 2, 2) + `" width="50" height="50"></div>
		<div class="slide"><p>Two</p></div>
	</body></html>`
	out := filepath.Join(t.TempDir(), "out.pptx")

	result, _, err := FromReader(strings.NewReader(markup)).
		Author("tester").
		Logger(quiet).
		Save(context.Background(), out)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if result.Slides != 2 {
		t.Errorf("result.Slides = %d, want 2", result.Slides)
	}
	if result.Images != 1 {
		t.Errorf("result.Images = %d, want 1", result.Images)
	}
	if result.Shapes < 3 {
		t.Errorf("result.Shapes = %d, want at least 3", result.Shapes)
	}

	zr, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("output is not a readable package: %v", err)
	}
	defer zr.Close()
	found := false
	for _, f := range zr.File {
		if f.Name == "ppt/presentation.xml" {
			found = true
		}
	}
	if !found {
		t.Error("package missing ppt/presentation.xml")
	}
}

func TestOpenRejectsNonHTMLInput(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, _, err := Open("report.pdf").Logger(quiet).Deck(context.Background())
	if err == nil {
		t.Error("expected an error for a non-HTML input path")
	}
}

func TestOptionsDoNotMutateReceiver(t *testing.T) {
	base := Open("deck.html")
	withNotes := base.WithNotes()
	if base.options.notes {
		t.Error("WithNotes mutated the original converter")
	}
	if !withNotes.options.notes {
		t.Error("WithNotes did not set the option on the clone")
	}
}
