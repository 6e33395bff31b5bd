// Package browser measures page layout with a headless Chrome via rod.
// It is the high-fidelity alternative to the static layout estimator:
// the page is actually rendered, so bounding boxes and computed styles
// reflect what a browser would show.
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Metrics is one element's measured geometry (CSS px, viewport origin)
// and the computed style subset the converter consumes.
type Metrics struct {
	X     float64           `json:"x"`
	Y     float64           `json:"y"`
	W     float64           `json:"w"`
	H     float64           `json:"h"`
	Style map[string]string `json:"style"`
}

// Backend owns a headless Chrome instance.
type Backend struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
	logger  *slog.Logger

	viewportWidth  int
	viewportHeight int
}

// New launches a local headless Chrome and connects to it.
func New(logger *slog.Logger, viewportWidth, viewportHeight int) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	logger.Debug("browser: launched local chrome", "url", u)

	return &Backend{
		browser:        b,
		lnch:           l,
		logger:         logger,
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}, nil
}

// Close shuts down Chrome.
func (b *Backend) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
	}
	if b.lnch != nil {
		b.lnch.Cleanup()
	}
	return err
}

// Page is one rendered HTML document. It stays open after measurement
// so elements can still be screenshotted during shape emission.
type Page struct {
	page   *rod.Page
	logger *slog.Logger
}

// Open renders the HTML file in a new tab at the backend's viewport
// size. The caller owns the returned Page and must Close it.
func (b *Backend) Open(ctx context.Context, htmlPath string) (*Page, error) {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("browser: resolving %s: %w", htmlPath, err)
	}
	pageURL := "file://" + abs

	page, err := b.browser.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             b.viewportWidth,
		Height:            b.viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: set viewport: %w", err)
	}

	navCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		b.logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}

	return &Page{page: page, logger: b.logger}, nil
}

// Close closes the tab.
func (p *Page) Close() error {
	return p.page.Close()
}

// Snapshot returns metrics for every element on the page, keyed by its
// index path from the document element ("0", "0/1", ...).
func (p *Page) Snapshot(ctx context.Context) (map[string]Metrics, error) {
	res, err := p.page.Context(ctx).Eval(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("browser: measure: %w", err)
	}

	var out map[string]Metrics
	if err := json.Unmarshal([]byte(res.Value.Str()), &out); err != nil {
		return nil, fmt.Errorf("browser: decoding metrics: %w", err)
	}
	return out, nil
}

// ScreenshotElement captures the element at the given index path as
// PNG bytes. Used for visual elements that carry no fetchable image
// source (icon fonts, chart placeholders, inline svg) and for whole
// slide captures.
func (p *Page) ScreenshotElement(ctx context.Context, path string) ([]byte, error) {
	el, err := p.page.Context(ctx).ElementByJS(rod.Eval(elementByPathJS, path))
	if err != nil {
		return nil, fmt.Errorf("browser: locating element %s: %w", path, err)
	}
	data, err := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("browser: screenshot %s: %w", path, err)
	}
	return data, nil
}

// elementByPathJS resolves the element addressed by an index path. The
// leading "0" is the document element itself.
const elementByPathJS = `(path) => {
	let el = document.documentElement;
	for (const i of path.split("/").slice(1)) {
		el = el.children[i];
		if (!el) {
			throw new Error("no element at " + path);
		}
	}
	return el;
}`

// snapshotJS walks element children in document order so index paths
// line up with the parsed tree on the Go side.
const snapshotJS = `() => {
	const out = {};
	const props = [
		"font-size", "font-family", "font-weight", "font-style",
		"color", "text-align", "text-transform", "background-color",
		"border-top-width", "border-top-style", "border-top-color",
		"display", "visibility", "opacity",
	];
	const walk = (el, path) => {
		const r = el.getBoundingClientRect();
		const cs = getComputedStyle(el);
		const style = {};
		for (const p of props) {
			style[p] = cs.getPropertyValue(p);
		}
		style["text-decoration"] = cs.getPropertyValue("text-decoration-line");
		out[path] = {x: r.x, y: r.y, w: r.width, h: r.height, style: style};
		let i = 0;
		for (const child of el.children) {
			walk(child, path + "/" + i);
			i++;
		}
	};
	walk(document.documentElement, "0");
	return JSON.stringify(out);
}`
