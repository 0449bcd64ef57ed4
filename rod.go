package resume2pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/laurentxxc/resume2pdf/internal/fileutil"
	"github.com/laurentxxc/resume2pdf/internal/process"
)

// Viewport used to lay out the document before capture, in CSS pixels.
const (
	viewportWidth  = 1024
	viewportHeight = 1400
)

// exportStyleID identifies the injected stylesheet so it can be removed.
const exportStyleID = "pdf-export-styles"

// Compile-time interface checks.
var (
	_ Browser  = (*rodBrowser)(nil)
	_ Document = (*rodDocument)(nil)
)

// rodBrowser implements Browser with headless Chrome via go-rod.
// Rod downloads Chromium on first run if none is found.
type rodBrowser struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// newRodBrowser creates a rodBrowser; the browser starts on first Open.
func newRodBrowser(timeout time.Duration) *rodBrowser {
	return &rodBrowser{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (b *rodBrowser) ensureBrowser() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New()
	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launching browser: %v", ErrCapabilityUnavailable, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: connecting to browser: %v", ErrCapabilityUnavailable, err)
	}

	b.browser = browser
	b.launcher = l
	return browser, nil
}

// Open loads src in a new tab and resolves the exported subtree.
func (b *rodBrowser) Open(ctx context.Context, src Source) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := b.ensureBrowser()
	if err != nil {
		return nil, err
	}

	target, cleanup, err := resolveTarget(src)
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: creating page: %v", ErrCapture, err)
	}

	doc := &rodDocument{page: page, cleanup: cleanup, timeout: b.timeout}
	if err := doc.load(ctx, src); err != nil {
		_ = doc.Close()
		return nil, err
	}
	return doc, nil
}

// Close shuts the browser down and reaps its process tree.
func (b *rodBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		process.KillProcessGroup(b.launcher.PID())
		b.launcher.Kill()
		b.launcher.Cleanup()
		b.launcher = nil
	}
	return err
}

// resolveTarget returns the URL to navigate to. Inline HTML is written to a
// temporary file so relative resources and file:// loads behave alike.
func resolveTarget(src Source) (string, func(), error) {
	if src.URL != "" {
		return src.URL, func() {}, nil
	}
	u, cleanup, err := fileutil.StageHTML(src.HTML)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	return u, cleanup, nil
}

// rodDocument is one loaded tab.
type rodDocument struct {
	page    *rod.Page
	root    string
	cleanup func()
	timeout time.Duration
}

// withTimeout binds the page to ctx, bounded by the document timeout when
// ctx has no deadline of its own.
func (d *rodDocument) withTimeout(ctx context.Context) *rod.Page {
	p := d.page.Context(ctx)
	if _, ok := ctx.Deadline(); !ok && d.timeout > 0 {
		p = p.Timeout(d.timeout)
	}
	return p
}

const resolveRootJS = `(root, fallback) => {
	if (document.querySelector(root)) return root;
	if (fallback && document.querySelector(fallback)) return fallback;
	return "";
}`

// load waits for the page and picks the root selector.
func (d *rodDocument) load(ctx context.Context, src Source) error {
	page := d.withTimeout(ctx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("%w: setting viewport: %v", ErrCapture, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("%w: loading page: %v", ErrCapture, err)
	}

	res, err := page.Eval(resolveRootJS, src.Root, src.FallbackRoot)
	if err != nil {
		return fmt.Errorf("%w: resolving root: %v", ErrCapture, err)
	}
	root := res.Value.Str()
	if root == "" {
		return fmt.Errorf("%w: element %q not found", ErrCapture, src.Root)
	}
	d.root = root
	return nil
}

const rootBoxJS = `(root, background) => {
	const el = document.querySelector(root);
	if (!el) throw new Error("element not found: " + root);
	if (background) {
		if (!window.__resume2pdfBackground) {
			window.__resume2pdfBackground = {
				el: el,
				value: el.style.getPropertyValue("background-color"),
				priority: el.style.getPropertyPriority("background-color"),
			};
		}
		el.style.setProperty("background-color", background, "important");
	}
	const r = el.getBoundingClientRect();
	return JSON.stringify({x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height});
}`

// Rasterize captures the root subtree beyond the viewport at opts.Scale.
func (d *rodDocument) Rasterize(ctx context.Context, opts RasterOptions) (image.Image, error) {
	page := d.withTimeout(ctx)

	var box Rect
	if err := evalJSON(page, &box, rootBoxJS, d.root, opts.Background); err != nil {
		return nil, fmt.Errorf("%w: measuring root: %v", ErrCapture, err)
	}
	if box.Width <= 0 {
		return nil, fmt.Errorf("%w: element %q has no width", ErrCapture, d.root)
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	if box.Height <= 0 {
		width := int(box.Width*scale + 0.5)
		return image.NewRGBA(image.Rect(0, 0, width, 0)), nil
	}

	bin, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
			Scale:  scale,
		},
		FromSurface:           true,
		CaptureBeyondViewport: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: screenshot: %v", ErrCapture, err)
	}

	img, err := png.Decode(bytes.NewReader(bin))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding screenshot: %v", ErrCapture, err)
	}
	return img, nil
}

const measureJS = `(root, selectors) => {
	const el = document.querySelector(root);
	if (!el) throw new Error("element not found: " + root);
	const r = el.getBoundingClientRect();
	const blocks = [];
	for (const sel of selectors) {
		for (const b of el.querySelectorAll(sel)) {
			const br = b.getBoundingClientRect();
			blocks.push({x: br.left - r.left, y: br.top - r.top, width: br.width, height: br.height});
		}
	}
	return JSON.stringify({root: {x: r.left, y: r.top, width: r.width, height: r.height}, blocks: blocks});
}`

// Measure reads block geometry from the live layout.
func (d *rodDocument) Measure(ctx context.Context, selectors []string) (Layout, error) {
	var layout Layout
	if err := evalJSON(d.withTimeout(ctx), &layout, measureJS, d.root, selectors); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrMeasurement, err)
	}
	return layout, nil
}

// Markup serializes the live document.
func (d *rodDocument) Markup(ctx context.Context) (string, error) {
	res, err := d.withTimeout(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return "", fmt.Errorf("reading document markup: %w", err)
	}
	return res.Value.Str(), nil
}

const applyStyleJS = `(css, id) => {
	const de = document.documentElement;
	const prev = de.getAttribute("data-theme");
	de.setAttribute("data-theme", "light");
	if (css) {
		const s = document.createElement("style");
		s.id = id;
		s.textContent = css;
		document.head.appendChild(s);
	}
	return JSON.stringify({prev: prev});
}`

const restoreStyleJS = `(prev, id) => {
	const de = document.documentElement;
	if (prev === null) de.removeAttribute("data-theme");
	else de.setAttribute("data-theme", prev);
	const s = document.getElementById(id);
	if (s) s.remove();
	const bg = window.__resume2pdfBackground;
	if (bg) {
		if (bg.value) bg.el.style.setProperty("background-color", bg.value, bg.priority);
		else bg.el.style.removeProperty("background-color");
		if (!bg.el.getAttribute("style")) bg.el.removeAttribute("style");
		delete window.__resume2pdfBackground;
	}
}`

// ApplyExportStyle forces the light theme and injects css.
func (d *rodDocument) ApplyExportStyle(ctx context.Context, css string) (func(context.Context) error, error) {
	var saved struct {
		Prev *string `json:"prev"`
	}
	if err := evalJSON(d.withTimeout(ctx), &saved, applyStyleJS, css, exportStyleID); err != nil {
		return nil, fmt.Errorf("applying export style: %w", err)
	}

	restore := func(ctx context.Context) error {
		if _, err := d.withTimeout(ctx).Eval(restoreStyleJS, saved.Prev, exportStyleID); err != nil {
			return fmt.Errorf("restoring document style: %w", err)
		}
		return nil
	}
	return restore, nil
}

// Print renders the document with Chrome's print engine.
func (d *rodDocument) Print(ctx context.Context, opts PrintOptions) ([]byte, error) {
	g := opts.Geometry
	reader, err := d.withTimeout(ctx).PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(g.Width / pointsPerInch),
		PaperHeight:     floatPtr(g.Height / pointsPerInch),
		MarginTop:       floatPtr(g.Margin / pointsPerInch),
		MarginBottom:    floatPtr(g.Margin / pointsPerInch),
		MarginLeft:      floatPtr(g.Margin / pointsPerInch),
		MarginRight:     floatPtr(g.Margin / pointsPerInch),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("printing document: %w", err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading print stream: %w", err)
	}
	return pdf, nil
}

// Close closes the tab and removes any temporary file.
func (d *rodDocument) Close() error {
	var err error
	if d.page != nil {
		err = d.page.Close()
		d.page = nil
	}
	if d.cleanup != nil {
		d.cleanup()
		d.cleanup = nil
	}
	return err
}

// pointsPerInch converts PDF points to the inches Chrome's print API expects.
const pointsPerInch = 72.0

// evalJSON evaluates a function returning JSON.stringify(...) and decodes it.
func evalJSON(page *rod.Page, v any, js string, args ...any) error {
	res, err := page.Eval(js, args...)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(res.Value.Str()), v)
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
