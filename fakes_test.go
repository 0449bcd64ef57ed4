package resume2pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"testing"
	"time"
)

// Compile-time interface checks.
var (
	_ Browser  = (*fakeBrowser)(nil)
	_ Document = (*fakeDocument)(nil)
)

// fakeBrowser hands out a single fakeDocument.
type fakeBrowser struct {
	doc     *fakeDocument
	openErr error

	mu     sync.Mutex
	opened []Source
	closed int
}

func (b *fakeBrowser) Open(_ context.Context, src Source) (Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened = append(b.opened, src)
	if b.openErr != nil {
		return nil, b.openErr
	}
	return b.doc, nil
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

// fakeDocument serves canned capture results and records side effects.
type fakeDocument struct {
	img         image.Image
	rasterErr   error
	rasterPanic any
	layout      Layout
	measureErr  error
	markup      string
	printPDF    []byte
	printErr    error
	applyErr    error

	mu        sync.Mutex
	css       string
	applied   int
	restored  int
	printed   int
	closed    int
	selectors []string
	scale     float64
}

func (d *fakeDocument) Rasterize(_ context.Context, opts RasterOptions) (image.Image, error) {
	d.mu.Lock()
	d.scale = opts.Scale
	d.mu.Unlock()
	if d.rasterPanic != nil {
		panic(d.rasterPanic)
	}
	if d.rasterErr != nil {
		return nil, d.rasterErr
	}
	return d.img, nil
}

func (d *fakeDocument) Measure(_ context.Context, selectors []string) (Layout, error) {
	d.mu.Lock()
	d.selectors = selectors
	d.mu.Unlock()
	if d.measureErr != nil {
		return Layout{}, d.measureErr
	}
	return d.layout, nil
}

func (d *fakeDocument) Markup(context.Context) (string, error) {
	return d.markup, nil
}

func (d *fakeDocument) ApplyExportStyle(_ context.Context, css string) (func(context.Context) error, error) {
	if d.applyErr != nil {
		return nil, d.applyErr
	}
	d.mu.Lock()
	d.css = css
	d.applied++
	d.mu.Unlock()
	return func(context.Context) error {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.restored++
		return nil
	}, nil
}

func (d *fakeDocument) Print(context.Context, PrintOptions) ([]byte, error) {
	d.mu.Lock()
	d.printed++
	d.mu.Unlock()
	return d.printPDF, d.printErr
}

func (d *fakeDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed++
	return nil
}

// eventRecorder collects lifecycle events.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

// ---------------------------------------------------------------------------
// Test fixtures
// ---------------------------------------------------------------------------

// testPage is letter portrait with a 20pt margin: 572pt printable width.
// A 572px wide image maps one pixel per point, leaving 704 usable rows.
func testPage() *PageSettings {
	return &PageSettings{
		Format:       FormatLetter,
		Orientation:  OrientationPortrait,
		Margin:       20,
		HeaderHeight: 28,
		FooterHeight: 20,
	}
}

const (
	testImageWidth = 572
	testUsable     = 704
)

var testClock = func() time.Time {
	return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

// documentImage returns a white image with dark rows in [0, inkRows).
func documentImage(height, inkRows int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, testImageWidth, height))
	for y := range height {
		c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if y < inkRows {
			c = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		}
		for x := range testImageWidth {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// blockLayout returns a layout whose blocks end at the given rows.
func blockLayout(bottoms ...float64) Layout {
	l := Layout{Root: Rect{Width: testImageWidth}}
	for i, b := range bottoms {
		top := 0.0
		if i > 0 {
			top = bottoms[i-1]
		}
		l.Blocks = append(l.Blocks, Rect{Y: top, Width: testImageWidth, Height: b - top})
	}
	return l
}

// logRecorder captures JSON log records at debug level.
type logRecorder struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (r *logRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

func (r *logRecorder) logger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(r, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// records returns every record whose message is msg.
func (r *logRecorder) records(t *testing.T, msg string) []map[string]any {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []map[string]any
	for line := range bytes.Lines(r.buf.Bytes()) {
		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			t.Fatalf("decoding log line %q: %v", line, err)
		}
		if rec["msg"] == msg {
			out = append(out, rec)
		}
	}
	return out
}
