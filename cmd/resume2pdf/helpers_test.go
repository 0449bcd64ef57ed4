package main

// Notes:
// - Test infrastructure shared by the command tests: a scripted browser
//   that renders a fixed bitmap, a mock pool, and an environment whose
//   output lands in buffers.

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/laurentxxc/resume2pdf"
)

// Compile-time interface checks.
var (
	_ resume2pdf.Browser  = (*stubBrowser)(nil)
	_ resume2pdf.Document = (*stubDocument)(nil)
)

// testImageWidth matches the printable width of A4 with a 20pt margin,
// rounded down, so one pixel is about one point.
const testImageWidth = 555

var testClock = func() time.Time {
	return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
}

const testMarkup = `<html lang="en"><head><meta name="author" content="Jane Doe"></head><body></body></html>`

// stubBrowser opens a fresh stubDocument per source and records sources.
type stubBrowser struct {
	height    int
	openErr   error
	rasterErr error
	printPDF  []byte

	mu     sync.Mutex
	opened []resume2pdf.Source
}

func (b *stubBrowser) Open(_ context.Context, src resume2pdf.Source) (resume2pdf.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opened = append(b.opened, src)
	if b.openErr != nil {
		return nil, b.openErr
	}
	return &stubDocument{browser: b}, nil
}

func (b *stubBrowser) Close() error { return nil }

func (b *stubBrowser) sources() []resume2pdf.Source {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]resume2pdf.Source(nil), b.opened...)
}

type stubDocument struct {
	browser *stubBrowser
}

func (d *stubDocument) Rasterize(context.Context, resume2pdf.RasterOptions) (image.Image, error) {
	if d.browser.rasterErr != nil {
		return nil, d.browser.rasterErr
	}
	h := d.browser.height
	img := image.NewNRGBA(image.Rect(0, 0, testImageWidth, h))
	for y := range h {
		c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		if y%20 < 10 {
			c = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		}
		for x := range testImageWidth {
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

func (d *stubDocument) Measure(context.Context, []string) (resume2pdf.Layout, error) {
	return resume2pdf.Layout{Root: resume2pdf.Rect{Width: testImageWidth}}, nil
}

func (d *stubDocument) Markup(context.Context) (string, error) {
	return testMarkup, nil
}

func (d *stubDocument) ApplyExportStyle(context.Context, string) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

func (d *stubDocument) Print(context.Context, resume2pdf.PrintOptions) ([]byte, error) {
	if d.browser.printPDF == nil {
		return nil, resume2pdf.ErrCapabilityUnavailable
	}
	return d.browser.printPDF, nil
}

func (d *stubDocument) Close() error { return nil }

// testEnv returns an environment backed by buffers and browser b.
func testEnv(b *stubBrowser) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:        testClock,
		Stdin:      &bytes.Buffer{},
		Stdout:     stdout,
		Stderr:     stderr,
		NewBrowser: func() resume2pdf.Browser { return b },
	}
	return env, stdout, stderr
}

// mockExporter returns a scripted result and records inputs.
type mockExporter struct {
	result *resume2pdf.Result
	err    error

	mu     sync.Mutex
	inputs []resume2pdf.Input
}

func (m *mockExporter) Export(_ context.Context, input resume2pdf.Input) (*resume2pdf.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()
	if m.result == nil {
		return nil, m.err
	}
	res := *m.result
	if res.Filename == "" {
		res.Filename = input.Filename
	}
	return &res, m.err
}

// mockPool hands out the same exporter, or nil when exp is nil.
type mockPool struct {
	exp  Exporter
	size int
}

func (p *mockPool) Acquire() Exporter {
	if p.exp == nil {
		return nil
	}
	return p.exp
}
func (p *mockPool) Release(Exporter) {}
func (p *mockPool) Size() int        { return p.size }
func (p *mockPool) Close() error     { return nil }

// mustParse parses args or fails the test.
func mustParse(t *testing.T, args ...string) *cliFlags {
	t.Helper()
	f, _, err := parseFlags(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags(%v) error = %v", args, err)
	}
	return f
}
