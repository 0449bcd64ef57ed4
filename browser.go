package resume2pdf

import (
	"context"
	"image"
)

// Source identifies the document to open.
type Source struct {
	URL          string // http, https or file URL
	HTML         string // inline markup, used when URL is empty
	Root         string // CSS selector of the exported subtree
	FallbackRoot string // used when Root matches nothing (empty = fail)
}

// RasterOptions controls rasterization of the exported subtree.
type RasterOptions struct {
	Scale      float64 // device pixels per CSS pixel
	Background string  // CSS color painted behind the subtree
}

// PrintOptions configures the native print fallback.
type PrintOptions struct {
	Geometry PageGeometry
}

// Browser is the rasterization capability. Open fails with
// ErrCapabilityUnavailable when no browser can be obtained and with
// ErrCapture when the document cannot be loaded.
type Browser interface {
	Open(ctx context.Context, src Source) (Document, error)
	Close() error
}

// Document is one loaded, live document.
type Document interface {
	// Rasterize renders the exported subtree to a bitmap.
	Rasterize(ctx context.Context, opts RasterOptions) (image.Image, error)
	// Measure returns the subtree box and the boxes of every element
	// matching one of the selectors, relative to the subtree.
	Measure(ctx context.Context, selectors []string) (Layout, error)
	// Markup returns the serialized document for metadata lookup.
	Markup(ctx context.Context) (string, error)
	// ApplyExportStyle forces the light theme and injects css. The returned
	// function reverts both.
	ApplyExportStyle(ctx context.Context, css string) (restore func(context.Context) error, err error)
	// Print renders the document with the browser's own print engine.
	Print(ctx context.Context, opts PrintOptions) ([]byte, error)
	Close() error
}
