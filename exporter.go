package resume2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log/slog"
	"strings"
	"time"

	"github.com/laurentxxc/resume2pdf/internal/assets"
)

// Rasterization background; the export always renders on white.
const rasterBackground = "#ffffff"

// restoreTimeout bounds style restoration, which runs even after ctx is done.
const restoreTimeout = 5 * time.Second

// Exporter turns live HTML documents into paginated PDFs.
// Create with NewExporter, call Export, and Close when done.
// An Exporter runs one export at a time; use ExporterPool for parallelism.
type Exporter struct {
	cfg     exporterConfig
	browser Browser
	sink    Sink
}

// NewExporter creates an Exporter. Without WithBrowser, a headless Chrome
// is launched on the first export.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		cfg: exporterConfig{
			timeout: defaultTimeout,
			logger:  slog.New(slog.DiscardHandler),
			now:     time.Now,
			blank:   DefaultBlankDetector,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.browser == nil {
		e.browser = newRodBrowser(e.cfg.timeout)
	}
	return e
}

// Close releases the browser.
func (e *Exporter) Close() error {
	if e.browser != nil {
		return e.browser.Close()
	}
	return nil
}

// export holds the state of one invocation.
type export struct {
	input    Input
	geom     PageGeometry
	deco     Decoration
	sel      Selectors
	scale    float64
	now      time.Time
	source   string
	result   *Result
	doc      Document
	restore  func(context.Context) error
	restored bool
	fellBack bool
}

// Export rasterizes the document, paginates it and delivers the PDF to the
// sink. On a fatal failure the visual override is reverted, observers get
// EventError, and the browser's native print output is delivered instead
// when available (Result.Fallback). Internal panics are returned as errors.
func (e *Exporter) Export(ctx context.Context, input Input) (res *Result, err error) {
	x := e.newExport(input)
	res = x.result

	e.emit(Event{Kind: EventStart, Source: x.source})
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
			e.fallbackAfterPanic(ctx, x, err)
		}
		if x.doc != nil {
			e.restoreStyle(ctx, x)
			if closeErr := x.doc.Close(); closeErr != nil {
				e.cfg.logger.Debug("closing document", "error", closeErr)
			}
		}
		if err != nil {
			res.Status = StatusError
			e.emit(Event{Kind: EventError, Source: x.source, Result: res, Err: err})
			return
		}
		res.Status = StatusComplete
		e.emit(Event{Kind: EventComplete, Source: x.source, Result: res})
	}()

	ctx, cancel := context.WithTimeout(ctx, e.cfg.timeout)
	defer cancel()

	if err := validateInput(input); err != nil {
		return res, err
	}
	if err := e.run(ctx, x); err != nil {
		e.fallback(ctx, x, err)
		return res, err
	}
	return res, nil
}

// newExport resolves defaults for one invocation.
func (e *Exporter) newExport(input Input) *export {
	x := &export{
		input:  input,
		geom:   NewPageGeometry(input.Page),
		deco:   *DefaultDecoration(),
		sel:    Selectors{Root: DefaultRootSelector, Blocks: DefaultBlockSelectors},
		scale:  input.Scale,
		now:    e.cfg.now(),
		source: "inline",
		result: &Result{Filename: input.Filename},
	}
	if input.URL != "" {
		x.source = input.URL
	}
	if input.Decoration != nil {
		x.deco = *input.Decoration
	}
	if input.Selectors != nil {
		x.sel = *input.Selectors
	}
	if x.scale == 0 {
		x.scale = DefaultScale
	}
	return x
}

// run is the fatal path of the pipeline: any error it returns aborts.
func (e *Exporter) run(ctx context.Context, x *export) error {
	log := e.cfg.logger.With("source", x.source)

	src := Source{URL: x.input.URL, HTML: x.input.HTML, Root: x.sel.Root}
	if x.sel.Root == DefaultRootSelector {
		src.FallbackRoot = fallbackRoot
	}
	doc, err := e.browser.Open(ctx, src)
	if err != nil {
		return err
	}
	x.doc = doc

	e.applyStyle(ctx, x, log)
	tokens := e.resolveTokens(ctx, x, log)
	if x.result.Filename == "" {
		x.result.Filename = DefaultFilename(tokens.Owner, tokens.Lang, x.now)
	}

	img, err := doc.Rasterize(ctx, RasterOptions{Scale: x.scale, Background: rasterBackground})
	if err != nil {
		if errors.Is(err, ErrCapture) || errors.Is(err, ErrCapabilityUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCapture, err)
	}
	bounds := img.Bounds()
	log.Debug("document rasterized", "width", bounds.Dx(), "height", bounds.Dy(), "scale", x.scale)

	pages, err := e.paginate(ctx, x, img, log)
	if err != nil {
		return err
	}

	c := &composer{geom: x.geom, deco: x.deco, logger: log}
	pdf, failures, err := c.compose(pages, tokens, documentInfo{
		title:   strings.TrimSuffix(x.result.Filename, ".pdf"),
		author:  tokens.Owner,
		created: x.now,
	})
	if err != nil {
		return err
	}
	x.result.DecorationFailures = failures
	x.result.Pages = max(len(pages), 1)

	if e.cfg.verify {
		if err := verifyPageCount(pdf, x.result.Pages); err != nil {
			return err
		}
	}

	x.result.PDF = pdf
	if e.sink != nil {
		if err := e.sink.Save(ctx, x.result.Filename, pdf); err != nil {
			return fmt.Errorf("%w: %v", ErrSink, err)
		}
	}
	log.Info("export complete", "filename", x.result.Filename, "pages", x.result.Pages,
		"dropped", x.result.Dropped, "breakpoints", x.result.Breakpoints)
	return nil
}

// paginate measures, slices and filters the Document Image, returning the
// PNG-encoded survivors in order. This is the first composition pass.
func (e *Exporter) paginate(ctx context.Context, x *export, img image.Image, log *slog.Logger) ([]candidatePage, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if h == 0 {
		return nil, nil
	}

	px, err := x.geom.Pixels(w)
	if err != nil {
		return nil, err
	}

	breakpoints := e.probe(ctx, x, w, h, log)
	x.result.Breakpoints = len(breakpoints)

	slices := Paginate(h, px.Usable, breakpoints)
	x.result.Slices = slices
	log.Debug("document paginated", "usable_px", px.Usable, "slices", len(slices))

	var pages []candidatePage
	for i, s := range slices {
		sub := cropRows(img, s)
		if e.cfg.blank.IsBlank(sub) {
			x.result.Dropped++
			log.Debug("blank slice dropped", "slice", i, "start", s.Start, "end", s.End)
			continue
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, sub); err != nil {
			return nil, fmt.Errorf("%w: encoding slice %d: %v", ErrComposition, i, err)
		}
		pages = append(pages, candidatePage{slice: s, png: buf.Bytes(), width: w, height: s.Height()})
	}
	return pages, nil
}

// probe returns the Breakpoint Set, degrading to none on measurement failure.
func (e *Exporter) probe(ctx context.Context, x *export, w, h int, log *slog.Logger) []int {
	if len(x.sel.Blocks) == 0 {
		return nil
	}
	layout, err := x.doc.Measure(ctx, x.sel.Blocks)
	if err == nil {
		var bp []int
		if bp, err = ProbeBreakpoints(layout, w, h); err == nil {
			return bp
		}
	}
	if !errors.Is(err, ErrMeasurement) {
		err = fmt.Errorf("%w: %v", ErrMeasurement, err)
	}
	x.result.MeasurementErr = err
	log.Warn("layout measurement failed, using fixed-height cuts", "error", err)
	return nil
}

// applyStyle installs the export stylesheet. Failure only affects contrast.
func (e *Exporter) applyStyle(ctx context.Context, x *export, log *slog.Logger) {
	css, err := e.stylesheet()
	if err != nil {
		log.Warn("export stylesheet unavailable", "error", err)
		css = ""
	}
	restore, err := x.doc.ApplyExportStyle(ctx, css)
	if err != nil {
		log.Warn("export style not applied", "error", err)
		return
	}
	x.restore = restore
}

// restoreStyle reverts the visual override once, even if ctx is done.
func (e *Exporter) restoreStyle(ctx context.Context, x *export) {
	if x.restore == nil || x.restored {
		return
	}
	x.restored = true
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
	defer cancel()
	if err := x.restore(rctx); err != nil {
		e.cfg.logger.Warn("document style not restored", "source", x.source, "error", err)
	}
}

func (e *Exporter) stylesheet() (string, error) {
	if e.cfg.stylesheet != nil {
		return *e.cfg.stylesheet, nil
	}
	return assets.LoadStyle(assets.DefaultStyleName)
}

// resolveTokens merges explicit overrides with document metadata.
func (e *Exporter) resolveTokens(ctx context.Context, x *export, log *slog.Logger) Tokens {
	var md Metadata
	if x.input.Lang == "" || x.input.Owner == "" || x.input.App == "" {
		markup, err := x.doc.Markup(ctx)
		if err == nil {
			md, err = ParseMetadata(strings.NewReader(markup))
		}
		if err != nil {
			log.Warn("document metadata unavailable", "error", err)
		}
	}

	return Tokens{
		App:   firstNonEmpty(x.input.App, md.App, DefaultApp),
		Owner: strings.TrimSpace(firstNonEmpty(x.input.Owner, md.Owner)),
		Lang:  NormalizeLang(firstNonEmpty(x.input.Lang, md.Lang)),
		Date:  isoDate(x.now),
	}
}

// fallback delivers the browser's native print output after a fatal error.
// Its own failure is only logged.
func (e *Exporter) fallback(ctx context.Context, x *export, cause error) {
	log := e.cfg.logger.With("source", x.source)
	log.Error("export failed", "error", cause)

	if x.doc == nil || x.fellBack {
		return
	}
	x.fellBack = true
	e.restoreStyle(ctx, x)

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.timeout)
	defer cancel()

	pdf, err := x.doc.Print(pctx, PrintOptions{Geometry: x.geom})
	if err != nil {
		log.Warn("print fallback failed", "error", err)
		return
	}
	if x.result.Filename == "" {
		x.result.Filename = DefaultFilename(x.input.Owner, x.input.Lang, x.now)
	}
	if e.sink != nil {
		if err := e.sink.Save(pctx, x.result.Filename, pdf); err != nil {
			log.Warn("print fallback not saved", "error", err)
			return
		}
	}
	x.result.PDF = pdf
	x.result.Fallback = true
	log.Info("print fallback delivered", "filename", x.result.Filename)
}

// fallbackAfterPanic runs the print fallback for a recovered panic. A panic
// inside the fallback itself is only logged.
func (e *Exporter) fallbackAfterPanic(ctx context.Context, x *export, cause error) {
	defer func() {
		if r := recover(); r != nil {
			e.cfg.logger.Error("print fallback panicked", "source", x.source, "panic", r)
		}
	}()
	e.fallback(ctx, x, cause)
}

func (e *Exporter) emit(ev Event) {
	for _, o := range e.cfg.observers {
		o.OnEvent(ev)
	}
}

// validateInput checks the input at the library trust boundary.
func validateInput(input Input) error {
	if (input.URL == "") == (input.HTML == "") {
		return ErrNoSource
	}
	if input.Scale != 0 && (input.Scale < MinScale || input.Scale > MaxScale) {
		return fmt.Errorf("%w: %.2f (must be between %.1f and %.1f)", ErrInvalidScale, input.Scale, MinScale, MaxScale)
	}
	if strings.ContainsAny(input.Filename, "/\\\x00") {
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidFilename, input.Filename)
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.Selectors.Validate()
}

// cropRows returns the rows of s as an image whose bounds start at (0, 0).
func cropRows(img image.Image, s Slice) image.Image {
	b := img.Bounds()
	r := image.Rect(b.Min.X, b.Min.Y+s.Start, b.Max.X, b.Min.Y+s.End)
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
