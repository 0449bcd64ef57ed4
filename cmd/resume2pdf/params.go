package main

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/laurentxxc/resume2pdf"
	"github.com/laurentxxc/resume2pdf/internal/assets"
	"github.com/laurentxxc/resume2pdf/internal/config"
)

// exportParams groups what every export of a run shares.
type exportParams struct {
	// input is copied per export; only the source fields change.
	input   resume2pdf.Input
	timeout time.Duration
	verify  bool
	css     string // empty = built-in export style
	root    string // effective root selector, for hints
}

// loadConfig loads the config named by the flag, then by the environment.
// Without either, defaults apply.
func loadConfig(flagName string, env *envConfig) (*config.Config, error) {
	name := cmp.Or(flagName, env.ConfigPath)
	if name == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(name)
}

// mergeFlags applies flags set on the command line over cfg. CLI wins.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.changed("workers") {
		cfg.Export.Workers = f.workers
	}
	if f.changed("timeout") {
		cfg.Export.Timeout = f.timeout
	}

	if f.changed("format") {
		cfg.Page.Format = f.page.format
	}
	if f.changed("orientation") {
		cfg.Page.Orientation = f.page.orientation
	}
	if f.changed("margin") {
		cfg.Page.Margin = &f.page.margin
	}

	if f.changed("header") {
		cfg.Header.Template = f.bands.header
	}
	if f.changed("footer") {
		cfg.Footer.Template = f.bands.footer
	}
	if f.changed("header-height") {
		cfg.Header.Height = &f.bands.headerHeight
	}
	if f.changed("footer-height") {
		cfg.Footer.Height = &f.bands.footerHeight
	}
	if f.changed("no-header") {
		cfg.Header.Disabled = f.bands.noHeader
	}
	if f.changed("no-footer") {
		cfg.Footer.Disabled = f.bands.noFooter
	}

	if f.changed("filename") {
		cfg.Output.Filename = f.document.filename
	}
	if f.changed("lang") {
		cfg.Document.Lang = f.document.lang
	}
	if f.changed("owner") {
		cfg.Document.Owner = f.document.owner
	}
	if f.changed("app") {
		cfg.Document.App = f.document.app
	}
	if f.changed("root") {
		cfg.Document.Root = f.document.root
	}
	if f.changed("blocks") {
		cfg.Document.Blocks = f.document.blocks
	}

	if f.changed("scale") {
		cfg.Export.Scale = f.render.scale
	}
	if f.changed("stylesheet") {
		cfg.Export.Stylesheet = f.render.stylesheet
	}
	if f.changed("verify") {
		cfg.Export.Verify = f.render.verify
	}
}

// buildParams converts a validated config into export parameters.
func buildParams(cfg *config.Config) (*exportParams, error) {
	page := resume2pdf.DefaultPageSettings()
	if cfg.Page.Format != "" {
		page.Format = strings.ToLower(cfg.Page.Format)
	}
	if cfg.Page.Orientation != "" {
		page.Orientation = strings.ToLower(cfg.Page.Orientation)
	}
	if cfg.Page.Margin != nil {
		page.Margin = *cfg.Page.Margin
	}

	deco := resume2pdf.DefaultDecoration()
	deco.Header, page.HeaderHeight = band(cfg.Header, deco.Header, page.HeaderHeight)
	deco.Footer, page.FooterHeight = band(cfg.Footer, deco.Footer, page.FooterHeight)
	if err := page.Validate(); err != nil {
		return nil, err
	}

	params := &exportParams{
		input: resume2pdf.Input{
			Filename:   cfg.Output.Filename,
			Lang:       cfg.Document.Lang,
			Owner:      cfg.Document.Owner,
			App:        cfg.Document.App,
			Scale:      cfg.Export.Scale,
			Page:       page,
			Decoration: deco,
		},
		verify: cfg.Export.Verify,
		root:   cmp.Or(cfg.Document.Root, resume2pdf.DefaultRootSelector),
	}

	if cfg.Document.Root != "" || len(cfg.Document.Blocks) > 0 {
		sel := &resume2pdf.Selectors{Root: params.root, Blocks: cfg.Document.Blocks}
		if len(sel.Blocks) == 0 {
			sel.Blocks = resume2pdf.DefaultBlockSelectors
		}
		if err := sel.Validate(); err != nil {
			return nil, err
		}
		params.input.Selectors = sel
	}

	timeout, err := cfg.Export.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	params.timeout = timeout

	if cfg.Export.Stylesheet != "" {
		css, err := assets.ResolveStyle(cfg.Export.Stylesheet)
		if err != nil {
			return nil, err
		}
		params.css = css
	}
	return params, nil
}

// band returns the template and height of a header or footer band.
// A disabled band draws nothing and takes no room.
func band(b config.BandConfig, template string, height float64) (string, float64) {
	if b.Disabled {
		return "", 0
	}
	if b.Template != "" {
		template = b.Template
	}
	if b.Height != nil {
		height = *b.Height
	}
	return template, height
}

// exporterOptions builds the options shared by every exporter of a run.
func exporterOptions(params *exportParams, dest *destination, logger *slog.Logger, env *Environment, progress io.Writer) []resume2pdf.Option {
	opts := []resume2pdf.Option{
		resume2pdf.WithSink(dest.sink),
		resume2pdf.WithLogger(logger),
		resume2pdf.WithVerify(params.verify),
	}
	if env.Now != nil {
		opts = append(opts, resume2pdf.WithClock(env.Now))
	}
	if params.timeout > 0 {
		opts = append(opts, resume2pdf.WithTimeout(params.timeout))
	}
	if params.css != "" {
		opts = append(opts, resume2pdf.WithStylesheet(params.css))
	}
	if env.NewBrowser != nil {
		opts = append(opts, resume2pdf.WithBrowser(env.NewBrowser()))
	}
	if progress != nil {
		opts = append(opts, resume2pdf.WithObserver(progressObserver(progress)))
	}
	return opts
}

// progressObserver reports export lifecycle events on w.
func progressObserver(w io.Writer) resume2pdf.Observer {
	return resume2pdf.ObserverFunc(func(ev resume2pdf.Event) {
		switch ev.Kind {
		case resume2pdf.EventStart:
			fmt.Fprintf(w, "Exporting %s\n", ev.Source)
		case resume2pdf.EventComplete:
			fmt.Fprintf(w, "Composed %s: %d page(s), %d blank dropped\n",
				ev.Result.Filename, ev.Result.Pages, ev.Result.Dropped)
		case resume2pdf.EventError:
			if ev.Result != nil && ev.Result.Fallback {
				fmt.Fprintf(w, "Print fallback used for %s\n", ev.Source)
			}
		}
	})
}
