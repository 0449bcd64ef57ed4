package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that control the command itself.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	version bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	format      string
	orientation string
	margin      float64
}

// bandFlags holds header and footer flags.
type bandFlags struct {
	header       string
	footer       string
	headerHeight float64
	footerHeight float64
	noHeader     bool
	noFooter     bool
}

// documentFlags override what the document declares about itself.
type documentFlags struct {
	filename string
	lang     string
	owner    string
	app      string
	root     string
	blocks   []string
}

// renderFlags holds rendering flags.
type renderFlags struct {
	scale      float64
	stylesheet string
	verify     bool
}

// cliFlags holds all flags of the command.
type cliFlags struct {
	common   commonFlags
	output   string
	workers  int
	timeout  string
	page     pageFlags
	bands    bandFlags
	document documentFlags
	render   renderFlags

	fs *flag.FlagSet
}

// changed reports whether the named flag was set on the command line.
func (f *cliFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show progress and debug logs")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.format, "format", "", "page format: a4, letter, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in points (0-144)")
}

func addBandFlags(fs *flag.FlagSet, f *bandFlags) {
	fs.StringVar(&f.header, "header", "", "header template")
	fs.StringVar(&f.footer, "footer", "", "footer template")
	fs.Float64Var(&f.headerHeight, "header-height", 0, "header band height in points (0-200)")
	fs.Float64Var(&f.footerHeight, "footer-height", 0, "footer band height in points (0-200)")
	fs.BoolVar(&f.noHeader, "no-header", false, "disable header")
	fs.BoolVar(&f.noFooter, "no-footer", false, "disable footer")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.filename, "filename", "", "output file name (single input only)")
	fs.StringVar(&f.lang, "lang", "", "language override")
	fs.StringVar(&f.owner, "owner", "", "owner name override")
	fs.StringVar(&f.app, "app", "", "application name for {app}")
	fs.StringVar(&f.root, "root", "", "CSS selector of the exported subtree")
	fs.StringSliceVar(&f.blocks, "blocks", nil, "CSS selectors never split across pages")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.Float64Var(&f.scale, "scale", 0, "rendering scale (0.5-4)")
	fs.StringVar(&f.stylesheet, "stylesheet", "", "export style name, CSS file or inline CSS")
	fs.BoolVar(&f.verify, "verify", false, "check the page count of each PDF")
}

// parseFlags parses args, which exclude the program name, and returns the
// positional inputs.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("resume2pdf", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &cliFlags{fs: fs}

	fs.StringVarP(&f.output, "output", "o", "", "output file (.pdf) or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-export timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addBandFlags(fs, &f.bands)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
