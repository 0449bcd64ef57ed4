package resume2pdf

import (
	"fmt"
	"strings"
)

// Page format constants.
const (
	FormatA4     = "a4"
	FormatLetter = "letter"
	FormatLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Page layout bounds and defaults, in points.
const (
	DefaultMargin       = 20.0
	MaxMargin           = 144.0
	DefaultHeaderHeight = 28.0
	DefaultFooterHeight = 20.0
	MaxBandHeight       = 200.0
)

// Rendering scale bounds.
const (
	DefaultScale = 1.3
	MinScale     = 0.5
	MaxScale     = 4.0
)

// Default header and footer templates.
const (
	DefaultHeaderTemplate = "{app} — {owner} — {lang} — {date}"
	DefaultFooterTemplate = "{page} / {pages}"
)

// Default document metadata and selectors.
const (
	DefaultApp          = "Resume"
	DefaultLang         = "en"
	DefaultRootSelector = "#resume-root"
	fallbackRoot        = "body"
)

// DefaultBlockSelectors lists the section-, entry- and group-level elements
// whose bottom edges are preferred page cuts.
var DefaultBlockSelectors = []string{
	"section, .section",
	"article, .job, .project-card, .entry",
	".skill-group, .category, .education > div",
}

// PageSettings configures the output paper and its bands.
type PageSettings struct {
	Format       string  // "a4", "letter", "legal"
	Orientation  string  // "portrait", "landscape"
	Margin       float64 // points, applied to all sides
	HeaderHeight float64 // points
	FooterHeight float64 // points
}

// DefaultPageSettings returns A4 portrait with the default margin and bands.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Format:       FormatA4,
		Orientation:  OrientationPortrait,
		Margin:       DefaultMargin,
		HeaderHeight: DefaultHeaderHeight,
		FooterHeight: DefaultFooterHeight,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Format)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Format)
	}
	switch strings.ToLower(p.Orientation) {
	case "", OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < 0 || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between 0 and %.0f)", ErrInvalidMargin, p.Margin, MaxMargin)
	}
	if p.HeaderHeight < 0 || p.HeaderHeight > MaxBandHeight {
		return fmt.Errorf("%w: header %.2f (must be between 0 and %.0f)", ErrInvalidBand, p.HeaderHeight, MaxBandHeight)
	}
	if p.FooterHeight < 0 || p.FooterHeight > MaxBandHeight {
		return fmt.Errorf("%w: footer %.2f (must be between 0 and %.0f)", ErrInvalidBand, p.FooterHeight, MaxBandHeight)
	}
	return nil
}

// Decoration holds the header and footer templates.
// Recognized tokens: {app}, {owner}, {lang}, {date}, {page}, {pages}.
// An empty template draws nothing in its band.
type Decoration struct {
	Header string
	Footer string
}

// DefaultDecoration returns the default header and footer templates.
func DefaultDecoration() *Decoration {
	return &Decoration{
		Header: DefaultHeaderTemplate,
		Footer: DefaultFooterTemplate,
	}
}

// Selectors names the exported subtree and its atomic blocks.
type Selectors struct {
	Root   string   // CSS selector of the subtree to rasterize
	Blocks []string // CSS selectors whose elements must not be split
}

// Validate rejects empty selectors.
// Returns nil if s is nil (nil means use defaults).
func (s *Selectors) Validate() error {
	if s == nil {
		return nil
	}
	if strings.TrimSpace(s.Root) == "" {
		return fmt.Errorf("%w: root selector cannot be empty", ErrInvalidSelector)
	}
	for i, b := range s.Blocks {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("%w: block selector %d is empty", ErrInvalidSelector, i)
		}
	}
	return nil
}

// Input contains export parameters.
type Input struct {
	URL  string // page to export (http, https or file URL)
	HTML string // inline document, used when URL is empty

	Filename string // explicit output name (empty = derived)
	Lang     string // language override (empty = document <html lang>)
	Owner    string // owner override (empty = document author meta)
	App      string // application name for {app} (empty = document or default)

	Scale      float64       // rendering scale (0 = DefaultScale)
	Page       *PageSettings // nil = defaults
	Decoration *Decoration   // nil = default templates
	Selectors  *Selectors    // nil = defaults
}

// Status is the final state of one export.
type Status string

// Export statuses.
const (
	StatusComplete Status = "complete"
	StatusError    Status = "error"
)

// Result describes one export.
// Export always returns a non-nil Result, also alongside an error.
type Result struct {
	Status   Status
	Filename string
	PDF      []byte // composed document, or the print fallback when Fallback is set

	Pages       int     // output pages in PDF
	Slices      []Slice // candidate slices before blank filtering
	Dropped     int     // blank slices removed
	Breakpoints int     // size of the Breakpoint Set

	// MeasurementErr records a recovered layout probing failure.
	MeasurementErr error
	// DecorationFailures counts pages emitted without header/footer.
	DecorationFailures int
	// Fallback is true when the native print output replaced a failed export.
	Fallback bool
}
