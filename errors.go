package resume2pdf

import "errors"

// Sentinel errors for export operations.
var (
	// Fatal: the export aborts and the print fallback is attempted.
	ErrCapabilityUnavailable = errors.New("rasterization capability unavailable")
	ErrCapture               = errors.New("document capture failed")
	ErrInvalidPageGeometry   = errors.New("invalid page geometry")
	ErrSink                  = errors.New("output sink rejected the document")

	// Recovered locally: the export continues with degraded output.
	ErrMeasurement = errors.New("layout measurement failed")
	ErrComposition = errors.New("page composition failed")

	// Input validation errors.
	ErrNoSource           = errors.New("exactly one of URL or HTML must be set")
	ErrInvalidPageSize    = errors.New("invalid page format")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
	ErrInvalidBand        = errors.New("invalid header or footer band height")
	ErrInvalidScale       = errors.New("invalid rendering scale")
	ErrInvalidSelector    = errors.New("invalid selector")
	ErrInvalidFilename    = errors.New("invalid output filename")

	// Output verification.
	ErrPageCountMismatch = errors.New("page count mismatch in produced PDF")
)
