package main

import (
	"errors"
	"os"

	"github.com/laurentxxc/resume2pdf"
	"github.com/laurentxxc/resume2pdf/internal/assets"
	"github.com/laurentxxc/resume2pdf/internal/config"
)

// Exit codes for the resume2pdf command.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All exports succeeded
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Input not found, output not writable
	ExitBrowser = 4 // Browser launch or capture errors
)

// exitCodeFor returns the exit code for an error.
// Wrapped errors are matched with errors.Is.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, resume2pdf.ErrCapabilityUnavailable) ||
		errors.Is(err, resume2pdf.ErrCapture) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, resume2pdf.ErrSink) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, resume2pdf.ErrNoSource) ||
		errors.Is(err, resume2pdf.ErrInvalidPageSize) ||
		errors.Is(err, resume2pdf.ErrInvalidOrientation) ||
		errors.Is(err, resume2pdf.ErrInvalidMargin) ||
		errors.Is(err, resume2pdf.ErrInvalidBand) ||
		errors.Is(err, resume2pdf.ErrInvalidScale) ||
		errors.Is(err, resume2pdf.ErrInvalidSelector) ||
		errors.Is(err, resume2pdf.ErrInvalidFilename) ||
		errors.Is(err, resume2pdf.ErrInvalidPageGeometry) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
