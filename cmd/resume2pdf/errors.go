package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/laurentxxc/resume2pdf"
	"github.com/laurentxxc/resume2pdf/internal/assets"
	"github.com/laurentxxc/resume2pdf/internal/config"
	"github.com/laurentxxc/resume2pdf/internal/hints"
)

// batchError reports failed exports whose details were already printed.
// It unwraps to the first failure so exit codes follow it.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d export(s) failed", e.failed)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// hintFor returns an actionable hint for err, or "".
// root is the effective root selector, configName the requested config.
func hintFor(err error, root, configName string) string {
	if err == nil {
		return ""
	}
	var be *batchError
	if errors.As(err, &be) {
		return ""
	}

	switch {
	case errors.Is(err, resume2pdf.ErrCapabilityUnavailable):
		return hints.ForBrowserConnect()
	case errors.Is(err, resume2pdf.ErrCapture):
		return hints.ForCapture(root)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, resume2pdf.ErrInvalidPageGeometry):
		return hints.ForPageGeometry()
	case errors.Is(err, resume2pdf.ErrSink):
		return hints.ForOutputDirectory()
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.StyleNames())
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if filepath.Ext(configName) == "" && !strings.ContainsAny(configName, `/\`) {
			searched = config.SearchPaths(configName)
		}
		return hints.ForConfigNotFound(searched)
	}
	return ""
}
