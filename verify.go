package resume2pdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disablePDFCPUConfig sync.Once

// CountPages parses a PDF and returns its page count.
func CountPages(pdf []byte) (int, error) {
	// pdfcpu otherwise creates a config directory under the user's home.
	disablePDFCPUConfig.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	n, err := api.PageCount(bytes.NewReader(pdf), conf)
	if err != nil {
		return 0, fmt.Errorf("reading produced PDF: %w", err)
	}
	return n, nil
}

// verifyPageCount checks that the produced PDF holds exactly want pages.
func verifyPageCount(pdf []byte, want int) error {
	got, err := CountPages(pdf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCountMismatch, err)
	}
	if got != want {
		return fmt.Errorf("%w: got %d, want %d", ErrPageCountMismatch, got, want)
	}
	return nil
}
