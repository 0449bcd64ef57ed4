package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/laurentxxc/resume2pdf"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// destination is where a run writes its documents.
type destination struct {
	sink resume2pdf.Sink
	// path maps the filename chosen by an export to the written path.
	path func(filename string) string
}

// resolveOutput picks the destination. An output ending in .pdf names the
// file of a single export; anything else is a directory.
func resolveOutput(output, defaultDir string, inputs int) (*destination, error) {
	if strings.EqualFold(filepath.Ext(output), ".pdf") {
		if inputs > 1 {
			return nil, fmt.Errorf("%w: -o %s names a file but %d inputs were given", ErrUsage, output, inputs)
		}
		return fileDestination(output), nil
	}

	dir := output
	if dir == "" {
		dir = defaultDir
	}
	if dir == "" {
		dir = "."
	}
	return &destination{
		sink: resume2pdf.DirSink{Dir: dir},
		path: func(filename string) string { return filepath.Join(dir, filename) },
	}, nil
}

// fileDestination writes the single export to path, whatever its filename.
func fileDestination(path string) *destination {
	return &destination{
		sink: resume2pdf.SinkFunc(func(ctx context.Context, _ string, pdf []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			// #nosec G306 -- PDFs are meant to be readable
			if err := os.WriteFile(path, pdf, filePermissions); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			return nil
		}),
		path: func(string) string { return path },
	}
}
