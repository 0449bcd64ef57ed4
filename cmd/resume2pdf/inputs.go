package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/laurentxxc/resume2pdf/internal/fileutil"
	"github.com/laurentxxc/resume2pdf/internal/htmlpath"
)

// Sentinel errors for input and output resolution.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrReadInput        = errors.New("failed to read input")
	ErrInvalidExtension = errors.New("file must have .html, .htm or .xhtml extension")
	ErrUsage            = errors.New("invalid usage")
)

// stdinName is the positional argument that reads a document from stdin.
const stdinName = "-"

// maxStdinSize caps documents read from stdin.
const maxStdinSize = 32 << 20

// htmlExtensions lists the local file extensions accepted as input.
var htmlExtensions = []string{".html", ".htm", ".xhtml"}

// source is one document to export.
type source struct {
	Name string // as shown to the user
	URL  string
	HTML string
}

// resolveSources turns positional arguments into sources, in order.
// Directories expand to their HTML files (not recursive, sorted by name).
func resolveSources(args []string, stdin io.Reader) ([]source, error) {
	if len(args) == 0 {
		return nil, ErrNoInput
	}

	var sources []source
	readStdin := false
	for _, arg := range args {
		switch {
		case arg == stdinName:
			if readStdin {
				return nil, fmt.Errorf("%w: stdin given more than once", ErrUsage)
			}
			readStdin = true
			src, err := stdinSource(stdin)
			if err != nil {
				return nil, err
			}
			sources = append(sources, src)
		case fileutil.IsURL(arg):
			sources = append(sources, source{Name: arg, URL: arg})
		default:
			found, err := pathSources(arg)
			if err != nil {
				return nil, err
			}
			sources = append(sources, found...)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no HTML files in %s", ErrNoInput, strings.Join(args, ", "))
	}
	return sources, nil
}

func stdinSource(r io.Reader) (source, error) {
	if r == nil {
		return source{}, fmt.Errorf("%w: stdin unavailable", ErrReadInput)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxStdinSize+1))
	if err != nil {
		return source{}, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
	}
	if len(data) > maxStdinSize {
		return source{}, fmt.Errorf("%w: stdin exceeds %d bytes", ErrReadInput, maxStdinSize)
	}
	if strings.TrimSpace(string(data)) == "" {
		return source{}, fmt.Errorf("%w: stdin is empty", ErrReadInput)
	}
	// The document is loaded from a temporary file, so relative assets are
	// resolved against the working directory first.
	markup, err := htmlpath.Resolve(string(data), ".")
	if err != nil {
		return source{}, fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
	}
	return source{Name: "stdin", HTML: markup}, nil
}

// pathSources resolves a local file or directory.
func pathSources(path string) ([]source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	if !info.IsDir() {
		if !isHTMLFile(path) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, path)
		}
		src, err := fileSource(path)
		if err != nil {
			return nil, err
		}
		return []source{src}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	var sources []source
	for _, e := range entries {
		if e.IsDir() || !isHTMLFile(e.Name()) {
			continue
		}
		src, err := fileSource(filepath.Join(path, e.Name()))
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// fileSource loads a local file through a file URL so relative assets resolve.
func fileSource(path string) (source, error) {
	u, err := fileutil.FileURL(path)
	if err != nil {
		return source{}, fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return source{Name: path, URL: u}, nil
}

func isHTMLFile(name string) bool {
	return slices.Contains(htmlExtensions, strings.ToLower(filepath.Ext(name)))
}
