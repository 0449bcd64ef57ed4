// Package fileutil holds the path and URL helpers shared by the exporter and
// the command.
package fileutil

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrStage is returned when inline markup cannot be staged on disk.
var ErrStage = errors.New("staging html")

// stagePattern names staged documents; the browser sees the .html suffix.
const stagePattern = "resume2pdf-*.html"

// StageHTML writes markup to a temporary .html file and returns its file://
// URL together with a function that removes the file.
func StageHTML(markup string) (string, func(), error) {
	f, err := os.CreateTemp("", stagePattern)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrStage, err)
	}
	remove := func() { _ = os.Remove(f.Name()) }

	_, err = f.WriteString(markup)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		remove()
		return "", nil, fmt.Errorf("%w: %w", ErrStage, err)
	}

	u, err := FileURL(f.Name())
	if err != nil {
		remove()
		return "", nil, fmt.Errorf("%w: %w", ErrStage, err)
	}
	return u, remove, nil
}

// IsFile reports whether path names an existing non-directory entry.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsURL reports whether s is an http, https or file URL.
func IsURL(s string) bool {
	scheme, _, ok := strings.Cut(s, "://")
	if !ok {
		return false
	}
	switch strings.ToLower(scheme) {
	case "http", "https", "file":
		return true
	}
	return false
}

// FileURL converts a local path to an absolute file:// URL.
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// Drive letters: file:///C:/...
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}
