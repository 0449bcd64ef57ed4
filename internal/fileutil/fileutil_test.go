package fileutil

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStageHTML(t *testing.T) {
	t.Parallel()

	markup := "<html><body><h1>Jane Doe</h1></body></html>"

	u, remove, err := StageHTML(markup)
	if err != nil {
		t.Fatalf("StageHTML() error = %v", err)
	}

	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme != "file" {
		t.Fatalf("StageHTML() url = %q, want a file URL", u)
	}
	path := filepath.FromSlash(strings.TrimPrefix(parsed.Path, "/"))
	if filepath.VolumeName(path) == "" {
		path = parsed.Path
	}
	if filepath.Ext(path) != ".html" {
		t.Errorf("staged file %q, want .html extension", path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading staged file: %v", err)
	}
	if string(got) != markup {
		t.Errorf("staged content = %q, want %q", got, markup)
	}

	remove()
	if IsFile(path) {
		t.Errorf("staged file %q still exists after removal", path)
	}
}

func TestIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "cv.html")
	if err := os.WriteFile(file, []byte("<p>cv</p>"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "missing.html"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IsFile(tt.path); got != tt.want {
				t.Errorf("IsFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// URLs
// ---------------------------------------------------------------------------

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/resume.html", true},
		{"http://localhost:8080/", true},
		{"HTTPS://EXAMPLE.COM", true},
		{"file:///tmp/resume.html", true},
		{"ftp://example.com/cv.html", false},
		{"resume.html", false},
		{"./site/index.html", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := IsURL(tt.input); got != tt.want {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFileURL(t *testing.T) {
	t.Parallel()

	got, err := FileURL(filepath.Join("site", "my cv.html"))
	if err != nil {
		t.Fatalf("FileURL() error = %v", err)
	}
	if !strings.HasPrefix(got, "file:///") {
		t.Errorf("FileURL() = %q, want file:/// prefix", got)
	}
	if !strings.HasSuffix(got, "/site/my%20cv.html") {
		t.Errorf("FileURL() = %q, want escaped /site/my%%20cv.html suffix", got)
	}
}
