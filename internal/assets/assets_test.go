package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// checkName
// ---------------------------------------------------------------------------

func TestCheckName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "simple name", input: "export"},
		{name: "hyphen and digits", input: "print-2"},
		{name: "empty", input: "", wantErr: ErrInvalidAssetName},
		{name: "forward slash", input: "styles/export", wantErr: ErrInvalidAssetName},
		{name: "backslash", input: "styles\\export", wantErr: ErrInvalidAssetName},
		{name: "traversal", input: "../secret", wantErr: ErrInvalidAssetName},
		{name: "extension", input: "export.css", wantErr: ErrInvalidAssetName},
		{name: "null byte", input: "export\x00", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkName(tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("checkName(%q) unexpected error: %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadStyle - Embedded Styles
// ---------------------------------------------------------------------------

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	t.Run("default export style forces white background", func(t *testing.T) {
		t.Parallel()

		css, err := LoadStyle(DefaultStyleName)
		if err != nil {
			t.Fatalf("LoadStyle(%q) unexpected error: %v", DefaultStyleName, err)
		}
		if !strings.Contains(css, "background: #ffffff") {
			t.Errorf("export style should force a white body background, got:\n%s", css)
		}
		if !strings.Contains(css, ".controls") {
			t.Error("export style should hide controls")
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		t.Parallel()

		_, err := LoadStyle("nonexistent")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle(nonexistent) error = %v, want %v", err, ErrStyleNotFound)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadStyle("../export")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle(../export) error = %v, want %v", err, ErrInvalidAssetName)
		}
	})
}

func TestStyleNames(t *testing.T) {
	t.Parallel()

	got := StyleNames()
	want := []string{"export", "plain"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("StyleNames() = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestResolveStyle - Name, Path or Inline CSS
// ---------------------------------------------------------------------------

func TestResolveStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.css")
	if err := os.WriteFile(path, []byte("h1 { color: red; }"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	defaultCSS, err := LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	plainCSS, err := LoadStyle("plain")
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "empty selects default", input: "", want: defaultCSS},
		{name: "embedded name", input: "plain", want: plainCSS},
		{name: "file path", input: path, want: "h1 { color: red; }"},
		{name: "inline css", input: "body { margin: 0 }", want: "body { margin: 0 }"},
		{name: "missing file", input: filepath.Join(dir, "missing.css"), wantErr: ErrAssetRead},
		{name: "unknown name", input: "fancy", wantErr: ErrStyleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveStyle(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ResolveStyle(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveStyle(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveStyle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
