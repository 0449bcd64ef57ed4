package hints

import (
	"path/filepath"
	"strings"
	"testing"
)

// Notes:
// - ForBrowserConnect reads the process environment and the IsInContainer
//   hook, so its cases run sequentially with t.Setenv.

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name      string
		container bool
		env       map[string]string
		want      []string
		absent    []string
	}{
		{
			name: "CI without sandbox override",
			env:  map[string]string{"GITHUB_ACTIONS": "true"},
			want: []string{"ROD_NO_SANDBOX=1", "ROD_BROWSER_BIN"},
		},
		{
			name:      "container",
			container: true,
			want:      []string{"ROD_NO_SANDBOX=1"},
		},
		{
			name:      "sandbox already disabled",
			container: true,
			env:       map[string]string{"ROD_NO_SANDBOX": "1"},
			want:      []string{"ROD_BROWSER_BIN"},
			absent:    []string{"ROD_NO_SANDBOX"},
		},
		{
			name:   "desktop only needs a binary",
			want:   []string{"ROD_BROWSER_BIN"},
			absent: []string{"ROD_NO_SANDBOX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := IsInContainer
			t.Cleanup(func() { IsInContainer = orig })
			IsInContainer = func() bool { return tt.container }

			for _, name := range append(ciVariables, "ROD_NO_SANDBOX", "ROD_BROWSER_BIN") {
				t.Setenv(name, tt.env[name])
			}

			got := ForBrowserConnect()
			if !strings.HasPrefix(got, prefix) {
				t.Errorf("ForBrowserConnect() = %q, want %q prefix", got, prefix)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("ForBrowserConnect() = %q, want it to mention %s", got, w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(got, a) {
					t.Errorf("ForBrowserConnect() = %q, should not mention %s", got, a)
				}
			}
		})
	}
}

func TestForBrowserConnect_FullyConfigured(t *testing.T) {
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return true }

	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	if got := ForBrowserConnect(); got != "" {
		t.Errorf("ForBrowserConnect() = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// Single-line hints
// ---------------------------------------------------------------------------

func TestSingleLineHints(t *testing.T) {
	t.Parallel()

	userConfig := filepath.Join("home", "jane", ".config", "resume2pdf", "work.yaml")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"timeout", ForTimeout(), prefix + "raise --timeout for pages with slow fonts or images"},
		{"capture with root", ForCapture("#cv"), prefix + "make sure #cv matches an element, or pass --root"},
		{"capture without root", ForCapture(""), prefix + "open the page in a browser and check that it renders"},
		{"page geometry", ForPageGeometry(), prefix + "lower --margin, --header-height or --footer-height"},
		{"output directory", ForOutputDirectory(), prefix + "make sure the output directory exists and is writable"},
		{"config nothing searched", ForConfigNotFound(nil), prefix + "pass --config with a path to a YAML file"},
		{
			name: "config offers user location",
			got:  ForConfigNotFound([]string{"work.yaml", userConfig}),
			want: prefix + "pass --config with a path to a YAML file, or create " + userConfig,
		},
		{"styles listed", ForStyleNotFound([]string{"export", "plain"}), prefix + "embedded styles are export, plain"},
		{"no styles", ForStyleNotFound(nil), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
