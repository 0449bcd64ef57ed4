// Package hints suggests next steps for the failures resume2pdf reports.
//
// Every hint renders as "\n  hint: <text>" so callers can append it to the
// error line unconditionally; an empty string means nothing useful to add.
package hints

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/laurentxxc/resume2pdf/internal/fileutil"
)

const prefix = "\n  hint: "

// ciVariables are set by CI runners, where Chrome usually needs its sandbox off.
var ciVariables = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// IsInContainer reports whether the process runs inside a container.
// Docker creates /.dockerenv in every container. Tests replace it.
var IsInContainer = func() bool {
	return fileutil.IsFile("/.dockerenv")
}

// ForBrowserConnect explains how to point the exporter at a usable Chrome.
func ForBrowserConnect() string {
	var tips []string
	if restricted() && os.Getenv("ROD_NO_SANDBOX") != "1" {
		tips = append(tips, "set ROD_NO_SANDBOX=1 inside containers and CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to an installed Chrome or Chromium")
	}
	return join(tips)
}

func restricted() bool {
	if IsInContainer() {
		return true
	}
	return slices.ContainsFunc(ciVariables, func(name string) bool {
		return os.Getenv(name) != ""
	})
}

// ForTimeout applies to pages that did not settle before the deadline.
func ForTimeout() string {
	return line("raise --timeout for pages with slow fonts or images")
}

// ForCapture points at the root selector, the usual cause of empty captures.
func ForCapture(root string) string {
	if root == "" {
		return line("open the page in a browser and check that it renders")
	}
	return line("make sure " + root + " matches an element, or pass --root")
}

// ForPageGeometry applies when margins and bands leave no printable height.
func ForPageGeometry() string {
	return line("lower --margin, --header-height or --footer-height")
}

// ForConfigNotFound offers --config and, when one was searched, the per-user
// config location.
func ForConfigNotFound(searched []string) string {
	text := "pass --config with a path to a YAML file"
	dir := string(filepath.Separator) + "resume2pdf" + string(filepath.Separator)
	if i := slices.IndexFunc(searched, func(p string) bool { return strings.Contains(p, dir) }); i >= 0 {
		text += ", or create " + searched[i]
	}
	return line(text)
}

// ForOutputDirectory applies when a PDF could not be written.
func ForOutputDirectory() string {
	return line("make sure the output directory exists and is writable")
}

// ForStyleNotFound lists the embedded stylesheets.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return line("embedded styles are " + strings.Join(available, ", "))
}

func line(text string) string {
	if text == "" {
		return ""
	}
	return prefix + text
}

func join(tips []string) string {
	return line(strings.Join(tips, "; "))
}
