// Package config loads YAML configuration for the resume2pdf command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096 // Output directory or stylesheet path
	MaxTemplateLength    = 500  // Header/footer template
	MaxNameLength        = 100  // Owner or application name
	MaxLangLength        = 35   // BCP 47 tag
	MaxSelectorLength    = 500  // CSS selector
	MaxFormatLength      = 10   // "letter", "a4", "legal"
	MaxOrientationLength = 10   // "portrait", "landscape"
	MaxFilenameLength    = 255  // Output filename
)

// Numeric bounds, mirrored from the exporter so a bad file fails at load.
const (
	MaxMargin     = 144.0
	MaxBandHeight = 200.0
	MinScale      = 0.5
	MaxScale      = 4.0
	MaxWorkers    = 32
	MaxBlocks     = 20
)

// configDirName is the directory under the user config dir.
const configDirName = "resume2pdf"

// Config holds all configuration for the resume2pdf command.
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Page     PageConfig     `yaml:"page"`
	Header   BandConfig     `yaml:"header"`
	Footer   BandConfig     `yaml:"footer"`
	Document DocumentConfig `yaml:"document"`
	Export   ExportConfig   `yaml:"export"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = current directory
	Filename   string `yaml:"filename"`   // Empty = resume-<owner>-<LANG>-<date>.pdf
}

// PageConfig defines PDF page settings. Zero values and nil mean defaults.
type PageConfig struct {
	Format      string   `yaml:"format"`      // "a4", "letter", "legal"
	Orientation string   `yaml:"orientation"` // "portrait", "landscape"
	Margin      *float64 `yaml:"margin"`      // points
}

// BandConfig defines a header or footer band.
type BandConfig struct {
	Disabled bool     `yaml:"disabled"`
	Template string   `yaml:"template"` // Empty = default template
	Height   *float64 `yaml:"height"`   // points, nil = default
}

// DocumentConfig overrides what the document says about itself.
type DocumentConfig struct {
	Owner  string   `yaml:"owner"`
	Lang   string   `yaml:"lang"`
	App    string   `yaml:"app"`
	Root   string   `yaml:"root"`   // CSS selector of the exported subtree
	Blocks []string `yaml:"blocks"` // CSS selectors never split across pages
}

// ExportConfig defines rendering and runtime options.
type ExportConfig struct {
	Scale      float64 `yaml:"scale"`      // 0 = default
	Timeout    string  `yaml:"timeout"`    // Go duration, e.g. "90s"
	Stylesheet string  `yaml:"stylesheet"` // style name, CSS file path or inline CSS
	Verify     bool    `yaml:"verify"`     // re-read each PDF and check its page count
	Workers    int     `yaml:"workers"`    // 0 = auto
}

// TimeoutDuration parses Export.Timeout. Empty yields 0.
func (e ExportConfig) TimeoutDuration() (time.Duration, error) {
	if e.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: export.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: export.timeout: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.filename", c.Output.Filename, MaxFilenameLength},
		{"page.format", c.Page.Format, MaxFormatLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"header.template", c.Header.Template, MaxTemplateLength},
		{"footer.template", c.Footer.Template, MaxTemplateLength},
		{"document.owner", c.Document.Owner, MaxNameLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"document.app", c.Document.App, MaxNameLength},
		{"document.root", c.Document.Root, MaxSelectorLength},
		{"export.stylesheet", c.Export.Stylesheet, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if len(c.Document.Blocks) > MaxBlocks {
		return fmt.Errorf("%w: document.blocks: %d selectors (max %d)", ErrInvalidValue, len(c.Document.Blocks), MaxBlocks)
	}
	for i, b := range c.Document.Blocks {
		name := fmt.Sprintf("document.blocks[%d]", i)
		if err := validateFieldLength(name, b, MaxSelectorLength); err != nil {
			return err
		}
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("%w: %s: empty selector", ErrInvalidValue, name)
		}
	}

	if c.Output.Filename != "" && strings.ContainsAny(c.Output.Filename, `/\`) {
		return fmt.Errorf("%w: output.filename: %q must be a bare file name", ErrInvalidValue, c.Output.Filename)
	}
	if f := strings.ToLower(c.Page.Format); f != "" && !slices.Contains([]string{"a4", "letter", "legal"}, f) {
		return fmt.Errorf("%w: page.format: %q (must be a4, letter, or legal)", ErrInvalidValue, c.Page.Format)
	}
	if o := strings.ToLower(c.Page.Orientation); o != "" && o != "portrait" && o != "landscape" {
		return fmt.Errorf("%w: page.orientation: %q (must be portrait or landscape)", ErrInvalidValue, c.Page.Orientation)
	}
	if err := validateRange("page.margin", c.Page.Margin, MaxMargin); err != nil {
		return err
	}
	if err := validateRange("header.height", c.Header.Height, MaxBandHeight); err != nil {
		return err
	}
	if err := validateRange("footer.height", c.Footer.Height, MaxBandHeight); err != nil {
		return err
	}
	if s := c.Export.Scale; s != 0 && (s < MinScale || s > MaxScale) {
		return fmt.Errorf("%w: export.scale: must be between %.1f and %.1f, got %.2f", ErrInvalidValue, MinScale, MaxScale, s)
	}
	if c.Export.Workers < 0 || c.Export.Workers > MaxWorkers {
		return fmt.Errorf("%w: export.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Export.Workers)
	}
	if _, err := c.Export.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// validateRange checks that an optional value lies in [0, maxValue].
func validateRange(fieldName string, v *float64, maxValue float64) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > maxValue {
		return fmt.Errorf("%w: %s: must be between 0 and %.0f, got %.2f", ErrInvalidValue, fieldName, maxValue, *v)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that defers every choice to the
// exporter defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := decodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists where a config name is looked up, in order.
// Extensions .yaml then .yml; current directory, then the user config dir.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
