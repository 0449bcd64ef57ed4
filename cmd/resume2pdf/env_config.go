package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/laurentxxc/resume2pdf/internal/config"
)

// envPrefix namespaces the environment variables read by the command.
const envPrefix = "RESUME2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // RESUME2PDF_CONFIG: config file name or path
	Stylesheet string        // RESUME2PDF_STYLESHEET: style name, CSS path or inline CSS
	Timeout    time.Duration // RESUME2PDF_TIMEOUT: per-export timeout
	OutputDir  string        // RESUME2PDF_OUTPUT_DIR: default output directory
	Owner      string        // RESUME2PDF_OWNER: owner name
	Lang       string        // RESUME2PDF_LANG: language
	Format     string        // RESUME2PDF_FORMAT: a4, letter, legal
	Workers    int           // RESUME2PDF_WORKERS: parallel workers
}

// knownEnvVars lists valid RESUME2PDF_* environment variables.
var knownEnvVars = map[string]bool{
	"RESUME2PDF_CONFIG":     true,
	"RESUME2PDF_STYLESHEET": true,
	"RESUME2PDF_TIMEOUT":    true,
	"RESUME2PDF_OUTPUT_DIR": true,
	"RESUME2PDF_OWNER":      true,
	"RESUME2PDF_LANG":       true,
	"RESUME2PDF_FORMAT":     true,
	"RESUME2PDF_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("RESUME2PDF_CONFIG"),
		Stylesheet: os.Getenv("RESUME2PDF_STYLESHEET"),
		OutputDir:  os.Getenv("RESUME2PDF_OUTPUT_DIR"),
		Owner:      os.Getenv("RESUME2PDF_OWNER"),
		Lang:       os.Getenv("RESUME2PDF_LANG"),
		Format:     os.Getenv("RESUME2PDF_FORMAT"),
	}

	if timeout := os.Getenv("RESUME2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("RESUME2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	return cfg
}

// warnUnknownEnvVars reports unrecognized RESUME2PDF_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config values the file left empty.
// Precedence: CLI flags > environment > config file > defaults
// (flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Stylesheet != "" && cfg.Export.Stylesheet == "" {
		cfg.Export.Stylesheet = env.Stylesheet
	}
	if env.Timeout > 0 && cfg.Export.Timeout == "" {
		cfg.Export.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 && cfg.Export.Workers == 0 {
		cfg.Export.Workers = env.Workers
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Owner != "" && cfg.Document.Owner == "" {
		cfg.Document.Owner = env.Owner
	}
	if env.Lang != "" && cfg.Document.Lang == "" {
		cfg.Document.Lang = env.Lang
	}
	if env.Format != "" && cfg.Page.Format == "" {
		cfg.Page.Format = env.Format
	}
}
