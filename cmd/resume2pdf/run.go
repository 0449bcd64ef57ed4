package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/laurentxxc/resume2pdf"
)

// run resolves configuration, inputs and output, then exports every input
// through a pool of exporters.
func run(ctx context.Context, inputs []string, flags *cliFlags, logger *slog.Logger, env *Environment) (root string, err error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return "", err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	params, err := buildParams(cfg)
	if err != nil {
		return "", err
	}

	sources, err := resolveSources(inputs, env.Stdin)
	if err != nil {
		return params.root, err
	}
	if len(sources) > 1 && cfg.Output.Filename != "" {
		return params.root, fmt.Errorf("%w: --filename needs a single input, got %d", ErrUsage, len(sources))
	}

	dest, err := resolveOutput(flags.output, cfg.Output.DefaultDir, len(sources))
	if err != nil {
		return params.root, err
	}

	var progress io.Writer
	if flags.common.verbose {
		progress = env.Stderr
	}
	size := min(resume2pdf.ResolvePoolSize(cfg.Export.Workers), len(sources))
	pool := newPool(size, exporterOptions(params, dest, logger, env, progress)...)
	defer func() {
		if closeErr := pool.Close(); closeErr != nil {
			logger.Warn("closing browsers", "error", closeErr)
		}
	}()
	logger.Debug("exporting", "inputs", len(sources), "workers", size)

	results := exportBatch(ctx, pool, sources, params, dest)
	return params.root, printResults(results, flags.common.quiet, flags.common.verbose, params.root, env)
}
