package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrExporterInit is reported for inputs no exporter could take.
var ErrExporterInit = errors.New("failed to initialize exporter")

// exportResult holds the outcome of a single export.
type exportResult struct {
	Source     string
	OutputPath string // empty when nothing was written
	Pages      int
	Dropped    int
	Fallback   bool // the browser's print output was written instead
	Err        error
	Duration   time.Duration
}

// exportBatch exports sources concurrently using the pool.
// Results keep the order of sources.
func exportBatch(ctx context.Context, pool Pool, sources []source, params *exportParams, dest *destination) []exportResult {
	if len(sources) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(sources))
	results := make([]exportResult, len(sources))
	jobs := make(chan int, len(sources))
	for i := range sources {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range concurrency {
		wg.Go(func() {
			exp := pool.Acquire()
			if exp == nil {
				for idx := range jobs {
					results[idx] = exportResult{Source: sources[idx].Name, Err: ErrExporterInit}
				}
				return
			}
			defer pool.Release(exp)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = exportResult{Source: sources[idx].Name, Err: err}
					continue
				}
				results[idx] = exportOne(ctx, exp, sources[idx], params, dest)
			}
		})
	}

	wg.Wait()
	return results
}

// exportOne runs a single export. The sink configured on the exporter
// writes the file; this only records where it went.
func exportOne(ctx context.Context, exp Exporter, src source, params *exportParams, dest *destination) exportResult {
	start := time.Now()
	result := exportResult{Source: src.Name}

	input := params.input
	input.URL = src.URL
	input.HTML = src.HTML

	res, err := exp.Export(ctx, input)
	result.Duration = time.Since(start)
	result.Err = err
	if res == nil {
		return result
	}

	result.Pages = res.Pages
	result.Dropped = res.Dropped
	result.Fallback = res.Fallback
	if res.Filename != "" && (err == nil || res.Fallback) {
		result.OutputPath = dest.path(res.Filename)
	}
	return result
}

// resultSummary holds the count of succeeded and failed exports.
type resultSummary struct {
	Succeeded int
	Failed    int
}

func countResults(results []exportResult) resultSummary {
	var summary resultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults writes one line per result and a summary for batches.
// Failures go to stderr with a hint. Returns the error to exit with.
func printResults(results []exportResult, quiet, verbose bool, root string, env *Environment) error {
	summary := countResults(results)

	var first error
	for _, r := range results {
		if r.Err != nil {
			if first == nil {
				first = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.Source, r.Err, hintFor(r.Err, root, ""))
			if r.Fallback && r.OutputPath != "" {
				fmt.Fprintf(env.Stderr, "  print fallback saved to %s\n", r.OutputPath)
			}
			continue
		}

		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.Source, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if summary.Failed > 0 {
		return &batchError{failed: summary.Failed, first: first}
	}
	return nil
}
