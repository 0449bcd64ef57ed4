// Package resume2pdf exports a rendered HTML document to a paginated PDF
// using headless Chrome.
//
// # Quick Start
//
// Create an exporter, export a page, and close when done:
//
//	exp := resume2pdf.NewExporter()
//	defer exp.Close()
//
//	result, err := exp.Export(ctx, resume2pdf.Input{
//	    URL: "https://example.com/resume",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.PDF, 0644)
//
// Export always returns a Result. On failure Result.Status is StatusError
// and, when the print fallback succeeded, Result.Fallback is true and
// Result.PDF holds the browser-printed document.
//
// # Export Pipeline
//
// An export runs these stages:
//
//  1. Light theme and export stylesheet applied to the live document
//  2. Root subtree rasterized as one tall image (go-rod)
//  3. Block geometry measured and turned into preferred breakpoints
//  4. Greedy page breaking within the usable page height
//  5. Blank slices dropped
//  6. Pages composed with header and footer bands (fpdf)
//  7. Document style restored, PDF handed to the Sink
//
// A failed measurement degrades to fixed-height cuts. A failed header or
// footer leaves that band empty. Any other failure aborts the export and
// falls back to the browser's own print engine.
//
// # Configuration
//
// Use functional options to customize the exporter:
//
//	exp := resume2pdf.NewExporter(
//	    resume2pdf.WithTimeout(2 * time.Minute),
//	    resume2pdf.WithSink(resume2pdf.DirSink{Dir: "out"}),
//	    resume2pdf.WithLogger(slog.Default()),
//	    resume2pdf.WithVerify(true),
//	)
//
// Per-export options are passed via Input:
//
//	result, err := exp.Export(ctx, resume2pdf.Input{
//	    HTML:  markup,
//	    Owner: "Jane Doe",
//	    Lang:  "fr",
//	    Page:  &resume2pdf.PageSettings{Format: resume2pdf.FormatLetter},
//	    Decoration: &resume2pdf.Decoration{
//	        Header: "{owner} ({date})",
//	        Footer: "Page {page} of {pages}",
//	    },
//	})
//
// # Lifecycle Events
//
// Observers receive a Start event, then exactly one Complete or Error event
// per export:
//
//	resume2pdf.WithObserver(resume2pdf.ObserverFunc(func(ev resume2pdf.Event) {
//	    fmt.Println(ev.Kind, ev.Source)
//	}))
//
// # Parallel Processing
//
// For batch exports, use ExporterPool to manage multiple browser instances:
//
//	pool := resume2pdf.NewExporterPool(4)
//	defer pool.Close()
//
//	exp := pool.Acquire()
//	defer pool.Release(exp)
//	result, err := exp.Export(ctx, input)
//
// # Browser Requirements
//
// Export requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package resume2pdf
