package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/laurentxxc/resume2pdf/internal/assets"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: resume2pdf [flags] <input>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export HTML pages to paginated PDF documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file, directory of HTML files, http(s)/file URL, or - for stdin")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (.pdf, single input) or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --filename <s>        Output file name (single input only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --format <s>          Page format: a4, letter, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in points (0-144, default 20)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Header/Footer:")
	fmt.Fprintln(w, "      --header <s>          Header template")
	fmt.Fprintln(w, "      --footer <s>          Footer template")
	fmt.Fprintln(w, "      --header-height <f>   Header band in points (default 28)")
	fmt.Fprintln(w, "      --footer-height <f>   Footer band in points (default 20)")
	fmt.Fprintln(w, "      --no-header           Disable header")
	fmt.Fprintln(w, "      --no-footer           Disable footer")
	fmt.Fprintln(w, "                            Tokens: {app}, {owner}, {lang}, {date}, {page}, {pages}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --lang <s>            Language (default: <html lang>, then en)")
	fmt.Fprintln(w, "      --owner <s>           Owner name (default: author meta)")
	fmt.Fprintln(w, "      --app <s>             Application name (default: application-name meta)")
	fmt.Fprintln(w, "      --root <sel>          Exported subtree (default #resume-root, then body)")
	fmt.Fprintln(w, "      --blocks <sel,...>    Selectors never split across pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --scale <f>           Rendering scale (0.5-4, default 1.3)")
	fmt.Fprintf(w, "      --stylesheet <s>      Style name (%s), CSS file or inline CSS\n", strings.Join(assets.StyleNames(), ", "))
	fmt.Fprintln(w, "      --verify              Check the page count of each PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show progress and debug logs")
	fmt.Fprintln(w, "      --version             Print version and exit")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  resume2pdf resume.html")
	fmt.Fprintln(w, "  resume2pdf -o cv.pdf --owner \"Jane Doe\" https://example.com/resume")
	fmt.Fprintln(w, "  resume2pdf --format a4 --no-header -o out/ ./pages/")
	fmt.Fprintln(w, "  curl -s https://example.com/resume | resume2pdf -")
}
