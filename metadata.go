package resume2pdf

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Metadata is what the document says about itself.
type Metadata struct {
	Lang  string // <html lang>
	Owner string // <meta name="author">
	App   string // <meta name="application-name">
}

// ParseMetadata reads language, author and application name from markup.
// Missing values are left empty.
func ParseMetadata(r io.Reader) (Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Metadata{}, fmt.Errorf("parsing document markup: %w", err)
	}

	var md Metadata
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Html:
				if md.Lang == "" {
					md.Lang = strings.TrimSpace(attr(n, "lang"))
				}
			case atom.Meta:
				content := strings.TrimSpace(attr(n, "content"))
				switch strings.ToLower(attr(n, "name")) {
				case "author":
					if md.Owner == "" {
						md.Owner = content
					}
				case "application-name":
					if md.App == "" {
						md.App = content
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return md, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// NormalizeLang lower-cases a language tag and keeps its primary subtag
// ("en-US" -> "en"). Empty input yields DefaultLang.
func NormalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "" {
		return DefaultLang
	}
	return lang
}

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9_-]`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// OwnerSlug turns an owner name into a filename-safe slug.
// Returns "resume" when nothing usable remains.
func OwnerSlug(owner string) string {
	s := strings.ToLower(owner)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "resume"
	}
	return s
}

// isoDate formats t as an ISO 8601 calendar date in UTC.
func isoDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

// DefaultFilename builds resume-<owner-slug>-<LANG>-<yyyy-mm-dd>.pdf.
func DefaultFilename(owner, lang string, t time.Time) string {
	return fmt.Sprintf("resume-%s-%s-%s.pdf", OwnerSlug(owner), strings.ToUpper(NormalizeLang(lang)), isoDate(t))
}
