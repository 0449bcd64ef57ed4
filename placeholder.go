package resume2pdf

import (
	"strconv"
	"strings"
)

// Tokens are the substitution values for header and footer templates.
type Tokens struct {
	App   string
	Owner string
	Lang  string // rendered upper-cased
	Date  string // ISO 8601 calendar date
	Page  int    // 1-based
	Pages int
}

// RenderTemplate substitutes the recognized tokens in tpl.
// Unrecognized braces are left verbatim and substituted values are not
// expanded again.
func RenderTemplate(tpl string, t Tokens) string {
	if !strings.Contains(tpl, "{") {
		return tpl
	}
	r := strings.NewReplacer(
		"{app}", t.App,
		"{owner}", t.Owner,
		"{lang}", strings.ToUpper(t.Lang),
		"{date}", t.Date,
		"{page}", strconv.Itoa(t.Page),
		"{pages}", strconv.Itoa(t.Pages),
	)
	return r.Replace(tpl)
}
