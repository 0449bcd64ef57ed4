// Package htmlpath resolves relative asset references in HTML markup that is
// loaded from somewhere other than its source directory.
package htmlpath

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// assetAttrs maps elements to the attribute that loads an asset.
var assetAttrs = map[atom.Atom]string{
	atom.Img:  "src",
	atom.Link: "href", // stylesheets and icons
}

// Resolve rewrites relative img[src] and link[href] references in markup to
// file URLs under baseDir. References that are URLs, absolute paths, anchors,
// or that escape baseDir are left unchanged. An empty baseDir returns markup
// as is.
func Resolve(markup, baseDir string) (string, error) {
	if baseDir == "" {
		return markup, nil
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, fragment, err := parse(markup)
	if err != nil {
		return "", err
	}
	rewrite(doc, absBase)
	return render(doc, fragment)
}

// parse handles both full documents and body fragments.
func parse(markup string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(markup))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		doc, err := html.Parse(strings.NewReader(markup))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, true, err
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

// render serializes doc. Fragments render without an html/body wrapper.
func render(doc *html.Node, fragment bool) (string, error) {
	var buf strings.Builder
	if !fragment {
		err := html.Render(&buf, doc)
		return buf.String(), err
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewrite(n *html.Node, base string) {
	if n.Type == html.ElementNode {
		if key, ok := assetAttrs[n.DataAtom]; ok {
			for i, a := range n.Attr {
				if a.Key != key || !isRelative(a.Val) {
					continue
				}
				target := filepath.Join(base, filepath.FromSlash(a.Val))
				if !within(target, base) {
					continue
				}
				n.Attr[i].Val = fileURL(target)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewrite(c, base)
	}
}

// isRelative reports whether ref is a relative file path.
func isRelative(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		// Single-letter schemes are Windows drive letters.
		return false
	}
	return !filepath.IsAbs(ref) && !strings.HasPrefix(ref, "/")
}

// within reports whether path is base or below it.
func within(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileURL(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}
