// Package assets provides the stylesheets injected into a document while it
// is rasterized for export.
//
// Styles are resolved from a single user-supplied string, in this order:
//
//   - a path (contains / or \): the file is read from disk
//   - CSS content (contains {): used as-is
//   - a name: loaded from the embedded styles/ directory
//
// The embedded "export" style forces a high-contrast light rendering and
// hides interactive controls.
package assets
