package resume2pdf

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned box in CSS pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns the lower edge of the box.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Layout is the on-screen geometry of the exported subtree.
// Block rectangles are relative to the top-left corner of Root.
type Layout struct {
	Root   Rect   `json:"root"`
	Blocks []Rect `json:"blocks"`
}

// ProbeBreakpoints converts block bottoms to Document Image rows and returns
// the normalized Breakpoint Set. An image imageWidth pixels wide is assumed
// to show exactly the root subtree.
func ProbeBreakpoints(layout Layout, imageWidth, imageHeight int) ([]int, error) {
	if layout.Root.Width <= 0 {
		return nil, fmt.Errorf("%w: root has no width", ErrMeasurement)
	}
	if imageWidth <= 0 {
		return nil, fmt.Errorf("%w: document image has no width", ErrMeasurement)
	}

	ratio := float64(imageWidth) / layout.Root.Width
	raw := make([]int, 0, len(layout.Blocks))
	for _, b := range layout.Blocks {
		bottom := b.Bottom()
		if math.IsNaN(bottom) || math.IsInf(bottom, 0) {
			continue
		}
		raw = append(raw, int(math.Round(bottom*ratio)))
	}
	return NormalizeBreakpoints(raw, imageHeight), nil
}
