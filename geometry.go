package resume2pdf

import (
	"fmt"
	"math"
	"strings"
)

// paperSizes maps formats to portrait dimensions in points.
var paperSizes = map[string][2]float64{
	FormatA4:     {595.28, 841.89},
	FormatLetter: {612, 792},
	FormatLegal:  {612, 1008},
}

// PageGeometry is the physical page layout in points.
type PageGeometry struct {
	Width        float64
	Height       float64
	Margin       float64
	HeaderHeight float64
	FooterHeight float64
}

// NewPageGeometry resolves validated settings into a page layout.
// A nil p yields the default geometry.
func NewPageGeometry(p *PageSettings) PageGeometry {
	if p == nil {
		p = DefaultPageSettings()
	}
	size, ok := paperSizes[strings.ToLower(p.Format)]
	if !ok {
		size = paperSizes[FormatA4]
	}
	w, h := size[0], size[1]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		w, h = h, w
	}
	return PageGeometry{
		Width:        w,
		Height:       h,
		Margin:       p.Margin,
		HeaderHeight: p.HeaderHeight,
		FooterHeight: p.FooterHeight,
	}
}

// PrintableWidth is the page width inside the margins.
func (g PageGeometry) PrintableWidth() float64 {
	return g.Width - 2*g.Margin
}

// ImageTop is where page content starts, directly below the header band.
func (g PageGeometry) ImageTop() float64 {
	return g.Margin + g.HeaderHeight
}

// PixelGeometry is PageGeometry expressed in Document Image pixels.
type PixelGeometry struct {
	PxPerPt float64
	Margin  int
	Header  int
	Footer  int
	Usable  int // slice capacity per page
}

// Pixels converts the layout to pixel units for an image imageWidth pixels
// wide, scaled to fill the printable width.
func (g PageGeometry) Pixels(imageWidth int) (PixelGeometry, error) {
	printable := g.PrintableWidth()
	if printable <= 0 {
		return PixelGeometry{}, fmt.Errorf("%w: margins leave no printable width", ErrInvalidPageGeometry)
	}
	if imageWidth <= 0 {
		return PixelGeometry{}, fmt.Errorf("%w: document image has no width", ErrInvalidPageGeometry)
	}

	ratio := float64(imageWidth) / printable
	px := PixelGeometry{
		PxPerPt: ratio,
		Margin:  int(math.Round(g.Margin * ratio)),
		Header:  int(math.Round(g.HeaderHeight * ratio)),
		Footer:  int(math.Round(g.FooterHeight * ratio)),
	}
	px.Usable = int(math.Floor(g.Height*ratio)) - 2*px.Margin - px.Header - px.Footer
	if px.Usable < 1 {
		return PixelGeometry{}, fmt.Errorf("%w: usable page height is %d px", ErrInvalidPageGeometry, px.Usable)
	}
	return px, nil
}
