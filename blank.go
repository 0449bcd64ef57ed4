package resume2pdf

import (
	"image"
	"image/color"
	"math"
)

// BlankDetector classifies slices by sampling their pixels.
type BlankDetector struct {
	Samples        int     // target sample count per image
	AlphaThreshold float64 // minimum opacity (0-1) for a visible pixel
	WhiteThreshold float64 // brightness (0-1) below which a channel counts as ink
	MinInkRatio    float64 // below this fraction of ink samples the slice is blank
}

// DefaultBlankDetector samples ~400 points and drops slices with under 2% ink.
var DefaultBlankDetector = BlankDetector{
	Samples:        400,
	AlphaThreshold: 0.04,
	WhiteThreshold: 0.96,
	MinInkRatio:    0.02,
}

// IsBlank reports whether img has no meaningful visible content.
// Unreadable pixel data is never blank.
func (d BlankDetector) IsBlank(img image.Image) bool {
	ratio, ok := d.InkRatio(img)
	if !ok {
		return false
	}
	return ratio < d.MinInkRatio
}

// InkRatio returns the fraction of sampled pixels that are visibly non-white.
// ok is false when there is nothing to sample.
func (d BlankDetector) InkRatio(img image.Image) (ratio float64, ok bool) {
	if img == nil {
		return 0, false
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return 0, false
	}

	stride := d.stride(w, h)
	alphaMin := uint8(math.Floor(d.AlphaThreshold * 255))
	whiteMin := uint8(math.Ceil(d.WhiteThreshold * 255))

	// Slices thinner than half a stride are sampled through their middle.
	y0 := b.Min.Y + min(stride/2, (h-1)/2)
	x0 := b.Min.X + min(stride/2, (w-1)/2)

	var total, ink int
	for y := y0; y < b.Max.Y; y += stride {
		for x := x0; x < b.Max.X; x += stride {
			total++
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A > alphaMin && (c.R < whiteMin || c.G < whiteMin || c.B < whiteMin) {
				ink++
			}
		}
	}
	if total == 0 {
		return 0, false
	}
	return float64(ink) / float64(total), true
}

// stride spaces samples so their count stays near d.Samples at any resolution.
func (d BlankDetector) stride(w, h int) int {
	samples := d.Samples
	if samples < 1 {
		samples = DefaultBlankDetector.Samples
	}
	s := int(math.Sqrt(float64(w) * float64(h) / float64(samples)))
	return max(s, 1)
}
