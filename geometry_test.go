package resume2pdf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPageGeometry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		settings *PageSettings
		want     PageGeometry
	}{
		{
			name:     "nil uses A4 portrait defaults",
			settings: nil,
			want:     PageGeometry{Width: 595.28, Height: 841.89, Margin: 20, HeaderHeight: 28, FooterHeight: 20},
		},
		{
			name:     "letter landscape swaps sides",
			settings: &PageSettings{Format: "Letter", Orientation: "landscape", Margin: 10, HeaderHeight: 5, FooterHeight: 6},
			want:     PageGeometry{Width: 792, Height: 612, Margin: 10, HeaderHeight: 5, FooterHeight: 6},
		},
		{
			name:     "legal with empty orientation is portrait",
			settings: &PageSettings{Format: FormatLegal},
			want:     PageGeometry{Width: 612, Height: 1008},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewPageGeometry(tt.settings)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewPageGeometry() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPageGeometry_Bands(t *testing.T) {
	t.Parallel()

	g := PageGeometry{Width: 612, Height: 792, Margin: 20, HeaderHeight: 28, FooterHeight: 20}
	if got := g.PrintableWidth(); got != 572 {
		t.Errorf("PrintableWidth() = %v, want 572", got)
	}
	if got := g.ImageTop(); got != 48 {
		t.Errorf("ImageTop() = %v, want 48", got)
	}
}

func TestPageGeometry_Pixels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		geom       PageGeometry
		imageWidth int
		want       PixelGeometry
	}{
		{
			name:       "letter at two pixels per point",
			geom:       PageGeometry{Width: 612, Height: 792, Margin: 20, HeaderHeight: 28, FooterHeight: 20},
			imageWidth: 1144,
			want:       PixelGeometry{PxPerPt: 2, Margin: 40, Header: 56, Footer: 40, Usable: 1408},
		},
		{
			name:       "landscape at one pixel per point",
			geom:       PageGeometry{Width: 792, Height: 612, Margin: 20, HeaderHeight: 28, FooterHeight: 20},
			imageWidth: 752,
			want:       PixelGeometry{PxPerPt: 1, Margin: 20, Header: 28, Footer: 20, Usable: 524},
		},
		{
			name:       "no bands or margins",
			geom:       PageGeometry{Width: 100, Height: 150},
			imageWidth: 200,
			want:       PixelGeometry{PxPerPt: 2, Usable: 300},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.geom.Pixels(tt.imageWidth)
			if err != nil {
				t.Fatalf("Pixels() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Pixels() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPageGeometry_Pixels_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		geom       PageGeometry
		imageWidth int
	}{
		{
			name:       "margins consume the width",
			geom:       PageGeometry{Width: 612, Height: 792, Margin: 306},
			imageWidth: 1000,
		},
		{
			name:       "bands consume the height",
			geom:       PageGeometry{Width: 612, Height: 600, Margin: 144, HeaderHeight: 200, FooterHeight: 200},
			imageWidth: 324,
		},
		{
			name:       "empty image",
			geom:       PageGeometry{Width: 612, Height: 792},
			imageWidth: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.geom.Pixels(tt.imageWidth)
			if !errors.Is(err, ErrInvalidPageGeometry) {
				t.Errorf("Pixels() error = %v, want ErrInvalidPageGeometry", err)
			}
		})
	}
}
