package resume2pdf

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProbeBreakpoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layout Layout
		w      int
		h      int
		want   []int
	}{
		{
			name: "scales block bottoms to image pixels",
			layout: Layout{
				Root: Rect{Width: 500, Height: 800},
				Blocks: []Rect{
					{Y: 0, Height: 140},
					{Y: 140, Height: 250},
				},
			},
			w:    1000,
			h:    1600,
			want: []int{280, 780},
		},
		{
			name: "sorts, deduplicates and drops out of range",
			layout: Layout{
				Root: Rect{Width: 400, Height: 500},
				Blocks: []Rect{
					{Y: 300, Height: 100},
					{Y: 0, Height: 100},
					{Y: 50, Height: 50},
					{Y: -20, Height: 20},
					{Y: 480, Height: 100},
				},
			},
			w:    400,
			h:    500,
			want: []int{100, 400},
		},
		{
			name: "rounds to the nearest row",
			layout: Layout{
				Root:   Rect{Width: 300},
				Blocks: []Rect{{Y: 10, Height: 10.8}},
			},
			w:    390,
			h:    1000,
			want: []int{27},
		},
		{
			name: "skips non-finite geometry",
			layout: Layout{
				Root:   Rect{Width: 100},
				Blocks: []Rect{{Height: math.NaN()}, {Y: 10, Height: math.Inf(1)}, {Height: 50}},
			},
			w:    100,
			h:    100,
			want: []int{50},
		},
		{
			name:   "no blocks",
			layout: Layout{Root: Rect{Width: 100}},
			w:      100,
			h:      100,
			want:   []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ProbeBreakpoints(tt.layout, tt.w, tt.h)
			if err != nil {
				t.Fatalf("ProbeBreakpoints() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ProbeBreakpoints() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProbeBreakpoints_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		layout Layout
		w      int
	}{
		{"root without width", Layout{Root: Rect{Height: 100}}, 100},
		{"image without width", Layout{Root: Rect{Width: 100}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ProbeBreakpoints(tt.layout, tt.w, 100)
			if !errors.Is(err, ErrMeasurement) {
				t.Errorf("ProbeBreakpoints() error = %v, want ErrMeasurement", err)
			}
		})
	}
}

func TestRect_Bottom(t *testing.T) {
	t.Parallel()

	if got := (Rect{Y: 12.5, Height: 7.5}).Bottom(); got != 20 {
		t.Errorf("Bottom() = %v, want 20", got)
	}
}
