package resume2pdf

import "slices"

// Slice is a contiguous pixel-row range [Start, End) of the Document Image.
type Slice struct {
	Start int
	End   int
}

// Height returns the number of pixel rows in the slice.
func (s Slice) Height() int {
	return s.End - s.Start
}

// NormalizeBreakpoints drops offsets outside (0, height], sorts the rest and
// removes duplicates. The input is not modified.
func NormalizeBreakpoints(raw []int, height int) []int {
	out := make([]int, 0, len(raw))
	for _, b := range raw {
		if b > 0 && b <= height {
			out = append(out, b)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Paginate cuts [0, height) into slices of at most usable rows.
// Each slice ends at the largest breakpoint that fits, or is force-cut at
// capacity when none does. breakpoints must be normalized.
// Returns nil for an empty document or when usable < 1.
func Paginate(height, usable int, breakpoints []int) []Slice {
	if height <= 0 || usable < 1 {
		return nil
	}

	var out []Slice
	for pos := 0; pos < height; {
		maxEnd := min(height, pos+usable)
		end := maxEnd
		// Index of the first breakpoint > maxEnd; the one before it is the
		// largest candidate.
		i, found := slices.BinarySearch(breakpoints, maxEnd)
		if found {
			i++
		}
		if i > 0 && breakpoints[i-1] > pos {
			end = breakpoints[i-1]
		}
		out = append(out, Slice{Start: pos, End: end})
		pos = end
	}
	return out
}
