package raster

// Histogram is the full intensity histogram of one grid, built once and never
// mutated afterwards. Intensity 0 denotes "no signal" in this sensor domain:
// it is retained in Counts but excluded from the running sum used for the
// per-image mean.
type Histogram struct {
	// Counts[v] is the number of pixels with intensity v; len(Counts) is
	// the grid's MaxSample+1
	Counts []int

	// NonZeroSum and NonZeroCount accumulate only pixels with intensity != 0
	NonZeroSum   int64
	NonZeroCount int64
}

// BuildHistogram performs a single full pass over the grid.
func BuildHistogram(g *Grid) *Histogram {
	h := &Histogram{Counts: make([]int, g.MaxSample+1)}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			raw := g.At(x, y)
			h.Counts[raw]++
			if raw != 0 {
				h.NonZeroSum += int64(raw)
				h.NonZeroCount++
			}
		}
	}
	return h
}

// Mean returns the average intensity over non-zero pixels, or 0.0 when the
// grid contains no non-zero pixel.
func (h *Histogram) Mean() float64 {
	if h.NonZeroCount == 0 {
		return 0.0
	}
	return float64(h.NonZeroSum) / float64(h.NonZeroCount)
}

// Mode returns the most frequent non-zero intensity. Ties resolve to the
// lower intensity. ok is false when no non-zero pixel exists.
func (h *Histogram) Mode() (value int, ok bool) {
	best := -1
	bestCount := 0
	for v := 1; v < len(h.Counts); v++ {
		if h.Counts[v] > bestCount {
			best = v
			bestCount = h.Counts[v]
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// RawCounts returns the histogram as a sparse map of present intensities to
// pixel counts, the form carried on an ImageRecord.
func (h *Histogram) RawCounts() map[int]int {
	counts := make(map[int]int)
	for v, c := range h.Counts {
		if c > 0 {
			counts[v] = c
		}
	}
	return counts
}
