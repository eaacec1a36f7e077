// Package segmentation turns a sampled intensity grid into the two reconciled
// "largest region" results (darkest and brightest contiguous blobs) with
// stable, deterministic geometry. It implements the adaptive two-pass
// thresholding, the connected-component search, and the fallback and
// exclusivity rules that guarantee every image yields a usable pair.
package segmentation

// ShadeSet is a set of intensity values treated as dark-candidate or
// bright-candidate.
type ShadeSet map[int]struct{}

// Contains reports whether the value is in the set.
func (s ShadeSet) Contains(v int) bool {
	_, ok := s[v]
	return ok
}

// seedCount is the number of extreme present intensities used to seed each
// shade set.
const seedCount = 3

// darkSeeds returns up to seedCount distinct present intensities closest to 0,
// scanning the histogram upward from the dark extreme. The scan never crosses
// the range midpoint, so on sparse histograms the dark seeds cannot swallow
// bright-side values.
func darkSeeds(counts []int, maxSample int) []int {
	seeds := make([]int, 0, seedCount)
	for v := 0; v <= maxSample/2 && len(seeds) < seedCount; v++ {
		if counts[v] > 0 {
			seeds = append(seeds, v)
		}
	}
	return seeds
}

// brightSeeds returns up to seedCount distinct present intensities closest to
// the maximum sample, scanning downward from the bright extreme to the range
// midpoint.
func brightSeeds(counts []int, maxSample int) []int {
	seeds := make([]int, 0, seedCount)
	for v := maxSample; v > maxSample/2 && len(seeds) < seedCount; v-- {
		if counts[v] > 0 {
			seeds = append(seeds, v)
		}
	}
	return seeds
}

// expandSeeds builds a shade set by widening every seed by the tolerance
// radius. Values at or below 0 and values beyond maxSample are excluded.
func expandSeeds(seeds []int, radius, maxSample int) ShadeSet {
	set := make(ShadeSet)
	for _, seed := range seeds {
		for v := seed - radius; v <= seed+radius; v++ {
			if v <= 0 || v > maxSample {
				continue
			}
			set[v] = struct{}{}
		}
	}
	return set
}

// BuildShadeSets selects the dark and bright seed intensities from the
// histogram and expands them into tolerance-banded shade sets. The two sets
// may overlap at small radius; the mask builder resolves that ambiguity.
func BuildShadeSets(counts []int, maxSample, radius int) (dark, bright ShadeSet) {
	dark = expandSeeds(darkSeeds(counts, maxSample), radius, maxSample)
	bright = expandSeeds(brightSeeds(counts, maxSample), radius, maxSample)
	return dark, bright
}
