package segmentation

import "github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/raster"

// Mask is a per-pixel boolean membership grid for one shade set.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask returns an all-false mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, bits: make([]bool, width*height)}
}

// At reports whether (x, y) is marked.
func (m *Mask) At(x, y int) bool {
	return m.bits[y*m.Width+x]
}

// Set marks (x, y).
func (m *Mask) Set(x, y int) {
	m.bits[y*m.Width+x] = true
}

// BuildMasks classifies every pixel of the grid against the two shade sets.
// A pixel is dark when its intensity is in the dark set and not in the bright
// set, bright in the symmetric case, and unmarked otherwise. A value present
// in both sets is ambiguous and lands in neither mask, so the two masks are
// disjoint by construction.
func BuildMasks(g *raster.Grid, dark, bright ShadeSet) (darkMask, brightMask *Mask) {
	darkMask = NewMask(g.Width, g.Height)
	brightMask = NewMask(g.Width, g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.At(x, y)
			inDark := dark.Contains(v)
			inBright := bright.Contains(v)
			switch {
			case inDark && !inBright:
				darkMask.Set(x, y)
			case inBright && !inDark:
				brightMask.Set(x, y)
			}
		}
	}
	return darkMask, brightMask
}
