package segmentation

import "github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/raster"

// Default tuning of the two-pass thresholding.
const (
	// BaseRadius is the shade-set tolerance radius on the first pass.
	BaseRadius = 1

	// EscalatedRadius is the widened radius used when the first pass finds
	// regions that are too small relative to the image area.
	EscalatedRadius = 2

	// AreaCapRatio is the hard cap: a component covering more than this
	// fraction of the image is discarded as background.
	AreaCapRatio = 0.40

	// MinAreaRatio is the floor that triggers the single escalation.
	MinAreaRatio = 0.05
)

// Params tunes the segmentation passes. The zero value is not usable; use
// DefaultParams.
type Params struct {
	BaseRadius      int
	EscalatedRadius int
	AreaCapRatio    float64
	MinAreaRatio    float64
}

// DefaultParams returns the tuning from the reference dataset runs.
func DefaultParams() Params {
	return Params{
		BaseRadius:      BaseRadius,
		EscalatedRadius: EscalatedRadius,
		AreaCapRatio:    AreaCapRatio,
		MinAreaRatio:    MinAreaRatio,
	}
}

// Result carries the selected components of the final pass together with the
// masks that produced them; the reconciler re-walks those masks.
type Result struct {
	Dark   Component
	Bright Component

	DarkMask   *Mask
	BrightMask *Mask

	// Radius is the tolerance radius of the pass that produced the masks
	Radius int
}

// Segment runs the two-pass adaptive thresholding over a grid and its
// histogram.
//
// Pass 1 uses the base radius. If either selected component falls below the
// minimum area floor, the masks are discarded and a single second pass runs
// with the escalated radius; a side's pass-2 component supersedes its pass-1
// component only when non-empty. There is never a third pass.
func Segment(g *raster.Grid, hist *raster.Histogram, p Params) Result {
	maxArea := int(p.AreaCapRatio * float64(g.Area()))
	minArea := int(p.MinAreaRatio * float64(g.Area()))

	res := runPass(g, hist, p.BaseRadius, maxArea)

	if res.Dark.Count < minArea || res.Bright.Count < minArea {
		escalated := runPass(g, hist, p.EscalatedRadius, maxArea)
		if escalated.Dark.Empty() {
			escalated.Dark = res.Dark
		}
		if escalated.Bright.Empty() {
			escalated.Bright = res.Bright
		}
		res = escalated
	}
	return res
}

func runPass(g *raster.Grid, hist *raster.Histogram, radius, maxArea int) Result {
	dark, bright := BuildShadeSets(hist.Counts, g.MaxSample, radius)
	darkMask, brightMask := BuildMasks(g, dark, bright)
	return Result{
		Dark:       LargestComponent(darkMask, maxArea),
		Bright:     LargestComponent(brightMask, maxArea),
		DarkMask:   darkMask,
		BrightMask: brightMask,
		Radius:     radius,
	}
}
