// Package shapes maps a region's fill ratio and aspect ratio to a coarse
// categorical shape label. The bands are deliberately heuristic, tuned for
// stability on noisy low-bit-depth rasters rather than geometric precision.
package shapes

import "github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/segmentation"

// Label is one tag from the fixed shape vocabulary.
type Label string

const (
	Square        Label = "square"
	Rectangle     Label = "rectangle"
	Circle        Label = "circle"
	Ellipse       Label = "ellipse"
	Parallelogram Label = "parallelogram"
	Trapezium     Label = "trapezium"
	Triangle      Label = "triangle"
	Crescent      Label = "crescent"
	None          Label = "none"
)

// band is one entry of the ordered classification table.
type band struct {
	label Label
	match func(fill, aspect float64) bool
}

// The table is evaluated in priority order, most restrictive band first.
// Every (fill, aspect) combination falls through to crescent, so the
// classification is total for non-empty regions.
var bands = []band{
	{Square, func(fill, aspect float64) bool { return fill >= 0.80 && aspect <= 1.10 }},
	{Rectangle, func(fill, aspect float64) bool { return fill >= 0.80 && aspect <= 3.0 }},
	{Circle, func(fill, aspect float64) bool { return fill >= 0.65 && aspect <= 1.10 }},
	{Ellipse, func(fill, aspect float64) bool { return fill >= 0.55 && aspect <= 1.60 }},
	{Parallelogram, func(fill, aspect float64) bool { return fill >= 0.40 && aspect <= 2.5 }},
	{Trapezium, func(fill, aspect float64) bool { return fill >= 0.30 && aspect <= 4.0 }},
	{Triangle, func(fill, aspect float64) bool { return fill >= 0.15 }},
}

// Classify maps a region to its shape label. Empty regions and regions with a
// degenerate bounding box are "none"; every other region receives exactly one
// label from the table.
func Classify(c segmentation.Component) Label {
	if c.Empty() || c.BoxWidth() <= 0 || c.BoxHeight() <= 0 {
		return None
	}

	w := float64(c.BoxWidth())
	h := float64(c.BoxHeight())

	aspect := w / h
	if h > w {
		aspect = h / w
	}
	fill := float64(c.Count) / (w * h)

	for _, b := range bands {
		if b.match(fill, aspect) {
			return b.label
		}
	}
	return Crescent
}
