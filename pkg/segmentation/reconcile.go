package segmentation

// Pair is the reconciled, always-non-empty dark/bright result for one image.
type Pair struct {
	Dark   Component
	Bright Component
}

// Reconcile applies the fallback and spatial-exclusivity rules so that every
// image yields exactly one non-empty dark region and one non-empty bright
// region.
//
// Fallback: if exactly one side is empty it clones the other side's bounding
// box and pixel count; if both are empty both become the full image box. The
// exclusivity pass then re-walks both masks under a positional constraint:
// dark may only accumulate pixels outside the strict right half of the image,
// bright only outside the strict left half, and a pixel claimed for one side
// never counts for the other. A non-empty constrained accumulation replaces
// that side's earlier result; an empty one leaves it alone. Regions rescued
// by escalation are still subject to this pass and are not re-escalated
// afterwards.
func Reconcile(res Result, width, height int) Pair {
	pair := Pair{Dark: res.Dark, Bright: res.Bright}

	switch {
	case pair.Dark.Empty() && pair.Bright.Empty():
		full := Component{MinX: 0, MinY: 0, MaxX: width - 1, MaxY: height - 1, Count: width * height}
		pair.Dark = full
		pair.Bright = full
	case pair.Dark.Empty():
		pair.Dark = pair.Bright
	case pair.Bright.Empty():
		pair.Bright = pair.Dark
	}

	// Strict right half starts at ceil(W/2); for odd widths the center
	// column belongs to the left half and the dark side claims it first.
	rightStart := (width + 1) / 2
	leftEnd := width / 2

	claimed := NewMask(width, height)

	var dark Component
	for y := 0; y < height; y++ {
		for x := 0; x < rightStart; x++ {
			if res.DarkMask.At(x, y) {
				dark = accumulate(dark, x, y)
				claimed.Set(x, y)
			}
		}
	}

	var bright Component
	for y := 0; y < height; y++ {
		for x := leftEnd; x < width; x++ {
			if res.BrightMask.At(x, y) && !claimed.At(x, y) {
				bright = accumulate(bright, x, y)
			}
		}
	}

	if !dark.Empty() {
		pair.Dark = dark
	}
	if !bright.Empty() {
		pair.Bright = bright
	}
	return pair
}

func accumulate(c Component, x, y int) Component {
	if c.Empty() {
		return Component{MinX: x, MaxX: x, MinY: y, MaxY: y, Count: 1}
	}
	if x < c.MinX {
		c.MinX = x
	}
	if x > c.MaxX {
		c.MaxX = x
	}
	if y < c.MinY {
		c.MinY = y
	}
	if y > c.MaxY {
		c.MaxY = y
	}
	c.Count++
	return c
}
