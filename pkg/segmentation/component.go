package segmentation

import "math"

// Component is a maximal 4-connected region within one mask, described by its
// bounding box and pixel count. A Component with Count == 0 is empty and its
// box is meaningless.
type Component struct {
	MinX, MinY int
	MaxX, MaxY int
	Count      int
}

// Empty reports whether the component holds no pixels.
func (c Component) Empty() bool {
	return c.Count == 0
}

// BoxWidth returns the bounding-box width, or 0 for an empty component.
func (c Component) BoxWidth() int {
	if c.Empty() {
		return 0
	}
	return c.MaxX - c.MinX + 1
}

// BoxHeight returns the bounding-box height, or 0 for an empty component.
func (c Component) BoxHeight() int {
	if c.Empty() {
		return 0
	}
	return c.MaxY - c.MinY + 1
}

// Diameter returns the Euclidean length of the bounding-box diagonal.
func (c Component) Diameter() float64 {
	w := float64(c.BoxWidth())
	h := float64(c.BoxHeight())
	return math.Sqrt(w*w + h*h)
}

type point struct {
	x, y int
}

var neighbors = [4]point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// LargestComponent flood-fills the mask and returns the largest 4-connected
// component whose pixel count does not exceed maxArea. Components above the
// cap are treated as size 0: they reject near-uniform backgrounds being
// misread as a shape. Returns an empty Component when no region survives.
func LargestComponent(m *Mask, maxArea int) Component {
	visited := make([]bool, m.Width*m.Height)
	var best Component

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.At(x, y) || visited[y*m.Width+x] {
				continue
			}
			comp := fill(m, visited, x, y)
			if comp.Count > maxArea {
				continue
			}
			if comp.Count > best.Count {
				best = comp
			}
		}
	}
	return best
}

// fill walks one component from a seed pixel with an explicit queue, tracking
// the running bounding box and pixel count.
func fill(m *Mask, visited []bool, startX, startY int) Component {
	comp := Component{MinX: startX, MaxX: startX, MinY: startY, MaxY: startY}

	queue := make([]point, 0, 64)
	queue = append(queue, point{startX, startY})
	visited[startY*m.Width+startX] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		comp.Count++

		if p.x < comp.MinX {
			comp.MinX = p.x
		}
		if p.x > comp.MaxX {
			comp.MaxX = p.x
		}
		if p.y < comp.MinY {
			comp.MinY = p.y
		}
		if p.y > comp.MaxY {
			comp.MaxY = p.y
		}

		for _, d := range neighbors {
			nx, ny := p.x+d.x, p.y+d.y
			if nx < 0 || nx >= m.Width || ny < 0 || ny >= m.Height {
				continue
			}
			idx := ny*m.Width + nx
			if !m.At(nx, ny) || visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, point{nx, ny})
		}
	}
	return comp
}
