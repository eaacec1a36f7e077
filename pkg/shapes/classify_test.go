package shapes

import (
	"testing"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/segmentation"
)

func comp(w, h, count int) segmentation.Component {
	return segmentation.Component{MinX: 0, MinY: 0, MaxX: w - 1, MaxY: h - 1, Count: count}
}

func TestClassifyBands(t *testing.T) {
	cases := []struct {
		name string
		c    segmentation.Component
		want Label
	}{
		{"FullTinyBox", comp(2, 2, 4), Square},
		{"FullSquareBox", comp(3, 3, 9), Square},
		{"FullWideBox", comp(6, 2, 12), Rectangle},
		{"RoundFill", comp(10, 10, 70), Circle},
		{"OblongRound", comp(10, 8, 45), Ellipse},
		{"SlantedHalfFill", comp(10, 5, 22), Parallelogram},
		{"ThinThirdFill", comp(10, 3, 10), Trapezium},
		{"SparseFill", comp(10, 10, 20), Triangle},
		{"VerySparse", comp(10, 10, 5), Crescent},
		{"SinglePixel", comp(1, 1, 1), Square},
		{"TallBar", comp(2, 6, 12), Rectangle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.c); got != tc.want {
				t.Errorf("Classify(%+v) = %q, want %q", tc.c, got, tc.want)
			}
		})
	}
}

func TestClassifyEmptyRegion(t *testing.T) {
	if got := Classify(segmentation.Component{}); got != None {
		t.Errorf("expected %q for empty region, got %q", None, got)
	}
}

// TestClassifyTotal sweeps box dimensions and counts: every non-empty region
// must receive a label other than none.
func TestClassifyTotal(t *testing.T) {
	for w := 1; w <= 12; w++ {
		for h := 1; h <= 12; h++ {
			for count := 1; count <= w*h; count++ {
				got := Classify(comp(w, h, count))
				if got == None || got == "" {
					t.Fatalf("Classify(%dx%d, count %d) = %q", w, h, count, got)
				}
			}
		}
	}
}

// TestClassifyOrdering: a full near-square box must hit the square band
// before the rectangle band that also matches it.
func TestClassifyOrdering(t *testing.T) {
	if got := Classify(comp(10, 10, 100)); got != Square {
		t.Errorf("expected full square box to classify as %q, got %q", Square, got)
	}
	// High fill at aspect 1 also matches circle; square wins on order.
	if got := Classify(comp(5, 5, 21)); got != Square {
		t.Errorf("expected fill 0.84 aspect 1.0 to classify as %q, got %q", Square, got)
	}
}
