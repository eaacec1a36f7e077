// Package raster handles decoding of satellite scene images and sampling of
// their per-pixel intensity values. It produces the intensity grid and the
// raw histogram the segmentation stages operate on.
package raster

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	// Register stdlib decoders for non-TIFF inputs.
	_ "image/jpeg"
	_ "image/png"
)

// Maximum sample values for the supported bit depths.
const (
	MaxSample8  = 255
	MaxSample16 = 65535
)

// Grid holds the sampled integer intensities of one decoded raster.
// Values are in [0, MaxSample]. The grid is immutable after construction.
type Grid struct {
	// Width and Height are the raster dimensions in pixels
	Width  int
	Height int

	// MaxSample is 255 for 8-bit rasters and 65535 otherwise
	MaxSample int

	samples []int
}

// Decode reads and decodes a raster image from disk. TIFF files are decoded
// with golang.org/x/image/tiff; other extensions fall back to the registered
// stdlib decoders.
func Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".tif" || ext == ".tiff" {
		img, err := tiff.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode TIFF %s: %w", path, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// FromImage samples every pixel of a decoded image into a Grid.
//
// Single- and two-band rasters use band 0; rasters with three or more bands
// use the truncated average of the first three bands. Values are clamped to
// [0, MaxSample] after averaging. The bit depth is inferred from the decoded
// image type: 16-bit grayscale and color types keep their full range, all
// others are treated as 8-bit.
func FromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	g := &Grid{
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		MaxSample: maxSampleFor(img),
	}
	g.samples = make([]int, g.Width*g.Height)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			g.samples[y*g.Width+x] = sampleAt(img, bounds.Min.X+x, bounds.Min.Y+y, g.MaxSample)
		}
	}
	return g
}

// At returns the intensity at (x, y). Coordinates are grid-local and must be
// within bounds.
func (g *Grid) At(x, y int) int {
	return g.samples[y*g.Width+x]
}

// Area returns the total number of pixels in the grid.
func (g *Grid) Area() int {
	return g.Width * g.Height
}

func maxSampleFor(img image.Image) int {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return MaxSample16
	default:
		return MaxSample8
	}
}

func sampleAt(img image.Image, x, y, maxSample int) int {
	var raw int
	switch im := img.(type) {
	case *image.Gray:
		raw = int(im.GrayAt(x, y).Y)
	case *image.Gray16:
		raw = int(im.Gray16At(x, y).Y)
	default:
		// Color types: truncated average of the first three bands.
		// RGBA() reports 16-bit channels; scale down for 8-bit rasters.
		r, g, b, _ := img.At(x, y).RGBA()
		if maxSample == MaxSample8 {
			r, g, b = r>>8, g>>8, b>>8
		}
		raw = int((r + g + b) / 3)
	}
	if raw < 0 {
		raw = 0
	}
	if raw > maxSample {
		raw = maxSample
	}
	return raw
}
