package models

// ComponentStats describes the reconciled dark or bright region of one image
// in its flattened output form: size, bounding-box geometry, and the
// categorical shape label assigned by the classifier.
type ComponentStats struct {
	// Size is the number of pixels in the region
	Size int

	// Width and Height are the bounding-box dimensions in pixels
	Width  int
	Height int

	// Diameter is the Euclidean length of the bounding-box diagonal
	Diameter float64

	// Shape is the categorical label ("square", "circle", ..., or "none")
	Shape string
}

// ImageRecord is the final per-image output of the extraction pipeline.
// It is created once per successfully processed image and never mutated
// afterwards; the aggregation step owns it.
type ImageRecord struct {
	// ImageName is the file name including extension
	ImageName string

	// FolderName is the name of the folder the image was discovered in
	// ("ROOT" for the root folder itself)
	FolderName string

	// Polarization is "VV", "VH", or "OTHER", derived from the filename
	Polarization string

	// Flooding is the externally supplied boolean label
	Flooding bool

	// Season is derived from the YYYYMMDD date embedded in the filename
	Season string

	// RawMean is the per-image mean intensity over non-zero pixels
	RawMean float64

	// Black and White are the reconciled dark and bright regions
	Black ComponentStats
	White ComponentStats

	// DominantShape is the shape label of the side whose shade set contains
	// the single most frequent non-zero intensity
	DominantShape string

	// RawCounts maps each intensity value present in the image to its
	// pixel count (the full histogram, including intensity 0)
	RawCounts map[int]int
}

// SkipRecord is produced instead of an ImageRecord for any image that could
// not be processed, with a human-readable reason.
type SkipRecord struct {
	ImageName  string
	FolderName string
	Reason     string
}
