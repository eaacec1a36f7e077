// Package report serializes the run's outputs: the per-image feature table,
// the sectioned summary, and the skip list. Row and column order is
// deterministic so repeated runs over the same dataset produce byte-identical
// files.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/internal/models"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/stats"
)

// WriteImagesAll writes one row per processed image, with a RAW_%05d count
// column for every intensity value observed anywhere in the dataset.
func WriteImagesAll(path string, records []models.ImageRecord) error {
	rawValues := allRawValues(records)

	header := []string{
		"image_name", "folder_name", "polarization", "flooding", "season", "raw_mean",
		"black_component_size", "black_width", "black_height", "black_diameter", "black_shape",
		"white_component_size", "white_width", "white_height", "white_diameter", "white_shape",
		"dominant_shape",
	}
	for _, v := range rawValues {
		header = append(header, fmt.Sprintf("RAW_%05d", v))
	}

	rows := [][]string{header}
	for _, rec := range records {
		row := []string{
			rec.ImageName,
			rec.FolderName,
			rec.Polarization,
			strconv.FormatBool(rec.Flooding),
			rec.Season,
			formatFloat(rec.RawMean),
			strconv.Itoa(rec.Black.Size),
			strconv.Itoa(rec.Black.Width),
			strconv.Itoa(rec.Black.Height),
			formatFloat(rec.Black.Diameter),
			rec.Black.Shape,
			strconv.Itoa(rec.White.Size),
			strconv.Itoa(rec.White.Width),
			strconv.Itoa(rec.White.Height),
			formatFloat(rec.White.Diameter),
			rec.White.Shape,
			rec.DominantShape,
		}
		for _, v := range rawValues {
			row = append(row, strconv.Itoa(rec.RawCounts[v]))
		}
		rows = append(rows, row)
	}

	return writeCSV(path, rows)
}

// WriteSummary writes the sectioned summary under its fixed 7-column header.
func WriteSummary(path string, summary []stats.Row) error {
	rows := [][]string{{"section", "metric_name", "value_a", "value_b", "value_c", "value_d", "notes"}}
	for _, r := range summary {
		rows = append(rows, []string{r.Section, r.Metric, r.A, r.B, r.C, r.D, r.Notes})
	}
	return writeCSV(path, rows)
}

// WriteSkipped writes one row per image that did not produce a record.
func WriteSkipped(path string, skips []models.SkipRecord) error {
	rows := [][]string{{"image_name", "folder_name", "reason"}}
	for _, s := range skips {
		rows = append(rows, []string{s.ImageName, s.FolderName, s.Reason})
	}
	return writeCSV(path, rows)
}

// allRawValues returns the sorted union of intensity values present across
// all records.
func allRawValues(records []models.ImageRecord) []int {
	set := make(map[int]struct{})
	for _, rec := range records {
		for v := range rec.RawCounts {
			set[v] = struct{}{}
		}
	}
	values := make([]int, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
