package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/internal/models"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/stats"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func sampleRecords() []models.ImageRecord {
	return []models.ImageRecord{
		{
			ImageName:    "S1A_20190218_VV.tif",
			FolderName:   "0001",
			Polarization: "VV",
			Flooding:     true,
			Season:       "Winter",
			RawMean:      176.5,
			Black:        models.ComponentStats{Size: 4, Width: 2, Height: 2, Diameter: 2.5, Shape: "square"},
			White:        models.ComponentStats{Size: 9, Width: 3, Height: 3, Diameter: 4.25, Shape: "square"},
			DominantShape: "square",
			RawCounts:     map[int]int{3: 2, 255: 9},
		},
		{
			ImageName:    "S1A_20190715_VH.tif",
			FolderName:   "0002",
			Polarization: "VH",
			Flooding:     false,
			Season:       "Summer",
			RawMean:      90.0,
			Black:        models.ComponentStats{Shape: "none"},
			White:        models.ComponentStats{Shape: "none"},
			DominantShape: "none",
			RawCounts:     map[int]int{1: 5},
		},
	}
}

func TestWriteImagesAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Images_All.csv")
	if err := WriteImagesAll(path, sampleRecords()); err != nil {
		t.Fatal(err)
	}
	rows := readCSV(t, path)

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	header := rows[0]
	fixed := []string{
		"image_name", "folder_name", "polarization", "flooding", "season", "raw_mean",
		"black_component_size", "black_width", "black_height", "black_diameter", "black_shape",
		"white_component_size", "white_width", "white_height", "white_diameter", "white_shape",
		"dominant_shape",
	}
	if !reflect.DeepEqual(header[:len(fixed)], fixed) {
		t.Errorf("unexpected fixed header: %v", header[:len(fixed)])
	}
	// RAW columns are the sorted union across all records.
	if !reflect.DeepEqual(header[len(fixed):], []string{"RAW_00001", "RAW_00003", "RAW_00255"}) {
		t.Errorf("unexpected RAW columns: %v", header[len(fixed):])
	}

	first := rows[1]
	if first[0] != "S1A_20190218_VV.tif" || first[3] != "true" || first[5] != "176.5" {
		t.Errorf("unexpected first row: %v", first)
	}
	// Absent RAW values serialize as zero counts.
	if raw := first[len(fixed):]; !reflect.DeepEqual(raw, []string{"0", "2", "9"}) {
		t.Errorf("unexpected first-row RAW counts: %v", raw)
	}
	if raw := rows[2][len(fixed):]; !reflect.DeepEqual(raw, []string{"5", "0", "0"}) {
		t.Errorf("unexpected second-row RAW counts: %v", raw)
	}
}

func TestWriteImagesAllDeterministic(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.csv")
	pathB := filepath.Join(dir, "b.csv")
	records := sampleRecords()
	if err := WriteImagesAll(pathA, records); err != nil {
		t.Fatal(err)
	}
	if err := WriteImagesAll(pathB, records); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(pathA)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(pathB)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("repeated writes must be byte-identical")
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Summary_All.csv")
	summary := []stats.Row{
		{Section: "STATS", Metric: "count_images_all", A: "3", B: "2", Notes: "counts"},
		{Section: "DECISION_RULE", Metric: "score_formula", Notes: "score = ..."},
	}
	if err := WriteSummary(path, summary); err != nil {
		t.Fatal(err)
	}
	rows := readCSV(t, path)

	want := []string{"section", "metric_name", "value_a", "value_b", "value_c", "value_d", "notes"}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "STATS" || rows[1][2] != "3" {
		t.Errorf("unexpected summary row: %v", rows[1])
	}
}

func TestWriteSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Skipped.csv")
	skips := []models.SkipRecord{
		{ImageName: "bad.tif", FolderName: "0001", Reason: "failed to decode image: short read"},
	}
	if err := WriteSkipped(path, skips); err != nil {
		t.Fatal(err)
	}
	rows := readCSV(t, path)

	if !reflect.DeepEqual(rows[0], []string{"image_name", "folder_name", "reason"}) {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "failed to decode image: short read" {
		t.Errorf("unexpected reason: %v", rows[1])
	}
}

func TestWriteCreateError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
	if err := WriteSkipped(path, nil); err == nil {
		t.Error("expected error for unwritable path")
	}
}
