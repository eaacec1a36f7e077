package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/internal/models"
)

func record(flooding bool, rawMean float64) models.ImageRecord {
	return models.ImageRecord{
		ImageName:    "img.tif",
		FolderName:   "0001",
		Polarization: "VV",
		Flooding:     flooding,
		Season:       "Winter",
		RawMean:      rawMean,
		Black:        models.ComponentStats{Size: 4, Width: 2, Height: 2, Diameter: 2.83, Shape: "square"},
		White:        models.ComponentStats{Size: 9, Width: 3, Height: 3, Diameter: 4.24, Shape: "square"},
	}
}

func approx(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := meanStd([]float64{2, 4, 6})
	approx(t, mean, 4, 1e-12, "mean")
	approx(t, std, 2, 1e-12, "std")

	mean, std = meanStd(nil)
	if mean != 0 || std != 0 {
		t.Errorf("expected zero stats for empty input, got %v/%v", mean, std)
	}

	_, std = meanStd([]float64{5})
	if std != 0 {
		t.Errorf("single sample must have zero std, got %v", std)
	}
}

func TestCohenD(t *testing.T) {
	// Equal stds of 2 pool to 2, means 2 apart: d = 1.
	approx(t, cohenD(10, 2, 10, 8, 2, 10), 1.0, 1e-12, "cohenD")

	if d := cohenD(10, 2, 1, 8, 2, 10); d != 0 {
		t.Errorf("expected 0 for undersized group, got %v", d)
	}
	if d := cohenD(5, 0, 10, 5, 0, 10); d != 0 {
		t.Errorf("expected 0 for zero pooled std, got %v", d)
	}
}

func TestFilterByZScore(t *testing.T) {
	vals := []float64{10, 11, 9, 13, 100}
	kept := filterByZScore(vals, 10, 1, 3.0)
	if len(kept) != 4 {
		t.Errorf("expected one value removed at z=3, kept %v", kept)
	}
	for _, v := range kept {
		if v == 100 {
			t.Error("outlier survived the filter")
		}
	}

	kept = filterByZScore(vals, 10, 0, 3.0)
	if len(kept) != len(vals) {
		t.Errorf("zero std must keep everything, kept %d", len(kept))
	}
}

func TestMedianNonZero(t *testing.T) {
	if m, ok := medianNonZero([]float64{0, 1, 3}); !ok || m != 2 {
		t.Errorf("medianNonZero = (%v, %v), want (2, true)", m, ok)
	}
	if m, ok := medianNonZero([]float64{5, 0, 1, 3, 7}); !ok || m != 4 {
		t.Errorf("even-count median = (%v, %v), want (4, true)", m, ok)
	}
	if _, ok := medianNonZero([]float64{0, 0}); ok {
		t.Error("expected ok=false for all-zero input")
	}
}

func TestGroupMode(t *testing.T) {
	r1 := record(true, 100)
	r1.RawCounts = map[int]int{0: 1000, 5: 30}
	r2 := record(true, 100)
	r2.RawCounts = map[int]int{5: 5, 9: 30}
	r3 := record(false, 100)
	r3.RawCounts = map[int]int{7: 999}
	records := []models.ImageRecord{r1, r2, r3}

	// RAW 0 dominates the pixel counts but is skipped.
	mode, ok := groupMode(records, true, 100, 0)
	if !ok || mode != 5 {
		t.Errorf("groupMode = (%d, %v), want (5, true)", mode, ok)
	}

	// Ties resolve to the lower RAW value.
	r4 := record(true, 100)
	r4.RawCounts = map[int]int{3: 10}
	r5 := record(true, 100)
	r5.RawCounts = map[int]int{7: 10}
	mode, ok = groupMode([]models.ImageRecord{r4, r5}, true, 100, 0)
	if !ok || mode != 3 {
		t.Errorf("tie groupMode = (%d, %v), want (3, true)", mode, ok)
	}

	if _, ok := groupMode(nil, true, 0, 0); ok {
		t.Error("expected ok=false for no records")
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	rows := BuildSummary(nil)
	if len(rows) != 1 || rows[0].Section != "NOTE" {
		t.Fatalf("expected a single NOTE row, got %+v", rows)
	}
}

func TestBuildSummarySections(t *testing.T) {
	records := []models.ImageRecord{
		record(true, 150), record(true, 160), record(true, 155),
		record(false, 40), record(false, 50),
	}
	rows := BuildSummary(records)

	sections := make(map[string]int)
	for _, row := range rows {
		sections[row.Section]++
	}
	for _, want := range []string{"STATS", "SEASONS", "SHAPES", "WEIGHTS", "XY_TABLE", "LOGISTIC", "DECISION_RULE"} {
		if sections[want] == 0 {
			t.Errorf("missing section %s", want)
		}
	}
	if last := rows[len(rows)-1]; last.Section != "DECISION_RULE" {
		t.Errorf("expected DECISION_RULE last, got %s", last.Section)
	}

	for _, row := range rows {
		if row.Section == "STATS" && row.Metric == "count_images_all" {
			if row.A != "3" || row.B != "2" {
				t.Errorf("count_images_all = %s/%s, want 3/2", row.A, row.B)
			}
		}
	}
}

func TestXYTableThreshold(t *testing.T) {
	// Ten tightly clustered images share one combo; two outliers at a higher
	// mean fall outside |z| <= 1 and must not dilute the table.
	var records []models.ImageRecord
	for i := 0; i < 6; i++ {
		records = append(records, record(true, 100))
	}
	for i := 0; i < 4; i++ {
		records = append(records, record(false, 100.002))
	}
	records = append(records, record(true, 101), record(false, 101))

	rows := xyTableSection(records)
	var combo *Row
	for i := range rows {
		if strings.HasPrefix(rows[i].Metric, "season=") {
			combo = &rows[i]
		}
	}
	if combo == nil {
		t.Fatal("expected one combo row at or above the sample threshold")
	}
	if combo.A != "10" {
		t.Errorf("combo total = %s, want 10", combo.A)
	}
	if combo.B != "60" {
		t.Errorf("combo prob_true_percent = %s, want 60", combo.B)
	}
}

func TestComputeWeightsCategorical(t *testing.T) {
	records := []models.ImageRecord{
		record(true, 100), record(true, 110), record(true, 120),
		record(false, 40),
	}
	ctx := computeWeights(records)

	approx(t, ctx.overallTrueRate, 0.75, 1e-12, "overallTrueRate")
	// VV: 3 true, 1+1 smoothed false -> 3/5 - 0.75
	approx(t, ctx.polWeight["VV"], 0.6-0.75, 1e-12, "polWeight[VV]")
	// Four samples sit far below the season threshold.
	if ctx.seasonWeight["Winter"] != 0 {
		t.Errorf("undersized season weight must be zero, got %v", ctx.seasonWeight["Winter"])
	}
}

func TestTrainLogisticSeparable(t *testing.T) {
	var records []models.ImageRecord
	for i := 0; i < 10; i++ {
		records = append(records, record(true, 200+float64(i)))
		records = append(records, record(false, 10+float64(i)))
	}
	model := TrainLogistic(records)

	if model.Accuracy != 1.0 {
		t.Errorf("expected perfect training accuracy on separable data, got %v", model.Accuracy)
	}
	if model.Weights["z_raw_mean"] <= 0 {
		t.Errorf("expected positive raw_mean weight, got %v", model.Weights["z_raw_mean"])
	}
}

func TestTrainLogisticDegenerate(t *testing.T) {
	zero := TrainLogistic([]models.ImageRecord{record(true, 1)})
	if len(zero.Weights) != 0 || zero.Accuracy != 0 {
		t.Errorf("expected zero model for a single record, got %+v", zero)
	}
	zero = TrainLogistic([]models.ImageRecord{record(true, 1), record(true, 2)})
	if len(zero.Weights) != 0 {
		t.Errorf("expected zero model for a single class, got %+v", zero)
	}
}
