// Package stats aggregates per-image records into the dataset-level summary:
// group statistics on the per-image mean, season and polarization rates,
// shape tables, heuristic score weights, and an empirical probability table.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/internal/models"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/meta"
)

// Row is one line of the sectioned summary output.
type Row struct {
	Section string
	Metric  string
	A, B    string
	C, D    string
	Notes   string
}

// Minimum sample sizes before a categorical weight or table row is reported.
const (
	minSeasonCount = 30
	minComboCount  = 10
)

// BuildSummary produces all summary sections for a completed run.
func BuildSummary(records []models.ImageRecord) []Row {
	out := []Row{}

	if len(records) == 0 {
		return append(out, Row{
			Section: "NOTE", Metric: "no_data",
			Notes: "No images produced data rows; summary is empty.",
		})
	}

	out = append(out, statsSection(records)...)
	out = append(out, seasonsSection(records)...)
	out = append(out, shapesSection(records)...)
	out = append(out, weightsSection(records)...)
	out = append(out, xyTableSection(records)...)
	out = append(out, logisticSection(records)...)

	out = append(out, Row{
		Section: "DECISION_RULE", Metric: "score_formula",
		Notes: "score = w_raw*z_raw_mean + w_bd*z_black_diameter + w_wd*z_white_diameter + " +
			"w_season + w_pol + w_black_shape + w_white_shape; " +
			"z_feature = (x - mean_all)/std_all; P(FLOODING=true) = 1/(1+exp(-score)).",
	})
	return out
}

// statsSection reports per-group raw_mean statistics before and after
// 3-sigma outlier removal, plus the pixel-count mode and Cohen's d.
func statsSection(records []models.ImageRecord) []Row {
	var valsTrue, valsFalse []float64
	for _, rec := range records {
		if rec.Flooding {
			valsTrue = append(valsTrue, rec.RawMean)
		} else {
			valsFalse = append(valsFalse, rec.RawMean)
		}
	}

	meanTrue, stdTrue := meanStd(valsTrue)
	meanFalse, stdFalse := meanStd(valsFalse)

	postTrue := filterByZScore(valsTrue, meanTrue, stdTrue, 3.0)
	postFalse := filterByZScore(valsFalse, meanFalse, stdFalse, 3.0)

	postMeanTrue, postStdTrue := meanStd(postTrue)
	postMeanFalse, postStdFalse := meanStd(postFalse)

	medTrue, medTrueOK := medianNonZero(postTrue)
	medFalse, medFalseOK := medianNonZero(postFalse)

	d := cohenD(postMeanTrue, postStdTrue, len(postTrue), postMeanFalse, postStdFalse, len(postFalse))

	modeTrue, modeTrueOK := groupMode(records, true, meanTrue, stdTrue)
	modeFalse, modeFalseOK := groupMode(records, false, meanFalse, stdFalse)

	return []Row{
		{Section: "STATS", Metric: "count_images_all",
			A: itoa(len(valsTrue)), B: itoa(len(valsFalse)),
			Notes: "True/false image counts, pre-mean (no outlier removal)."},
		{Section: "STATS", Metric: "count_images_post_mean",
			A: itoa(len(postTrue)), B: itoa(len(postFalse)),
			Notes: "Images retained for post-mean (|x-mean| <= 3*std within each group)."},
		{Section: "STATS", Metric: "mean_raw_pre",
			A: ftoa(meanTrue), B: ftoa(meanFalse),
			Notes: "Pre-mean raw_mean across all images (zeros ignored at pixel level)."},
		{Section: "STATS", Metric: "std_raw_pre",
			A: ftoa(stdTrue), B: ftoa(stdFalse),
			Notes: "Pre-std raw_mean across all images."},
		{Section: "STATS", Metric: "post_mean_raw",
			A: ftoa(postMeanTrue), B: ftoa(postMeanFalse),
			Notes: "Post-mean raw_mean after 3-sigma outlier removal."},
		{Section: "STATS", Metric: "post_std_raw",
			A: ftoa(postStdTrue), B: ftoa(postStdFalse),
			Notes: "Post-std raw_mean after 3-sigma outlier removal."},
		{Section: "STATS", Metric: "post_median_raw",
			A: optFtoa(medTrue, medTrueOK), B: optFtoa(medFalse, medFalseOK),
			Notes: "Post-median raw_mean; zeros excluded from the median calculation."},
		{Section: "STATS", Metric: "post_mode_raw",
			A: optItoa(modeTrue, modeTrueOK), B: optItoa(modeFalse, modeFalseOK),
			Notes: "Post-mode RAW value: highest aggregate pixel count across post-mean images; RAW 0 is skipped."},
		{Section: "STATS", Metric: "cohens_d_post_mean_raw",
			A: ftoa(d),
			Notes: "Effect size on post-mean data: (mean_true - mean_false) / pooled_std."},
	}
}

// groupMode aggregates RAW pixel counts over the non-outlier images of one
// flooding group and returns the modal non-zero RAW value.
func groupMode(records []models.ImageRecord, flooding bool, mean, std float64) (int, bool) {
	thr := math.Inf(1)
	if std != 0 {
		thr = 3.0 * std
	}

	totals := make(map[int]int64)
	for _, rec := range records {
		if rec.Flooding != flooding {
			continue
		}
		if math.Abs(rec.RawMean-mean) > thr {
			continue
		}
		for raw, count := range rec.RawCounts {
			if count > 0 {
				totals[raw] += int64(count)
			}
		}
	}

	best := -1
	var bestCount int64
	for raw, count := range totals {
		if raw == 0 || count <= 0 {
			continue
		}
		if best < 0 || count > bestCount || (count == bestCount && raw < best) {
			best = raw
			bestCount = count
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func seasonsSection(records []models.ImageRecord) []Row {
	trueCounts := make(map[string]int)
	falseCounts := make(map[string]int)
	for _, rec := range records {
		s := seasonOrUnknown(rec.Season)
		if rec.Flooding {
			trueCounts[s]++
		} else {
			falseCounts[s]++
		}
	}

	var out []Row
	for _, s := range []string{meta.Winter, meta.Spring, meta.Summer, meta.Autumn, meta.Unknown} {
		ct, cf := trueCounts[s], falseCounts[s]
		rate := 0.0
		if ct+cf > 0 {
			rate = float64(ct) / float64(ct+cf)
		}
		out = append(out, Row{
			Section: "SEASONS", Metric: s,
			A: itoa(ct), B: itoa(cf), C: ftoa(rate),
			Notes: "True_rate = count_true / (count_true + count_false) for this season.",
		})
	}
	return out
}

func shapesSection(records []models.ImageRecord) []Row {
	out := []Row{{
		Section: "SHAPES", Metric: "NOTE",
		Notes: "Each image contributes one black and one white reconciled region.",
	}}
	out = append(out, shapeCountRows(records, "black", func(r models.ImageRecord) string { return r.Black.Shape })...)
	out = append(out, shapeCountRows(records, "white", func(r models.ImageRecord) string { return r.White.Shape })...)
	return out
}

func shapeCountRows(records []models.ImageRecord, side string, shapeOf func(models.ImageRecord) string) []Row {
	trueCounts := make(map[string]int)
	falseCounts := make(map[string]int)
	for _, rec := range records {
		s := shapeOf(rec)
		if s == "" {
			s = "none"
		}
		if rec.Flooding {
			trueCounts[s]++
		} else {
			falseCounts[s]++
		}
	}

	var out []Row
	for _, s := range sortedShapeKeys(trueCounts, falseCounts) {
		out = append(out, Row{
			Section: "SHAPES", Metric: side + "_" + s,
			A: itoa(trueCounts[s]), B: itoa(falseCounts[s]),
			Notes: fmt.Sprintf("Largest %s-region shape = %s", side, s),
		})
	}
	return out
}

func xyTableSection(records []models.ImageRecord) []Row {
	out := []Row{{
		Section: "XY_TABLE", Metric: "COLUMNS",
		A: "total_images", B: "prob_true_percent", C: "count_true", D: "count_false",
		Notes: "metric_name encodes season, polarization, black_shape, white_shape; " +
			"rows restricted to images within |z_raw_mean| <= 1.",
	}}

	all := make([]float64, 0, len(records))
	for _, rec := range records {
		if !math.IsNaN(rec.RawMean) {
			all = append(all, rec.RawMean)
		}
	}
	if len(all) == 0 {
		return out
	}
	mean := stat.Mean(all, nil)
	std := stat.StdDev(all, nil)
	if std == 0 || math.IsNaN(std) {
		return out
	}

	type counts struct{ falseN, trueN int }
	combos := make(map[string]*counts)
	for _, rec := range records {
		if math.IsNaN(rec.RawMean) || math.Abs((rec.RawMean-mean)/std) > 1.0 {
			continue
		}
		key := fmt.Sprintf("season=%s,pol=%s,black_shape=%s,white_shape=%s",
			seasonOrUnknown(rec.Season), rec.Polarization, rec.Black.Shape, rec.White.Shape)
		c := combos[key]
		if c == nil {
			c = &counts{}
			combos[key] = c
		}
		if rec.Flooding {
			c.trueN++
		} else {
			c.falseN++
		}
	}

	keys := make([]string, 0, len(combos))
	for k := range combos {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		c := combos[key]
		total := c.trueN + c.falseN
		if total < minComboCount {
			continue
		}
		prob := 100.0 * float64(c.trueN) / float64(total)
		out = append(out, Row{
			Section: "XY_TABLE", Metric: key,
			A: itoa(total), B: ftoa(prob), C: itoa(c.trueN), D: itoa(c.falseN),
		})
	}
	return out
}

// ---------- shared helpers ----------

func seasonOrUnknown(s string) string {
	if s == "" {
		return meta.Unknown
	}
	return s
}

func sortedShapeKeys(a, b map[string]int) []string {
	set := make(map[string]struct{})
	for k := range a {
		set[k] = struct{}{}
	}
	for k := range b {
		set[k] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func meanStd(vals []float64) (mean, std float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		std = stat.StdDev(vals, nil)
	}
	return mean, std
}

func filterByZScore(vals []float64, mean, std, z float64) []float64 {
	if len(vals) == 0 || std == 0 {
		out := make([]float64, len(vals))
		copy(out, vals)
		return out
	}
	thr := z * std
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.Abs(v-mean) <= thr {
			out = append(out, v)
		}
	}
	return out
}

// medianNonZero returns the median of the non-zero values; ok is false when
// no non-zero value exists.
func medianNonZero(vals []float64) (float64, bool) {
	nz := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v != 0.0 {
			nz = append(nz, v)
		}
	}
	if len(nz) == 0 {
		return 0, false
	}
	sort.Float64s(nz)
	n := len(nz)
	if n%2 == 1 {
		return nz[n/2], true
	}
	return 0.5 * (nz[n/2-1] + nz[n/2]), true
}

func cohenD(mean1, std1 float64, n1 int, mean2, std2 float64, n2 int) float64 {
	if n1 < 2 || n2 < 2 {
		return 0
	}
	pooled := math.Sqrt((float64(n1-1)*std1*std1 + float64(n2-1)*std2*std2) / float64(n1+n2-2))
	if pooled == 0 {
		return 0
	}
	return (mean1 - mean2) / pooled
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func optFtoa(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return ftoa(v)
}

func optItoa(v int, ok bool) string {
	if !ok {
		return ""
	}
	return itoa(v)
}
