package stats

import (
	"sort"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/internal/models"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/meta"
)

// weightContext holds the hand-built score weights: Cohen's d for the numeric
// features and smoothed rate deltas for the categorical ones.
type weightContext struct {
	overallTrueRate float64

	wRaw, meanRawAll, stdRawAll float64
	wBd, meanBdAll, stdBdAll    float64
	wWd, meanWdAll, stdWdAll    float64

	seasonWeight     map[string]float64
	polWeight        map[string]float64
	blackShapeWeight map[string]float64
	whiteShapeWeight map[string]float64
}

func weightsSection(records []models.ImageRecord) []Row {
	ctx := computeWeights(records)

	out := []Row{
		{Section: "WEIGHTS", Metric: "raw_mean",
			A: ftoa(ctx.wRaw), B: ftoa(ctx.meanRawAll), C: ftoa(ctx.stdRawAll),
			Notes: "Numeric weight: Cohen's d on raw_mean (per-image mean over non-zero pixels)."},
		{Section: "WEIGHTS", Metric: "black_diameter",
			A: ftoa(ctx.wBd), B: ftoa(ctx.meanBdAll), C: ftoa(ctx.stdBdAll),
			Notes: "Numeric weight: Cohen's d on black diameter."},
		{Section: "WEIGHTS", Metric: "white_diameter",
			A: ftoa(ctx.wWd), B: ftoa(ctx.meanWdAll), C: ftoa(ctx.stdWdAll),
			Notes: "Numeric weight: Cohen's d on white diameter."},
	}

	out = append(out, categoricalRows("season_", ctx.seasonWeight, ctx.overallTrueRate,
		"Season weight = true_rate(season) - overall_true_rate (zeroed below the sample-size threshold).")...)
	out = append(out, categoricalRows("pol_", ctx.polWeight, ctx.overallTrueRate,
		"Polarization weight = true_rate(pol) - overall_true_rate.")...)
	out = append(out, categoricalRows("black_shape_", ctx.blackShapeWeight, ctx.overallTrueRate,
		"Black shape weight = true_rate(shape) - overall_true_rate.")...)
	out = append(out, categoricalRows("white_shape_", ctx.whiteShapeWeight, ctx.overallTrueRate,
		"White shape weight = true_rate(shape) - overall_true_rate.")...)
	return out
}

func categoricalRows(prefix string, weights map[string]float64, overall float64, notes string) []Row {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Row
	for _, k := range keys {
		out = append(out, Row{
			Section: "WEIGHTS", Metric: prefix + k,
			A: ftoa(weights[k]), C: ftoa(overall),
			Notes: notes,
		})
	}
	return out
}

func computeWeights(records []models.ImageRecord) weightContext {
	ctx := weightContext{
		seasonWeight:     make(map[string]float64),
		polWeight:        make(map[string]float64),
		blackShapeWeight: make(map[string]float64),
		whiteShapeWeight: make(map[string]float64),
	}

	totalTrue := 0
	for _, rec := range records {
		if rec.Flooding {
			totalTrue++
		}
	}
	if len(records) > 0 {
		ctx.overallTrueRate = float64(totalTrue) / float64(len(records))
	}

	ctx.wRaw, ctx.meanRawAll, ctx.stdRawAll = numericWeight(records,
		func(r models.ImageRecord) float64 { return r.RawMean })
	ctx.wBd, ctx.meanBdAll, ctx.stdBdAll = numericWeight(records,
		func(r models.ImageRecord) float64 { return r.Black.Diameter })
	ctx.wWd, ctx.meanWdAll, ctx.stdWdAll = numericWeight(records,
		func(r models.ImageRecord) float64 { return r.White.Diameter })

	// Season weights only count once enough samples accumulate; +1 smoothing
	// on the false side mirrors the categorical weights below.
	seasonTrue, seasonFalse := categoryCounts(records,
		func(r models.ImageRecord) string { return seasonOrUnknown(r.Season) })
	for _, s := range []string{meta.Winter, meta.Spring, meta.Summer, meta.Autumn, meta.Unknown} {
		ct := seasonTrue[s]
		cf := seasonFalse[s] + 1
		total := ct + cf
		if total < minSeasonCount {
			ctx.seasonWeight[s] = 0.0
			continue
		}
		ctx.seasonWeight[s] = float64(ct)/float64(total) - ctx.overallTrueRate
	}

	polTrue, polFalse := categoryCounts(records,
		func(r models.ImageRecord) string { return r.Polarization })
	fillRateDeltas(ctx.polWeight, polTrue, polFalse, ctx.overallTrueRate)

	blackTrue, blackFalse := categoryCounts(records,
		func(r models.ImageRecord) string { return r.Black.Shape })
	fillRateDeltas(ctx.blackShapeWeight, blackTrue, blackFalse, ctx.overallTrueRate)

	whiteTrue, whiteFalse := categoryCounts(records,
		func(r models.ImageRecord) string { return r.White.Shape })
	fillRateDeltas(ctx.whiteShapeWeight, whiteTrue, whiteFalse, ctx.overallTrueRate)

	return ctx
}

// numericWeight returns Cohen's d between the flooding groups plus the
// overall mean/std used for z-scoring the feature.
func numericWeight(records []models.ImageRecord, feature func(models.ImageRecord) float64) (w, meanAll, stdAll float64) {
	var all, trueVals, falseVals []float64
	for _, rec := range records {
		v := feature(rec)
		all = append(all, v)
		if rec.Flooding {
			trueVals = append(trueVals, v)
		} else {
			falseVals = append(falseVals, v)
		}
	}
	meanAll, stdAll = meanStd(all)
	meanTrue, stdTrue := meanStd(trueVals)
	meanFalse, stdFalse := meanStd(falseVals)
	w = cohenD(meanTrue, stdTrue, len(trueVals), meanFalse, stdFalse, len(falseVals))
	return w, meanAll, stdAll
}

func categoryCounts(records []models.ImageRecord, key func(models.ImageRecord) string) (trueCounts, falseCounts map[string]int) {
	trueCounts = make(map[string]int)
	falseCounts = make(map[string]int)
	for _, rec := range records {
		k := key(rec)
		if k == "" {
			k = "none"
		}
		if rec.Flooding {
			trueCounts[k]++
		} else {
			falseCounts[k]++
		}
	}
	return trueCounts, falseCounts
}

func fillRateDeltas(dst map[string]float64, trueCounts, falseCounts map[string]int, overall float64) {
	for _, k := range sortedShapeKeys(trueCounts, falseCounts) {
		ct := trueCounts[k]
		cf := falseCounts[k] + 1 // smoothing
		dst[k] = float64(ct)/float64(ct+cf) - overall
	}
}
