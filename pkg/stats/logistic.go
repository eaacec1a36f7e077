package stats

import (
	"math"
	"sort"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/internal/models"
)

// Logistic regression trainer over the extracted features: z-scored numeric
// features (raw_mean, black/white diameter) plus one-hot season, polarization
// and shape dummies, fitted by plain batch gradient descent. This replaces
// the follow-on summary script of the reference dataset runs.

const (
	logisticEpochs       = 500
	logisticLearningRate = 0.1
)

// LogisticModel holds the trained weights keyed by feature name, the bias
// term, and the training-set accuracy.
type LogisticModel struct {
	Weights  map[string]float64
	Bias     float64
	Accuracy float64
}

// TrainLogistic fits the model on all records. Returns a zero-weight model
// when fewer than two records or only one class is present.
func TrainLogistic(records []models.ImageRecord) LogisticModel {
	model := LogisticModel{Weights: make(map[string]float64)}
	if len(records) < 2 || singleClass(records) {
		return model
	}

	names, rows := featurize(records)
	weights := make([]float64, len(names))
	bias := 0.0
	n := float64(len(rows))

	for epoch := 0; epoch < logisticEpochs; epoch++ {
		grad := make([]float64, len(weights))
		gradBias := 0.0
		for i, row := range rows {
			p := sigmoid(dot(weights, row) + bias)
			err := p - label(records[i])
			for j, x := range row {
				grad[j] += err * x
			}
			gradBias += err
		}
		for j := range weights {
			weights[j] -= logisticLearningRate * grad[j] / n
		}
		bias -= logisticLearningRate * gradBias / n
	}

	correct := 0
	for i, row := range rows {
		p := sigmoid(dot(weights, row) + bias)
		if (p >= 0.5) == records[i].Flooding {
			correct++
		}
	}

	for j, name := range names {
		model.Weights[name] = weights[j]
	}
	model.Bias = bias
	model.Accuracy = float64(correct) / n
	return model
}

// logisticSection reports the trained model as summary rows.
func logisticSection(records []models.ImageRecord) []Row {
	model := TrainLogistic(records)

	out := []Row{{
		Section: "LOGISTIC", Metric: "training",
		A: ftoa(model.Accuracy), B: ftoa(model.Bias),
		Notes: "Gradient-descent logistic regression; value_a = training accuracy, value_b = bias.",
	}}

	names := make([]string, 0, len(model.Weights))
	for name := range model.Weights {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, Row{
			Section: "LOGISTIC", Metric: name,
			A:     ftoa(model.Weights[name]),
			Notes: "Trained logistic weight.",
		})
	}
	return out
}

// featurize builds the design matrix: z-scored numeric columns first, then
// one-hot dummies for every categorical value present in the dataset, in
// sorted name order for determinism.
func featurize(records []models.ImageRecord) (names []string, rows [][]float64) {
	type numeric struct {
		name    string
		feature func(models.ImageRecord) float64
	}
	numerics := []numeric{
		{"z_raw_mean", func(r models.ImageRecord) float64 { return r.RawMean }},
		{"z_black_diameter", func(r models.ImageRecord) float64 { return r.Black.Diameter }},
		{"z_white_diameter", func(r models.ImageRecord) float64 { return r.White.Diameter }},
	}

	type categorical struct {
		prefix string
		value  func(models.ImageRecord) string
	}
	categoricals := []categorical{
		{"season_", func(r models.ImageRecord) string { return seasonOrUnknown(r.Season) }},
		{"pol_", func(r models.ImageRecord) string { return r.Polarization }},
		{"black_shape_", func(r models.ImageRecord) string { return r.Black.Shape }},
		{"white_shape_", func(r models.ImageRecord) string { return r.White.Shape }},
	}

	for _, num := range numerics {
		names = append(names, num.name)
	}

	var dummyNames []string
	for _, cat := range categoricals {
		seen := make(map[string]struct{})
		for _, rec := range records {
			seen[cat.prefix+cat.value(rec)] = struct{}{}
		}
		keys := make([]string, 0, len(seen))
		for k := range seen {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		dummyNames = append(dummyNames, keys...)
	}
	names = append(names, dummyNames...)

	dummyIndex := make(map[string]int, len(dummyNames))
	for i, name := range dummyNames {
		dummyIndex[name] = len(numerics) + i
	}

	// Per-column mean/std for z-scoring the numeric features.
	zs := make([][2]float64, len(numerics))
	for j, num := range numerics {
		vals := make([]float64, len(records))
		for i, rec := range records {
			vals[i] = num.feature(rec)
		}
		mean, std := meanStd(vals)
		zs[j] = [2]float64{mean, std}
	}

	rows = make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(names))
		for j, num := range numerics {
			v := num.feature(rec)
			if zs[j][1] != 0 {
				row[j] = (v - zs[j][0]) / zs[j][1]
			}
		}
		for _, cat := range categoricals {
			row[dummyIndex[cat.prefix+cat.value(rec)]] = 1.0
		}
		rows[i] = row
	}
	return names, rows
}

func singleClass(records []models.ImageRecord) bool {
	first := records[0].Flooding
	for _, rec := range records[1:] {
		if rec.Flooding != first {
			return false
		}
	}
	return true
}

func label(rec models.ImageRecord) float64 {
	if rec.Flooding {
		return 1.0
	}
	return 0.0
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
