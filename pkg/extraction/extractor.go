// Package extraction drives the per-image feature pipeline: it discovers
// jobs, runs them across a fixed worker pool, and aggregates the results in
// submission order so downstream output is deterministic regardless of
// completion order.
package extraction

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/internal/models"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/labels"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/meta"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/raster"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/segmentation"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/shapes"
)

// Result is the outcome of one job. Exactly one of Record and Skip is set;
// a job whose worker panicked has neither and its slot stays nil.
type Result struct {
	Record *models.ImageRecord
	Skip   *models.SkipRecord
}

// Params configures an extraction run.
type Params struct {
	// Workers is the fixed worker pool size; values below 1 become 1
	Workers int

	// ProgressEvery controls progress logging granularity in completed jobs
	ProgressEvery int

	// Segmentation tunes the two-pass thresholding
	Segmentation segmentation.Params
}

// Extractor runs image jobs against an immutable label table. The table is
// the only data shared across jobs; everything else is per-job state.
type Extractor struct {
	params Params
	labels *labels.Table
	log    *logrus.Logger

	// processFn is swappable for tests; defaults to processJob
	processFn func(Job) *Result
}

// New creates an Extractor. A nil logger falls back to the logrus standard
// logger.
func New(params Params, table *labels.Table, log *logrus.Logger) *Extractor {
	if params.Workers < 1 {
		params.Workers = 1
	}
	if params.ProgressEvery < 1 {
		params.ProgressEvery = 10
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := &Extractor{params: params, labels: table, log: log}
	e.processFn = e.processJob
	return e
}

// Run executes all jobs over the worker pool and aggregates one result per
// job. The returned collections preserve submission order. A worker panic is
// recovered and logged; the affected job appears in neither collection.
func (e *Extractor) Run(jobs []Job) ([]models.ImageRecord, []models.SkipRecord) {
	slots := make([]*Result, len(jobs))

	indexes := make(chan int)
	var completed atomic.Int64
	var wg sync.WaitGroup

	for w := 0; w < e.params.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				e.runOne(jobs[i], &slots[i])
				done := completed.Add(1)
				if done%int64(e.params.ProgressEvery) == 0 || done == int64(len(jobs)) {
					e.log.Infof("processed %d / %d images (%.1f%%)",
						done, len(jobs), 100.0*float64(done)/float64(len(jobs)))
				}
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	// Read slots back in submission order.
	records := make([]models.ImageRecord, 0, len(jobs))
	skips := make([]models.SkipRecord, 0)
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		if slot.Record != nil {
			records = append(records, *slot.Record)
		}
		if slot.Skip != nil {
			skips = append(skips, *slot.Skip)
		}
	}
	return records, skips
}

// runOne executes one job, containing any panic so a single faulty image
// cannot take down the run. The slot stays nil on a fault.
func (e *Extractor) runOne(job Job, slot **Result) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warnf("dropping job %s: worker fault: %v", job.ImageName(), r)
		}
	}()
	*slot = e.processFn(job)
}

// processJob resolves the label, decodes the raster, and runs the per-image
// analysis. Unprocessable input becomes a SkipRecord; it never aborts the run.
func (e *Extractor) processJob(job Job) *Result {
	flooding, ok := e.labels.Lookup(job.BaseName())
	if !ok {
		return skip(job, "no matching FLOODING label in S1list/S2list")
	}

	img, err := raster.Decode(job.Path)
	if err != nil {
		return skip(job, "failed to decode image: "+err.Error())
	}
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return skip(job, "empty or unsupported raster")
	}

	record := e.analyze(img, job, flooding)
	return &Result{Record: record}
}

func skip(job Job, reason string) *Result {
	return &Result{Skip: &models.SkipRecord{
		ImageName:  job.ImageName(),
		FolderName: job.FolderName,
		Reason:     reason,
	}}
}

// analyze runs the segmentation core for one decoded raster and assembles the
// ImageRecord.
func (e *Extractor) analyze(img image.Image, job Job, flooding bool) *models.ImageRecord {
	grid := raster.FromImage(img)
	hist := raster.BuildHistogram(grid)

	res := segmentation.Segment(grid, hist, e.params.Segmentation)
	pair := segmentation.Reconcile(res, grid.Width, grid.Height)

	black := componentStats(pair.Dark)
	white := componentStats(pair.Bright)

	return &models.ImageRecord{
		ImageName:     job.ImageName(),
		FolderName:    job.FolderName,
		Polarization:  meta.Polarization(job.ImageName()),
		Flooding:      flooding,
		Season:        meta.Season(job.ImageName()),
		RawMean:       hist.Mean(),
		Black:         black,
		White:         white,
		DominantShape: dominantShape(hist, grid.MaxSample, res.Radius, black, white),
		RawCounts:     hist.RawCounts(),
	}
}

func componentStats(c segmentation.Component) models.ComponentStats {
	return models.ComponentStats{
		Size:     c.Count,
		Width:    c.BoxWidth(),
		Height:   c.BoxHeight(),
		Diameter: c.Diameter(),
		Shape:    string(shapes.Classify(c)),
	}
}

// dominantShape picks the shape label of the side whose shade set contains
// the single most frequent non-zero intensity. When that value lies in
// neither set the larger region decides.
func dominantShape(hist *raster.Histogram, maxSample, radius int, black, white models.ComponentStats) string {
	mode, ok := hist.Mode()
	if ok {
		dark, bright := segmentation.BuildShadeSets(hist.Counts, maxSample, radius)
		inDark := dark.Contains(mode)
		inBright := bright.Contains(mode)
		switch {
		case inBright && !inDark:
			return white.Shape
		case inDark && !inBright:
			return black.Shape
		}
	}
	if black.Size >= white.Size {
		return black.Shape
	}
	return white.Shape
}
