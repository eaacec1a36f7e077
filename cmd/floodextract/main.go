package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/internal/report"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/config"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/extraction"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/labels"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/segmentation"
	"github.com/DF4708/VH-VV-Satellite-Flood-Detection/pkg/stats"
)

func main() {
	// Parse command line arguments
	rootDir := flag.String("root", ".", "Dataset root folder containing S1list.json/S2list.json and the scene folders")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	workers := flag.Int("workers", 0, "Worker pool size (0 = value from config / all cores)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if *workers > 0 {
		cfg.Extraction.Workers = *workers
	}
	if !cfg.Output.Verbose {
		log.SetLevel(logrus.WarnLevel)
	}

	root, err := filepath.Abs(*rootDir)
	if err != nil {
		log.Fatalf("failed to resolve root folder: %v", err)
	}
	log.Infof("root folder: %s", root)

	// The label table is the only state shared across workers; it is built
	// once, before the pool starts, and read-only afterwards.
	table, err := labels.Load(
		filepath.Join(root, "S1list.json"),
		filepath.Join(root, "S2list.json"),
	)
	if err != nil {
		log.Fatalf("failed to load flood labels: %v", err)
	}
	log.Infof("flood entries loaded: %d", table.Len())

	jobs, err := extraction.DiscoverJobs(root)
	if err != nil {
		log.Fatalf("failed to enumerate images: %v", err)
	}
	log.Infof("TIF/TIFF images discovered: %d", len(jobs))
	if len(jobs) == 0 {
		log.Warn("no TIF/TIFF images found, exiting")
		os.Exit(1)
	}

	extractor := extraction.New(extraction.Params{
		Workers:       cfg.Extraction.Workers,
		ProgressEvery: cfg.Extraction.ProgressEvery,
		Segmentation: segmentation.Params{
			BaseRadius:      cfg.Segmentation.BaseRadius,
			EscalatedRadius: cfg.Segmentation.EscalatedRadius,
			AreaCapRatio:    cfg.Segmentation.AreaCapRatio,
			MinAreaRatio:    cfg.Segmentation.MinAreaRatio,
		},
	}, table, log)

	log.Infof("processing with %d workers", cfg.Extraction.Workers)
	start := time.Now()
	records, skips := extractor.Run(jobs)
	log.Infof("images processed: %d, skipped: %d (%.2fs)",
		len(records), len(skips), time.Since(start).Seconds())

	if len(records) == 0 {
		log.Warn("no images produced data rows; check labels and TIFF formats")
	}

	summary := stats.BuildSummary(records)

	if err := report.WriteImagesAll(filepath.Join(root, cfg.Output.ImagesCSV), records); err != nil {
		log.Fatalf("failed to write per-image CSV: %v", err)
	}
	if err := report.WriteSummary(filepath.Join(root, cfg.Output.SummaryCSV), summary); err != nil {
		log.Fatalf("failed to write summary CSV: %v", err)
	}
	if err := report.WriteSkipped(filepath.Join(root, cfg.Output.SkippedCSV), skips); err != nil {
		log.Fatalf("failed to write skipped CSV: %v", err)
	}

	log.Infof("%s, %s and %s written in %s",
		cfg.Output.ImagesCSV, cfg.Output.SummaryCSV, cfg.Output.SkippedCSV, root)
}
