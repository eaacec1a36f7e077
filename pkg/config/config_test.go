package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extraction.Workers < 1 {
		t.Errorf("expected at least one worker, got %d", cfg.Extraction.Workers)
	}
	if cfg.Segmentation.BaseRadius != 1 || cfg.Segmentation.EscalatedRadius != 2 {
		t.Errorf("unexpected radii: %d/%d",
			cfg.Segmentation.BaseRadius, cfg.Segmentation.EscalatedRadius)
	}
	if cfg.Segmentation.AreaCapRatio != 0.40 || cfg.Segmentation.MinAreaRatio != 0.05 {
		t.Errorf("unexpected area ratios: %v/%v",
			cfg.Segmentation.AreaCapRatio, cfg.Segmentation.MinAreaRatio)
	}
	if cfg.Output.ImagesCSV != "Images_All.csv" {
		t.Errorf("unexpected images csv name: %s", cfg.Output.ImagesCSV)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.SummaryCSV != "Summary_All.csv" {
		t.Error("missing config file must fall back to defaults")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Extraction.Workers = 3
	cfg.Segmentation.AreaCapRatio = 0.25
	cfg.Output.Verbose = false

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Extraction.Workers != 3 {
		t.Errorf("workers = %d, want 3", loaded.Extraction.Workers)
	}
	if loaded.Segmentation.AreaCapRatio != 0.25 {
		t.Errorf("areaCapRatio = %v, want 0.25", loaded.Segmentation.AreaCapRatio)
	}
	if loaded.Output.Verbose {
		t.Error("expected verbose false after round trip")
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Extraction.ProgressEvery != 10 {
		t.Errorf("progressEvery = %d, want 10", loaded.Extraction.ProgressEvery)
	}
}
