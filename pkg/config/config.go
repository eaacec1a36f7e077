// Package config provides configuration loading and management for the flood
// feature extractor. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Extraction parameters
	Extraction struct {
		// Workers is the fixed size of the worker pool
		Workers int `yaml:"workers"`

		// ProgressEvery controls how many completed jobs pass between
		// progress log lines
		ProgressEvery int `yaml:"progressEvery"`
	} `yaml:"extraction"`

	// Segmentation parameters
	Segmentation struct {
		// BaseRadius is the shade-set tolerance radius on the first pass
		BaseRadius int `yaml:"baseRadius"`

		// EscalatedRadius is the radius used by the single escalation pass
		EscalatedRadius int `yaml:"escalatedRadius"`

		// AreaCapRatio discards components above this fraction of image area
		AreaCapRatio float64 `yaml:"areaCapRatio"`

		// MinAreaRatio triggers escalation below this fraction of image area
		MinAreaRatio float64 `yaml:"minAreaRatio"`
	} `yaml:"segmentation"`

	// Output parameters
	Output struct {
		// ImagesCSV, SummaryCSV and SkippedCSV are the output file names,
		// written into the dataset root folder
		ImagesCSV  string `yaml:"imagesCsv"`
		SummaryCSV string `yaml:"summaryCsv"`
		SkippedCSV string `yaml:"skippedCsv"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Extraction.Workers = runtime.NumCPU()
	cfg.Extraction.ProgressEvery = 10

	cfg.Segmentation.BaseRadius = 1
	cfg.Segmentation.EscalatedRadius = 2
	cfg.Segmentation.AreaCapRatio = 0.40
	cfg.Segmentation.MinAreaRatio = 0.05

	cfg.Output.ImagesCSV = "Images_All.csv"
	cfg.Output.SummaryCSV = "Summary_All.csv"
	cfg.Output.SkippedCSV = "Skipped.csv"
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
