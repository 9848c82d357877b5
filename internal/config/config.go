package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/reconcile-dev/reconcile/internal/recon"
)

// Config represents the top-level reconcile.yaml configuration.
type Config struct {
	Matching MatchingConfig `yaml:"matching"`
	Report   ReportConfig   `yaml:"report"`
}

// MatchingConfig holds the run tolerances.
type MatchingConfig struct {
	AmountTolerancePercent float64 `yaml:"amount_tolerance_percent"`
	DateToleranceDays      int     `yaml:"date_tolerance_days"`
	EnableFuzzy            bool    `yaml:"enable_fuzzy"`
}

// ReportConfig controls where run outputs are written.
type ReportConfig struct {
	OutDir string `yaml:"out_dir"`
}

// Load reads a reconcile.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			AmountTolerancePercent: 0.01,
			DateToleranceDays:      3,
			EnableFuzzy:            true,
		},
		Report: ReportConfig{
			OutDir: "reports",
		},
	}
}

// ReconConfig converts the file representation into engine tolerances.
func (c *Config) ReconConfig() recon.Config {
	return recon.Config{
		AmountTolerancePercent: decimal.NewFromFloat(c.Matching.AmountTolerancePercent),
		DateToleranceDays:      c.Matching.DateToleranceDays,
		EnableFuzzyMatching:    c.Matching.EnableFuzzy,
	}
}
