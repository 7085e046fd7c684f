package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plusk0/editable-table/grid"
)

// Config holds the window and data settings read from the config file
type Config struct {
	Title       string  `json:"title" yaml:"title"`
	Width       float32 `json:"width" yaml:"width"`
	Height      float32 `json:"height" yaml:"height"`
	ColumnWidth float32 `json:"columnWidth" yaml:"columnWidth"`
	Locale      string  `json:"locale" yaml:"locale"` // BCP 47 tag for sorting, empty = byte order
	Seed        string  `json:"seed" yaml:"seed"`     // JSON file of records, empty = built-in rows
}

func defaultConfig() Config {
	return Config{
		Title:       "Editable Table",
		Width:       900,
		Height:      640,
		ColumnWidth: 180,
	}
}

// loadConfig reads path as JSON or YAML depending on its extension.
// An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	default:
		return cfg, fmt.Errorf("config %s: unsupported extension", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	// zero values fall back to defaults
	def := defaultConfig()
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.ColumnWidth <= 0 {
		cfg.ColumnWidth = def.ColumnWidth
	}
	if cfg.Seed != "" && !filepath.IsAbs(cfg.Seed) {
		cfg.Seed = filepath.Join(filepath.Dir(path), cfg.Seed)
	}
	return cfg, nil
}

// loadSeed returns the rows the store starts with: the records in
// cfg.Seed, or the built-in rows. Records without an id get a fresh one.
func loadSeed(cfg Config) ([]grid.Record, error) {
	if cfg.Seed == "" {
		return grid.SeedRecords(), nil
	}
	b, err := os.ReadFile(cfg.Seed)
	if err != nil {
		return nil, err
	}
	var recs []grid.Record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", cfg.Seed, err)
	}
	seen := map[string]bool{}
	for i := range recs {
		if recs[i].ID == "" {
			recs[i].ID = grid.NewID()
		}
		if seen[recs[i].ID] {
			return nil, fmt.Errorf("seed %s: duplicate id %q", cfg.Seed, recs[i].ID)
		}
		seen[recs[i].ID] = true
	}
	return recs, nil
}
