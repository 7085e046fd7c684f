package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if cfg != defaultConfig() {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfigJSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "config.json")
	writeFile(t, jsonPath, `{"title": "People", "width": 1024, "locale": "de", "seed": "people.json"}`)
	yamlPath := filepath.Join(dir, "config.yaml")
	writeFile(t, yamlPath, "title: People\nwidth: 1024\nlocale: de\nseed: people.json\n")

	for _, path := range []string{jsonPath, yamlPath} {
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("load %s: %v", path, err)
		}
		if cfg.Title != "People" || cfg.Width != 1024 || cfg.Locale != "de" {
			t.Fatalf("%s: unexpected config %+v", path, cfg)
		}
		if cfg.Height != 640 || cfg.ColumnWidth != 180 {
			t.Fatalf("%s: missing keys should default, got %+v", path, cfg)
		}
		if cfg.Seed != filepath.Join(dir, "people.json") {
			t.Fatalf("%s: seed path not resolved against config dir: %q", path, cfg.Seed)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := loadConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing config")
	}
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, "invalid")
	if _, err := loadConfig(bad); err == nil {
		t.Fatalf("expected error for invalid json")
	}
	txt := filepath.Join(dir, "config.txt")
	writeFile(t, txt, "title=x")
	if _, err := loadConfig(txt); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestLoadSeed(t *testing.T) {
	recs, err := loadSeed(defaultConfig())
	if err != nil || len(recs) != 3 {
		t.Fatalf("built-in seed: %d rows, %v", len(recs), err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "people.json")
	writeFile(t, path, `[
		{"id": "a", "firstName": "Ann", "lastName": "Lee", "position": "QA", "phone": "555", "email": "ann@example.com"},
		{"firstName": "Ben", "lastName": "Kim", "position": "Ops", "phone": "556", "email": "ben@example.com"}
	]`)
	recs, err = loadSeed(Config{Seed: path})
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "a" || recs[1].ID == "" || recs[1].FirstName != "Ben" {
		t.Fatalf("unexpected seed rows %+v", recs)
	}

	dup := filepath.Join(dir, "dup.json")
	writeFile(t, dup, `[{"id": "a"}, {"id": "a"}]`)
	if _, err := loadSeed(Config{Seed: dup}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}
