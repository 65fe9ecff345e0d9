package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseJSONConfigSuccess(t *testing.T) {
	path := writeTempConfig(t, `{"n":6,"cache":true,"multicore":true,"workers":4,"compress":true}`)

	var cfg Config
	if err := parseJSONConfig(&cfg, path); err != nil {
		t.Fatalf("parseJSONConfig returned error: %v", err)
	}

	if cfg.N != 6 {
		t.Fatalf("expected N=6, got %d", cfg.N)
	}
	if !cfg.Cache || !cfg.Multicore || !cfg.Compress {
		t.Fatalf("unexpected boolean fields: %+v", cfg)
	}
	if cfg.Workers != 4 {
		t.Fatalf("expected Workers=4, got %d", cfg.Workers)
	}
}

func TestParseJSONConfigMissingFile(t *testing.T) {
	var cfg Config
	missing := filepath.Join(t.TempDir(), "missing.json")
	if err := parseJSONConfig(&cfg, missing); err == nil {
		t.Fatalf("parseJSONConfig expected error for missing file")
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}
