package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadLayers(t *testing.T) {
	// Keep godotenv away from any .env in the package directory.
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "nexis.yaml")
	yamlContent := "root_dir: /data/nexis\nformat: sqlite\nsegment_workers: 3\nspeaker_mode: reset\n"
	if err := os.WriteFile(path, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NEXIS_OUTPUT_DIR", "/tmp/out")
	t.Setenv("NEXIS_SEGMENT_WORKERS", "8")
	t.Setenv("NEXIS_EXTRACT_WORKERS", "not-a-number")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		RootDir:        "/data/nexis",
		OutputDir:      "/tmp/out",
		Format:         "sqlite",
		ExtractWorkers: 4,
		SegmentWorkers: 8,
		SpeakerMode:    "reset",
		LogMode:        "dev",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NEXIS_FORMAT=csv\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv sets variables directly; register cleanup through t.Setenv.
	t.Setenv("NEXIS_FORMAT", "")
	os.Unsetenv("NEXIS_FORMAT")

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Format != "csv" {
		t.Errorf("Format = %q, want csv from .env", got.Format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() error = nil, want error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown format", mutate: func(c *Config) { c.Format = "parquet" }},
		{name: "unknown mode", mutate: func(c *Config) { c.SpeakerMode = "sticky" }},
		{name: "zero extract workers", mutate: func(c *Config) { c.ExtractWorkers = 0 }},
		{name: "zero segment workers", mutate: func(c *Config) { c.SegmentWorkers = 0 }},
		{name: "carry-over in parallel", mutate: func(c *Config) { c.SpeakerMode = "carry"; c.SegmentWorkers = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
