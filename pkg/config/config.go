package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"nexis-pipeline/pkg/segment"
	"nexis-pipeline/pkg/table"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	RootDir        string `yaml:"root_dir"`
	OutputDir      string `yaml:"output_dir"`
	Format         string `yaml:"format"`
	ExtractWorkers int    `yaml:"extract_workers"`
	SegmentWorkers int    `yaml:"segment_workers"`
	SpeakerMode    string `yaml:"speaker_mode"`
	LogMode        string `yaml:"log_mode"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		RootDir:        "../nexislexis/",
		OutputDir:      "../output/",
		Format:         string(table.JSONL),
		ExtractWorkers: 4,
		SegmentWorkers: 1,
		SpeakerMode:    segment.CarryOver.String(),
		LogMode:        "dev",
	}
}

// Load layers defaults, the YAML file at path (skipped when path is empty),
// a ./.env file when present, and NEXIS_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	_ = godotenv.Load() // Load .env file if it exists

	cfg.RootDir = envString("NEXIS_ROOT_DIR", cfg.RootDir)
	cfg.OutputDir = envString("NEXIS_OUTPUT_DIR", cfg.OutputDir)
	cfg.Format = envString("NEXIS_FORMAT", cfg.Format)
	cfg.ExtractWorkers = envInt("NEXIS_EXTRACT_WORKERS", cfg.ExtractWorkers)
	cfg.SegmentWorkers = envInt("NEXIS_SEGMENT_WORKERS", cfg.SegmentWorkers)
	cfg.SpeakerMode = envString("NEXIS_SPEAKER_MODE", cfg.SpeakerMode)
	cfg.LogMode = envString("NEXIS_LOG_MODE", cfg.LogMode)

	return cfg, nil
}

// Validate checks the settings shared by both binaries.
func (c Config) Validate() error {
	if _, err := table.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	mode, err := segment.ParseMode(c.SpeakerMode)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.ExtractWorkers < 1 {
		return fmt.Errorf("%w: extract_workers must be >= 1, got %d", ErrInvalid, c.ExtractWorkers)
	}
	if c.SegmentWorkers < 1 {
		return fmt.Errorf("%w: segment_workers must be >= 1, got %d", ErrInvalid, c.SegmentWorkers)
	}
	if mode == segment.CarryOver && c.SegmentWorkers > 1 {
		return fmt.Errorf("%w: %v", ErrInvalid, segment.ErrCarryOverParallel)
	}
	return nil
}

func envString(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func envInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
