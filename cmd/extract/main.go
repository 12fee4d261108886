package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"

	"nexis-pipeline/pkg/config"
	"nexis-pipeline/pkg/extract"
	"nexis-pipeline/pkg/logger"
	"nexis-pipeline/pkg/table"
	"nexis-pipeline/pkg/transcript"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	rootFlag := flag.String("root", "", "Directory containing Nexis JSON downloads")
	outDirFlag := flag.String("output-dir", "", "Directory for the main_content table")
	formatFlag := flag.String("format", "", "Output format: jsonl|csv|sqlite")
	workersFlag := flag.Int("workers", 0, "Number of concurrent file workers")
	logModeFlag := flag.String("log-mode", "", "Log encoder: dev|prod")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cfg.RootDir = *rootFlag
		case "output-dir":
			cfg.OutputDir = *outDirFlag
		case "format":
			cfg.Format = *formatFlag
		case "workers":
			cfg.ExtractWorkers = *workersFlag
		case "log-mode":
			cfg.LogMode = *logModeFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	format, _ := table.ParseFormat(cfg.Format)

	base, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer base.Sync()
	log := base.With("run_id", uuid.NewString(), "cmd", "extract")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outPath := table.Path(cfg.OutputDir, table.TranscriptsBase, format)
	log.Info("Starting extraction", "root", cfg.RootDir, "workers", cfg.ExtractWorkers)
	report, err := run(ctx, log, cfg.RootDir, outPath, format, cfg.ExtractWorkers)
	if err != nil {
		log.Fatal("Extraction failed", "error", err)
	}

	log.Info("Data saved",
		"path", outPath,
		"files", report.Files,
		"records", report.Records,
		"invalid_files", len(report.Invalid),
		"failed_files", len(report.Failed),
		"missing_content", report.MissingContent,
	)
}

// run extracts every archive under root and writes the transcripts table to
// outPath. Nothing is written when extraction fails.
func run(ctx context.Context, log *logger.Logger, root, outPath string, format table.Format, workers int) (extract.Report, error) {
	records, report, err := extract.New(log, workers).Run(ctx, root)
	if err != nil {
		return report, err
	}
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return report, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := writeTranscripts(outPath, format, records); err != nil {
		return report, fmt.Errorf("write %s: %w", outPath, err)
	}
	return report, nil
}

func writeTranscripts(path string, format table.Format, records []transcript.Transcript) error {
	w, err := table.Create(path, format, table.Transcripts)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := w.Write(r); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}
