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
	"nexis-pipeline/pkg/logger"
	"nexis-pipeline/pkg/segment"
	"nexis-pipeline/pkg/table"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	inputFlag := flag.String("input", "", "Transcript table to read (default <output-dir>/main_content.<ext>)")
	outputFlag := flag.String("output", "", "Segment table to write (default <output-dir>/segment_speaker_transcript.<ext>)")
	outDirFlag := flag.String("output-dir", "", "Directory holding the pipeline tables")
	formatFlag := flag.String("format", "", "Table format for input and output: jsonl|csv|sqlite")
	inFormatFlag := flag.String("input-format", "", "Input table format, overrides -format")
	outFormatFlag := flag.String("output-format", "", "Output table format, overrides -format")
	modeFlag := flag.String("speaker-mode", "", "Speaker tracking across records: reset|carry")
	workersFlag := flag.Int("workers", 0, "Concurrent segmentation workers (reset mode only)")
	logModeFlag := flag.String("log-mode", "", "Log encoder: dev|prod")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output-dir":
			cfg.OutputDir = *outDirFlag
		case "format":
			cfg.Format = *formatFlag
		case "speaker-mode":
			cfg.SpeakerMode = *modeFlag
		case "workers":
			cfg.SegmentWorkers = *workersFlag
		case "log-mode":
			cfg.LogMode = *logModeFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	format, _ := table.ParseFormat(cfg.Format)
	mode, _ := segment.ParseMode(cfg.SpeakerMode)
	inFormat, err := formatOr(*inFormatFlag, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "-input-format: %v\n", err)
		os.Exit(2)
	}
	outFormat, err := formatOr(*outFormatFlag, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "-output-format: %v\n", err)
		os.Exit(2)
	}

	inPath := *inputFlag
	if inPath == "" {
		inPath = table.Path(cfg.OutputDir, table.TranscriptsBase, inFormat)
	}
	outPath := *outputFlag
	if outPath == "" {
		outPath = table.Path(cfg.OutputDir, table.SegmentsBase, outFormat)
	}

	base, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer base.Sync()
	log := base.With("run_id", uuid.NewString(), "cmd", "segment")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if mode == segment.CarryOver {
		log.Warn("Speaker carries over between records; use -speaker-mode reset to isolate records")
	}
	log.Info("Segmenting transcripts", "input", inPath, "output", outPath, "speaker_mode", mode.String(), "workers", cfg.SegmentWorkers)

	stats, err := run(ctx, inPath, inFormat, outPath, outFormat, segment.Options{Mode: mode, Workers: cfg.SegmentWorkers})
	if err != nil {
		log.Fatal("Segmentation failed", "error", err)
	}
	log.Info("Segments saved", "path", outPath, "records", stats.Records, "segments", stats.Segments)
}

// formatOr parses s, falling back to def when s is empty.
func formatOr(s string, def table.Format) (table.Format, error) {
	if s == "" {
		return def, nil
	}
	return table.ParseFormat(s)
}

func run(ctx context.Context, inPath string, inFormat table.Format, outPath string, outFormat table.Format, opts segment.Options) (segment.Stats, error) {
	src, err := table.Open(inPath, inFormat, table.Transcripts)
	if err != nil {
		return segment.Stats{}, err
	}
	defer src.Close()

	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return segment.Stats{}, fmt.Errorf("create output directory: %w", err)
		}
	}
	dst, err := table.Create(outPath, outFormat, table.Segments)
	if err != nil {
		return segment.Stats{}, err
	}

	stats, err := segment.Run(ctx, src, dst, opts)
	if err != nil {
		dst.Close()
		return stats, err
	}
	return stats, dst.Close()
}
