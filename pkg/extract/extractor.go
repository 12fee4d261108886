// Package extract turns Nexis archive files into flat transcript records.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"nexis-pipeline/pkg/logger"
	"nexis-pipeline/pkg/nexis"
	"nexis-pipeline/pkg/transcript"
)

// Report summarizes an extraction run.
type Report struct {
	Files          int
	Records        int
	Invalid        []string // files without a "value" list
	Failed         []string // files that could not be read or decoded
	MissingContent int      // items skipped for a null Document.Content
}

type Extractor struct {
	log     *logger.Logger
	workers int
}

func New(log *logger.Logger, workers int) *Extractor {
	if workers < 1 {
		workers = 1
	}
	return &Extractor{log: log, workers: workers}
}

type fileResult struct {
	records []transcript.Transcript
	missing int
	err     error
}

// Run extracts every eligible file under root. Records keep the walk order
// of their files and the item order inside each file. Bad files are
// reported, not fatal.
func (e *Extractor) Run(ctx context.Context, root string) ([]transcript.Transcript, Report, error) {
	var report Report

	files, err := Walk(root)
	if err != nil {
		return nil, report, fmt.Errorf("walk %s: %w", root, err)
	}
	report.Files = len(files)
	e.log.Info("Found archive files", "root", root, "files", len(files))

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs, missing, err := ExtractFile(path)
			results[i] = fileResult{records: recs, missing: missing, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, report, err
	}

	var records []transcript.Transcript
	for i, res := range results {
		path := files[i]
		switch {
		case errors.Is(res.err, nexis.ErrInvalidStructure):
			e.log.Warn("Invalid JSON structure", "file", path)
			report.Invalid = append(report.Invalid, path)
			continue
		case res.err != nil:
			e.log.Error("Error in file", "file", path, "error", res.err)
			report.Failed = append(report.Failed, path)
			continue
		}
		if res.missing > 0 {
			e.log.Warn("Missing document content", "file", path, "items", res.missing)
		}
		report.MissingContent += res.missing
		records = append(records, res.records...)
	}
	report.Records = len(records)
	return records, report, nil
}

// ExtractFile decodes one archive file. missing counts items dropped for a
// null Document.Content.
func ExtractFile(path string) (records []transcript.Transcript, missing int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read archive: %w", err)
	}
	items, err := nexis.Decode(data)
	if err != nil {
		return nil, 0, err
	}
	for _, it := range items {
		t, ok := FromItem(it)
		if !ok {
			missing++
			continue
		}
		records = append(records, t)
	}
	return records, missing, nil
}

// FromItem flattens an archive item. It returns false when the item's
// document content is null.
func FromItem(it nexis.Item) (transcript.Transcript, bool) {
	content, ok := it.Content()
	if !ok {
		return transcript.Transcript{}, false
	}
	f := ParseContent(content)
	return transcript.Transcript{
		ID:         it.ID(),
		Title:      it.Title,
		Experts:    it.Byline,
		Date:       it.Date,
		WordLength: it.WordLength,
		Source:     it.SourceName(),
		Content:    f.Body,
		Highlight:  f.Highlight,
		Headline:   f.Headline,
		Guest:      f.Guest,
	}, true
}
