package table

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"nexis-pipeline/pkg/segment"
	"nexis-pipeline/pkg/transcript"
)

// Default file base names inside the output directory.
const (
	TranscriptsBase = "main_content"
	SegmentsBase    = "segment_speaker_transcript"
)

// Transcripts is the extractor's output table.
var Transcripts = Schema[transcript.Transcript]{
	Table: "main_content",
	Columns: []Column{
		{Name: "id", Type: "TEXT"},
		{Name: "title", Type: "TEXT"},
		{Name: "experts", Type: "TEXT"},
		{Name: "date", Type: "TEXT"},
		{Name: "wordlength", Type: "INTEGER"},
		{Name: "source", Type: "TEXT"},
		{Name: "content", Type: "TEXT"},
		{Name: "highlight", Type: "TEXT"},
		{Name: "headline", Type: "TEXT"},
		{Name: "guest", Type: "TEXT"},
	},
	Values: func(t transcript.Transcript) []any {
		return []any{t.ID, t.Title, t.Experts, t.Date, t.WordLength, t.Source, t.Content, t.Highlight, t.Headline, t.Guest}
	},
	Parse: func(f []string) (transcript.Transcript, error) {
		t := transcript.Transcript{
			ID:        f[0],
			Title:     f[1],
			Experts:   f[2],
			Date:      f[3],
			Source:    f[5],
			Content:   f[6],
			Highlight: f[7],
			Headline:  f[8],
			Guest:     f[9],
		}
		if s := strings.TrimSpace(f[4]); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return t, fmt.Errorf("wordlength of %s: %w", t.ID, err)
			}
			t.WordLength = n
		}
		return t, nil
	},
}

// Segments is the segmenter's output table.
var Segments = Schema[segment.Segment]{
	Table: "segments",
	Columns: []Column{
		{Name: "Segment", Type: "TEXT"},
		{Name: "id", Type: "TEXT"},
		{Name: "experts", Type: "TEXT"},
	},
	Values: func(s segment.Segment) []any {
		return []any{s.Text, s.ID, s.Experts}
	},
	Parse: func(f []string) (segment.Segment, error) {
		return segment.Segment{Text: f[0], ID: f[1], Experts: f[2]}, nil
	},
}

// Path joins dir, base and the format extension.
func Path(dir, base string, f Format) string {
	return filepath.Join(dir, base+f.Ext())
}
