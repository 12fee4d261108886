package segment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"nexis-pipeline/pkg/transcript"
)

// ErrCarryOverParallel is returned when carry-over mode is combined with
// parallel workers: the carried speaker orders every record after the last.
var ErrCarryOverParallel = errors.New("carry-over speaker mode requires a single worker")

// Source yields records in input order and io.EOF after the last one.
type Source interface {
	Next() (transcript.Transcript, error)
}

// Sink receives segments in emission order.
type Sink interface {
	Write(Segment) error
}

type Options struct {
	Mode    Mode
	Workers int
	// BatchSize bounds how many records are held in memory per parallel
	// batch. Defaults to 64 records per worker.
	BatchSize int
}

type Stats struct {
	Records  int
	Segments int
}

// Run segments every record of src into dst.
func Run(ctx context.Context, src Source, dst Sink, opts Options) (Stats, error) {
	if opts.Workers <= 1 {
		return runSequential(ctx, src, dst, New(opts.Mode))
	}
	if opts.Mode == CarryOver {
		return Stats{}, ErrCarryOverParallel
	}
	return runParallel(ctx, src, dst, opts)
}

func runSequential(ctx context.Context, src Source, dst Sink, s *Segmenter) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		t, err := src.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("read record %d: %w", stats.Records, err)
		}
		stats.Records++
		for _, seg := range s.Segment(t) {
			if err := dst.Write(seg); err != nil {
				return stats, fmt.Errorf("write segment for %s: %w", t.ID, err)
			}
			stats.Segments++
		}
	}
}

func runParallel(ctx context.Context, src Source, dst Sink, opts Options) (Stats, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = 64 * opts.Workers
	}

	var stats Stats
	batch := make([]transcript.Transcript, 0, batchSize)
	eof := false
	for !eof {
		batch = batch[:0]
		for len(batch) < batchSize {
			t, err := src.Next()
			if err == io.EOF {
				eof = true
				break
			}
			if err != nil {
				return stats, fmt.Errorf("read record %d: %w", stats.Records+len(batch), err)
			}
			batch = append(batch, t)
		}

		results := make([][]Segment, len(batch))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i], _ = Split(batch[i], State{})
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return stats, err
		}

		for i, segs := range results {
			stats.Records++
			for _, seg := range segs {
				if err := dst.Write(seg); err != nil {
					return stats, fmt.Errorf("write segment for %s: %w", batch[i].ID, err)
				}
				stats.Segments++
			}
		}
	}
	return stats, nil
}
