package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"fscrape/internal/fetcher"
	"fscrape/internal/fighter"
	"fscrape/internal/output"

	"github.com/rs/zerolog"
)

// Source yields the record behind one identifier.
type Source interface {
	Fighter(ctx context.Context, id int) (fighter.Record, error)
}

// RowWriter receives CSV rows.
type RowWriter interface {
	WriteRow(fields []string) error
	Close() error
}

// Sequence yields start, start+1, ... up to and including end. An end of
// zero or less means no upper bound.
func Sequence(start, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for id := start; end <= 0 || id <= end; id++ {
			if !yield(id) {
				return
			}
		}
	}
}

// Summary counts what happened to each identifier.
type Summary struct {
	Processed int // identifiers attempted
	Written   int // rows emitted
	Skipped   int // pages without a fighter
	Failed    int // transport or encoding failures
	LastID    int // last identifier attempted, 0 if none
}

// Driver runs the fetch-extract-write loop, one identifier at a time.
type Driver struct {
	Source  Source
	Writer  RowWriter
	Logger  zerolog.Logger
	Status  io.Writer // receives "<id>: <name>" lines and the final "Exiting"
	Missing string    // written as-is for absent optional fields, "" allowed

	// Delay is slept between identifiers. Zero disables it.
	Delay time.Duration

	// StopOnFetchError makes a transport failure end the run instead of
	// skipping the identifier.
	StopOnFetchError bool
}

// Run writes the header, then processes ids until the sequence ends or ctx
// is cancelled. Cancellation is checked between identifiers; an in-flight
// scrape finishes first. The writer is always closed before Run returns.
func (d *Driver) Run(ctx context.Context, ids iter.Seq[int]) (sum Summary, err error) {
	defer func() {
		if cerr := d.Writer.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output: %w", cerr)
		}
		if d.Status != nil {
			fmt.Fprintln(d.Status, "Exiting")
		}
	}()

	if err := d.Writer.WriteRow(fighter.Header); err != nil {
		return sum, fmt.Errorf("failed to write header: %w", err)
	}

	scrapeCtx := context.WithoutCancel(ctx)

	for id := range ids {
		if ctx.Err() != nil {
			d.Logger.Info().Int("next_id", id).Msg("interrupted, stopping")
			break
		}

		sum.Processed++
		sum.LastID = id

		if err := d.step(scrapeCtx, id, &sum); err != nil {
			return sum, err
		}

		if d.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(d.Delay):
			}
		}
	}

	d.Logger.Info().
		Int("processed", sum.Processed).
		Int("written", sum.Written).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Int("last_id", sum.LastID).
		Msg("run finished")
	return sum, nil
}

// step handles one identifier. It returns an error only when the run must end.
func (d *Driver) step(ctx context.Context, id int, sum *Summary) error {
	rec, err := d.Source.Fighter(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, fighter.ErrMissingRequired):
		sum.Skipped++
		d.Logger.Debug().Int("id", id).Err(err).Msg("no fighter, skipping")
		return nil
	case errors.Is(err, fetcher.ErrTransport) && !d.StopOnFetchError:
		sum.Failed++
		d.Logger.Warn().Int("id", id).Err(err).Msg("fetch failed, skipping")
		return nil
	default:
		sum.Failed++
		return fmt.Errorf("fighter %d: %w", id, err)
	}

	if err := d.Writer.WriteRow(rec.Row(d.Missing)); err != nil {
		if errors.Is(err, output.ErrInvalidUTF8) {
			sum.Failed++
			d.Logger.Error().Int("id", id).Err(err).Msg("row rejected")
			return nil
		}
		return fmt.Errorf("fighter %d: %w", id, err)
	}
	sum.Written++

	if d.Status != nil {
		fmt.Fprintf(d.Status, "%s: %s\n", rec.DisplayID(), rec.Name)
	}
	return nil
}
