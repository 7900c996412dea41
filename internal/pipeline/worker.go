package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/dgallion1/xmlrecords"
	"github.com/dgallion1/xmlrecords/internal/convert"
	"github.com/dgallion1/xmlrecords/internal/sink"
	"github.com/dgallion1/xmlrecords/xmltree"
)

// Worker processes a single conversion job.
type Worker struct {
	sink   *sink.Client
	stats  *convert.Stats
	log    *slog.Logger
	limits convert.Limits
}

func NewWorker(sc *sink.Client, stats *convert.Stats, log *slog.Logger, limits convert.Limits) *Worker {
	return &Worker{
		sink:   sc,
		stats:  stats,
		log:    log,
		limits: limits,
	}
}

// Process runs the full conversion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()
	spec := job.Spec()

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	root, err := xmltree.ParseWithOptions(bytes.NewReader(job.Document()), xmltree.ParseOptions{
		MaxDepth: w.limits.MaxDepth,
	})
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		w.stats.ObserveFailure()
		return
	}

	// Phase 2: Flatten rows into records.
	job.SetStatus(StatusConverting, "converting")
	records, err := xmlrecords.Parse(root, spec.RowsPath, spec.Options())
	if err != nil {
		log.Error("conversion failed", "error", err)
		job.AddError(fmt.Sprintf("convert: %s", err))
		job.SetStatus(StatusFailed, "converting")
		w.stats.ObserveFailure()
		return
	}
	if w.limits.MaxRecords > 0 && len(records) > w.limits.MaxRecords {
		err := fmt.Errorf("document produced %d records, limit is %d", len(records), w.limits.MaxRecords)
		log.Error("conversion failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "converting")
		w.stats.ObserveFailure()
		return
	}

	fields, words := convert.Tally(records)
	job.SetCounts(len(records), fields, words)
	job.SetRecords(records)
	log.Info("converted document", "records", len(records), "fields", fields)

	// Phase 3: Validate against expected keys, when given.
	if len(spec.ExpectedKeys) > 0 {
		job.SetStatus(StatusValidating, "validating")
		if err := xmlrecords.Validate(records, spec.ExpectedKeys); err != nil {
			log.Error("validation failed", "error", err)
			job.AddError(fmt.Sprintf("validate: %s", err))
			job.SetStatus(StatusFailed, "validating")
			w.stats.ObserveFailure()
			return
		}
	}
	w.stats.Observe(time.Since(start), len(records))

	// Phase 4: Deliver to the callback endpoint, when given.
	callback := job.CallbackURL()
	if callback == "" {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	job.SetStatus(StatusDelivering, "delivering")
	delivery := sink.Delivery{
		JobID:    job.ID,
		DocID:    job.DocID,
		Filename: job.Filename,
		Count:    len(records),
		Records:  records,
	}
	var lastErr error
	for attempt := range maxRetries {
		lastErr = w.sink.Deliver(ctx, callback, delivery)
		if lastErr == nil || !sink.IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable delivery error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			job.AddError(fmt.Sprintf("deliver: %s", ctx.Err()))
			job.SetStatus(StatusPartial, "delivering")
			return
		}
	}
	if lastErr != nil {
		log.Error("delivery failed", "error", lastErr)
		job.AddError(fmt.Sprintf("deliver: %s", lastErr))
		job.SetStatus(StatusPartial, "delivering")
		return
	}

	job.SetDelivered(len(records))
	log.Info("delivery complete", "records", len(records))
	job.SetStatus(StatusCompleted, "done")
}

const maxRetries = 3

// backoff returns a duration for delivery attempt n (0-indexed) with jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}
