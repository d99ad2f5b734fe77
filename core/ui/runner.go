// Package ui - Projection runner with live progress
package ui

import (
	"context"
	"time"

	"aws-cost-calc/core/projection"
)

// ProjectionRunner runs a projection with terminal feedback.
// At verbosity 2 every period is echoed as it is produced.
type ProjectionRunner struct {
	w            *Writer
	showProgress bool
}

// NewProjectionRunner creates a runner
func NewProjectionRunner(w *Writer, showProgress bool) *ProjectionRunner {
	return &ProjectionRunner{
		w:            w,
		showProgress: showProgress,
	}
}

// ProjectionRun is the outcome of one run
type ProjectionRun struct {
	Records  []projection.PeriodCostRecord
	Summary  projection.Summary
	Duration time.Duration
}

// Run projects p, stopping early if ctx is cancelled
func (r *ProjectionRunner) Run(ctx context.Context, p projection.Params) (*ProjectionRun, error) {
	start := time.Now()

	var bar *ProgressBar
	if r.showProgress {
		bar = r.w.NewProgressBar(p.Periods, "Projecting")
	}

	observer := projection.WithObserver(func(rec projection.PeriodCostRecord) {
		if bar != nil {
			bar.Update(rec.Period)
		}
		r.w.Debug("period %d: storage %s GB, total %s", rec.Period, rec.Storage, rec.TotalCost.StringFixed(5))
	})

	records := make([]projection.PeriodCostRecord, 0, max(p.Periods, 0))
	for rec := range projection.Periods(p, observer) {
		if err := ctx.Err(); err != nil {
			if bar != nil {
				bar.Done()
			}
			return nil, err
		}
		records = append(records, rec)
	}
	if bar != nil {
		bar.Done()
	}

	return &ProjectionRun{
		Records:  records,
		Summary:  projection.Summarize(records),
		Duration: time.Since(start),
	}, nil
}
