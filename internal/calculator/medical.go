package calculator

import (
	"context"
	"fmt"

	"growthcalc/internal/growth"
	"growthcalc/internal/lms"
	"growthcalc/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Medical is the unified calculator: it resolves the concrete standard via
// the selector, dispatches to the matching backend and normalizes everything
// into the common Result shape.
type Medical struct {
	selector *Selector
	backends map[growth.Standard]StandardBackend
	workers  int
}

// NewMedical wires the selector over the two backends. workers bounds batch
// parallelism; values below 1 fall back to serial execution.
func NewMedical(cdc, who StandardBackend, workers int) *Medical {
	if workers < 1 {
		workers = 1
	}
	return &Medical{
		selector: NewSelector(cdc, who),
		backends: map[growth.Standard]StandardBackend{
			growth.StandardCDC: cdc,
			growth.StandardWHO: who,
		},
		workers: workers,
	}
}

// CalculateZScore scores one measurement under the requested standard
// (AUTO, CDC or WHO). The returned Result always records the concrete
// standard that was applied.
func (m *Medical) CalculateZScore(ctx context.Context, meas growth.Measurement, requested growth.Standard) (growth.Result, error) {
	std, err := m.selector.Select(meas.Metric, meas.AgeMonths, requested)
	if err != nil {
		return growth.Result{}, err
	}
	backend, ok := m.backends[std]
	if !ok {
		return growth.Result{}, fmt.Errorf("no backend for standard %s", std)
	}
	z, err := backend.ZScore(ctx, meas)
	if err != nil {
		return growth.Result{}, err
	}
	return growth.Result{
		Metric:     meas.Metric,
		Sex:        meas.Sex,
		AgeMonths:  meas.AgeMonths,
		Value:      meas.Value,
		StatureCM:  meas.StatureCM,
		ZScore:     z,
		Percentile: lms.Percentile(z),
		Standard:   std,
	}, nil
}

// BatchItem is one slot of a batch outcome: exactly one of Result or Err is
// set.
type BatchItem struct {
	Result *growth.Result
	Err    error
}

// CalculateBatch scores each measurement independently: one item's failure
// never aborts the batch, and output order matches input order regardless of
// execution order. Items share no mutable state, so they run on a bounded
// worker pool.
func (m *Medical) CalculateBatch(ctx context.Context, items []growth.Measurement, requested growth.Standard) []BatchItem {
	out := make([]BatchItem, len(items))
	if len(items) == 0 {
		return out
	}
	runID := uuid.NewString()
	logger.Debugf("batch %s: %d items, standard=%s, workers=%d", runID, len(items), requested, m.workers)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(m.workers)
	for i, item := range items {
		i, item := i, item
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i] = BatchItem{Err: err}
				return nil
			}
			res, err := m.CalculateZScore(ctx, item, requested)
			if err != nil {
				out[i] = BatchItem{Err: err}
				return nil
			}
			out[i] = BatchItem{Result: &res}
			return nil
		})
	}
	_ = group.Wait()

	failed := 0
	for _, slot := range out {
		if slot.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		logger.Debugf("batch %s: %d/%d items failed", runID, failed, len(items))
	}
	return out
}

// ApplicableStandard exposes the selector's AUTO decision for diagnostic use
// without performing any calculation.
func (m *Medical) ApplicableStandard(metric growth.Metric, ageMonths float64) (growth.Standard, error) {
	return m.selector.Select(metric, ageMonths, growth.StandardAuto)
}
