package calculator

import (
	"context"

	"growthcalc/internal/growth"
)

// StandardBackend is the uniform calculation capability behind one concrete
// growth standard. The medical calculator treats implementations as opaque:
// it asks for a z-score and derives everything else itself.
type StandardBackend interface {
	// Standard names the concrete standard this backend applies.
	Standard() growth.Standard

	// Publishes reports whether the standard publishes the metric at all.
	Publishes(metric growth.Metric) bool

	// Covers reports whether the standard has reference data for the metric
	// at the given age. Stature-indexed metrics count as covered; their span
	// is checked against the companion measurement during calculation.
	Covers(metric growth.Metric, ageMonths float64) bool

	// ZScore computes the measurement's z-score, or fails with one of the
	// growth error kinds.
	ZScore(ctx context.Context, m growth.Measurement) (float64, error)
}
