// Package who provides the WHO calculation capability behind the uniform
// backend interface: (metric, sex, age, value) -> z-score. The medical
// calculator treats it as opaque; this implementation evaluates the WHO 2006
// child growth standards with the shared LMS engine.
package who

import (
	"context"
	"fmt"
	"math"

	"growthcalc/internal/growth"
	"growthcalc/internal/lms"
	"growthcalc/internal/refdata"
)

type Backend struct {
	provider refdata.Provider
}

func NewBackend(provider refdata.Provider) *Backend {
	return &Backend{provider: provider}
}

func (b *Backend) Standard() growth.Standard { return growth.StandardWHO }

func (b *Backend) Publishes(metric growth.Metric) bool {
	_, ok := b.provider.Series(growth.StandardWHO, metric, growth.SexMale)
	if !ok {
		_, ok = b.provider.Series(growth.StandardWHO, metric, growth.SexFemale)
	}
	return ok
}

func (b *Backend) Covers(metric growth.Metric, ageMonths float64) bool {
	return b.provider.Covers(growth.StandardWHO, metric, ageMonths)
}

// ZScore scores the measurement against the WHO standards.
func (b *Backend) ZScore(_ context.Context, m growth.Measurement) (float64, error) {
	if !m.Sex.Valid() {
		return 0, fmt.Errorf("invalid sex %d (want 1=male, 2=female)", int(m.Sex))
	}
	if math.IsNaN(m.AgeMonths) || math.IsInf(m.AgeMonths, 0) || m.AgeMonths < 0 {
		return 0, fmt.Errorf("%w: age_months %g must be finite and non-negative", growth.ErrOutOfRange, m.AgeMonths)
	}
	series, ok := b.provider.Series(growth.StandardWHO, m.Metric, m.Sex)
	if !ok {
		return 0, fmt.Errorf("%w: WHO does not publish %s", growth.ErrUnsupportedMetric, m.Metric)
	}
	key := m.AgeMonths
	if series.Axis == refdata.AxisStatureCM {
		if m.StatureCM <= 0 {
			return 0, fmt.Errorf("%w: %s requires a companion stature", growth.ErrInvalidMeasurement, m.Metric)
		}
		key = m.StatureCM
	}
	params, err := lms.Resolve(series, key)
	if err != nil {
		return 0, err
	}
	return lms.ZScore(m.Value, params)
}
