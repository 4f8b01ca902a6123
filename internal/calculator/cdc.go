package calculator

import (
	"context"
	"fmt"
	"math"

	"growthcalc/internal/growth"
	"growthcalc/internal/lms"
	"growthcalc/internal/refdata"
)

// CDC scores measurements against the CDC 2000 reference tables. It is the
// CDC-only public API and doubles as the CDC StandardBackend for the medical
// calculator. Stateless beyond the injected provider; safe for concurrent use.
type CDC struct {
	provider refdata.Provider
}

func NewCDC(provider refdata.Provider) *CDC {
	return &CDC{provider: provider}
}

// CalculateZScore scores one measurement. The z-score is the primitive; the
// percentile is always derived from it, so the two never disagree.
func (c *CDC) CalculateZScore(m growth.Measurement) (growth.Result, error) {
	if err := validateInput(m); err != nil {
		return growth.Result{}, err
	}
	params, err := c.resolve(m.Metric, m.Sex, m.AgeMonths, m.StatureCM)
	if err != nil {
		return growth.Result{}, err
	}
	z, err := lms.ZScore(m.Value, params)
	if err != nil {
		return growth.Result{}, err
	}
	return growth.Result{
		Metric:     m.Metric,
		Sex:        m.Sex,
		AgeMonths:  m.AgeMonths,
		Value:      m.Value,
		StatureCM:  m.StatureCM,
		ZScore:     z,
		Percentile: lms.Percentile(z),
		Standard:   growth.StandardCDC,
	}, nil
}

// CalculatePercentile is the percentile-first spelling of CalculateZScore;
// it runs the same computation.
func (c *CDC) CalculatePercentile(m growth.Measurement) (growth.Result, error) {
	return c.CalculateZScore(m)
}

// InversePercentile recovers the measurement value sitting at the target
// percentile for the metric/sex/age coordinate.
func (c *CDC) InversePercentile(metric growth.Metric, sex growth.Sex, ageMonths, percentile float64) (float64, error) {
	if err := validateInput(growth.Measurement{Metric: metric, Sex: sex, AgeMonths: ageMonths, Value: 1}); err != nil {
		return 0, err
	}
	z, err := lms.ZFromPercentile(percentile)
	if err != nil {
		return 0, err
	}
	params, err := c.resolve(metric, sex, ageMonths, 0)
	if err != nil {
		return 0, err
	}
	return lms.Measurement(z, params)
}

// Standard implements StandardBackend.
func (c *CDC) Standard() growth.Standard { return growth.StandardCDC }

// Publishes implements StandardBackend.
func (c *CDC) Publishes(metric growth.Metric) bool {
	_, ok := c.provider.Series(growth.StandardCDC, metric, growth.SexMale)
	if !ok {
		_, ok = c.provider.Series(growth.StandardCDC, metric, growth.SexFemale)
	}
	return ok
}

// Covers implements StandardBackend.
func (c *CDC) Covers(metric growth.Metric, ageMonths float64) bool {
	return c.provider.Covers(growth.StandardCDC, metric, ageMonths)
}

// ZScore implements StandardBackend.
func (c *CDC) ZScore(_ context.Context, m growth.Measurement) (float64, error) {
	res, err := c.CalculateZScore(m)
	if err != nil {
		return 0, err
	}
	return res.ZScore, nil
}

func (c *CDC) resolve(metric growth.Metric, sex growth.Sex, ageMonths, statureCM float64) (lms.Params, error) {
	series, ok := c.provider.Series(growth.StandardCDC, metric, sex)
	if !ok {
		return lms.Params{}, fmt.Errorf("%w: CDC does not publish %s", growth.ErrUnsupportedMetric, metric)
	}
	key := ageMonths
	if series.Axis == refdata.AxisStatureCM {
		if statureCM <= 0 {
			return lms.Params{}, fmt.Errorf("%w: %s requires a companion stature", growth.ErrInvalidMeasurement, metric)
		}
		key = statureCM
	}
	return lms.Resolve(series, key)
}

// validateInput enforces the measurement invariants: finite non-negative age,
// finite value, known metric and sex. Violations are caller errors, never
// coerced.
func validateInput(m growth.Measurement) error {
	if !m.Metric.Valid() {
		return fmt.Errorf("unknown growth metric %q", string(m.Metric))
	}
	if !m.Sex.Valid() {
		return fmt.Errorf("invalid sex %d (want 1=male, 2=female)", int(m.Sex))
	}
	if math.IsNaN(m.AgeMonths) || math.IsInf(m.AgeMonths, 0) || m.AgeMonths < 0 {
		return fmt.Errorf("%w: age_months %g must be finite and non-negative", growth.ErrOutOfRange, m.AgeMonths)
	}
	if math.IsNaN(m.Value) || math.IsInf(m.Value, 0) || m.Value < 0 {
		return fmt.Errorf("%w: value %g must be finite and non-negative", growth.ErrInvalidMeasurement, m.Value)
	}
	return nil
}
