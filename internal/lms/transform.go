package lms

import (
	"fmt"
	"math"

	"growthcalc/internal/growth"

	"gonum.org/v1/gonum/stat/distuv"
)

// lambdaEpsilon decides when L is numerically zero and the log-limit form of
// the Box-Cox transform applies.
const lambdaEpsilon = 1e-8

// ZScore converts a measurement to its z-score under the given parameters.
// The transform is undefined for non-positive values.
func ZScore(value float64, p Params) (float64, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0, fmt.Errorf("%w: got %g", growth.ErrInvalidMeasurement, value)
	}
	if math.Abs(p.L) < lambdaEpsilon {
		return math.Log(value/p.M) / p.S, nil
	}
	return (math.Pow(value/p.M, p.L) - 1) / (p.L * p.S), nil
}

// Measurement inverts ZScore. The inverse is non-real when 1+L*S*z drops to
// zero or below, which happens only at extreme percentiles; that boundary is
// surfaced as an error, never masked.
func Measurement(z float64, p Params) (float64, error) {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, fmt.Errorf("%w: z-score %g is not finite", growth.ErrInvalidMeasurement, z)
	}
	if math.Abs(p.L) < lambdaEpsilon {
		return p.M * math.Exp(p.S*z), nil
	}
	base := 1 + p.L*p.S*z
	if base <= 0 {
		return 0, fmt.Errorf("%w: z-score %g has no real measurement under L=%g S=%g",
			growth.ErrInvalidMeasurement, z, p.L, p.S)
	}
	return p.M * math.Pow(base, 1/p.L), nil
}

// Percentile maps a z-score to its percentile rank via the standard normal
// CDF, clamped to [0, 100] to absorb floating-point overshoot at extreme z.
func Percentile(z float64) float64 {
	p := distuv.UnitNormal.CDF(z) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ZFromPercentile is the probit: it rejects the closed endpoints, which map
// to infinite z-scores, rather than silently clamping them.
func ZFromPercentile(percentile float64) (float64, error) {
	if math.IsNaN(percentile) || percentile <= 0 || percentile >= 100 {
		return 0, fmt.Errorf("%w: got %g", growth.ErrInvalidPercentile, percentile)
	}
	return distuv.UnitNormal.Quantile(percentile / 100), nil
}
