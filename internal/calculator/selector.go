package calculator

import (
	"fmt"

	"growthcalc/internal/growth"
)

// AutoThresholdMonths is the fixed AUTO policy boundary: WHO governs ages
// below 60 months, CDC ages at or above. Not configurable per call.
const AutoThresholdMonths = 60.0

// Selector decides which concrete standard applies to a request. Explicit
// CDC/WHO requests are honored verbatim but still checked against actual
// table coverage; AUTO applies the 60-month policy and falls back to the
// other standard when the policy pick has no data for the metric/age.
type Selector struct {
	cdc StandardBackend
	who StandardBackend
}

func NewSelector(cdc, who StandardBackend) *Selector {
	return &Selector{cdc: cdc, who: who}
}

// Select resolves the requested standard to a concrete one, or fails with
// ErrUnsupportedMetric / ErrUnsupportedAge when the pairing has no reference
// data.
func (s *Selector) Select(metric growth.Metric, ageMonths float64, requested growth.Standard) (growth.Standard, error) {
	switch requested {
	case growth.StandardCDC:
		return s.check(s.cdc, metric, ageMonths)
	case growth.StandardWHO:
		return s.check(s.who, metric, ageMonths)
	case growth.StandardAuto:
	default:
		return "", fmt.Errorf("unknown growth standard %q", requested)
	}

	primary, fallback := s.who, s.cdc
	if ageMonths >= AutoThresholdMonths {
		primary, fallback = s.cdc, s.who
	}
	if primary.Publishes(metric) && primary.Covers(metric, ageMonths) {
		return primary.Standard(), nil
	}
	if fallback.Publishes(metric) && fallback.Covers(metric, ageMonths) {
		return fallback.Standard(), nil
	}
	if !primary.Publishes(metric) && !fallback.Publishes(metric) {
		return "", fmt.Errorf("%w: %s", growth.ErrUnsupportedMetric, metric)
	}
	return "", fmt.Errorf("%w: %s at %.4g months", growth.ErrUnsupportedAge, metric, ageMonths)
}

func (s *Selector) check(b StandardBackend, metric growth.Metric, ageMonths float64) (growth.Standard, error) {
	if !b.Publishes(metric) {
		return "", fmt.Errorf("%w: %s does not publish %s", growth.ErrUnsupportedMetric, b.Standard(), metric)
	}
	if !b.Covers(metric, ageMonths) {
		return "", fmt.Errorf("%w: %s %s at %.4g months", growth.ErrUnsupportedAge, b.Standard(), metric, ageMonths)
	}
	return b.Standard(), nil
}
