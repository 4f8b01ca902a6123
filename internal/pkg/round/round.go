// Package round provides display rounding for API and CLI output. The
// engine itself always keeps full float64 precision; rounding happens only
// at the presentation edge.
package round

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places rounds half-up to the given number of decimal places. Non-finite
// inputs pass through unchanged so callers can still surface them.
func Places(val float64, places int32) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	f, _ := decimal.NewFromFloat(val).Round(places).Float64()
	return f
}

// Two is the conventional clinical display precision.
func Two(val float64) float64 { return Places(val, 2) }
