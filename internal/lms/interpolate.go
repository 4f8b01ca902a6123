package lms

import (
	"fmt"
	"math"
	"sort"

	"growthcalc/internal/growth"
	"growthcalc/internal/refdata"
)

// keyEpsilon treats a query this close to a tabulated key as an exact hit,
// so no interpolation drift is introduced at table points.
const keyEpsilon = 1e-6

// Resolve evaluates the series' LMS parameters at the given key (age in
// months, or stature in cm for stature-indexed series). Exact tabulated keys
// return the row verbatim; keys between rows interpolate L, M and S linearly;
// keys outside the covered span fail with growth.ErrOutOfRange. The tables
// are never extrapolated.
func Resolve(series *refdata.Series, key float64) (Params, error) {
	rows := series.Rows
	if len(rows) == 0 {
		return Params{}, fmt.Errorf("%w: series %s/%s/%s is empty",
			growth.ErrOutOfRange, series.Standard, series.Metric, series.Sex)
	}
	min, max := series.Span()
	if key < min-keyEpsilon || key > max+keyEpsilon {
		return Params{}, fmt.Errorf("%w: %s %.4g outside [%g, %g] for %s/%s/%s",
			growth.ErrOutOfRange, series.Axis, key, min, max,
			series.Standard, series.Metric, series.Sex)
	}

	// First row with Key >= key; rows are sorted ascending.
	i := sort.Search(len(rows), func(i int) bool { return rows[i].Key >= key-keyEpsilon })
	if i < len(rows) && math.Abs(rows[i].Key-key) <= keyEpsilon {
		r := rows[i]
		return Params{L: r.L, M: r.M, S: r.S}, nil
	}
	if i == 0 || i == len(rows) {
		// Inside the span but no bracket: only reachable through epsilon
		// slack at the edges, which the exact-match branch already covers.
		r := rows[clamp(i, 0, len(rows)-1)]
		return Params{L: r.L, M: r.M, S: r.S}, nil
	}

	lo, hi := rows[i-1], rows[i]
	t := (key - lo.Key) / (hi.Key - lo.Key)
	return Params{
		L: lo.L + t*(hi.L-lo.L),
		M: lo.M + t*(hi.M-lo.M),
		S: lo.S + t*(hi.S-lo.S),
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
