package growth

import "errors"

// Error kinds surfaced by the calculation engine. Raised at the point of
// detection, wrapped with %w for context; callers dispatch with errors.Is.
var (
	// ErrOutOfRange: the queried age (or stature) lies outside the covered
	// span of the reference series. Extrapolating LMS parameters is
	// statistically unsound, so this is never clamped.
	ErrOutOfRange = errors.New("age outside reference table coverage")

	// ErrInvalidMeasurement: non-positive measurement value, or an inverse
	// transform that would produce a non-real result.
	ErrInvalidMeasurement = errors.New("invalid measurement value")

	// ErrInvalidPercentile: percentile outside the open interval (0, 100).
	ErrInvalidPercentile = errors.New("percentile outside (0, 100)")

	// ErrUnsupportedAge: the requested standard publishes no reference data
	// for the metric at that age.
	ErrUnsupportedAge = errors.New("standard has no coverage at this age")

	// ErrUnsupportedMetric: the standard does not publish the metric at all
	// (e.g. CDC weight-for-stature).
	ErrUnsupportedMetric = errors.New("metric not published by standard")
)
