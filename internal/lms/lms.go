// Package lms implements the Lambda-Mu-Sigma method used by the CDC and WHO
// growth references: parameter resolution against tabulated rows and the
// Box-Cox transform between measurements, z-scores and percentiles.
package lms

// Params is one resolved (L, M, S) triple: skewness exponent, median and
// coefficient of variation.
type Params struct {
	L float64
	M float64
	S float64
}
