package growth

import (
	"fmt"
	"strings"
)

// Sex follows the CDC coding convention (1 = male, 2 = female).
type Sex int

const (
	SexMale   Sex = 1
	SexFemale Sex = 2
)

// ParseSex accepts the loose spellings seen in upstream EHR exports.
func ParseSex(raw string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "boy", "1":
		return SexMale, nil
	case "female", "f", "girl", "2":
		return SexFemale, nil
	default:
		return 0, fmt.Errorf("invalid sex %q (want male/female)", raw)
	}
}

func (s Sex) Valid() bool { return s == SexMale || s == SexFemale }

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "male"
	case SexFemale:
		return "female"
	default:
		return fmt.Sprintf("sex(%d)", int(s))
	}
}

// Metric identifies which reference series and measurement unit applies.
type Metric string

const (
	MetricWeightForAge      Metric = "weight_for_age"
	MetricStatureForAge     Metric = "stature_for_age"
	MetricWeightForStature  Metric = "weight_for_stature"
	MetricBMIForAge         Metric = "bmi_for_age"
	MetricHeadCircumference Metric = "head_circumference"
)

// Metrics lists every supported metric in a stable order.
func Metrics() []Metric {
	return []Metric{
		MetricWeightForAge,
		MetricStatureForAge,
		MetricWeightForStature,
		MetricBMIForAge,
		MetricHeadCircumference,
	}
}

// ParseMetric normalizes the aliases the original EHR feeds used.
func ParseMetric(raw string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "weight_for_age", "wfa":
		return MetricWeightForAge, nil
	case "stature_for_age", "height_for_age", "length_for_age", "hfa", "lfa":
		return MetricStatureForAge, nil
	case "weight_for_stature", "weight_for_height", "weight_for_length", "wfh", "wfl":
		return MetricWeightForStature, nil
	case "bmi_for_age", "bmifa":
		return MetricBMIForAge, nil
	case "head_circumference", "head_circumference_for_age", "hcfa":
		return MetricHeadCircumference, nil
	default:
		return "", fmt.Errorf("unknown growth metric %q", raw)
	}
}

func (m Metric) Valid() bool {
	switch m {
	case MetricWeightForAge, MetricStatureForAge, MetricWeightForStature,
		MetricBMIForAge, MetricHeadCircumference:
		return true
	}
	return false
}

// StatureIndexed reports whether the reference series for the metric is keyed
// by stature (cm) rather than age.
func (m Metric) StatureIndexed() bool { return m == MetricWeightForStature }

// Standard names a growth reference standard. AUTO is a selection instruction
// only; a Result always carries the concrete standard that was applied.
type Standard string

const (
	StandardCDC  Standard = "CDC"
	StandardWHO  Standard = "WHO"
	StandardAuto Standard = "AUTO"
)

func ParseStandard(raw string) (Standard, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "AUTO":
		return StandardAuto, nil
	case "CDC":
		return StandardCDC, nil
	case "WHO":
		return StandardWHO, nil
	default:
		return "", fmt.Errorf("unknown growth standard %q", raw)
	}
}

// Measurement is one raw observation to score. StatureCM is the companion
// measurement, required only for weight-for-stature.
type Measurement struct {
	Metric    Metric
	Sex       Sex
	AgeMonths float64
	Value     float64
	StatureCM float64
}

// Result is an immutable scored observation. Standard is always concrete
// (CDC or WHO), never AUTO.
type Result struct {
	Metric     Metric
	Sex        Sex
	AgeMonths  float64
	Value      float64
	StatureCM  float64
	ZScore     float64
	Percentile float64
	Standard   Standard
}
