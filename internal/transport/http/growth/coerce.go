package growthhttp

import (
	"fmt"
	"strconv"
	"strings"

	"growthcalc/internal/growth"

	"github.com/tidwall/gjson"
)

// The EHR exports feeding this API are loosely typed: numbers arrive as
// strings, sexes as assorted spellings. Coercion happens here, at the edge;
// the engine itself only ever sees validated Measurements.

type batchItem struct {
	measurement growth.Measurement
	err         error
}

func coerceMeasurement(raw string, def growth.Standard) (growth.Measurement, growth.Standard, error) {
	if !gjson.Valid(raw) {
		return growth.Measurement{}, "", fmt.Errorf("request is not valid JSON")
	}
	node := gjson.Parse(raw)
	if !node.IsObject() {
		return growth.Measurement{}, "", fmt.Errorf("request root must be a JSON object")
	}
	meas, err := coerceMeasurementNode(node)
	if err != nil {
		return growth.Measurement{}, "", err
	}
	std, err := coerceStandard(node, def)
	if err != nil {
		return growth.Measurement{}, "", err
	}
	return meas, std, nil
}

func coerceMeasurementNode(node gjson.Result) (growth.Measurement, error) {
	metric, err := growth.ParseMetric(node.Get("metric").String())
	if err != nil {
		return growth.Measurement{}, err
	}
	sex, err := growth.ParseSex(node.Get("sex").String())
	if err != nil {
		return growth.Measurement{}, err
	}
	age, err := numberField(node, "age_months", true)
	if err != nil {
		return growth.Measurement{}, err
	}
	value, err := numberField(node, "value", true)
	if err != nil {
		return growth.Measurement{}, err
	}
	stature, err := numberField(node, "stature_cm", false)
	if err != nil {
		return growth.Measurement{}, err
	}
	return growth.Measurement{
		Metric:    metric,
		Sex:       sex,
		AgeMonths: age,
		Value:     value,
		StatureCM: stature,
	}, nil
}

func coerceStandard(node gjson.Result, def growth.Standard) (growth.Standard, error) {
	raw := node.Get("standard").String()
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	return growth.ParseStandard(raw)
}

type inverseRequest struct {
	metric     growth.Metric
	sex        growth.Sex
	ageMonths  float64
	percentile float64
}

func coerceInverse(raw string) (inverseRequest, error) {
	if !gjson.Valid(raw) {
		return inverseRequest{}, fmt.Errorf("request is not valid JSON")
	}
	node := gjson.Parse(raw)
	metric, err := growth.ParseMetric(node.Get("metric").String())
	if err != nil {
		return inverseRequest{}, err
	}
	sex, err := growth.ParseSex(node.Get("sex").String())
	if err != nil {
		return inverseRequest{}, err
	}
	age, err := numberField(node, "age_months", true)
	if err != nil {
		return inverseRequest{}, err
	}
	pct, err := numberField(node, "percentile", true)
	if err != nil {
		return inverseRequest{}, err
	}
	return inverseRequest{metric: metric, sex: sex, ageMonths: age, percentile: pct}, nil
}

func coerceBatch(raw string, def growth.Standard) ([]batchItem, growth.Standard, error) {
	node := gjson.Parse(raw)
	std, err := coerceStandard(node, def)
	if err != nil {
		return nil, "", err
	}
	itemsNode := node.Get("items")
	var out []batchItem
	itemsNode.ForEach(func(_, item gjson.Result) bool {
		meas, err := coerceMeasurementNode(item)
		if err != nil {
			out = append(out, batchItem{err: err})
			return true
		}
		if itemStd := strings.TrimSpace(item.Get("standard").String()); itemStd != "" {
			// Per-item standard overrides are not supported; keep the batch
			// uniform so results stay comparable.
			out = append(out, batchItem{err: fmt.Errorf("standard must be set on the batch, not per item")})
			return true
		}
		out = append(out, batchItem{measurement: meas})
		return true
	})
	return out, std, nil
}

// numberField accepts both JSON numbers and numeric strings.
func numberField(node gjson.Result, key string, required bool) (float64, error) {
	field := node.Get(key)
	if !field.Exists() || strings.TrimSpace(field.String()) == "" {
		if required {
			return 0, fmt.Errorf("field %q is required", key)
		}
		return 0, nil
	}
	switch field.Type {
	case gjson.Number:
		return field.Float(), nil
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(field.String()), 64)
		if err != nil {
			return 0, fmt.Errorf("field %q is not numeric: %q", key, field.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("field %q must be a number", key)
	}
}
