package refdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"growthcalc/internal/growth"
)

// ParseCSV reads one reference table in the CDC download layout:
// Sex,Agemos,L,M,S (weight-for-stature files carry Height instead of Agemos).
// It returns one series per sex present in the file, rows sorted by key.
func ParseCSV(r io.Reader, std growth.Standard, metric growth.Metric) ([]*Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading table header: %w", err)
	}
	cols, err := mapColumns(header, metric)
	if err != nil {
		return nil, err
	}

	rowsBySex := map[growth.Sex][]Row{}
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading table row %d: %w", line, err)
		}
		line++
		sexVal, ok := parseCell(rec, cols.sex)
		if !ok {
			// The published BMI file carries stray non-numeric rows; skip them
			// the way the original loader did.
			continue
		}
		sex := growth.Sex(int(sexVal))
		if !sex.Valid() {
			continue
		}
		key, okK := parseCell(rec, cols.key)
		l, okL := parseCell(rec, cols.l)
		m, okM := parseCell(rec, cols.m)
		s, okS := parseCell(rec, cols.s)
		if !okK || !okL || !okM || !okS {
			continue
		}
		rowsBySex[sex] = append(rowsBySex[sex], Row{Key: key, L: l, M: m, S: s})
	}

	axis := AxisAgeMonths
	if metric.StatureIndexed() {
		axis = AxisStatureCM
	}
	var out []*Series
	for _, sex := range []growth.Sex{growth.SexMale, growth.SexFemale} {
		rows, ok := rowsBySex[sex]
		if !ok {
			continue
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
		series := &Series{Standard: std, Metric: metric, Sex: sex, Axis: axis, Rows: rows}
		if err := series.validate(); err != nil {
			return nil, err
		}
		out = append(out, series)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("table for %s/%s contains no usable rows", std, metric)
	}
	return out, nil
}

type columnIndex struct {
	sex, key, l, m, s int
}

func mapColumns(header []string, metric growth.Metric) (columnIndex, error) {
	idx := columnIndex{sex: -1, key: -1, l: -1, m: -1, s: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "sex":
			idx.sex = i
		case "agemos":
			if !metric.StatureIndexed() {
				idx.key = i
			}
		case "height", "length":
			if metric.StatureIndexed() {
				idx.key = i
			}
		case "l":
			idx.l = i
		case "m":
			idx.m = i
		case "s":
			idx.s = i
		}
	}
	if idx.sex < 0 || idx.key < 0 || idx.l < 0 || idx.m < 0 || idx.s < 0 {
		return idx, fmt.Errorf("table header %v missing required columns for %s", header, metric)
	}
	return idx, nil
}

func parseCell(rec []string, i int) (float64, bool) {
	if i < 0 || i >= len(rec) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
