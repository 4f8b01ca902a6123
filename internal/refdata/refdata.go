package refdata

import (
	"fmt"
	"math"
	"sort"

	"growthcalc/internal/growth"
)

// Axis names what the series rows are keyed by.
type Axis string

const (
	AxisAgeMonths Axis = "age_months"
	AxisStatureCM Axis = "stature_cm"
)

// Row is one tabulated LMS entry. Key is age in months for age-indexed
// series and stature in cm for weight-for-stature.
type Row struct {
	Key float64
	L   float64
	M   float64
	S   float64
}

// Series holds the ordered reference rows for one (standard, metric, sex).
// Rows are sorted by Key ascending; the interpolator relies on that ordering.
// A Series is immutable after construction.
type Series struct {
	Standard growth.Standard
	Metric   growth.Metric
	Sex      growth.Sex
	Axis     Axis
	Rows     []Row
}

// Span returns the covered key range.
func (s *Series) Span() (min, max float64) {
	if len(s.Rows) == 0 {
		return 0, 0
	}
	return s.Rows[0].Key, s.Rows[len(s.Rows)-1].Key
}

func (s *Series) validate() error {
	if len(s.Rows) < 2 {
		return fmt.Errorf("series %s/%s/%s has %d rows, need at least 2",
			s.Standard, s.Metric, s.Sex, len(s.Rows))
	}
	prev := math.Inf(-1)
	for i, r := range s.Rows {
		if !isFinite(r.Key) || !isFinite(r.L) || !isFinite(r.M) || !isFinite(r.S) {
			return fmt.Errorf("series %s/%s/%s row %d has non-finite parameters",
				s.Standard, s.Metric, s.Sex, i)
		}
		if r.M <= 0 || r.S <= 0 {
			return fmt.Errorf("series %s/%s/%s row %d: M and S must be positive",
				s.Standard, s.Metric, s.Sex, i)
		}
		if r.Key <= prev {
			return fmt.Errorf("series %s/%s/%s row %d breaks ascending key order",
				s.Standard, s.Metric, s.Sex, i)
		}
		prev = r.Key
	}
	return nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Provider is the lookup surface the interpolator and selector consume.
// Implementations must be safe for concurrent readers; all data is read-only
// for the lifetime of the process.
type Provider interface {
	// Series returns the reference series for the coordinate, or false when
	// the standard does not publish that metric/sex combination.
	Series(std growth.Standard, metric growth.Metric, sex growth.Sex) (*Series, bool)

	// Covers reports whether the standard publishes the metric at the given
	// age. Stature-indexed series count as covered at any age; their span is
	// checked against the companion stature at resolve time.
	Covers(std growth.Standard, metric growth.Metric, ageMonths float64) bool
}

type seriesKey struct {
	std    growth.Standard
	metric growth.Metric
	sex    growth.Sex
}

// Catalog is the in-memory Provider built from parsed tables.
type Catalog struct {
	series    map[seriesKey]*Series
	citations map[string]Citation
}

// NewCatalog validates and indexes the given series. Duplicate coordinates
// are rejected.
func NewCatalog(series []*Series) (*Catalog, error) {
	c := &Catalog{series: make(map[seriesKey]*Series, len(series))}
	for _, s := range series {
		if err := s.validate(); err != nil {
			return nil, err
		}
		key := seriesKey{s.Standard, s.Metric, s.Sex}
		if _, dup := c.series[key]; dup {
			return nil, fmt.Errorf("duplicate series %s/%s/%s", s.Standard, s.Metric, s.Sex)
		}
		c.series[key] = s
	}
	return c, nil
}

func (c *Catalog) Series(std growth.Standard, metric growth.Metric, sex growth.Sex) (*Series, bool) {
	s, ok := c.series[seriesKey{std, metric, sex}]
	return s, ok
}

func (c *Catalog) Covers(std growth.Standard, metric growth.Metric, ageMonths float64) bool {
	for _, sex := range []growth.Sex{growth.SexMale, growth.SexFemale} {
		s, ok := c.series[seriesKey{std, metric, sex}]
		if !ok {
			continue
		}
		if s.Axis == AxisStatureCM {
			return true
		}
		min, max := s.Span()
		if ageMonths >= min && ageMonths <= max {
			return true
		}
	}
	return false
}

// AllSeries returns every series in a stable order, for seeding stores.
func (c *Catalog) AllSeries() []*Series {
	out := make([]*Series, 0, len(c.series))
	for _, s := range c.series {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Standard != b.Standard {
			return a.Standard < b.Standard
		}
		if a.Metric != b.Metric {
			return a.Metric < b.Metric
		}
		return a.Sex < b.Sex
	})
	return out
}

// Citation returns the source citation recorded for a table, if any.
func (c *Catalog) Citation(table string) (Citation, bool) {
	cit, ok := c.citations[table]
	return cit, ok
}

// Citations returns every recorded table citation, keyed by table file.
func (c *Catalog) Citations() map[string]Citation {
	out := make(map[string]Citation, len(c.citations))
	for k, v := range c.citations {
		out[k] = v
	}
	return out
}

// SetCitations attaches citation metadata, replacing any previous set.
// Intended for stores that rebuild a catalog from persisted form.
func (c *Catalog) SetCitations(cits map[string]Citation) {
	c.citations = make(map[string]Citation, len(cits))
	for k, v := range cits {
		c.citations[k] = v
	}
}
