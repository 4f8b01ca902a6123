package refdata

import (
	"fmt"
	"io/fs"

	"growthcalc/internal/growth"

	"gopkg.in/yaml.v3"
)

// Citation records where a reference table came from.
type Citation struct {
	Title   string `yaml:"title" json:"title"`
	Authors string `yaml:"authors" json:"authors"`
	Year    int    `yaml:"year" json:"year"`
	URL     string `yaml:"url" json:"url"`
}

// Manifest describes the bundled reference tables. Coverage is data-driven:
// the covered span comes from the rows themselves, never from hardcoded
// boundary months.
type Manifest struct {
	Tables []ManifestTable `yaml:"tables"`
}

// ManifestTable binds one CSV file to its standard, metric and citation.
type ManifestTable struct {
	File     string   `yaml:"file"`
	Standard string   `yaml:"standard"`
	Metric   string   `yaml:"metric"`
	Citation Citation `yaml:"citation"`
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing table manifest: %w", err)
	}
	if len(m.Tables) == 0 {
		return nil, fmt.Errorf("table manifest lists no tables")
	}
	return &m, nil
}

// LoadFS builds a catalog from a manifest and the filesystem holding its
// tables. Paths in the manifest are relative to the FS root.
func LoadFS(fsys fs.FS, manifestPath string) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading table manifest: %w", err)
	}
	m, err := ParseManifest(raw)
	if err != nil {
		return nil, err
	}

	var all []*Series
	citations := make(map[string]Citation, len(m.Tables))
	for _, t := range m.Tables {
		std, err := growth.ParseStandard(t.Standard)
		if err != nil || std == growth.StandardAuto {
			return nil, fmt.Errorf("table %s: standard must be CDC or WHO, got %q", t.File, t.Standard)
		}
		metric, err := growth.ParseMetric(t.Metric)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.File, err)
		}
		f, err := fsys.Open(t.File)
		if err != nil {
			return nil, fmt.Errorf("opening table %s: %w", t.File, err)
		}
		series, err := ParseCSV(f, std, metric)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.File, err)
		}
		all = append(all, series...)
		citations[t.File] = t.Citation
	}

	catalog, err := NewCatalog(all)
	if err != nil {
		return nil, err
	}
	catalog.citations = citations
	return catalog, nil
}
