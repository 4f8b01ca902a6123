package refdata

import "embed"

// Bundled CDC 2000 / WHO 2006 LMS tables plus their manifest. The CSVs keep
// the column layout of the CDC percentile data files.
//
//go:embed data
var embedded embed.FS

const embeddedManifest = "data/manifest.yaml"

// LoadEmbedded builds the catalog from the tables compiled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return LoadFS(embedded, embeddedManifest)
}
