package store

import "growthcalc/internal/refdata"

// SeriesStore persists reference tables. The engine never reads a store per
// call: the app seeds/loads once at startup and serves from the in-memory
// catalog, keeping lookups lock-free and read-only.
type SeriesStore interface {
	// Empty reports whether the store holds no series yet.
	Empty() (bool, error)

	// Seed replaces the stored tables with the catalog's contents.
	Seed(catalog *refdata.Catalog) error

	// LoadCatalog rebuilds an in-memory catalog from the stored tables.
	LoadCatalog() (*refdata.Catalog, error)

	Close() error
}
