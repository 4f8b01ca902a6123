package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"growthcalc/internal/growth"
	"growthcalc/internal/refdata"
	"growthcalc/internal/store/model"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteStore persists reference tables in a local sqlite file.
type SqliteStore struct {
	db *gorm.DB
}

func NewSqliteStore(path string) (*SqliteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}
	return newSqliteStore(db)
}

func NewSqliteStoreFromDB(db *gorm.DB) (*SqliteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db cannot be nil")
	}
	return newSqliteStore(db)
}

func newSqliteStore(db *gorm.DB) (*SqliteStore, error) {
	models := []interface{}{
		&model.SeriesModel{},
		&model.RowModel{},
		&model.CitationModel{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(2)
		sqlDB.SetMaxIdleConns(2)
	}
	return &SqliteStore{db: db}, nil
}

// Empty reports whether no series have been seeded yet.
func (s *SqliteStore) Empty() (bool, error) {
	var count int64
	if err := s.db.Model(&model.SeriesModel{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// Seed replaces all stored tables with the catalog's contents in one
// transaction.
func (s *SqliteStore) Seed(catalog *refdata.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("catalog cannot be nil")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&model.RowModel{}, &model.SeriesModel{}, &model.CitationModel{}} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}
		for _, series := range catalog.AllSeries() {
			rec := model.SeriesModel{
				Standard: string(series.Standard),
				Metric:   string(series.Metric),
				Sex:      int(series.Sex),
				Axis:     string(series.Axis),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			rows := make([]model.RowModel, 0, len(series.Rows))
			for _, r := range series.Rows {
				rows = append(rows, model.RowModel{
					SeriesID: rec.ID,
					Key:      r.Key,
					L:        r.L,
					M:        r.M,
					S:        r.S,
				})
			}
			if err := tx.CreateInBatches(rows, 200).Error; err != nil {
				return err
			}
		}
		for table, cit := range catalog.Citations() {
			payload, err := json.Marshal(cit)
			if err != nil {
				return err
			}
			rec := model.CitationModel{Table: table, Payload: datatypes.JSON(payload)}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadCatalog rebuilds the in-memory catalog from the stored tables.
func (s *SqliteStore) LoadCatalog() (*refdata.Catalog, error) {
	var records []model.SeriesModel
	if err := s.db.Preload("Rows", func(db *gorm.DB) *gorm.DB {
		return db.Order("row_key ASC")
	}).Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reference store holds no series; seed it first")
	}
	series := make([]*refdata.Series, 0, len(records))
	for _, rec := range records {
		rows := make([]refdata.Row, 0, len(rec.Rows))
		for _, r := range rec.Rows {
			rows = append(rows, refdata.Row{Key: r.Key, L: r.L, M: r.M, S: r.S})
		}
		series = append(series, &refdata.Series{
			Standard: growth.Standard(rec.Standard),
			Metric:   growth.Metric(rec.Metric),
			Sex:      growth.Sex(rec.Sex),
			Axis:     refdata.Axis(rec.Axis),
			Rows:     rows,
		})
	}
	catalog, err := refdata.NewCatalog(series)
	if err != nil {
		return nil, fmt.Errorf("stored tables failed validation: %w", err)
	}

	var citRecords []model.CitationModel
	if err := s.db.Find(&citRecords).Error; err != nil {
		return nil, err
	}
	cits := make(map[string]refdata.Citation, len(citRecords))
	for _, rec := range citRecords {
		var cit refdata.Citation
		if err := json.Unmarshal(rec.Payload, &cit); err != nil {
			return nil, fmt.Errorf("citation for %s is corrupt: %w", rec.Table, err)
		}
		cits[rec.Table] = cit
	}
	catalog.SetCitations(cits)
	return catalog, nil
}

func (s *SqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
