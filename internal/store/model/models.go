package model

import "gorm.io/datatypes"

// SeriesModel is one persisted reference series coordinate.
type SeriesModel struct {
	ID       uint   `gorm:"primaryKey"`
	Standard string `gorm:"size:8;uniqueIndex:idx_series_coord,priority:1"`
	Metric   string `gorm:"size:32;uniqueIndex:idx_series_coord,priority:2"`
	Sex      int    `gorm:"uniqueIndex:idx_series_coord,priority:3"`
	Axis     string `gorm:"size:16"`

	Rows []RowModel `gorm:"foreignKey:SeriesID;constraint:OnDelete:CASCADE"`
}

func (SeriesModel) TableName() string { return "ref_series" }

// RowModel is one tabulated LMS row of a series.
type RowModel struct {
	ID       uint    `gorm:"primaryKey"`
	SeriesID uint    `gorm:"index"`
	Key      float64 `gorm:"column:row_key"`
	L        float64
	M        float64
	S        float64
}

func (RowModel) TableName() string { return "ref_rows" }

// CitationModel records where a bundled table came from. Payload is the
// citation document as JSON.
type CitationModel struct {
	ID      uint           `gorm:"primaryKey"`
	Table   string         `gorm:"column:table_file;size:128;uniqueIndex"`
	Payload datatypes.JSON `gorm:"column:payload"`
}

func (CitationModel) TableName() string { return "ref_citations" }
