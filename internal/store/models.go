// Package store persists catalog records, DMM ingestion progress, and
// cached parse results using GORM over the configured relational database.
package store

import "time"

// ImportMetadata is a generic key/value table used to record the last
// completed catalog or DMM import, mirroring ImportMetadata in the
// original Postgres schema.
type ImportMetadata struct {
	Key   string `gorm:"primaryKey;column:Key"`
	Value string `gorm:"column:Value"` // JSON-encoded payload
}

// TableName pins the GORM-managed name to the schema's PascalCase table.
func (ImportMetadata) TableName() string { return "ImportMetadata" }

// ImdbFile is one catalog row persisted alongside the on-disk bleve
// index, merged upsert-style from the staging table during a rebuild.
type ImdbFile struct {
	ImdbID          string `gorm:"primaryKey;column:ImdbId"`
	Title           string `gorm:"column:Title"`
	NormalizedTitle string `gorm:"column:NormalizedTitle;index"`
	Category        string `gorm:"column:Category;index"`
	Year            int32  `gorm:"column:Year;index"`
	Adult           bool   `gorm:"column:Adult"`
}

// TableName pins the GORM-managed name.
func (ImdbFile) TableName() string { return "ImdbFiles" }

// ImdbFileStaging is the transient table a rebuild streams rows into
// before the upsert-merge into ImdbFile, so a crash mid-rebuild never
// corrupts the previously published catalog table.
type ImdbFileStaging struct {
	ImdbID          string `gorm:"primaryKey;column:ImdbId"`
	Title           string `gorm:"column:Title"`
	NormalizedTitle string `gorm:"column:NormalizedTitle"`
	Category        string `gorm:"column:Category"`
	Year            int32  `gorm:"column:Year"`
	Adult           bool   `gorm:"column:Adult"`
}

// TableName pins the GORM-managed name.
func (ImdbFileStaging) TableName() string { return "ImdbFilesStaging" }

// ParsedPage records one DMM hashlist HTML page already ingested, keyed
// by filename so a restart never reprocesses it.
type ParsedPage struct {
	Page       string `gorm:"primaryKey;column:Page"`
	EntryCount int32  `gorm:"column:EntryCount"`
}

// TableName pins the GORM-managed name.
func (ParsedPage) TableName() string { return "ParsedPages" }

// ParseCacheEntry memoizes a completed title parse, keyed by the raw
// input string, avoiding re-running the handler pipeline for titles
// already seen by ParseService (the torrent-parse API). The DMM page
// stream parses directly and does not use it. Supplements the original
// schema, which has no equivalent table.
type ParseCacheEntry struct {
	RawTitle   string    `gorm:"primaryKey;column:RawTitle;index:idx_parse_cache_raw_title"`
	ResultJSON string    `gorm:"column:ResultJson"`
	CreatedAt  time.Time `gorm:"column:CreatedAt"`
}

// TableName pins the GORM-managed name.
func (ParseCacheEntry) TableName() string { return "ParseCache" }
