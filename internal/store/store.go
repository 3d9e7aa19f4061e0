package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/funkypenguin/zilean-go/internal/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

const dmmLastImportKey = "DmmLastImport"

// dmmLastImport mirrors the original DmmLastImport payload persisted as
// the ImportMetadata row's JSON value.
type dmmLastImport struct {
	OccurredAt time.Time `json:"occured_at"`
}

// Store is the GORM-backed persistence layer. It implements
// catalog.RecordSink for the IMDb catalog rebuild path and exposes the
// DMM-facing methods the page stream needs to track ingestion progress.
type Store struct {
	db *gorm.DB
}

// New wraps a GORM handle and ensures the managed tables exist.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(
		&ImportMetadata{},
		&ImdbFile{},
		&ImdbFileStaging{},
		&ParsedPage{},
		&ParseCacheEntry{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// StageAndMerge implements catalog.RecordSink. It truncates nothing; it
// appends the batch to the staging table so a rebuild can be resumed or
// observed mid-flight without disturbing the previously published rows.
func (s *Store) StageAndMerge(ctx context.Context, batch []catalog.Record) error {
	if len(batch) == 0 {
		return nil
	}

	rows := make([]ImdbFileStaging, 0, len(batch))
	for _, r := range batch {
		rows = append(rows, ImdbFileStaging{
			ImdbID:          r.ImdbID,
			Title:           r.Title,
			NormalizedTitle: r.NormalizedTitle,
			Category:        string(r.Category),
			Year:            r.Year,
			Adult:           r.Adult,
		})
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ImdbId"}},
		DoUpdates: clause.AssignmentColumns([]string{"Title", "NormalizedTitle", "Category", "Year", "Adult"}),
	}).CreateInBatches(&rows, stagingBatchSize).Error
}

// FinalizeImport upserts staged rows into the published catalog table
// and records the import's completion, all inside one transaction.
func (s *Store) FinalizeImport(ctx context.Context, stats catalog.ImportStats) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			INSERT INTO "ImdbFiles" ("ImdbId","Title","NormalizedTitle","Category","Year","Adult")
			SELECT "ImdbId","Title","NormalizedTitle","Category","Year","Adult" FROM "ImdbFilesStaging"
			ON CONFLICT ("ImdbId") DO UPDATE SET
				"Title" = EXCLUDED."Title",
				"NormalizedTitle" = EXCLUDED."NormalizedTitle",
				"Category" = EXCLUDED."Category",
				"Year" = EXCLUDED."Year",
				"Adult" = EXCLUDED."Adult"
		`).Error; err != nil {
			return fmt.Errorf("merge staging into catalog: %w", err)
		}

		if err := tx.Exec(`DELETE FROM "ImdbFilesStaging"`).Error; err != nil {
			return fmt.Errorf("clear staging table: %w", err)
		}

		payload, err := json.Marshal(struct {
			ImportedAt time.Time `json:"imported_at"`
			RowCount   int       `json:"row_count"`
			SourcePath string    `json:"source_path"`
		}{stats.ImportedAt, stats.RowCount, stats.SourcePath})
		if err != nil {
			return fmt.Errorf("marshal import stats: %w", err)
		}

		return upsertMetadata(tx, "ImdbLastImport", string(payload))
	})
}

// GetDmmLastImport returns the timestamp of the last completed DMM
// hashlist import, or the zero time if none has run yet.
func (s *Store) GetDmmLastImport(ctx context.Context) (time.Time, error) {
	var row ImportMetadata
	err := s.db.WithContext(ctx).Where(`"Key" = ?`, dmmLastImportKey).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load dmm last import: %w", err)
	}

	var v dmmLastImport
	if err := json.Unmarshal([]byte(row.Value), &v); err != nil {
		return time.Time{}, fmt.Errorf("decode dmm last import: %w", err)
	}
	return v.OccurredAt, nil
}

// SetDmmImport records the completion time of a DMM hashlist import run.
func (s *Store) SetDmmImport(ctx context.Context, occurredAt time.Time) error {
	payload, err := json.Marshal(dmmLastImport{OccurredAt: occurredAt})
	if err != nil {
		return fmt.Errorf("marshal dmm last import: %w", err)
	}
	return upsertMetadata(s.db.WithContext(ctx), dmmLastImportKey, string(payload))
}

// AddPageToIngested records a single HTML page as fully processed.
func (s *Store) AddPageToIngested(ctx context.Context, page string, entryCount int) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "Page"}},
		DoUpdates: clause.AssignmentColumns([]string{"EntryCount"}),
	}).Create(&ParsedPage{Page: page, EntryCount: int32(entryCount)}).Error
}

// AddPagesToIngested records a batch of processed pages in one statement.
func (s *Store) AddPagesToIngested(ctx context.Context, pages map[string]int) error {
	if len(pages) == 0 {
		return nil
	}
	rows := make([]ParsedPage, 0, len(pages))
	for page, count := range pages {
		rows = append(rows, ParsedPage{Page: page, EntryCount: int32(count)})
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "Page"}},
		DoUpdates: clause.AssignmentColumns([]string{"EntryCount"}),
	}).CreateInBatches(&rows, stagingBatchSize).Error
}

// GetIngestedPages returns the set of HTML page filenames already
// processed, so the page stream can skip them on the next run.
func (s *Store) GetIngestedPages(ctx context.Context) (map[string]int, error) {
	var rows []ParsedPage
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load ingested pages: %w", err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Page] = int(r.EntryCount)
	}
	return out, nil
}

// LookupParseCache returns a previously cached parse result for a raw
// title, if one exists. Every ParseService.Parse call hits this query,
// so it's pinned to the raw-title index rather than left to the planner.
func (s *Store) LookupParseCache(ctx context.Context, rawTitle string) (string, bool, error) {
	var row ParseCacheEntry
	err := s.db.WithContext(ctx).
		Clauses(hints.UseIndex("idx_parse_cache_raw_title")).
		Where("\"RawTitle\" = ?", rawTitle).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup parse cache: %w", err)
	}
	return row.ResultJSON, true, nil
}

// StoreParseCache memoizes a parse result keyed by the raw input title.
func (s *Store) StoreParseCache(ctx context.Context, rawTitle, resultJSON string, at time.Time) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "RawTitle"}},
		DoUpdates: clause.AssignmentColumns([]string{"ResultJson", "CreatedAt"}),
	}).Create(&ParseCacheEntry{RawTitle: rawTitle, ResultJSON: resultJSON, CreatedAt: at}).Error
}

func upsertMetadata(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "Key"}},
		DoUpdates: clause.AssignmentColumns([]string{"Value"}),
	}).Create(&ImportMetadata{Key: key, Value: value}).Error
}

const stagingBatchSize = 1000
