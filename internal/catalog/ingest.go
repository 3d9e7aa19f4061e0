package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/funkypenguin/zilean-go/internal/logger"
)

const (
	defaultTSVURL     = "https://datasets.imdbws.com/title.basics.tsv.gz"
	cacheFreshness    = 30 * 24 * time.Hour
	indexBatchSize    = 2000
	stagingBatchSize  = 5000
	downloadTimeout   = 5 * time.Minute
)

// RecordSink receives the rows kept during a rebuild so an external store
// can stage and merge them into durable storage alongside the on-disk
// index. Implemented by the store package; catalog only depends on the
// interface so it never imports a persistence driver directly.
type RecordSink interface {
	StageAndMerge(ctx context.Context, batch []Record) error
	FinalizeImport(ctx context.Context, stats ImportStats) error
}

// RebuildOptions controls whether Ingestor.Rebuild re-downloads the source
// TSV and/or rebuilds the index when the cached extract is still fresh.
type RebuildOptions struct {
	ForceDownload bool
	ForceReindex  bool
}

// Ingestor drives a catalog rebuild from the IMDb title.basics dataset.
type Ingestor struct {
	sourceURL string
	cacheDir  string
	index     *Index
	sink      RecordSink
	client    *http.Client
	log       *logger.Logger
}

// NewIngestor returns an Ingestor that rebuilds idx from sourceURL (empty
// uses the canonical IMDb dataset URL), caching the decompressed TSV under
// cacheDir and staging kept rows through sink.
func NewIngestor(idx *Index, sink RecordSink, cacheDir, sourceURL string, log *logger.Logger) *Ingestor {
	if sourceURL == "" {
		sourceURL = defaultTSVURL
	}
	return &Ingestor{
		sourceURL: sourceURL,
		cacheDir:  cacheDir,
		index:     idx,
		sink:      sink,
		client:    &http.Client{Timeout: downloadTimeout},
		log:       log,
	}
}

func (in *Ingestor) cachePath() string {
	return filepath.Join(in.cacheDir, "title.basics.tsv")
}

// Rebuild implements the §4.2 ingestion sequence: reuse a fresh cached
// extract unless forced, skip the rebuild entirely when the cache was
// reused and reindexing wasn't forced, otherwise stream the TSV into a
// fresh index and stage rows into the external store, then publish.
func (in *Ingestor) Rebuild(ctx context.Context, opts RebuildOptions) (ImportStats, error) {
	path := in.cachePath()
	reused, err := in.ensureCachedTSV(ctx, path, opts.ForceDownload)
	if err != nil {
		return ImportStats{}, fmt.Errorf("catalog: ensure cached tsv: %w", err)
	}

	if reused && !opts.ForceReindex {
		in.log.Info("catalog rebuild skipped, cache is fresh", "path", path)
		return ImportStats{ImportedAt: time.Now(), SourcePath: path}, nil
	}

	stats, err := in.rebuildFromTSV(ctx, path)
	if err != nil {
		return ImportStats{}, err
	}
	return stats, nil
}

// ensureCachedTSV returns (reused=true, nil) when an existing cache file
// younger than cacheFreshness can be used as-is.
func (in *Ingestor) ensureCachedTSV(ctx context.Context, path string, force bool) (bool, error) {
	if !force {
		if info, err := os.Stat(path); err == nil {
			if time.Since(info.ModTime()) < cacheFreshness {
				return true, nil
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create cache dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, in.sourceURL, nil)
	if err != nil {
		return false, fmt.Errorf("build download request: %w", err)
	}

	resp, err := in.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("download tsv: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("download tsv: unexpected status %d", resp.StatusCode)
	}

	gz, err := gzip.NewReader(resp.Body)
	if err != nil {
		return false, fmt.Errorf("open gzip stream: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tmp := path + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return false, fmt.Errorf("create temp cache file: %w", err)
	}

	if _, err := io.Copy(out, gz); err != nil {
		_ = out.Close()
		return false, fmt.Errorf("decompress tsv: %w", err)
	}
	if err := out.Close(); err != nil {
		return false, fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return false, fmt.Errorf("replace cache file: %w", err)
	}

	return false, nil
}

// title.basics.tsv column order.
const (
	colTconst = iota
	colTitleType
	colPrimaryTitle
	colOriginalTitle
	colIsAdult
	colStartYear
	colEndYear
	colRuntimeMinutes
	colGenres
)

func (in *Ingestor) rebuildFromTSV(ctx context.Context, path string) (ImportStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("open cached tsv: %w", err)
	}
	defer func() { _ = f.Close() }()

	fresh, err := in.index.NewBuildIndex()
	if err != nil {
		return ImportStats{}, fmt.Errorf("build fresh index: %w", err)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	batch := fresh.NewBatch()
	var staging []Record
	rowCount := 0
	lineNo := 0

	flushBatch := func() error {
		if batch.Size() == 0 {
			return nil
		}
		if err := fresh.Batch(batch); err != nil {
			return fmt.Errorf("commit index batch at line %d: %w", lineNo, err)
		}
		batch = fresh.NewBatch()
		return nil
	}

	flushStaging := func() error {
		if len(staging) == 0 {
			return nil
		}
		if err := in.sink.StageAndMerge(ctx, staging); err != nil {
			return fmt.Errorf("stage rows at line %d: %w", lineNo, err)
		}
		staging = staging[:0]
		return nil
	}

	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue // header
		}
		rec, ok := parseRow(scanner.Text())
		if !ok {
			continue
		}

		if err := batch.Index(rec.ImdbID, rec); err != nil {
			return ImportStats{}, fmt.Errorf("index doc at line %d: %w", lineNo, err)
		}
		staging = append(staging, rec)
		rowCount++

		if batch.Size() >= indexBatchSize {
			if err := flushBatch(); err != nil {
				return ImportStats{}, err
			}
		}
		if len(staging) >= stagingBatchSize {
			if err := flushStaging(); err != nil {
				return ImportStats{}, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return ImportStats{}, fmt.Errorf("scan tsv at line %d: %w", lineNo, err)
	}
	if err := flushBatch(); err != nil {
		return ImportStats{}, err
	}
	if err := flushStaging(); err != nil {
		return ImportStats{}, err
	}

	stats := ImportStats{ImportedAt: time.Now(), RowCount: rowCount, SourcePath: path}
	if err := in.sink.FinalizeImport(ctx, stats); err != nil {
		return ImportStats{}, fmt.Errorf("finalize import: %w", err)
	}

	if err := in.index.Publish(fresh); err != nil {
		return ImportStats{}, fmt.Errorf("publish index: %w", err)
	}
	in.log.Info("catalog rebuild complete", "rows", rowCount, "path", path)
	return stats, nil
}

// parseRow converts one title.basics.tsv line into a Record, or ok=false
// when the row's titleType isn't in the accepted category set or its
// fields are malformed.
func parseRow(line string) (Record, bool) {
	cols := strings.Split(line, "\t")
	if len(cols) <= colGenres {
		return Record{}, false
	}

	category, ok := acceptedCategories[cols[colTitleType]]
	if !ok {
		return Record{}, false
	}

	title := cols[colPrimaryTitle]
	if title == "" || title == `\N` {
		return Record{}, false
	}

	var year int32
	if y, err := strconv.Atoi(cols[colStartYear]); err == nil {
		year = int32(y)
	}

	return Record{
		ImdbID:          cols[colTconst],
		Title:           title,
		NormalizedTitle: Normalize(title),
		Category:        category,
		Year:            year,
		Adult:           cols[colIsAdult] == "1",
	}, true
}

