package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Index is a read-mostly full-text index over IMDb Records, persisted as
// an on-disk bleve (BoltDB-backed) index directory. The live bleve.Index
// is held behind an atomic pointer: a rebuild indexes into a sibling
// staging directory, then Publish closes both generations and renames
// the staging directory over the live one -- an atomic swap on the same
// filesystem -- before reopening it, so in-flight queries against the
// old generation are never disturbed and never see a half-built index.
type Index struct {
	path string
	mu   sync.Mutex // serializes concurrent Publish calls
	live atomic.Pointer[bleve.Index]
}

// NewIndex opens the on-disk index at path, creating an empty one if it
// doesn't yet exist, matching the "index with no documents returns empty
// results" contract on first run.
func NewIndex(path string) (*Index, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("catalog: create index parent dir: %w", err)
	}

	bi, err := openOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open index: %w", err)
	}

	idx := &Index{path: path}
	idx.live.Store(&bi)
	return idx, nil
}

func openOrCreate(path string) (bleve.Index, error) {
	bi, err := bleve.Open(path)
	if err == nil {
		return bi, nil
	}
	if err != bleve.ErrorIndexPathDoesNotExist {
		return nil, err
	}
	return bleve.New(path, buildMapping())
}

func buildMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = "standard"

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = "keyword"

	numericField := bleve.NewNumericFieldMapping()

	boolField := bleve.NewBooleanFieldMapping()

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("imdb_id", keywordField)
	doc.AddFieldMappingsAt("category", keywordField)
	doc.AddFieldMappingsAt("year", numericField)
	doc.AddFieldMappingsAt("title", textField)
	doc.AddFieldMappingsAt("normalized_title", textField)
	doc.AddFieldMappingsAt("adult", boolField)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

func (idx *Index) stagingPath() string {
	return idx.path + ".rebuild"
}

// NewBuildIndex creates a fresh, empty index in a staging directory
// beside the live one, ready for a rebuild to populate off to the side.
// Publish later swaps it into place.
func (idx *Index) NewBuildIndex() (bleve.Index, error) {
	staging := idx.stagingPath()
	if err := os.RemoveAll(staging); err != nil {
		return nil, fmt.Errorf("catalog: clear staging index dir: %w", err)
	}
	return bleve.New(staging, buildMapping())
}

// current returns the currently published generation.
func (idx *Index) current() bleve.Index {
	p := idx.live.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Publish closes next (built via NewBuildIndex and already populated)
// and the currently live generation, atomically renames next's staging
// directory over the live index directory, and reopens it as the new
// live generation.
func (idx *Index) Publish(next bleve.Index) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if err := next.Close(); err != nil {
		return fmt.Errorf("catalog: close staged index: %w", err)
	}

	if prev := idx.live.Load(); prev != nil {
		if err := (*prev).Close(); err != nil {
			return fmt.Errorf("catalog: close previous index: %w", err)
		}
	}

	if err := os.RemoveAll(idx.path); err != nil {
		return fmt.Errorf("catalog: remove previous index dir: %w", err)
	}
	if err := os.Rename(idx.stagingPath(), idx.path); err != nil {
		return fmt.Errorf("catalog: swap index dir: %w", err)
	}

	reopened, err := bleve.Open(idx.path)
	if err != nil {
		return fmt.Errorf("catalog: reopen published index: %w", err)
	}
	idx.live.Store(&reopened)
	return nil
}

// DocCount reports the live generation's document count.
func (idx *Index) DocCount() (uint64, error) {
	cur := idx.current()
	if cur == nil {
		return 0, nil
	}
	return cur.DocCount()
}
