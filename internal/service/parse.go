package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/funkypenguin/zilean-go/internal/parser"
	"github.com/funkypenguin/zilean-go/internal/store"
)

// ParseService exposes the title parser to callers, memoizing Parse
// results in the ParseCache table so a repeated raw title skips the
// handler pipeline entirely. ParseBatch does not consult the cache.
type ParseService struct {
	pipeline *parser.Pipeline
	store    *store.Store
	workers  int
}

// NewParseService returns a ParseService running pipeline with the given
// ParseBatch worker count.
func NewParseService(pipeline *parser.Pipeline, st *store.Store, workers int) *ParseService {
	return &ParseService{pipeline: pipeline, store: st, workers: workers}
}

// Parse parses a single raw title, reusing a cached result when present.
func (s *ParseService) Parse(ctx context.Context, raw string) (*parser.ParsedTitle, error) {
	if cached, ok, err := s.store.LookupParseCache(ctx, raw); err == nil && ok {
		var title parser.ParsedTitle
		if err := json.Unmarshal([]byte(cached), &title); err == nil {
			return &title, nil
		}
	}

	result, err := s.pipeline.Parse(raw)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		_ = s.store.StoreParseCache(ctx, raw, string(payload), time.Now().UTC())
	}

	return result, nil
}

// ParseBatch parses many raw titles concurrently, preserving input order.
func (s *ParseService) ParseBatch(titles []string) []parser.ParseResult {
	return s.pipeline.ParseBatch(titles, s.workers)
}
