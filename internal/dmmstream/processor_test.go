package dmmstream

import (
	"context"
	"testing"

	"github.com/funkypenguin/zilean-go/internal/catalog"
	"github.com/funkypenguin/zilean-go/internal/config"
	"github.com/funkypenguin/zilean-go/internal/logger"
	"github.com/funkypenguin/zilean-go/internal/parser"
)

type fakePageStore struct {
	ingested map[string]int
	recorded map[string]int
}

func (f *fakePageStore) GetIngestedPages(context.Context) (map[string]int, error) {
	return f.ingested, nil
}

func (f *fakePageStore) AddPageToIngested(_ context.Context, page string, count int) error {
	if f.recorded == nil {
		f.recorded = map[string]int{}
	}
	f.recorded[page] = count
	return nil
}

type fakeCorrelator struct {
	match catalog.Match
	ok    bool
}

func (f *fakeCorrelator) Search(string, catalog.Category, int32) ([]catalog.Match, error) {
	if !f.ok {
		return nil, nil
	}
	return []catalog.Match{f.match}, nil
}

func newTestProcessor(t *testing.T, store PageStore, corr Correlator) *Processor {
	t.Helper()
	pipeline := parser.NewPipeline(parser.DefaultHandlers())
	return NewProcessor(t.TempDir(), store, corr, pipeline, 2, logger.New(config.LogConfig{Level: "error", Output: "stdout"}))
}

func TestAssignCategory(t *testing.T) {
	cases := []struct {
		name     string
		adult    bool
		seasons  []int
		episodes []int
		want     catalog.Category
	}{
		{"adult always xxx", true, nil, []int{1}, catalog.Category("xxx")},
		{"no season/episode is a movie", false, nil, nil, catalog.CategoryMovie},
		{"seasons present is a series", false, []int{1}, nil, catalog.CategoryTVSeries},
		{"episodes present is a series", false, nil, []int{1}, catalog.CategoryTVSeries},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := assignCategory(c.adult, c.seasons, c.episodes); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestProcessEntry_RejectsMissingFields(t *testing.T) {
	p := newTestProcessor(t, &fakePageStore{}, nil)

	if got := p.processEntry(rawTorrentEntry{Hash: "a", Bytes: 1}); got != nil {
		t.Errorf("expected nil for missing filename, got %+v", got)
	}
	if got := p.processEntry(rawTorrentEntry{Filename: "x.mkv", Bytes: 1}); got != nil {
		t.Errorf("expected nil for missing hash, got %+v", got)
	}
	if got := p.processEntry(rawTorrentEntry{Filename: "x.mkv", Hash: "a"}); got != nil {
		t.Errorf("expected nil for missing bytes, got %+v", got)
	}
}

func TestProcessEntry_AttachesCorrelatedImdbID(t *testing.T) {
	corr := &fakeCorrelator{ok: true, match: catalog.Match{ImdbID: "tt0903747", Score: 1.0}}
	p := newTestProcessor(t, &fakePageStore{}, corr)

	got := p.processEntry(rawTorrentEntry{Filename: "Breaking.Bad.S01E01.1080p.mkv", Hash: "abc", Bytes: 123})
	if got == nil {
		t.Fatalf("expected a non-nil result")
	}
	if got.ImdbID != "tt0903747" {
		t.Errorf("got imdb id %q, want tt0903747", got.ImdbID)
	}
	if got.Category != catalog.CategoryTVSeries {
		t.Errorf("got category %q, want tvSeries", got.Category)
	}
}

func TestStreamPages_EmptyRepoRootProcessesNothing(t *testing.T) {
	store := &fakePageStore{ingested: map[string]int{"index.html": 0}}
	p := newTestProcessor(t, store, nil)

	called := false
	if err := p.StreamPages(context.Background(), func(PageResult) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Errorf("expected no pages to be processed in an empty repo root")
	}
}
