// Package dmmstream streams DebridMediaManager hashlist pages, decodes
// their embedded torrent payload, parses each release title, and
// correlates the result against the IMDb catalog.
package dmmstream

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/funkypenguin/zilean-go/internal/catalog"
	"github.com/funkypenguin/zilean-go/internal/logger"
	"github.com/funkypenguin/zilean-go/internal/parser"
)

// PageStore tracks which hashlist pages have already been ingested,
// mirroring the subset of the DMM persistence trait the page stream needs.
type PageStore interface {
	GetIngestedPages(ctx context.Context) (map[string]int, error)
	AddPageToIngested(ctx context.Context, page string, entryCount int) error
}

// Correlator is the subset of catalog.Correlator the processor depends on.
type Correlator interface {
	Search(queryTitle string, category catalog.Category, year int32) ([]catalog.Match, error)
}

// PageResult pairs one processed hashlist page with the torrents it
// contributed.
type PageResult struct {
	Filename string
	Torrents []*TorrentInfo
}

// Processor walks a DMM hashlist repository checkout, decoding and
// correlating every page not already recorded in the PageStore.
type Processor struct {
	repoRoot   string
	store      PageStore
	correlator Correlator
	pipeline   *parser.Pipeline
	workers    int
	log        *logger.Logger
}

// NewProcessor returns a Processor reading HTML pages from repoRoot.
func NewProcessor(repoRoot string, store PageStore, correlator Correlator, pipeline *parser.Pipeline, workers int, log *logger.Logger) *Processor {
	if workers <= 0 {
		workers = 4
	}
	return &Processor{repoRoot: repoRoot, store: store, correlator: correlator, pipeline: pipeline, workers: workers, log: log}
}

// StreamPages processes every not-yet-ingested HTML page under the repo
// root and invokes onPage for each with its extracted torrents, in
// filename order. A page contributing zero torrents is still recorded as
// ingested so it is never retried.
func (p *Processor) StreamPages(ctx context.Context, onPage func(PageResult) error) error {
	filenames, err := p.listPages()
	if err != nil {
		return fmt.Errorf("dmmstream: list pages: %w", err)
	}

	ingested, err := p.store.GetIngestedPages(ctx)
	if err != nil {
		return fmt.Errorf("dmmstream: load ingested pages: %w", err)
	}

	for _, path := range filenames {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		name := filepath.Base(path)
		if _, done := ingested[name]; done {
			continue
		}

		torrents, err := p.processPage(path)
		if err != nil {
			p.log.Warn("dmmstream: failed to process page", "file", name, "error", err)
			continue
		}

		if err := onPage(PageResult{Filename: name, Torrents: torrents}); err != nil {
			return fmt.Errorf("dmmstream: handle page %s: %w", name, err)
		}

		if err := p.store.AddPageToIngested(ctx, name, len(torrents)); err != nil {
			return fmt.Errorf("dmmstream: record ingested page %s: %w", name, err)
		}
	}

	return nil
}

// listPages returns every .html file directly under the repo root,
// excluding index.html, in a deterministic order.
func (p *Processor) listPages() ([]string, error) {
	entries, err := os.ReadDir(p.repoRoot)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var pages []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == "index.html" || filepath.Ext(name) != ".html" {
			continue
		}
		pages = append(pages, filepath.Join(p.repoRoot, name))
	}
	return pages, nil
}

// processPage reads one HTML page, decodes its hashlist payload, and
// parses and correlates each torrent entry concurrently.
func (p *Processor) processPage(path string) ([]*TorrentInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	entries, found, err := extractTorrentEntries(string(raw))
	if err != nil {
		return nil, err
	}
	if !found || len(entries) == 0 {
		return nil, nil
	}

	results := make([]*TorrentInfo, len(entries))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.workers)

	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry rawTorrentEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = p.processEntry(entry)
		}(i, entry)
	}
	wg.Wait()

	out := make([]*TorrentInfo, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// processEntry validates one raw hashlist entry, parses its filename,
// maps it to a TorrentInfo, and attaches the best IMDb correlation. It
// returns nil when the entry is missing a required field or fails to parse.
func (p *Processor) processEntry(entry rawTorrentEntry) *TorrentInfo {
	if entry.Filename == "" {
		p.log.Warn("dmmstream: skipping entry, missing filename")
		return nil
	}
	if entry.Hash == "" {
		p.log.Warn("dmmstream: skipping entry, missing hash", "filename", entry.Filename)
		return nil
	}
	if entry.Bytes <= 0 {
		p.log.Warn("dmmstream: skipping entry, missing bytes", "filename", entry.Filename)
		return nil
	}

	parsed, err := p.pipeline.Parse(entry.Filename)
	if err != nil || parsed == nil {
		p.log.Warn("dmmstream: skipping entry, failed to parse title", "filename", entry.Filename, "error", err)
		return nil
	}

	info := mapTorrentInfo(entry.Hash, entry.Filename, entry.Bytes, parsed)

	if p.correlator != nil {
		year := int32(info.Year)
		matches, err := p.correlator.Search(info.NormalizedTitle, info.Category, year)
		if err == nil && len(matches) > 0 {
			info.ImdbID = matches[0].ImdbID
		}
	}

	return info
}
