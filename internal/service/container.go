// Package service wires the parser, catalog, DMM page stream, and their
// persistence together into the dependency container the API layer runs
// against, the way the container pattern wires Radarr's domain services.
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/funkypenguin/zilean-go/internal/catalog"
	"github.com/funkypenguin/zilean-go/internal/config"
	"github.com/funkypenguin/zilean-go/internal/database"
	"github.com/funkypenguin/zilean-go/internal/dmmstream"
	"github.com/funkypenguin/zilean-go/internal/gitsync"
	"github.com/funkypenguin/zilean-go/internal/logger"
	"github.com/funkypenguin/zilean-go/internal/parser"
	"github.com/funkypenguin/zilean-go/internal/store"
)

// Container holds every service the API layer depends on, initialized
// once at startup and shared across requests.
type Container struct {
	DB     *database.Database
	Config *config.Config
	Logger *logger.Logger

	Store      *store.Store
	Index      *catalog.Index
	Ingestor   *catalog.Ingestor
	Correlator *catalog.Correlator
	Pipeline   *parser.Pipeline
	GitSyncer  *gitsync.Syncer
	Processor  *dmmstream.Processor

	ParseService  *ParseService
	SearchService *SearchService
	IngestService *IngestService
}

// NewContainer builds the full service graph for cfg against db.
func NewContainer(db *database.Database, cfg *config.Config, log *logger.Logger) (*Container, error) {
	st, err := store.New(db.GORM)
	if err != nil {
		return nil, fmt.Errorf("service: init store: %w", err)
	}

	idx, err := catalog.NewIndex(filepath.Join(cfg.Storage.CacheDir, "bleve"))
	if err != nil {
		return nil, fmt.Errorf("service: init catalog index: %w", err)
	}

	ingestor := catalog.NewIngestor(idx, st, cfg.Storage.CacheDir, cfg.Imdb.DatasetURL, log)
	correlator := catalog.NewCorrelator(idx, cfg.Imdb.MinimumScore)
	pipeline := parser.NewPipeline(parser.DefaultHandlers())
	syncer := gitsync.New(cfg.Dmm.RepoURL, cfg.Dmm.LocalPath, cfg.Dmm.GithubUsername, cfg.Dmm.GithubToken, log)
	processor := dmmstream.NewProcessor(cfg.Dmm.LocalPath, st, correlator, pipeline, cfg.Parsing.Threads, log)

	c := &Container{
		DB:         db,
		Config:     cfg,
		Logger:     log,
		Store:      st,
		Index:      idx,
		Ingestor:   ingestor,
		Correlator: correlator,
		Pipeline:   pipeline,
		GitSyncer:  syncer,
		Processor:  processor,
	}

	c.ParseService = NewParseService(pipeline, st, cfg.Parsing.Threads)
	c.SearchService = NewSearchService(correlator)
	c.IngestService = NewIngestService(ingestor, syncer, processor, st, log)

	return c, nil
}

// BootstrapCatalog ensures the IMDb catalog has at least one published
// generation before the server starts accepting search traffic, matching
// the "rebuild on a schedule, serve immediately" contract.
func (c *Container) BootstrapCatalog(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, catalogRebuildTimeout)
	defer cancel()

	_, err := c.Ingestor.Rebuild(ctx, catalog.RebuildOptions{
		ForceDownload: c.Config.Imdb.ForceDownload,
		ForceReindex:  c.Config.Imdb.ForceReindex,
	})
	return err
}

// catalogRebuildTimeout bounds the startup catalog bootstrap; scheduled
// rebuilds run without this timeout.
const catalogRebuildTimeout = 30 * time.Minute
