package service

import (
	"context"
	"fmt"
	"time"

	"github.com/funkypenguin/zilean-go/internal/catalog"
	"github.com/funkypenguin/zilean-go/internal/dmmstream"
	"github.com/funkypenguin/zilean-go/internal/gitsync"
	"github.com/funkypenguin/zilean-go/internal/logger"
	"github.com/funkypenguin/zilean-go/internal/store"
	"github.com/go-co-op/gocron/v2"
)

// dmmSyncInterval and catalogRebuildCheck drive the background jobs
// IngestService schedules; the catalog carries its own 30-day freshness
// check on top of this, so a shorter scheduler tick just means "check".
const (
	dmmSyncInterval       = 1 * time.Hour
	catalogRebuildCheck   = 6 * time.Hour
)

// IngestService drives both background ingestion pipelines: the IMDb
// catalog rebuild and the DMM hashlist page stream.
type IngestService struct {
	ingestor  *catalog.Ingestor
	syncer    *gitsync.Syncer
	processor *dmmstream.Processor
	store     *store.Store
	log       *logger.Logger
	scheduler gocron.Scheduler
}

// NewIngestService wires the ingestion pipelines together. Call Start to
// begin the recurring background schedule.
func NewIngestService(ingestor *catalog.Ingestor, syncer *gitsync.Syncer, processor *dmmstream.Processor, st *store.Store, log *logger.Logger) *IngestService {
	return &IngestService{ingestor: ingestor, syncer: syncer, processor: processor, store: st, log: log}
}

// Start schedules the recurring catalog rebuild and DMM sync jobs.
func (s *IngestService) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("service: create scheduler: %w", err)
	}
	s.scheduler = sched

	if _, err := sched.NewJob(
		gocron.DurationJob(catalogRebuildCheck),
		gocron.NewTask(func() { s.runCatalogRebuild(ctx) }),
	); err != nil {
		return fmt.Errorf("service: schedule catalog rebuild: %w", err)
	}

	if _, err := sched.NewJob(
		gocron.DurationJob(dmmSyncInterval),
		gocron.NewTask(func() { s.runDmmSync(ctx) }),
	); err != nil {
		return fmt.Errorf("service: schedule dmm sync: %w", err)
	}

	sched.Start()
	return nil
}

// Stop halts the scheduler, waiting for any in-flight job to finish.
func (s *IngestService) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

// RebuildCatalog runs the IMDb catalog ingestion synchronously, honoring
// opts, and is also what the API's on-demand ingest endpoint calls.
func (s *IngestService) RebuildCatalog(ctx context.Context, opts catalog.RebuildOptions) (catalog.ImportStats, error) {
	return s.ingestor.Rebuild(ctx, opts)
}

// StreamDmmPages syncs the hashlist repo checkout and processes every
// page not yet ingested, invoking onPage for each.
func (s *IngestService) StreamDmmPages(ctx context.Context, onPage func(dmmstream.PageResult) error) error {
	if err := s.syncer.Sync(ctx); err != nil {
		return fmt.Errorf("service: sync dmm repo: %w", err)
	}
	return s.processor.StreamPages(ctx, onPage)
}

func (s *IngestService) runCatalogRebuild(ctx context.Context) {
	stats, err := s.ingestor.Rebuild(ctx, catalog.RebuildOptions{})
	if err != nil {
		s.log.Error("service: scheduled catalog rebuild failed", "error", err)
		return
	}
	s.log.Info("service: scheduled catalog rebuild complete", "rows", stats.RowCount)
}

func (s *IngestService) runDmmSync(ctx context.Context) {
	count := 0
	err := s.StreamDmmPages(ctx, func(dmmstream.PageResult) error {
		count++
		return nil
	})
	if err != nil {
		s.log.Error("service: scheduled dmm sync failed", "error", err)
		return
	}
	if err := s.store.SetDmmImport(ctx, time.Now().UTC()); err != nil {
		s.log.Error("service: record dmm import timestamp failed", "error", err)
	}
	s.log.Info("service: scheduled dmm sync complete", "pages", count)
}
