// Package workflow composes the catalog collector, the scrape collector
// and the persistence layer into the collection runs: backfill, daily and
// recent. Each run is a fixed linear sequence with no internal concurrency.
package workflow

import (
	"context"

	"go.uber.org/zap"

	"ytstats/internal/collector"
	"ytstats/internal/db/models"
	"ytstats/internal/db/repository"
	"ytstats/internal/metrics"
)

// CatalogCollector is the quota-aware API surface the workflows drive.
// Implemented by *collector.Collector.
type CatalogCollector interface {
	ChannelStats(ctx context.Context, channelID string) (*models.ChannelSnapshot, error)
	ChannelMetadata(ctx context.Context, channelID string) (*models.ChannelMetadata, error)
	ListAllVideoIDs(ctx context.Context, channelID string) ([]string, error)
	FetchVideoStats(ctx context.Context, videoIDs []string) ([]*models.VideoSnapshot, error)
	FetchVideoMetadata(ctx context.Context, videoIDs []string) ([]*models.VideoMetadata, error)
	Quota() *collector.QuotaTracker
}

// LiveScraper fetches best-effort live counters for a single video.
// Implemented by *scraper.Scraper.
type LiveScraper interface {
	LiveStats(ctx context.Context, videoID string) (*models.ScrapedSnapshot, error)
}

// Config carries the run parameters the workflows need.
type Config struct {
	ChannelID  string
	RecentDays int
	ScrapeCap  int
}

// Runner owns one collection run's collaborators.
type Runner struct {
	collector CatalogCollector
	channels  repository.ChannelRepository
	videos    repository.VideoMetadataRepository
	snapshots repository.VideoSnapshotRepository
	scraped   repository.ScrapedSnapshotRepository
	scraper   LiveScraper
	metrics   *metrics.Run
	logger    *zap.Logger
	cfg       Config
}

// NewRunner creates a Runner. The scraper may be nil when only API-driven
// workflows will run.
func NewRunner(
	col CatalogCollector,
	channels repository.ChannelRepository,
	videos repository.VideoMetadataRepository,
	snapshots repository.VideoSnapshotRepository,
	scraped repository.ScrapedSnapshotRepository,
	scr LiveScraper,
	run *metrics.Run,
	cfg Config,
	logger *zap.Logger,
) *Runner {
	if run == nil {
		run = metrics.NewRun("", "")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		collector: col,
		channels:  channels,
		videos:    videos,
		snapshots: snapshots,
		scraped:   scraped,
		scraper:   scr,
		metrics:   run,
		logger:    logger,
		cfg:       cfg,
	}
}

// finish records quota usage and ships run metrics. Push failures are
// logged, never fatal.
func (r *Runner) finish(log *zap.Logger) {
	quota := r.collector.Quota()
	if quota != nil {
		log.Info("API quota usage",
			zap.Int("used", quota.Used()),
			zap.Int("limit", quota.Limit()),
			zap.Int("remaining", quota.Remaining()),
		)
		r.metrics.QuotaUsed.Set(float64(quota.Used()))
	}
	if err := r.metrics.Push(); err != nil {
		log.Warn("failed to push run metrics", zap.Error(err))
	}
}
