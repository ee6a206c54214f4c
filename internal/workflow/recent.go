package workflow

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recent scrapes live counters for videos published within the recency
// window. Per-video failures are logged and skipped; the loop never aborts.
// The run stops early once the per-run scrape cap is reached.
func (r *Runner) Recent(ctx context.Context) error {
	log := r.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("mode", "recent"),
	)

	recentIDs, err := r.videos.RecentVideoIDs(ctx, r.cfg.RecentDays)
	if err != nil {
		return err
	}
	if len(recentIDs) == 0 {
		log.Info("no recent uploads to scrape", zap.Int("window_days", r.cfg.RecentDays))
		return nil
	}

	log.Info("scraping recent uploads",
		zap.Int("window_days", r.cfg.RecentDays),
		zap.Int("videos", len(recentIDs)),
	)

	scrapes := 0
	failures := 0
	for i, videoID := range recentIDs {
		if r.cfg.ScrapeCap > 0 && scrapes >= r.cfg.ScrapeCap {
			log.Info("scrape cap reached",
				zap.Int("cap", r.cfg.ScrapeCap),
				zap.Int("skipped", len(recentIDs)-i),
			)
			break
		}

		snap, err := r.scraper.LiveStats(ctx, videoID)
		scrapes++
		if err != nil {
			failures++
			log.Warn("scrape failed", zap.String("video_id", videoID), zap.Error(err))
			continue
		}

		if err := r.scraped.Insert(ctx, snap); err != nil {
			failures++
			log.Warn("failed to store scraped snapshot",
				zap.String("video_id", videoID),
				zap.Error(err),
			)
			continue
		}

		log.Info("scraped", zap.String("video_id", videoID), zap.Int64("views", snap.ViewCount))
	}

	r.metrics.ScrapesFailed.Set(float64(failures))
	log.Info("scraping finished", zap.Int("scrapes", scrapes), zap.Int("failures", failures))

	if err := r.metrics.Push(); err != nil {
		log.Warn("failed to push run metrics", zap.Error(err))
	}
	return nil
}
