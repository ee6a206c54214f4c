package workflow

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backfill performs the one-time historical catch-up: register metadata
// for every not-yet-known video, then snapshot current statistics for the
// whole catalog. Quota exhaustion is fatal here.
func (r *Runner) Backfill(ctx context.Context) error {
	log := r.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("mode", "backfill"),
	)
	log.Info("backfill started", zap.String("channel_id", r.cfg.ChannelID))

	videoIDs, err := r.collector.ListAllVideoIDs(ctx, r.cfg.ChannelID)
	if err != nil {
		return err
	}
	r.metrics.VideosFound.Set(float64(len(videoIDs)))
	log.Info("videos found", zap.Int("count", len(videoIDs)))

	newIDs, err := r.videos.FindNewVideoIDs(ctx, videoIDs)
	if err != nil {
		return err
	}
	r.metrics.NewVideos.Set(float64(len(newIDs)))

	if len(newIDs) == 0 {
		log.Info("all videos already registered")
	} else {
		log.Info("fetching metadata", zap.Int("new", len(newIDs)))
		metas, err := r.collector.FetchVideoMetadata(ctx, newIDs)
		if err != nil {
			return err
		}
		if err := r.videos.UpsertBatch(ctx, metas); err != nil {
			return err
		}
		log.Info("metadata registered", zap.Int("count", len(metas)))
	}

	log.Info("fetching current statistics", zap.Int("count", len(videoIDs)))
	snaps, err := r.collector.FetchVideoStats(ctx, videoIDs)
	if err != nil {
		return err
	}
	if err := r.snapshots.UpsertBatch(ctx, snaps); err != nil {
		return err
	}
	r.metrics.SnapshotsWritten.Set(float64(len(snaps)))
	log.Info("statistics recorded", zap.Int("count", len(snaps)))

	r.finish(log)
	return nil
}
