package workflow

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ytstats/internal/collector"
)

// Daily records today's channel snapshot, refreshes channel metadata,
// registers newly uploaded videos and snapshots every video's counters.
// Quota exhaustion is non-fatal only in the final statistics step: whatever
// was persisted before it stays, and the run still completes.
func (r *Runner) Daily(ctx context.Context) error {
	log := r.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("mode", "daily"),
	)
	log.Info("daily collection started", zap.String("channel_id", r.cfg.ChannelID))

	channelSnap, err := r.collector.ChannelStats(ctx, r.cfg.ChannelID)
	if err != nil {
		return err
	}
	if err := r.channels.UpsertSnapshot(ctx, channelSnap); err != nil {
		return err
	}
	log.Info("channel snapshot recorded",
		zap.Int64("subscribers", channelSnap.SubscriberCount),
		zap.Int64("total_views", channelSnap.TotalViewCount),
		zap.Int64("video_count", channelSnap.VideoCount),
	)

	channelMeta, err := r.collector.ChannelMetadata(ctx, r.cfg.ChannelID)
	if err != nil {
		return err
	}
	if err := r.channels.UpsertMetadata(ctx, channelMeta); err != nil {
		return err
	}

	videoIDs, err := r.collector.ListAllVideoIDs(ctx, r.cfg.ChannelID)
	if err != nil {
		return err
	}
	r.metrics.VideosFound.Set(float64(len(videoIDs)))

	newIDs, err := r.videos.FindNewVideoIDs(ctx, videoIDs)
	if err != nil {
		return err
	}
	r.metrics.NewVideos.Set(float64(len(newIDs)))

	if len(newIDs) > 0 {
		log.Info("fetching metadata for new videos", zap.Int("count", len(newIDs)))
		metas, err := r.collector.FetchVideoMetadata(ctx, newIDs)
		if err != nil {
			return err
		}
		if err := r.videos.UpsertBatch(ctx, metas); err != nil {
			return err
		}
		log.Info("new videos registered", zap.Int("count", len(metas)))
	}

	log.Info("fetching statistics for all videos", zap.Int("count", len(videoIDs)))
	snaps, err := r.collector.FetchVideoStats(ctx, videoIDs)
	if err != nil {
		if errors.Is(err, collector.ErrQuotaExhausted) {
			log.Warn("API quota exhausted, keeping what was persisted", zap.Error(err))
			r.finish(log)
			return nil
		}
		return err
	}
	if err := r.snapshots.UpsertBatch(ctx, snaps); err != nil {
		return err
	}
	r.metrics.SnapshotsWritten.Set(float64(len(snaps)))
	log.Info("video snapshots recorded", zap.Int("count", len(snaps)))

	r.finish(log)
	return nil
}
