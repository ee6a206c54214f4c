// Package repository implements the persistence layer over the
// pre-provisioned snapshot schema. It never creates tables.
package repository

import (
	"context"

	"ytstats/internal/db"
	"ytstats/internal/db/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ChannelRepository defines operations for channel-level rows.
type ChannelRepository interface {
	// UpsertSnapshot writes a channel snapshot keyed on
	// (channel_id, collected_date); last write wins for the same day.
	UpsertSnapshot(ctx context.Context, snap *models.ChannelSnapshot) error

	// UpsertMetadata overwrites the single metadata row for a channel.
	UpsertMetadata(ctx context.Context, meta *models.ChannelMetadata) error
}

type channelRepository struct {
	pool *pgxpool.Pool
}

// NewChannelRepository creates a new ChannelRepository.
func NewChannelRepository(pool *pgxpool.Pool) ChannelRepository {
	return &channelRepository{pool: pool}
}

func (r *channelRepository) UpsertSnapshot(ctx context.Context, snap *models.ChannelSnapshot) error {
	query := `
		INSERT INTO channel_snapshots (channel_id, subscriber_count, total_view_count, video_count, collected_date, collected_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (channel_id, collected_date) DO UPDATE
		SET subscriber_count = EXCLUDED.subscriber_count,
		    total_view_count = EXCLUDED.total_view_count,
		    video_count = EXCLUDED.video_count,
		    collected_at = EXCLUDED.collected_at
	`

	_, err := r.pool.Exec(ctx, query,
		snap.ChannelID,
		snap.SubscriberCount,
		snap.TotalViewCount,
		snap.VideoCount,
		snap.CollectedDate,
		snap.CollectedAt,
	)
	if err != nil {
		return db.WrapError(err, "upsert channel snapshot")
	}

	return nil
}

func (r *channelRepository) UpsertMetadata(ctx context.Context, meta *models.ChannelMetadata) error {
	query := `
		INSERT INTO channel_metadata (channel_id, title, thumbnail_url, banner_url, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (channel_id) DO UPDATE
		SET title = EXCLUDED.title,
		    thumbnail_url = EXCLUDED.thumbnail_url,
		    banner_url = EXCLUDED.banner_url,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		meta.ChannelID,
		meta.Title,
		meta.ThumbnailURL,
		meta.BannerURL,
		meta.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "upsert channel metadata")
	}

	return nil
}
