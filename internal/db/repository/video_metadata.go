package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ytstats/internal/db"
	"ytstats/internal/db/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// findNewChunkSize bounds the number of ids passed to a single in-set query.
const findNewChunkSize = 100

// VideoMetadataRepository defines operations for per-video descriptive rows.
type VideoMetadataRepository interface {
	// Upsert writes one metadata row keyed on video_id. An existing row's
	// first_seen_at is preserved; updated_at is always set to the write time.
	Upsert(ctx context.Context, meta *models.VideoMetadata) error

	// UpsertBatch applies Upsert once per item.
	UpsertBatch(ctx context.Context, metas []*models.VideoMetadata) error

	// FindNewVideoIDs returns the subsequence of candidates with no existing
	// metadata row, preserving candidate order.
	FindNewVideoIDs(ctx context.Context, candidates []string) ([]string, error)

	// RecentVideoIDs returns ids of videos published within the last
	// sinceDays days, most recent first.
	RecentVideoIDs(ctx context.Context, sinceDays int) ([]string, error)

	// AllVideoIDs returns every known video id, most recent first.
	AllVideoIDs(ctx context.Context) ([]string, error)

	// OldestVideos and NewestVideos return up to limit rows ordered by
	// published_at, for data-range checks.
	OldestVideos(ctx context.Context, limit int) ([]*models.VideoMetadata, error)
	NewestVideos(ctx context.Context, limit int) ([]*models.VideoMetadata, error)
}

type videoMetadataRepository struct {
	pool *pgxpool.Pool
}

// NewVideoMetadataRepository creates a new VideoMetadataRepository.
func NewVideoMetadataRepository(pool *pgxpool.Pool) VideoMetadataRepository {
	return &videoMetadataRepository{pool: pool}
}

func (r *videoMetadataRepository) Upsert(ctx context.Context, meta *models.VideoMetadata) error {
	now := time.Now().UTC()

	// Read-before-write: keep the original first_seen_at if the video is
	// already known, fall back to now for a first insert.
	firstSeen := now
	var existing time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT first_seen_at FROM video_metadata WHERE video_id = $1`,
		meta.VideoID,
	).Scan(&existing)
	if err != nil {
		// Not found means a first insert; anything else aborts the write.
		if wrapped := db.WrapError(err, "lookup video first_seen_at"); !db.IsNotFound(wrapped) {
			return wrapped
		}
	} else {
		firstSeen = existing
	}

	tags := meta.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	query := `
		INSERT INTO video_metadata (video_id, title, description, published_at, duration_seconds, tags, category_id, thumbnail_url, first_seen_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (video_id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    published_at = EXCLUDED.published_at,
		    duration_seconds = EXCLUDED.duration_seconds,
		    tags = EXCLUDED.tags,
		    category_id = EXCLUDED.category_id,
		    thumbnail_url = EXCLUDED.thumbnail_url,
		    first_seen_at = EXCLUDED.first_seen_at,
		    updated_at = EXCLUDED.updated_at
	`

	_, err = r.pool.Exec(ctx, query,
		meta.VideoID,
		meta.Title,
		meta.Description,
		meta.PublishedAt,
		meta.DurationSeconds,
		tagsJSON,
		meta.CategoryID,
		meta.ThumbnailURL,
		firstSeen,
		now,
	)
	if err != nil {
		return db.WrapError(err, "upsert video metadata")
	}

	meta.FirstSeenAt = firstSeen
	meta.UpdatedAt = now
	return nil
}

func (r *videoMetadataRepository) UpsertBatch(ctx context.Context, metas []*models.VideoMetadata) error {
	for _, m := range metas {
		if err := r.Upsert(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *videoMetadataRepository) FindNewVideoIDs(ctx context.Context, candidates []string) ([]string, error) {
	existing := make(map[string]struct{})

	for i := 0; i < len(candidates); i += findNewChunkSize {
		end := i + findNewChunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[i:end]

		rows, err := r.pool.Query(ctx,
			`SELECT video_id FROM video_metadata WHERE video_id = ANY($1)`,
			chunk,
		)
		if err != nil {
			return nil, db.WrapError(err, "find new video ids")
		}

		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan video id: %w", err)
			}
			existing[id] = struct{}{}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate video ids: %w", err)
		}
		rows.Close()
	}

	newIDs := make([]string, 0, len(candidates)-len(existing))
	for _, id := range candidates {
		if _, ok := existing[id]; !ok {
			newIDs = append(newIDs, id)
		}
	}
	return newIDs, nil
}

func (r *videoMetadataRepository) RecentVideoIDs(ctx context.Context, sinceDays int) ([]string, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -sinceDays)

	rows, err := r.pool.Query(ctx,
		`SELECT video_id FROM video_metadata WHERE published_at >= $1 ORDER BY published_at DESC`,
		cutoff,
	)
	if err != nil {
		return nil, db.WrapError(err, "recent video ids")
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (r *videoMetadataRepository) AllVideoIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT video_id FROM video_metadata ORDER BY published_at DESC`,
	)
	if err != nil {
		return nil, db.WrapError(err, "all video ids")
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (r *videoMetadataRepository) OldestVideos(ctx context.Context, limit int) ([]*models.VideoMetadata, error) {
	return r.videosByPublished(ctx, "ASC", limit)
}

func (r *videoMetadataRepository) NewestVideos(ctx context.Context, limit int) ([]*models.VideoMetadata, error) {
	return r.videosByPublished(ctx, "DESC", limit)
}

func (r *videoMetadataRepository) videosByPublished(ctx context.Context, direction string, limit int) ([]*models.VideoMetadata, error) {
	query := fmt.Sprintf(
		`SELECT video_id, title, published_at FROM video_metadata ORDER BY published_at %s LIMIT $1`,
		direction,
	)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, db.WrapError(err, "videos by published date")
	}
	defer rows.Close()

	var videos []*models.VideoMetadata
	for rows.Next() {
		v := &models.VideoMetadata{}
		if err := rows.Scan(&v.VideoID, &v.Title, &v.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return videos, nil
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan video id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video ids: %w", err)
	}
	return ids, nil
}
