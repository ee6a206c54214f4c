package repository

import (
	"context"
	"fmt"
	"strings"

	"ytstats/internal/db"
	"ytstats/internal/db/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotChunkSize bounds the rows written by one upsert statement. Chunks
// are independent; there is no cross-chunk transaction.
const snapshotChunkSize = 500

// VideoSnapshotRepository defines operations for daily per-video snapshots.
type VideoSnapshotRepository interface {
	// UpsertBatch writes snapshots keyed on (video_id, collected_date) in
	// chunks of at most 500 rows.
	UpsertBatch(ctx context.Context, snaps []*models.VideoSnapshot) error
}

type videoSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewVideoSnapshotRepository creates a new VideoSnapshotRepository.
func NewVideoSnapshotRepository(pool *pgxpool.Pool) VideoSnapshotRepository {
	return &videoSnapshotRepository{pool: pool}
}

func (r *videoSnapshotRepository) UpsertBatch(ctx context.Context, snaps []*models.VideoSnapshot) error {
	for i := 0; i < len(snaps); i += snapshotChunkSize {
		end := i + snapshotChunkSize
		if end > len(snaps) {
			end = len(snaps)
		}
		if err := r.upsertChunk(ctx, snaps[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *videoSnapshotRepository) upsertChunk(ctx context.Context, snaps []*models.VideoSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`
		INSERT INTO video_snapshots (video_id, view_count, like_count, comment_count, collected_date, collected_at)
		VALUES `)

	args := make([]any, 0, len(snaps)*6)
	for i, s := range snaps {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, s.VideoID, s.ViewCount, s.LikeCount, s.CommentCount, s.CollectedDate, s.CollectedAt)
	}

	sb.WriteString(`
		ON CONFLICT (video_id, collected_date) DO UPDATE
		SET view_count = EXCLUDED.view_count,
		    like_count = EXCLUDED.like_count,
		    comment_count = EXCLUDED.comment_count,
		    collected_at = EXCLUDED.collected_at`)

	if _, err := r.pool.Exec(ctx, sb.String(), args...); err != nil {
		return db.WrapError(err, "upsert video snapshots")
	}
	return nil
}
