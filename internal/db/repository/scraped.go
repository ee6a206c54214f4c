package repository

import (
	"context"

	"ytstats/internal/db"
	"ytstats/internal/db/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ScrapedSnapshotRepository defines operations for scraped live readings.
type ScrapedSnapshotRepository interface {
	// Insert appends one scraped reading. There is no conflict handling;
	// every scrape produces a new row.
	Insert(ctx context.Context, snap *models.ScrapedSnapshot) error
}

type scrapedSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewScrapedSnapshotRepository creates a new ScrapedSnapshotRepository.
func NewScrapedSnapshotRepository(pool *pgxpool.Pool) ScrapedSnapshotRepository {
	return &scrapedSnapshotRepository{pool: pool}
}

func (r *scrapedSnapshotRepository) Insert(ctx context.Context, snap *models.ScrapedSnapshot) error {
	query := `
		INSERT INTO scraped_snapshots (video_id, view_count, like_count, collected_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		snap.VideoID,
		snap.ViewCount,
		snap.LikeCount,
		snap.CollectedAt,
	)
	if err != nil {
		return db.WrapError(err, "insert scraped snapshot")
	}

	return nil
}
