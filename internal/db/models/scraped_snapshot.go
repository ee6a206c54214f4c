package models

import "time"

// ScrapedSnapshot is a best-effort live counter reading taken outside the
// Data API. Rows are append-only; there is no day-level uniqueness.
type ScrapedSnapshot struct {
	VideoID     string    `db:"video_id"`
	ViewCount   int64     `db:"view_count"`
	LikeCount   *int64    `db:"like_count"` // upstream may omit likes
	CollectedAt time.Time `db:"collected_at"`
}

// NewScrapedSnapshot creates a scraped reading stamped with the given instant.
func NewScrapedSnapshot(videoID string, views int64, likes *int64, collectedAt time.Time) *ScrapedSnapshot {
	return &ScrapedSnapshot{
		VideoID:     videoID,
		ViewCount:   views,
		LikeCount:   likes,
		CollectedAt: collectedAt.UTC(),
	}
}
