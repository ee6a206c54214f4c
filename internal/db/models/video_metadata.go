package models

import "time"

// VideoMetadata is the descriptive record kept per video, keyed by video_id.
// FirstSeenAt is set once at first insert and preserved across upserts;
// UpdatedAt is refreshed on every write.
type VideoMetadata struct {
	VideoID         string    `db:"video_id"`
	Title           string    `db:"title"`
	Description     string    `db:"description"`
	PublishedAt     time.Time `db:"published_at"`
	DurationSeconds int       `db:"duration_seconds"`
	Tags            []string  `db:"tags"`
	CategoryID      string    `db:"category_id"`
	ThumbnailURL    string    `db:"thumbnail_url"`
	FirstSeenAt     time.Time `db:"first_seen_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}
