package models

import "time"

// VideoSnapshot is a point-in-time measurement of per-video counters. At
// most one row exists per (video_id, collected_date). Counts are trusted
// from upstream; monotonicity is not enforced here.
type VideoSnapshot struct {
	VideoID       string    `db:"video_id"`
	ViewCount     int64     `db:"view_count"`
	LikeCount     int64     `db:"like_count"`
	CommentCount  int64     `db:"comment_count"`
	CollectedAt   time.Time `db:"collected_at"`
	CollectedDate string    `db:"collected_date"`
}

// NewVideoSnapshot creates a snapshot carrying the shared collection stamp
// of the fetch operation that produced it.
func NewVideoSnapshot(videoID string, views, likes, comments int64, collectedAt time.Time) *VideoSnapshot {
	collectedAt = collectedAt.UTC()
	return &VideoSnapshot{
		VideoID:       videoID,
		ViewCount:     views,
		LikeCount:     likes,
		CommentCount:  comments,
		CollectedAt:   collectedAt,
		CollectedDate: collectedAt.Format(DateFormat),
	}
}
