package models

import "time"

// DateFormat is the calendar-day key used by daily snapshot tables.
const DateFormat = "2006-01-02"

// ChannelSnapshot is a point-in-time measurement of channel-level counters.
// At most one row exists per (channel_id, collected_date); a later write on
// the same day overwrites the earlier one.
type ChannelSnapshot struct {
	ChannelID       string    `db:"channel_id"`
	SubscriberCount int64     `db:"subscriber_count"`
	TotalViewCount  int64     `db:"total_view_count"`
	VideoCount      int64     `db:"video_count"`
	CollectedAt     time.Time `db:"collected_at"`
	CollectedDate   string    `db:"collected_date"`
}

// NewChannelSnapshot creates a snapshot stamped with the given collection
// instant and its UTC calendar day.
func NewChannelSnapshot(channelID string, subscribers, totalViews, videoCount int64, collectedAt time.Time) *ChannelSnapshot {
	collectedAt = collectedAt.UTC()
	return &ChannelSnapshot{
		ChannelID:       channelID,
		SubscriberCount: subscribers,
		TotalViewCount:  totalViews,
		VideoCount:      videoCount,
		CollectedAt:     collectedAt,
		CollectedDate:   collectedAt.Format(DateFormat),
	}
}
