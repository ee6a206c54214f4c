package models

import "time"

// ChannelMetadata is the single descriptive row kept per channel. It is
// fully overwritten on each refresh.
type ChannelMetadata struct {
	ChannelID    string    `db:"channel_id"`
	Title        string    `db:"title"`
	ThumbnailURL string    `db:"thumbnail_url"`
	BannerURL    string    `db:"banner_url"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewChannelMetadata creates channel metadata stamped with the given refresh time.
func NewChannelMetadata(channelID, title, thumbnailURL, bannerURL string, updatedAt time.Time) *ChannelMetadata {
	return &ChannelMetadata{
		ChannelID:    channelID,
		Title:        title,
		ThumbnailURL: thumbnailURL,
		BannerURL:    bannerURL,
		UpdatedAt:    updatedAt.UTC(),
	}
}
