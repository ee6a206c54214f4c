package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/youtube/v3"

	"ytstats/internal/db/models"
)

// pageSize is the playlistItems.list page size; one page costs one quota unit.
const pageSize = 50

// maxBatchSize is the videos.list id ceiling; one batch costs one quota unit.
const maxBatchSize = 50

// Collector paginates the uploads catalog and fetches statistics/metadata
// in quota-charged batches. Every remote call is followed by a synchronous
// quota consume so a caller can stop a multi-page operation mid-walk.
type Collector struct {
	api       videoAPI
	quota     *QuotaTracker
	logger    *zap.Logger
	batchSize int
}

// New creates a Collector backed by the real YouTube Data API.
func New(ctx context.Context, apiKey string, dailyQuotaLimit, batchSize int, logger *zap.Logger) (*Collector, error) {
	api, err := newAPIClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return newCollector(api, NewQuotaTracker(dailyQuotaLimit, logger), batchSize, logger), nil
}

func newCollector(api videoAPI, quota *QuotaTracker, batchSize int, logger *zap.Logger) *Collector {
	if batchSize <= 0 || batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{api: api, quota: quota, logger: logger, batchSize: batchSize}
}

// Quota exposes the tracker for progress reporting.
func (c *Collector) Quota() *QuotaTracker {
	return c.quota
}

// ChannelStats fetches channel-level counters as a snapshot. One quota unit.
func (c *Collector) ChannelStats(ctx context.Context, channelID string) (*models.ChannelSnapshot, error) {
	channel, err := c.api.Channel(ctx, channelID, []string{"statistics"})
	if err != nil {
		return nil, err
	}
	if err := c.quota.Consume(1); err != nil {
		return nil, err
	}

	stats := channel.Statistics
	if stats == nil {
		return nil, fmt.Errorf("channel %s has no statistics part", channelID)
	}

	return models.NewChannelSnapshot(
		channelID,
		int64(stats.SubscriberCount),
		int64(stats.ViewCount),
		int64(stats.VideoCount),
		time.Now(),
	), nil
}

// ChannelMetadata fetches the channel title, icon and banner. One quota unit.
func (c *Collector) ChannelMetadata(ctx context.Context, channelID string) (*models.ChannelMetadata, error) {
	channel, err := c.api.Channel(ctx, channelID, []string{"snippet", "brandingSettings"})
	if err != nil {
		return nil, err
	}
	if err := c.quota.Consume(1); err != nil {
		return nil, err
	}

	var title, thumbURL string
	if channel.Snippet != nil {
		title = channel.Snippet.Title
		thumbURL = channelThumbnailURL(channel.Snippet.Thumbnails)
	}

	var bannerURL string
	if channel.BrandingSettings != nil && channel.BrandingSettings.Image != nil {
		bannerURL = channel.BrandingSettings.Image.BannerExternalUrl
	}

	return models.NewChannelMetadata(channelID, title, thumbURL, bannerURL, time.Now()), nil
}

// uploadsPlaylistID resolves the channel's canonical uploads playlist. One
// quota unit.
func (c *Collector) uploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	channel, err := c.api.Channel(ctx, channelID, []string{"contentDetails"})
	if err != nil {
		return "", err
	}
	if err := c.quota.Consume(1); err != nil {
		return "", err
	}

	if channel.ContentDetails == nil || channel.ContentDetails.RelatedPlaylists == nil {
		return "", fmt.Errorf("channel %s has no uploads playlist", channelID)
	}
	return channel.ContentDetails.RelatedPlaylists.Uploads, nil
}

// ListAllVideoIDs enumerates every video id in the channel's uploads
// playlist, in catalog order (newest first as returned upstream). Quota is
// charged after every page; exhaustion mid-walk fails the whole listing
// rather than returning a partial result.
func (c *Collector) ListAllVideoIDs(ctx context.Context, channelID string) ([]string, error) {
	playlistID, err := c.uploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var videoIDs []string
	pageToken := ""

	for {
		page, err := c.api.PlaylistItemsPage(ctx, playlistID, pageToken, pageSize)
		if err != nil {
			return nil, err
		}
		if err := c.quota.Consume(1); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.ContentDetails != nil {
				videoIDs = append(videoIDs, item.ContentDetails.VideoId)
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	c.logger.Info("listed channel uploads",
		zap.String("channel_id", channelID),
		zap.Int("videos", len(videoIDs)),
	)
	return videoIDs, nil
}

// FetchVideoStats fetches per-video counters in batches. All returned
// snapshots share one collection stamp computed before the first batch, so
// a long fetch still represents a single snapshot moment.
func (c *Collector) FetchVideoStats(ctx context.Context, videoIDs []string) ([]*models.VideoSnapshot, error) {
	collectedAt := time.Now()
	snapshots := make([]*models.VideoSnapshot, 0, len(videoIDs))

	for i := 0; i < len(videoIDs); i += c.batchSize {
		end := i + c.batchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		response, err := c.api.Videos(ctx, videoIDs[i:end], []string{"statistics"})
		if err != nil {
			return nil, err
		}
		if err := c.quota.Consume(1); err != nil {
			return nil, err
		}

		for _, item := range response.Items {
			stats := item.Statistics
			if stats == nil {
				continue
			}
			snapshots = append(snapshots, models.NewVideoSnapshot(
				item.Id,
				int64(stats.ViewCount),
				int64(stats.LikeCount),
				int64(stats.CommentCount),
				collectedAt,
			))
		}
	}

	return snapshots, nil
}

// FetchVideoMetadata fetches descriptive data in batches: thumbnail with a
// resolution fallback chain, tags (empty when absent), and duration in
// seconds via ParseDuration.
func (c *Collector) FetchVideoMetadata(ctx context.Context, videoIDs []string) ([]*models.VideoMetadata, error) {
	metas := make([]*models.VideoMetadata, 0, len(videoIDs))

	for i := 0; i < len(videoIDs); i += c.batchSize {
		end := i + c.batchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		response, err := c.api.Videos(ctx, videoIDs[i:end], []string{"snippet", "contentDetails"})
		if err != nil {
			return nil, err
		}
		if err := c.quota.Consume(1); err != nil {
			return nil, err
		}

		for _, item := range response.Items {
			metas = append(metas, videoMetadataFromItem(item))
		}
	}

	return metas, nil
}

func videoMetadataFromItem(item *youtube.Video) *models.VideoMetadata {
	meta := &models.VideoMetadata{
		VideoID: item.Id,
		Tags:    []string{},
	}

	if item.Snippet != nil {
		meta.Title = item.Snippet.Title
		meta.Description = item.Snippet.Description
		meta.CategoryID = item.Snippet.CategoryId
		meta.ThumbnailURL = videoThumbnailURL(item.Snippet.Thumbnails)
		if item.Snippet.Tags != nil {
			meta.Tags = item.Snippet.Tags
		}
		if t, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			meta.PublishedAt = t
		}
	}

	if item.ContentDetails != nil {
		meta.DurationSeconds = ParseDuration(item.ContentDetails.Duration)
	}

	return meta
}

// videoThumbnailURL prefers the highest resolution available.
func videoThumbnailURL(thumbs *youtube.ThumbnailDetails) string {
	if thumbs == nil {
		return ""
	}
	switch {
	case thumbs.Maxres != nil && thumbs.Maxres.Url != "":
		return thumbs.Maxres.Url
	case thumbs.High != nil && thumbs.High.Url != "":
		return thumbs.High.Url
	case thumbs.Default != nil && thumbs.Default.Url != "":
		return thumbs.Default.Url
	}
	return ""
}

// channelThumbnailURL prefers the high-resolution channel icon.
func channelThumbnailURL(thumbs *youtube.ThumbnailDetails) string {
	if thumbs == nil {
		return ""
	}
	switch {
	case thumbs.High != nil && thumbs.High.Url != "":
		return thumbs.High.Url
	case thumbs.Default != nil && thumbs.Default.Url != "":
		return thumbs.Default.Url
	}
	return ""
}
