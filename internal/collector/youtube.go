package collector

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// videoAPI is the narrow surface of the YouTube Data API the collector
// depends on. It exists so quota and batching logic test without the network.
type videoAPI interface {
	// Channel returns the channel with the given id, with the requested parts.
	Channel(ctx context.Context, channelID string, parts []string) (*youtube.Channel, error)

	// PlaylistItemsPage returns one page of a playlist walk.
	PlaylistItemsPage(ctx context.Context, playlistID, pageToken string, pageSize int64) (*youtube.PlaylistItemListResponse, error)

	// Videos returns the listed videos with the requested parts. Callers
	// hand over at most 50 ids.
	Videos(ctx context.Context, videoIDs []string, parts []string) (*youtube.VideoListResponse, error)
}

// apiClient implements videoAPI over a youtube.Service.
type apiClient struct {
	service *youtube.Service
}

func newAPIClient(ctx context.Context, apiKey string) (*apiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &apiClient{service: service}, nil
}

func (c *apiClient) Channel(ctx context.Context, channelID string, parts []string) (*youtube.Channel, error) {
	response, err := c.service.Channels.List(parts).Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("channels.list(%s): %w", strings.Join(parts, ","), err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("channel %s not found", channelID)
	}
	return response.Items[0], nil
}

func (c *apiClient) PlaylistItemsPage(ctx context.Context, playlistID, pageToken string, pageSize int64) (*youtube.PlaylistItemListResponse, error) {
	call := c.service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("playlistItems.list: %w", err)
	}
	return response, nil
}

func (c *apiClient) Videos(ctx context.Context, videoIDs []string, parts []string) (*youtube.VideoListResponse, error) {
	response, err := c.service.Videos.List(parts).Id(videoIDs...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("videos.list(%s): %w", strings.Join(parts, ","), err)
	}
	return response, nil
}
