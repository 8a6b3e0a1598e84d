// Package search queries the YouTube Data API v3 for ranked video results.
//
// An API key is required; create one at https://console.developers.google.com/
// with the YouTube Data API v3 enabled and set it in the croon config
// (youtube.api_key) or via the CROON_YOUTUBE_API_KEY environment variable.
package search

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrNoAPIKey is returned when search is attempted without a configured
// YouTube API key.
var ErrNoAPIKey = errors.New("no YouTube API key configured")

// Result is one ranked search hit.
type Result struct {
	ID           string
	Title        string
	ChannelTitle string
	Duration     time.Duration
	Thumbnail    string
}

// Client searches YouTube for videos.
type Client struct {
	svc    *youtube.Service
	logger zerolog.Logger
}

// New creates a search client authenticated with an API key.
func New(ctx context.Context, apiKey string, logger zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		svc:    svc,
		logger: logger.With().Str("component", "search").Logger(),
	}, nil
}

// Search returns up to limit video results for query, in the provider's
// ranking order. Durations come from a follow-up contentDetails lookup.
func (c *Client) Search(ctx context.Context, query string, limit int64) ([]Result, error) {
	resp, err := c.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(limit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError(err)
	}

	var results []Result
	var ids []string
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		r := Result{
			ID:           item.Id.VideoId,
			Title:        html.UnescapeString(item.Snippet.Title),
			ChannelTitle: html.UnescapeString(item.Snippet.ChannelTitle),
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
			r.Thumbnail = item.Snippet.Thumbnails.Default.Url
		}
		results = append(results, r)
		ids = append(ids, r.ID)
	}

	if len(ids) > 0 {
		durations, err := c.fetchDurations(ctx, ids)
		if err != nil {
			// Durations are cosmetic; a lookup failure should not sink
			// the search
			c.logger.Debug().Err(err).Msg("Failed to fetch video durations")
		} else {
			for i := range results {
				results[i].Duration = durations[results[i].ID]
			}
		}
	}

	c.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("Search completed")

	return results, nil
}

// fetchDurations looks up contentDetails for the given video ids and
// returns their parsed durations keyed by id.
func (c *Client) fetchDurations(ctx context.Context, ids []string) (map[string]time.Duration, error) {
	resp, err := c.svc.Videos.List([]string{"contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapAPIError(err)
	}

	durations := make(map[string]time.Duration, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails == nil {
			continue
		}
		d, err := ParseISODuration(item.ContentDetails.Duration)
		if err != nil {
			continue
		}
		durations[item.Id] = d
	}

	return durations, nil
}

// wrapAPIError adds context for common API failure modes.
func wrapAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 403:
			return fmt.Errorf("YouTube API quota exceeded or access denied: %w", err)
		case 400, 401:
			return fmt.Errorf("YouTube API key rejected: %w", err)
		}
	}
	return fmt.Errorf("YouTube search failed: %w", err)
}
