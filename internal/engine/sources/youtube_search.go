package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
	"golang.org/x/net/html"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTube Data API v3: search.list and playlistItems.list as paging.PageFunc values.

// ErrNoAPIKey is returned by NewDataAPI when no key is configured.
var ErrNoAPIKey = errors.New("youtube data API: no API key configured")

// ErrInvalidChannelID rejects channel IDs that have no uploads playlist.
var ErrInvalidChannelID = errors.New("youtube data API: channel ID must start with UC")

// DataAPI fetches pages from the YouTube Data API v3.
// It holds one service per API key; a 403 (quota or key restriction) on one key moves on to the next.
type DataAPI struct {
	services []*youtube.Service
	retry    engine.RetryConfig
}

// DataAPIOption tunes NewDataAPI.
type DataAPIOption func(*dataAPIOptions)

type dataAPIOptions struct {
	endpoint string
	client   *http.Client
	retry    engine.RetryConfig
}

// WithEndpoint overrides the API base URL (tests, proxies).
func WithEndpoint(u string) DataAPIOption {
	return func(o *dataAPIOptions) { o.endpoint = u }
}

// WithHTTPClient sets the client used for API calls; its Transport gets the API key attached.
func WithHTTPClient(c *http.Client) DataAPIOption {
	return func(o *dataAPIOptions) { o.client = c }
}

// WithRetry replaces engine.DefaultRetryConfig.
func WithRetry(rc engine.RetryConfig) DataAPIOption {
	return func(o *dataAPIOptions) { o.retry = rc }
}

// NewDataAPI builds a client for the given keys, tried in order. Empty keys are skipped.
func NewDataAPI(ctx context.Context, keys []string, opts ...DataAPIOption) (*DataAPI, error) {
	o := dataAPIOptions{client: engine.Cfg.HTTPClient, retry: engine.DefaultRetryConfig}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = http.DefaultClient
	}

	d := &DataAPI{retry: o.retry}
	for _, key := range keys {
		if key == "" {
			continue
		}
		hc := &http.Client{
			Timeout:   o.client.Timeout,
			Transport: &transport.APIKey{Key: key, Transport: o.client.Transport},
		}
		copts := []option.ClientOption{option.WithHTTPClient(hc)}
		if o.endpoint != "" {
			copts = append(copts, option.WithEndpoint(o.endpoint))
		}
		svc, err := youtube.NewService(ctx, copts...)
		if err != nil {
			return nil, fmt.Errorf("create youtube service: %w", err)
		}
		svc.UserAgent = engine.UserAgentBot
		d.services = append(d.services, svc)
	}
	if len(d.services) == 0 {
		return nil, ErrNoAPIKey
	}
	return d, nil
}

// withKeys runs call against each service until one succeeds or fails with something other than 403.
func withKeys[T any](ctx context.Context, d *DataAPI, call func(svc *youtube.Service) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for i, svc := range d.services {
		res, err := engine.RetryDo(ctx, d.retry, func() (T, error) { return call(svc) })
		if err == nil {
			engine.IncrDataAPIPage()
			return res, nil
		}
		engine.IncrDataAPIError()
		lastErr = err
		if engine.StatusCode(err) != http.StatusForbidden {
			break
		}
		slog.Debug("youtube data API key rejected, trying fallback", slog.Int("key", i), slog.Any("error", err))
	}
	return zero, lastErr
}

// SearchPage fetches one page of search.list results.
func (d *DataAPI) SearchPage(ctx context.Context, q paging.Query, token string) (paging.Page[engine.Video], error) {
	resp, err := withKeys(ctx, d, func(svc *youtube.Service) (*youtube.SearchListResponse, error) {
		call := svc.Search.List([]string{"snippet"}).
			Q(q.Text).
			MaxResults(int64(q.PageSize)).
			Context(ctx)
		if q.Order != "" {
			call = call.Order(q.Order)
		}
		if q.Type != "" {
			call = call.Type(q.Type)
		}
		if token != "" {
			call = call.PageToken(token)
		}
		return call.Do()
	})
	if err != nil {
		return paging.Page[engine.Video]{}, fmt.Errorf("youtube data API search: %w", err)
	}

	videos := make([]engine.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, searchResultVideo(item))
	}
	return paging.Page[engine.Video]{Items: videos, NextToken: resp.NextPageToken}, nil
}

// UploadsPage returns a PageFunc over the uploads playlist of channelID.
// The query's Text is ignored; PageSize is honoured.
func (d *DataAPI) UploadsPage(channelID string) (paging.PageFunc[engine.Video], error) {
	playlistID, err := UploadsPlaylistID(channelID)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, q paging.Query, token string) (paging.Page[engine.Video], error) {
		resp, err := withKeys(ctx, d, func(svc *youtube.Service) (*youtube.PlaylistItemListResponse, error) {
			call := svc.PlaylistItems.List([]string{"snippet"}).
				PlaylistId(playlistID).
				MaxResults(int64(q.PageSize)).
				Context(ctx)
			if token != "" {
				call = call.PageToken(token)
			}
			return call.Do()
		})
		if err != nil {
			return paging.Page[engine.Video]{}, fmt.Errorf("youtube data API playlistItems: %w", err)
		}

		videos := make([]engine.Video, 0, len(resp.Items))
		for _, item := range resp.Items {
			videos = append(videos, playlistItemVideo(item))
		}
		return paging.Page[engine.Video]{Items: videos, NextToken: resp.NextPageToken}, nil
	}, nil
}

// UploadsPlaylistID maps a UC… channel ID onto its UU… uploads playlist.
func UploadsPlaylistID(channelID string) (string, error) {
	channelID = strings.TrimSpace(channelID)
	if len(channelID) <= 2 || !strings.HasPrefix(channelID, "UC") {
		return "", fmt.Errorf("%w: %q", ErrInvalidChannelID, channelID)
	}
	return "UU" + channelID[2:], nil
}

func searchResultVideo(item *youtube.SearchResult) engine.Video {
	var v engine.Video
	if item.Id != nil {
		switch {
		case item.Id.VideoId != "":
			v.ID = item.Id.VideoId
			v.URL = engine.VideoURL(v.ID)
		case item.Id.PlaylistId != "":
			v.ID = item.Id.PlaylistId
			v.URL = "https://www.youtube.com/playlist?list=" + v.ID
		case item.Id.ChannelId != "":
			v.ID = item.Id.ChannelId
			v.URL = "https://www.youtube.com/channel/" + v.ID
		}
	}
	if s := item.Snippet; s != nil {
		v.Title = html.UnescapeString(s.Title)
		v.ChannelTitle = html.UnescapeString(s.ChannelTitle)
		v.PublishedAt = s.PublishedAt
	}
	return v
}

func playlistItemVideo(item *youtube.PlaylistItem) engine.Video {
	var v engine.Video
	if s := item.Snippet; s != nil {
		v.Title = html.UnescapeString(s.Title)
		v.ChannelTitle = html.UnescapeString(s.ChannelTitle)
		v.PublishedAt = s.PublishedAt
		if s.ResourceId != nil {
			v.ID = s.ResourceId.VideoId
		}
	}
	if v.ID != "" {
		v.URL = engine.VideoURL(v.ID)
	}
	return v
}
