package engine

import (
	"context"

	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/wordfreq"
)

// CloudOpts configures BuildCloud.
type CloudOpts struct {
	MaxPages int    // page cap passed to paging.WithMaxPages (0 = unbounded)
	TopK     int    // ranked words kept (0 = all)
	CacheKey string // aggregated videos are cached under this key; "" disables caching
}

// BuildCloud runs the fetch→titles→rank pipeline for one query.
func BuildCloud(ctx context.Context, q paging.Query, fetch paging.PageFunc[Video], opts CloudOpts) (out CloudOutput, err error) {
	_ = TrackOperation(ctx, "cloud:"+q.Text, func(ctx context.Context) error {
		var videos []Video
		videos, err = FetchVideos(ctx, q, fetch, opts)
		if err != nil {
			return err
		}
		out = RankVideos(q.Text, videos, opts.TopK)
		return nil
	})
	return
}

// FetchVideos aggregates every page of q, consulting the cache first when opts.CacheKey is set.
// Failed fetches are never cached.
func FetchVideos(ctx context.Context, q paging.Query, fetch paging.PageFunc[Video], opts CloudOpts) ([]Video, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if opts.CacheKey != "" {
		if videos, ok := CacheLoadJSON[[]Video](ctx, opts.CacheKey); ok {
			return videos, nil
		}
	}

	videos, err := paging.FetchAll(ctx, q, fetch, paging.WithMaxPages(opts.MaxPages))
	if err != nil {
		return nil, err
	}
	metrics.VideosAggregated.Add(int64(len(videos)))

	if opts.CacheKey != "" {
		CacheStoreJSON(ctx, opts.CacheKey, videos)
	}
	return videos, nil
}

// RankVideos ranks the words of the video titles and trims the ranking to topK (0 = all).
func RankVideos(query string, videos []Video, topK int) CloudOutput {
	return CloudOutput{
		Query:      query,
		VideoCount: len(videos),
		Words:      wordfreq.Analyze(Titles(videos)).Top(topK),
		Videos:     videos,
	}
}
