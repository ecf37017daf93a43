package sources

// YouTube fetch capabilities are split across files by responsibility:
//   youtube.go            Searcher, backend choice and the shared rate limiter
//   youtube_search.go     Data API v3 search.list and uploads playlistItems.list
//   youtube_innertube.go  keyless Innertube search with continuation tokens
//   throttle.go           rate limit and timeout wrappers for any paging.PageFunc

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
	"golang.org/x/time/rate"
)

// Searcher bundles the fetch capabilities chosen for the current configuration.
type Searcher struct {
	Search  paging.PageFunc[engine.Video]
	Backend string // "data_api" or "innertube"

	dataAPI *DataAPI // nil without an API key
	limiter *rate.Limiter
}

// NewSearcher uses the Data API when a key is configured, otherwise the Innertube fallback.
// All page requests share one rate limiter built from engine.Cfg.YouTubeRPS
// and are bounded by engine.Cfg.FetchTimeout.
func NewSearcher(ctx context.Context, opts ...DataAPIOption) (*Searcher, error) {
	s := &Searcher{limiter: NewLimiter(engine.Cfg.YouTubeRPS)}
	if engine.Cfg.YouTubeAPIKey != "" || engine.Cfg.YouTubeAPIKeyFallback != "" {
		d, err := NewDataAPI(ctx, []string{engine.Cfg.YouTubeAPIKey, engine.Cfg.YouTubeAPIKeyFallback}, opts...)
		if err != nil {
			return nil, err
		}
		s.dataAPI = d
		s.Backend = "data_api"
		s.Search = s.wrap(d.SearchPage)
	} else {
		s.Backend = "innertube"
		s.Search = s.wrap(NewInnertube(nil).SearchPage)
		slog.Info("youtube: no API key configured, using innertube search fallback")
	}
	return s, nil
}

// wrap applies the shared limiter, then the per-page engine.Cfg.FetchTimeout.
func (s *Searcher) wrap(fn paging.PageFunc[engine.Video]) paging.PageFunc[engine.Video] {
	return Throttle(Timeout(fn, engine.Cfg.FetchTimeout), s.limiter)
}

// Uploads returns the uploads PageFunc for a channel. It needs the Data API.
func (s *Searcher) Uploads(channelID string) (paging.PageFunc[engine.Video], error) {
	if s.dataAPI == nil {
		return nil, ErrNoAPIKey
	}
	fn, err := s.dataAPI.UploadsPage(channelID)
	if err != nil {
		return nil, err
	}
	return s.wrap(fn), nil
}
