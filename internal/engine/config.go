package engine

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	YouTubeOrder          string  // default search order
	YouTubeType           string  // default search type filter
	YouTubePageSize       int     // default maxResults per page
	YouTubeMaxPages       int     // default page cap, 0 = unbounded
	YouTubeRPS            float64 // page requests per second, 0 = unlimited
	TopK                  int     // default number of ranked words returned by tools
	FetchTimeout          time.Duration
	CacheMaxEntries       int
	CacheCleanupInterval  time.Duration
	HTTPClient            *http.Client
}

var cfg = Config{
	YouTubeOrder:    "viewCount",
	YouTubeType:     "video",
	YouTubePageSize: 50,
	YouTubeMaxPages: 2,
	TopK:            50,
	HTTPClient:      http.DefaultClient,
}

// Cfg exposes the engine configuration for sub-packages (sources, cloudserver).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero values fall back to the defaults above; a page size outside
// 1..paging.MaxPageSize falls back to the maximum.
func Init(c Config) {
	if c.YouTubeOrder == "" {
		c.YouTubeOrder = "viewCount"
	}
	if c.YouTubeType == "" {
		c.YouTubeType = "video"
	}
	if c.YouTubePageSize <= 0 || c.YouTubePageSize > paging.MaxPageSize {
		if c.YouTubePageSize != 0 {
			slog.Warn("youtube page size out of range, using max",
				slog.Int("page_size", c.YouTubePageSize), slog.Int("max", paging.MaxPageSize))
		}
		c.YouTubePageSize = paging.MaxPageSize
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	cfg = c
	Cfg = &cfg
}
