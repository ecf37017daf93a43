package engine

import (
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
)

// ConfigFromEnv collects the engine configuration from the environment.
func ConfigFromEnv() Config {
	return Config{
		YouTubeAPIKey:         env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIKeyFallback: env.Str("YOUTUBE_API_KEY_FALLBACK", ""),
		YouTubeOrder:          env.Str("YOUTUBE_ORDER", "viewCount"),
		YouTubeType:           env.Str("YOUTUBE_TYPE", "video"),
		YouTubePageSize:       env.Int("YOUTUBE_PAGE_SIZE", 50),
		YouTubeMaxPages:       env.Int("YOUTUBE_MAX_PAGES", 2),
		YouTubeRPS:            env.Float("YOUTUBE_RPS", 5),
		TopK:                  env.Int("TOP_K", 50),
		FetchTimeout:          env.Duration("FETCH_TIMEOUT", 10*time.Second),
		CacheMaxEntries:       env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval:  env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
}

// InitFromEnv installs ConfigFromEnv and the fetch cache (REDIS_URL, CACHE_TTL).
func InitFromEnv() {
	c := ConfigFromEnv()
	Init(c)
	InitCache(env.Str("REDIS_URL", ""), env.Duration("CACHE_TTL", 15*time.Minute), c.CacheMaxEntries, c.CacheCleanupInterval)
}
