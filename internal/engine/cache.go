package engine

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// fetchCache holds aggregated video lists: L1 in memory, L2 in Redis when configured.
// nil until InitCache; every lookup is then a miss.
var fetchCache atomic.Pointer[tieredCache]

var (
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
)

type tieredCache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	maxEntries int // 0 = unbounded
	ttl        time.Duration

	rdb  *redis.Client // nil if Redis is unavailable
	stop chan struct{}
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// InitCache installs a new cache, closing the previous one. An empty redisURL
// or an unreachable Redis leaves the cache memory-only.
func InitCache(redisURL string, ttl time.Duration, maxEntries int, cleanupInterval time.Duration) {
	c := &tieredCache{
		entries:    make(map[string]cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		rdb:        connectRedis(redisURL),
		stop:       make(chan struct{}),
	}
	if prev := fetchCache.Swap(c); prev != nil {
		prev.close()
	}
	slog.Info("cache: initialized",
		slog.Duration("ttl", ttl),
		slog.Bool("redis", c.rdb != nil),
		slog.Int("max_entries", maxEntries),
	)

	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	go c.sweepEvery(cleanupInterval)
}

// CloseCache uninstalls the cache; later lookups miss until InitCache runs again.
func CloseCache() {
	if prev := fetchCache.Swap(nil); prev != nil {
		prev.close()
	}
}

func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("cache: invalid redis URL, L2 disabled", slog.Any("error", err))
		return nil
	}
	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("cache: redis unreachable, L2 disabled", slog.String("addr", opts.Addr), slog.Any("error", err))
		_ = rdb.Close()
		return nil
	}
	slog.Info("cache: L2 redis connected", slog.String("addr", opts.Addr))
	return rdb
}

// CacheKey builds a deterministic key from parts.
func CacheKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("yc:%x", hash[:12])
}

// CacheLoadJSON decodes the value cached under key. A miss or an undecodable
// value reports false.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	var out T
	c := fetchCache.Load()
	if c == nil {
		cacheMisses.Add(1)
		return out, false
	}
	data, ok := c.get(ctx, key)
	if !ok {
		cacheMisses.Add(1)
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		slog.Debug("cache: undecodable entry", slog.String("key", key), slog.Any("error", err))
		var zero T
		return zero, false
	}
	cacheHits.Add(1)
	return out, true
}

// CacheStoreJSON caches v under key in both tiers.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	c := fetchCache.Load()
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.set(ctx, key, data)
}

// CacheStats returns the hit and miss counters.
func CacheStats() (hits, misses int64) {
	return cacheHits.Load(), cacheMisses.Load()
}

func (c *tieredCache) get(ctx context.Context, key string) ([]byte, bool) {
	now := time.Now()
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && now.After(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if ok {
		slog.Debug("cache: L1 hit", slog.String("key", key))
		return e.data, true
	}

	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	slog.Debug("cache: L2 hit", slog.String("key", key))
	c.storeL1(key, data, now)
	return data, true
}

func (c *tieredCache) set(ctx context.Context, key string, data []byte) {
	c.storeL1(key, data, time.Now())
	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Debug("cache: L2 set failed", slog.String("key", key), slog.Any("error", err))
		}
	}
}

// storeL1 inserts an entry, making room first when the cache is full.
func (c *tieredCache) storeL1(key string, data []byte, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = cacheEntry{data: data, expiresAt: now.Add(c.ttl)}
}

// evictLocked drops expired entries, then the entries closest to expiry,
// until one slot is free. Entries share a TTL, so earliest expiry is oldest.
func (c *tieredCache) evictLocked(now time.Time) {
	c.sweepLocked(now)
	for len(c.entries) >= c.maxEntries {
		var oldest string
		var oldestAt time.Time
		for k, e := range c.entries {
			if oldest == "" || e.expiresAt.Before(oldestAt) {
				oldest, oldestAt = k, e.expiresAt
			}
		}
		delete(c.entries, oldest)
	}
}

func (c *tieredCache) sweepLocked(now time.Time) {
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

func (c *tieredCache) sweepEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			c.sweepLocked(now)
			c.mu.Unlock()
		}
	}
}

func (c *tieredCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *tieredCache) close() {
	close(c.stop)
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
}
