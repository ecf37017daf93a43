package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	CloudRequests    atomic.Int64
	ChannelRequests  atomic.Int64
	SampleRequests   atomic.Int64
	DataAPIPages     atomic.Int64
	DataAPIErrors    atomic.Int64
	InnertubePages   atomic.Int64
	InnertubeErrors  atomic.Int64
	VideosAggregated atomic.Int64
	SamplesSaved     atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"cloud_requests", "channel_requests", "sample_requests",
	"data_api_pages", "data_api_errors",
	"innertube_pages", "innertube_errors",
	"videos_aggregated", "samples_saved",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"cloud_requests":    metrics.CloudRequests.Load(),
		"channel_requests":  metrics.ChannelRequests.Load(),
		"sample_requests":   metrics.SampleRequests.Load(),
		"data_api_pages":    metrics.DataAPIPages.Load(),
		"data_api_errors":   metrics.DataAPIErrors.Load(),
		"innertube_pages":   metrics.InnertubePages.Load(),
		"innertube_errors":  metrics.InnertubeErrors.Load(),
		"videos_aggregated": metrics.VideosAggregated.Load(),
		"samples_saved":     metrics.SamplesSaved.Load(),
		"cache_hits":        hits,
		"cache_misses":      misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the tool layer.
func IncrCloudRequests()   { metrics.CloudRequests.Add(1) }
func IncrChannelRequests() { metrics.ChannelRequests.Add(1) }
func IncrSampleRequests()  { metrics.SampleRequests.Add(1) }
func IncrSamplesSaved()    { metrics.SamplesSaved.Add(1) }

// Incrementors for sources/ sub-package.
func IncrDataAPIPage()    { metrics.DataAPIPages.Add(1) }
func IncrDataAPIError()   { metrics.DataAPIErrors.Add(1) }
func IncrInnertubePage()  { metrics.InnertubePages.Add(1) }
func IncrInnertubeError() { metrics.InnertubeErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
