// Package cloudserver exposes the word cloud pipeline as MCP tools.
package cloudserver

import (
	"context"
	"log/slog"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
	"github.com/anatolykoptev/go_ytcloud/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Deps are the capabilities the tools run against. main wires them from a
// sources.Searcher and a store.Store; tests substitute scripted fetchers.
type Deps struct {
	Search  paging.PageFunc[engine.Video]
	Backend string // search backend name, part of the cache key
	Uploads func(channelID string) (paging.PageFunc[engine.Video], error)
	Store   store.Store // nil disables save and the sample tools
}

// RegisterTools registers youtube_word_cloud, channel_word_cloud,
// word_cloud_sample and word_cloud_samples on the given MCP server.
func RegisterTools(server *mcp.Server, d Deps) {
	registerWordCloud(server, d)
	registerChannelCloud(server, d)
	if d.Store == nil {
		slog.Info("sample store disabled, skipping sample tools")
		return
	}
	registerSampleCloud(server, d)
	registerSampleList(server, d)
}

// saveSample stores videos when requested; a failed save is logged and the
// cloud is still returned.
func (d Deps) saveSample(ctx context.Context, kind, query string, out *engine.CloudOutput) {
	if d.Store == nil {
		slog.Warn("save requested but sample store is disabled", slog.String("query", query))
		return
	}
	id, err := d.Store.Save(ctx, store.Sample{Kind: kind, Query: query, Videos: out.Videos})
	if err != nil {
		slog.Warn("sample save failed", slog.String("query", query), slog.Any("error", err))
		return
	}
	engine.IncrSamplesSaved()
	out.SampleID = id
}

// limits resolves the tool's max_pages and top_k: 0 picks the configured
// default and -1 lifts the cap.
func limits(maxPages, k int) (pages, top int) {
	return engine.NormLimit(maxPages, engine.Cfg.YouTubeMaxPages), engine.NormLimit(k, engine.Cfg.TopK)
}
