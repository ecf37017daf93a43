// go_ytcloud: YouTube title word cloud MCP server.
//
// Exposes youtube_word_cloud and channel_word_cloud, plus word_cloud_sample and
// word_cloud_samples when a sample store is available.
// Runs as HTTP MCP server or stdio transport.
package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_ytcloud/internal/cloudserver"
	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/sources"
	"github.com/anatolykoptev/go_ytcloud/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	ctx := context.Background()
	engine.InitFromEnv()
	defer engine.CloseCache()

	searcher, err := sources.NewSearcher(ctx)
	if err != nil {
		slog.Error("youtube client init failed", slog.Any("error", err))
		return
	}
	deps := cloudserver.Deps{Search: searcher.Search, Backend: searcher.Backend, Uploads: searcher.Uploads}

	st, err := store.Open(ctx, env.Str("DATABASE_URL", ""), env.Str("SAMPLES_DB", ""))
	if err != nil {
		slog.Warn("sample store init failed, saving disabled", slog.Any("error", err))
	} else {
		defer st.Close()
		deps.Store = st
	}

	slog.Info("starting go_ytcloud",
		slog.String("port", mcpPort),
		slog.String("backend", searcher.Backend),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytcloud",
		Version: version,
	}, nil)

	cloudserver.RegisterTools(server, deps)

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_ytcloud",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}
