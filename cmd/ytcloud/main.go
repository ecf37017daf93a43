// Command ytcloud builds YouTube title word clouds from the terminal.
//
// It shares the MCP server's pipeline and environment configuration
// (YOUTUBE_API_KEY, REDIS_URL, DATABASE_URL, SAMPLES_DB, ...).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go_ytcloud/internal/cloudserver"
	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/sources"
	"github.com/anatolykoptev/go_ytcloud/internal/store"
)

var version = "dev"

func main() {
	if err := newRootCmd(envDeps).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// envDeps wires the real YouTube backends from the environment. The sample
// store is opened only when withStore is set.
func envDeps(ctx context.Context, withStore bool) (cloudserver.Deps, func(), error) {
	engine.InitFromEnv()

	searcher, err := sources.NewSearcher(ctx)
	if err != nil {
		engine.CloseCache()
		return cloudserver.Deps{}, nil, fmt.Errorf("youtube client: %w", err)
	}
	d := cloudserver.Deps{Search: searcher.Search, Backend: searcher.Backend, Uploads: searcher.Uploads}
	if !withStore {
		return d, engine.CloseCache, nil
	}

	st, err := store.Open(ctx, env.Str("DATABASE_URL", ""), env.Str("SAMPLES_DB", ""))
	if err != nil {
		engine.CloseCache()
		return cloudserver.Deps{}, nil, fmt.Errorf("sample store: %w", err)
	}
	d.Store = st
	return d, func() {
		st.Close()
		engine.CloseCache()
	}, nil
}
