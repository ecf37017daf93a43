package cloudserver

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
	"github.com/anatolykoptev/go_ytcloud/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerWordCloud(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_word_cloud",
		Description: "Search YouTube for a term, aggregate the titles of the matching videos across result pages and rank the words in them by frequency. Returns the ranked word list a word cloud is drawn from. Supports order (viewCount, date, rating, relevance), result type, page size and a page cap.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.WordCloudInput) (*mcp.CallToolResult, engine.CloudOutput, error) {
		out, err := d.WordCloud(ctx, input)
		return nil, out, err
	})
}

// WordCloud searches for input.Query and ranks the title words of the results.
func (d Deps) WordCloud(ctx context.Context, input engine.WordCloudInput) (engine.CloudOutput, error) {
	input.Query = strings.TrimSpace(input.Query)
	if input.Query == "" {
		return engine.CloudOutput{}, errors.New("query is required")
	}
	engine.IncrCloudRequests()

	q := paging.Query{
		Text:     input.Query,
		Order:    engine.NormOrder(input.Order),
		Type:     engine.NormType(input.Type),
		PageSize: engine.NormLimit(input.PageSize, engine.Cfg.YouTubePageSize),
	}
	pages, k := limits(input.MaxPages, input.TopK)

	out, err := engine.BuildCloud(ctx, q, d.Search, engine.CloudOpts{
		MaxPages: pages,
		TopK:     k,
		CacheKey: engine.CacheKey("youtube_word_cloud", d.Backend, q.Text, q.Order, q.Type, strconv.Itoa(q.PageSize), strconv.Itoa(pages)),
	})
	if err != nil {
		return engine.CloudOutput{}, fmt.Errorf("youtube search: %w", err)
	}
	if input.Save {
		d.saveSample(ctx, store.KindSearch, q.Text, &out)
	}
	return out, nil
}
