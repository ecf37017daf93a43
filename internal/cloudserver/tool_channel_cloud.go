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

func registerChannelCloud(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "channel_word_cloud",
		Description: "Rank the words in the titles of a YouTube channel's uploads, newest first, following playlist pages up to max_pages. Requires a channel ID starting with UC and a configured YOUTUBE_API_KEY.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.ChannelCloudInput) (*mcp.CallToolResult, engine.CloudOutput, error) {
		out, err := d.ChannelCloud(ctx, input)
		return nil, out, err
	})
}

// ChannelCloud ranks the title words of a channel's uploads.
func (d Deps) ChannelCloud(ctx context.Context, input engine.ChannelCloudInput) (engine.CloudOutput, error) {
	input.ChannelID = strings.TrimSpace(input.ChannelID)
	if input.ChannelID == "" {
		return engine.CloudOutput{}, errors.New("channel_id is required")
	}
	if d.Uploads == nil {
		return engine.CloudOutput{}, errors.New("channel uploads are not available")
	}
	engine.IncrChannelRequests()

	fetch, err := d.Uploads(input.ChannelID)
	if err != nil {
		return engine.CloudOutput{}, err
	}
	pages, k := limits(input.MaxPages, input.TopK)
	q := paging.Query{Text: input.ChannelID, PageSize: paging.MaxPageSize}

	out, err := engine.BuildCloud(ctx, q, fetch, engine.CloudOpts{
		MaxPages: pages,
		TopK:     k,
		CacheKey: engine.CacheKey("channel_word_cloud", q.Text, strconv.Itoa(pages)),
	})
	if err != nil {
		return engine.CloudOutput{}, fmt.Errorf("channel uploads: %w", err)
	}
	if input.Save {
		d.saveSample(ctx, store.KindChannel, q.Text, &out)
	}
	return out, nil
}
