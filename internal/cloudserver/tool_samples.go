package cloudserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrNoStore is returned by the sample operations when no store is configured.
var ErrNoStore = errors.New("sample store is not configured")

func registerSampleCloud(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "word_cloud_sample",
		Description: "Re-rank the words of a previously saved sample without calling YouTube. Use word_cloud_samples to find sample IDs.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SampleCloudInput) (*mcp.CallToolResult, engine.CloudOutput, error) {
		out, err := d.SampleCloud(ctx, input)
		return nil, out, err
	})
}

// SampleCloud re-ranks a stored sample. It needs d.Store.
func (d Deps) SampleCloud(ctx context.Context, input engine.SampleCloudInput) (engine.CloudOutput, error) {
	if input.ID <= 0 {
		return engine.CloudOutput{}, errors.New("id is required")
	}
	if d.Store == nil {
		return engine.CloudOutput{}, ErrNoStore
	}
	engine.IncrSampleRequests()

	s, err := d.Store.Get(ctx, input.ID)
	if err != nil {
		return engine.CloudOutput{}, fmt.Errorf("load sample: %w", err)
	}
	out := engine.RankVideos(s.Query, s.Videos, engine.NormLimit(input.TopK, engine.Cfg.TopK))
	out.SampleID = s.ID
	return out, nil
}

func registerSampleList(server *mcp.Server, d Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "word_cloud_samples",
		Description: "List saved word cloud samples, newest first, with their kind, query and video count.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input engine.SampleListInput) (*mcp.CallToolResult, engine.SampleListOutput, error) {
		out, err := d.SampleList(ctx, input)
		return nil, out, err
	})
}

// SampleList summarises stored samples. It needs d.Store.
func (d Deps) SampleList(ctx context.Context, input engine.SampleListInput) (engine.SampleListOutput, error) {
	if d.Store == nil {
		return engine.SampleListOutput{}, ErrNoStore
	}
	samples, err := d.Store.List(ctx, input.Limit)
	if err != nil {
		return engine.SampleListOutput{}, fmt.Errorf("list samples: %w", err)
	}
	return engine.SampleListOutput{Samples: samples}, nil
}
