package engine

import "github.com/anatolykoptev/go_ytcloud/internal/engine/wordfreq"

// Video is a single search or playlist result.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	ChannelTitle string `json:"channel_title,omitempty"`
	PublishedAt  string `json:"published_at,omitempty"`
	URL          string `json:"url"`
}

// VideoURL builds the watch URL for a video ID.
func VideoURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Titles extracts the title of each video, keeping order.
func Titles(videos []Video) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.Title
	}
	return out
}

// --- MCP tool inputs ---

// WordCloudInput is the input for the youtube_word_cloud tool.
type WordCloudInput struct {
	Query    string `json:"query" jsonschema:"Search term, e.g. 'minecraft'"`
	Order    string `json:"order,omitempty" jsonschema:"Result order: viewCount (default), date, rating, relevance, title, videoCount"`
	Type     string `json:"type,omitempty" jsonschema:"Result type filter: video (default), channel, playlist"`
	PageSize int    `json:"page_size,omitempty" jsonschema:"Results per page, 1-50 (default: 50)"`
	MaxPages int    `json:"max_pages,omitempty" jsonschema:"Max pages to follow (default: 2, -1: until exhausted)"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"Number of ranked words to return (default: 50, -1: all)"`
	Save     bool   `json:"save,omitempty" jsonschema:"Store the fetched titles as a sample for later re-analysis"`
}

// ChannelCloudInput is the input for the channel_word_cloud tool.
type ChannelCloudInput struct {
	ChannelID string `json:"channel_id" jsonschema:"Channel ID starting with UC"`
	MaxPages  int    `json:"max_pages,omitempty" jsonschema:"Max pages of uploads to follow (default: 2, -1: until exhausted)"`
	TopK      int    `json:"top_k,omitempty" jsonschema:"Number of ranked words to return (default: 50, -1: all)"`
	Save      bool   `json:"save,omitempty" jsonschema:"Store the fetched titles as a sample for later re-analysis"`
}

// SampleCloudInput is the input for the word_cloud_sample tool.
type SampleCloudInput struct {
	ID   int64 `json:"id" jsonschema:"Sample ID returned by a previous save"`
	TopK int   `json:"top_k,omitempty" jsonschema:"Number of ranked words to return (default: 50, -1: all)"`
}

// SampleListInput is the input for the word_cloud_samples tool.
type SampleListInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max samples to list (default: 20, at most 100)"`
}

// --- Output types ---

// CloudOutput is the structured output of the word cloud tools.
type CloudOutput struct {
	Query      string           `json:"query"`
	VideoCount int              `json:"video_count"`
	Words      wordfreq.Ranking `json:"words"`
	SampleID   int64            `json:"sample_id,omitempty"`
	Videos     []Video          `json:"-"`
}

// SampleSummary describes one stored sample.
type SampleSummary struct {
	ID         int64  `json:"id"`
	Kind       string `json:"kind"`
	Query      string `json:"query"`
	VideoCount int    `json:"video_count"`
	CreatedAt  string `json:"created_at"`
}

// SampleListOutput is the structured output of word_cloud_samples.
type SampleListOutput struct {
	Samples []SampleSummary `json:"samples"`
}
