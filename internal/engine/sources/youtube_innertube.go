package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
)

// YouTube Innertube search, the keyless fallback used when no Data API key is configured.
// Pagination follows continuationCommand tokens; page size is decided by YouTube (about 20).

const (
	ytInnertubeSearchURL = "https://www.youtube.com/youtubei/v1/search"
	ytWebVersion         = "2.20250222.10.00"
)

// Search filter params (base64 protobuf) keyed by order, videos only.
var ytOrderParams = map[string]string{
	"date":      "CAISAhAB",
	"rating":    "CAESAhAB",
	"viewCount": "CAMSAhAB",
	"relevance": "EgIQAQ==",
}

// Type-only filters for non-video searches.
var ytTypeParams = map[string]string{
	"channel":  "EgIQAg==",
	"playlist": "EgIQAw==",
}

// Innertube fetches search pages from the internal YouTube web API.
type Innertube struct {
	client      *http.Client
	endpoint    string
	visitorData string
	retry       engine.RetryConfig
}

// NewInnertube builds a keyless search client. A nil client uses engine.Cfg.HTTPClient.
func NewInnertube(client *http.Client) *Innertube {
	if client == nil {
		client = engine.Cfg.HTTPClient
	}
	return &Innertube{
		client:      client,
		endpoint:    ytInnertubeSearchURL,
		visitorData: generateVisitorData(),
		retry:       engine.DefaultRetryConfig,
	}
}

// searchParams picks the filter for q. Non-video types ignore the order.
func searchParams(q paging.Query) string {
	if p, ok := ytTypeParams[q.Type]; ok {
		return p
	}
	if p, ok := ytOrderParams[q.Order]; ok {
		return p
	}
	return ytOrderParams["relevance"]
}

// SearchPage fetches the first results page (token "") or a continuation.
func (it *Innertube) SearchPage(ctx context.Context, q paging.Query, token string) (paging.Page[engine.Video], error) {
	payload := map[string]any{"context": ytWebContext(it.visitorData)}
	if token == "" {
		payload["query"] = q.Text
		payload["params"] = searchParams(q)
	} else {
		payload["continuation"] = token
	}

	body, err := it.post(ctx, payload)
	if err != nil {
		engine.IncrInnertubeError()
		return paging.Page[engine.Video]{}, fmt.Errorf("innertube search: %w", err)
	}
	page, err := parseInnertubeSearch(body)
	if err != nil {
		engine.IncrInnertubeError()
		return paging.Page[engine.Video]{}, fmt.Errorf("innertube search: %w", err)
	}
	engine.IncrInnertubePage()
	return page, nil
}

// post sends payload with WEB client headers through engine.RetryDo.
func (it *Innertube) post(ctx context.Context, payload any) ([]byte, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return engine.RetryDo(ctx, it.retry, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, it.endpoint+"?prettyPrint=false", bytes.NewReader(bodyBytes))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "*/*")
		req.Header.Set("User-Agent", stealth.RandomUserAgent())
		req.Header.Set("X-Youtube-Client-Name", "1")
		req.Header.Set("X-Youtube-Client-Version", ytWebVersion)
		req.Header.Set("X-Goog-Visitor-Id", it.visitorData)
		req.Header.Set("Origin", "https://www.youtube.com")
		req.Header.Set("Referer", "https://www.youtube.com/")

		resp, err := it.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
			return nil, &engine.HTTPStatusError{StatusCode: resp.StatusCode, Body: string(snippet), Header: resp.Header}
		}
		return io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	})
}

// generateVisitorData creates a random 11-char visitor ID for Innertube requests.
func generateVisitorData() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	b := make([]byte, 11)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))] //nolint:gosec // non-cryptographic use
	}
	return string(b)
}

// ytWebContext builds the standard WEB client context for Innertube payloads.
func ytWebContext(visitorData string) map[string]any {
	return map[string]any{
		"client": map[string]any{
			"clientName":    "WEB",
			"clientVersion": ytWebVersion,
			"visitorData":   visitorData,
			"hl":            "en",
			"gl":            "US",
		},
		"user":    map[string]any{"enableSafetyMode": false},
		"request": map[string]any{"useSsl": true},
	}
}

// --- response walking ---

type ytRuns struct {
	Runs       []struct{ Text string } `json:"runs"`
	SimpleText string                  `json:"simpleText"`
}

func (r ytRuns) text() string {
	if r.SimpleText != "" {
		return r.SimpleText
	}
	var sb strings.Builder
	for _, run := range r.Runs {
		sb.WriteString(run.Text)
	}
	return sb.String()
}

type ytVideoRenderer struct {
	VideoID           string `json:"videoId"`
	Title             ytRuns `json:"title"`
	OwnerText         ytRuns `json:"ownerText"`
	PublishedTimeText ytRuns `json:"publishedTimeText"`
}

type ytContinuationItem struct {
	ContinuationEndpoint struct {
		ContinuationCommand struct {
			Token string `json:"token"`
		} `json:"continuationCommand"`
	} `json:"continuationEndpoint"`
}

// parseInnertubeSearch walks the response for videoRenderer entries and the continuation token.
// Object keys are visited in sorted order so results are deterministic; array order is kept.
func parseInnertubeSearch(data []byte) (paging.Page[engine.Video], error) {
	var page paging.Page[engine.Video]
	if !json.Valid(data) {
		return page, fmt.Errorf("invalid JSON response")
	}

	var walk func(v json.RawMessage)
	walk = func(v json.RawMessage) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(v, &obj); err == nil {
			if raw, ok := obj["videoRenderer"]; ok {
				var vr ytVideoRenderer
				if err := json.Unmarshal(raw, &vr); err == nil && vr.VideoID != "" {
					page.Items = append(page.Items, engine.Video{
						ID:           vr.VideoID,
						Title:        vr.Title.text(),
						ChannelTitle: vr.OwnerText.text(),
						PublishedAt:  vr.PublishedTimeText.text(),
						URL:          engine.VideoURL(vr.VideoID),
					})
				}
				return
			}
			if raw, ok := obj["continuationItemRenderer"]; ok {
				var ci ytContinuationItem
				if err := json.Unmarshal(raw, &ci); err == nil && page.NextToken == "" {
					page.NextToken = ci.ContinuationEndpoint.ContinuationCommand.Token
				}
				return
			}
			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(obj[k])
			}
			return
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(v, &arr); err == nil {
			for _, item := range arr {
				walk(item)
			}
		}
	}
	walk(data)
	return page, nil
}
