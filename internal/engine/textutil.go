package engine

import (
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// UserAgentBot is appended to the Data API client's User-Agent.
const UserAgentBot = "GoYTCloud/1.0"

var validOrders = map[string]string{
	"date":       "date",
	"rating":     "rating",
	"relevance":  "relevance",
	"title":      "title",
	"videocount": "videoCount",
	"viewcount":  "viewCount",
}

// NormOrder maps a user-supplied order onto the Data API spelling.
// Empty or unknown values fall back to the configured default.
func NormOrder(order string) string {
	if o, ok := validOrders[strings.ToLower(strings.TrimSpace(order))]; ok {
		return o
	}
	return cfg.YouTubeOrder
}

// NormType normalises a result type filter: empty → configured default.
func NormType(typ string) string {
	typ = strings.ToLower(strings.TrimSpace(typ))
	switch typ {
	case "video", "channel", "playlist":
		return typ
	}
	return cfg.YouTubeType
}

// NormLimit resolves a tool limit: 0 → def, negative → 0 (no limit).
func NormLimit(n, def int) int {
	switch {
	case n < 0:
		return 0
	case n == 0:
		return def
	}
	return n
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
