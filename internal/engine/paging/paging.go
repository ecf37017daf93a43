// Package paging follows continuation tokens of a cursor-paginated list API
// and flattens every page into one ordered slice.
package paging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// MaxPageSize is the largest page the YouTube Data API accepts.
const MaxPageSize = 50

// ErrInvalidPageSize is returned by Query.Validate for a page size outside 1..MaxPageSize.
var ErrInvalidPageSize = errors.New("page size out of range")

// Query describes one search. It is passed by value and never modified while pages are fetched.
type Query struct {
	Text     string // free-text search term
	Order    string // result ordering key, e.g. "viewCount", "date", "relevance"
	PageSize int    // items requested per page, 1..MaxPageSize
	Type     string // result type filter, e.g. "video"
}

// Validate checks the page size bound.
func (q Query) Validate() error {
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidPageSize, q.PageSize, MaxPageSize)
	}
	return nil
}

// Page is one fetched page. An empty NextToken means there are no more pages.
type Page[T any] struct {
	Items     []T
	NextToken string
}

// PageFunc fetches the page identified by token; token is "" for the first page.
type PageFunc[T any] func(ctx context.Context, q Query, token string) (Page[T], error)

type options struct {
	maxPages int
}

// Option tunes FetchAll.
type Option func(*options)

// WithMaxPages stops after n pages even if a continuation token remains.
// n <= 0 means unbounded.
func WithMaxPages(n int) Option {
	return func(o *options) { o.maxPages = n }
}

// FetchAll requests pages one at a time, forwarding each continuation token verbatim,
// until a page arrives without a token (or the page cap is hit).
// Items keep page order, then in-page order. Nothing is deduplicated.
// A fetch error is returned as is and the items gathered so far are dropped.
func FetchAll[T any](ctx context.Context, q Query, fetch PageFunc[T], opts ...Option) ([]T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	items := make([]T, 0)
	token := ""
	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := fetch(ctx, q, token)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		slog.Debug("paging: page fetched",
			slog.String("query", q.Text),
			slog.Int("page", n),
			slog.Int("items", len(page.Items)),
			slog.Bool("more", page.NextToken != ""))

		if page.NextToken == "" {
			return items, nil
		}
		if o.maxPages > 0 && n >= o.maxPages {
			return items, nil
		}
		token = page.NextToken
	}
}
