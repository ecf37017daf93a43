package sources

import (
	"context"
	"time"

	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
	"golang.org/x/time/rate"
)

// Throttle makes fn wait for lim before every page request. A nil limiter returns fn unchanged.
func Throttle[T any](fn paging.PageFunc[T], lim *rate.Limiter) paging.PageFunc[T] {
	if lim == nil {
		return fn
	}
	return func(ctx context.Context, q paging.Query, token string) (paging.Page[T], error) {
		if err := lim.Wait(ctx); err != nil {
			return paging.Page[T]{}, err
		}
		return fn(ctx, q, token)
	}
}

// Timeout bounds every page request of fn by d. d <= 0 returns fn unchanged.
func Timeout[T any](fn paging.PageFunc[T], d time.Duration) paging.PageFunc[T] {
	if d <= 0 {
		return fn
	}
	return func(ctx context.Context, q paging.Query, token string) (paging.Page[T], error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return fn(ctx, q, token)
	}
}

// NewLimiter builds a limiter for rps requests per second (burst 1); rps <= 0 disables limiting.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}
