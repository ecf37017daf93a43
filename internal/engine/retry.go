package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"google.golang.org/api/googleapi"
)

// RetryConfig controls retry behavior for a single page request.
type RetryConfig struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig suits the Data API and Innertube.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:  3,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     10 * time.Second,
	Multiplier:  2.0,
}

// backoff is the wait before retry attempt+1, capped at MaxWait.
// A server-supplied Retry-After wins when it is shorter than MaxWait.
func (rc RetryConfig) backoff(attempt int, err error) time.Duration {
	if after := retryAfter(err); after > 0 {
		return min(after, rc.MaxWait)
	}
	wait := time.Duration(float64(rc.InitialWait) * math.Pow(rc.Multiplier, float64(attempt)))
	return min(wait, rc.MaxWait)
}

// RetryDo calls fn until it succeeds, fails permanently or rc.MaxRetries retries are spent.
func RetryDo[T any](ctx context.Context, rc RetryConfig, fn func() (T, error)) (T, error) {
	var zero T
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		result, err := fn()
		if err == nil {
			return result, nil
		}
		if attempt >= rc.MaxRetries || !isRetryable(err) {
			return zero, err
		}

		wait := rc.backoff(attempt, err)
		slog.Debug("youtube: retrying request",
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		}
	}
}

// HTTPStatusError reports a non-OK response from a raw HTTP endpoint (Innertube).
type HTTPStatusError struct {
	StatusCode int
	Body       string
	Header     http.Header
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// StatusCode extracts an HTTP status from a googleapi or raw HTTP error; 0 if none.
func StatusCode(err error) int {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	var hErr *HTTPStatusError
	if errors.As(err, &hErr) {
		return hErr.StatusCode
	}
	return 0
}

// rateLimitReasons are 403 reasons the Data API uses for short-term throttling.
// quotaExceeded is not among them: the daily quota does not recover by waiting.
var rateLimitReasons = map[string]bool{
	"rateLimitExceeded":     true,
	"userRateLimitExceeded": true,
}

// isRetryable reports transient failures: throttling, 5xx and network errors.
func isRetryable(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusForbidden {
		for _, item := range gErr.Errors {
			if rateLimitReasons[item.Reason] {
				return true
			}
		}
		return false
	}
	if code := StatusCode(err); code != 0 {
		return isRetryableStatus(code)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// net.Error also matches OpError, so it goes last.
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryAfter reads a Retry-After header given in seconds; 0 if absent.
func retryAfter(err error) time.Duration {
	var h http.Header
	var gErr *googleapi.Error
	var hErr *HTTPStatusError
	switch {
	case errors.As(err, &gErr):
		h = gErr.Header
	case errors.As(err, &hErr):
		h = hErr.Header
	}
	secs, perr := strconv.Atoi(h.Get("Retry-After"))
	if perr != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
