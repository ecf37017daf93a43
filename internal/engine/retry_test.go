package engine

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

var fastRetry = RetryConfig{MaxRetries: 2, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}

func apiError(code int, reason string) *googleapi.Error {
	e := &googleapi.Error{Code: code}
	if reason != "" {
		e.Errors = []googleapi.ErrorItem{{Reason: reason}}
	}
	return e
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"innertube 429", &HTTPStatusError{StatusCode: 429}, true},
		{"innertube 400", &HTTPStatusError{StatusCode: 400}, false},
		{"data api 503", apiError(503, "backendError"), true},
		{"quota exceeded", apiError(403, "quotaExceeded"), false},
		{"key forbidden", apiError(403, "forbidden"), false},
		{"rate limited", apiError(403, "rateLimitExceeded"), true},
		{"user rate limited", fmt.Errorf("search: %w", apiError(403, "userRateLimitExceeded")), true},
		{"bad request", apiError(400, "invalidParameter"), false},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"dns timeout", &net.DNSError{IsTimeout: true}, true},
		{"plain", errors.New("decode"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 403, StatusCode(fmt.Errorf("wrap: %w", apiError(403, ""))))
	assert.Equal(t, 502, StatusCode(&HTTPStatusError{StatusCode: 502}))
	assert.Zero(t, StatusCode(errors.New("plain")))
}

func TestHTTPStatusErrorMessage(t *testing.T) {
	assert.EqualError(t, &HTTPStatusError{StatusCode: 500}, "HTTP 500")
	assert.EqualError(t, &HTTPStatusError{StatusCode: 400, Body: "bad continuation"}, "HTTP 400: bad continuation")
}

func TestBackoff(t *testing.T) {
	rc := RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 3 * time.Second, Multiplier: 2}
	plain := errors.New("x")
	assert.Equal(t, 100*time.Millisecond, rc.backoff(0, plain))
	assert.Equal(t, 400*time.Millisecond, rc.backoff(2, plain))
	assert.Equal(t, 3*time.Second, rc.backoff(10, plain))

	throttled := &HTTPStatusError{StatusCode: 429, Header: http.Header{"Retry-After": []string{"2"}}}
	assert.Equal(t, 2*time.Second, rc.backoff(0, throttled))
	throttled.Header.Set("Retry-After", "60")
	assert.Equal(t, 3*time.Second, rc.backoff(0, throttled), "Retry-After capped at MaxWait")
	throttled.Header.Set("Retry-After", "Wed, 21 Oct 2026 07:28:00 GMT")
	assert.Equal(t, 100*time.Millisecond, rc.backoff(0, throttled), "HTTP-date ignored")
}

func TestRetryDo(t *testing.T) {
	tests := []struct {
		name      string
		failures  []error // returned in order before succeeding
		wantCalls int
		wantErr   bool
	}{
		{"first try", nil, 1, false},
		{"recovers from 503", []error{apiError(503, ""), apiError(503, "")}, 3, false},
		{"exhausted", []error{&HTTPStatusError{StatusCode: 502}, &HTTPStatusError{StatusCode: 502}, &HTTPStatusError{StatusCode: 502}}, 3, true},
		{"quota is permanent", []error{apiError(403, "quotaExceeded")}, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got, err := RetryDo(context.Background(), fastRetry, func() (string, error) {
				calls++
				if calls <= len(tt.failures) {
					return "", tt.failures[calls-1]
				}
				return "page", nil
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.failures[calls-1])
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "page", got)
		})
	}
}

func TestRetryDoContextCanceled(t *testing.T) {
	rc := RetryConfig{MaxRetries: 5, InitialWait: time.Second, MaxWait: time.Second, Multiplier: 1}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := RetryDo(ctx, rc, func() (string, error) {
		calls++
		cancel()
		return "", &HTTPStatusError{StatusCode: 503}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
