package sources

import (
	"context"
	"testing"
	"time"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func countingPages(n int, calls *int) paging.PageFunc[int] {
	return func(_ context.Context, _ paging.Query, token string) (paging.Page[int], error) {
		*calls++
		next := ""
		if *calls < n {
			next = "more"
		}
		return paging.Page[int]{Items: []int{*calls}, NextToken: next}, nil
	}
}

func TestThrottleNilLimiter(t *testing.T) {
	calls := 0
	fn := Throttle(countingPages(3, &calls), nil)
	items, err := paging.FetchAll(context.Background(), paging.Query{PageSize: 1}, fn)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)
}

func TestThrottleSpacesRequests(t *testing.T) {
	calls := 0
	lim := rate.NewLimiter(rate.Every(20*time.Millisecond), 1)
	fn := Throttle(countingPages(3, &calls), lim)

	start := time.Now()
	_, err := paging.FetchAll(context.Background(), paging.Query{PageSize: 1}, fn)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond, "3 requests at burst 1 wait twice")
}

func TestThrottleCanceled(t *testing.T) {
	calls := 0
	lim := rate.NewLimiter(rate.Every(time.Hour), 1)
	lim.Allow() // drain the burst
	fn := Throttle(countingPages(3, &calls), lim)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := fn(ctx, paging.Query{PageSize: 1}, "")
	assert.Error(t, err)
	assert.Zero(t, calls)
}

func TestTimeout(t *testing.T) {
	slow := func(ctx context.Context, _ paging.Query, _ string) (paging.Page[int], error) {
		<-ctx.Done()
		return paging.Page[int]{}, ctx.Err()
	}
	_, err := Timeout(slow, 10*time.Millisecond)(context.Background(), paging.Query{PageSize: 1}, "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	calls := 0
	fn := countingPages(1, &calls)
	_, err = Timeout(fn, 0)(context.Background(), paging.Query{PageSize: 1}, "")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestNewLimiter(t *testing.T) {
	assert.Nil(t, NewLimiter(0))
	assert.Nil(t, NewLimiter(-1))
	lim := NewLimiter(5)
	require.NotNil(t, lim)
	assert.Equal(t, rate.Limit(5), lim.Limit())
}

func TestNewSearcherBackends(t *testing.T) {
	prev := *engine.Cfg
	t.Cleanup(func() { engine.Init(prev) })

	engine.Init(engine.Config{})
	s, err := NewSearcher(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "innertube", s.Backend)
	_, err = s.Uploads("UCabc")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	engine.Init(engine.Config{YouTubeAPIKey: "k", YouTubeRPS: 2})
	s, err = NewSearcher(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "data_api", s.Backend)
	_, err = s.Uploads("PLnope")
	assert.ErrorIs(t, err, ErrInvalidChannelID)
	fn, err := s.Uploads("UCabc")
	require.NoError(t, err)
	assert.NotNil(t, fn)
}
