package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleVideos = []engine.Video{
	{ID: "v1", Title: "Minecraft SPEEDRUN", URL: engine.VideoURL("v1")},
	{ID: "v2", Title: "minecraft, but...", ChannelTitle: "Dream", URL: engine.VideoURL("v2")},
}

// exerciseStore runs the same contract against any backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	created := time.Date(2023, 5, 28, 12, 0, 0, 0, time.UTC)
	id1, err := s.Save(ctx, Sample{Kind: KindSearch, Query: "minecraft", Videos: sampleVideos, CreatedAt: created})
	require.NoError(t, err)
	id2, err := s.Save(ctx, Sample{Kind: KindChannel, Query: "UCabc"})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	got, err := s.Get(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, id1, got.ID)
	assert.Equal(t, KindSearch, got.Kind)
	assert.Equal(t, "minecraft", got.Query)
	assert.Equal(t, sampleVideos, got.Videos)
	assert.True(t, created.Equal(got.CreatedAt), "created_at round-trips: %v", got.CreatedAt)

	empty, err := s.Get(ctx, id2)
	require.NoError(t, err)
	assert.Empty(t, empty.Videos)
	assert.False(t, empty.CreatedAt.IsZero(), "zero CreatedAt defaults to now")

	_, err = s.Get(ctx, id2+100)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id2, list[0].ID, "newest first")
	assert.Equal(t, engine.SampleSummary{
		ID:         id1,
		Kind:       KindSearch,
		Query:      "minecraft",
		VideoCount: 2,
		CreatedAt:  "2023-05-28T12:00:00Z",
	}, list[1])

	limited, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	huge, err := s.List(ctx, 1<<60)
	require.NoError(t, err)
	assert.Len(t, huge, 2)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "samples.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	exerciseStore(t, s)
}

func TestListLimit(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultListLimit},
		{-5, DefaultListLimit},
		{7, 7},
		{MaxListLimit, MaxListLimit},
		{MaxListLimit + 1, MaxListLimit},
		{1 << 60, MaxListLimit},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, listLimit(tt.in), "listLimit(%d)", tt.in)
	}
}

func TestSQLiteListClampsLimit(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	for i := 0; i < MaxListLimit+5; i++ {
		_, err := s.Save(ctx, Sample{Kind: KindSearch, Query: "q"})
		require.NoError(t, err)
	}
	list, err := s.List(ctx, 1<<60)
	require.NoError(t, err)
	assert.Len(t, list, MaxListLimit)
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	id, err := s.Save(context.Background(), Sample{Kind: KindSearch, Query: "persist", Videos: sampleVideos})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "persist", got.Query)
}

func TestOpenDefaultsToSQLite(t *testing.T) {
	st, err := Open(context.Background(), "", filepath.Join(t.TempDir(), "s.db"))
	require.NoError(t, err)
	defer st.Close()
	_, ok := st.(*SQLite)
	assert.True(t, ok)
}

// Set YTCLOUD_TEST_DATABASE_URL=postgres://... to run against a real server.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("YTCLOUD_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("YTCLOUD_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	st, err := Open(ctx, dsn, "")
	require.NoError(t, err)
	defer st.Close()

	pg, ok := st.(*Postgres)
	require.True(t, ok)
	_, err = pg.pool.Exec(ctx, "TRUNCATE samples RESTART IDENTITY")
	require.NoError(t, err)
	exerciseStore(t, st)
}
