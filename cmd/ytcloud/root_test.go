package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_ytcloud/internal/cloudserver"
	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/paging"
	"github.com/anatolykoptev/go_ytcloud/internal/engine/wordfreq"
	"github.com/anatolykoptev/go_ytcloud/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture serves two pages of titles and records whether a store was requested.
type fixture struct {
	store      store.Store
	wantStore  []bool
	searchCall int
}

func (f *fixture) search(_ context.Context, q paging.Query, token string) (paging.Page[engine.Video], error) {
	f.searchCall++
	if token == "" {
		return paging.Page[engine.Video]{
			Items:     []engine.Video{{ID: "a", Title: "Hello world"}},
			NextToken: "next",
		}, nil
	}
	return paging.Page[engine.Video]{Items: []engine.Video{{ID: "b", Title: "hello WORLD!!"}}}, nil
}

func (f *fixture) deps(_ context.Context, withStore bool) (cloudserver.Deps, func(), error) {
	f.wantStore = append(f.wantStore, withStore)
	d := cloudserver.Deps{
		Search: f.search,
		Uploads: func(id string) (paging.PageFunc[engine.Video], error) {
			if !strings.HasPrefix(id, "UC") {
				return nil, fmt.Errorf("invalid channel id %q", id)
			}
			return f.search, nil
		},
	}
	if withStore {
		d.Store = f.store
	}
	return d, func() {}, nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return &fixture{store: st}
}

func run(t *testing.T, f *fixture, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	root := newRootCmd(f.deps)
	root.SetOut(buf)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestSearchTable(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f, "search", "hello", "world")
	require.NoError(t, err)

	header, body, ok := strings.Cut(out, "\n")
	require.True(t, ok)
	assert.Equal(t, "hello world: 2 videos", header)
	hello, world := strings.Index(body, "hello"), strings.Index(body, "world")
	require.GreaterOrEqual(t, hello, 0)
	require.GreaterOrEqual(t, world, 0)
	assert.Less(t, hello, world, "tie keeps first occurrence")
	assert.Equal(t, 2, f.searchCall)
	assert.Equal(t, []bool{false}, f.wantStore, "store opened only for --save")
}

func TestSearchJSON(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f, "search", "minecraft", "--json", "--top", "1")
	require.NoError(t, err)

	var got engine.CloudOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "minecraft", got.Query)
	assert.Equal(t, 2, got.VideoCount)
	require.Len(t, got.Words, 1)
	assert.Equal(t, "hello", got.Words[0].Word)
	assert.Equal(t, 2, got.Words[0].Count)
}

func TestSearchRequiresTerm(t *testing.T) {
	_, err := run(t, newFixture(t), "search")
	assert.Error(t, err)
}

func TestSearchMaxPages(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f, "search", "x", "--max-pages", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "x: 1 videos")
	assert.Equal(t, 1, f.searchCall)
}

func TestSaveThenResample(t *testing.T) {
	f := newFixture(t)
	out, err := run(t, f, "channel", "UCabc", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "(sample 1)")

	out, err = run(t, f, "samples")
	require.NoError(t, err)
	assert.Contains(t, out, "UCabc")
	assert.Contains(t, out, store.KindChannel)

	out, err = run(t, f, "sample", "1", "--json")
	require.NoError(t, err)
	var got engine.CloudOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(1), got.SampleID)
	assert.Equal(t, 2, got.VideoCount)
	assert.Equal(t, 2, f.searchCall, "resampling does not fetch")
}

func TestChannelInvalidID(t *testing.T) {
	_, err := run(t, newFixture(t), "channel", "nope")
	assert.EqualError(t, err, `invalid channel id "nope"`)
}

func TestSampleErrors(t *testing.T) {
	f := newFixture(t)
	_, err := run(t, f, "sample", "abc")
	assert.EqualError(t, err, `invalid sample id "abc"`)

	_, err = run(t, f, "sample", "99")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSamplesEmpty(t *testing.T) {
	out, err := run(t, newFixture(t), "samples")
	require.NoError(t, err)
	assert.Contains(t, out, "no saved samples")
}

func TestPrintTables(t *testing.T) {
	a := &app{}

	buf := new(bytes.Buffer)
	err := a.printCloud(buf, engine.CloudOutput{
		Query:      "cats",
		VideoCount: 3,
		Words:      wordfreq.Ranking{{Word: "cats", Count: 3}, {Word: "funny", Count: 1}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "RANK")
	assert.Contains(t, buf.String(), "funny")

	buf.Reset()
	err = a.printSamples(buf, engine.SampleListOutput{Samples: []engine.SampleSummary{
		{ID: 7, Kind: store.KindSearch, Query: "cats", VideoCount: 3, CreatedAt: "2026-01-02T03:04:05Z"},
	}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "CREATED")
	assert.Contains(t, buf.String(), "2026-01-02T03:04:05Z")
}
