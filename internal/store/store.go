// Package store persists fetched samples so a word cloud can be re-ranked without hitting YouTube again.
package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
)

// ErrNotFound is returned by Get for an unknown sample ID.
var ErrNotFound = errors.New("sample not found")

// Sample kinds.
const (
	KindSearch  = "search"
	KindChannel = "channel"
)

// Sample is one aggregated fetch result.
type Sample struct {
	ID        int64          `json:"id"`
	Kind      string         `json:"kind"`
	Query     string         `json:"query"`
	Videos    []engine.Video `json:"videos"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store saves and loads samples.
type Store interface {
	// Save stores s and returns its new ID. s.ID is ignored; a zero CreatedAt is set to now.
	Save(ctx context.Context, s Sample) (int64, error)
	Get(ctx context.Context, id int64) (Sample, error)
	// List summarises up to limit samples, newest first. limit <= 0 means
	// DefaultListLimit; larger than MaxListLimit is clamped.
	List(ctx context.Context, limit int) ([]engine.SampleSummary, error)
	Close() error
}

// List limits.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}

// Open picks PostgreSQL when dsn is a postgres URL, otherwise SQLite at path
// (default ~/.go_ytcloud/samples.db).
func Open(ctx context.Context, dsn, path string) (Store, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return OpenPostgres(ctx, dsn)
	}
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".go_ytcloud", "samples.db")
	}
	return OpenSQLite(path)
}
