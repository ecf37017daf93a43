package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres creates a pgx pool and runs schema migrations.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 5
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db := &Postgres{pool: pool}
	if err := db.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("samples postgres connected", slog.String("addr", config.ConnConfig.Host))
	return db, nil
}

func (db *Postgres) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := db.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", entry.Name(), err)
		}
		slog.Debug("migration applied", slog.String("file", entry.Name()))
	}
	return nil
}

func (db *Postgres) Save(ctx context.Context, s Sample) (int64, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	videos, err := json.Marshal(s.Videos)
	if err != nil {
		return 0, fmt.Errorf("samples: encode videos: %w", err)
	}
	var id int64
	err = db.pool.QueryRow(ctx,
		`INSERT INTO samples (kind, query, video_count, videos, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.Kind, s.Query, len(s.Videos), videos, s.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("samples: insert: %w", err)
	}
	return id, nil
}

func (db *Postgres) Get(ctx context.Context, id int64) (Sample, error) {
	var (
		s      Sample
		videos []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, query, videos, created_at FROM samples WHERE id = $1`, id).
		Scan(&s.ID, &s.Kind, &s.Query, &videos, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sample{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Sample{}, fmt.Errorf("samples: get %d: %w", id, err)
	}
	if err := json.Unmarshal(videos, &s.Videos); err != nil {
		return Sample{}, fmt.Errorf("samples: decode videos: %w", err)
	}
	return s, nil
}

func (db *Postgres) List(ctx context.Context, limit int) ([]engine.SampleSummary, error) {
	limit = listLimit(limit)
	rows, err := db.pool.Query(ctx,
		`SELECT id, kind, query, video_count, created_at FROM samples ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("samples: list: %w", err)
	}
	defer rows.Close()

	out := make([]engine.SampleSummary, 0, limit)
	for rows.Next() {
		var sum engine.SampleSummary
		var createdAt time.Time
		if err := rows.Scan(&sum.ID, &sum.Kind, &sum.Query, &sum.VideoCount, &createdAt); err != nil {
			return nil, fmt.Errorf("samples: scan: %w", err)
		}
		sum.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (db *Postgres) Close() error {
	db.pool.Close()
	return nil
}
