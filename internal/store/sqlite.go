package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go_ytcloud/internal/engine"
	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the sample database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("samples: mkdir %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("samples: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSQLiteSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("samples: init schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func initSQLiteSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS samples (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		kind        TEXT NOT NULL,
		query       TEXT NOT NULL,
		video_count INTEGER NOT NULL,
		videos      TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`)
	return err
}

func (s *SQLite) Save(ctx context.Context, sample Sample) (int64, error) {
	if sample.CreatedAt.IsZero() {
		sample.CreatedAt = time.Now()
	}
	videos, err := json.Marshal(sample.Videos)
	if err != nil {
		return 0, fmt.Errorf("samples: encode videos: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO samples (kind, query, video_count, videos, created_at) VALUES (?, ?, ?, ?, ?)`,
		sample.Kind, sample.Query, len(sample.Videos), string(videos), sample.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("samples: insert: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLite) Get(ctx context.Context, id int64) (Sample, error) {
	var (
		sample    Sample
		videos    string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, kind, query, videos, created_at FROM samples WHERE id = ?`, id).
		Scan(&sample.ID, &sample.Kind, &sample.Query, &videos, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Sample{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Sample{}, fmt.Errorf("samples: get %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(videos), &sample.Videos); err != nil {
		return Sample{}, fmt.Errorf("samples: decode videos: %w", err)
	}
	sample.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return sample, nil
}

func (s *SQLite) List(ctx context.Context, limit int) ([]engine.SampleSummary, error) {
	limit = listLimit(limit)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, query, video_count, created_at FROM samples ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("samples: list: %w", err)
	}
	defer rows.Close()

	out := make([]engine.SampleSummary, 0, limit)
	for rows.Next() {
		var sum engine.SampleSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Kind, &sum.Query, &sum.VideoCount, &createdAt); err != nil {
			return nil, fmt.Errorf("samples: scan: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			sum.CreatedAt = t.UTC().Format(time.RFC3339)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
