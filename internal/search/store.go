// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/criaah/medmaps/internal/catalog"
	"github.com/criaah/medmaps/internal/logger"
	"github.com/criaah/medmaps/internal/tree"
	"github.com/criaah/medmaps/pkg/types"
)

// DBFile is the content index file name inside the data directory.
const DBFile = "search.db"

// Store is the content search index.
type Store struct {
	db         *sql.DB
	maxResults int
	log        zerolog.Logger
}

// Open opens or creates dataDir/search.db and its schema.
func Open(dataDir string, cfg types.SearchConfig, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dataDir, DBFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, log: logger.Component(log, "search")}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS maps (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			specialty TEXT,
			tag TEXT,
			access TEXT,
			node_count INTEGER,
			content TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_maps_specialty ON maps(specialty)`,
		`CREATE TABLE IF NOT EXISTS index_status (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ReindexSummary counts the result of a rebuild.
type ReindexSummary struct {
	Indexed int
	Missing int
}

// Reindex replaces the table contents with every map in repo. Index
// entries without a detail record are skipped. A corrupt record aborts
// the rebuild and leaves the previous contents in place.
func (s *Store) Reindex(ctx context.Context, repo *catalog.Repository) (ReindexSummary, error) {
	var summary ReindexSummary
	index, err := repo.Load()
	if err != nil {
		return summary, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM maps`); err != nil {
		return summary, fmt.Errorf("clearing maps: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO maps (id, title, specialty, tag, access, node_count, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range index.Entries() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		rec, err := repo.LoadDetail(e.ID)
		if errors.Is(err, catalog.ErrNotFound) {
			s.log.Warn().Str("id", e.ID).Msg("index entry without detail record")
			summary.Missing++
			continue
		}
		if err != nil {
			return summary, err
		}
		_, err = stmt.ExecContext(ctx,
			rec.ID, rec.Title, rec.Specialty, rec.Tag, string(rec.Access), rec.NodeCount,
			fold(tree.FlattenText(rec.Root)),
		)
		if err != nil {
			return summary, fmt.Errorf("inserting %s: %w", rec.ID, err)
		}
		summary.Indexed++
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO index_status (key, value) VALUES ('indexed_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return summary, fmt.Errorf("updating index status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing reindex: %w", err)
	}
	s.log.Info().Int("indexed", summary.Indexed).Int("missing", summary.Missing).Msg("content index rebuilt")
	return summary, nil
}

// Content returns maps whose tree text contains term, ordered by id.
// limit <= 0 uses the configured limit.
func (s *Store) Content(ctx context.Context, term string, limit int) ([]Hit, error) {
	q := fold(term)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, specialty, tag, access, node_count FROM maps
		 WHERE instr(content, ?) > 0
		 ORDER BY id LIMIT ?`, q, limit)
	if err != nil {
		return nil, fmt.Errorf("querying content: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			h      Hit
			access string
		)
		if err := rows.Scan(&h.ID, &h.Title, &h.Specialty, &h.Tag, &access, &h.NodeCount); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		h.Access = types.Access(access)
		h.Matched = q
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// Count returns the number of indexed maps.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM maps`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting maps: %w", err)
	}
	return n, nil
}

// IndexedAt returns when the index was last rebuilt, or the zero time.
func (s *Store) IndexedAt(ctx context.Context) (time.Time, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM index_status WHERE key = 'indexed_at'`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("reading index status: %w", err)
	}
	return time.Parse(time.RFC3339, v)
}
