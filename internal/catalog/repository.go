// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog owns the persisted map catalog: one detail file per map
// under maps/ and a shared summary index, maps_index.json, sorted by id.
//
// Consistency between the two is a calling discipline. Every SaveDetail
// (or CreateDetail) for a new id must be followed by an index upsert for the
// same id. Read paths tolerate index entries whose detail file is missing.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/criaah/medmaps/internal/tree"
	"github.com/criaah/medmaps/pkg/types"
)

const (
	indexFile = "maps_index.json"
	mapsDir   = "maps"
)

// Repository reads and writes the catalog under a data directory.
type Repository struct {
	dataDir string
}

// NewRepository returns a repository rooted at cfg.DataDir ("data" when
// empty).
func NewRepository(cfg types.CatalogConfig) *Repository {
	dir := cfg.DataDir
	if dir == "" {
		dir = types.DefaultDataDir
	}
	return &Repository{dataDir: dir}
}

// DataDir returns the root directory of the catalog.
func (r *Repository) DataDir() string { return r.dataDir }

// IndexPath returns the path of the summary index.
func (r *Repository) IndexPath() string {
	return filepath.Join(r.dataDir, indexFile)
}

// DetailPath returns the path of the detail record for id.
func (r *Repository) DetailPath(id string) string {
	return filepath.Join(r.dataDir, mapsDir, id+".json")
}

// LoadIndex reads every summary entry. A missing index is an empty
// catalog.
func (r *Repository) LoadIndex() ([]types.SummaryEntry, error) {
	path := r.IndexPath()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.SummaryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var entries []types.SummaryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	for i := range entries {
		if err := ValidateEntry(&entries[i]); err != nil {
			return nil, &CorruptError{Path: path, Err: fmt.Errorf("entry %d (%s): %w", i, entries[i].ID, err)}
		}
		if entries[i].RelatedMaps == nil {
			entries[i].RelatedMaps = types.RelatedIDs{}
		}
	}
	if entries == nil {
		entries = []types.SummaryEntry{}
	}
	return entries, nil
}

// Load returns the index as an Index.
func (r *Repository) Load() (*Index, error) {
	entries, err := r.LoadIndex()
	if err != nil {
		return nil, err
	}
	return NewIndex(entries), nil
}

// LoadDetail reads the detail record for id. It returns ErrNotFound when
// the file does not exist.
func (r *Repository) LoadDetail(id string) (*types.DetailRecord, error) {
	path := r.DetailPath(id)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", id, err)
	}

	var rec types.DetailRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	if rec.ID != id {
		return nil, &CorruptError{Path: path, Err: fmt.Errorf("record id %q does not match file name", rec.ID)}
	}
	if err := ValidateDetail(&rec); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	if rec.RelatedMaps == nil {
		rec.RelatedMaps = types.RelatedIDs{}
	}
	return &rec, nil
}

// SaveDetail writes rec, overwriting any existing file for its id. The
// stored node count is recomputed from the tree.
func (r *Repository) SaveDetail(rec *types.DetailRecord) error {
	tree.Normalize(&rec.Root)
	rec.NodeCount = tree.CountNodes(rec.Root)
	if rec.RelatedMaps == nil {
		rec.RelatedMaps = types.RelatedIDs{}
	}
	if err := ValidateDetail(rec); err != nil {
		return fmt.Errorf("invalid record %s: %w", rec.ID, err)
	}
	if err := writeJSON(r.DetailPath(rec.ID), rec); err != nil {
		return fmt.Errorf("saving %s: %w", rec.ID, err)
	}
	return nil
}

// CreateDetail writes rec only if no detail file exists for its id.
func (r *Repository) CreateDetail(rec *types.DetailRecord) error {
	if _, err := os.Stat(r.DetailPath(rec.ID)); err == nil {
		return fmt.Errorf("%s: %w", rec.ID, ErrExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", rec.ID, err)
	}
	return r.SaveDetail(rec)
}

// UpdateDetail saves an existing record and upserts its summary, keeping
// the two in lockstep.
func (r *Repository) UpdateDetail(rec *types.DetailRecord) error {
	if _, err := os.Stat(r.DetailPath(rec.ID)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", rec.ID, ErrNotFound)
		}
		return fmt.Errorf("checking %s: %w", rec.ID, err)
	}
	if err := r.SaveDetail(rec); err != nil {
		return err
	}
	return r.UpsertIndexEntry(rec.Summary())
}

// UpsertIndexEntry replaces the entry with the same id or appends it,
// re-sorts, and persists the whole index.
func (r *Repository) UpsertIndexEntry(e types.SummaryEntry) error {
	x, err := r.Load()
	if err != nil {
		return err
	}
	x.Upsert(e)
	return r.SaveIndex(x)
}

// SaveIndex validates and persists x.
func (r *Repository) SaveIndex(x *Index) error {
	entries := x.Entries()
	for i := range entries {
		if err := ValidateEntry(&entries[i]); err != nil {
			return fmt.Errorf("invalid index entry %s: %w", entries[i].ID, err)
		}
	}
	if err := writeJSON(r.IndexPath(), entries); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}
	return nil
}

// ExistsTitle reports whether the index holds an entry whose normalized
// title equals title's.
func (r *Repository) ExistsTitle(title string) (bool, error) {
	x, err := r.Load()
	if err != nil {
		return false, err
	}
	return x.HasTitle(title), nil
}

// DetailIDs lists the ids of every detail file on disk, sorted.
func (r *Repository) DetailIDs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(r.dataDir, mapsDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing details: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		if recordPattern.MatchString(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Allocator returns an allocator past every id in x and on disk.
func (r *Repository) Allocator(x *Index) (*Allocator, error) {
	onDisk, err := r.DetailIDs()
	if err != nil {
		return nil, err
	}
	return NewAllocator(x.IDs(), onDisk), nil
}

// writeJSON encodes v with two-space indentation and writes it atomically
// via a temp file in the destination directory.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(buf.Bytes())
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
