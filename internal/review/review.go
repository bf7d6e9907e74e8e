// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review edits cataloged maps after ingestion: reclassification,
// access changes and recomputing related links.
package review

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"

	"github.com/criaah/medmaps/internal/catalog"
	"github.com/criaah/medmaps/internal/classify"
	"github.com/criaah/medmaps/internal/logger"
	"github.com/criaah/medmaps/internal/related"
	"github.com/criaah/medmaps/internal/tree"
	"github.com/criaah/medmaps/pkg/types"
)

// ErrInvalidValue reports a specialty, tag or access outside the known
// lists.
var ErrInvalidValue = errors.New("invalid value")

// Changes holds the fields to update. Empty fields are left as they are.
type Changes struct {
	Specialty string
	Tag       string
	Access    string
}

// Empty reports whether c changes nothing.
func (c Changes) Empty() bool {
	return c.Specialty == "" && c.Tag == "" && c.Access == ""
}

// Reviewer applies edits to one catalog.
type Reviewer struct {
	repo   *catalog.Repository
	engine *related.Engine
	log    zerolog.Logger
}

// New returns a reviewer for repo. A nil engine uses the default terms.
func New(repo *catalog.Repository, engine *related.Engine, log zerolog.Logger) *Reviewer {
	if engine == nil {
		engine = related.NewEngine(nil)
	}
	return &Reviewer{repo: repo, engine: engine, log: logger.Component(log, "review")}
}

// Update applies c to the map id, saving the detail record and its index
// entry together.
func (r *Reviewer) Update(id string, c Changes) (*types.DetailRecord, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	rec, err := r.repo.LoadDetail(id)
	if err != nil {
		return nil, err
	}
	if c.Specialty != "" {
		rec.Specialty = c.Specialty
	}
	if c.Tag != "" {
		rec.Tag = c.Tag
	}
	if c.Access != "" {
		rec.Access = types.Access(c.Access)
	}
	if err := r.repo.UpdateDetail(rec); err != nil {
		return nil, err
	}
	r.log.Info().Str("id", id).Str("specialty", rec.Specialty).Str("tag", rec.Tag).
		Str("access", string(rec.Access)).Msg("map updated")
	return rec, nil
}

func (c Changes) validate() error {
	if c.Specialty != "" && !slices.Contains(classify.Specialties, c.Specialty) {
		return fmt.Errorf("specialty %q: %w", c.Specialty, ErrInvalidValue)
	}
	if c.Tag != "" && !slices.Contains(classify.Tags, c.Tag) {
		return fmt.Errorf("tag %q: %w", c.Tag, ErrInvalidValue)
	}
	if c.Access != "" {
		if _, err := types.ParseAccess(c.Access); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
	}
	return nil
}

// RelinkReport counts the outcome of a relink run.
type RelinkReport struct {
	Checked int
	Changed int
	Missing []string
}

// Relink recomputes related_maps for id, or for every map when id is
// empty, against the current index. Index entries without a detail file
// are skipped and listed in the report. Changed records are saved and the
// index is written once.
func (r *Reviewer) Relink(id string, w io.Writer) (RelinkReport, error) {
	var report RelinkReport
	index, err := r.repo.Load()
	if err != nil {
		return report, err
	}

	ids := index.IDs()
	if id != "" {
		if _, ok := index.Get(id); !ok {
			return report, fmt.Errorf("%s: %w", id, catalog.ErrNotFound)
		}
		ids = []string{id}
	}

	// Scoring reads titles and specialties only, so one snapshot serves
	// the whole run.
	entries := index.Entries()
	for _, target := range ids {
		rec, err := r.repo.LoadDetail(target)
		if errors.Is(err, catalog.ErrNotFound) {
			report.Missing = append(report.Missing, target)
			r.log.Warn().Str("id", target).Msg("index entry without detail record")
			continue
		}
		if err != nil {
			return report, err
		}
		report.Checked++

		links := r.engine.RelatedIDs(rec.Title+" "+tree.FlattenText(rec.Root), entries, rec.ID)
		if slices.Equal(links, rec.RelatedMaps) {
			continue
		}
		rec.RelatedMaps = links
		if err := r.repo.SaveDetail(rec); err != nil {
			return report, err
		}
		index.Upsert(rec.Summary())
		report.Changed++
		fmt.Fprintf(w, "relinked %s: %d related\n", rec.ID, len(links))
	}

	if report.Changed > 0 {
		if err := r.repo.SaveIndex(index); err != nil {
			return report, err
		}
	}
	fmt.Fprintf(w, "\nRelink summary: %d checked, %d changed, %d missing\n",
		report.Checked, report.Changed, len(report.Missing))
	return report, nil
}

// List returns the index entries, restricted to specialty when it is not
// empty.
func (r *Reviewer) List(specialty string) ([]types.SummaryEntry, error) {
	index, err := r.repo.Load()
	if err != nil {
		return nil, err
	}
	entries := index.Entries()
	if specialty == "" {
		return entries, nil
	}
	var out []types.SummaryEntry
	for _, e := range entries {
		if e.Specialty == specialty {
			out = append(out, e)
		}
	}
	return out, nil
}
