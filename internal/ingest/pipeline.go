// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns source files into catalog maps: parse, classify,
// check for a duplicate title, allocate an id, link related maps, persist.
//
// A batch loads the index once, mutates it in memory per item, and writes
// it once at the end. Detail records are written as items succeed, so an
// interrupted batch can leave records without index entries; the
// catalog reconciliation pass repairs that.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/criaah/medmaps/internal/catalog"
	"github.com/criaah/medmaps/internal/logger"
	"github.com/criaah/medmaps/internal/metrics"
	"github.com/criaah/medmaps/internal/parse"
	"github.com/criaah/medmaps/internal/related"
	"github.com/criaah/medmaps/internal/textract"
	"github.com/criaah/medmaps/internal/tree"
	"github.com/criaah/medmaps/pkg/types"
)

// ErrDuplicateTitle marks a source whose title is already cataloged. It is
// a skip outcome, not a failure.
var ErrDuplicateTitle = errors.New("duplicate title")

// Outcome classifies what happened to one source file.
type Outcome string

const (
	OutcomeIngested    Outcome = "ingested"
	OutcomeDuplicate   Outcome = "duplicate"
	OutcomeFailed      Outcome = "failed"
	OutcomeUnavailable Outcome = "unavailable"
)

// Result describes one processed source file.
type Result struct {
	Path      string
	Format    Format
	Outcome   Outcome
	ID        string
	Title     string
	Specialty string
	NodeCount int
	Related   types.RelatedIDs

	// Reason is the parse failure reason for OutcomeFailed.
	Reason parse.Reason
	Err    error
}

// BatchSummary counts the outcomes of a batch run.
type BatchSummary struct {
	RunID       string
	Ingested    int
	Duplicates  int
	Failed      int
	Unavailable int
	Results     []Result
}

// Total returns the number of files processed.
func (s BatchSummary) Total() int {
	return s.Ingested + s.Duplicates + s.Failed + s.Unavailable
}

// HasFailures reports whether any file failed to parse.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Pipeline ingests source files into one catalog. It is not safe for
// concurrent use; callers serialize runs against the same catalog.
type Pipeline struct {
	repo      *catalog.Repository
	extractor textract.Extractor
	engine    *related.Engine
	cfg       types.IngestConfig
	log       zerolog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithExtractor sets the text extractor for non-native documents. Without
// one, such files are reported as unavailable.
func WithExtractor(e textract.Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = logger.Component(l, "ingest") }
}

// WithMetrics records outcomes in r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(p *Pipeline) { p.metrics = r }
}

// WithEngine replaces the default relatedness engine.
func WithEngine(e *related.Engine) Option {
	return func(p *Pipeline) { p.engine = e }
}

// WithClock sets the time source used for created dates.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New returns a pipeline writing to repo.
func New(repo *catalog.Repository, cfg types.IngestConfig, opts ...Option) *Pipeline {
	if cfg.Access == "" {
		cfg.Access = types.AccessFree
	}
	p := &Pipeline{
		repo:   repo,
		engine: related.NewEngine(nil),
		cfg:    cfg,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// session is the in-memory catalog state of one batch.
type session struct {
	index *catalog.Index
	alloc *catalog.Allocator
	log   zerolog.Logger
	dirty bool
}

// IngestFile ingests a single file and persists the index.
func (p *Pipeline) IngestFile(ctx context.Context, path string, w io.Writer) (Result, error) {
	summary, err := p.IngestBatch(ctx, []string{path}, w)
	if len(summary.Results) == 0 {
		return Result{Path: path}, err
	}
	return summary.Results[0], err
}

// IngestDir collects the supported files under root and ingests them as
// one batch.
func (p *Pipeline) IngestDir(ctx context.Context, root string, w io.Writer) (BatchSummary, error) {
	files, err := Collect(root)
	if err != nil {
		return BatchSummary{}, err
	}
	return p.IngestBatch(ctx, files, w)
}

// IngestBatch processes paths in order, writing one progress line per file
// and a final summary line to w. Parse failures, duplicates and
// unavailable extractions are counted and the batch continues. A catalog
// error aborts it; entries for maps already written are still persisted.
// Cancelling ctx stops before the next file.
func (p *Pipeline) IngestBatch(ctx context.Context, paths []string, w io.Writer) (BatchSummary, error) {
	start := p.now()
	summary := BatchSummary{RunID: logger.NewRunID()}
	log := logger.WithRun(p.log, summary.RunID)

	index, err := p.repo.Load()
	if err != nil {
		return summary, err
	}
	alloc, err := p.repo.Allocator(index)
	if err != nil {
		return summary, err
	}
	s := &session{index: index, alloc: alloc, log: log}

	if p.cfg.Limit > 0 && len(paths) > p.cfg.Limit {
		paths = paths[:p.cfg.Limit]
	}
	log.Info().Int("files", len(paths)).Bool("dry_run", p.cfg.DryRun).Msg("batch started")

	var fatal error
	for _, path := range paths {
		if ctx.Err() != nil {
			log.Warn().Msg("batch cancelled")
			break
		}
		res, err := p.ingestOne(ctx, s, path)
		if err != nil {
			fatal = err
			fmt.Fprintf(w, "aborted: %s (%v)\n", path, err)
			break
		}
		if ctx.Err() != nil && res.Outcome != OutcomeIngested {
			log.Warn().Str("path", path).Msg("batch cancelled")
			break
		}
		p.report(w, &summary, res)
	}

	if s.dirty && !p.cfg.DryRun {
		if err := p.repo.SaveIndex(s.index); err != nil {
			log.Error().Err(err).Msg("saving index")
			if fatal == nil {
				fatal = err
			}
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d ingested, %d duplicates, %d failed, %d unavailable (total: %d)\n",
		summary.Ingested, summary.Duplicates, summary.Failed, summary.Unavailable, summary.Total())

	end := p.now()
	p.metrics.Batch(end.Sub(start).Seconds(), s.index.Len(), float64(end.Unix()))
	log.Info().
		Int("ingested", summary.Ingested).
		Int("duplicates", summary.Duplicates).
		Int("failed", summary.Failed).
		Int("unavailable", summary.Unavailable).
		Msg("batch finished")

	return summary, fatal
}

// ingestOne returns a non-nil error only for failures that must abort the
// batch.
func (p *Pipeline) ingestOne(ctx context.Context, s *session, path string) (Result, error) {
	format, _ := FormatOf(path)
	res := Result{Path: path, Format: format}

	c, err := p.Prepare(ctx, path)
	if err != nil {
		var pe *parse.Error
		switch {
		case errors.As(err, &pe):
			res.Outcome, res.Reason, res.Err = OutcomeFailed, pe.Reason, err
		case errors.Is(err, textract.ErrUnavailable):
			res.Outcome, res.Err = OutcomeUnavailable, err
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			res.Outcome, res.Err = OutcomeUnavailable, err
		default:
			res.Outcome, res.Reason, res.Err = OutcomeFailed, parse.ReasonMalformed, err
		}
		return res, nil
	}
	res.Title, res.Specialty = c.Title, c.Specialty

	if s.index.HasTitle(c.Title) {
		res.Outcome = OutcomeDuplicate
		res.Err = fmt.Errorf("%q: %w", c.Title, ErrDuplicateTitle)
		return res, nil
	}

	id := s.alloc.Next()
	rec := &types.DetailRecord{
		SummaryEntry: types.SummaryEntry{
			ID:          id,
			Title:       c.Title,
			Specialty:   c.Specialty,
			Tag:         c.Tag,
			Access:      p.cfg.Access,
			NodeCount:   tree.CountNodes(c.Root),
			CreatedDate: p.now().Format("2006-01-02"),
			SourceFile:  filepath.Base(path),
			RelatedMaps: p.engine.RelatedIDs(c.Text, s.index.Entries(), id),
			References:  c.References,
		},
		Root: c.Root,
	}

	if !p.cfg.DryRun {
		if err := p.repo.CreateDetail(rec); err != nil {
			return res, fmt.Errorf("writing %s: %w", id, err)
		}
		p.moveSource(s.log, path)
	}
	s.index.Upsert(rec.Summary())
	s.dirty = true

	res.Outcome = OutcomeIngested
	res.ID = id
	res.NodeCount = rec.NodeCount
	res.Related = rec.RelatedMaps
	return res, nil
}

func (p *Pipeline) report(w io.Writer, summary *BatchSummary, res Result) {
	switch res.Outcome {
	case OutcomeIngested:
		summary.Ingested++
		fmt.Fprintf(w, "ingested %s: %s [%s] (%d nodes, %d related)\n",
			res.ID, res.Title, res.Specialty, res.NodeCount, len(res.Related))
		p.metrics.Nodes(res.NodeCount)
	case OutcomeDuplicate:
		summary.Duplicates++
		fmt.Fprintf(w, "skipped: %s (duplicate title %q)\n", res.Path, res.Title)
	case OutcomeUnavailable:
		summary.Unavailable++
		fmt.Fprintf(w, "unavailable: %s (%v)\n", res.Path, res.Err)
	case OutcomeFailed:
		summary.Failed++
		fmt.Fprintf(w, "failed:  %s (%v)\n", res.Path, res.Err)
	}
	p.metrics.Item(string(res.Format), string(res.Outcome), string(res.Reason))
	summary.Results = append(summary.Results, res)
}

// moveSource moves an ingested file into the configured published folder.
// A failed move is logged; the map stays ingested.
func (p *Pipeline) moveSource(log zerolog.Logger, path string) {
	if p.cfg.MoveTo == "" {
		return
	}
	dest := filepath.Join(p.cfg.MoveTo, filepath.Base(path))
	if err := os.MkdirAll(p.cfg.MoveTo, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", p.cfg.MoveTo).Msg("creating published folder")
		return
	}
	if _, err := os.Stat(dest); err == nil {
		log.Warn().Str("dest", dest).Msg("published file exists, source left in place")
		return
	}
	if err := os.Rename(path, dest); err != nil {
		log.Warn().Err(err).Str("src", path).Msg("moving source")
		return
	}
	log.Debug().Str("src", path).Str("dest", dest).Msg("source moved")
}
