// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch ingests source files as they appear in an inbox folder.
//
// Events are debounced per file and the files are ingested one at a time
// from the watch loop, so the catalog keeps a single writer.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/criaah/medmaps/internal/ingest"
	"github.com/criaah/medmaps/internal/logger"
	"github.com/criaah/medmaps/pkg/types"
)

// Ingester ingests one file. *ingest.Pipeline satisfies it.
type Ingester interface {
	IngestFile(ctx context.Context, path string, w io.Writer) (ingest.Result, error)
}

// Watcher watches an inbox folder tree.
type Watcher struct {
	inbox    string
	debounce time.Duration
	ing      Ingester
	out      io.Writer
	log      zerolog.Logger

	pending map[string]time.Time
}

// New returns a watcher for cfg.Inbox that hands settled files to ing and
// writes progress lines to out.
func New(cfg types.WatchConfig, ing Ingester, out io.Writer, log zerolog.Logger) *Watcher {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = types.DefaultDebounce
	}
	return &Watcher{
		inbox:    cfg.Inbox,
		debounce: debounce,
		ing:      ing,
		out:      out,
		log:      logger.Component(log, "watch"),
		pending:  make(map[string]time.Time),
	}
}

// Run ingests the files already in the inbox, then watches it until ctx
// is cancelled. It returns nil on cancellation and the error of any
// ingestion that had to abort.
func (w *Watcher) Run(ctx context.Context) error {
	info, err := os.Stat(w.inbox)
	if err != nil {
		return fmt.Errorf("inbox %s: %w", w.inbox, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("inbox %s is not a directory", w.inbox)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addRecursive(fw, w.inbox); err != nil {
		return err
	}

	existing, err := ingest.Collect(w.inbox)
	if err != nil {
		return err
	}
	for _, path := range existing {
		if err := w.ingest(ctx, path); err != nil {
			return err
		}
	}

	w.log.Info().Str("inbox", w.inbox).Dur("debounce", w.debounce).Msg("watching")

	tick := time.NewTicker(w.tickInterval())
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Int("pending", len(w.pending)).Msg("watch stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(fw, event)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("watcher error")

		case now := <-tick.C:
			for _, path := range w.due(now) {
				if ctx.Err() != nil {
					return nil
				}
				if err := w.ingest(ctx, path); err != nil {
					return err
				}
			}
		}
	}
}

func (w *Watcher) tickInterval() time.Duration {
	d := w.debounce / 4
	if d < 10*time.Millisecond {
		d = 10 * time.Millisecond
	}
	return d
}

func (w *Watcher) handle(fw *fsnotify.Watcher, event fsnotify.Event) {
	if hidden(event.Name) || skipped(event.Name) {
		return
	}
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(fw, event.Name); err != nil {
				w.log.Warn().Err(err).Str("dir", event.Name).Msg("watching new folder")
			}
			return
		}
		if _, ok := ingest.FormatOf(event.Name); ok {
			w.pending[event.Name] = time.Now().Add(w.debounce)
		}
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(w.pending, event.Name)
	}
}

// due removes and returns the pending files whose quiet period is over,
// sorted.
func (w *Watcher) due(now time.Time) []string {
	var ready []string
	for path, at := range w.pending {
		if !now.Before(at) {
			ready = append(ready, path)
			delete(w.pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

func (w *Watcher) ingest(ctx context.Context, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	res, err := w.ing.IngestFile(ctx, path, w.out)
	if err != nil {
		w.log.Error().Err(err).Str("path", path).Msg("ingestion aborted")
		return err
	}
	w.log.Debug().Str("path", path).Str("outcome", string(res.Outcome)).Str("id", res.ID).Msg("processed")
	return nil
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && (hidden(path) || skipped(path)) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func skipped(path string) bool {
	for _, frag := range ingest.ExcludedDirs {
		if strings.Contains(path, frag) {
			return true
		}
	}
	return false
}
