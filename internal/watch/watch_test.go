// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criaah/medmaps/internal/ingest"
	"github.com/criaah/medmaps/pkg/types"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (r *recorder) IngestFile(_ context.Context, path string, _ io.Writer) (ingest.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, filepath.Base(path))
	return ingest.Result{Path: path, Outcome: ingest.OutcomeIngested}, r.err
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.paths {
		if p == name {
			n++
		}
	}
	return n
}

func start(t *testing.T, inbox string, ing Ingester) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancelFn := context.WithCancel(context.Background())
	w := New(types.WatchConfig{Inbox: inbox, Debounce: 50 * time.Millisecond}, ing, io.Discard, zerolog.Nop())
	ch := make(chan error, 1)
	go func() { ch <- w.Run(ctx) }()
	t.Cleanup(cancelFn)
	return cancelFn, ch
}

func TestWatchIngestsExistingAndNewFiles(t *testing.T) {
	inbox := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "previo.txt"), []byte("Previo\n"), 0o644))

	rec := &recorder{}
	cancel, done := start(t, inbox, rec)

	require.Eventually(t, func() bool { return rec.count("previo.txt") == 1 }, 2*time.Second, 10*time.Millisecond)

	// Give the watcher time to register before new files arrive.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "nuevo.txt"), []byte("Nuevo\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "notas.md"), []byte("x"), 0o644))

	require.Eventually(t, func() bool { return rec.count("nuevo.txt") == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, rec.count("nuevo.txt"), "burst of events is debounced")
	assert.Zero(t, rec.count("notas.md"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchNewSubfolder(t *testing.T) {
	inbox := t.TempDir()
	rec := &recorder{}
	start(t, inbox, rec)
	time.Sleep(100 * time.Millisecond)

	sub := filepath.Join(inbox, "Geriatría")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "caídas.txt"), []byte("Caídas\n"), 0o644))

	require.Eventually(t, func() bool { return rec.count("caídas.txt") == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatchAbortsOnIngestError(t *testing.T) {
	inbox := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "a.txt"), []byte("A\n"), 0o644))
	boom := errors.New("catalog corrupt")

	_, done := start(t, inbox, &recorder{err: boom})
	select {
	case err := <-done:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not abort")
	}
}

func TestWatchMissingInbox(t *testing.T) {
	w := New(types.WatchConfig{Inbox: filepath.Join(t.TempDir(), "nope")}, &recorder{}, io.Discard, zerolog.Nop())
	assert.Error(t, w.Run(context.Background()))
}

func TestDue(t *testing.T) {
	w := New(types.WatchConfig{Inbox: "x"}, &recorder{}, io.Discard, zerolog.Nop())
	now := time.Now()
	w.pending["b.txt"] = now.Add(-time.Second)
	w.pending["a.txt"] = now
	w.pending["c.txt"] = now.Add(time.Second)

	assert.Equal(t, []string{"a.txt", "b.txt"}, w.due(now))
	assert.Len(t, w.pending, 1)
}
