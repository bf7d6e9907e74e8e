// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criaah/medmaps/pkg/types"
)

// stubExtractor returns fixed text or an error.
type stubExtractor struct {
	name  string
	text  string
	err   error
	calls int
}

func (s *stubExtractor) Name() string { return s.name }

func (s *stubExtractor) Extract(ctx context.Context, path string) (string, error) {
	s.calls++
	return s.text, s.err
}

// blockingExtractor waits for its context.
type blockingExtractor struct{}

func (blockingExtractor) Name() string { return "slow" }

func (blockingExtractor) Extract(ctx context.Context, path string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// scriptedExecutor records command lines and writes canned output.
type scriptedExecutor struct {
	bins   map[string]bool
	output map[string]string
	calls  []string
}

func (s *scriptedExecutor) LookPath(file string) (string, error) {
	if s.bins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found")
}

func (s *scriptedExecutor) Run(_ context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	key := name + " " + strings.Join(args, " ")
	s.calls = append(s.calls, key)
	out, ok := s.output[key]
	if !ok {
		return errors.New("exit status 1")
	}
	if stdin != nil {
		data, _ := io.ReadAll(stdin)
		out += string(data)
	}
	_, err := stdout.Write([]byte(out))
	return err
}

func TestChainFirstSuccess(t *testing.T) {
	failing := &stubExtractor{name: "a", err: errors.New("boom")}
	empty := &stubExtractor{name: "b", text: "  \n"}
	good := &stubExtractor{name: "c", text: "EPOC\nexacerbación aguda grave"}
	never := &stubExtractor{name: "d", text: "unused"}

	c := NewChain(types.ExtractionConfig{}, failing, empty, good, never)
	text, err := c.Extract(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "EPOC\nexacerbación aguda grave", text)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 0, never.calls)
	assert.Equal(t, "a,b,c,d", c.Name())
}

func TestChainUnavailable(t *testing.T) {
	c := NewChain(types.ExtractionConfig{},
		&stubExtractor{name: "a", err: errors.New("boom")},
		&stubExtractor{name: "b"},
	)
	_, err := c.Extract(context.Background(), "x.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "b: empty output")

	_, err = NewChain(types.ExtractionConfig{}).Extract(context.Background(), "x.pdf")
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestChainTimeout(t *testing.T) {
	fallback := &stubExtractor{name: "fallback", text: "texto"}
	c := NewChain(types.ExtractionConfig{Timeout: 20 * time.Millisecond}, blockingExtractor{}, fallback)

	text, err := c.Extract(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "texto", text)
}

func TestChainCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &stubExtractor{name: "a", text: "x"}
	_, err := NewChain(types.ExtractionConfig{}, s).Extract(ctx, "x.pdf")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.calls)
}

func TestChainCutsPages(t *testing.T) {
	s := &stubExtractor{name: "a", text: "p1\fp2\fp3\fp4"}
	text, err := NewChain(types.ExtractionConfig{MaxPages: 2}, s).Extract(context.Background(), "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "p1\fp2", text)
}

func TestFirstPages(t *testing.T) {
	assert.Equal(t, "a", FirstPages("a\fb", 1))
	assert.Equal(t, "a\fb", FirstPages("a\fb", 2))
	assert.Equal(t, "a\fb\f", FirstPages("a\fb\f", 3))
	assert.Equal(t, "no feeds", FirstPages("no feeds", 1))
	assert.Equal(t, "a\fb", FirstPages("a\fb", 0))
}

func TestPdftotext(t *testing.T) {
	e := &scriptedExecutor{
		bins:   map[string]bool{"pdftotext": true},
		output: map[string]string{"pdftotext -layout -l 20 doc.pdf -": "TEXTO"},
	}
	p := NewPdftotext(types.ExtractionConfig{}, e)
	assert.True(t, p.Available())

	text, err := p.Extract(context.Background(), "doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "TEXTO", text)

	_, err = p.Extract(context.Background(), "other.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running pdftotext")
}

func TestNewAssemblesBackends(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF"), 0o644))

	e := &scriptedExecutor{
		bins: map[string]bool{"docker": true},
		output: map[string]string{
			"docker info":                            "",
			"docker image inspect markitdown:latest": "",
			"docker run --rm -i --network=none markitdown:latest": "md:",
		},
	}
	c := New(context.Background(), types.ExtractionConfig{Image: "markitdown:latest"}, e, zerolog.Nop())
	assert.Equal(t, "markitdown", c.Name())

	text, err := c.Extract(context.Background(), pdf)
	require.NoError(t, err)
	assert.Equal(t, "md:%PDF", text)
}

func TestNewWithoutBackends(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	c := New(context.Background(), types.ExtractionConfig{Image: "markitdown:latest"}, &scriptedExecutor{}, log)
	assert.Equal(t, "", c.Name())
	assert.Contains(t, buf.String(), "container backend disabled")

	_, err := c.Extract(context.Background(), "x.pdf")
	assert.True(t, errors.Is(err, ErrUnavailable))
}
