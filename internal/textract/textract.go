// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textract obtains plain text from documents that have no native
// outline, such as PDFs. Backends are external tools run with a bounded
// timeout; a Chain tries them in order and never retries a backend.
package textract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/criaah/medmaps/pkg/types"
)

// ErrUnavailable is returned when no backend produced text. Batch callers
// count the item as skipped.
var ErrUnavailable = errors.New("text extraction unavailable")

// Extractor returns the plain text of the document at path.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, path string) (string, error)
}

// Chain tries each backend in order under a per-backend timeout and
// returns the first non-empty text.
type Chain struct {
	backends []Extractor
	timeout  time.Duration
	maxPages int
}

// NewChain builds a chain from cfg. Zero values fall back to the
// package defaults.
func NewChain(cfg types.ExtractionConfig, backends ...Extractor) *Chain {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultExtractTimeout
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = types.DefaultMaxPages
	}
	return &Chain{backends: backends, timeout: timeout, maxPages: maxPages}
}

// Name lists the backends.
func (c *Chain) Name() string {
	names := make([]string, len(c.backends))
	for i, b := range c.backends {
		names[i] = b.Name()
	}
	return strings.Join(names, ",")
}

// Extract returns the first non-blank result, cut to the first pages. When
// every backend fails the error wraps ErrUnavailable and each cause.
func (c *Chain) Extract(ctx context.Context, path string) (string, error) {
	var errs []error
	for _, b := range c.backends {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := c.run(ctx, b, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if strings.TrimSpace(text) == "" {
			errs = append(errs, fmt.Errorf("%s: empty output", b.Name()))
			continue
		}
		return FirstPages(text, c.maxPages), nil
	}
	if len(errs) == 0 {
		errs = append(errs, errors.New("no backend configured"))
	}
	return "", fmt.Errorf("%s: %w: %w", path, ErrUnavailable, errors.Join(errs...))
}

func (c *Chain) run(ctx context.Context, b Extractor, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return b.Extract(ctx, path)
}

// FirstPages keeps the text of the first n pages, splitting on form feeds.
func FirstPages(text string, n int) string {
	if n <= 0 {
		return text
	}
	idx := 0
	for i := 0; i < n; i++ {
		j := strings.IndexByte(text[idx:], '\f')
		if j < 0 {
			return text
		}
		idx += j + 1
	}
	return text[:idx-1]
}
