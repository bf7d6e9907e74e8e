// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/criaah/medmaps/internal/container"
	"github.com/criaah/medmaps/pkg/types"
)

// Pdftotext runs the poppler pdftotext tool in layout mode, limited to the
// first pages.
type Pdftotext struct {
	binary   string
	maxPages int
	exec     container.Executor
}

// NewPdftotext returns a backend for cfg. A nil executor uses os/exec.
func NewPdftotext(cfg types.ExtractionConfig, e container.Executor) *Pdftotext {
	if e == nil {
		e = container.OSExecutor{}
	}
	bin := cfg.Binary
	if bin == "" {
		bin = types.DefaultExtractBinary
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = types.DefaultMaxPages
	}
	return &Pdftotext{binary: bin, maxPages: maxPages, exec: e}
}

func (p *Pdftotext) Name() string { return p.binary }

// Available reports whether the binary is on PATH.
func (p *Pdftotext) Available() bool {
	_, err := p.exec.LookPath(p.binary)
	return err == nil
}

func (p *Pdftotext) Extract(ctx context.Context, path string) (string, error) {
	args := []string{"-layout", "-l", strconv.Itoa(p.maxPages), path, "-"}
	var out bytes.Buffer
	if err := p.exec.Run(ctx, p.binary, args, nil, &out); err != nil {
		return "", fmt.Errorf("running %s: %w", p.binary, err)
	}
	return out.String(), nil
}
