// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textract

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/criaah/medmaps/internal/container"
	"github.com/criaah/medmaps/pkg/types"
)

// New assembles the default chain: pdftotext when it is on PATH, then the
// markitdown container when an image is configured and a runtime answers.
// Missing backends are logged and skipped; an empty chain always reports
// ErrUnavailable.
func New(ctx context.Context, cfg types.ExtractionConfig, e container.Executor, log zerolog.Logger) *Chain {
	var backends []Extractor

	pdf := NewPdftotext(cfg, e)
	if pdf.Available() {
		backends = append(backends, pdf)
	} else {
		log.Debug().Str("binary", pdf.Name()).Msg("pdftotext not on PATH")
	}

	if cfg.Image != "" {
		rt, err := container.Detect(ctx, e)
		if err != nil {
			log.Debug().Err(err).Msg("container backend disabled")
		} else if md, err := NewMarkitdown(ctx, rt, cfg.Image); err != nil {
			log.Debug().Err(err).Msg("container backend disabled")
		} else {
			backends = append(backends, md)
		}
	}

	return NewChain(cfg, backends...)
}
