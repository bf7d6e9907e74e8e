// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/criaah/medmaps/internal/classify"
	"github.com/criaah/medmaps/internal/parse"
	"github.com/criaah/medmaps/internal/textract"
	"github.com/criaah/medmaps/internal/tree"
	"github.com/criaah/medmaps/pkg/types"
)

// Candidate is a parsed and classified source file that has not been
// checked against the catalog yet.
type Candidate struct {
	Path       string
	Format     Format
	Title      string
	Specialty  string
	Tag        string
	Root       types.Node
	References []string

	// Text is the title followed by the flattened tree; relatedness is
	// scored against it.
	Text string
}

// Prepare parses path with the parser for its format and classifies the
// result. Metadata overrides from the pipeline configuration replace the
// classifier output. Errors are *parse.Error values or wrap
// textract.ErrUnavailable.
func (p *Pipeline) Prepare(ctx context.Context, path string) (*Candidate, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, &parse.Error{Reason: parse.ReasonMalformed, Path: path, Err: errors.New("unsupported file type")}
	}

	var (
		doc       *parse.Document
		specialty string
	)
	switch format {
	case FormatOutline:
		d, err := parse.ParseOutlineFile(path)
		if err != nil {
			return nil, err
		}
		doc, specialty = d, classify.Specialty(path)

	case FormatTabbed:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &parse.Error{Reason: parse.ReasonMalformed, Path: path, Err: err}
		}
		doc, specialty = parse.ParseTabbedDocument(string(data), parse.Stem(path)), classify.Specialty(path)

	case FormatExtracted:
		if p.extractor == nil {
			return nil, fmt.Errorf("%s: %w: no extractor configured", path, textract.ErrUnavailable)
		}
		text, err := p.extractor.Extract(ctx, path)
		if err != nil {
			if errors.Is(err, textract.ErrUnavailable) || errors.Is(err, context.Canceled) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %w", textract.ErrUnavailable, err)
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%s: %w: empty output", path, textract.ErrUnavailable)
		}
		doc, specialty = parse.Segment(text, parse.Stem(path)), classify.ExtractedSpecialty(path)
	}

	c := &Candidate{
		Path:       path,
		Format:     format,
		Title:      doc.Title,
		Specialty:  specialty,
		Root:       doc.Root,
		References: doc.References,
		Text:       doc.Title + " " + tree.FlattenText(doc.Root),
	}
	c.Tag = classify.Tag(c.Title, tree.FlattenText(doc.Root))

	if p.cfg.Specialty != "" {
		c.Specialty = p.cfg.Specialty
	}
	if p.cfg.Tag != "" {
		c.Tag = p.cfg.Tag
	}
	return c, nil
}

// peek classifies path without running external tools. Extracted formats
// are titled from the file name alone.
func (p *Pipeline) peek(ctx context.Context, path string) (*Candidate, error) {
	format, ok := FormatOf(path)
	if ok && format == FormatExtracted {
		c := &Candidate{
			Path:      path,
			Format:    format,
			Title:     parse.SegmentTitle(parse.Stem(path)),
			Specialty: classify.ExtractedSpecialty(path),
		}
		if p.cfg.Specialty != "" {
			c.Specialty = p.cfg.Specialty
		}
		return c, nil
	}
	return p.Prepare(ctx, path)
}
