// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"go.yaml.in/yaml/v3"

	"github.com/criaah/medmaps/internal/catalog"
	"github.com/criaah/medmaps/internal/parse"
)

// ScanStatus is the dry classification of one source file.
type ScanStatus string

const (
	ScanNew       ScanStatus = "new"
	ScanDuplicate ScanStatus = "duplicate"
	ScanFailed    ScanStatus = "failed"
)

// ScanItem is one row of a scan report.
type ScanItem struct {
	Path      string     `yaml:"path"`
	Status    ScanStatus `yaml:"status"`
	Title     string     `yaml:"title,omitempty"`
	Specialty string     `yaml:"specialty,omitempty"`
	Error     string     `yaml:"error,omitempty"`
}

// SpecialtyCount tallies new items for one specialty.
type SpecialtyCount struct {
	Specialty string `yaml:"specialty"`
	Count     int    `yaml:"count"`
}

// ScanReport summarizes what an ingestion of the same files would do.
type ScanReport struct {
	New         int              `yaml:"new"`
	Duplicates  int              `yaml:"duplicates"`
	Failed      int              `yaml:"failed"`
	Specialties []SpecialtyCount `yaml:"specialties"`
	Items       []ScanItem       `yaml:"items"`
}

// Scan classifies every supported file under root as new, duplicate or
// failed without writing anything. Extracted formats are judged by their
// cleaned file name so no external tool runs.
func (p *Pipeline) Scan(ctx context.Context, root string) (*ScanReport, error) {
	files, err := Collect(root)
	if err != nil {
		return nil, err
	}
	index, err := p.repo.Load()
	if err != nil {
		return nil, err
	}

	report := &ScanReport{}
	seen := make(map[string]bool)
	tally := make(map[string]int)
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		item := ScanItem{Path: path}
		c, err := p.peek(ctx, path)
		switch {
		case err != nil:
			var pe *parse.Error
			if errors.As(err, &pe) {
				item.Error = string(pe.Reason)
			} else {
				item.Error = err.Error()
			}
			item.Status = ScanFailed
			report.Failed++
		case index.HasTitle(c.Title) || seen[catalog.NormalizeTitle(c.Title)]:
			item.Status, item.Title, item.Specialty = ScanDuplicate, c.Title, c.Specialty
			report.Duplicates++
		default:
			item.Status, item.Title, item.Specialty = ScanNew, c.Title, c.Specialty
			seen[catalog.NormalizeTitle(c.Title)] = true
			tally[c.Specialty]++
			report.New++
		}
		report.Items = append(report.Items, item)
	}

	for name, n := range tally {
		report.Specialties = append(report.Specialties, SpecialtyCount{Specialty: name, Count: n})
	}
	sort.Slice(report.Specialties, func(i, j int) bool {
		a, b := report.Specialties[i], report.Specialties[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Specialty < b.Specialty
	})
	return report, nil
}

// WriteTable prints the specialty tally and the totals.
func (r *ScanReport) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SPECIALTY\tNEW")
	for _, s := range r.Specialties {
		fmt.Fprintf(tw, "%s\t%d\n", s.Specialty, s.Count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d new, %d duplicates, %d failed (total: %d)\n",
		r.New, r.Duplicates, r.Failed, r.New+r.Duplicates+r.Failed)
	return err
}

// WriteYAML encodes the full report.
func (r *ScanReport) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding scan report: %w", err)
	}
	return enc.Close()
}
