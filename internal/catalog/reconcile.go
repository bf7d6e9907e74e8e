// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"reflect"

	"github.com/criaah/medmaps/internal/tree"
)

// ReconcileOptions control a reconciliation pass.
type ReconcileOptions struct {
	// Prune drops index entries that have no detail file.
	Prune bool

	// DryRun computes the report without writing.
	DryRun bool
}

// ReconcileReport lists the ids touched by a reconciliation pass.
type ReconcileReport struct {
	// Added are detail records that had no index entry.
	Added []string

	// Synced are index entries rewritten from their detail record.
	Synced []string

	// Recounted are detail records whose stored node count was wrong.
	Recounted []string

	// Orphans are index entries without a detail file that were kept.
	Orphans []string

	// Pruned are index entries without a detail file that were dropped.
	Pruned []string
}

// Changed reports whether the pass modified (or would modify) anything.
func (r *ReconcileReport) Changed() bool {
	return len(r.Added)+len(r.Synced)+len(r.Recounted)+len(r.Pruned) > 0
}

// Reconcile restores the one-to-one relation between detail records and
// index entries. Detail records are the source of truth: missing entries
// are derived from them and stale entries are rewritten. A corrupt file
// aborts the pass; the index is written once, at the end.
func (r *Repository) Reconcile(opts ReconcileOptions) (*ReconcileReport, error) {
	x, err := r.Load()
	if err != nil {
		return nil, err
	}
	ids, err := r.DetailIDs()
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{}
	onDisk := make(map[string]bool, len(ids))

	for _, id := range ids {
		onDisk[id] = true
		rec, err := r.LoadDetail(id)
		if err != nil {
			return nil, err
		}

		if n := tree.CountNodes(rec.Root); n != rec.NodeCount {
			rec.NodeCount = n
			report.Recounted = append(report.Recounted, id)
			if !opts.DryRun {
				if err := r.SaveDetail(rec); err != nil {
					return nil, err
				}
			}
		}

		summary := rec.Summary()
		existing, ok := x.Get(id)
		switch {
		case !ok:
			report.Added = append(report.Added, id)
		case !reflect.DeepEqual(existing, summary):
			report.Synced = append(report.Synced, id)
		default:
			continue
		}
		x.Upsert(summary)
	}

	for _, e := range x.Entries() {
		if onDisk[e.ID] {
			continue
		}
		if opts.Prune {
			x.Remove(e.ID)
			report.Pruned = append(report.Pruned, e.ID)
		} else {
			report.Orphans = append(report.Orphans, e.ID)
		}
	}

	if opts.DryRun || !report.Changed() {
		return report, nil
	}
	if err := r.SaveIndex(x); err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	return report, nil
}
