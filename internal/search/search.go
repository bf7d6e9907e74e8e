// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search finds cataloged maps by title, by related topic and by
// tree content, and summarizes the catalog.
//
// Title and related search read the summary index directly. Content
// search uses a SQLite table rebuilt from the detail records.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/criaah/medmaps/pkg/types"
)

// Hit is one search result.
type Hit struct {
	types.SummaryEntry

	// Matched is the query or expansion term that selected the entry.
	Matched string `json:"matched" yaml:"matched"`
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))
}

func contains(s, sub string) bool {
	return sub != "" && strings.Contains(s, sub)
}

// Titles returns the entries whose title contains term, in index order.
// limit <= 0 means no limit.
func Titles(entries []types.SummaryEntry, term string, limit int) []Hit {
	q := fold(term)
	var hits []Hit
	for _, e := range entries {
		if contains(fold(e.Title), q) {
			hits = append(hits, Hit{SummaryEntry: e, Matched: q})
			if limit > 0 && len(hits) == limit {
				break
			}
		}
	}
	return hits
}

// Related searches titles for term and its Expand terms. Each entry is
// returned once, attributed to the first term that matched it.
func Related(entries []types.SummaryEntry, term string, limit int) []Hit {
	var hits []Hit
	seen := make(map[string]bool)
	for _, t := range Expand(term) {
		for _, e := range entries {
			if seen[e.ID] || !contains(fold(e.Title), t) {
				continue
			}
			seen[e.ID] = true
			hits = append(hits, Hit{SummaryEntry: e, Matched: t})
			if limit > 0 && len(hits) == limit {
				return hits
			}
		}
	}
	return hits
}

// Count is a label with its number of maps.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Stats summarizes the catalog by specialty and by tag.
type Stats struct {
	Total       int     `json:"total" yaml:"total"`
	Nodes       int     `json:"nodes" yaml:"nodes"`
	Specialties []Count `json:"specialties" yaml:"specialties"`
	Tags        []Count `json:"tags" yaml:"tags"`
}

// Summarize counts entries per specialty and per tag, most common first.
// Missing labels count as "N/A".
func Summarize(entries []types.SummaryEntry) Stats {
	specs := make(map[string]int)
	tags := make(map[string]int)
	st := Stats{Total: len(entries)}
	for _, e := range entries {
		specs[labelOr(e.Specialty)]++
		tags[labelOr(e.Tag)]++
		st.Nodes += e.NodeCount
	}
	st.Specialties = ranked(specs)
	st.Tags = ranked(tags)
	return st
}

func labelOr(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func ranked(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for label, n := range m {
		out = append(out, Count{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
