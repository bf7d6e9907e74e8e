// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"sort"
	"strings"

	"github.com/criaah/medmaps/pkg/types"
)

// NormalizeTitle is the duplicate-detection key: trimmed and lower-cased.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Index is the in-memory summary index, kept sorted by id. A batch loads it
// once, mutates it per item, and persists it once at the end.
type Index struct {
	entries []types.SummaryEntry
	titles  map[string]int
}

// NewIndex builds an index from entries in any order.
func NewIndex(entries []types.SummaryEntry) *Index {
	x := &Index{
		entries: make([]types.SummaryEntry, 0, len(entries)),
		titles:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		x.insert(e)
	}
	x.sort()
	return x
}

// Len returns the number of entries.
func (x *Index) Len() int { return len(x.entries) }

// Entries returns a copy of the entries in id order.
func (x *Index) Entries() []types.SummaryEntry {
	out := make([]types.SummaryEntry, len(x.entries))
	copy(out, x.entries)
	return out
}

// IDs returns every id in order.
func (x *Index) IDs() []string {
	ids := make([]string, len(x.entries))
	for i, e := range x.entries {
		ids[i] = e.ID
	}
	return ids
}

// Get returns the entry with id.
func (x *Index) Get(id string) (types.SummaryEntry, bool) {
	if i := x.find(id); i >= 0 {
		return x.entries[i], true
	}
	return types.SummaryEntry{}, false
}

// HasTitle reports whether an entry with the same normalized title exists.
func (x *Index) HasTitle(title string) bool {
	return x.titles[NormalizeTitle(title)] > 0
}

// Upsert replaces the entry with the same id or appends e, then restores
// id order.
func (x *Index) Upsert(e types.SummaryEntry) {
	if e.RelatedMaps == nil {
		e.RelatedMaps = types.RelatedIDs{}
	}
	if i := x.find(e.ID); i >= 0 {
		x.titles[NormalizeTitle(x.entries[i].Title)]--
		x.titles[NormalizeTitle(e.Title)]++
		x.entries[i] = e
		return
	}
	x.insert(e)
	x.sort()
}

// Remove drops the entry with id and reports whether it was present.
func (x *Index) Remove(id string) bool {
	i := x.find(id)
	if i < 0 {
		return false
	}
	x.titles[NormalizeTitle(x.entries[i].Title)]--
	x.entries = append(x.entries[:i], x.entries[i+1:]...)
	return true
}

// NextID returns the identifier after the highest one in the index.
func (x *Index) NextID() string {
	return NextID(x.entries)
}

func (x *Index) insert(e types.SummaryEntry) {
	if e.RelatedMaps == nil {
		e.RelatedMaps = types.RelatedIDs{}
	}
	x.entries = append(x.entries, e)
	x.titles[NormalizeTitle(e.Title)]++
}

func (x *Index) sort() {
	sort.SliceStable(x.entries, func(i, j int) bool {
		return x.entries[i].ID < x.entries[j].ID
	})
}

func (x *Index) find(id string) int {
	for i := range x.entries {
		if x.entries[i].ID == id {
			return i
		}
	}
	return -1
}
