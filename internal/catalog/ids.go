// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/criaah/medmaps/pkg/types"
)

// idPattern extracts the numeric suffix of an identifier.
var idPattern = regexp.MustCompile(`map_(\d+)`)

// FormatID renders n as map_NNNN.
func FormatID(n int) string {
	return fmt.Sprintf("map_%04d", n)
}

// ParseID returns the numeric suffix of id.
func ParseID(id string) (int, bool) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextID returns the identifier following the highest one in entries, or
// map_0001 for an empty catalog. Gaps are never filled.
func NextID(entries []types.SummaryEntry) string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return NewAllocator(ids).Next()
}

// Allocator hands out increasing identifiers for a batch.
type Allocator struct {
	next int
}

// NewAllocator starts after the highest id found in any of the lists.
// Passing both index and on-disk detail ids keeps records orphaned by an
// interrupted batch from being overwritten.
func NewAllocator(lists ...[]string) *Allocator {
	highest := 0
	for _, ids := range lists {
		for _, id := range ids {
			if n, ok := ParseID(id); ok && n > highest {
				highest = n
			}
		}
	}
	return &Allocator{next: highest + 1}
}

// Peek returns the identifier Next would return without consuming it.
func (a *Allocator) Peek() string {
	return FormatID(a.next)
}

// Next returns a fresh identifier.
func (a *Allocator) Next() string {
	id := FormatID(a.next)
	a.next++
	return id
}
