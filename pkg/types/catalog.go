// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
)

// Access controls whether a map is publicly visible in the portal.
type Access string

const (
	AccessFree    Access = "free"
	AccessPremium Access = "premium"
)

// Valid reports whether a is one of the known access levels.
func (a Access) Valid() bool {
	return a == AccessFree || a == AccessPremium
}

// ParseAccess converts s to an Access, rejecting unknown values.
func ParseAccess(s string) (Access, error) {
	a := Access(s)
	if !a.Valid() {
		return "", fmt.Errorf("invalid access %q: use free or premium", s)
	}
	return a, nil
}

// RelatedIDs is the ordered list of related map identifiers. Older catalogs
// stored related maps as {"id", "title"} objects; UnmarshalJSON accepts both
// shapes and keeps only the identifiers.
type RelatedIDs []string

// UnmarshalJSON decodes either a list of strings or a list of objects with
// an "id" field.
func (r *RelatedIDs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ids := make(RelatedIDs, 0, len(raw))
	for _, elem := range raw {
		var id string
		if err := json.Unmarshal(elem, &id); err == nil {
			ids = append(ids, id)
			continue
		}
		var ref RelatedMap
		if err := json.Unmarshal(elem, &ref); err != nil {
			return fmt.Errorf("related map entry: %w", err)
		}
		ids = append(ids, ref.ID)
	}
	*r = ids
	return nil
}

// RelatedMap is a scored relatedness hit: an identifier plus the title it
// was matched on.
type RelatedMap struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// SummaryEntry is the catalog index projection of a DetailRecord. It
// carries every field except the tree.
type SummaryEntry struct {
	// ID has the form map_NNNN.
	ID string `json:"id" yaml:"id" validate:"required,mapid"`

	Title     string `json:"title" yaml:"title" validate:"required"`
	Specialty string `json:"specialty" yaml:"specialty"`
	Tag       string `json:"tag" yaml:"tag"`

	// Access is free or premium. Legacy records may omit it.
	Access Access `json:"access" yaml:"access" validate:"omitempty,oneof=free premium"`

	// NodeCount always equals the live node count of the detail tree.
	NodeCount int `json:"node_count" yaml:"node_count" validate:"gte=1"`

	// CreatedDate is the ingestion date, YYYY-MM-DD.
	CreatedDate string `json:"created_date,omitempty" yaml:"created_date,omitempty"`

	// SourceFile is the base name of the ingested source document.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`

	// RelatedMaps holds at most five ids, never the entry's own.
	RelatedMaps RelatedIDs `json:"related_maps" yaml:"related_maps" validate:"max=5"`

	// References lists bibliographic references found in tabbed-text input.
	References []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// DetailRecord is the full per-item record persisted in its own file.
type DetailRecord struct {
	SummaryEntry `yaml:",inline"`

	Root Node `json:"root" yaml:"root"`
}

// Summary returns the index projection of d.
func (d *DetailRecord) Summary() SummaryEntry {
	s := d.SummaryEntry
	if s.RelatedMaps == nil {
		s.RelatedMaps = RelatedIDs{}
	}
	return s
}
