// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mirror exports catalog entries in the shape consumed by the
// remote catalog mirror.
package mirror

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"slices"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/criaah/medmaps/internal/classify"
	"github.com/criaah/medmaps/pkg/types"
)

// Status labels shown by the mirror.
const (
	StatusFree    = "Gratis"
	StatusPremium = "Premium"
)

// maxTitleRunes is the mirror's title column width.
const maxTitleRunes = 100

// Format selects the export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates s as an export format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q: use yaml or json", s)
	}
}

// Source enumerates the catalog.
type Source interface {
	LoadIndex() ([]types.SummaryEntry, error)
}

// Record is one mirror row.
type Record struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Specialty string `json:"specialty" yaml:"specialty"`
	Tag       string `json:"tag" yaml:"tag"`
	NodeCount int    `json:"node_count" yaml:"node_count"`
	Status    string `json:"status" yaml:"status"`
	URL       string `json:"url" yaml:"url"`
}

// Exporter builds mirror records.
type Exporter struct {
	portal string
}

// NewExporter returns an exporter linking records to the viewer at
// cfg.PortalURL.
func NewExporter(cfg types.MirrorConfig) *Exporter {
	portal := cfg.PortalURL
	if portal == "" {
		portal = types.DefaultPortalURL
	}
	return &Exporter{portal: portal}
}

// Status maps an access level to its mirror label. Maps without an access
// level are shown as free.
func Status(a types.Access) string {
	if a == types.AccessPremium {
		return StatusPremium
	}
	return StatusFree
}

// URL returns the viewer link for id.
func (x *Exporter) URL(id string) string {
	return x.portal + "?map=" + url.QueryEscape(id)
}

// Record converts one summary entry. Specialties the mirror does not know
// are exported as the default specialty.
func (x *Exporter) Record(e types.SummaryEntry) Record {
	specialty := e.Specialty
	if !slices.Contains(classify.Specialties, specialty) {
		specialty = classify.DefaultSpecialty
	}
	return Record{
		ID:        e.ID,
		Title:     clip(e.Title, maxTitleRunes),
		Specialty: specialty,
		Tag:       e.Tag,
		NodeCount: e.NodeCount,
		Status:    Status(e.Access),
		URL:       x.URL(e.ID),
	}
}

// Records converts every entry in src, in index order.
func (x *Exporter) Records(src Source) ([]Record, error) {
	entries, err := src.LoadIndex()
	if err != nil {
		return nil, err
	}
	out := make([]Record, len(entries))
	for i, e := range entries {
		out[i] = x.Record(e)
	}
	return out, nil
}

// Export writes every record from src to w in format f and returns the
// number written.
func (x *Exporter) Export(src Source, f Format, w io.Writer) (int, error) {
	records, err := x.Records(src)
	if err != nil {
		return 0, err
	}
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(records); err != nil {
			return 0, fmt.Errorf("marshaling JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return 0, fmt.Errorf("marshaling YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return 0, fmt.Errorf("marshaling YAML: %w", err)
		}
	default:
		return 0, fmt.Errorf("unknown export format %q", f)
	}
	return len(records), nil
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
