// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criaah/medmaps/pkg/types"
)

func entry(id, title, specialty, tag string, nodes int) types.SummaryEntry {
	return types.SummaryEntry{ID: id, Title: title, Specialty: specialty, Tag: tag, NodeCount: nodes, RelatedMaps: types.RelatedIDs{}}
}

var sampleEntries = []types.SummaryEntry{
	entry("map_0001", "Delirium en UCI", "Geriatría", "📚 Revisión", 12),
	entry("map_0002", "Demencia con cuerpos de Lewy", "Neurología", "📚 Revisión", 8),
	entry("map_0003", "Polifarmacia y deprescripción", "Geriatría", "💊 Farmacología", 5),
	entry("map_0004", "Shock séptico", "UCI-Medicina Crítica", "📋 Guía Clínica", 7),
	entry("map_0005", "Delirium hipoactivo", "Geriatría", "", 3),
}

func ids(hits []Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.ID
	}
	return out
}

func TestTitles(t *testing.T) {
	assert.Equal(t, []string{"map_0001", "map_0005"}, ids(Titles(sampleEntries, "  DELIRIUM ", 0)))
	assert.Equal(t, []string{"map_0001"}, ids(Titles(sampleEntries, "delirium", 1)))
	assert.Empty(t, Titles(sampleEntries, "", 0))
	assert.Empty(t, Titles(sampleEntries, "sarcopenia", 0))
}

func TestExpand(t *testing.T) {
	got := Expand("Delirium")
	require.NotEmpty(t, got)
	assert.Equal(t, "delirium", got[0])
	assert.Contains(t, got, "demencia")
	assert.Contains(t, got, "polifarmacia")

	// "demencia" topics mention delirium too; repeats are dropped.
	seen := map[string]int{}
	for _, term := range Expand("demencia delirium") {
		seen[term]++
	}
	for term, n := range seen {
		assert.Equal(t, 1, n, term)
	}

	assert.Equal(t, []string{"xyz"}, Expand("xyz"))
}

func TestExpandTermInsideKey(t *testing.T) {
	got := Expand("cardíaca")
	assert.Contains(t, got, "sglt2")
}

func TestRelated(t *testing.T) {
	hits := Related(sampleEntries, "delirium", 0)
	assert.Equal(t, []string{"map_0001", "map_0005", "map_0002", "map_0003"}, ids(hits))
	assert.Equal(t, "delirium", hits[0].Matched)
	assert.Equal(t, "demencia", hits[2].Matched)

	assert.Len(t, Related(sampleEntries, "delirium", 2), 2)
}

func TestSummarize(t *testing.T) {
	st := Summarize(sampleEntries)
	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 35, st.Nodes)
	assert.Equal(t, Count{Label: "Geriatría", Count: 3}, st.Specialties[0])
	assert.Equal(t, Count{Label: "📚 Revisión", Count: 2}, st.Tags[0])
	assert.Contains(t, st.Tags, Count{Label: "N/A", Count: 1})
}
