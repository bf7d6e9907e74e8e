// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package related

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/criaah/medmaps/pkg/types"
)

func entry(id, title, specialty string) types.SummaryEntry {
	return types.SummaryEntry{ID: id, Title: title, Specialty: specialty}
}

func ids(hits []types.RelatedMap) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.ID
	}
	return out
}

func TestRelatedTermBoost(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Demencia con cuerpos de Lewy", "Neurología"),
		entry("map_0002", "Sedación paliativa", "Geriatría"),
		entry("map_0003", "Anemia ferropénica", "Hematología"),
	}
	e := NewEngine(nil)

	hits := e.Related("Delirium Prevención no farmacológica", catalog, "map_0099")
	assert.Equal(t, []string{"map_0001", "map_0002"}, ids(hits))
	assert.Equal(t, "Demencia con cuerpos de Lewy", hits[0].Title)
}

func TestRelatedScoresAccumulate(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Sedación", "Geriatría"),
		// Matched by delirium (demencia) and by demencia itself.
		entry("map_0002", "Demencia avanzada", "Geriatría"),
	}
	hits := NewEngine(nil).Related("delirium y demencia", catalog, "")
	assert.Equal(t, []string{"map_0002", "map_0001"}, ids(hits))
}

func TestRelatedSharedWord(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Hiponatremia", "Nefrología"),
		entry("map_0002", "Tos", "Neumología"),
		entry("map_0003", "Hiponatremias", "Nefrología"),
	}
	hits := NewEngine([]Term{}).Related("Manejo de la hiponatremia aguda", catalog, "")
	// Short title words never qualify; a longer title word must occur in the text.
	assert.Equal(t, []string{"map_0001"}, ids(hits))
}

func TestRelatedSharedWordMatchesInsideLongerWord(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Fractura de cadera", "Ortogeriatría"),
	}
	got := NewEngine([]Term{}).RelatedIDs("Manejo de fracturas vertebrales", catalog, "map_0002")
	assert.Equal(t, types.RelatedIDs{"map_0001"}, got)
}

func TestRelatedSharedWordRescuesGeneric(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Bioestadística básica", "General"),
	}
	hits := NewEngine(nil).Related("bioestadística para clínicos", catalog, "")
	assert.Equal(t, []string{"map_0001"}, ids(hits))
}

func TestRelatedGenericPenalty(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Osteoporosis en general", "General"),
		entry("map_0002", "Osteoporosis posmenopáusica", "Reumatología"),
	}
	// Both get +3 from "caídas"; the generic one drops to 2.
	hits := NewEngine(nil).Related("caídas recurrentes", catalog, "")
	assert.Equal(t, []string{"map_0002", "map_0001"}, ids(hits))
}

func TestRelatedGenericNeverOutranksEqualScore(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Protocolo de sepsis", "General"),
		entry("map_0002", "Protocolo de ventilación", "UCI-Medicina Crítica"),
	}
	// Only shared words link these: both score 1 after the floor.
	hits := NewEngine([]Term{}).Related("protocolo institucional", catalog, "")
	assert.Equal(t, []string{"map_0002", "map_0001"}, ids(hits))
}

func TestRelatedGenericWithoutSignalIsDropped(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Misceláneas", "General"),
		entry("map_0002", "Sedación en general", "General"),
	}
	hits := NewEngine(nil).Related("delirium", catalog, "")
	assert.Equal(t, []string{"map_0002"}, ids(hits))
}

func TestRelatedExcludesSelf(t *testing.T) {
	catalog := []types.SummaryEntry{
		entry("map_0001", "Sepsis", "UCI-Medicina Crítica"),
		entry("map_0002", "Shock séptico y sepsis", "UCI-Medicina Crítica"),
	}
	hits := NewEngine(nil).Related("Sepsis", catalog, "map_0001")
	assert.Equal(t, []string{"map_0002"}, ids(hits))
}

func TestRelatedCapAndDeterminism(t *testing.T) {
	var catalog []types.SummaryEntry
	for i := 1; i <= 12; i++ {
		catalog = append(catalog, entry(fmt.Sprintf("map_%04d", i), fmt.Sprintf("Fractura tipo %d", i), "Ortogeriatría"))
	}
	e := NewEngine(nil)
	text := "fractura de cadera"

	first := e.Related(text, catalog, "")
	second := e.Related(text, catalog, "")
	require.Len(t, first, MaxRelated)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"map_0001", "map_0002", "map_0003", "map_0004", "map_0005"}, ids(first))
}

func TestRelatedEmptyCatalog(t *testing.T) {
	hits := NewEngine(nil).Related("delirium", nil, "")
	assert.NotNil(t, hits)
	assert.Empty(t, hits)
}

func TestRelatedIDs(t *testing.T) {
	catalog := []types.SummaryEntry{entry("map_0001", "Sarcopenia", "Geriatría")}
	got := NewEngine(nil).RelatedIDs("fragilidad", catalog, "")
	assert.Equal(t, types.RelatedIDs{"map_0001"}, got)
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"insuficiencia", "cardíaca", "2024", "nyha", "iii"},
		Tokenize("Insuficiencia Cardíaca (2024): NYHA-III"))
	assert.Empty(t, Tokenize(" ,.; "))
}
