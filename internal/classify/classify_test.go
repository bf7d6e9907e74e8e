// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"
)

func TestSpecialty(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"geriatrics folder", "/Esquemas/Geriatría/Delirium.smmx", "Geriatría"},
		{"case insensitive", "/ESQUEMAS/CARDIOLOGÍA/IC.smmx", "Cardiología"},
		{"pivotal first", "/Esquemas/Cardiología/Estudios Pivotales/DAPA-HF.smmx", "Estudios Pivotales"},
		{"continuum before folder map", "/Esquemas/Neurología/Continuum/Epilepsia.smmx", "Continuum"},
		{"pivotal beats continuum", "/Continuum/Estudios Pivotales/x.smmx", "Estudios Pivotales"},
		{"palliative maps to geriatrics", "/Esquemas/Paliativos/Dolor.smmx", "Geriatría"},
		{"no match", "/Esquemas/Varios/Notas.smmx", DefaultSpecialty},
		{"empty path", "", DefaultSpecialty},
		// "geriatría" is declared first, so it also claims ortogeriatría paths.
		{"geriatría is a substring of ortogeriatría", "/Esquemas/Ortogeriatría/Cadera.smmx", "Geriatría"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Specialty(tt.path))
		})
	}
}

func TestSpecialtyUCIOrdering(t *testing.T) {
	// Both keys match; the longer key is declared first and must win.
	assert.Equal(t, "UCI-Medicina Crítica", Specialty("/Esquemas/UCI-Medicina Crítica/Shock.smmx"))
	assert.Equal(t, "UCI-Medicina Crítica", Specialty("/Esquemas/uci/Shock.smmx"))

	ordered := map[string]int{}
	for i, r := range FolderRules {
		if _, seen := ordered[r.Substring]; !seen {
			ordered[r.Substring] = i
		}
	}
	assert.Less(t, ordered["uci-medicina crítica"], ordered["uci"])
	assert.Less(t, ordered["hematología"], ordered["hematología y oncología"])
}

func TestSpecialtyDecomposedAccents(t *testing.T) {
	path := norm.NFD.String("/Esquemas/Nefrología/ERC.smmx")
	assert.Equal(t, "Nefrología", Specialty(path))
}

func TestExtractedSpecialty(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/Esquemas/Bronco. EPOC.pdf", "Neumología"},
		{"/Esquemas/Cardio Insuficiencia.pdf", "Cardiología"},
		{"/Esquemas/Dermato. Psoriasis.pdf", "General"},
		{"/Esquemas/Hemato Onco. Linfoma.pdf", "Hematología"},
		{"/Esquemas/Neuro ictus.pdf", "Neurología"},
		{"/Esquemas/Geriatría/Sarcopenia.pdf", "Geriatría"},
		{"/Esquemas/Otros.pdf", DefaultSpecialty},
		// Folder names do not take part in the file-name rules.
		{"/Cardio/Sarcopenia.pdf", DefaultSpecialty},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractedSpecialty(tt.path), tt.path)
	}
}

func TestTag(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  string
	}{
		{"trial keyword", "DAPA-HF", "", "⭐ Estudio Pivotal"},
		{"guideline", "Guía ESC 2023", "", "📋 Guía Clínica"},
		{"consensus", "Consenso de expertos", "", "📋 Guía Clínica"},
		{"body keyword", "Sepsis", "mecanismo de daño", "🔬 Fisiopatología"},
		{"pharmacology", "Anticoagulantes", "elección del fármaco", "💊 Farmacología"},
		{"case", "Caso de la semana", "", "🏥 Caso Clínico"},
		{"case insensitive", "RANDOMIZED TRIAL", "", "⭐ Estudio Pivotal"},
		{"default", "Delirium", "cam positivo", DefaultTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tag(tt.title, tt.body))
		})
	}
}

func TestTagFirstRuleWins(t *testing.T) {
	// "review" is a Paper keyword, but "study" belongs to an earlier rule.
	assert.Equal(t, "⭐ Estudio Pivotal", Tag("A review of one study", ""))
	assert.Equal(t, "📄 Paper", Tag("Narrative review", ""))
}

func TestLabelLists(t *testing.T) {
	assert.Contains(t, Tags, DefaultTag)
	assert.Contains(t, Specialties, DefaultSpecialty)
	for _, r := range TagRules {
		assert.Contains(t, Tags, r.Tag)
	}
	for _, r := range FolderRules {
		assert.Contains(t, Specialties, r.Label)
	}
}
