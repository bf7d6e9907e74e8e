// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "strings"

// DefaultTag is assigned when no keyword matches.
const DefaultTag = "📚 Revisión"

// TagRules are evaluated in order; the first tag with any keyword present
// in the text wins.
var TagRules = []TagRule{
	{"⭐ Estudio Pivotal", []string{"trial", "study", "ensayo", "sprint", "paradigm", "dapa", "empa", "sglt2", "rct", "horizon"}},
	{"📋 Guía Clínica", []string{"guía", "guideline", "aha", "esc", "acc", "nice", "consenso"}},
	{"🔬 Fisiopatología", []string{"fisiopatología", "mecanismo", "patogenia", "pathophysiology"}},
	{"💊 Farmacología", []string{"fármaco", "drug", "medicamento", "farmacología", "tratamiento"}},
	{"🏥 Caso Clínico", []string{"caso", "case", "clinical case"}},
	{"📄 Paper", []string{"paper", "artículo", "article", "review"}},
}

// Tags lists every tag a map may carry, in display order.
var Tags = []string{
	"📄 Paper", DefaultTag, "⭐ Estudio Pivotal",
	"📋 Guía Clínica", "🔬 Fisiopatología", "💊 Farmacología",
	"🏥 Caso Clínico",
}

// Specialties lists every specialty label, in display order.
var Specialties = []string{
	"Geriatría", "Cardiología", "Neurología", "Nefrología",
	"Endocrinología", "UCI-Medicina Crítica", "Infectología",
	"Hematología", "Gastroenterología", "Neumología",
	"Reumatología", "Psiquiatría", "Ortogeriatría",
	"Pediatría", "Dermatología", DefaultSpecialty, "Continuum", "Estudios Pivotales",
}

// Tag classifies title and body text. The texts are joined with a space
// before matching.
func Tag(title, body string) string {
	combined := fold(title + " " + body)
	for _, r := range TagRules {
		for _, kw := range r.Keywords {
			if strings.Contains(combined, kw) {
				return r.Tag
			}
		}
	}
	return DefaultTag
}
