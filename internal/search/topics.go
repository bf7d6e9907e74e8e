// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

// Topic expands a query key into related title terms.
type Topic struct {
	Key     string
	Related []string
}

// Topics is the query expansion dictionary used by related search. A
// query matches a topic when either contains the other.
var Topics = []Topic{
	{"delirium", []string{"demencia", "polifarmacia", "fragilidad", "uci", "cam", "agitación"}},
	{"fragilidad", []string{"sarcopenia", "caídas", "polifarmacia", "cfs", "deterioro funcional"}},
	{"insuficiencia cardíaca", []string{"sglt2", "diuréticos", "cardiorrenal", "bnp", "fevi"}},
	{"diabetes", []string{"erc", "neuropatía", "sglt2", "hipoglicemia", "hba1c"}},
	{"demencia", []string{"delirium", "dcl", "parkinson", "alzheimer", "lewy", "dft"}},
	{"acv", []string{"fibrilación", "anticoagulación", "nihss", "stroke", "isquémico"}},
	{"stroke", []string{"fibrilación", "anticoagulación", "nihss", "acv", "isquémico"}},
	{"sepsis", []string{"shock", "uci", "antimicrobianos", "sofa", "qsofa"}},
	{"fractura", []string{"osteoporosis", "caídas", "ortogeriatría", "cadera", "vte"}},
	{"parkinson", []string{"demencia", "lewy", "diskinesia", "temblor", "bradicinesia"}},
	{"erc", []string{"diálisis", "anemia", "hipertensión", "kdigo", "nefropatía"}},
	{"fibrilación", []string{"anticoagulación", "acv", "cha2ds2", "ablación", "cardioversión"}},
	{"neumonía", []string{"sepsis", "antimicrobianos", "curb", "nac", "respiratorio"}},
	{"osteoporosis", []string{"caídas", "fractura", "vitamina d", "bifosfonatos", "dexa"}},
}

// Expand returns term followed by the related terms of every matching
// topic, without repeats, in dictionary order.
func Expand(term string) []string {
	q := fold(term)
	terms := []string{q}
	seen := map[string]bool{q: true}
	for _, t := range Topics {
		if !contains(t.Key, q) && !contains(q, t.Key) {
			continue
		}
		for _, r := range t.Related {
			if !seen[r] {
				seen[r] = true
				terms = append(terms, r)
			}
		}
	}
	return terms
}
