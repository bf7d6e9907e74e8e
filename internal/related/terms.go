// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package related

// Term links a canonical medical term to the title terms it implies. A
// candidate mentioning Canonical boosts catalog entries whose title
// contains Canonical itself or any of Associated.
type Term struct {
	Canonical  string
	Associated []string
}

// DefaultTerms is the built-in co-occurrence dictionary.
var DefaultTerms = []Term{
	{"delirium", []string{"demencia", "deterioro cognitivo", "sedación", "benzodiacepinas"}},
	{"fragilidad", []string{"sarcopenia", "caídas", "polifarmacia", "dependencia funcional"}},
	{"insuficiencia cardíaca", []string{"cardiología", "diuréticos", "ieca", "betabloqueadores"}},
	{"diabetes", []string{"nefropatía", "neuropatía", "pie diabético", "insulina"}},
	{"hipertensión", []string{"sprint", "cardiovascular", "ieca", "ara-ii"}},
	{"demencia", []string{"alzheimer", "deterioro cognitivo", "delirium", "neurología"}},
	{"caídas", []string{"fragilidad", "osteoporosis", "fractura", "ortogeriatría"}},
	{"polifarmacia", []string{"stopp/start", "deprescripción", "interacciones", "anticolinérgicos"}},
	{"sarcopenia", nil},
	{"fibrilación", nil},
	{"erc", nil},
	{"diálisis", nil},
	{"anemia", nil},
	{"anticoagulación", nil},
	{"depresión", nil},
	{"parkinson", nil},
	{"alzheimer", nil},
	{"stroke", nil},
	{"acv", nil},
	{"neumonía", nil},
	{"sepsis", nil},
	{"shock", nil},
	{"ventilación", nil},
	{"iam", nil},
	{"sca", nil},
	{"osteoporosis", nil},
	{"fractura", nil},
	{"cadera", nil},
	{"deglución", nil},
	{"disfagia", nil},
	{"incontinencia", nil},
	{"deterioro cognitivo", nil},
	{"agitación", nil},
}
