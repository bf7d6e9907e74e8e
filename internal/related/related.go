// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package related scores catalog entries against a new map's content and
// returns the most related ones.
//
// Two signals are combined. A catalog title word longer than four letters
// that occurs anywhere in the candidate text qualifies the entry, so
// "fractura" matches "fracturas". A dictionary
// term mentioned by the candidate adds TermBoost to every entry whose title
// contains the term or one of its associated terms. Entries of the generic
// specialty lose GenericPenalty. Qualified entries score at least 1; only
// positive scores are kept.
package related

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/criaah/medmaps/pkg/types"
)

const (
	// MaxRelated caps the result length.
	MaxRelated = 5

	// TermBoost is added per dictionary term linking candidate and entry.
	TermBoost = 3

	// GenericPenalty is subtracted from entries of GenericSpecialty.
	GenericPenalty = 1

	// GenericSpecialty is the catch-all specialty label.
	GenericSpecialty = "General"

	// minWordRunes: title words must be longer than this to qualify.
	minWordRunes = 4
)

// Engine ranks catalog entries by relatedness.
type Engine struct {
	terms []Term
}

// NewEngine returns an engine using terms, or DefaultTerms when nil.
func NewEngine(terms []Term) *Engine {
	if terms == nil {
		terms = DefaultTerms
	}
	return &Engine{terms: terms}
}

type scored struct {
	pos     int
	score   int
	generic bool
	entry   types.SummaryEntry
}

// Related returns at most MaxRelated entries from catalog, most related
// first. The entry with id self is never returned. Equal scores keep
// non-generic entries first, then catalog order, so repeated calls with
// the same inputs give the same result.
func (e *Engine) Related(text string, catalog []types.SummaryEntry, self string) []types.RelatedMap {
	content := fold(text)
	mentioned := e.mentioned(content)

	var hits []scored
	for i, entry := range catalog {
		if entry.ID == self || entry.ID == "" {
			continue
		}
		title := fold(entry.Title)

		score := 0
		for _, t := range mentioned {
			if titleHas(title, t) {
				score += TermBoost
			}
		}
		generic := entry.Specialty == GenericSpecialty
		if generic {
			score -= GenericPenalty
		}
		if qualifies(title, content) && score < 1 {
			score = 1
		}
		if score > 0 {
			hits = append(hits, scored{pos: i, score: score, generic: generic, entry: entry})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.generic != b.generic {
			return !a.generic
		}
		return a.pos < b.pos
	})

	if len(hits) > MaxRelated {
		hits = hits[:MaxRelated]
	}
	out := make([]types.RelatedMap, len(hits))
	for i, h := range hits {
		out[i] = types.RelatedMap{ID: h.entry.ID, Title: h.entry.Title}
	}
	return out
}

// RelatedIDs is Related reduced to identifiers.
func (e *Engine) RelatedIDs(text string, catalog []types.SummaryEntry, self string) types.RelatedIDs {
	hits := e.Related(text, catalog, self)
	ids := make(types.RelatedIDs, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	return ids
}

// mentioned returns the dictionary terms present in content.
func (e *Engine) mentioned(content string) []Term {
	var out []Term
	for _, t := range e.terms {
		if strings.Contains(content, t.Canonical) {
			out = append(out, t)
		}
	}
	return out
}

func titleHas(title string, t Term) bool {
	if strings.Contains(title, t.Canonical) {
		return true
	}
	for _, a := range t.Associated {
		if strings.Contains(title, a) {
			return true
		}
	}
	return false
}

func qualifies(title, content string) bool {
	for _, w := range Tokenize(title) {
		if utf8.RuneCountInString(w) > minWordRunes && strings.Contains(content, w) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Tokenize splits s into lower-case runs of letters and digits.
func Tokenize(s string) []string {
	var tokens []string
	var current strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			current.WriteRune(unicode.ToLower(r))
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
