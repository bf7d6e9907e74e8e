// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// referenceHeadings mark the start of the bibliography section.
var referenceHeadings = []string{"referencia", "reference", "bibliograph", "bibliografía"}

var numberingPattern = regexp.MustCompile(`^\d+\.\s*`)

// minReferenceRunes is the minimum length of a kept reference line.
const minReferenceRunes = 11

// ExtractReferences returns the non-blank lines that follow a reference
// heading, with leading "N. " numbering stripped. Lines shorter than
// minReferenceRunes are discarded.
func ExtractReferences(text string) []string {
	var refs []string
	inRefs := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if isReferenceHeading(trimmed) {
			inRefs = true
			continue
		}
		if !inRefs || trimmed == "" {
			continue
		}
		ref := numberingPattern.ReplaceAllString(trimmed, "")
		if utf8.RuneCountInString(ref) >= minReferenceRunes {
			refs = append(refs, ref)
		}
	}
	return refs
}

func isReferenceHeading(line string) bool {
	lower := strings.ToLower(line)
	for _, h := range referenceHeadings {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}
