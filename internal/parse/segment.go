// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// segmentLines is the number of non-blank lines considered.
	segmentLines = 100
	// sectionChildren caps the body lines kept under one heading.
	sectionChildren = 10
	// fallbackLines is the number of leading lines scanned when no heading
	// was found.
	fallbackLines = 20
	// minBodyRunes: body lines must be longer than this.
	minBodyRunes = 10
	// maxChildRunes truncates each child's text.
	maxChildRunes = 100
	// heading length bounds, exclusive.
	minHeadingRunes = 3
	maxHeadingRunes = 50
)

// TitlePrefixes are specialty abbreviations stripped from the front of a
// file stem when deriving a title for extracted text. Only the first
// matching prefix is removed.
var TitlePrefixes = []string{"Bronco.", "Cardio", "Dermato.", "Endocrino.", "Hemato Onco."}

// SegmentTitle derives a map title from a file stem.
func SegmentTitle(stem string) string {
	for _, p := range TitlePrefixes {
		if strings.HasPrefix(stem, p) {
			if t := strings.TrimSpace(strings.TrimPrefix(stem, p)); t != "" {
				return t
			}
			break
		}
	}
	return stem
}

// Segment splits extracted text into a two-level tree. Upper-case lines of
// 4 to 49 characters start sections; longer body lines become their
// children. Without any heading, the first lines are attached directly to
// the root.
func Segment(text, stem string) *Document {
	title := SegmentTitle(stem)

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}

	root := &draft{text: title}
	var section *draft

	for _, line := range head(lines, segmentLines) {
		n := utf8.RuneCountInString(line)
		switch {
		case isUpper(line) && n > minHeadingRunes && n < maxHeadingRunes:
			section = &draft{text: titleCase(line)}
			root.add(section)
		case section != nil && n > minBodyRunes:
			if len(section.children) < sectionChildren {
				section.add(&draft{text: truncate(line, maxChildRunes)})
			}
		}
	}

	if len(root.children) == 0 {
		for _, line := range head(lines, fallbackLines) {
			if utf8.RuneCountInString(line) > minBodyRunes {
				root.add(&draft{text: truncate(line, maxChildRunes)})
			}
		}
	}

	return &Document{Title: title, Root: root.node()}
}

func head(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	return lines
}

// isUpper reports whether s has at least one cased letter and no lower or
// title case letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// titleCase upper-cases the first letter of each run of letters and
// lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	prevCased := false
	for _, r := range s {
		isCased := unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
		switch {
		case isCased && !prevCased:
			b.WriteRune(unicode.ToTitle(r))
		case isCased:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevCased = isCased
	}
	return b.String()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
