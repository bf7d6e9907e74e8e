// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strings"

	"github.com/criaah/medmaps/pkg/types"
)

// EmphasisMarker replaces the ** delimiters of an emphasized phrase.
const EmphasisMarker = "⚡"

var emphasisPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Emphasize rewrites every **phrase** span as EmphasisMarker + phrase.
func Emphasize(line string) string {
	return emphasisPattern.ReplaceAllString(line, EmphasisMarker+"$1")
}

// IndentLevel returns the indentation depth of line: one level per tab and
// one per four spaces, accumulated over the leading whitespace run and
// truncated toward zero.
func IndentLevel(line string) int {
	quarters := 0
	for _, r := range line {
		switch r {
		case '\t':
			quarters += 4
		case ' ':
			quarters++
		default:
			return quarters / 4
		}
	}
	return quarters / 4
}

type level struct {
	depth int
	node  *draft
}

// ParseTabbed builds a tree from indentation-delimited text. The first
// non-blank line is the root; each later line sits at its indent level + 1
// under the nearest shallower line. Input with no content yields a single
// Placeholder node.
func ParseTabbed(text string) types.Node {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	start := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			start = i
			break
		}
	}
	if start < 0 {
		return types.NewNode(Placeholder)
	}

	root := &draft{text: strings.TrimSpace(lines[start])}
	stack := []level{{depth: 0, node: root}}

	for _, line := range lines[start+1:] {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		depth := IndentLevel(line) + 1
		n := &draft{text: Emphasize(text)}

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			// No surviving ancestor: the line is dropped.
			continue
		}
		stack[len(stack)-1].node.add(n)
		stack = append(stack, level{depth: depth, node: n})
	}

	return root.node()
}

// ParseTabbedDocument parses text into a Document, taking the title from
// the root line (or stem when empty) and collecting the reference section.
func ParseTabbedDocument(text, stem string) *Document {
	root := ParseTabbed(text)
	title := root.Text
	if title == Placeholder && strings.TrimSpace(text) == "" {
		title = stem
	}
	return &Document{
		Title:      titleOr(title, stem),
		Root:       root,
		References: ExtractReferences(text),
	}
}
