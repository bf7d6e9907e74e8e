// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentHeadings(t *testing.T) {
	text := strings.Join([]string{
		"INTRODUCCIÓN",
		"La neumonía adquirida en la comunidad es frecuente.",
		"corto",
		"DIAGNÓSTICO",
		"Radiografía de tórax en todos los pacientes.",
	}, "\n")

	doc := Segment(text, "Bronco. Neumonía")

	assert.Equal(t, "Neumonía", doc.Title)
	assert.Equal(t, "Neumonía", doc.Root.Text)
	require.Len(t, doc.Root.Children, 2)
	assert.Equal(t, "Introducción", doc.Root.Children[0].Text)
	require.Len(t, doc.Root.Children[0].Children, 1)
	assert.Equal(t, "Diagnóstico", doc.Root.Children[1].Text)
}

func TestSegmentSectionCap(t *testing.T) {
	lines := []string{"SECTION ONE"}
	for i := 0; i < 15; i++ {
		lines = append(lines, fmt.Sprintf("body line number %02d", i))
	}
	doc := Segment(strings.Join(lines, "\n"), "stem")
	require.Len(t, doc.Root.Children, 1)
	assert.Len(t, doc.Root.Children[0].Children, sectionChildren)
}

func TestSegmentOnlyFirstHundredLines(t *testing.T) {
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, fmt.Sprintf("filler text line %03d", i))
	}
	lines = append(lines, "LATE HEADING")
	doc := Segment(strings.Join(lines, "\n"), "stem")
	// The heading is beyond the window, so the fallback applies.
	assert.Len(t, doc.Root.Children, fallbackLines)
	for _, c := range doc.Root.Children {
		assert.NotEqual(t, "Late Heading", c.Text)
	}
}

func TestSegmentFallback(t *testing.T) {
	lines := []string{"short", strings.Repeat("x", 150)}
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("ordinary sentence %02d", i))
	}
	doc := Segment(strings.Join(lines, "\n"), "stem")

	// 20 leading lines considered, one of them too short.
	assert.Len(t, doc.Root.Children, 19)
	assert.Len(t, []rune(doc.Root.Children[0].Text), maxChildRunes)
}

func TestSegmentHeadingBounds(t *testing.T) {
	tests := []struct {
		line    string
		heading bool
	}{
		{"ABC", false},
		{"ABCD", true},
		{strings.Repeat("A", 49), true},
		{strings.Repeat("A", 50), false},
		{"TABLA 1", true},
		{"1234 5678", false},
		{"Mixed Case", false},
	}
	for _, tt := range tests {
		doc := Segment(tt.line+"\nthis body line is long enough", "stem")
		isHeading := len(doc.Root.Children) == 1 && len(doc.Root.Children[0].Children) == 1
		assert.Equal(t, tt.heading, isHeading, "line %q", tt.line)
	}
}

func TestSegmentTitle(t *testing.T) {
	assert.Equal(t, "Insuficiencia cardíaca", SegmentTitle("Cardio Insuficiencia cardíaca"))
	assert.Equal(t, "Linfomas", SegmentTitle("Hemato Onco. Linfomas"))
	assert.Equal(t, "Geriatría general", SegmentTitle("Geriatría general"))
	assert.Equal(t, "Cardio", SegmentTitle("Cardio"))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Manejo Inicial", titleCase("MANEJO INICIAL"))
	assert.Equal(t, "Tabla 1-A", titleCase("TABLA 1-A"))
}
