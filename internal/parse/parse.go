// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse converts source documents into map trees. Three formats are
// supported: SimpleMind outline containers (.smmx, a zip holding an XML
// topic list), indentation-delimited text, and loosely structured text
// obtained from an external extraction tool.
package parse

import (
	"path/filepath"
	"strings"

	"github.com/criaah/medmaps/pkg/types"
)

// Placeholder is the root text used when a text source has no content.
const Placeholder = "Sin contenido"

// Document is the result of parsing one source file.
type Document struct {
	// Title is the map title: the root text, or the file stem when the
	// root text is empty.
	Title string

	// Root is the extracted tree.
	Root types.Node

	// References holds bibliographic references (tabbed text only).
	References []string
}

// Stem returns the file name of path without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// draft is a mutable node used while linking; tree positions are stable
// because children are held by pointer.
type draft struct {
	text     string
	children []*draft
}

func (d *draft) add(child *draft) {
	d.children = append(d.children, child)
}

// node converts the draft subtree to an immutable types.Node.
func (d *draft) node() types.Node {
	n := types.Node{Text: d.text, Children: make([]types.Node, 0, len(d.children))}
	for _, c := range d.children {
		n.Children = append(n.Children, c.node())
	}
	return n
}

func titleOr(text, stem string) string {
	if strings.TrimSpace(text) != "" {
		return text
	}
	return stem
}
