// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Format identifies how a source file is turned into a tree.
type Format string

const (
	// FormatOutline is a SimpleMind .smmx container.
	FormatOutline Format = "outline"
	// FormatTabbed is indentation-delimited text.
	FormatTabbed Format = "tabbed"
	// FormatExtracted is a document read through an external text tool.
	FormatExtracted Format = "extracted"
)

var formatsByExt = map[string]Format{
	".smmx": FormatOutline,
	".txt":  FormatTabbed,
	".pdf":  FormatExtracted,
	".docx": FormatExtracted,
	".pptx": FormatExtracted,
}

// ExcludedDirs are path fragments never collected from a folder tree.
var ExcludedDirs = []string{"_Backup", "_Duplicados"}

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, bool) {
	f, ok := formatsByExt[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Collect walks root and returns every supported source file, sorted.
// Hidden entries and paths containing an ExcludedDirs fragment are
// skipped.
func Collect(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if excluded(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := FormatOf(path); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func excluded(path string) bool {
	for _, frag := range ExcludedDirs {
		if strings.Contains(path, frag) {
			return true
		}
	}
	return false
}
