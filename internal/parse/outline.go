// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// PayloadPaths lists the internal paths searched, in order, for the outline
// markup inside a container. The first one present wins.
var PayloadPaths = []string{
	"document/mindmap.xml",
	"document.xml",
	"mindmap.xml",
}

// smmxRoot accepts either <simplemind-mindmaps><mindmap><topics/></mindmap>
// or a document whose root element is the mindmap itself.
type smmxRoot struct {
	Mindmap *smmxMindmap `xml:"mindmap"`
	Topics  *smmxTopics  `xml:"topics"`
}

type smmxMindmap struct {
	Topics *smmxTopics `xml:"topics"`
}

type smmxTopics struct {
	Items []smmxTopic `xml:",any"`
}

type smmxTopic struct {
	ID     string `xml:"id,attr"`
	Text   string `xml:"text,attr"`
	Parent string `xml:"parent,attr"`
}

// ParseOutlineFile opens the container at path and parses its outline.
func ParseOutlineFile(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, newError(ReasonMalformed, path, "opening container: %v", err)
	}
	defer zr.Close()
	return parseContainer(&zr.Reader, path, Stem(path))
}

// ParseOutline parses an in-memory container. stem is used as the title
// when the root topic has no text.
func ParseOutline(data []byte, stem string) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, newError(ReasonMalformed, "", "opening container: %v", err)
	}
	return parseContainer(zr, "", stem)
}

func parseContainer(zr *zip.Reader, path, stem string) (*Document, error) {
	payload, err := readPayload(zr)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(ReasonNoPayload, path, "none of %v present", PayloadPaths)
		}
		return nil, newError(ReasonMalformed, path, "reading payload: %v", err)
	}

	doc, err := parseOutlineXML(payload, stem)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return doc, nil
}

func readPayload(zr *zip.Reader) ([]byte, error) {
	for _, name := range PayloadPaths {
		f, err := zr.Open(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fs.ErrNotExist
}

// parseOutlineXML links topics under their parents. Topics whose parent is
// missing or unknown are roots; the first root becomes the tree and every
// further root is appended to it as an extra child.
func parseOutlineXML(payload []byte, stem string) (*Document, error) {
	var root smmxRoot
	if err := xml.Unmarshal(payload, &root); err != nil {
		return nil, newError(ReasonMalformed, "", "decoding outline: %v", err)
	}

	topics := root.Topics
	if root.Mindmap != nil {
		topics = root.Mindmap.Topics
	}
	if topics == nil || len(topics.Items) == 0 {
		return nil, newError(ReasonEmptyOutline, "", "")
	}

	// Later duplicates of an id replace the earlier topic but keep its position.
	var order []string
	byID := make(map[string]*draft, len(topics.Items))
	parents := make(map[string]string, len(topics.Items))
	for _, t := range topics.Items {
		if d, ok := byID[t.ID]; ok {
			d.text = t.Text
		} else {
			byID[t.ID] = &draft{text: t.Text}
			order = append(order, t.ID)
		}
		parents[t.ID] = t.Parent
	}

	var roots []*draft
	for _, id := range order {
		d := byID[id]
		if p, ok := byID[parents[id]]; ok && parents[id] != "" {
			p.add(d)
			continue
		}
		roots = append(roots, d)
	}
	if len(roots) == 0 {
		return nil, newError(ReasonEmptyOutline, "", "no root topic")
	}

	tree := roots[0].node()
	for _, extra := range roots[1:] {
		tree.Append(extra.node())
	}

	return &Document{
		Title: titleOr(tree.Text, stem),
		Root:  tree,
	}, nil
}
