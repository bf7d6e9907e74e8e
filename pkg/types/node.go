// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// Node is one element of a map tree. A leaf carries an empty, non-nil
// Children slice so that it serializes as [] rather than null; NewNode and
// UnmarshalJSON keep it that way.
type Node struct {
	// Text is the node label.
	Text string `json:"text" yaml:"text"`

	// Children holds the ordered child nodes.
	Children []Node `json:"children" yaml:"children"`
}

// NewNode returns a leaf node with the given text.
func NewNode(text string) Node {
	return Node{Text: text, Children: []Node{}}
}

// Append adds child as the last child of n.
func (n *Node) Append(child Node) {
	n.Children = append(n.Children, child)
}

// UnmarshalJSON decodes a node and normalizes absent children to an empty slice.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Children == nil {
		p.Children = []Node{}
	}
	*n = Node(p)
	return nil
}
