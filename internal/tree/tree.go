// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tree implements the operations shared by every consumer of a map
// tree: node counting, text flattening, and depth-first traversal. All of
// them walk with an explicit stack so arbitrarily deep trees are safe.
package tree

import (
	"strings"

	"github.com/criaah/medmaps/pkg/types"
)

// CountNodes returns the number of nodes in root, including root itself.
func CountNodes(root types.Node) int {
	count := 0
	Walk(root, func(*types.Node, int) bool {
		count++
		return true
	})
	return count
}

// FlattenText joins the text of every node in pre-order with single spaces.
func FlattenText(root types.Node) string {
	var parts []string
	Walk(root, func(n *types.Node, _ int) bool {
		parts = append(parts, n.Text)
		return true
	})
	return strings.Join(parts, " ")
}

// Depth returns the number of levels in root; a single node has depth 1.
func Depth(root types.Node) int {
	max := 0
	Walk(root, func(_ *types.Node, depth int) bool {
		if depth+1 > max {
			max = depth + 1
		}
		return true
	})
	return max
}

// Visitor is called for each node with its depth (root = 0). Returning
// false stops the walk.
type Visitor func(n *types.Node, depth int) bool

type frame struct {
	node  *types.Node
	depth int
}

// Walk visits root and its descendants in pre-order.
func Walk(root types.Node, visit Visitor) {
	stack := []frame{{node: &root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(top.node, top.depth) {
			return
		}
		// Push in reverse so the first child is visited next.
		for i := len(top.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: &top.node.Children[i], depth: top.depth + 1})
		}
	}
}

// Normalize replaces every nil Children slice under root with an empty one,
// so leaves serialize as [] rather than null.
func Normalize(root *types.Node) {
	stack := []*types.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Children == nil {
			n.Children = []types.Node{}
		}
		for i := range n.Children {
			stack = append(stack, &n.Children[i])
		}
	}
}
