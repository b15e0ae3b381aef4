// Package region resolves a coordinate to the most specific named region
// containing it. Regions form a tree built once from a document; every
// node carries a bounding box used as a prefilter and, for leaves, a single
// polygon ring used for the exact containment test.
//
// A built tree is never mutated, so any number of goroutines may search
// it at the same time without locking.
package region

import (
	"strings"

	"github.com/paulmach/orb"

	"github.com/1F47E/geo-region-tree/pkg/geo"
)

// PathSeparator joins region names in a breadcrumb path, most specific first.
const PathSeparator = " <- "

// Node is one region of the tree. Children are owned by value.
type Node struct {
	name     string
	bounds   geo.Bounds
	ring     orb.Ring
	children []Node
}

// Name returns the region label.
func (n *Node) Name() string { return n.name }

// Bounds returns the box spanned by the node's own ring. It is empty when
// the node declared no ring, and it never includes the children's boxes.
func (n *Node) Bounds() geo.Bounds { return n.bounds }

// Ring returns the node's own ring. Callers must not modify it.
func (n *Node) Ring() orb.Ring { return n.ring }

// IsLeaf reports whether the node has no children and is therefore
// matched against its own ring.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child in document order.
func (n *Node) Child(i int) *Node { return &n.children[i] }

// Walk visits n and its descendants depth-first in document order.
// ancestry lists the names from the visited node up to the root, most
// specific first; it is reused between calls and must be copied if kept.
// Returning false skips the visited node's children.
func (n *Node) Walk(fn func(node *Node, ancestry []string) bool) {
	n.walk(fn, nil)
}

func (n *Node) walk(fn func(*Node, []string) bool, above []string) {
	ancestry := make([]string, 0, len(above)+1)
	ancestry = append(ancestry, n.name)
	ancestry = append(ancestry, above...)

	if !fn(n, ancestry) {
		return
	}
	for i := range n.children {
		n.children[i].walk(fn, ancestry)
	}
}

// Leaf is a leaf region with a ring, flattened out of the tree.
type Leaf struct {
	// Names holds the leaf name followed by its ancestors.
	Names  []string
	Ring   orb.Ring
	Bounds geo.Bounds
}

// Name returns the leaf's own name.
func (l Leaf) Name() string { return l.Names[0] }

// Path returns the breadcrumb a successful search for this leaf produces.
func (l Leaf) Path() string { return strings.Join(l.Names, PathSeparator) }

// Depth is the number of ancestors above the leaf.
func (l Leaf) Depth() int { return len(l.Names) - 1 }

// Leaves returns every leaf that has a ring, in document order.
func (n *Node) Leaves() []Leaf {
	var leaves []Leaf
	n.Walk(func(node *Node, ancestry []string) bool {
		if node.IsLeaf() && len(node.ring) > 0 {
			leaves = append(leaves, Leaf{
				Names:  append([]string(nil), ancestry...),
				Ring:   node.ring,
				Bounds: node.bounds,
			})
		}
		return true
	})
	return leaves
}

// Extent returns the union of every non-empty box in the subtree.
func (n *Node) Extent() geo.Bounds {
	var extent geo.Bounds
	n.Walk(func(node *Node, _ []string) bool {
		extent.Merge(node.bounds)
		return true
	})
	return extent
}

// Stats summarises the shape of a tree.
type Stats struct {
	Nodes      int `json:"nodes"`
	Leaves     int `json:"leaves"`
	Containers int `json:"containers"`
	// Inert counts nodes with neither a ring nor children; they never match.
	Inert    int `json:"inert"`
	Vertices int `json:"vertices"`
	MaxDepth int `json:"max_depth"`
}

// Stats walks the tree and counts nodes by kind.
func (n *Node) Stats() Stats {
	var s Stats
	n.Walk(func(node *Node, ancestry []string) bool {
		s.Nodes++
		s.Vertices += len(node.ring)
		if depth := len(ancestry) - 1; depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		switch {
		case !node.IsLeaf():
			s.Containers++
		case len(node.ring) == 0:
			s.Inert++
		default:
			s.Leaves++
		}
		return true
	})
	return s
}

// Unreachable lists the breadcrumb paths of containers whose own bounds
// are empty. The bounds prefilter rejects every point at such a node, so
// its whole subtree can never match even when the children carry valid
// rings. Only the topmost container of a dead subtree is reported.
func (n *Node) Unreachable() []string {
	var paths []string
	n.Walk(func(node *Node, ancestry []string) bool {
		if !node.IsLeaf() && node.bounds.IsEmpty() {
			paths = append(paths, strings.Join(ancestry, PathSeparator))
			return false
		}
		return true
	})
	return paths
}
