// Package syntax provides the immutable, range-annotated syntax tree that
// rules inspect. Trees are produced by the parser package, or built by hand
// in tests; rules never see parser-specific types.
package syntax

import (
	"sort"
	"strings"
)

// Kinds emitted for nodes the parser could not make sense of.
const (
	KindError = "ERROR"
	KindRoot  = "translation_unit"
)

// Point is a 0-based row/column (in bytes) position.
type Point struct {
	Row    int
	Column int
}

// Node is one node of a syntax tree. Start and End are byte offsets into the
// tree's source, End exclusive. Nodes must not be modified after the tree is
// built.
type Node struct {
	Kind     string
	Field    string
	Start    int
	End      int
	Point    Point
	Named    bool
	Error    bool
	Missing  bool
	Children []*Node
	Parent   *Node
}

// Tree is a parsed file.
type Tree struct {
	Root   *Node
	Source []byte
}

// NewTree wires parent pointers and row/column points below root and
// returns the tree.
func NewTree(source []byte, root *Node) *Tree {
	if root != nil {
		lines := lineStarts(source)
		link(root, lines)
	}
	return &Tree{Root: root, Source: source}
}

func link(n *Node, lines []int) {
	n.Point = pointAt(lines, n.Start)
	for _, c := range n.Children {
		c.Parent = n
		link(c, lines)
	}
}

func lineStarts(source []byte) []int {
	starts := []int{0}
	for i, b := range source {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func pointAt(lines []int, offset int) Point {
	row := sort.SearchInts(lines, offset+1) - 1
	if row < 0 {
		row = 0
	}
	return Point{Row: row, Column: offset - lines[row]}
}

// Text returns the source text covered by the node.
func (n *Node) Text(source []byte) string {
	if n == nil || n.Start < 0 || n.End > len(source) || n.Start > n.End {
		return ""
	}
	return string(source[n.Start:n.End])
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// IsError reports whether the node is an error or a missing-token
// placeholder inserted by error recovery.
func (n *Node) IsError() bool {
	return n.Error || n.Missing
}

// NamedChildren returns the named children in order.
func (n *Node) NamedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

// ChildByField returns the first child with the given field name.
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildOfKind returns the first direct child with one of the given kinds.
func (n *Node) ChildOfKind(kinds ...string) *Node {
	for _, c := range n.Children {
		for _, k := range kinds {
			if c.Kind == k {
				return c
			}
		}
	}
	return nil
}

// NextSibling returns the node following n in its parent, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	siblings := n.Parent.Children
	for i, c := range siblings {
		if c == n && i+1 < len(siblings) {
			return siblings[i+1]
		}
	}
	return nil
}

// Ancestor returns the closest ancestor with one of the given kinds.
func (n *Node) Ancestor(kinds ...string) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		for _, k := range kinds {
			if p.Kind == k {
				return p
			}
		}
	}
	return nil
}

// HasKindPrefix is a convenience for kind families such as end_*_statement.
func (n *Node) HasKindPrefix(prefix string) bool {
	return strings.HasPrefix(n.Kind, prefix)
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Descendants returns every descendant of n (excluding n) with one of the
// given kinds, in pre-order.
func (n *Node) Descendants(kinds ...string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		c.Walk(func(d *Node) bool {
			for _, k := range kinds {
				if d.Kind == k {
					out = append(out, d)
					break
				}
			}
			return true
		})
	}
	return out
}

// Walk visits every node of the tree in pre-order.
func (t *Tree) Walk(fn func(*Node) bool) {
	if t == nil {
		return
	}
	t.Root.Walk(fn)
}

// Errors returns the error and missing nodes of the tree, outermost first.
// Children of an error node are not reported separately.
func (t *Tree) Errors() []*Node {
	var out []*Node
	t.Walk(func(n *Node) bool {
		if n.IsError() {
			out = append(out, n)
			return false
		}
		return true
	})
	return out
}

// HasErrors reports whether the parser recovered from any error.
func (t *Tree) HasErrors() bool {
	return len(t.Errors()) > 0
}
