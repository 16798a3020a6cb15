package testutil

import (
	"strings"
	"testing"

	"github.com/wharflab/fortitude/internal/syntax"
)

// Spec describes one node of a hand-built syntax tree by the text it
// covers. Offsets are found by searching the text inside the parent, after
// the previous sibling.
type Spec struct {
	Kind     string
	Text     string
	Field    string
	Named    bool
	Missing  bool
	Children []Spec
}

// N describes a named node.
func N(kind, text string, children ...Spec) Spec {
	return Spec{Kind: kind, Text: text, Named: true, Children: children}
}

// Tok describes an anonymous token such as a keyword or an operator.
func Tok(kind, text string) Spec {
	return Spec{Kind: kind, Text: text}
}

// Err describes an ERROR node.
func Err(text string, children ...Spec) Spec {
	return Spec{Kind: syntax.KindError, Text: text, Named: true, Children: children}
}

// Missing describes a zero-width placeholder located right after the
// previous sibling.
func Missing(kind string) Spec {
	return Spec{Kind: kind, Missing: true}
}

// As sets the field name of the node in its parent.
func (s Spec) As(field string) Spec {
	s.Field = field
	return s
}

// Tree builds a syntax tree for source. The root is a translation_unit
// spanning the whole text; nodes lists its children.
func Tree(tb testing.TB, source string, nodes ...Spec) *syntax.Tree {
	tb.Helper()
	root := syntax.N(syntax.KindRoot, 0, len(source))
	root.Children = build(tb, source, 0, len(source), nodes)
	return syntax.NewTree([]byte(source), root)
}

func build(tb testing.TB, source string, start, end int, specs []Spec) []*syntax.Node {
	tb.Helper()
	var out []*syntax.Node
	cursor := start
	for _, s := range specs {
		var n *syntax.Node
		switch {
		case s.Missing:
			n = syntax.MissingNode(s.Kind, cursor)
		default:
			i := strings.Index(source[cursor:end], s.Text)
			if i < 0 || s.Text == "" {
				tb.Fatalf("testutil.Tree: %s %q not found in %q", s.Kind, s.Text, source[cursor:end])
			}
			from := cursor + i
			to := from + len(s.Text)
			n = &syntax.Node{
				Kind:  s.Kind,
				Start: from,
				End:   to,
				Named: s.Named,
				Error: s.Kind == syntax.KindError,
			}
			n.Children = build(tb, source, from, to, s.Children)
			cursor = to
		}
		n.Field = s.Field
		out = append(out, n)
	}
	return out
}
