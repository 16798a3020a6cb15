// Package parser turns Fortran source text into syntax trees using the
// tree-sitter Fortran grammar.
//
// tree-sitter recovers from malformed input by producing ERROR and MISSING
// nodes, so Parse only fails for conditions outside the grammar's control
// (cancellation, a broken language binding).
package parser

import (
	"context"
	"errors"
	"fmt"

	tree_sitter_fortran "github.com/stadelmanma/tree-sitter-fortran/bindings/go"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wharflab/fortitude/internal/syntax"
)

// Parser produces a syntax tree for one version of a file's text.
type Parser interface {
	Parse(ctx context.Context, source []byte) (*syntax.Tree, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(ctx context.Context, source []byte) (*syntax.Tree, error)

// Parse implements Parser.
func (f ParserFunc) Parse(ctx context.Context, source []byte) (*syntax.Tree, error) {
	return f(ctx, source)
}

// ErrNoTree is returned when tree-sitter yields no tree at all.
var ErrNoTree = errors.New("parser produced no syntax tree")

// Fortran parses Fortran sources. It is safe for concurrent use: every call
// gets its own tree-sitter parser.
type Fortran struct{}

// New returns the tree-sitter backed Fortran parser.
func New() *Fortran {
	return &Fortran{}
}

// Parse implements Parser.
func (*Fortran) Parse(ctx context.Context, source []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := tree_sitter.NewParser()
	defer p.Close()
	if err := p.SetLanguage(tree_sitter.NewLanguage(tree_sitter_fortran.Language())); err != nil {
		return nil, fmt.Errorf("load fortran grammar: %w", err)
	}

	tsTree := p.Parse(source, nil)
	if tsTree == nil {
		return nil, ErrNoTree
	}
	defer tsTree.Close()

	cursor := tsTree.Walk()
	defer cursor.Close()
	root := convert(cursor)
	return syntax.NewTree(source, root), nil
}

// convert copies the subtree under the cursor into syntax nodes.
func convert(cursor *tree_sitter.TreeCursor) *syntax.Node {
	n := cursor.Node()
	node := &syntax.Node{
		Kind:    n.Kind(),
		Field:   cursor.FieldName(),
		Start:   int(n.StartByte()),
		End:     int(n.EndByte()),
		Named:   n.IsNamed(),
		Error:   n.IsError(),
		Missing: n.IsMissing(),
	}
	if cursor.GotoFirstChild() {
		for {
			node.Children = append(node.Children, convert(cursor))
			if !cursor.GotoNextSibling() {
				break
			}
		}
		cursor.GotoParent()
	}
	return node
}
