// Package astutil holds the Fortran-specific tree helpers shared by rules.
//
// The helpers lean on node kinds and the covered text rather than on field
// names, so they work the same on parser output and hand-built test trees.
package astutil

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/syntax"
)

var implicitNone = regexp.MustCompile(`(?i)^implicit\s+none\b`)

// fixedFormExtensions are the extensions compilers treat as fixed-form by
// default.
var fixedFormExtensions = map[string]bool{
	".f": true, ".F": true,
	".for": true, ".FOR": true,
	".f77": true, ".F77": true,
	".ftn": true, ".FTN": true,
}

// IsFixedForm reports whether path names a fixed-form source file.
func IsFixedForm(path string) bool {
	return fixedFormExtensions[filepath.Ext(path)]
}

// Range returns the byte range of n.
func Range(n *syntax.Node) rules.TextRange {
	return rules.NewRange(n.Start, n.End)
}

// Header returns the opening statement of a construct, such as the
// program_statement of a program, or nil.
func Header(n *syntax.Node) *syntax.Node {
	for _, c := range n.Children {
		if strings.HasSuffix(c.Kind, "_statement") && !strings.HasPrefix(c.Kind, "end_") {
			return c
		}
	}
	return nil
}

// Name returns the name declared by a construct's header, or "".
func Name(n *syntax.Node, src []byte) string {
	h := Header(n)
	if h == nil {
		return ""
	}
	if name := h.ChildOfKind("name", "identifier"); name != nil {
		return strings.TrimSpace(name.Text(src))
	}
	return ""
}

// HeaderRange returns the range of the construct's header, falling back to
// the construct itself.
func HeaderRange(n *syntax.Node) rules.TextRange {
	if h := Header(n); h != nil {
		return Range(h)
	}
	return Range(n)
}

// HasImplicitNone reports whether a direct child of n is an
// "implicit none" statement.
func HasImplicitNone(n *syntax.Node, src []byte) bool {
	for _, c := range n.Children {
		if c.Kind == "implicit_statement" && implicitNone.MatchString(strings.TrimSpace(c.Text(src))) {
			return true
		}
	}
	return false
}

// TypeSpec returns the text and range of an intrinsic type together with
// its kind selector ("real(8)", "real*8"). The selector may be a child of
// the intrinsic_type node or its next sibling.
func TypeSpec(n *syntax.Node, src []byte) (string, rules.TextRange) {
	end := n.End
	if next := n.NextSibling(); next != nil && next.Start >= end && isKindSelector(next) {
		end = next.End
	}
	r := rules.NewRange(n.Start, end)
	if end > len(src) || n.Start > end {
		return "", r
	}
	return string(src[n.Start:end]), r
}

func isKindSelector(n *syntax.Node) bool {
	return n.Kind == "kind" || n.Kind == "size" || n.Field == "kind"
}

// MatchCase returns word in upper case when like is upper case.
func MatchCase(word, like string) string {
	if like != "" && like == strings.ToUpper(like) && like != strings.ToLower(like) {
		return strings.ToUpper(word)
	}
	return word
}
