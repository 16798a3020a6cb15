package typing

import (
	"fmt"
	"regexp"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

var literalKind = regexp.MustCompile(`(?i)^(integer|real|complex|logical)\s*\(\s*(?:kind\s*=\s*)?(\d+)\s*\)`)

// LiteralKindRule reports kind selectors given as integer literals.
type LiteralKindRule struct{}

// NewLiteralKindRule creates a new literal-kind rule instance.
func NewLiteralKindRule() *LiteralKindRule {
	return &LiteralKindRule{}
}

// Metadata returns the rule metadata.
func (r *LiteralKindRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("T011"),
		Name:    "literal-kind",
		Summary: "Kind given as a number literal",
		Explain: `## What it does
Checks for type declarations such as 'real(8)' or 'integer(kind=4)'.

## Why is this bad?
Kind numbers are compiler specific: 'real(8)' is double precision on most
compilers but not all, and some reject it. Use the named constants from
'iso_fortran_env' ('real64', 'int32') or 'selected_real_kind' instead.`,
		Stability:      rules.Stable,
		Fix:            rules.FixNone,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *LiteralKindRule) Entrypoints() []string {
	return []string{"intrinsic_type"}
}

// CheckNode runs the rule on one type specifier.
func (r *LiteralKindRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	text, rng := astutil.TypeSpec(node, input.Source)
	m := literalKind.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	return []rules.Diagnostic{rules.NewDiagnostic(r.Metadata().Code,
		fmt.Sprintf("%s kind set with number literal '%s', use 'iso_fortran_env' parameter", m[1], m[2]),
		rng)}
}
