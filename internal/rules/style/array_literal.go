package style

import (
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

// OldStyleArrayLiteralRule reports "(/ ... /)" array constructors.
type OldStyleArrayLiteralRule struct{}

// NewOldStyleArrayLiteralRule creates a new old-style-array-literal rule instance.
func NewOldStyleArrayLiteralRule() *OldStyleArrayLiteralRule {
	return &OldStyleArrayLiteralRule{}
}

// Metadata returns the rule metadata.
func (r *OldStyleArrayLiteralRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("S021"),
		Name:    "old-style-array-literal",
		Summary: "Old-style array constructor",
		Explain: `## What it does
Checks for array constructors written with '(/' and '/)'.

## Why is this bad?
Fortran 2003 introduced the square bracket syntax '[1, 2, 3]', which is
shorter and easier to read, especially in nested expressions.`,
		Stability:      rules.Stable,
		Fix:            rules.FixAlways,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *OldStyleArrayLiteralRule) Entrypoints() []string {
	return []string{"array_literal"}
}

// CheckNode runs the rule on one array constructor.
func (r *OldStyleArrayLiteralRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	text := node.Text(input.Source)
	if !strings.HasPrefix(text, "(/") || !strings.HasSuffix(text, "/)") || len(text) < 4 {
		return nil
	}
	d := rules.NewDiagnostic(r.Metadata().Code,
		"Array constructor uses '(/ ... /)'; prefer '[ ... ]'",
		astutil.Range(node))
	return []rules.Diagnostic{d.WithFix(rules.SafeFix("Use square brackets",
		rules.Replacement(node.Start, node.Start+2, "["),
		rules.Replacement(node.End-2, node.End, "]"),
	))}
}
