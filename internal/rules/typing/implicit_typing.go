// Package typing implements rules about implicit typing and kind selectors.
package typing

import (
	"fmt"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

// ImplicitTypingRule reports programs and modules without "implicit none".
type ImplicitTypingRule struct{}

// NewImplicitTypingRule creates a new implicit-typing rule instance.
func NewImplicitTypingRule() *ImplicitTypingRule {
	return &ImplicitTypingRule{}
}

// Metadata returns the rule metadata.
func (r *ImplicitTypingRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("T001"),
		Name:    "implicit-typing",
		Summary: "Missing 'implicit none'",
		Explain: `## What it does
Checks that every program, module and submodule declares 'implicit none'.

## Why is this bad?
Without it, any undeclared variable whose name starts with i to n is an
integer and any other is a real. A typo silently creates a new variable
instead of a compile error. Procedures inside a module inherit the
module's 'implicit none', so one statement per module is enough.`,
		Stability:      rules.Stable,
		Fix:            rules.FixNone,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *ImplicitTypingRule) Entrypoints() []string {
	return []string{"program", "module", "submodule"}
}

// CheckNode runs the rule on one program unit.
func (r *ImplicitTypingRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	if astutil.HasImplicitNone(node, input.Source) {
		return nil
	}
	return []rules.Diagnostic{rules.NewDiagnostic(r.Metadata().Code,
		missingImplicitNone(node.Kind, astutil.Name(node, input.Source)),
		astutil.HeaderRange(node))}
}

func missingImplicitNone(kind, name string) string {
	if name == "" {
		return fmt.Sprintf("%s missing 'implicit none'", kind)
	}
	return fmt.Sprintf("%s '%s' missing 'implicit none'", kind, name)
}
