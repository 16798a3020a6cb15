package typing

import (
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

// InterfaceImplicitTypingRule reports interface procedures without
// "implicit none". Interface bodies do not inherit the host's implicit
// rules.
type InterfaceImplicitTypingRule struct{}

// NewInterfaceImplicitTypingRule creates a new interface-implicit-typing rule instance.
func NewInterfaceImplicitTypingRule() *InterfaceImplicitTypingRule {
	return &InterfaceImplicitTypingRule{}
}

// Metadata returns the rule metadata.
func (r *InterfaceImplicitTypingRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("T002"),
		Name:    "interface-implicit-typing",
		Summary: "Interface procedure missing 'implicit none'",
		Explain: `## What it does
Checks that functions and subroutines declared in an interface block
contain 'implicit none'.

## Why is this bad?
An interface body is a separate scoping unit. It does not inherit
'implicit none' from the enclosing module, so its dummy arguments are
implicitly typed unless the statement is repeated.`,
		Stability:      rules.Stable,
		Fix:            rules.FixNone,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *InterfaceImplicitTypingRule) Entrypoints() []string {
	return []string{"function", "subroutine"}
}

// CheckNode runs the rule on one procedure.
func (r *InterfaceImplicitTypingRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	if node.Parent == nil || node.Parent.Kind != "interface" {
		return nil
	}
	if astutil.HasImplicitNone(node, input.Source) {
		return nil
	}
	return []rules.Diagnostic{rules.NewDiagnostic(r.Metadata().Code,
		"interface "+missingImplicitNone(node.Kind, astutil.Name(node, input.Source)),
		astutil.HeaderRange(node))}
}

