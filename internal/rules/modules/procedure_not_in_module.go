// Package modules implements rules about module structure and imports.
package modules

import (
	"fmt"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

// ProcedureNotInModuleRule reports external procedures.
type ProcedureNotInModuleRule struct{}

// NewProcedureNotInModuleRule creates a new procedure-not-in-module rule instance.
func NewProcedureNotInModuleRule() *ProcedureNotInModuleRule {
	return &ProcedureNotInModuleRule{}
}

// Metadata returns the rule metadata.
func (r *ProcedureNotInModuleRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("M001"),
		Name:    "procedure-not-in-module",
		Summary: "Procedure defined outside a module",
		Explain: `## What it does
Checks for functions and subroutines defined at file level instead of
inside a module or program.

## Why is this bad?
Callers of an external procedure get no explicit interface: the compiler
cannot check the number or types of arguments. Moving the procedure into
a module gives every caller that uses the module an interface for free.`,
		Stability:      rules.Stable,
		Fix:            rules.FixNone,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *ProcedureNotInModuleRule) Entrypoints() []string {
	return []string{"function", "subroutine"}
}

// CheckNode runs the rule on one procedure.
func (r *ProcedureNotInModuleRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	if node.Parent == nil || node.Parent.Kind != syntax.KindRoot {
		return nil
	}
	msg := fmt.Sprintf("%s not contained within (sub)module or program", node.Kind)
	if name := astutil.Name(node, input.Source); name != "" {
		msg = fmt.Sprintf("%s '%s' not contained within (sub)module or program", node.Kind, name)
	}
	return []rules.Diagnostic{rules.NewDiagnostic(r.Metadata().Code, msg, astutil.HeaderRange(node))}
}
