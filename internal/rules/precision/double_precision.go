package precision

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

var doublePrecision = regexp.MustCompile(`(?i)^double\s*(precision|complex)$`)

// DoublePrecisionRule reports the "double precision" and "double complex"
// type specifiers.
type DoublePrecisionRule struct{}

// NewDoublePrecisionRule creates a new double-precision rule instance.
func NewDoublePrecisionRule() *DoublePrecisionRule {
	return &DoublePrecisionRule{}
}

// Metadata returns the rule metadata.
func (r *DoublePrecisionRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("P011"),
		Name:    "double-precision",
		Summary: "'double precision' type",
		Explain: `## What it does
Checks for 'double precision' and 'double complex' declarations.

## Why is this bad?
'double precision' is only defined as more precise than the default real,
so its size varies with compiler flags such as '-fdefault-real-8'. Use
'real(real64)' from 'iso_fortran_env' to state the precision exactly.
The replacement requires 'use iso_fortran_env', so the fix is never
applied automatically.`,
		Stability:      rules.Stable,
		Fix:            rules.FixAlways,
		DefaultEnabled: false,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *DoublePrecisionRule) Entrypoints() []string {
	return []string{"intrinsic_type"}
}

// CheckNode runs the rule on one type specifier.
func (r *DoublePrecisionRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	text := node.Text(input.Source)
	m := doublePrecision.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	base := "real"
	if strings.EqualFold(m[1], "complex") {
		base = "complex"
	}
	preferred := astutil.MatchCase(base, text[:len("double")]) + "(real64)"

	d := rules.NewDiagnostic(r.Metadata().Code,
		fmt.Sprintf("prefer '%s' to '%s'", preferred, text),
		astutil.Range(node))
	return []rules.Diagnostic{d.WithFix(rules.ManualFix(
		fmt.Sprintf("Replace with '%s'", preferred),
		rules.Replacement(node.Start, node.End, preferred),
	))}
}
