// Package precision implements rules about floating point precision.
package precision

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

// realLiteral matches real constants without a kind suffix. Literals with a
// "d" exponent are double precision and excluded.
var realLiteral = regexp.MustCompile(`(?i)^(\d+\.\d*|\.\d+|\d+)(e[+-]?\d+)?$`)

// NoRealLiteralKindRule reports real literals that rely on the default
// real kind.
type NoRealLiteralKindRule struct{}

// NewNoRealLiteralKindRule creates a new no-real-literal-kind rule instance.
func NewNoRealLiteralKindRule() *NoRealLiteralKindRule {
	return &NoRealLiteralKindRule{}
}

// Metadata returns the rule metadata.
func (r *NoRealLiteralKindRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("P001"),
		Name:    "no-real-literal-kind",
		Summary: "Real literal without kind suffix",
		Explain: `## What it does
Checks for floating point literals such as '1.0' or '2.5e3' that carry no
kind suffix.

## Why is this bad?
Such a literal has default real kind, usually single precision, even when
it is assigned to a double precision variable. '0.1' then loses digits
before the assignment happens. Write '0.1_real64' or '0.1_dp' instead.`,
		Stability:      rules.Preview,
		Fix:            rules.FixNone,
		DefaultEnabled: false,
	}
}

// CheckToken runs the rule on one leaf.
func (r *NoRealLiteralKindRule) CheckToken(leaf *syntax.Node, input rules.Input) []rules.Diagnostic {
	if leaf.Kind != "number_literal" {
		return nil
	}
	text := leaf.Text(input.Source)
	if !isDefaultKindReal(text) {
		return nil
	}
	return []rules.Diagnostic{rules.NewDiagnostic(r.Metadata().Code,
		fmt.Sprintf("real literal %s missing kind suffix", text),
		astutil.Range(leaf))}
}

func isDefaultKindReal(text string) bool {
	m := realLiteral.FindStringSubmatch(text)
	if m == nil {
		return false
	}
	// A bare integer is only real with an exponent.
	return strings.Contains(m[1], ".") || m[2] != ""
}
