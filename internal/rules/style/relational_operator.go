package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

var relationalOperators = map[string]string{
	".eq.": "==",
	".ne.": "/=",
	".lt.": "<",
	".le.": "<=",
	".gt.": ">",
	".ge.": ">=",
}

var deprecatedOperator = regexp.MustCompile(`(?i)^\.(eq|ne|lt|le|gt|ge)\.$`)

// DeprecatedRelationalOperatorRule reports ".eq."-style comparisons.
type DeprecatedRelationalOperatorRule struct{}

// NewDeprecatedRelationalOperatorRule creates a new deprecated-relational-operator rule instance.
func NewDeprecatedRelationalOperatorRule() *DeprecatedRelationalOperatorRule {
	return &DeprecatedRelationalOperatorRule{}
}

// Metadata returns the rule metadata.
func (r *DeprecatedRelationalOperatorRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("S041"),
		Name:    "deprecated-relational-operator",
		Summary: "Deprecated relational operator",
		Explain: `## What it does
Checks for the FORTRAN 77 relational operators '.eq.', '.ne.', '.lt.',
'.le.', '.gt.' and '.ge.'.

## Why is this bad?
The symbolic forms '==', '/=', '<', '<=', '>' and '>=' have been
available since Fortran 90 and read like every other modern language.`,
		Stability:      rules.Stable,
		Fix:            rules.FixAlways,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *DeprecatedRelationalOperatorRule) Entrypoints() []string {
	return []string{"relational_expression"}
}

// CheckNode runs the rule on one comparison.
func (r *DeprecatedRelationalOperatorRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	for _, c := range node.Children {
		if c.Named {
			continue
		}
		op := c.Text(input.Source)
		if !deprecatedOperator.MatchString(op) {
			continue
		}
		replacement := relationalOperators[strings.ToLower(op)]
		d := rules.NewDiagnostic(r.Metadata().Code,
			fmt.Sprintf("deprecated relational operator '%s', prefer '%s' instead", op, replacement),
			astutil.Range(c))
		return []rules.Diagnostic{d.WithFix(rules.SafeFix(
			fmt.Sprintf("Use '%s'", replacement),
			rules.Replacement(c.Start, c.End, replacement),
		))}
	}
	return nil
}
