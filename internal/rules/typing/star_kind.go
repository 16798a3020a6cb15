package typing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

var starKind = regexp.MustCompile(`(?i)^(integer|real|complex|logical)\s*\*\s*(\d+)`)

// StarKindRule reports the non-standard "real*8" form.
type StarKindRule struct{}

// NewStarKindRule creates a new star-kind rule instance.
func NewStarKindRule() *StarKindRule {
	return &StarKindRule{}
}

// Metadata returns the rule metadata.
func (r *StarKindRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("T021"),
		Name:    "star-kind",
		Summary: "Non-standard '*' kind selector",
		Explain: `## What it does
Checks for type declarations such as 'real*8' or 'integer*4'.

## Why is this bad?
The '*N' form is a common extension but has never been part of the
standard. It gives a size in bytes, while the standard kind selector
gives a kind number. For 'complex*16' the two differ: the equivalent is
'complex(8)'. The fix rewrites to the parenthesised form, which is only
equivalent on compilers where kind numbers are byte sizes, so it is
marked unsafe.`,
		Stability:      rules.Stable,
		Fix:            rules.FixAlways,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *StarKindRule) Entrypoints() []string {
	return []string{"intrinsic_type"}
}

// CheckNode runs the rule on one type specifier.
func (r *StarKindRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	text, rng := astutil.TypeSpec(node, input.Source)
	m := starKind.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	size, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	if strings.EqualFold(m[1], "complex") {
		size /= 2
	}
	written := strings.TrimSpace(m[0])
	preferred := fmt.Sprintf("%s(%d)", m[1], size)

	d := rules.NewDiagnostic(r.Metadata().Code,
		fmt.Sprintf("'%s' uses non-standard syntax, prefer '%s'", written, preferred),
		rng)
	return []rules.Diagnostic{d.WithFix(rules.UnsafeFix(
		fmt.Sprintf("Replace with '%s'", preferred),
		rules.Replacement(rng.Start, rng.Start+len(m[0]), preferred),
	))}
}
