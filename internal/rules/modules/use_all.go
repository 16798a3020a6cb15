package modules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

var (
	useOnly   = regexp.MustCompile(`(?i),\s*only\s*:`)
	useModule = regexp.MustCompile(`(?i)^use\s*(?:,\s*(?:non_)?intrinsic\s*)?(?:::)?\s*(\w+)`)
)

// UseAllRule reports "use" statements without an "only" list.
type UseAllRule struct{}

// NewUseAllRule creates a new use-all rule instance.
func NewUseAllRule() *UseAllRule {
	return &UseAllRule{}
}

// Metadata returns the rule metadata.
func (r *UseAllRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("M011"),
		Name:    "use-all",
		Summary: "'use' statement without 'only'",
		Explain: `## What it does
Checks for 'use' statements that import every public entity of a module.

## Why is this bad?
Importing everything hides where a name comes from and lets a new public
name in the module shadow or clash with a local one. An 'only:' list
documents the dependency and keeps the namespace small.`,
		Stability:      rules.Stable,
		Fix:            rules.FixNone,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *UseAllRule) Entrypoints() []string {
	return []string{"use_statement"}
}

// CheckNode runs the rule on one use statement.
func (r *UseAllRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	text := strings.TrimSpace(node.Text(input.Source))
	if useOnly.MatchString(text) {
		return nil
	}
	msg := "'use' statement missing 'only' clause"
	if m := useModule.FindStringSubmatch(text); m != nil {
		msg = fmt.Sprintf("'use %s' missing 'only' clause", m[1])
	}
	return []rules.Diagnostic{rules.NewDiagnostic(r.Metadata().Code, msg, astutil.Range(node))}
}
