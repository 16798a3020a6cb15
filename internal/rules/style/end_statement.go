package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/syntax"
)

var endStatement = regexp.MustCompile(`(?i)^(end)\s*([a-z]+)?\s*([a-z_][a-z0-9_]*)?\s*$`)

// UnnamedEndStatementRule reports end statements that omit the construct
// keyword or name.
type UnnamedEndStatementRule struct{}

// NewUnnamedEndStatementRule creates a new unnamed-end-statement rule instance.
func NewUnnamedEndStatementRule() *UnnamedEndStatementRule {
	return &UnnamedEndStatementRule{}
}

// Metadata returns the rule metadata.
func (r *UnnamedEndStatementRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("S061"),
		Name:    "unnamed-end-statement",
		Summary: "End statement without construct name",
		Explain: `## What it does
Checks that 'end' statements of programs, modules, submodules, functions
and subroutines repeat the construct keyword and name, as in
'end subroutine solve'.

## Why is this bad?
In long files a bare 'end' makes it hard to see which construct is being
closed. Naming it lets the compiler check the pairing too.`,
		Stability:      rules.Stable,
		Fix:            rules.FixAlways,
		DefaultEnabled: true,
	}
}

// Entrypoints returns the node kinds the rule inspects.
func (r *UnnamedEndStatementRule) Entrypoints() []string {
	return []string{
		"end_program_statement",
		"end_module_statement",
		"end_submodule_statement",
		"end_function_statement",
		"end_subroutine_statement",
	}
}

// CheckNode runs the rule on one end statement.
func (r *UnnamedEndStatementRule) CheckNode(node *syntax.Node, input rules.Input) []rules.Diagnostic {
	if node.Parent == nil {
		return nil
	}
	name := astutil.Name(node.Parent, input.Source)
	if name == "" {
		return nil
	}
	text := strings.TrimSpace(node.Text(input.Source))
	m := endStatement.FindStringSubmatch(text)
	if m == nil || (m[2] != "" && m[3] != "") {
		return nil
	}

	keyword := strings.TrimSuffix(strings.TrimPrefix(node.Kind, "end_"), "_statement")
	want := fmt.Sprintf("%s %s %s", m[1], astutil.MatchCase(keyword, m[1]), name)
	d := rules.NewDiagnostic(r.Metadata().Code,
		fmt.Sprintf("end statement should read '%s'", want),
		astutil.Range(node))
	return []rules.Diagnostic{d.WithFix(rules.SafeFix(
		fmt.Sprintf("Write '%s'", want),
		rules.Replacement(node.Start, node.Start+len(strings.TrimRight(node.Text(input.Source), " \t\r\n")), want),
	))}
}
