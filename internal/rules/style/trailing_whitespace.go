package style

import (
	"strings"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/sourcemap"
)

// TrailingWhitespaceRule reports blanks at the end of a line.
type TrailingWhitespaceRule struct{}

// NewTrailingWhitespaceRule creates a new trailing-whitespace rule instance.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{}
}

// Metadata returns the rule metadata.
func (r *TrailingWhitespaceRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("S101"),
		Name:    "trailing-whitespace",
		Summary: "Trailing whitespace",
		Explain: `## What it does
Checks for spaces and tabs at the end of a line.

## Why is this bad?
Trailing whitespace is invisible, makes diffs noisy and is stripped by
many editors, producing spurious changes.`,
		Stability:      rules.Stable,
		Fix:            rules.FixAlways,
		DefaultEnabled: true,
	}
}

// CheckText runs the rule on every line.
func (r *TrailingWhitespaceRule) CheckText(input rules.Input) []rules.Diagnostic {
	code := r.Metadata().Code
	sm := sourcemap.New(input.Source)

	var diags []rules.Diagnostic
	for i, line := range sm.Lines() {
		trimmed := strings.TrimRight(line, " \t")
		if len(trimmed) == len(line) {
			continue
		}
		start := sm.LineOffset(i)
		ws := rules.NewRange(start+len(trimmed), start+len(line))
		diags = append(diags, rules.NewDiagnostic(code, "trailing whitespace", ws).
			WithFix(rules.SafeFix("Remove trailing whitespace", rules.Deletion(ws.Start, ws.End))))
	}
	return diags
}
