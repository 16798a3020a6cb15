// Package style implements rules enforcing Fortran style conventions.
package style

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/astutil"
	"github.com/wharflab/fortitude/internal/sourcemap"
)

// LineTooLongRule reports lines longer than the configured limit. On
// free-form files it offers to split the line with a continuation.
type LineTooLongRule struct{}

// NewLineTooLongRule creates a new line-too-long rule instance.
func NewLineTooLongRule() *LineTooLongRule {
	return &LineTooLongRule{}
}

// Metadata returns the rule metadata.
func (r *LineTooLongRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:    rules.MustParseCode("S001"),
		Name:    "line-too-long",
		Summary: "Line longer than the configured limit",
		Explain: `## What it does
Checks that no line is longer than line-length characters (100 by default).

## Why is this bad?
Long lines are hard to read and review, and the Fortran standard only
guarantees 132 characters per free-form line. The fix splits the line at
the last blank before the limit that is outside of strings and comments,
ending the first part with a '&' continuation.`,
		Stability:      rules.Stable,
		Fix:            rules.FixSometimes,
		DefaultEnabled: true,
	}
}

// CheckText runs the rule on every line.
func (r *LineTooLongRule) CheckText(input rules.Input) []rules.Diagnostic {
	limit := input.Settings.LineLength
	if limit <= 0 {
		limit = rules.DefaultLineLength
	}
	indentUnit := input.Settings.Indent
	if indentUnit == "" {
		indentUnit = rules.DefaultIndent
	}
	code := r.Metadata().Code
	fixable := !astutil.IsFixedForm(input.Path)
	eol := "\n"
	if bytes.Contains(input.Source, []byte("\r\n")) {
		eol = "\r\n"
	}

	sm := sourcemap.New(input.Source)
	var diags []rules.Diagnostic
	for i := range sm.LineCount() {
		line := sm.Line(i)
		length := utf8.RuneCountInString(line)
		if length <= limit {
			continue
		}
		start := sm.LineOffset(i)
		over := start + byteOffsetOfRune(line, limit)
		d := rules.NewDiagnostic(code,
			fmt.Sprintf("line length of %d, exceeds maximum %d", length, limit),
			rules.NewRange(over, start+len(line)))

		if fixable {
			if split := splitPoint(line, limit); split > 0 {
				indent := leadingSpace(line) + indentUnit
				d = d.WithFix(rules.SafeFix("Split line with '&' continuation",
					rules.Replacement(start+split, start+split+1, " &"+eol+indent)))
			}
		}
		diags = append(diags, d)
	}
	return diags
}

// splitPoint returns the byte offset of the last blank at which line can be
// split so that the first part, plus " &", fits in limit characters. Blanks
// inside strings or comments, in the indentation, or followed only by
// whitespace are skipped. Returns -1 when there is none.
func splitPoint(line string, limit int) int {
	if strings.HasPrefix(strings.TrimSpace(line), "#") {
		return -1
	}
	indentLen := len(leadingSpace(line))
	trimmedEnd := len(strings.TrimRight(line, " \t"))

	best := -1
	var quote rune
	col := 0
	for i, c := range line {
		if col+2 > limit {
			break
		}
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '!':
			return best
		case c == ' ' && i > indentLen && i < trimmedEnd:
			best = i
		}
		col++
	}
	return best
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func byteOffsetOfRune(s string, n int) int {
	i := 0
	for range n {
		if i >= len(s) {
			break
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
