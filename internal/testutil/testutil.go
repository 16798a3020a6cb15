// Package testutil provides test helpers for fortitude rules.
package testutil

import (
	"cmp"
	"slices"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/wharflab/fortitude/internal/linter"
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/selection"
)

// DefaultPath is the file name used when a test case leaves Path empty.
const DefaultPath = "test.f90"

// MakeInput creates a rules.Input over a hand-built tree.
func MakeInput(tb testing.TB, path, source string, nodes ...Spec) rules.Input {
	tb.Helper()
	tree := Tree(tb, source, nodes...)
	return rules.Input{
		Path:   path,
		Source: tree.Source,
		Tree:   tree,
		Settings: rules.Settings{
			LineLength: rules.DefaultLineLength,
			Indent:     rules.DefaultIndent,
		},
	}
}

// Check runs a single rule through the engine, the way it runs in
// production, and fails the test if the rule crashes or returns an
// invalid fix.
func Check(tb testing.TB, rule rules.Rule, input rules.Input) []rules.Diagnostic {
	tb.Helper()
	reg := rules.MustNewRegistry(rule)
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	engine := linter.NewEngine(reg, selection.NewSet(rule.Metadata().Code), linter.Options{Logger: logger})

	report := engine.Check(input)
	for _, err := range report.Errors {
		tb.Errorf("rule failed: %v", err)
	}
	return report.Diagnostics
}

// RuleTestCase defines a test case for table-driven rule tests.
type RuleTestCase struct {
	// Name is the test case name.
	Name string

	// Path is the file name; DefaultPath when empty.
	Path string

	// Source is the Fortran text to lint.
	Source string

	// Nodes are the children of the translation_unit root.
	Nodes []Spec

	// LineLength overrides rules.DefaultLineLength.
	LineLength int

	// WantViolations is the expected number of violations.
	// Use -1 to skip the count check.
	WantViolations int

	// WantMessages are substrings expected in violation messages.
	WantMessages []string

	// WantFixed is the source after applying every fix once. Empty skips
	// the check.
	WantFixed string

	// WantNoFix asserts that no violation carries a fix.
	WantNoFix bool
}

// RunRuleTests runs a table of test cases against a rule.
func RunRuleTests(t *testing.T, rule rules.Rule, cases []RuleTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			path := cmp.Or(tc.Path, DefaultPath)
			input := MakeInput(t, path, tc.Source, tc.Nodes...)
			if tc.LineLength > 0 {
				input.Settings.LineLength = tc.LineLength
			}
			diags := Check(t, rule, input)

			if tc.WantViolations >= 0 && len(diags) != tc.WantViolations {
				t.Errorf("got %d violations, want %d", len(diags), tc.WantViolations)
				for i, d := range diags {
					t.Logf("  [%d] %s: %s", i, d.Code, d.Message)
				}
			}

			for i, msg := range tc.WantMessages {
				if i >= len(diags) {
					t.Errorf("expected violation[%d] with message containing %q, but only got %d violations",
						i, msg, len(diags))
					continue
				}
				if !strings.Contains(diags[i].Message, msg) {
					t.Errorf("violation[%d].Message = %q, want substring %q", i, diags[i].Message, msg)
				}
			}

			if tc.WantNoFix {
				for i, d := range diags {
					if d.Fix != nil {
						t.Errorf("violation[%d] has fix %q, want none", i, d.Fix.Description)
					}
				}
			}

			if tc.WantFixed != "" {
				if got := ApplyFixes(tc.Source, diags); got != tc.WantFixed {
					t.Errorf("fixed source =\n%q\nwant:\n%q", got, tc.WantFixed)
				}
			}
		})
	}
}

// ApplyFixes applies every fix once, whatever its safety or applicability.
// Fixes overlapping an earlier one are skipped.
func ApplyFixes(source string, diags []rules.Diagnostic) string {
	var edits, reserved []rules.Edit
	for _, d := range diags {
		if d.Fix == nil {
			continue
		}
		if slices.ContainsFunc(d.Fix.Edits, func(e rules.Edit) bool {
			return slices.ContainsFunc(reserved, func(r rules.Edit) bool { return r.Range.Overlaps(e.Range) })
		}) {
			continue
		}
		reserved = append(reserved, d.Fix.Edits...)
		edits = append(edits, d.Fix.Edits...)
	}
	slices.SortStableFunc(edits, func(a, b rules.Edit) int {
		return cmp.Or(cmp.Compare(b.Range.Start, a.Range.Start), cmp.Compare(b.Range.End, a.Range.End))
	})
	out := source
	for _, e := range edits {
		out = out[:e.Range.Start] + e.Content + out[e.Range.End:]
	}
	return out
}

// AssertNoViolations fails the test if there are any violations.
func AssertNoViolations(tb testing.TB, diags []rules.Diagnostic) {
	tb.Helper()
	if len(diags) > 0 {
		tb.Errorf("expected no violations, got %d:", len(diags))
		for _, d := range diags {
			tb.Logf("  - %s at %d: %s", d.Code, d.Range.Start, d.Message)
		}
	}
}
