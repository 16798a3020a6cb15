package typing

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/wharflab/fortitude/internal/testutil"
)

func TestImplicitTypingRule_Metadata(t *testing.T) {
	t.Parallel()
	snaps.MatchStandaloneJSON(t, NewImplicitTypingRule().Metadata())
}

func unit(kind, name, body, end string, children ...testutil.Spec) testutil.Spec {
	header := kind + " " + name
	text := header + "\n" + body + end
	nodes := []testutil.Spec{testutil.N(kind+"_statement", header, testutil.Tok(kind, kind), testutil.N("name", name))}
	nodes = append(nodes, children...)
	nodes = append(nodes, testutil.N("end_"+kind+"_statement", end))
	return testutil.N(kind, text, nodes...)
}

func TestImplicitTypingRule_Check(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewImplicitTypingRule(), []testutil.RuleTestCase{
		{
			Name:           "program without implicit none",
			Source:         "program p\nx = 1\nend program p\n",
			Nodes:          []testutil.Spec{unit("program", "p", "x = 1\n", "end program p")},
			WantViolations: 1,
			WantMessages:   []string{"program 'p' missing 'implicit none'"},
			WantNoFix:      true,
		},
		{
			Name:   "program with implicit none",
			Source: "program p\nimplicit none\nend program p\n",
			Nodes: []testutil.Spec{unit("program", "p", "implicit none\n", "end program p",
				testutil.N("implicit_statement", "implicit none"))},
			WantViolations: 0,
		},
		{
			Name:   "upper case",
			Source: "module m\nIMPLICIT NONE\nend module m\n",
			Nodes: []testutil.Spec{unit("module", "m", "IMPLICIT NONE\n", "end module m",
				testutil.N("implicit_statement", "IMPLICIT NONE"))},
			WantViolations: 0,
		},
		{
			Name:   "implicit statement that is not none",
			Source: "module m\nimplicit real (a-h)\nend module m\n",
			Nodes: []testutil.Spec{unit("module", "m", "implicit real (a-h)\n", "end module m",
				testutil.N("implicit_statement", "implicit real (a-h)"))},
			WantViolations: 1,
			WantMessages:   []string{"module 'm' missing 'implicit none'"},
		},
		{
			Name:   "two modules",
			Source: "module a\nend module a\nmodule b\nend module b\n",
			Nodes: []testutil.Spec{
				unit("module", "a", "", "end module a"),
				unit("module", "b", "", "end module b"),
			},
			WantViolations: 2,
			WantMessages:   []string{"module 'a'", "module 'b'"},
		},
	})
}
