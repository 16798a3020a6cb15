package style

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/wharflab/fortitude/internal/testutil"
)

func TestUnnamedEndStatementRule_Metadata(t *testing.T) {
	t.Parallel()
	snaps.MatchStandaloneJSON(t, NewUnnamedEndStatementRule().Metadata())
}

func TestUnnamedEndStatementRule_Check(t *testing.T) {
	t.Parallel()
	program := func(header, name, end string) []testutil.Spec {
		return []testutil.Spec{
			testutil.N("program", header+"\n"+end,
				testutil.N("program_statement", header,
					testutil.Tok("program", header[:len("program")]),
					testutil.N("name", name)),
				testutil.N("end_program_statement", end)),
		}
	}
	testutil.RunRuleTests(t, NewUnnamedEndStatementRule(), []testutil.RuleTestCase{
		{
			Name:           "bare end",
			Source:         "program p\nend\n",
			Nodes:          program("program p", "p", "end"),
			WantViolations: 1,
			WantMessages:   []string{"end statement should read 'end program p'"},
			WantFixed:      "program p\nend program p\n",
		},
		{
			Name:           "keyword without name",
			Source:         "program p\nend program\n",
			Nodes:          program("program p", "p", "end program"),
			WantViolations: 1,
			WantFixed:      "program p\nend program p\n",
		},
		{
			Name:           "upper case",
			Source:         "PROGRAM MAIN\nEND\n",
			Nodes:          program("PROGRAM MAIN", "MAIN", "END"),
			WantViolations: 1,
			WantFixed:      "PROGRAM MAIN\nEND PROGRAM MAIN\n",
		},
		{
			Name:           "fully named",
			Source:         "program p\nend program p\n",
			Nodes:          program("program p", "p", "end program p"),
			WantViolations: 0,
		},
		{
			Name:   "subroutine",
			Source: "subroutine solve(x)\nend subroutine\n",
			Nodes: []testutil.Spec{
				testutil.N("subroutine", "subroutine solve(x)\nend subroutine",
					testutil.N("subroutine_statement", "subroutine solve(x)",
						testutil.Tok("subroutine", "subroutine"),
						testutil.N("name", "solve")),
					testutil.N("end_subroutine_statement", "end subroutine")),
			},
			WantViolations: 1,
			WantFixed:      "subroutine solve(x)\nend subroutine solve\n",
		},
	})
}
