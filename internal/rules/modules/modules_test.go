package modules

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/wharflab/fortitude/internal/testutil"
)

func TestProcedureNotInModuleRule_Metadata(t *testing.T) {
	t.Parallel()
	snaps.MatchStandaloneJSON(t, NewProcedureNotInModuleRule().Metadata())
}

func TestProcedureNotInModuleRule_Check(t *testing.T) {
	t.Parallel()
	sub := testutil.N("subroutine", "subroutine s\nend subroutine s",
		testutil.N("subroutine_statement", "subroutine s", testutil.Tok("subroutine", "subroutine"), testutil.N("name", "s")),
		testutil.N("end_subroutine_statement", "end subroutine s"))

	testutil.RunRuleTests(t, NewProcedureNotInModuleRule(), []testutil.RuleTestCase{
		{
			Name:           "external subroutine",
			Source:         "subroutine s\nend subroutine s\n",
			Nodes:          []testutil.Spec{sub},
			WantViolations: 1,
			WantMessages:   []string{"subroutine 's' not contained within (sub)module or program"},
		},
		{
			Name:   "module procedure",
			Source: "module m\ncontains\nsubroutine s\nend subroutine s\nend module m\n",
			Nodes: []testutil.Spec{
				testutil.N("module", "module m\ncontains\nsubroutine s\nend subroutine s\nend module m",
					testutil.N("module_statement", "module m", testutil.Tok("module", "module"), testutil.N("name", "m")),
					testutil.N("internal_procedures", "contains\nsubroutine s\nend subroutine s",
						testutil.N("contains_statement", "contains"),
						sub),
					testutil.N("end_module_statement", "end module m")),
			},
			WantViolations: 0,
		},
		{
			Name:   "external function",
			Source: "integer function f()\nend function f\n",
			Nodes: []testutil.Spec{
				testutil.N("function", "integer function f()\nend function f",
					testutil.N("function_statement", "integer function f()",
						testutil.N("intrinsic_type", "integer"),
						testutil.Tok("function", "function"),
						testutil.N("name", "f")),
					testutil.N("end_function_statement", "end function f")),
			},
			WantViolations: 1,
			WantMessages:   []string{"function 'f'"},
		},
	})
}

func TestUseAllRule_Metadata(t *testing.T) {
	t.Parallel()
	snaps.MatchStandaloneJSON(t, NewUseAllRule().Metadata())
}

func TestUseAllRule_Check(t *testing.T) {
	t.Parallel()
	use := func(name, stmt string, want int, messages ...string) testutil.RuleTestCase {
		return testutil.RuleTestCase{
			Name:           name,
			Source:         stmt + "\n",
			Nodes:          []testutil.Spec{testutil.N("use_statement", stmt)},
			WantViolations: want,
			WantMessages:   messages,
			WantNoFix:      true,
		}
	}
	testutil.RunRuleTests(t, NewUseAllRule(), []testutil.RuleTestCase{
		use("bare use", "use iso_fortran_env", 1, "'use iso_fortran_env' missing 'only' clause"),
		use("intrinsic nature", "use, intrinsic :: iso_c_binding", 1, "'use iso_c_binding'"),
		use("only list", "use iso_fortran_env, only: real64", 0),
		use("upper case only", "USE MPI, ONLY : MPI_COMM_WORLD", 0),
		use("renames without only", "use m, x => y", 1, "'use m'"),
	})
}
