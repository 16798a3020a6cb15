package integration

var fixCases = []fixCase{
	{
		name:        "trailing-whitespace",
		input:       "program p\n  implicit none\n  integer :: i   \n  i = 1\t\nend program p\n",
		args:        []string{"--select", "S101"},
		want:        "program p\n  implicit none\n  integer :: i\n  i = 1\nend program p\n",
		wantApplied: 2,
	},
	{
		name:        "relational-operators",
		input:       "program p\n  implicit none\n  logical :: a, b\n  a = 1 .eq. 2\n  b = 1 .GE. 2\nend program p\n",
		args:        []string{"--select", "S041"},
		want:        "program p\n  implicit none\n  logical :: a, b\n  a = 1 == 2\n  b = 1 >= 2\nend program p\n",
		wantApplied: 2,
	},
	{
		name:        "array-literal",
		input:       "program p\n  implicit none\n  integer :: x(2)\n  x = (/ 1, 2 /)\nend program p\n",
		args:        []string{"--select", "S021"},
		want:        "program p\n  implicit none\n  integer :: x(2)\n  x = [ 1, 2 ]\nend program p\n",
		wantApplied: 1,
	},
	{
		name:        "unnamed-end-statement",
		input:       "module m\n  implicit none\nend module\n",
		args:        []string{"--select", "S061"},
		want:        "module m\n  implicit none\nend module m\n",
		wantApplied: 1,
	},
	{
		name:        "unsafe-fix-needs-opt-in",
		input:       starKindProgram,
		args:        []string{"--select", "T021"},
		want:        starKindProgram,
		wantApplied: 0,
	},
	{
		name:        "unsafe-fix-applied",
		input:       starKindProgram,
		args:        []string{"--select", "T021", "--unsafe-fixes"},
		want:        "program p\n  implicit none\n  integer(4) :: i\n  i = 1\nend program p\n",
		wantApplied: 1,
	},
	{
		name:        "fixes-across-rules",
		input:       "program p\n  implicit none\n  logical :: a  \n  a = 1 .ne. 2\nend\n",
		args:        []string{"--select", "S041,S061,S101"},
		want:        "program p\n  implicit none\n  logical :: a\n  a = 1 /= 2\nend program p\n",
		wantApplied: 3,
	},
	{
		name:        "manual-fix-is-never-applied",
		input:       "program p\n  implicit none\n  double precision :: x\n  x = 1\nend program p\n",
		args:        []string{"--select", "P011", "--unsafe-fixes"},
		want:        "program p\n  implicit none\n  double precision :: x\n  x = 1\nend program p\n",
		wantApplied: 0,
	},
}
