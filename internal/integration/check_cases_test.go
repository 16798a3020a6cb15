package integration

const (
	cleanModule = "module m\n  implicit none\nend module m\n"

	// Trailing whitespace on line 2, no implicit none.
	untidyProgram = "program p\n  integer :: i   \n  i = 1\nend program p\n"

	starKindProgram = "program p\n  implicit none\n  integer*4 :: i\n  i = 1\nend program p\n"
)

var checkCases = []checkCase{
	{
		name:     "clean-project",
		files:    map[string]string{"src/m.f90": cleanModule},
		wantExit: 0,
		contains: []string{"All checks passed!"},
	},
	{
		name:     "concise",
		files:    map[string]string{"prog.f90": untidyProgram},
		args:     []string{"--select", "S101,T001", "--output-format", "concise"},
		wantExit: 1,
		contains: []string{
			"prog.f90:2:15: S101 [*]",
			"T001",
			"Found 2 errors.",
			"[*] 1 fixable with the `--fix` option.",
		},
	},
	{
		name:     "full",
		files:    map[string]string{"prog.f90": untidyProgram},
		args:     []string{"--select", "S101", "--output-format", "full"},
		wantExit: 1,
		snapExt:  ".txt",
	},
	{
		name:     "grouped",
		files:    map[string]string{"a.f90": untidyProgram, "b.f90": untidyProgram},
		args:     []string{"--select", "S101", "--output-format", "grouped"},
		wantExit: 1,
		contains: []string{"a.f90:\n  2:15 S101", "b.f90:\n  2:15 S101"},
	},
	{
		name:     "json",
		files:    map[string]string{"prog.f90": untidyProgram},
		args:     []string{"--select", "S101", "--output-format", "json"},
		wantExit: 1,
		snapJSON: true,
	},
	{
		name:     "sarif",
		files:    map[string]string{"prog.f90": untidyProgram},
		args:     []string{"--select", "S101", "--output-format", "sarif"},
		wantExit: 1,
		snapJSON: true,
		snapExt:  ".sarif",
	},
	{
		name:     "github",
		files:    map[string]string{"prog.f90": untidyProgram},
		args:     []string{"--select", "S101", "--output-format", "github"},
		wantExit: 1,
		contains: []string{"::error title=fortitude (S101),file=prog.f90,line=2,col=15,"},
	},
	{
		name:     "pylint",
		files:    map[string]string{"prog.f90": untidyProgram},
		args:     []string{"--select", "S101", "--output-format", "pylint"},
		wantExit: 1,
		contains: []string{"prog.f90:2: [S101]"},
	},
	{
		name:     "output-format-from-env",
		files:    map[string]string{"prog.f90": untidyProgram},
		args:     []string{"--select", "S101"},
		env:      []string{"FORTITUDE_OUTPUT_FORMAT=pylint"},
		wantExit: 1,
		contains: []string{"prog.f90:2: [S101]"},
	},
	{
		name:     "config-select",
		files:    map[string]string{"prog.f90": untidyProgram},
		config:   "[check]\nselect = [\"S101\"]\noutput-format = \"concise\"\n",
		wantExit: 1,
		contains: []string{"S101"},
		excludes: []string{"T001"},
	},
	{
		name: "fpm-manifest",
		files: map[string]string{
			"fpm.toml": "name = \"demo\"\n\n[extra.fortitude.check]\nselect = [\"T001\"]\noutput-format = \"concise\"\n",
			"prog.f90": untidyProgram,
		},
		wantExit: 1,
		contains: []string{"T001"},
		excludes: []string{"S101"},
	},
	{
		name:     "cli-ignore-overrides-config",
		files:    map[string]string{"prog.f90": untidyProgram},
		config:   "[check]\nselect = [\"S101\", \"T001\"]\n",
		args:     []string{"--ignore", "S101", "--output-format", "concise"},
		wantExit: 1,
		contains: []string{"T001"},
		excludes: []string{"S101"},
	},
	{
		name: "extend-exclude",
		files: map[string]string{
			"src/a.f90":    untidyProgram,
			"vendor/b.f90": untidyProgram,
		},
		args:     []string{"--select", "S101", "--extend-exclude", "vendor", "--output-format", "concise"},
		wantExit: 1,
		contains: []string{"src/a.f90:2:15: S101"},
		excludes: []string{"vendor"},
	},
	{
		name:     "file-extensions",
		files:    map[string]string{"legacy.f": untidyProgram, "modern.f90": untidyProgram},
		args:     []string{"--select", "S101", "--file-extensions", "f90", "--output-format", "concise"},
		wantExit: 1,
		contains: []string{"modern.f90"},
		excludes: []string{"legacy.f"},
	},
	{
		name:     "explicit-file-bypasses-extensions",
		files:    map[string]string{"notes.txt": untidyProgram},
		args:     []string{"--select", "S101", "--output-format", "concise"},
		target:   "notes.txt",
		wantExit: 1,
		contains: []string{"notes.txt:2:15: S101"},
	},
	{
		name:     "line-length",
		files:    map[string]string{"prog.f90": "program p\n  implicit none\n  call some_long_procedure_name(1)\nend program p\n"},
		args:     []string{"--select", "S001", "--line-length", "20", "--output-format", "concise"},
		wantExit: 1,
		contains: []string{"prog.f90:3:"},
	},
	{
		name:     "unsafe-fix-hint",
		files:    map[string]string{"prog.f90": starKindProgram},
		args:     []string{"--select", "T021", "--output-format", "concise"},
		wantExit: 1,
		contains: []string{
			"'integer*4' uses non-standard syntax, prefer 'integer(4)'",
			"1 hidden fix can be enabled with the `--unsafe-fixes` option",
		},
	},
	{
		name:     "preview-rule-needs-preview",
		files:    map[string]string{"prog.f90": cleanModule},
		args:     []string{"--select", "P001"},
		wantExit: 0,
		contains: []string{"All checks passed!"},
		stderr:   []string{"P001"},
	},
	{
		name:     "fix-only-exits-zero",
		files:    map[string]string{"prog.f90": untidyProgram},
		args:     []string{"--select", "S101,T001", "--fix-only"},
		wantExit: 0,
		contains: []string{"Fixed 1 error."},
		excludes: []string{"T001"},
	},
}
