package reporter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/runner"
)

func TestGitHubActionsReporter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := NewGitHubActionsReporter(&buf).Report(fixture(), Metadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	want := "::error title=fortitude (T021),file=src/main.f90,line=2,col=3,endLine=2,endColumn=12::" +
		"src/main.f90:2:3: T021 'integer*4' uses non-standard syntax, prefer 'integer(int32)'\n" +
		"::error title=fortitude (S041),file=src/main.f90,line=3,col=9,endLine=3,endColumn=13::" +
		"src/main.f90:3:9: S041 deprecated relational operator '.eq.', prefer '==' instead\n"
	if got := buf.String(); got != want {
		t.Errorf("output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGitHubActionsReporterEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := NewGitHubActionsReporter(&buf).Report(nil, Metadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected empty output, got: %s", buf.String())
	}
}

func TestGitHubActionsReporterEscaping(t *testing.T) {
	t.Parallel()
	d := rules.NewDiagnostic(rules.MustParseCode("M001"), "100% wrong\nsecond line, with: colons", rules.NewRange(0, 3))
	files := []runner.FileResult{{Path: "dir:odd,name.f90", Result: result("dir:odd,name.f90", "end\n", d)}}

	var buf bytes.Buffer
	if err := NewGitHubActionsReporter(&buf).Report(files, Metadata{}); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "file=dir%3Aodd%2Cname.f90") {
		t.Errorf("Expected escaped file path, got: %s", output)
	}
	if !strings.Contains(output, "100%25 wrong%0Asecond line, with: colons") {
		t.Errorf("Expected escaped message keeping : and , - got: %s", output)
	}
	if strings.Count(output, "\n") != 1 {
		t.Errorf("Expected a single line, got: %q", output)
	}
}

func TestEscapeGitHubProperty(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a:b,c", "a%3Ab%2Cc"},
		{"50%\r\n", "50%25%0D%0A"},
	}
	for _, tt := range tests {
		if got := escapeGitHubProperty(tt.in); got != tt.want {
			t.Errorf("escapeGitHubProperty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
