package reporter

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/all"
	"github.com/wharflab/fortitude/internal/runner"
)

func TestPylintReporter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewPylintReporter(&buf).Report(fixture(), Metadata{}))
	assert.Equal(t,
		"src/main.f90:2: [T021] 'integer*4' uses non-standard syntax, prefer 'integer(int32)'\n"+
			"src/main.f90:3: [S041] deprecated relational operator '.eq.', prefer '==' instead\n",
		buf.String())
}

func TestAzureReporter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewAzureReporter(&buf).Report(fixture(), Metadata{}))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"##vso[task.logissue type=error;sourcepath=src/main.f90;linenumber=3;columnnumber=9;code=S041;]"+
			"deprecated relational operator '.eq.', prefer '==' instead",
		lines[1])
}

func TestEscapeAzure(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "50%AZP25%0Anext", escapeAzureMessage("50%\nnext"))
	assert.Equal(t, "a%3Bb%5D", escapeAzureProperty("a;b]"))
}

func TestGitLabReporter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewGitLabReporter(&buf).Report(fixture(), Metadata{}))

	var issues []GitLabIssue
	require.NoError(t, json.Unmarshal(buf.Bytes(), &issues))
	require.Len(t, issues, 2)
	assert.Equal(t, "S041", issues[1].CheckName)
	assert.Equal(t, "src/main.f90", issues[1].Location.Path)
	assert.Equal(t, GitLabLines{Begin: 3, End: 3}, issues[1].Location.Lines)
	assert.Equal(t, "major", issues[1].Severity)
	assert.Len(t, issues[1].Fingerprint, 16)
	assert.NotEqual(t, issues[0].Fingerprint, issues[1].Fingerprint)
}

func TestFingerprint(t *testing.T) {
	t.Parallel()
	seen := make(map[string]int)
	a := fingerprint(seen, "a.f90", "S101", "trailing whitespace")
	b := fingerprint(seen, "a.f90", "S101", "trailing whitespace")
	assert.NotEqual(t, a, b, "repeated violations need distinct fingerprints")

	// A fresh report assigns the same fingerprints in the same order.
	again := make(map[string]int)
	assert.Equal(t, a, fingerprint(again, "a.f90", "S101", "trailing whitespace"))
	assert.Equal(t, b, fingerprint(again, "a.f90", "S101", "trailing whitespace"))
}

func TestRDJSONReporter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewRDJSONReporter(&buf, "", ruleNames(all.Registry())).Report(fixture(), Metadata{}))

	var out RDJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "fortitude", out.Source.Name)
	assert.Equal(t, "ERROR", out.Severity)
	require.Len(t, out.Diagnostics, 2)

	d := out.Diagnostics[1]
	assert.Equal(t, "S041", d.Code.Value)
	assert.Equal(t, DocsBaseURL+"deprecated-relational-operator/", d.Code.URL)
	assert.Equal(t, RDRange{Start: RDPosition{Line: 3, Column: 9}, End: RDPosition{Line: 3, Column: 13}}, d.Location.Range)
	require.Len(t, d.Suggestions, 1)
	assert.Equal(t, "==", d.Suggestions[0].Text)
}

func TestRDJSONReporterSkipsManualFixes(t *testing.T) {
	t.Parallel()
	d := rules.NewDiagnostic(rules.MustParseCode("P011"), "prefer 'real(real64)' to 'double precision'", rules.NewRange(0, 16)).
		WithFix(rules.ManualFix("Use 'real(real64)'", rules.Replacement(0, 16, "real(real64)")))
	files := []runner.FileResult{{Path: "a.f90", Result: result("a.f90", "double precision :: x\n", d)}}

	var buf bytes.Buffer
	require.NoError(t, NewRDJSONReporter(&buf, "", nil).Report(files, Metadata{}))
	var out RDJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Diagnostics, 1)
	assert.Empty(t, out.Diagnostics[0].Suggestions)
}

func TestJUnitReporter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, NewJUnitReporter(&buf).Report(fixture(), Metadata{}))
	require.True(t, strings.HasPrefix(buf.String(), xml.Header))

	var root JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &root))
	assert.Equal(t, 4, root.Tests)
	assert.Equal(t, 2, root.Failures)
	assert.Equal(t, 1, root.Errors)
	require.Len(t, root.Suites, 3)

	// Suites are sorted by path.
	assert.Equal(t, "src/clean.f90", root.Suites[0].Name)
	assert.Nil(t, root.Suites[0].Cases[0].Failure)

	main := root.Suites[1]
	assert.Equal(t, "src/main.f90", main.Name)
	require.Len(t, main.Cases, 2)
	assert.Equal(t, "src/main.f90:3:9", main.Cases[1].Name)
	assert.Equal(t, "fortitude.S041", main.Cases[1].ClassName)
	require.NotNil(t, main.Cases[1].Failure)
	assert.Equal(t, "deprecated relational operator '.eq.', prefer '==' instead", main.Cases[1].Failure.Message)

	missing := root.Suites[2]
	require.NotNil(t, missing.Cases[0].Error)
	assert.Contains(t, missing.Cases[0].Error.Message, "src/missing.f90: read:")
}
