// Package reporter renders check results.
//
// The package supports these output formats:
//   - concise, full, grouped: human-readable terminal output
//   - json, json-lines: machine-readable JSON
//   - junit: JUnit XML for test dashboards
//   - github, gitlab, azure: CI annotations and code quality reports
//   - pylint: the pylint parseable line format
//   - rdjson: reviewdog diagnostic format
//   - sarif: Static Analysis Results Interchange Format
package reporter

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/wharflab/fortitude/internal/fix"
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/runner"
	"github.com/wharflab/fortitude/internal/sourcemap"
)

// DocsBaseURL prefixes a rule name to form its documentation link.
const DocsBaseURL = "https://fortitude.readthedocs.io/en/stable/rules/"

// Metadata contains contextual information about the run.
type Metadata struct {
	// FilesChecked is the number of files handed to the runner.
	FilesChecked int

	// RulesEnabled is the size of the active rule set.
	RulesEnabled int

	FixMode fix.Mode

	// UnsafeFixes is set when unsafe fixes may be applied or counted as
	// fixable, even with fixing off.
	UnsafeFixes bool

	ShowFixes bool

	// FixOnly suppresses remaining violations in the human formats.
	FixOnly bool
}

// Reporter formats and outputs check results.
type Reporter interface {
	// Report writes the results of one run, given in input order.
	Report(files []runner.FileResult, meta Metadata) error
}

// Format represents an output format type.
type Format string

const (
	FormatConcise   Format = "concise"
	FormatFull      Format = "full"
	FormatGrouped   Format = "grouped"
	FormatJSON      Format = "json"
	FormatJSONLines Format = "json-lines"
	FormatJUnit     Format = "junit"
	FormatGitHub    Format = "github"
	FormatGitLab    Format = "gitlab"
	FormatPylint    Format = "pylint"
	FormatRDJSON    Format = "rdjson"
	FormatAzure     Format = "azure"
	FormatSARIF     Format = "sarif"
)

// Formats lists every format in the order shown in help output.
var Formats = []Format{
	FormatConcise, FormatFull, FormatJSON, FormatJSONLines, FormatJUnit, FormatGrouped,
	FormatGitHub, FormatGitLab, FormatPylint, FormatRDJSON, FormatAzure, FormatSARIF,
}

// ParseFormat parses a format string into a Format type.
// Returns an error if the format is unknown.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatFull, nil
	}
	if f := Format(s); slices.Contains(Formats, f) {
		return f, nil
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format: %q (valid: %s)", s, strings.Join(names, ", "))
}

// Options configures reporter creation.
type Options struct {
	// Format specifies the output format.
	Format Format

	// Writer is the output destination.
	Writer io.Writer

	// Registry resolves rule names for codes. Optional.
	Registry *rules.Registry

	// Color enables/disables colored output (human formats only).
	// nil means auto-detect.
	Color *bool

	// ToolVersion is included in SARIF and rdjson output.
	ToolVersion string

	// ToolName is the tool name for SARIF output.
	ToolName string

	// ToolURI is the tool information URI for SARIF output.
	ToolURI string
}

// New creates a reporter based on the format specified in options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	names := ruleNames(opts.Registry)

	switch opts.Format {
	case FormatFull, "":
		return NewTextReporter(opts.Writer, TextOptions{Style: StyleFull, Color: opts.Color, Names: names}), nil
	case FormatConcise:
		return NewTextReporter(opts.Writer, TextOptions{Style: StyleConcise, Color: opts.Color, Names: names}), nil
	case FormatGrouped:
		return NewTextReporter(opts.Writer, TextOptions{Style: StyleGrouped, Color: opts.Color, Names: names}), nil
	case FormatJSON:
		return NewJSONReporter(opts.Writer, names), nil
	case FormatJSONLines:
		return NewJSONLinesReporter(opts.Writer, names), nil
	case FormatJUnit:
		return NewJUnitReporter(opts.Writer), nil
	case FormatGitHub:
		return NewGitHubActionsReporter(opts.Writer), nil
	case FormatGitLab:
		return NewGitLabReporter(opts.Writer), nil
	case FormatPylint:
		return NewPylintReporter(opts.Writer), nil
	case FormatRDJSON:
		return NewRDJSONReporter(opts.Writer, opts.ToolName, names), nil
	case FormatAzure:
		return NewAzureReporter(opts.Writer), nil
	case FormatSARIF:
		return NewSARIFReporter(opts.Writer, opts.ToolName, opts.ToolVersion, opts.ToolURI, opts.Registry), nil
	default:
		return nil, fmt.Errorf("unknown format: %q", opts.Format)
	}
}

// Violation is a remaining diagnostic positioned for display.
type Violation struct {
	Path    string
	Code    rules.Code
	Rule    string
	Message string

	// Range is the byte range in the final text of the file.
	Range rules.TextRange

	// Start and End are 1-based display positions of Range.
	Start sourcemap.Position
	End   sourcemap.Position

	Fix    *rules.Fix
	Status fix.Status
	Kind   rules.Kind
}

// DocURL returns the documentation link for the violation's rule.
func (v Violation) DocURL() string {
	if v.Rule == "" {
		return ""
	}
	return DocsBaseURL + v.Rule + "/"
}

// Applicable reports whether the violation's fix could be applied
// automatically, with unsafe fixes allowed or not.
func (v Violation) Applicable(unsafe bool) bool {
	if v.Fix == nil || len(v.Fix.Edits) == 0 || v.Fix.Applicability != rules.Always {
		return false
	}
	return v.Fix.Safety == rules.Safe || unsafe
}

// Collect positions the remaining diagnostics of every file, sorted by
// path and then engine order. names maps codes to rule names and may be nil.
func Collect(files []runner.FileResult, names map[rules.Code]string) []Violation {
	var out []Violation
	for _, f := range sortedFiles(files) {
		if f.Result == nil {
			continue
		}
		sm := sourcemap.New(f.Result.Source)
		for _, o := range f.Result.Remaining() {
			d := o.Diagnostic
			out = append(out, Violation{
				Path:    f.Path,
				Code:    d.Code,
				Rule:    names[d.Code],
				Message: d.Message,
				Range:   d.Range,
				Start:   sm.Position(d.Range.Start),
				End:     sm.Position(d.Range.End),
				Fix:     d.Fix,
				Status:  o.Status,
				Kind:    d.Kind,
			})
		}
	}
	return out
}

// sortedFiles returns files ordered by path. Input order already matches
// discovery order; sorting keeps reports stable when callers pass results
// from several runs.
func sortedFiles(files []runner.FileResult) []runner.FileResult {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b runner.FileResult) int {
		return cmp.Compare(a.Path, b.Path)
	})
	return sorted
}

func ruleNames(reg *rules.Registry) map[rules.Code]string {
	names := make(map[rules.Code]string)
	if reg == nil {
		return names
	}
	for _, r := range reg.All() {
		meta := r.Metadata()
		names[meta.Code] = meta.Name
	}
	return names
}

// sources indexes the final text of every file by path.
func sources(files []runner.FileResult) map[string][]byte {
	m := make(map[string][]byte, len(files))
	for _, f := range files {
		if f.Result != nil {
			m[f.Path] = f.Result.Source
		}
	}
	return m
}

// GetWriter returns the writer for an output path: "stdout" or "" maps to
// stdout, "stderr" to stderr, anything else is created as a file.
func GetWriter(path string, stdout, stderr io.Writer) (io.Writer, func() error, error) {
	switch path {
	case "stdout", "":
		return stdout, func() error { return nil }, nil
	case "stderr":
		return stderr, func() error { return nil }, nil
	default:
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		return f, f.Close, nil
	}
}
