package reporter

import (
	"io"
	"path/filepath"
	"slices"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/runner"
)

// Default SARIF tool information.
const (
	defaultToolName = "fortitude"
	defaultToolURI  = "https://github.com/wharflab/fortitude"
)

// sarifLevel is the level of every result. All findings fail the run.
const sarifLevel = "error"

// SARIFReporter formats violations as SARIF (Static Analysis Results Interchange Format).
// SARIF is a standard format for static analysis tools, widely supported by CI/CD systems
// including GitHub Code Scanning and Azure DevOps.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer      io.Writer
	toolName    string
	toolVersion string
	toolURI     string
	registry    *rules.Registry
}

// NewSARIFReporter creates a new SARIF reporter. The registry supplies rule
// descriptions and may be nil.
func NewSARIFReporter(w io.Writer, toolName, toolVersion, toolURI string, reg *rules.Registry) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{
		writer:      w,
		toolName:    toolName,
		toolVersion: toolVersion,
		toolURI:     toolURI,
		registry:    reg,
	}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(files []runner.FileResult, _ Metadata) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if r.toolVersion != "" {
		run.Tool.Driver.WithVersion(r.toolVersion)
	}

	violations := Collect(files, ruleNames(r.registry))
	maps := sourceMaps(files)

	// Rule definitions for every code that has results, in code order.
	var codes []rules.Code
	for _, v := range violations {
		if !slices.Contains(codes, v.Code) {
			codes = append(codes, v.Code)
		}
	}
	slices.SortFunc(codes, rules.Code.Compare)
	for _, code := range codes {
		rule := run.AddRule(code.String())
		if r.registry == nil {
			continue
		}
		if def, ok := r.registry.Get(code); ok {
			meta := def.Metadata()
			rule.WithShortDescription(sarif.NewMultiformatMessageString().WithText(meta.Summary))
			rule.WithHelpURI(DocsBaseURL + meta.Name + "/")
		}
	}

	for _, f := range sortedFiles(files) {
		if f.Result != nil {
			run.AddDistinctArtifact(filepath.ToSlash(f.Path))
		}
	}

	for _, v := range violations {
		filePath := filepath.ToSlash(v.Path)

		result := sarif.NewRuleResult(v.Code.String()).
			WithMessage(sarif.NewTextMessage(v.Message)).
			WithLevel(sarifLevel)

		region := sarif.NewRegion().
			WithStartLine(v.Start.Line).
			WithStartColumn(v.Start.Column).
			WithEndLine(v.End.Line).
			WithEndColumn(v.End.Column)
		if sm := maps[v.Path]; sm != nil {
			if line := sm.Line(v.Start.Line - 1); line != "" {
				region.WithSnippet(sarif.NewArtifactContent().WithText(line))
			}
		}

		physicalLocation := sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewSimpleArtifactLocation(filePath)).
			WithRegion(region)

		result.WithLocations([]*sarif.Location{
			sarif.NewLocationWithPhysicalLocation(physicalLocation),
		})

		run.AddResult(result)
	}

	report.AddRun(run)

	// Write with pretty formatting for readability
	return report.PrettyWrite(r.writer)
}
