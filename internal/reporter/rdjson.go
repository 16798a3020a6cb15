package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/runner"
	"github.com/wharflab/fortitude/internal/sourcemap"
)

// RDJSON is the top-level reviewdog diagnostic result.
//
// See: https://github.com/reviewdog/reviewdog/tree/master/proto/rdf
type RDJSON struct {
	Source      RDSource       `json:"source"`
	Severity    string         `json:"severity"`
	Diagnostics []RDDiagnostic `json:"diagnostics"`
}

// RDSource names the tool that produced the diagnostics.
type RDSource struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// RDDiagnostic is one reviewdog diagnostic.
type RDDiagnostic struct {
	Message     string         `json:"message"`
	Location    RDLocation     `json:"location"`
	Code        RDCode         `json:"code"`
	Suggestions []RDSuggestion `json:"suggestions,omitempty"`
}

// RDLocation is a path and range.
type RDLocation struct {
	Path  string  `json:"path"`
	Range RDRange `json:"range"`
}

// RDRange is a 1-based range. Columns count characters.
type RDRange struct {
	Start RDPosition `json:"start"`
	End   RDPosition `json:"end"`
}

// RDPosition is a 1-based position.
type RDPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// RDCode is the rule code with its documentation link.
type RDCode struct {
	Value string `json:"value"`
	URL   string `json:"url,omitempty"`
}

// RDSuggestion is a replacement reviewdog can offer as a suggested change.
type RDSuggestion struct {
	Range RDRange `json:"range"`
	Text  string  `json:"text"`
}

// RDJSONReporter formats violations as reviewdog diagnostic JSON.
type RDJSONReporter struct {
	writer   io.Writer
	toolName string
	names    map[rules.Code]string
}

// NewRDJSONReporter creates a new rdjson reporter.
func NewRDJSONReporter(w io.Writer, toolName string, names map[rules.Code]string) *RDJSONReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	return &RDJSONReporter{writer: w, toolName: toolName, names: names}
}

// Report implements Reporter.
func (r *RDJSONReporter) Report(files []runner.FileResult, _ Metadata) error {
	maps := sourceMaps(files)
	out := RDJSON{
		Source:      RDSource{Name: r.toolName, URL: defaultToolURI},
		Severity:    "ERROR",
		Diagnostics: make([]RDDiagnostic, 0),
	}
	for _, v := range Collect(files, r.names) {
		d := RDDiagnostic{
			Message: v.Message,
			Location: RDLocation{
				Path:  filepath.ToSlash(v.Path),
				Range: rdRange(v.Start, v.End),
			},
			Code: RDCode{Value: v.Code.String(), URL: v.DocURL()},
		}
		if sm := maps[v.Path]; sm != nil && v.Applicable(true) {
			for _, e := range v.Fix.Edits {
				d.Suggestions = append(d.Suggestions, RDSuggestion{
					Range: rdRange(sm.Position(e.Range.Start), sm.Position(e.Range.End)),
					Text:  e.Content,
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, d)
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func rdRange(start, end sourcemap.Position) RDRange {
	return RDRange{
		Start: RDPosition{Line: start.Line, Column: start.Column},
		End:   RDPosition{Line: end.Line, Column: end.Column},
	}
}
