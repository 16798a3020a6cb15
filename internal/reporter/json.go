package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/runner"
	"github.com/wharflab/fortitude/internal/sourcemap"
)

// JSONMessage is one violation in json and json-lines output.
type JSONMessage struct {
	Code        string             `json:"code"`
	Rule        string             `json:"rule,omitempty"`
	Message     string             `json:"message"`
	Filename    string             `json:"filename"`
	Location    sourcemap.Position `json:"location"`
	EndLocation sourcemap.Position `json:"end_location"`
	Fix         *JSONFix           `json:"fix"`
	URL         string             `json:"url,omitempty"`

	// Status is "reported" or "unresolved".
	Status string `json:"status"`
}

// JSONFix describes a fix with positioned edits.
type JSONFix struct {
	// Applicability is "safe", "unsafe" or "display-only".
	Applicability string     `json:"applicability"`
	Message       string     `json:"message"`
	Edits         []JSONEdit `json:"edits"`
}

// JSONEdit is a positioned text replacement.
type JSONEdit struct {
	Content     string             `json:"content"`
	Location    sourcemap.Position `json:"location"`
	EndLocation sourcemap.Position `json:"end_location"`
}

// JSONReporter formats violations as a JSON array.
type JSONReporter struct {
	writer io.Writer
	names  map[rules.Code]string
	lines  bool
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer, names map[rules.Code]string) *JSONReporter {
	return &JSONReporter{writer: w, names: names}
}

// NewJSONLinesReporter creates a reporter writing one JSON object per line.
func NewJSONLinesReporter(w io.Writer, names map[rules.Code]string) *JSONReporter {
	return &JSONReporter{writer: w, names: names, lines: true}
}

// Report implements Reporter.
func (r *JSONReporter) Report(files []runner.FileResult, _ Metadata) error {
	messages := jsonMessages(files, r.names)

	enc := json.NewEncoder(r.writer)
	if r.lines {
		for _, m := range messages {
			if err := enc.Encode(m); err != nil {
				return err
			}
		}
		return nil
	}
	enc.SetIndent("", "  ")
	return enc.Encode(messages)
}

func jsonMessages(files []runner.FileResult, names map[rules.Code]string) []JSONMessage {
	maps := sourceMaps(files)
	messages := make([]JSONMessage, 0)
	for _, v := range Collect(files, names) {
		messages = append(messages, JSONMessage{
			Code:        v.Code.String(),
			Rule:        v.Rule,
			Message:     v.Message,
			Filename:    filepath.ToSlash(v.Path),
			Location:    v.Start,
			EndLocation: v.End,
			Fix:         jsonFix(v.Fix, maps[v.Path]),
			URL:         v.DocURL(),
			Status:      v.Status.String(),
		})
	}
	return messages
}

func jsonFix(f *rules.Fix, sm *sourcemap.SourceMap) *JSONFix {
	if f == nil || sm == nil {
		return nil
	}
	out := &JSONFix{
		Applicability: applicability(f),
		Message:       f.Description,
		Edits:         make([]JSONEdit, 0, len(f.Edits)),
	}
	for _, e := range f.Edits {
		out.Edits = append(out.Edits, JSONEdit{
			Content:     e.Content,
			Location:    sm.Position(e.Range.Start),
			EndLocation: sm.Position(e.Range.End),
		})
	}
	return out
}

func applicability(f *rules.Fix) string {
	if f.Applicability == rules.ManualOnly {
		return "display-only"
	}
	return f.Safety.String()
}

func sourceMaps(files []runner.FileResult) map[string]*sourcemap.SourceMap {
	maps := make(map[string]*sourcemap.SourceMap, len(files))
	for path, src := range sources(files) {
		maps[path] = sourcemap.New(src)
	}
	return maps
}
