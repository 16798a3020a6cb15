package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wharflab/fortitude/internal/runner"
)

// PylintReporter writes violations in pylint's parseable format:
//
//	path:line: [CODE] message
type PylintReporter struct {
	writer io.Writer
}

// NewPylintReporter creates a new pylint reporter.
func NewPylintReporter(w io.Writer) *PylintReporter {
	return &PylintReporter{writer: w}
}

// Report implements Reporter.
func (r *PylintReporter) Report(files []runner.FileResult, _ Metadata) error {
	for _, v := range Collect(files, nil) {
		if _, err := fmt.Fprintf(r.writer, "%s:%d: [%s] %s\n",
			filepath.ToSlash(v.Path), v.Start.Line, v.Code, v.Message); err != nil {
			return err
		}
	}
	return nil
}

// AzureReporter writes violations as Azure Pipelines logging commands.
//
// See: https://learn.microsoft.com/azure/devops/pipelines/scripts/logging-commands#logissue-log-an-error-or-warning
type AzureReporter struct {
	writer io.Writer
}

// NewAzureReporter creates a new Azure Pipelines reporter.
func NewAzureReporter(w io.Writer) *AzureReporter {
	return &AzureReporter{writer: w}
}

// Report implements Reporter.
func (r *AzureReporter) Report(files []runner.FileResult, _ Metadata) error {
	for _, v := range Collect(files, nil) {
		if _, err := fmt.Fprintf(r.writer,
			"##vso[task.logissue type=error;sourcepath=%s;linenumber=%d;columnnumber=%d;code=%s;]%s\n",
			escapeAzureProperty(filepath.ToSlash(v.Path)), v.Start.Line, v.Start.Column, v.Code,
			escapeAzureMessage(v.Message)); err != nil {
			return err
		}
	}
	return nil
}

// escapeAzureMessage escapes the message body of a logging command.
// See: https://github.com/microsoft/azure-pipelines-task-lib/blob/master/node/taskcommand.ts
func escapeAzureMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%AZP25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeAzureProperty additionally escapes the property separators.
func escapeAzureProperty(s string) string {
	s = escapeAzureMessage(s)
	s = strings.ReplaceAll(s, ";", "%3B")
	s = strings.ReplaceAll(s, "]", "%5D")
	return s
}
