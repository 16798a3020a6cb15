package reporter

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wharflab/fortitude/internal/runner"
)

// GitHubActionsReporter formats violations as GitHub Actions workflow commands.
// These commands appear as annotations in the GitHub Actions UI.
//
// Format: ::error title={title},file={file},line={line},col={col},endLine={line},endColumn={col}::{message}
//
// See: https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions#setting-an-error-message
type GitHubActionsReporter struct {
	writer io.Writer
}

// NewGitHubActionsReporter creates a new GitHub Actions reporter.
func NewGitHubActionsReporter(w io.Writer) *GitHubActionsReporter {
	return &GitHubActionsReporter{writer: w}
}

// Report implements Reporter.
func (r *GitHubActionsReporter) Report(files []runner.FileResult, _ Metadata) error {
	for _, v := range Collect(files, nil) {
		filePath := filepath.ToSlash(v.Path)

		parts := []string{
			"title=" + escapeGitHubProperty(fmt.Sprintf("fortitude (%s)", v.Code)),
			"file=" + escapeGitHubProperty(filePath),
			fmt.Sprintf("line=%d", v.Start.Line),
			fmt.Sprintf("col=%d", v.Start.Column),
			fmt.Sprintf("endLine=%d", v.End.Line),
			fmt.Sprintf("endColumn=%d", v.End.Column),
		}

		// The message repeats the location so raw logs stay readable.
		message := escapeGitHubMessage(fmt.Sprintf("%s:%d:%d: %s %s",
			filePath, v.Start.Line, v.Start.Column, v.Code, v.Message))

		if _, err := fmt.Fprintf(r.writer, "::error %s::%s\n", strings.Join(parts, ","), message); err != nil {
			return err
		}
	}
	return nil
}

// escapeGitHubMessage escapes special characters in GitHub Actions workflow command messages.
// Messages use escapeData() rules which escape "%", "\r", "\n" but NOT ":" or ",".
// See: https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
func escapeGitHubMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeGitHubProperty escapes special characters in GitHub Actions workflow command properties.
// Properties (file, title, etc.) use escapeProperty() rules which escape "%", "\r", "\n", ":", and ",".
// See: https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
func escapeGitHubProperty(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
