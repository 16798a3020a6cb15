package reporter

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/wharflab/fortitude/internal/runner"
)

// GitLabIssue is one entry of a GitLab Code Quality report, a subset of the
// Code Climate issue format.
//
// See: https://docs.gitlab.com/ci/testing/code_quality/#code-quality-report-format
type GitLabIssue struct {
	Description string         `json:"description"`
	CheckName   string         `json:"check_name"`
	Fingerprint string         `json:"fingerprint"`
	Severity    string         `json:"severity"`
	Location    GitLabLocation `json:"location"`
}

// GitLabLocation locates an issue by path and line span.
type GitLabLocation struct {
	Path  string      `json:"path"`
	Lines GitLabLines `json:"lines"`
}

// GitLabLines is a 1-based inclusive line span.
type GitLabLines struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
}

// GitLabReporter formats violations as a GitLab Code Quality report.
type GitLabReporter struct {
	writer io.Writer
}

// NewGitLabReporter creates a new GitLab reporter.
func NewGitLabReporter(w io.Writer) *GitLabReporter {
	return &GitLabReporter{writer: w}
}

// Report implements Reporter.
func (r *GitLabReporter) Report(files []runner.FileResult, _ Metadata) error {
	issues := make([]GitLabIssue, 0)
	seen := make(map[string]int)
	for _, v := range Collect(files, nil) {
		path := filepath.ToSlash(v.Path)
		issues = append(issues, GitLabIssue{
			Description: fmt.Sprintf("%s: %s", v.Code, v.Message),
			CheckName:   v.Code.String(),
			Fingerprint: fingerprint(seen, path, v.Code.String(), v.Message),
			Severity:    "major",
			Location: GitLabLocation{
				Path:  path,
				Lines: GitLabLines{Begin: v.Start.Line, End: v.End.Line},
			},
		})
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(issues)
}

// fingerprint hashes the path, code and message, not the line. Identical
// triples in one report are told apart by an occurrence counter.
func fingerprint(seen map[string]int, path, code, message string) string {
	key := path + "\x00" + code + "\x00" + message
	n := seen[key]
	seen[key]++
	sum := sha256.Sum256(fmt.Appendf(nil, "%s\x00%d", key, n))
	return hex.EncodeToString(sum[:8])
}
