package reporter

import (
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"

	"github.com/wharflab/fortitude/internal/runner"
)

// JUnitTestSuites is the root element of a JUnit XML report.
type JUnitTestSuites struct {
	XMLName  xml.Name         `xml:"testsuites"`
	Name     string           `xml:"name,attr"`
	Tests    int              `xml:"tests,attr"`
	Failures int              `xml:"failures,attr"`
	Errors   int              `xml:"errors,attr"`
	Suites   []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite holds the results of one file.
type JUnitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Errors   int             `xml:"errors,attr"`
	Cases    []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase is one violation, or a single passing case for a clean file.
type JUnitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitFailure `xml:"error,omitempty"`
}

// JUnitFailure describes why a case failed.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

// JUnitReporter formats results as JUnit XML, one suite per file.
type JUnitReporter struct {
	writer io.Writer
}

// NewJUnitReporter creates a new JUnit reporter.
func NewJUnitReporter(w io.Writer) *JUnitReporter {
	return &JUnitReporter{writer: w}
}

// Report implements Reporter.
func (r *JUnitReporter) Report(files []runner.FileResult, _ Metadata) error {
	root := JUnitTestSuites{Name: defaultToolName}

	byPath := make(map[string][]Violation)
	for _, v := range Collect(files, nil) {
		byPath[v.Path] = append(byPath[v.Path], v)
	}

	for _, f := range sortedFiles(files) {
		path := filepath.ToSlash(f.Path)
		suite := JUnitTestSuite{Name: path}
		for _, v := range byPath[f.Path] {
			suite.Cases = append(suite.Cases, JUnitTestCase{
				Name:      fmt.Sprintf("%s:%d:%d", path, v.Start.Line, v.Start.Column),
				ClassName: "fortitude." + v.Code.String(),
				Failure: &JUnitFailure{
					Message: v.Message,
					Text:    fmt.Sprintf("line %d, col %d, %s", v.Start.Line, v.Start.Column, v.Message),
				},
			})
			suite.Failures++
		}
		if f.Failed() {
			suite.Cases = append(suite.Cases, JUnitTestCase{
				Name:      path,
				ClassName: defaultToolName,
				Error:     &JUnitFailure{Message: f.Err.Error()},
			})
			suite.Errors++
		}
		if len(suite.Cases) == 0 {
			suite.Cases = append(suite.Cases, JUnitTestCase{Name: path, ClassName: defaultToolName})
		}
		suite.Tests = len(suite.Cases)

		root.Tests += suite.Tests
		root.Failures += suite.Failures
		root.Errors += suite.Errors
		root.Suites = append(root.Suites, suite)
	}

	if _, err := io.WriteString(r.writer, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(r.writer)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return err
	}
	_, err := io.WriteString(r.writer, "\n")
	return err
}
