// Package sourcemap converts between byte offsets, which the lint core works
// in, and the line/column positions that reporters show to humans.
package sourcemap

import (
	"bytes"
	"sort"
	"strings"
	"unicode/utf8"
)

// SourceMap provides line-based access to one version of a file's text.
//
// Line numbers accepted and returned by the index methods are 0-based.
// Position returns 1-based values for display.
type SourceMap struct {
	source []byte

	// lines are the individual lines (without line endings).
	lines []string

	// lineOffsets[i] is the byte offset where line i starts in source.
	lineOffsets []int
}

// New creates a SourceMap from source content.
// Lines are split on \n; a trailing \r is dropped from each line.
func New(source []byte) *SourceMap {
	rawLines := bytes.Split(source, []byte{'\n'})
	lines := make([]string, len(rawLines))
	lineOffsets := make([]int, len(rawLines))

	offset := 0
	for i, line := range rawLines {
		lineOffsets[i] = offset
		lines[i] = strings.TrimSuffix(string(line), "\r")
		offset += len(line) + 1
	}

	return &SourceMap{
		source:      source,
		lines:       lines,
		lineOffsets: lineOffsets,
	}
}

// Lines returns all lines (without line endings).
// The returned slice should not be modified.
func (sm *SourceMap) Lines() []string {
	return sm.lines
}

// LineCount returns the total number of lines.
func (sm *SourceMap) LineCount() int {
	return len(sm.lines)
}

// Line returns the text of a specific line (0-based).
// Returns empty string if line is out of range.
func (sm *SourceMap) Line(line int) string {
	if line < 0 || line >= len(sm.lines) {
		return ""
	}
	return sm.lines[line]
}

// LineOffset returns the byte offset where a line starts (0-based).
// Returns -1 if line is out of range.
func (sm *SourceMap) LineOffset(line int) int {
	if line < 0 || line >= len(sm.lineOffsets) {
		return -1
	}
	return sm.lineOffsets[line]
}

// LineAt returns the 0-based line containing offset. Offsets past the end
// map to the last line.
func (sm *SourceMap) LineAt(offset int) int {
	if offset < 0 {
		return 0
	}
	line := sort.SearchInts(sm.lineOffsets, offset+1) - 1
	return max(line, 0)
}

// Position is a 1-based line and column. Column counts characters, not bytes.
type Position struct {
	Line   int `json:"row"`
	Column int `json:"column"`
}

// Position converts a byte offset into a 1-based display position.
func (sm *SourceMap) Position(offset int) Position {
	line := sm.LineAt(offset)
	start := sm.lineOffsets[line]
	offset = min(max(offset, start), len(sm.source))
	col := utf8.RuneCount(sm.source[start:offset]) + 1
	return Position{Line: line + 1, Column: col}
}

// Snippet extracts a range of lines as a single string.
// Both startLine and endLine are 0-based and inclusive.
// Returns empty string if range is invalid.
func (sm *SourceMap) Snippet(startLine, endLine int) string {
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sm.lines) {
		endLine = len(sm.lines) - 1
	}
	if startLine > endLine || startLine >= len(sm.lines) {
		return ""
	}

	return strings.Join(sm.lines[startLine:endLine+1], "\n")
}

// ContextWindow returns the 0-based inclusive line range shown around a
// diagnostic on line: up to `before` lines before and `after` lines after,
// with blank lines at either edge trimmed away.
func (sm *SourceMap) ContextWindow(line, before, after int) (int, int) {
	if len(sm.lines) == 0 {
		return 0, -1
	}
	line = min(max(line, 0), len(sm.lines)-1)
	start := max(line-before, 0)
	end := min(line+after, len(sm.lines)-1)

	for start < line && strings.TrimSpace(sm.lines[start]) == "" {
		start++
	}
	for end > line && strings.TrimSpace(sm.lines[end]) == "" {
		end--
	}
	return start, end
}

// Source returns the raw source content.
// The returned slice should not be modified.
func (sm *SourceMap) Source() []byte {
	return sm.source
}
