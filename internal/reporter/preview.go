package reporter

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/sourcemap"
)

// diffLine is one removed or added line of a fix preview.
type diffLine struct {
	Added bool

	// Line is the 1-based line number in the text before (removed lines) or
	// after (added lines) the fix.
	Line int
	Text string
}

// previewFix applies f to the lines it touches and returns the changed
// lines as a line diff. Unchanged lines are left out.
func previewFix(source []byte, f *rules.Fix) []diffLine {
	if f == nil || len(f.Edits) == 0 {
		return nil
	}
	sm := sourcemap.New(source)
	firstLine := sm.LineAt(f.Edits[0].Range.Start)
	lastLine := sm.LineAt(f.Edits[len(f.Edits)-1].Range.End)

	start := sm.LineOffset(firstLine)
	end := len(source)
	if next := sm.LineOffset(lastLine + 1); next >= 0 {
		end = next
	}
	if start < 0 || start > end || f.Edits[len(f.Edits)-1].Range.End > end {
		return nil
	}

	before := string(source[start:end])
	after := applyEdits(before, start, f.Edits)

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []diffLine
	oldLine, newLine := firstLine+1, firstLine+1
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				out = append(out, diffLine{Line: oldLine, Text: text})
				oldLine++
			case diffmatchpatch.DiffInsert:
				out = append(out, diffLine{Added: true, Line: newLine, Text: text})
				newLine++
			default:
				oldLine++
				newLine++
			}
		}
	}
	return out
}

// applyEdits rewrites text, which starts at byte offset base of the file.
// Edits are sorted and do not overlap.
func applyEdits(text string, base int, edits []rules.Edit) string {
	var b strings.Builder
	pos := 0
	for _, e := range edits {
		s, t := e.Range.Start-base, e.Range.End-base
		b.WriteString(text[pos:s])
		b.WriteString(e.Content)
		pos = t
	}
	b.WriteString(text[pos:])
	return b.String()
}

// splitLines splits on newlines, dropping line terminators and the empty
// piece after a final newline.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r\n")
	}
	return lines
}
