package reporter

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/termenv"

	"github.com/wharflab/fortitude/internal/fix"
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/runner"
	"github.com/wharflab/fortitude/internal/sourcemap"
)

// Styles for different parts of the output
var (
	// Color detection using termenv (respects NO_COLOR, CLICOLOR_FORCE, terminal detection)
	useColors = termenv.EnvColorProfile() != termenv.Ascii

	pathStyle = lipgloss.NewStyle().Bold(true)

	ruleCodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	fixMarkerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // Blue

	gutterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Bold(true)

	markerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")) // Red

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45")). // Cyan
			Bold(true)

	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")) // Orange

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// TextStyle selects one of the human-readable layouts.
type TextStyle int

const (
	// StyleFull shows each violation with its source context.
	StyleFull TextStyle = iota
	// StyleConcise shows one line per violation.
	StyleConcise
	// StyleGrouped shows violations under a header per file.
	StyleGrouped
)

// TextOptions configures the text reporter output.
type TextOptions struct {
	Style TextStyle

	// Color enables/disables colored output. Default: auto-detect.
	Color *bool

	// Names maps rule codes to names for the fix summary.
	Names map[rules.Code]string

	// ContextLines is the number of lines shown around a violation in the
	// full style. Default: 2.
	ContextLines int
}

// TextReporter formats results as styled text output.
type TextReporter struct {
	w     io.Writer
	opts  TextOptions
	color bool
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(w io.Writer, opts TextOptions) *TextReporter {
	colorEnabled := useColors
	if opts.Color != nil {
		colorEnabled = *opts.Color
	}
	if opts.ContextLines == 0 {
		opts.ContextLines = 2
	}
	return &TextReporter{w: w, opts: opts, color: colorEnabled}
}

// Report implements Reporter.
func (r *TextReporter) Report(files []runner.FileResult, meta Metadata) error {
	violations := Collect(files, r.opts.Names)
	var buf bytes.Buffer

	if !meta.FixOnly {
		switch r.opts.Style {
		case StyleConcise:
			for _, v := range violations {
				buf.WriteString(r.headline(v, meta) + "\n")
			}
		case StyleGrouped:
			r.printGrouped(&buf, violations, meta)
		default:
			srcs := sources(files)
			for _, v := range violations {
				r.printFull(&buf, v, srcs[v.Path], meta)
			}
		}
	}
	r.printSummary(&buf, files, violations, meta)

	_, err := r.w.Write(buf.Bytes())
	return err
}

func (r *TextReporter) render(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// headline is the one-line form "path:row:col: CODE [*] message".
func (r *TextReporter) headline(v Violation, meta Metadata) string {
	loc := fmt.Sprintf("%s:%d:%d:", v.Path, v.Start.Line, v.Start.Column)
	return fmt.Sprintf("%s %s%s", r.render(pathStyle, loc), r.codeWithMarker(v, meta), v.Message)
}

func (r *TextReporter) codeWithMarker(v Violation, meta Metadata) string {
	s := r.render(ruleCodeStyle, v.Code.String()) + " "
	if v.Applicable(meta.UnsafeFixes) {
		s += r.render(fixMarkerStyle, "[*]") + " "
	}
	return s
}

func (r *TextReporter) printGrouped(buf *bytes.Buffer, violations []Violation, meta Metadata) {
	current := ""
	for _, v := range violations {
		if v.Path != current {
			if current != "" {
				buf.WriteString("\n")
			}
			current = v.Path
			buf.WriteString(r.render(pathStyle, v.Path+":") + "\n")
		}
		loc := fmt.Sprintf("%d:%d", v.Start.Line, v.Start.Column)
		fmt.Fprintf(buf, "  %s %s%s\n", loc, r.codeWithMarker(v, meta), v.Message)
	}
	if current != "" {
		buf.WriteString("\n")
	}
}

// printFull renders a violation with a window of source lines around it
// and markers under the offending text.
func (r *TextReporter) printFull(buf *bytes.Buffer, v Violation, source []byte, meta Metadata) {
	buf.WriteString(r.headline(v, meta) + "\n")
	if source == nil {
		buf.WriteString("\n")
		return
	}

	sm := sourcemap.New(source)
	line := v.Start.Line - 1
	first, last := sm.ContextWindow(line, r.opts.ContextLines, r.opts.ContextLines)
	width := len(strconv.Itoa(last + 1))
	blank := strings.Repeat(" ", width)
	bar := r.render(gutterStyle, "|")

	fmt.Fprintf(buf, "%s %s\n", blank, bar)
	for i := first; i <= last; i++ {
		num := r.render(gutterStyle, fmt.Sprintf("%*d", width, i+1))
		fmt.Fprintf(buf, "%s %s %s\n", num, bar, sm.Line(i))
		if i == line {
			pad, carets := underline(sm, v)
			fmt.Fprintf(buf, "%s %s %s%s\n", blank, bar, pad,
				r.render(markerStyle, carets+" "+v.Code.String()))
		}
	}
	fmt.Fprintf(buf, "%s %s\n", blank, bar)

	if v.Fix != nil && v.Fix.Description != "" {
		help := v.Fix.Description
		if !v.Applicable(true) {
			help += " (manual)"
		} else if v.Fix.Safety == rules.Unsafe && !meta.UnsafeFixes {
			help += " (unsafe)"
		}
		fmt.Fprintf(buf, "%s %s %s\n", blank, r.render(helpStyle, "= help:"), help)
		if meta.ShowFixes && meta.FixMode == fix.ModeOff {
			for _, d := range previewFix(source, v.Fix) {
				r.printDiffLine(buf, blank, width, d)
			}
		}
	}
	buf.WriteString("\n")
}

func (r *TextReporter) printDiffLine(buf *bytes.Buffer, blank string, width int, d diffLine) {
	sign, style := "-", removedStyle
	if d.Added {
		sign, style = "+", addedStyle
	}
	text := fmt.Sprintf("%s %*d | %s", sign, width, d.Line, d.Text)
	fmt.Fprintf(buf, "%s %s\n", blank, r.render(style, text))
}

// underline returns the padding up to the violation's first column and a
// run of carets covering its extent on that line. Tabs in the padding are
// kept so the carets line up with the source.
func underline(sm *sourcemap.SourceMap, v Violation) (pad, carets string) {
	text := sm.Line(v.Start.Line - 1)
	runes := []rune(text)
	startCol := min(v.Start.Column-1, len(runes))
	endCol := len(runes)
	if v.End.Line == v.Start.Line {
		endCol = min(v.End.Column-1, len(runes))
	}

	var b strings.Builder
	for _, c := range runes[:startCol] {
		if c == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String(), strings.Repeat("^", max(endCol-startCol, 1))
}

func (r *TextReporter) printSummary(buf *bytes.Buffer, files []runner.FileResult, violations []Violation, meta Metadata) {
	fixed, failed := 0, 0
	for _, f := range files {
		if f.Failed() {
			failed++
			fmt.Fprintf(buf, "%s %v\n", r.render(errorStyle, "error:"), f.Err)
		}
		if f.Result == nil {
			continue
		}
		fixed += f.Result.FixedCount()
		if f.Result.Exhausted {
			fmt.Fprintf(buf, "%s %s: could not stabilize after %d passes\n",
				r.render(warningStyle, "warning:"), f.Path, f.Result.Iterations)
		}
	}

	if meta.ShowFixes && fixed > 0 {
		r.printAppliedFixes(buf, files)
	}

	remaining := len(violations)
	switch {
	case meta.FixOnly && fixed > 0:
		fmt.Fprintf(buf, "Fixed %s.\n", plural(fixed, "error"))
	case meta.FixOnly:
		buf.WriteString("No errors fixed.\n")
	case remaining == 0 && fixed == 0:
		buf.WriteString("All checks passed!\n")
	case fixed > 0:
		fmt.Fprintf(buf, "Found %s (%d fixed, %d remaining).\n", plural(fixed+remaining, "error"), fixed, remaining)
	default:
		fmt.Fprintf(buf, "Found %s.\n", plural(remaining, "error"))
	}

	if !meta.FixOnly {
		r.printFixHints(buf, violations, meta)
	}
	if failed > 0 {
		fmt.Fprintf(buf, "%s %s could not be checked.\n", r.render(warningStyle, "warning:"), plural(failed, "file"))
	}
}

func (r *TextReporter) printFixHints(buf *bytes.Buffer, violations []Violation, meta Metadata) {
	fixable, hidden := 0, 0
	for _, v := range violations {
		switch {
		case v.Applicable(meta.UnsafeFixes):
			fixable++
		case v.Applicable(true):
			hidden++
		}
	}

	hiddenNote := ""
	if hidden > 0 {
		hiddenNote = fmt.Sprintf("%d hidden %s can be enabled with the `--unsafe-fixes` option", hidden, pluralWord(hidden, "fix"))
	}
	switch {
	case fixable > 0 && meta.FixMode == fix.ModeOff:
		line := fmt.Sprintf("%s %d fixable with the `--fix` option", r.render(fixMarkerStyle, "[*]"), fixable)
		if hiddenNote != "" {
			line += " (" + hiddenNote + ")"
		}
		buf.WriteString(line + ".\n")
	case hiddenNote != "":
		fmt.Fprintf(buf, "No fixes available (%s).\n", hiddenNote)
	}
}

// printAppliedFixes lists applied fixes per file and rule.
func (r *TextReporter) printAppliedFixes(buf *bytes.Buffer, files []runner.FileResult) {
	buf.WriteString("\nFixed:\n")
	for _, f := range sortedFiles(files) {
		if f.Result == nil || !f.Result.Changed() {
			continue
		}
		buf.WriteString(r.render(pathStyle, f.Path+":") + "\n")
		var order []rules.Code
		counts := make(map[rules.Code]int)
		for _, a := range f.Result.Applied {
			if counts[a.Code] == 0 {
				order = append(order, a.Code)
			}
			counts[a.Code]++
		}
		slices.SortFunc(order, rules.Code.Compare)
		for _, code := range order {
			line := fmt.Sprintf("    %d × %s", counts[code], r.render(ruleCodeStyle, code.String()))
			if name := r.opts.Names[code]; name != "" {
				line += " (" + name + ")"
			}
			buf.WriteString(line + "\n")
		}
	}
	buf.WriteString("\n")
}

func plural(n int, word string) string {
	return fmt.Sprintf("%d %s", n, pluralWord(n, word))
}

func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}
	if strings.HasSuffix(word, "x") {
		return word + "es"
	}
	return word + "s"
}
