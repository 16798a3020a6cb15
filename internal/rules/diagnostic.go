package rules

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// TextRange is a half-open byte interval [Start, End) into one version of a
// file's text. A range is only meaningful against the text it was computed
// from; after a rewrite it must be recomputed, never patched.
type TextRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewRange creates a TextRange.
func NewRange(start, end int) TextRange {
	return TextRange{Start: start, End: end}
}

// Len returns the number of bytes covered.
func (r TextRange) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no bytes (an insertion point).
func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// Overlaps reports whether two ranges cannot both be rewritten.
// Adjacent ranges do not overlap. Two insertions at the same offset do, and
// so does an insertion strictly inside a non-empty range.
func (r TextRange) Overlaps(other TextRange) bool {
	if r.IsEmpty() && other.IsEmpty() {
		return r.Start == other.Start
	}
	if r.IsEmpty() {
		return other.Start < r.Start && r.Start < other.End
	}
	if other.IsEmpty() {
		return r.Start < other.Start && other.Start < r.End
	}
	return r.Start < other.End && other.Start < r.End
}

// Edit replaces the bytes in Range with Content. Empty Content deletes,
// an empty Range inserts.
type Edit struct {
	Range   TextRange `json:"range"`
	Content string    `json:"content"`
}

// Replacement creates an edit replacing [start, end) with content.
func Replacement(start, end int, content string) Edit {
	return Edit{Range: NewRange(start, end), Content: content}
}

// Deletion creates an edit removing [start, end).
func Deletion(start, end int) Edit {
	return Edit{Range: NewRange(start, end)}
}

// Insertion creates an edit inserting content at offset.
func Insertion(offset int, content string) Edit {
	return Edit{Range: NewRange(offset, offset), Content: content}
}

// Safety indicates whether applying a fix can change program behavior.
type Safety int

const (
	// Safe fixes never change behavior.
	Safe Safety = iota
	// Unsafe fixes might change behavior and require --unsafe-fixes.
	Unsafe
)

// String returns the string representation of the safety level.
func (s Safety) String() string {
	if s == Unsafe {
		return "unsafe"
	}
	return "safe"
}

// Applicability controls whether a fix may be applied automatically.
type Applicability int

const (
	// Always fixes are applied automatically when their safety allows it.
	Always Applicability = iota
	// ManualOnly fixes are shown to humans but never applied automatically.
	ManualOnly
)

// String returns the string representation of the applicability.
func (a Applicability) String() string {
	if a == ManualOnly {
		return "manual"
	}
	return "always"
}

// Fix is an ordered set of non-overlapping edits resolving one diagnostic.
type Fix struct {
	// Description explains what this fix does.
	Description string `json:"description"`

	// Edits are sorted by start offset and never overlap.
	Edits []Edit `json:"edits"`

	Safety        Safety        `json:"-"`
	Applicability Applicability `json:"-"`
}

// SafeFix creates an automatically applicable safe fix. Edits are sorted.
func SafeFix(description string, edits ...Edit) *Fix {
	return newFix(description, Safe, Always, edits)
}

// UnsafeFix creates an automatically applicable unsafe fix.
func UnsafeFix(description string, edits ...Edit) *Fix {
	return newFix(description, Unsafe, Always, edits)
}

// ManualFix creates a fix that is only ever displayed.
func ManualFix(description string, edits ...Edit) *Fix {
	return newFix(description, Safe, ManualOnly, edits)
}

func newFix(description string, safety Safety, applicability Applicability, edits []Edit) *Fix {
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return cmp.Or(cmp.Compare(a.Range.Start, b.Range.Start), cmp.Compare(a.Range.End, b.Range.End))
	})
	return &Fix{
		Description:   description,
		Edits:         sorted,
		Safety:        safety,
		Applicability: applicability,
	}
}

// ErrEmptyFix is returned by Validate for fixes without edits.
var ErrEmptyFix = errors.New("fix has no edits")

// Validate checks that the edits are in bounds and pairwise disjoint for a
// text of the given length.
func (f *Fix) Validate(textLen int) error {
	if len(f.Edits) == 0 {
		return ErrEmptyFix
	}
	for i, e := range f.Edits {
		if e.Range.Start < 0 || e.Range.End < e.Range.Start || e.Range.End > textLen {
			return fmt.Errorf("edit %d range [%d,%d) out of bounds (text length %d)",
				i, e.Range.Start, e.Range.End, textLen)
		}
		for _, prev := range f.Edits[:i] {
			if prev.Range.Overlaps(e.Range) {
				return fmt.Errorf("edit %d overlaps an earlier edit of the same fix", i)
			}
		}
	}
	return nil
}

// Kind distinguishes source-code violations from diagnostics synthesized by
// the engine.
type Kind int

const (
	// KindViolation is a finding produced by a rule.
	KindViolation Kind = iota
	// KindParseError marks a region the parser could not understand.
	KindParseError
	// KindInternalError marks a defect in the tool itself.
	KindInternalError
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindParseError:
		return "parse-error"
	case KindInternalError:
		return "internal-error"
	default:
		return "violation"
	}
}

// Diagnostic is one finding for one version of a file's text.
// Diagnostics are produced fresh on every lint pass and never mutated.
type Diagnostic struct {
	// Code identifies the rule that produced the diagnostic.
	Code Code `json:"code"`

	// Message is a human-readable description of the issue.
	Message string `json:"message"`

	// Range is the primary location.
	Range TextRange `json:"range"`

	// Secondary are related locations (optional).
	Secondary []TextRange `json:"secondary,omitempty"`

	// Fix resolves the diagnostic (optional).
	Fix *Fix `json:"fix,omitempty"`

	Kind Kind `json:"-"`
}

// NewDiagnostic creates a violation diagnostic.
func NewDiagnostic(code Code, message string, r TextRange) Diagnostic {
	return Diagnostic{Code: code, Message: message, Range: r}
}

// WithFix returns a copy of the diagnostic carrying fix.
func (d Diagnostic) WithFix(fix *Fix) Diagnostic {
	d.Fix = fix
	return d
}

// WithSecondary returns a copy of the diagnostic with extra related ranges.
func (d Diagnostic) WithSecondary(ranges ...TextRange) Diagnostic {
	d.Secondary = append(slices.Clone(d.Secondary), ranges...)
	return d
}

// Fixable reports whether the diagnostic carries a fix with edits.
func (d Diagnostic) Fixable() bool {
	return d.Fix != nil && len(d.Fix.Edits) > 0
}

// CompareDiagnostics is the canonical engine order: start offset, then code.
// End offset and message break remaining ties so that sorting is total.
func CompareDiagnostics(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Range.Start, b.Range.Start),
		a.Code.Compare(b.Code),
		cmp.Compare(a.Range.End, b.Range.End),
		cmp.Compare(a.Message, b.Message),
	)
}

// SortDiagnostics sorts in place using CompareDiagnostics.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, CompareDiagnostics)
}
