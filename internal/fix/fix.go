// Package fix applies the fixes carried by diagnostics and re-lints the
// result until the text stops changing.
package fix

import (
	"github.com/wharflab/fortitude/internal/config"
	"github.com/wharflab/fortitude/internal/linter"
	"github.com/wharflab/fortitude/internal/rules"
)

// Re-export FixMode from config for convenience.
type Mode = config.FixMode

const (
	// ModeOff applies nothing.
	ModeOff = config.FixModeOff

	// ModeSafe applies safe fixes.
	ModeSafe = config.FixModeSafe

	// ModeUnsafe applies safe and unsafe fixes.
	ModeUnsafe = config.FixModeUnsafe
)

// Status is the final state of one diagnostic.
type Status int

const (
	// Reported diagnostics remain in the final text.
	Reported Status = iota

	// Fixed diagnostics were resolved by a safe fix.
	Fixed

	// FixedUnsafe diagnostics were resolved by an unsafe fix.
	FixedUnsafe

	// Unresolved diagnostics still had an applicable fix when the pass
	// limit was reached.
	Unresolved
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case Fixed:
		return "fixed"
	case FixedUnsafe:
		return "fixed (unsafe)"
	case Unresolved:
		return "unresolved"
	default:
		return "reported"
	}
}

// IsFixed reports whether the diagnostic was resolved by a fix.
func (s Status) IsFixed() bool {
	return s == Fixed || s == FixedUnsafe
}

// Outcome pairs a diagnostic with what happened to it.
type Outcome struct {
	Diagnostic rules.Diagnostic
	Status     Status

	// Pass is the 1-based pass a fix was applied in, 0 for diagnostics of
	// the final text.
	Pass int
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	// Code identifies which rule this fix is for.
	Code rules.Code

	// Description explains what the fix did.
	Description string

	Safety rules.Safety

	// Pass is the 1-based pass the fix was applied in.
	Pass int

	// Diagnostic is the diagnostic carrying the fix, with ranges of the
	// text version the fix was applied to.
	Diagnostic rules.Diagnostic
}

// Result is the outcome of fixing one file.
type Result struct {
	// Path is the file path.
	Path string

	// Original is the text before any fix.
	Original []byte

	// Source is the final text. It equals Original when nothing was applied.
	Source []byte

	// Outcomes lists applied fixes first, in application order, followed by
	// the diagnostics of the final text in engine order.
	Outcomes []Outcome

	Applied []AppliedFix

	// Iterations is the number of passes that rewrote the text.
	Iterations int

	// Exhausted is set when the pass limit was reached while fixes were
	// still pending.
	Exhausted bool

	// Errors are the rule failures of the final lint pass.
	Errors []*linter.RuleEngineError
}

// Changed reports whether at least one fix was applied.
func (r *Result) Changed() bool {
	return len(r.Applied) > 0
}

// Remaining returns the outcomes that were not fixed.
func (r *Result) Remaining() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.Status.IsFixed() {
			out = append(out, o)
		}
	}
	return out
}

// FixedCount returns the number of applied fixes.
func (r *Result) FixedCount() int {
	return len(r.Applied)
}

// FixableCount returns how many remaining diagnostics carry a fix that
// ModeUnsafe could apply.
func (r *Result) FixableCount() int {
	n := 0
	for _, o := range r.Remaining() {
		if applicable(o.Diagnostic, ModeUnsafe) {
			n++
		}
	}
	return n
}
