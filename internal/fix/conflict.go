package fix

import (
	"bytes"
	"cmp"
	"slices"

	"github.com/wharflab/fortitude/internal/rules"
)

// applicable reports whether mode allows applying the diagnostic's fix.
// ManualOnly fixes and fixes without edits never qualify.
func applicable(d rules.Diagnostic, mode Mode) bool {
	if !d.Fixable() || d.Fix.Applicability != rules.Always {
		return false
	}
	switch mode {
	case ModeSafe:
		return d.Fix.Safety == rules.Safe
	case ModeUnsafe:
		return true
	default:
		return false
	}
}

// candidates filters diags down to the fixes mode allows, in the order
// conflicts are resolved: start offset, then rule code.
func candidates(diags []rules.Diagnostic, mode Mode) []rules.Diagnostic {
	var out []rules.Diagnostic
	for _, d := range diags {
		if applicable(d, mode) && selfConsistent(d.Fix) {
			out = append(out, d)
		}
	}
	slices.SortStableFunc(out, func(a, b rules.Diagnostic) int {
		return cmp.Or(cmp.Compare(a.Range.Start, b.Range.Start), a.Code.Compare(b.Code))
	})
	return out
}

func selfConsistent(f *rules.Fix) bool {
	for i, e := range f.Edits {
		for _, prev := range f.Edits[:i] {
			if prev.Range.Overlaps(e.Range) {
				return false
			}
		}
	}
	return true
}

// resolveConflicts greedily accepts sorted candidates whose edits overlap
// no edit accepted before them. Fixes are atomic: all edits or none.
func resolveConflicts(sorted []rules.Diagnostic) (accepted, rejected []rules.Diagnostic) {
	var reserved []rules.TextRange
	for _, d := range sorted {
		if conflicts(d.Fix, reserved) {
			rejected = append(rejected, d)
			continue
		}
		for _, e := range d.Fix.Edits {
			reserved = append(reserved, e.Range)
		}
		accepted = append(accepted, d)
	}
	return accepted, rejected
}

func conflicts(f *rules.Fix, reserved []rules.TextRange) bool {
	for _, e := range f.Edits {
		for _, r := range reserved {
			if e.Range.Overlaps(r) {
				return true
			}
		}
	}
	return false
}

// splice applies the edits of every accepted fix in one right-to-left pass,
// so offsets computed against src stay valid until they are used.
func splice(src []byte, accepted []rules.Diagnostic) []byte {
	var edits []rules.Edit
	for _, d := range accepted {
		edits = append(edits, d.Fix.Edits...)
	}
	slices.SortStableFunc(edits, func(a, b rules.Edit) int {
		return cmp.Or(cmp.Compare(b.Range.Start, a.Range.Start), cmp.Compare(b.Range.End, a.Range.End))
	})

	out := bytes.Clone(src)
	for _, e := range edits {
		out = slices.Concat(out[:e.Range.Start], []byte(e.Content), out[e.Range.End:])
	}
	return out
}
