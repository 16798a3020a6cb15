package linter

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/armon/circbuf"

	"github.com/wharflab/fortitude/internal/rules"
)

// stackTailSize bounds the part of a panic stack kept on a RuleEngineError.
const stackTailSize = 4096

// ErrInvalidFix is wrapped by RuleEngineError causes for rules that returned
// a fix whose edits are out of bounds or overlap.
var ErrInvalidFix = errors.New("rule returned an invalid fix")

// RuleEngineError records one failed rule invocation on one file.
type RuleEngineError struct {
	// Code is the failing rule.
	Code rules.Code

	// Path is the file being checked.
	Path string

	// Kind is the node kind being visited, empty for file-level rules.
	Kind string

	Cause error

	// Stack is the tail of the goroutine stack at the time of a panic.
	Stack string
}

func (e *RuleEngineError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("rule %s failed on %s (at %s): %v", e.Code, e.Path, e.Kind, e.Cause)
	}
	return fmt.Sprintf("rule %s failed on %s: %v", e.Code, e.Path, e.Cause)
}

func (e *RuleEngineError) Unwrap() error {
	return e.Cause
}

func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}

// stackTail returns the last stackTailSize bytes of the current stack.
func stackTail() string {
	buf, err := circbuf.NewBuffer(stackTailSize)
	if err != nil {
		return ""
	}
	_, _ = buf.Write(debug.Stack())
	return buf.String()
}
