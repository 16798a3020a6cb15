// Package linter runs the active rules over one parsed file.
//
// The engine is built once per invocation from the registry and the active
// set, then shared read-only by every file. For each file it calls the
// path, text and tree rules once, walks the tree a single time in pre-order
// dispatching node rules by kind on named nodes and token rules on leaves,
// and returns the collected diagnostics in a canonical order.
package linter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/selection"
	"github.com/wharflab/fortitude/internal/syntax"
)

// Options configures an Engine.
type Options struct {
	// Logger receives rule failures. Defaults to the standard logrus logger.
	Logger logrus.FieldLogger
}

// Report is the result of checking one version of one file.
type Report struct {
	// Diagnostics are sorted by rules.CompareDiagnostics.
	Diagnostics []rules.Diagnostic

	// Errors lists rule invocations that failed. Each one also appears in
	// Diagnostics as a rules.KindInternalError diagnostic.
	Errors []*RuleEngineError
}

// Engine dispatches active rules. It is safe for concurrent use.
type Engine struct {
	pathRules  []rules.PathRule
	textRules  []rules.TextRule
	treeRules  []rules.TreeRule
	tokenRules []rules.TokenRule
	dispatch   map[string][]rules.NodeRule

	syntaxErrors bool
	log          logrus.FieldLogger
}

// NewEngine builds the dispatch tables for the rules of reg that are in
// active. Rules outside active are never invoked.
func NewEngine(reg *rules.Registry, active selection.Set, opts Options) *Engine {
	e := &Engine{
		dispatch:     make(map[string][]rules.NodeRule),
		syntaxErrors: active.Contains(rules.SyntaxErrorCode),
		log:          opts.Logger,
	}
	if e.log == nil {
		e.log = logrus.StandardLogger()
	}

	for _, rule := range reg.All() {
		if !active.Contains(rule.Metadata().Code) {
			continue
		}
		if r, ok := rule.(rules.PathRule); ok {
			e.pathRules = append(e.pathRules, r)
		}
		if r, ok := rule.(rules.TextRule); ok {
			e.textRules = append(e.textRules, r)
		}
		if r, ok := rule.(rules.TreeRule); ok {
			e.treeRules = append(e.treeRules, r)
		}
		if r, ok := rule.(rules.TokenRule); ok {
			e.tokenRules = append(e.tokenRules, r)
		}
		if r, ok := rule.(rules.NodeRule); ok {
			for _, kind := range r.Entrypoints() {
				e.dispatch[kind] = append(e.dispatch[kind], r)
			}
		}
	}
	return e
}

// Check runs every active rule over input. It never modifies input.
func (e *Engine) Check(input rules.Input) Report {
	p := &pass{engine: e, input: input}

	for _, r := range e.pathRules {
		p.invoke(r, nil, func() []rules.Diagnostic { return r.CheckPath(input.Path) })
	}
	for _, r := range e.textRules {
		p.invoke(r, nil, func() []rules.Diagnostic { return r.CheckText(input) })
	}

	if input.Tree == nil || input.Tree.Root == nil {
		if e.syntaxErrors {
			p.diags = append(p.diags, parseFailure())
		}
		return p.report()
	}

	if e.syntaxErrors {
		for _, n := range input.Tree.Errors() {
			p.diags = append(p.diags, syntaxError(n))
		}
	}
	for _, r := range e.treeRules {
		p.invoke(r, nil, func() []rules.Diagnostic { return r.CheckTree(input) })
	}

	if len(e.dispatch) > 0 || len(e.tokenRules) > 0 {
		input.Tree.Walk(func(n *syntax.Node) bool {
			if n.Named {
				for _, r := range e.dispatch[n.Kind] {
					p.invoke(r, n, func() []rules.Diagnostic { return r.CheckNode(n, input) })
				}
			}
			if n.IsLeaf() {
				for _, r := range e.tokenRules {
					p.invoke(r, n, func() []rules.Diagnostic { return r.CheckToken(n, input) })
				}
			}
			return true
		})
	}

	return p.report()
}

// pass accumulates the output of one Check call.
type pass struct {
	engine *Engine
	input  rules.Input
	diags  []rules.Diagnostic
	errs   []*RuleEngineError
}

// invoke calls fn under recover. A panic or an invalid fix discards the
// whole output of this invocation and records an internal error instead.
func (p *pass) invoke(rule rules.Rule, node *syntax.Node, fn func() []rules.Diagnostic) {
	var (
		out      []rules.Diagnostic
		failure  error
		stack    string
		panicked = true
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				failure = panicCause(r)
				stack = stackTail()
			}
		}()
		out = fn()
		panicked = false
	}()

	if !panicked {
		failure = validateFixes(out, len(p.input.Source))
	}
	if failure == nil {
		p.diags = append(p.diags, out...)
		return
	}

	err := &RuleEngineError{
		Code:  rule.Metadata().Code,
		Path:  p.input.Path,
		Cause: failure,
		Stack: stack,
	}
	var at rules.TextRange
	if node != nil {
		err.Kind = node.Kind
		at = rules.NewRange(node.Start, node.End)
	}
	p.engine.log.WithFields(logrus.Fields{
		"rule": err.Code.String(),
		"path": err.Path,
	}).WithError(failure).Warn("rule failed")

	p.errs = append(p.errs, err)
	p.diags = append(p.diags, rules.Diagnostic{
		Code:    rules.InternalErrorCode,
		Message: fmt.Sprintf("internal error in rule %s: %v", err.Code, failure),
		Range:   at,
		Kind:    rules.KindInternalError,
	})
}

func (p *pass) report() Report {
	rules.SortDiagnostics(p.diags)
	return Report{Diagnostics: p.diags, Errors: p.errs}
}

func validateFixes(diags []rules.Diagnostic, textLen int) error {
	for _, d := range diags {
		if d.Fix == nil {
			continue
		}
		if err := d.Fix.Validate(textLen); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidFix, d.Code, err)
		}
	}
	return nil
}

func syntaxError(n *syntax.Node) rules.Diagnostic {
	msg := "Syntax error"
	if n.Missing {
		msg = fmt.Sprintf("Syntax error: expected %s", n.Kind)
	}
	return rules.Diagnostic{
		Code:    rules.SyntaxErrorCode,
		Message: msg,
		Range:   rules.NewRange(n.Start, n.End),
		Kind:    rules.KindParseError,
	}
}

func parseFailure() rules.Diagnostic {
	return rules.Diagnostic{
		Code:    rules.SyntaxErrorCode,
		Message: "Syntax error: file could not be parsed",
		Kind:    rules.KindParseError,
	}
}
