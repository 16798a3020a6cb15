package fix

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wharflab/fortitude/internal/linter"
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/syntax"
)

// DefaultMaxIterations bounds the number of rewriting passes per file.
const DefaultMaxIterations = 100

// Linter checks one version of one file.
type Linter interface {
	Check(input rules.Input) linter.Report
}

// Parser turns text into a syntax tree.
type Parser interface {
	Parse(ctx context.Context, source []byte) (*syntax.Tree, error)
}

// Options configures an Engine.
type Options struct {
	Mode Mode

	// MaxIterations caps the number of rewriting passes. Zero means
	// DefaultMaxIterations.
	MaxIterations int

	// Settings are passed to every rule.
	Settings rules.Settings

	// Logger receives one debug entry per pass. Defaults to the standard
	// logrus logger.
	Logger logrus.FieldLogger
}

// Engine drives lint, fix and reparse passes for one file at a time. It
// holds no per-file state and is safe for concurrent use.
type Engine struct {
	lint  Linter
	parse Parser
	opts  Options
	log   logrus.FieldLogger
}

// NewEngine creates an Engine.
func NewEngine(lint Linter, parse Parser, opts Options) *Engine {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{lint: lint, parse: parse, opts: opts, log: log}
}

type state int

const (
	stateLinting state = iota
	stateFiltering
	stateRewriting
	stateReparsing
	stateDone
)

// run is the mutable state of one Run call.
type run struct {
	path     string
	source   []byte
	tree     *syntax.Tree
	report   linter.Report
	accepted []rules.Diagnostic
	result   *Result
}

// Run lints source and, unless the mode is ModeOff, applies fixes until a
// pass accepts none or the pass limit is reached. Ranges are never patched:
// every rewrite is reparsed and re-linted from scratch.
//
// When the initial parse fails the returned Result still holds the
// diagnostics of a tree-less lint, alongside the parse error. Context
// cancellation returns a nil Result.
func (e *Engine) Run(ctx context.Context, path string, source []byte) (*Result, error) {
	r := &run{
		path:   path,
		source: source,
		result: &Result{Path: path, Original: source},
	}

	tree, err := e.parse.Parse(ctx, source)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		r.report = e.lint.Check(e.input(r))
		e.finish(r)
		return r.result, fmt.Errorf("parse: %w", err)
	}
	r.tree = tree

	for st := stateLinting; st != stateDone; {
		switch st {
		case stateLinting:
			r.report = e.lint.Check(e.input(r))
			st = stateFiltering

		case stateFiltering:
			st = e.filter(r)

		case stateRewriting:
			e.rewrite(r)
			st = stateReparsing

		case stateReparsing:
			r.tree = nil
			tree, err := e.parse.Parse(ctx, r.source)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				return nil, fmt.Errorf("reparse after pass %d: %w", r.result.Iterations, err)
			}
			r.tree = tree
			st = stateLinting
		}
	}

	e.finish(r)
	return r.result, nil
}

func (e *Engine) input(r *run) rules.Input {
	return rules.Input{
		Path:     r.path,
		Source:   r.source,
		Tree:     r.tree,
		Settings: e.opts.Settings,
	}
}

// filter decides whether another pass is needed and which fixes it applies.
func (e *Engine) filter(r *run) state {
	if e.opts.Mode == ModeOff {
		return stateDone
	}
	pending := candidates(r.report.Diagnostics, e.opts.Mode)
	if len(pending) == 0 {
		return stateDone
	}
	if r.result.Iterations >= e.opts.MaxIterations {
		r.result.Exhausted = true
		return stateDone
	}
	r.accepted, _ = resolveConflicts(pending)
	return stateRewriting
}

func (e *Engine) rewrite(r *run) {
	r.result.Iterations++
	pass := r.result.Iterations

	e.log.WithFields(logrus.Fields{
		"path":     r.path,
		"pass":     pass,
		"accepted": len(r.accepted),
	}).Debug("applying fixes")

	r.source = splice(r.source, r.accepted)
	for _, d := range r.accepted {
		r.result.Applied = append(r.result.Applied, AppliedFix{
			Code:        d.Code,
			Description: d.Fix.Description,
			Safety:      d.Fix.Safety,
			Pass:        pass,
			Diagnostic:  d,
		})
	}
	r.accepted = nil
}

// finish builds the outcome list from the applied fixes and the last report.
func (e *Engine) finish(r *run) {
	res := r.result
	res.Source = r.source
	res.Errors = r.report.Errors

	res.Outcomes = make([]Outcome, 0, len(res.Applied)+len(r.report.Diagnostics))
	for _, a := range res.Applied {
		status := Fixed
		if a.Safety == rules.Unsafe {
			status = FixedUnsafe
		}
		res.Outcomes = append(res.Outcomes, Outcome{Diagnostic: a.Diagnostic, Status: status, Pass: a.Pass})
	}
	for _, d := range r.report.Diagnostics {
		status := Reported
		if res.Exhausted && applicable(d, e.opts.Mode) {
			status = Unresolved
		}
		res.Outcomes = append(res.Outcomes, Outcome{Diagnostic: d, Status: status})
	}
}
