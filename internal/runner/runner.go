// Package runner checks and fixes many files in parallel.
//
// Each file is an independent task: one file failing never cancels the
// others. Results come back in the order the files were given, whatever the
// order they finished in.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wharflab/fortitude/internal/config"
	"github.com/wharflab/fortitude/internal/fileval"
	"github.com/wharflab/fortitude/internal/fix"
	"github.com/wharflab/fortitude/internal/linter"
	"github.com/wharflab/fortitude/internal/parser"
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/selection"
)

// Options configures Run.
type Options struct {
	Registry *rules.Registry
	Active   selection.Set
	Settings *config.Settings

	// Parser defaults to the tree-sitter Fortran parser.
	Parser parser.Parser

	// Jobs caps the number of files processed at once. Zero means
	// runtime.GOMAXPROCS(0).
	Jobs int

	// MaxFileSize defaults to fileval.DefaultMaxFileSize. Negative disables
	// the check.
	MaxFileSize int64

	// MaxIterations bounds the fix passes per file. Zero means
	// fix.DefaultMaxIterations.
	MaxIterations int

	// Logger defaults to the standard logrus logger.
	Logger logrus.FieldLogger

	// OnFileDone, when set, is called from the worker goroutine after each
	// file. It must be safe for concurrent use.
	OnFileDone func(FileResult)
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path string

	// Result is nil when the file could not be read or validated.
	Result *fix.Result

	// Written is set when fixed text was written back to Path.
	Written bool

	// Err is a *FileError for I/O, validation and parse failures.
	Err error
}

// Failed reports whether the file hit an error.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Run checks files in parallel and returns one FileResult per file, in
// input order. Cancelling ctx stops dispatch of new files; files already
// dispatched complete and the rest are reported with the context error.
func Run(ctx context.Context, files []string, opts Options) []FileResult {
	if opts.Parser == nil {
		opts.Parser = parser.New()
	}
	if opts.Settings == nil {
		opts.Settings = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	switch {
	case opts.MaxFileSize == 0:
		opts.MaxFileSize = fileval.DefaultMaxFileSize
	case opts.MaxFileSize < 0:
		opts.MaxFileSize = 0
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	w := &worker{
		opts: opts,
		lint: linter.NewEngine(opts.Registry, opts.Active, linter.Options{Logger: opts.Logger}),
	}

	results := make([]FileResult, len(files))
	g := new(errgroup.Group)
	g.SetLimit(max(1, min(jobs, len(files))))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			results[i] = FileResult{Path: path, Err: &FileError{Path: path, Op: "dispatch", Err: err}}
			continue
		}
		g.Go(func() error {
			results[i] = w.process(ctx, path)
			if opts.OnFileDone != nil {
				opts.OnFileDone(results[i])
			}
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors

	return results
}

type worker struct {
	opts Options
	lint *linter.Engine
}

func (w *worker) process(ctx context.Context, path string) FileResult {
	res := FileResult{Path: path}
	fail := func(op string, err error) FileResult {
		fe := &FileError{Path: path, Op: op, Err: err}
		w.opts.Logger.WithFields(logrus.Fields{"path": path, "op": op}).WithError(err).Warn("file failed")
		res.Err = fe
		return res
	}

	info, err := fileval.ValidateFile(path, w.opts.MaxFileSize)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return fail("read", err)
		}
		return fail("validate", err)
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return fail("read", err)
	}

	mode := w.opts.Settings.FixMode()
	engine := fix.NewEngine(w.lint, w.opts.Parser, fix.Options{
		Mode:          mode,
		MaxIterations: w.opts.MaxIterations,
		Settings: rules.Settings{
			LineLength: w.opts.Settings.LineLength,
			Indent:     indentFor(path),
		},
		Logger: w.opts.Logger,
	})

	result, err := engine.Run(ctx, path, source)
	res.Result = result
	if err != nil {
		return fail("parse", err)
	}

	if mode != config.FixModeOff && result.Changed() {
		if err := writeFile(ctx, path, result.Source, info.Mode().Perm()); err != nil {
			return fail("write", err)
		}
		res.Written = true
	}
	return res
}

// FileError is a per-file failure. It never aborts the run.
type FileError struct {
	Path string
	// Op is one of dispatch, read, validate, parse or write.
	Op  string
	Err error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
