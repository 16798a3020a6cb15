package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wharflab/fortitude/internal/config"
	"github.com/wharflab/fortitude/internal/discovery"
	"github.com/wharflab/fortitude/internal/parser"
	"github.com/wharflab/fortitude/internal/reporter"
	"github.com/wharflab/fortitude/internal/rules"
	"github.com/wharflab/fortitude/internal/rules/all"
	"github.com/wharflab/fortitude/internal/runner"
	"github.com/wharflab/fortitude/internal/selection"
	"github.com/wharflab/fortitude/internal/version"
)

// Exit codes
const (
	ExitSuccess    = 0 // No unresolved violations, or --fix-only
	ExitViolations = 1 // Violations remain
	ExitError      = 2 // Config error, internal error, or a file could not be checked
	ExitNoFiles    = 3 // No Fortran files found
)

// pairedFlags are the settings with a --name / --no-name flag pair.
var pairedFlags = []string{"fix", "unsafe-fixes", "show-fixes", "fix-only", "preview"}

var listFlags = []string{"file-extensions", "exclude", "extend-exclude", "select", "ignore", "extend-select"}

func checkCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  "line-length",
			Usage: "Maximum allowed line length",
		},
		&cli.StringSliceFlag{
			Name:  "file-extensions",
			Usage: "File extensions to check, without the dot",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of paths to skip, replacing the defaults",
		},
		&cli.StringSliceFlag{
			Name:  "extend-exclude",
			Usage: "Glob patterns of paths to skip, in addition to exclude",
		},
		&cli.StringSliceFlag{
			Name:  "select",
			Usage: "Rule codes, prefixes or ALL to enable",
		},
		&cli.StringSliceFlag{
			Name:  "ignore",
			Usage: "Rule codes or prefixes to disable",
		},
		&cli.StringSliceFlag{
			Name:  "extend-select",
			Usage: "Rule codes or prefixes to enable on top of select",
		},
		&cli.StringFlag{
			Name:  "output-format",
			Usage: "Output format: concise, full, json, json-lines, junit, grouped, github, gitlab, pylint, rdjson, azure, sarif",
		},
		&cli.StringFlag{
			Name:  "output-file",
			Usage: "Write the report to a file instead of stdout",
		},
		&cli.StringFlag{
			Name:  "progress-bar",
			Usage: "Progress display: off, fancy, ascii",
		},
		&cli.BoolFlag{
			Name:  "show-settings",
			Usage: "Print the effective settings and exit",
		},
	}
	usages := map[string]string{
		"fix":          "Apply safe fixes",
		"unsafe-fixes": "Also apply unsafe fixes, and report them as fixable",
		"show-fixes":   "Show the fixes applied, or the fix previews when not fixing",
		"fix-only":     "Apply fixes without reporting remaining violations",
		"preview":      "Enable preview rules",
	}
	for _, name := range pairedFlags {
		flags = append(flags,
			&cli.BoolFlag{Name: name, Usage: usages[name]},
			&cli.BoolFlag{Name: "no-" + name, Usage: "Disable --" + name},
		)
	}

	return &cli.Command{
		Name:      "check",
		Usage:     "Check Fortran files for issues",
		ArgsUsage: "[PATH...]",
		Flags:     flags,
		Action:    runCheck,
	}
}

// runCheck is the action handler for the check command.
func runCheck(ctx context.Context, cmd *cli.Command) error {
	stdout, stderr := outputs(cmd)
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	settings, err := loadSettings(cmd.String("config-file"), inputs[0], checkOverrides(cmd))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.Exit("", ExitError)
	}
	if settings.ConfigFile != "" {
		logrus.WithField("path", settings.ConfigFile).Debug("using config file")
	}

	if cmd.Bool("show-settings") {
		if err := settings.Dump(stdout); err != nil {
			fmt.Fprintf(stderr, "Error: failed to write settings: %v\n", err)
			return cli.Exit("", ExitError)
		}
		return nil
	}

	reg := all.Registry()
	selected, err := selection.Resolve(reg, selection.FromSettings(settings))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.Exit("", ExitError)
	}
	for _, w := range selected.Warnings {
		logrus.WithField("selector", w.Selector).Warn(w.Message)
	}
	logrus.WithField("rules", selected.Active.Len()).Debug("resolved rule selection")

	format, err := reporter.ParseFormat(settings.OutputFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.Exit("", ExitError)
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{
		Extensions:      settings.FileExtensions,
		ExcludePatterns: settings.ExcludePatterns(),
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitError)
	}
	if len(discovered) == 0 {
		reportNoFilesFound(stderr, inputs)
		return cli.Exit("", ExitNoFiles)
	}

	paths := make([]string, len(discovered))
	for i, f := range discovered {
		paths[i] = f.Path
	}

	bar := startProgress(settings.ProgressBar, len(paths))
	results := runner.Run(ctx, paths, runner.Options{
		Registry: reg,
		Active:   selected.Active,
		Settings: settings,
		Parser:   parser.New(),
		OnFileDone: func(runner.FileResult) {
			bar.Advance()
		},
	})
	bar.Stop()

	out, closeOut, err := reporter.GetWriter(cmd.String("output-file"), stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.Exit("", ExitError)
	}
	err = writeReport(out, format, reg, settings, results, selected.Active.Len())
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to write output: %v\n", err)
		return cli.Exit("", ExitError)
	}

	if code := exitCode(results, settings.FixOnly); code != ExitSuccess {
		return cli.Exit("", code)
	}
	return nil
}

// loadSettings locates and reads the config file, then layers the overrides
// on top. An explicit configPath skips discovery.
func loadSettings(configPath, firstInput string, overrides map[string]any) (*config.Settings, error) {
	if configPath == "" {
		configPath = config.Discover(firstInput)
	}
	var file *config.FileSettings
	if configPath != "" {
		var err error
		if file, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	return config.Resolve(file, overrides)
}

// checkOverrides collects the flags the user actually set, keyed like the
// [check] table. A --no-name flag wins over --name.
func checkOverrides(cmd *cli.Command) map[string]any {
	overrides := make(map[string]any)
	for _, name := range pairedFlags {
		if cmd.IsSet(name) {
			overrides[name] = cmd.Bool(name)
		}
		if cmd.IsSet("no-"+name) && cmd.Bool("no-"+name) {
			overrides[name] = false
		}
	}
	if cmd.IsSet("line-length") {
		overrides["line-length"] = cmd.Int("line-length")
	}
	for _, name := range listFlags {
		if cmd.IsSet(name) {
			overrides[name] = cmd.StringSlice(name)
		}
	}
	for _, name := range []string{"output-format", "progress-bar"} {
		if cmd.IsSet(name) {
			overrides[name] = cmd.String(name)
		}
	}
	return overrides
}

func writeReport(
	w io.Writer, format reporter.Format, reg *rules.Registry,
	settings *config.Settings, results []runner.FileResult, rulesEnabled int,
) error {
	rep, err := reporter.New(reporter.Options{
		Format:      format,
		Writer:      w,
		Registry:    reg,
		ToolName:    "fortitude",
		ToolVersion: version.RawVersion(),
		ToolURI:     "https://github.com/wharflab/fortitude",
	})
	if err != nil {
		return err
	}
	return rep.Report(results, reporter.Metadata{
		FilesChecked: len(results),
		RulesEnabled: rulesEnabled,
		FixMode:      settings.FixMode(),
		UnsafeFixes:  settings.UnsafeFixes,
		ShowFixes:    settings.ShowFixes,
		FixOnly:      settings.FixOnly,
	})
}

// exitCode maps the run results to the process exit code. Errors take
// precedence over remaining violations.
func exitCode(results []runner.FileResult, fixOnly bool) int {
	remaining := 0
	for _, r := range results {
		if r.Failed() {
			return ExitError
		}
		if r.Result == nil {
			continue
		}
		if len(r.Result.Errors) > 0 {
			return ExitError
		}
		for _, o := range r.Result.Remaining() {
			if o.Diagnostic.Kind == rules.KindInternalError {
				return ExitError
			}
			remaining++
		}
	}
	if fixOnly || remaining == 0 {
		return ExitSuccess
	}
	return ExitViolations
}

// reportNoFilesFound prints a context-aware message when no Fortran files
// are found.
func reportNoFilesFound(w io.Writer, inputs []string) {
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			fmt.Fprintf(w, "Error: no Fortran files found in %s\n", abs)
			return
		case errors.Is(err, os.ErrNotExist):
			fmt.Fprintf(w, "Error: no Fortran files matched %s\n", input)
			return
		}
	}
	fmt.Fprintf(w, "Error: no Fortran files found\n")
}

// outputs returns the root command's writers, falling back to the process
// streams.
func outputs(cmd *cli.Command) (stdout, stderr io.Writer) {
	root := cmd.Root()
	stdout, stderr = root.Writer, root.ErrWriter
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return stdout, stderr
}
