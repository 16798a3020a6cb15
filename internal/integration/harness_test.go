package integration

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

type checkCase struct {
	name     string
	files    map[string]string // project files, relative to the project root
	config   string            // fortitude.toml content
	args     []string
	env      []string
	target   string // path passed to check, relative to the project root; "" checks the root
	wantExit int
	contains []string // substrings expected on stdout
	excludes []string // substrings that must not appear on stdout
	stderr   []string // substrings expected on stderr
	snapExt  string   // snapshot extension for raw snapshots, or an override for JSON ones
	snapJSON bool     // snapshot as normalized JSON instead of raw text
}

type fixCase struct {
	name        string
	input       string // prog.f90 content
	args        []string
	want        string // prog.f90 after the run
	wantApplied int    // fixes reported in the summary
}

var fixedSummaryRE = regexp.MustCompile(`(?m)^Found \d+ errors? \((\d+) fixed, \d+ remaining\)\.$`)

// setupProject writes files and a fortitude.toml, so discovery never climbs
// into the repository. Projects carrying their own fpm.toml get no
// fortitude.toml, which would shadow it.
func setupProject(t *testing.T, files map[string]string, config string) string {
	t.Helper()
	root := t.TempDir()
	all := map[string]string{}
	if _, ok := files["fpm.toml"]; !ok {
		all["fortitude.toml"] = config
	}
	for name, content := range files {
		all[name] = content
	}
	for name, content := range all {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

// runFortitude runs the binary in dir and returns stdout, stderr and the
// exit code.
func runFortitude(t *testing.T, dir string, env []string, args ...string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GOCOVERDIR="+coverageDir,
		"NO_COLOR=1",
	)
	// Add test-specific environment variables
	cmd.Env = append(cmd.Env, env...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("command failed to start: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	// Normalize line endings (Windows CRLF -> LF) for consistent snapshots
	stdout := strings.ReplaceAll(stdoutBuf.String(), "\r\n", "\n")
	return stdout, stderrBuf.String(), exitCode
}

func runCheckCase(t *testing.T, tc checkCase) {
	t.Helper()

	root := setupProject(t, tc.files, tc.config)
	target := tc.target
	if target == "" {
		target = "."
	}
	args := slices.Concat([]string{"check"}, tc.args, []string{target})
	stdout, stderr, exitCode := runFortitude(t, root, tc.env, args...)

	if exitCode != tc.wantExit {
		t.Errorf("expected exit code %d, got %d\nstdout: %s\nstderr: %s", tc.wantExit, exitCode, stdout, stderr)
	}
	for _, want := range tc.contains {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected stdout to contain %q\nstdout: %s", want, stdout)
		}
	}
	for _, unwanted := range tc.excludes {
		if strings.Contains(stdout, unwanted) {
			t.Errorf("expected stdout not to contain %q\nstdout: %s", unwanted, stdout)
		}
	}
	for _, want := range tc.stderr {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected stderr to contain %q\nstderr: %s", want, stderr)
		}
	}

	if tc.snapJSON {
		// MatchStandaloneJSON validates JSON and defaults to .snap.json;
		// Ext overrides for variants like .sarif.
		opts := []func(*snaps.Config){
			snaps.JSON(snaps.JSONConfig{SortKeys: true, Indent: "  "}),
		}
		if tc.snapExt != "" {
			opts = append(opts, snaps.Ext(tc.snapExt))
		}
		snaps.WithConfig(opts...).MatchStandaloneJSON(t, stdout)
	} else if tc.snapExt != "" {
		snaps.WithConfig(snaps.Ext(tc.snapExt)).MatchStandaloneSnapshot(t, stdout)
	}
}

func runFixCase(t *testing.T, tc fixCase) {
	t.Helper()

	root := setupProject(t, map[string]string{"prog.f90": tc.input}, "")
	args := slices.Concat([]string{"check", "--fix", "--output-format", "concise"}, tc.args, []string{"prog.f90"})
	stdout, stderr, exitCode := runFortitude(t, root, nil, args...)
	if exitCode == 2 {
		t.Fatalf("check --fix failed\nstdout:\n%s\nstderr:\n%s", stdout, stderr)
	}

	fixed, err := os.ReadFile(filepath.Join(root, "prog.f90"))
	if err != nil {
		t.Fatalf("failed to read fixed file: %v", err)
	}
	if string(fixed) != tc.want {
		t.Errorf("fixed source mismatch\ngot:\n%s\nwant:\n%s", fixed, tc.want)
	}

	gotApplied, ok, err := parseFixedCount(stdout)
	if err != nil {
		t.Fatalf("failed to parse fixed summary: %v\noutput:\n%s", err, stdout)
	}
	if tc.wantApplied > 0 && !ok {
		t.Fatalf("expected fixed summary in output, got:\n%s", stdout)
	}
	if gotApplied != tc.wantApplied {
		t.Errorf("expected %d fixes applied, got %d\noutput:\n%s", tc.wantApplied, gotApplied, stdout)
	}
}

func parseFixedCount(output string) (int, bool, error) {
	match := fixedSummaryRE.FindStringSubmatch(output)
	if len(match) == 0 {
		return 0, false, nil
	}
	count, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false, err
	}
	return count, true, nil
}
