package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

var (
	binaryPath  string
	coverageDir string
)

func TestMain(m *testing.M) {
	code, err := runIntegrationTestMain(m)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "integration test setup failed: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func runIntegrationTestMain(m *testing.M) (int, error) {
	// Build the binary once before running tests.
	tmpDir, err := os.MkdirTemp("", "fortitude-test")
	if err != nil {
		return 0, fmt.Errorf("create temporary directory: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()

	if err := buildIntegrationBinary(tmpDir); err != nil {
		return 0, err
	}
	return m.Run(), nil
}

func buildIntegrationBinary(tmpDir string) error {
	binaryName := "fortitude"
	if runtime.GOOS == "windows" {
		binaryName = "fortitude.exe"
	}
	binaryPath = filepath.Join(tmpDir, binaryName)

	// Collect coverage only when GOCOVERDIR is set.
	buildArgs := []string{"build"}
	coverageDir = os.Getenv("GOCOVERDIR")
	if coverageDir != "" {
		absCoverageDir, err := filepath.Abs(coverageDir)
		if err != nil {
			return fmt.Errorf("get absolute coverage directory path: %w", err)
		}
		coverageDir = absCoverageDir
		if err := os.MkdirAll(coverageDir, 0o750); err != nil {
			return fmt.Errorf("create coverage directory %q: %w", coverageDir, err)
		}
		buildArgs = append(buildArgs, "-cover")
	}
	buildArgs = append(buildArgs, "-o", binaryPath, "github.com/wharflab/fortitude/cmd/fortitude")

	out, err := exec.Command("go", buildArgs...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("build integration binary: %w (output: %s)", err, out)
	}
	return nil
}
