package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildPodlockBinary builds cmd/podlock into a temporary directory
func buildPodlockBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "podlock")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/podlock")

	// Build from the project root (one level up from e2e directory)
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build podlock binary: %v\n%s", err, out)
	}
	return binaryPath
}

// copyFixture copies testdata/lockfiles/<name>/Podfile.lock into dir
func copyFixture(t *testing.T, name, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "testdata", "lockfiles", name, "Podfile.lock"))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	dst := filepath.Join(dir, "Podfile.lock")
	if err := os.WriteFile(dst, data, 0644); err != nil {
		t.Fatalf("Failed to write fixture copy: %v", err)
	}
	return dst
}

// createTestConfigFile creates a .podlock.toml that directs reports to outputDir
func createTestConfigFile(t *testing.T, testDir, outputDir string) {
	t.Helper()
	configFile := filepath.Join(testDir, ".podlock.toml")
	configContent := fmt.Sprintf("[output]\ndirectory = %q\n", outputDir)
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
}

// exitCode returns the process exit status carried by err, 0 for nil
func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("Command did not run: %v", err)
	}
	return exitErr.ExitCode()
}
