package e2e

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func run(binary, dir string, args ...string) (string, string, error) {
	cmd := exec.Command(binary, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestParseE2EText parses a lock file and prints the text report
func TestParseE2EText(t *testing.T) {
	binaryPath := buildPodlockBinary(t)
	testDir := t.TempDir()
	copyFixture(t, "complete", testDir)

	stdout, stderr, err := run(binaryPath, testDir, "parse")
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Podfile.lock Report") {
		t.Errorf("Output should contain the report header, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "SnapKit") {
		t.Error("Output should list the SnapKit pod")
	}
}

// TestParseE2EJSONReportFile writes a JSON report into the configured directory
func TestParseE2EJSONReportFile(t *testing.T) {
	binaryPath := buildPodlockBinary(t)
	testDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "reports")
	lockPath := copyFixture(t, "complete", testDir)
	createTestConfigFile(t, testDir, outputDir)

	_, stderr, err := run(binaryPath, testDir, "parse", "--lock", lockPath, "--json")
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("Expected exit code 0, got %d\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, "JSON report generated") {
		t.Errorf("Expected status line on stderr, got: %s", stderr)
	}

	matches, err := filepath.Glob(filepath.Join(outputDir, "parse_*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("Expected one JSON report in %s, got %v (%v)", outputDir, matches, err)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}

	var report struct {
		Summary struct {
			Pods int `json:"pods"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("Report is not valid JSON: %v", err)
	}
	if report.Summary.Pods != 14 {
		t.Errorf("Expected 14 pods, got %d", report.Summary.Pods)
	}
}

// TestParseE2EBrokenExitCode checks the exit status and categorized message
func TestParseE2EBrokenExitCode(t *testing.T) {
	binaryPath := buildPodlockBinary(t)
	testDir := t.TempDir()
	copyFixture(t, "broken", testDir)

	_, stderr, err := run(binaryPath, testDir, "parse", "Podfile.lock")
	if code := exitCode(t, err); code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr, "Error: Lock file could not be parsed") {
		t.Errorf("Expected categorized error on stderr, got: %s", stderr)
	}
	if !strings.Contains(stderr, "MISSING_CHECKOUT_OPTION") {
		t.Errorf("Expected the parse error code on stderr, got: %s", stderr)
	}
}

// TestScanE2EPartialFailure scans the fixture tree, which holds one broken file
func TestScanE2EPartialFailure(t *testing.T) {
	binaryPath := buildPodlockBinary(t)
	root, err := filepath.Abs(filepath.Join("..", "testdata", "lockfiles"))
	if err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := run(binaryPath, root, "scan", ".")
	if code := exitCode(t, err); code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stdout, "FAIL") || !strings.Contains(stdout, "OK") {
		t.Errorf("Expected both OK and FAIL lines, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "1 of 4 lock files failed to parse") {
		t.Errorf("Expected failure count on stderr, got: %s", stderr)
	}
}

// TestInitE2E writes a config file and refuses to overwrite it
func TestInitE2E(t *testing.T) {
	binaryPath := buildPodlockBinary(t)
	testDir := t.TempDir()

	if _, stderr, err := run(binaryPath, testDir, "init"); exitCode(t, err) != 0 {
		t.Fatalf("init failed: %s", stderr)
	}
	if _, err := os.Stat(filepath.Join(testDir, ".podlock.toml")); err != nil {
		t.Fatalf("Expected .podlock.toml to be created: %v", err)
	}
	if _, _, err := run(binaryPath, testDir, "init"); exitCode(t, err) != 1 {
		t.Error("Expected second init without --force to fail")
	}
}
