package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/ludo-technologies/podlock/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", "lockfiles", name, "Podfile.lock")
}

// execute runs the root command with args and captures both streams
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseCommand_Text(t *testing.T) {
	stdout, _, err := execute(t, "parse", fixture("complete"), "--show-dependencies")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Podfile.lock Report")
	assert.Contains(t, stdout, "SnapKit")
	assert.Contains(t, stdout, "    - ")
	assert.NotContains(t, stdout, "\x1b[", "no color when stdout is not a terminal")
}

func TestParseCommand_LockFlag(t *testing.T) {
	stdout, _, err := execute(t, "parse", "--lock", fixture("minimal"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Podfile.lock Report")
}

func TestParseCommand_JSONToStdout(t *testing.T) {
	stdout, _, err := execute(t, "parse", fixture("complete"), "--json", "--stdout")
	require.NoError(t, err)

	var resp struct {
		Summary domain.LockfileSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, 14, resp.Summary.Pods)
	assert.Equal(t, "1.11.2", resp.Summary.CocoaPodsVersion)
}

func TestParseCommand_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "reports", "pods.csv")

	stdout, stderr, err := execute(t, "parse", fixture("minimal"), "--csv", "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "CSV report generated")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "name,version,dependencies,checksum,source\n"))
}

func TestParseCommand_Errors(t *testing.T) {
	t.Run("broken lock file", func(t *testing.T) {
		_, _, err := execute(t, "parse", fixture("broken"))
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeParseError, domain.ErrorCode(err))
		assert.True(t, domain.HasErrorCode(err, domain.ErrCodeMissingCheckoutOption))
	})

	t.Run("missing lock file", func(t *testing.T) {
		_, _, err := execute(t, "parse", "--lock", filepath.Join(t.TempDir(), "Podfile.lock"))
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
	})

	t.Run("conflicting formats", func(t *testing.T) {
		_, _, err := execute(t, "parse", fixture("minimal"), "--json", "--yaml")
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
	})

	t.Run("invalid config", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "bad.toml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\nformat = \"html\"\n"), 0644))

		_, _, err := execute(t, "parse", fixture("minimal"), "-c", cfgPath)
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
	})
}

func TestParseCommand_ConfigFormat(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "podlock.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: yaml\n"), 0644))

	stdout, _, err := execute(t, "parse", fixture("minimal"), "-c", cfgPath, "--stdout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "lockfile:")
	assert.Contains(t, stdout, "cocoapods_version:")
}

func TestScanCommand(t *testing.T) {
	root := filepath.Join("..", "..", "testdata", "lockfiles")

	t.Run("reports failures after writing the report", func(t *testing.T) {
		stdout, _, err := execute(t, "scan", root, "--json", "--stdout")
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeParseError, domain.ErrorCode(err))
		assert.Contains(t, err.Error(), "1 of 4 lock files failed to parse")

		var resp struct {
			Summary domain.ScanSummary `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, 4, resp.Summary.FilesFound)
		assert.Equal(t, 1, resp.Summary.FilesFailed)
	})

	t.Run("exclude replaces the configured patterns", func(t *testing.T) {
		stdout, _, err := execute(t, "scan", root, "--exclude", "**/broken/**", "--exclude", "**/Pods/**", "-j", "1")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Podfile.lock Scan")
		assert.NotContains(t, stdout, "FAIL")
	})

	t.Run("verbose lists each file", func(t *testing.T) {
		_, stderr, err := execute(t, "scan", filepath.Join(root, "minimal"), "--verbose")
		require.NoError(t, err)
		assert.Contains(t, stderr, "Scanning")
		assert.Contains(t, stderr, "parsed  ")
	})

	t.Run("no lock files", func(t *testing.T) {
		_, _, err := execute(t, "scan", t.TempDir())
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
	})
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", config.ConfigFileName)

	stdout, _, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration file created")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	_, _, err = execute(t, "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)

	stdout, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "podlock dev\n"))
}

func TestPrintError(t *testing.T) {
	err := domain.NewParseError("Podfile.lock", domain.NewMalformedDocumentError(8, 3))

	var quiet bytes.Buffer
	printError(&quiet, err, false)
	assert.Contains(t, quiet.String(), "Error: Lock file could not be parsed")
	assert.Contains(t, quiet.String(), "MALFORMED_DOCUMENT")
	assert.NotContains(t, quiet.String(), "suggestions")

	var verbose bytes.Buffer
	printError(&verbose, err, true)
	assert.Contains(t, verbose.String(), "Processing Error suggestions:")
	assert.Contains(t, verbose.String(), "pod install")

	var unknown bytes.Buffer
	printError(&unknown, errors.New("something odd"), false)
	assert.Equal(t, "Error: something odd\n", unknown.String())
}
