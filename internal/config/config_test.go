package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, DefaultReportDirectory, cfg.Output.Directory)
	assert.False(t, cfg.Output.ShowDependencies)
	assert.Equal(t, []string{"**/Podfile.lock"}, cfg.Scan.IncludePatterns)
	assert.Contains(t, cfg.Scan.ExcludePatterns, "**/Pods/**")
	assert.True(t, cfg.Scan.Recursive)
	assert.Equal(t, domain.DefaultMaxConcurrency, cfg.Scan.MaxConcurrency)
	assert.Equal(t, domain.DefaultTimeoutSeconds, cfg.Scan.TimeoutSeconds)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "empty format means text", mutate: func(c *Config) { c.Output.Format = "" }},
		{name: "csv", mutate: func(c *Config) { c.Output.Format = "csv" }},
		{name: "unknown format", mutate: func(c *Config) { c.Output.Format = "xml" }, wantErr: "output.format"},
		{name: "negative concurrency", mutate: func(c *Config) { c.Scan.MaxConcurrency = -1 }, wantErr: "scan.max_concurrency"},
		{name: "negative timeout", mutate: func(c *Config) { c.Scan.TimeoutSeconds = -5 }, wantErr: "scan.timeout_seconds"},
		{name: "blank include pattern", mutate: func(c *Config) { c.Scan.IncludePatterns = []string{" "} }, wantErr: "include_patterns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("toml", func(t *testing.T) {
		path := filepath.Join(dir, "custom.toml")
		writeFile(t, path, "[output]\nformat = \"json\"\nshow_checksums = true\n\n[scan]\nmax_concurrency = 2\n")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output.Format)
		assert.True(t, cfg.Output.ShowChecksums)
		assert.Equal(t, 2, cfg.Scan.MaxConcurrency)
		assert.Equal(t, domain.DefaultTimeoutSeconds, cfg.Scan.TimeoutSeconds, "unset keys keep defaults")
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "custom.yaml")
		writeFile(t, path, "scan:\n  recursive: false\n  exclude_patterns:\n    - \"**/vendor/**\"\n")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.False(t, cfg.Scan.Recursive)
		assert.Equal(t, []string{"**/vendor/**"}, cfg.Scan.ExcludePatterns)
		assert.Equal(t, "text", cfg.Output.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.toml"))
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		writeFile(t, path, "[output]\nformat = \"html\"\n")

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "[output]\nformat = \"json\"\n")

	t.Setenv("PODLOCK_OUTPUT_FORMAT", "yaml")
	t.Setenv("PODLOCK_SCAN_MAX_CONCURRENCY", "9")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, 9, cfg.Scan.MaxConcurrency)
}

func TestLoadConfigWithTarget(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), "[output]\nshow_dependencies = true\n")
	lockPath := filepath.Join(root, "ios", "App", "Podfile.lock")
	writeFile(t, lockPath, "")

	t.Run("discovers config from a file target", func(t *testing.T) {
		cfg, err := LoadConfigWithTarget("", lockPath)
		require.NoError(t, err)
		assert.True(t, cfg.Output.ShowDependencies)
	})

	t.Run("discovers config from a directory target", func(t *testing.T) {
		cfg, err := LoadConfigWithTarget("", filepath.Join(root, "ios"))
		require.NoError(t, err)
		assert.True(t, cfg.Output.ShowDependencies)
	})

	t.Run("explicit path wins over discovery", func(t *testing.T) {
		explicit := filepath.Join(t.TempDir(), "other.toml")
		writeFile(t, explicit, "[output]\nformat = \"csv\"\n")

		cfg, err := LoadConfigWithTarget(explicit, lockPath)
		require.NoError(t, err)
		assert.Equal(t, "csv", cfg.Output.Format)
		assert.False(t, cfg.Output.ShowDependencies)
	})

	t.Run("environment applies to discovered config", func(t *testing.T) {
		t.Setenv("PODLOCK_OUTPUT_SHOW_DEPENDENCIES", "false")

		cfg, err := LoadConfigWithTarget("", lockPath)
		require.NoError(t, err)
		assert.False(t, cfg.Output.ShowDependencies)
	})
}
