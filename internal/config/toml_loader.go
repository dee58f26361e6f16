package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/pelletier/go-toml/v2"
)

// podlockTomlConfig mirrors .podlock.toml. Pointer fields detect keys the
// file leaves unset so defaults survive the merge.
type podlockTomlConfig struct {
	Output tomlOutputConfig `toml:"output"`
	Scan   tomlScanConfig   `toml:"scan"`
}

type tomlOutputConfig struct {
	Format           *string `toml:"format"`
	Directory        *string `toml:"directory"`
	ShowDependencies *bool   `toml:"show_dependencies"`
	ShowChecksums    *bool   `toml:"show_checksums"`
}

type tomlScanConfig struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	Recursive       *bool    `toml:"recursive"`
	MaxConcurrency  *int     `toml:"max_concurrency"`
	TimeoutSeconds  *int     `toml:"timeout_seconds"`
}

// TomlConfigLoader handles .podlock.toml discovery and decoding
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig finds .podlock.toml from startDir upwards and merges it onto
// the defaults. The returned path is empty when no file was found.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, string, error) {
	path, err := l.FindConfigFile(startDir)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), "", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := l.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// LoadFile decodes a single TOML file. Unknown keys are rejected.
func (l *TomlConfigLoader) LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}
	cfg, err := l.decode(data)
	if err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}
	return cfg, nil
}

func (l *TomlConfigLoader) decode(data []byte) (*Config, error) {
	var file podlockTomlConfig
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, errors.New(strict.String())
		}
		return nil, err
	}

	cfg := DefaultConfig()
	l.merge(cfg, &file)
	return cfg, nil
}

// FindConfigFile walks up the directory tree to find .podlock.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// merge copies every key the file sets onto defaults
func (l *TomlConfigLoader) merge(defaults *Config, file *podlockTomlConfig) {
	if file.Output.Format != nil {
		defaults.Output.Format = *file.Output.Format
	}
	if file.Output.Directory != nil {
		defaults.Output.Directory = *file.Output.Directory
	}
	if file.Output.ShowDependencies != nil {
		defaults.Output.ShowDependencies = *file.Output.ShowDependencies
	}
	if file.Output.ShowChecksums != nil {
		defaults.Output.ShowChecksums = *file.Output.ShowChecksums
	}

	// An explicitly empty list is honored; an absent key keeps the default
	if file.Scan.IncludePatterns != nil {
		defaults.Scan.IncludePatterns = file.Scan.IncludePatterns
	}
	if file.Scan.ExcludePatterns != nil {
		defaults.Scan.ExcludePatterns = file.Scan.ExcludePatterns
	}
	if file.Scan.Recursive != nil {
		defaults.Scan.Recursive = *file.Scan.Recursive
	}
	if file.Scan.MaxConcurrency != nil {
		defaults.Scan.MaxConcurrency = *file.Scan.MaxConcurrency
	}
	if file.Scan.TimeoutSeconds != nil {
		defaults.Scan.TimeoutSeconds = *file.Scan.TimeoutSeconds
	}
}
