package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the project configuration file searched for by discovery
	ConfigFileName = ".podlock.toml"

	// EnvPrefix prefixes environment overrides, e.g. PODLOCK_OUTPUT_FORMAT
	EnvPrefix = "PODLOCK"

	// DefaultReportDirectory is where reports go when no output file is named
	DefaultReportDirectory = ".podlock/reports"
)

// Config represents the main configuration structure
type Config struct {
	// Output holds report formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output" yaml:"output"`

	// Scan holds lock file discovery and execution configuration
	Scan ScanConfig `mapstructure:"scan" toml:"scan" yaml:"scan"`
}

// OutputConfig holds configuration for report output
type OutputConfig struct {
	// Format is one of text, json, yaml, csv
	Format string `mapstructure:"format" toml:"format" yaml:"format"`

	// Directory receives generated report files
	Directory string `mapstructure:"directory" toml:"directory" yaml:"directory"`

	// ShowDependencies lists each pod's dependencies in text reports
	ShowDependencies bool `mapstructure:"show_dependencies" toml:"show_dependencies" yaml:"show_dependencies"`

	// ShowChecksums lists podspec checksums in text reports
	ShowChecksums bool `mapstructure:"show_checksums" toml:"show_checksums" yaml:"show_checksums"`
}

// ScanConfig holds configuration for multi-file scans
type ScanConfig struct {
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns" yaml:"exclude_patterns"`
	Recursive       bool     `mapstructure:"recursive" toml:"recursive" yaml:"recursive"`

	// MaxConcurrency bounds the number of files parsed at once; 0 means no limit
	MaxConcurrency int `mapstructure:"max_concurrency" toml:"max_concurrency" yaml:"max_concurrency"`

	// TimeoutSeconds bounds a whole scan; 0 disables the timeout
	TimeoutSeconds int `mapstructure:"timeout_seconds" toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:           string(domain.OutputFormatText),
			Directory:        DefaultReportDirectory,
			ShowDependencies: false,
			ShowChecksums:    false,
		},
		Scan: ScanConfig{
			IncludePatterns: domain.DefaultIncludePatterns(),
			ExcludePatterns: domain.DefaultExcludePatterns(),
			Recursive:       true,
			MaxConcurrency:  domain.DefaultMaxConcurrency,
			TimeoutSeconds:  domain.DefaultTimeoutSeconds,
		},
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Scan.MaxConcurrency < 0 {
		return fmt.Errorf("scan.max_concurrency must be >= 0, got %d", c.Scan.MaxConcurrency)
	}
	if c.Scan.TimeoutSeconds < 0 {
		return fmt.Errorf("scan.timeout_seconds must be >= 0, got %d", c.Scan.TimeoutSeconds)
	}
	for _, p := range c.Scan.IncludePatterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("scan.include_patterns must not contain empty patterns")
		}
	}
	return nil
}

// LoadConfig loads an explicit configuration file of any format viper
// understands (toml, yaml, json), then applies environment overrides
func LoadConfig(configPath string) (*Config, error) {
	v := newViper(DefaultConfig())
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
	}
	return unmarshalAndValidate(v)
}

// LoadConfigWithTarget resolves configuration for a command operating on
// targetPath. An explicit configPath wins; otherwise .podlock.toml is
// searched from the target's directory upwards. Environment overrides apply
// in both cases.
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	if configPath != "" {
		return LoadConfig(configPath)
	}

	cfg, _, err := NewTomlConfigLoader().LoadConfig(startDirFor(targetPath))
	if err != nil {
		return nil, err
	}
	return unmarshalAndValidate(newViper(cfg))
}

// startDirFor returns the directory discovery starts from
func startDirFor(targetPath string) string {
	if targetPath == "" {
		targetPath = "."
	}
	abs, err := filepath.Abs(targetPath)
	if err != nil {
		return targetPath
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return abs
	}
	return filepath.Dir(abs)
}

// newViper creates an isolated viper instance seeded with base. Every key
// gets a default so AutomaticEnv can see it during Unmarshal.
func newViper(base *Config) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output.format", base.Output.Format)
	v.SetDefault("output.directory", base.Output.Directory)
	v.SetDefault("output.show_dependencies", base.Output.ShowDependencies)
	v.SetDefault("output.show_checksums", base.Output.ShowChecksums)
	v.SetDefault("scan.include_patterns", base.Scan.IncludePatterns)
	v.SetDefault("scan.exclude_patterns", base.Scan.ExcludePatterns)
	v.SetDefault("scan.recursive", base.Scan.Recursive)
	v.SetDefault("scan.max_concurrency", base.Scan.MaxConcurrency)
	v.SetDefault("scan.timeout_seconds", base.Scan.TimeoutSeconds)
	return v
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}
