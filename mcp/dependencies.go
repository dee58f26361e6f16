package mcp

import (
	"github.com/ludo-technologies/podlock/domain"
	"github.com/ludo-technologies/podlock/internal/config"
	"github.com/ludo-technologies/podlock/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set. A nil cfg means each call
// resolves configuration from configPath, or by discovery from the tool's
// target path when configPath is empty.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// WithFileReader replaces the file reader
func (d *Dependencies) WithFileReader(fr domain.FileReader) *Dependencies {
	d.fileReader = fr
	return d
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// ConfigFor returns the configuration that applies to target
func (d *Dependencies) ConfigFor(target string) (*config.Config, error) {
	if d.config != nil {
		return d.config, nil
	}
	return config.LoadConfigWithTarget(d.configPath, target)
}

// LockfileService builds a lock file service over the shared file reader
func (d *Dependencies) LockfileService() domain.LockfileService {
	return service.NewLockfileService().WithFileReader(d.fileReader)
}
