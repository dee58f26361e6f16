package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// defaultConfigValues holds the values rendered into the default config.
// They come from DefaultConfig so the generated file never drifts from it.
type defaultConfigValues struct {
	Format           string
	Directory        string
	ShowDependencies bool
	ShowChecksums    bool
	IncludePatterns  []string
	ExcludePatterns  []string
	Recursive        bool
	MaxConcurrency   int
	TimeoutSeconds   int
}

func newDefaultConfigValues() defaultConfigValues {
	cfg := DefaultConfig()
	return defaultConfigValues{
		Format:           cfg.Output.Format,
		Directory:        cfg.Output.Directory,
		ShowDependencies: cfg.Output.ShowDependencies,
		ShowChecksums:    cfg.Output.ShowChecksums,
		IncludePatterns:  cfg.Scan.IncludePatterns,
		ExcludePatterns:  cfg.Scan.ExcludePatterns,
		Recursive:        cfg.Scan.Recursive,
		MaxConcurrency:   cfg.Scan.MaxConcurrency,
		TimeoutSeconds:   cfg.Scan.TimeoutSeconds,
	}
}

// GenerateDefaultConfigTOML renders the commented default .podlock.toml
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Funcs(template.FuncMap{
		"tomlList": tomlList,
	}).Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}
	return buf.String(), nil
}

// LoadDefaultConfigFromTOML decodes the rendered default config the same way
// a user's .podlock.toml is decoded
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}
	return NewTomlConfigLoader().decode([]byte(configTOML))
}

// tomlList renders a string slice as a TOML array of basic strings
func tomlList(items []string) string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%q", item)
	}
	buf.WriteByte(']')
	return buf.String()
}
