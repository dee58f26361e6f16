package service

import (
	"fmt"

	"github.com/ludo-technologies/podlock/domain"
)

// OutputFormatResolver resolves the report format from command-line switches
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine evaluates the format switches. At most one of json/yaml/csv may
// be true; with none set the configured format applies ("" means text).
func (r *OutputFormatResolver) Determine(json, yaml, csv bool, configured string) (domain.OutputFormat, error) {
	formatCount := 0
	var format domain.OutputFormat

	if json {
		formatCount++
		format = domain.OutputFormatJSON
	}
	if yaml {
		formatCount++
		format = domain.OutputFormatYAML
	}
	if csv {
		formatCount++
		format = domain.OutputFormatCSV
	}

	if formatCount > 1 {
		return "", domain.NewInvalidInputError("invalid output format", fmt.Errorf("only one of --json, --yaml, --csv can be specified"))
	}
	if formatCount == 0 {
		return domain.ParseOutputFormat(configured)
	}
	return format, nil
}

// Extension returns the report file extension for format
func (r *OutputFormatResolver) Extension(format domain.OutputFormat) string {
	if format == domain.OutputFormatText {
		return "txt"
	}
	return string(format)
}
