package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/ludo-technologies/podlock/internal/config"
	"github.com/ludo-technologies/podlock/service"
	"github.com/spf13/cobra"
)

// formatFlags holds the mutually exclusive report format switches shared by
// parse and scan
type formatFlags struct {
	json bool
	yaml bool
	csv  bool
}

func (f *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.json, "json", false, "Write a JSON report")
	cmd.Flags().BoolVar(&f.yaml, "yaml", false, "Write a YAML report")
	cmd.Flags().BoolVar(&f.csv, "csv", false, "Write a CSV report (one row per pod)")
}

// resolve picks the flagged format, falling back to the configured one
func (f *formatFlags) resolve(configured string) (domain.OutputFormat, error) {
	return service.NewOutputFormatResolver().Determine(f.json, f.yaml, f.csv, configured)
}

// outputOptions decides where a report goes. An explicit --output wins;
// text goes to stdout; other formats go to a timestamped file in the report
// directory unless --stdout is given.
type outputOptions struct {
	outputFile string
	stdout     bool
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.outputFile, "output", "o", "", "Write the report to this file")
	cmd.Flags().BoolVar(&o.stdout, "stdout", false, "Write json/yaml/csv reports to stdout instead of a report file")
	cmd.MarkFlagsMutuallyExclusive("output", "stdout")
}

func (o *outputOptions) resolvePath(command string, format domain.OutputFormat, reportDir string) (string, error) {
	if o.outputFile != "" {
		return o.outputFile, nil
	}
	if o.stdout || format == domain.OutputFormatText {
		return "", nil
	}
	return generateOutputFilePath(command, service.NewOutputFormatResolver().Extension(format), reportDir)
}

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// generateOutputFilePath returns a fresh report path inside reportDir,
// creating the directory. An empty reportDir means .podlock/reports under
// the working directory.
func generateOutputFilePath(command, extension, reportDir string) (string, error) {
	if reportDir == "" {
		reportDir = config.DefaultReportDirectory
	}
	if !filepath.IsAbs(reportDir) {
		if cwd, err := os.Getwd(); err == nil {
			reportDir = filepath.Join(cwd, reportDir)
		}
	}
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", domain.NewOutputError(fmt.Sprintf("failed to create output directory %s", reportDir), err)
	}
	return filepath.Join(reportDir, generateTimestampedFileName(command, extension)), nil
}

// useColor reports whether a text report written to stdout gets ANSI color
func useColor(cmd *cobra.Command, format domain.OutputFormat, outputPath string) bool {
	if format != domain.OutputFormatText || outputPath != "" {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return service.IsTerminal(cmd.OutOrStdout())
}

// verbosef prints a diagnostic line to stderr when --verbose is set
func verbosef(cmd *cobra.Command, format string, args ...interface{}) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
	}
}
