package main

import (
	"context"
	"time"

	"github.com/ludo-technologies/podlock/app"
	"github.com/ludo-technologies/podlock/domain"
	"github.com/ludo-technologies/podlock/internal/config"
	"github.com/ludo-technologies/podlock/service"
	"github.com/spf13/cobra"
)

// ScanCommand represents the scan command
type ScanCommand struct {
	configFile      string
	includePatterns []string
	excludePatterns []string
	jobs            int
	timeoutSeconds  int
	noRecursive     bool
	format          formatFlags
	output          outputOptions
}

// NewScanCommand creates a new scan command
func NewScanCommand() *ScanCommand {
	return &ScanCommand{}
}

// CreateCobraCommand creates the cobra command for multi-file scans
func (c *ScanCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Parse every lock file under the given paths",
		Long: `Find CocoaPods lock files under one or more files or directories and parse
them concurrently. A file that fails to parse is reported and does not stop
the others; the command exits with status 1 if any file failed.

Directories are walked recursively by default. Files are matched with
doublestar globs against their path relative to the scanned directory.

Examples:
  # Scan the current directory
  podlock scan

  # Scan two apps, four files at a time
  podlock scan apps/ios apps/macos --jobs 4

  # Include CocoaPods' Manifest.lock copies
  podlock scan . --include '**/Podfile.lock' --include '**/Manifest.lock' --exclude ''`,
		RunE: c.runScan,
	}

	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().StringSliceVar(&c.includePatterns, "include", nil, "Glob patterns of files to include")
	cmd.Flags().StringSliceVar(&c.excludePatterns, "exclude", nil, "Glob patterns of files to exclude")
	cmd.Flags().IntVarP(&c.jobs, "jobs", "j", 0, "Lock files parsed at once (0 means no limit)")
	cmd.Flags().IntVar(&c.timeoutSeconds, "timeout", 0, "Abort the scan after this many seconds (0 disables)")
	cmd.Flags().BoolVar(&c.noRecursive, "no-recursive", false, "Do not descend into subdirectories")
	c.format.register(cmd)
	c.output.register(cmd)

	return cmd
}

// runScan executes the scan command
func (c *ScanCommand) runScan(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg, err := config.LoadConfigWithTarget(c.configFile, paths[0])
	if err != nil {
		return err
	}
	flags := config.NewFlagTrackerFromFlagSet(cmd.Flags())

	format, err := c.format.resolve(cfg.Output.Format)
	if err != nil {
		return err
	}
	outputPath, err := c.output.resolvePath("scan", format, cfg.Output.Directory)
	if err != nil {
		return err
	}

	timeout := flags.MergeInt(cfg.Scan.TimeoutSeconds, c.timeoutSeconds, "timeout")
	req := domain.ScanRequest{
		Paths:           paths,
		Recursive:       flags.MergeBool(cfg.Scan.Recursive, !c.noRecursive, "no-recursive"),
		IncludePatterns: flags.MergeStringSlice(cfg.Scan.IncludePatterns, c.includePatterns, "include"),
		ExcludePatterns: c.mergeExcludes(flags, cfg.Scan.ExcludePatterns),
		MaxConcurrency:  flags.MergeInt(cfg.Scan.MaxConcurrency, c.jobs, "jobs"),
		Timeout:         time.Duration(timeout) * time.Second,
		OutputFormat:    format,
		OutputWriter:    cmd.OutOrStdout(),
		OutputPath:      outputPath,
	}
	req.Verbose, _ = cmd.Flags().GetBool("verbose")
	verbosef(cmd, "Scanning %v (include: %v, exclude: %v, jobs: %d)",
		req.Paths, req.IncludePatterns, req.ExcludePatterns, req.MaxConcurrency)

	lockfileService := service.NewLockfileService().
		WithVerboseWriter(cmd.ErrOrStderr())
	if !req.Verbose {
		progress := service.NewProgressManager("Parsing lock files")
		progress.SetWriter(cmd.ErrOrStderr())
		lockfileService.WithProgress(progress)
	}

	useCase, err := app.NewScanUseCaseBuilder().
		WithService(lockfileService).
		WithFormatter(service.NewLockfileFormatter().WithColor(useColor(cmd, format, outputPath))).
		WithOutputWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return useCase.Execute(ctx, req)
}

// mergeExcludes lets --exclude '' clear the configured excludes
func (c *ScanCommand) mergeExcludes(flags *config.FlagTracker, configured []string) []string {
	if !flags.WasSet("exclude") {
		return configured
	}
	var patterns []string
	for _, p := range c.excludePatterns {
		if p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// NewScanCmd creates and returns the scan cobra command
func NewScanCmd() *cobra.Command {
	return NewScanCommand().CreateCobraCommand()
}
