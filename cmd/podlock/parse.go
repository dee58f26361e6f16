package main

import (
	"context"

	"github.com/ludo-technologies/podlock/app"
	"github.com/ludo-technologies/podlock/domain"
	"github.com/ludo-technologies/podlock/internal/config"
	"github.com/ludo-technologies/podlock/service"
	"github.com/spf13/cobra"
)

// ParseCommand represents the parse command
type ParseCommand struct {
	lockPath         string
	configFile       string
	showDependencies bool
	showChecksums    bool
	format           formatFlags
	output           outputOptions
}

// NewParseCommand creates a new parse command
func NewParseCommand() *ParseCommand {
	return &ParseCommand{
		lockPath: domain.DefaultLockfileName,
	}
}

// CreateCobraCommand creates the cobra command for single-file parsing
func (c *ParseCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [path]",
		Short: "Parse a Podfile.lock and report its contents",
		Long: `Parse a single CocoaPods lock file and report the resolved pods, declared
dependencies, spec repositories, external sources and checksums.

The lock file is taken from the positional argument, then --lock, then
./Podfile.lock. Text reports go to stdout; json, yaml and csv reports are
written to the configured report directory unless --output or --stdout is
given.

Examples:
  # Report on ./Podfile.lock
  podlock parse

  # Include each pod's dependency constraints
  podlock parse ios/Podfile.lock --show-dependencies

  # Pipe JSON into jq
  podlock parse --lock ios/Podfile.lock --json --stdout | jq '.lockfile.pods | length'`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runParse,
	}

	cmd.Flags().StringVarP(&c.lockPath, "lock", "l", domain.DefaultLockfileName, "Path of the lock file")
	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().BoolVar(&c.showDependencies, "show-dependencies", false, "List each pod's dependency constraints")
	cmd.Flags().BoolVar(&c.showChecksums, "show-checksums", false, "List podspec checksums")
	c.format.register(cmd)
	c.output.register(cmd)

	return cmd
}

// runParse executes the parse command
func (c *ParseCommand) runParse(cmd *cobra.Command, args []string) error {
	lockPath := c.lockPath
	if len(args) > 0 {
		lockPath = args[0]
	}

	cfg, err := config.LoadConfigWithTarget(c.configFile, lockPath)
	if err != nil {
		return err
	}
	flags := config.NewFlagTrackerFromFlagSet(cmd.Flags())

	format, err := c.format.resolve(cfg.Output.Format)
	if err != nil {
		return err
	}
	outputPath, err := c.output.resolvePath("parse", format, cfg.Output.Directory)
	if err != nil {
		return err
	}

	req := domain.ParseRequest{
		Path:             lockPath,
		ShowDependencies: flags.MergeBool(cfg.Output.ShowDependencies, c.showDependencies, "show-dependencies"),
		ShowChecksums:    flags.MergeBool(cfg.Output.ShowChecksums, c.showChecksums, "show-checksums"),
		OutputFormat:     format,
		OutputWriter:     cmd.OutOrStdout(),
		OutputPath:       outputPath,
	}
	verbosef(cmd, "Parsing %s (format: %s)", lockPath, format)

	useCase, err := app.NewParseUseCaseBuilder().
		WithService(service.NewLockfileService()).
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

// NewParseCmd creates and returns the parse cobra command
func NewParseCmd() *cobra.Command {
	return NewParseCommand().CreateCobraCommand()
}
