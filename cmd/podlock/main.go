package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/podlock/internal/version"
	"github.com/ludo-technologies/podlock/service"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   version.Name,
		Short: "Inspect CocoaPods Podfile.lock files",
		Long: `podlock reads CocoaPods Podfile.lock files and reports the resolved pods,
their dependency constraints, spec repositories, pinned external sources
and checksums.

Commands:
  parse   Report on a single lock file
  scan    Parse every lock file under one or more directories
  init    Write a commented .podlock.toml
  version Show build information`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewParseCmd())
	rootCmd.AddCommand(NewScanCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(rootCmd.ErrOrStderr(), err, isVerbose(rootCmd))
		os.Exit(1)
	}
}

// printError writes the categorized error and, when verbose, the recovery
// suggestions for its category
func printError(w io.Writer, err error, verbose bool) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)

	fmt.Fprintf(w, "Error: %s\n", categorized.Message)
	if categorized.Original != nil && categorized.Original.Error() != categorized.Message {
		fmt.Fprintf(w, "  %v\n", categorized.Original)
	}

	if !verbose {
		return
	}
	suggestions := categorizer.GetRecoverySuggestions(categorized.Category)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s suggestions:\n", categorized.Category)
	for _, s := range suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, err := cmd.PersistentFlags().GetBool("verbose")
	return err == nil && verbose
}
