package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ktlint-report",
		Short: "Kotlin style checks and reports",
		Long: `ktlint-report lints Kotlin sources against the ktlint standard rule set.

It reads the project from ktlint.yaml, reports violations through the
configured reporters and writes a markdown site report.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("debug", "X", false, "Enable debug output")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (default from project)")

	// Add subcommands
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewFormatCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with status 1 on error
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
