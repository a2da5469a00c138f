package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for issuesreport.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issuesreport",
		Short: "Aggregate static analysis issues per file and severity",
		Long: `issuesreport reads the issues found by a static analysis engine and
aggregates them per file and per severity (BLOCKER, CRITICAL, MAJOR, MINOR, INFO).

Inputs are native issuesreport JSON documents or SARIF 2.1.0 logs, as written
by golangci-lint, gosec, semgrep, CodeQL and most other analyzers.
The aggregated report is printed as a console summary by default, or as JSON,
Markdown or a per-file table.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewDiffCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
