package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/issuesreport/internal/diff"
	"github.com/spf13/cobra"
)

// ErrNewIssues is returned by diff --fail-on-new when the current inputs
// contain issues the baseline does not.
var ErrNewIssues = errors.New("new issues found")

// NewDiffCmd creates the diff command.
// This command compares the issues of a baseline run with a current run.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff --baseline <input> [input...]",
		Short: "Compare analysis results with a baseline",
		Long: `Diff aggregates a baseline run and a current run, and shows:
- New issues that appeared since the baseline
- Fixed issues that are no longer present
- Changes in the issue count per severity

Issues are matched by rule key, file path and start line. Both runs are
read with the same input format and configuration file, so rule overrides
and minSeverity apply to both sides.

Examples:
  # Compare a pull request with the main branch
  issuesreport diff --baseline main.sarif pr.sarif

  # Fail a CI job when new issues appear
  issuesreport diff --fail-on-new -b main.sarif pr.sarif

  # Output comparison in Markdown format for a pull request comment
  issuesreport diff --markdown -o diff.md -b main.sarif pr.sarif

  # Output comparison in JSON format
  issuesreport diff --json -b main.json current.json`,
		Args: cobra.ArbitraryArgs,
		RunE: runDiffCmd,
	}

	addInputFlags(cmd)

	cmd.Flags().StringSliceP("baseline", "b", nil,
		"Baseline input files (repeatable, - for stdin)")
	_ = cmd.MarkFlagRequired("baseline")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")
	cmd.Flags().StringP("output", "o", "",
		"Write comparison to specified file path (creates directories if needed)")
	cmd.Flags().Bool("fail-on-new", false,
		"Exit with an error when new issues are found")

	return cmd
}

// runDiffCmd executes the diff command.
func runDiffCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildInputConfig(cmd, args)
	if err != nil {
		return err
	}

	baseline, err := cmd.Flags().GetStringSlice("baseline")
	if err != nil {
		return err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	failOnNew, err := cmd.Flags().GetBool("fail-on-new")
	if err != nil {
		return err
	}

	// Validate both runs as a single input list so stdin is read at most once.
	validation := *cfg
	validation.Inputs = append(append([]string{}, baseline...), cfg.Inputs...)
	if len(baseline) == 0 || len(cfg.Inputs) == 0 {
		validation.Inputs = nil
	}
	if err := validation.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
	slog.SetDefault(logger)

	ctx, stop := signalContext(cmd)
	defer stop()

	baselineReport, err := buildReport(ctx, cfg, baseline, cmd.InOrStdin(), logger.With("run", "baseline"))
	if err != nil {
		return fmt.Errorf("baseline: %w", err)
	}
	currentReport, err := buildReport(ctx, cfg, cfg.Inputs, cmd.InOrStdin(), logger.With("run", "current"))
	if err != nil {
		return fmt.Errorf("current: %w", err)
	}

	result := diff.Compare(baselineReport, currentReport)
	logger.Info("comparison done",
		"new", len(result.NewIssues),
		"fixed", len(result.FixedIssues),
		"unchanged", result.UnchangedCount,
		"direction", result.Delta.Direction,
	)

	if err := outputDiff(cmd.OutOrStdout(), cfg.ReportFile, cfg.JSONReport, cfg.MarkdownReport, result); err != nil {
		return err
	}

	if failOnNew && len(result.NewIssues) > 0 {
		return fmt.Errorf("%w: %d", ErrNewIssues, len(result.NewIssues))
	}
	return nil
}

// outputDiff writes the comparison in the requested format.
func outputDiff(stdout io.Writer, path string, asJSON, asMarkdown bool, result *diff.Result) (err error) {
	output, closeOutput, err := openOutput(stdout, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOutput(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	switch {
	case asJSON:
		return diff.WriteJSON(output, result)
	case asMarkdown:
		return diff.WriteMarkdown(output, result)
	default:
		return diff.WriteText(output, result)
	}
}
